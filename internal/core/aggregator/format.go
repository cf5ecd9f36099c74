package aggregator

import (
	"fmt"
	"strings"
)

// FormatKWh renders a reading with two decimals and its unit.
func FormatKWh(v float64) string {
	return fmt.Sprintf("%.2f kWh", v)
}

// FormatDate turns YYYY-MM-DD into DD/MM/YYYY. Empty input renders as "-".
func FormatDate(d string) string {
	if d == "" {
		return "-"
	}
	parts := strings.Split(d, "-")
	if len(parts) != 3 {
		return d
	}
	return parts[2] + "/" + parts[1] + "/" + parts[0]
}

package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date format of Consumption.Date.
const DateLayout = "2006-01-02"

// KWh is an energy reading. Older documents store it as a numeric string, so
// both JSON numbers and strings are accepted on decode; numbers are written.
type KWh float64

func (k *KWh) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*k = 0
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("kwh: %w", err)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*k = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("kwh %q: %w", s, err)
		}
		*k = KWh(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("kwh: %w", err)
	}
	*k = KWh(v)
	return nil
}

// Consumption is a single dated kWh reading for one House.
type Consumption struct {
	ID      string `json:"id"`
	HouseID string `json:"houseId"`
	Date    string `json:"date"`
	KWh     KWh    `json:"kwh"`
	Note    string `json:"note"`
}

// ValidDate reports whether s is a real calendar date in DateLayout.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Package aggregator computes the role-scoped views of a document: which
// clients and houses a viewer sees, the readings that fall inside a filter,
// and the totals and per-day series derived from them.
//
// Everything here is a pure function of its inputs.
package aggregator

import (
	"sort"

	"github.com/myenergy/tracker/internal/core/domain"
)

// AllClients is the client selection that means "no client filter".
const AllClients = "all"

// RecentLimit is the number of rows shown in the recent-readings table.
const RecentLimit = 10

// Filter is the viewer's current selection.
type Filter struct {
	ClientID string
	HouseID  string
}

func (f Filter) ClientSelected() bool {
	return f.ClientID != "" && f.ClientID != AllClients
}

func (f Filter) HouseSelected() bool {
	return f.HouseID != ""
}

// Summary holds the KPI figures.
type Summary struct {
	TotalKWh    float64 `json:"total_kwh"`
	AverageKWh  float64 `json:"average_kwh"`
	HouseCount  int     `json:"house_count"`
	RecordCount int     `json:"record_count"`
}

// SeriesPoint is the summed consumption of one calendar date.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Label string  `json:"label"`
	KWh   float64 `json:"kwh"`
}

// Result bundles everything a dashboard needs for one viewer and filter.
type Result struct {
	Clients []domain.Client
	Houses  []domain.House
	Records []domain.Consumption
	Summary Summary
	Series  []SeriesPoint
	Recent  []domain.Consumption
}

// VisibleClients returns every client for an admin and only the viewer's own
// clients otherwise.
func VisibleClients(viewer domain.User, clients []domain.Client) []domain.Client {
	if viewer.IsAdmin() {
		return append([]domain.Client{}, clients...)
	}
	out := []domain.Client{}
	for _, c := range clients {
		if c.UserID == viewer.ID {
			out = append(out, c)
		}
	}
	return out
}

// ResolveHouses returns the houses of the selected client, or the houses of
// all visible clients when no client is selected.
func ResolveHouses(viewer domain.User, f Filter, clients []domain.Client, houses []domain.House) []domain.House {
	allowed := map[string]struct{}{}
	if f.ClientSelected() {
		allowed[f.ClientID] = struct{}{}
	} else {
		for _, c := range VisibleClients(viewer, clients) {
			allowed[c.ID] = struct{}{}
		}
	}

	out := []domain.House{}
	for _, h := range houses {
		if _, ok := allowed[h.ClientID]; ok {
			out = append(out, h)
		}
	}
	return out
}

// FilterRecords keeps the readings of the resolved houses, narrowed to the
// selected house when there is one.
func FilterRecords(records []domain.Consumption, houses []domain.House, f Filter) []domain.Consumption {
	set := make(map[string]struct{}, len(houses))
	for _, h := range houses {
		set[h.ID] = struct{}{}
	}

	out := []domain.Consumption{}
	for _, r := range records {
		if _, ok := set[r.HouseID]; !ok {
			continue
		}
		if f.HouseSelected() && r.HouseID != f.HouseID {
			continue
		}
		out = append(out, r)
	}
	return out
}

func Summarize(records []domain.Consumption, houses []domain.House, f Filter) Summary {
	var total float64
	for _, r := range records {
		total += float64(r.KWh)
	}

	s := Summary{
		TotalKWh:    total,
		RecordCount: len(records),
		HouseCount:  len(houses),
	}
	if len(records) > 0 {
		s.AverageKWh = total / float64(len(records))
	}
	if f.HouseSelected() {
		s.HouseCount = 1
	}
	return s
}

// DailySeries sums the readings per date in chronological order.
func DailySeries(records []domain.Consumption) []SeriesPoint {
	sums := map[string]float64{}
	for _, r := range records {
		sums[r.Date] += float64(r.KWh)
	}

	dates := make([]string, 0, len(sums))
	for d := range sums {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]SeriesPoint, len(dates))
	for i, d := range dates {
		out[i] = SeriesPoint{Date: d, Label: FormatDate(d), KWh: sums[d]}
	}
	return out
}

// Recent returns up to limit readings, newest date first. Readings sharing a
// date keep their stored order.
func Recent(records []domain.Consumption, limit int) []domain.Consumption {
	sorted := SortByDateDesc(records)
	if limit >= 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

func SortByDateDesc(records []domain.Consumption) []domain.Consumption {
	sorted := append([]domain.Consumption{}, records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	return sorted
}

// HouseOptions returns the contents of the house picker for a client
// selection. Without a selection an admin sees every house and a regular
// user sees the houses of their own client.
func HouseOptions(viewer domain.User, clientID string, clients []domain.Client, houses []domain.House) []domain.House {
	if (Filter{ClientID: clientID}).ClientSelected() {
		return housesOf(houses, map[string]struct{}{clientID: {}})
	}
	if viewer.IsAdmin() {
		return append([]domain.House{}, houses...)
	}

	own := map[string]struct{}{}
	for _, c := range VisibleClients(viewer, clients) {
		own[c.ID] = struct{}{}
	}
	return housesOf(houses, own)
}

func housesOf(houses []domain.House, clientIDs map[string]struct{}) []domain.House {
	out := []domain.House{}
	for _, h := range houses {
		if _, ok := clientIDs[h.ClientID]; ok {
			out = append(out, h)
		}
	}
	return out
}

// Compute runs the whole pipeline for one viewer and filter.
func Compute(doc *domain.Document, viewer domain.User, f Filter) Result {
	houses := ResolveHouses(viewer, f, doc.Clients, doc.Houses)
	records := FilterRecords(doc.Consumptions, houses, f)

	return Result{
		Clients: VisibleClients(viewer, doc.Clients),
		Houses:  HouseOptions(viewer, f.ClientID, doc.Clients, doc.Houses),
		Records: records,
		Summary: Summarize(records, houses, f),
		Series:  DailySeries(records),
		Recent:  Recent(records, RecentLimit),
	}
}

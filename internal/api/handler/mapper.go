package handler

import (
	"time"

	"github.com/myenergy/tracker/internal/core/aggregator"
	"github.com/myenergy/tracker/internal/core/domain"
	"github.com/myenergy/tracker/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}
}

func toConsumptionInput(req consumptionRequest) ports.ConsumptionInput {
	in := ports.ConsumptionInput{Date: req.Date, Note: req.Note}
	if req.KWh != nil {
		in.KWh = *req.KWh
	}
	return in
}

// --- Domain → HTTP response ---

// toUserResponse never carries the credential digest.
func toUserResponse(u domain.User, viewerID string) userResponse {
	return userResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		IsMe:  viewerID != "" && u.ID == viewerID,
	}
}

func toUsersResponse(users []domain.User, viewerID string) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u, viewerID)
	}
	return out
}

func toMeResponse(u domain.User) meResponse {
	return meResponse{
		User:         toUserResponse(u, ""),
		Capabilities: domain.CapabilitiesFor(u.Role),
	}
}

func toLoginResponse(s *ports.Session) loginResponse {
	return loginResponse{
		Token:        s.Token,
		ExpiresAt:    s.ExpiresAt.UTC().Format(time.RFC3339),
		User:         toUserResponse(s.User, ""),
		Capabilities: domain.CapabilitiesFor(s.User.Role),
	}
}

func toClientResponse(c domain.Client) clientResponse {
	return clientResponse{ID: c.ID, UserID: c.UserID, Name: c.Name, Contact: c.Contact}
}

func toClientsResponse(clients []domain.Client) []clientResponse {
	out := make([]clientResponse, len(clients))
	for i, c := range clients {
		out[i] = toClientResponse(c)
	}
	return out
}

func toHouseResponse(h domain.House) houseResponse {
	option := h.Label
	if h.Address != "" {
		option += " - " + h.Address
	}
	return houseResponse{
		ID:          h.ID,
		ClientID:    h.ClientID,
		Label:       h.Label,
		Address:     h.Address,
		OptionLabel: option,
	}
}

func toHousesResponse(houses []domain.House) []houseResponse {
	out := make([]houseResponse, len(houses))
	for i, h := range houses {
		out[i] = toHouseResponse(h)
	}
	return out
}

func toConsumptionResponse(r domain.Consumption, caps domain.Capabilities) consumptionResponse {
	note := r.Note
	if note == "" {
		note = "-"
	}
	return consumptionResponse{
		ID:        r.ID,
		HouseID:   r.HouseID,
		Date:      r.Date,
		DateLabel: aggregator.FormatDate(r.Date),
		KWh:       float64(r.KWh),
		KWhLabel:  aggregator.FormatKWh(float64(r.KWh)),
		Note:      note,
		CanDelete: caps.CanDeleteRecords,
	}
}

func toConsumptionsResponse(records []domain.Consumption, caps domain.Capabilities) []consumptionResponse {
	out := make([]consumptionResponse, len(records))
	for i, r := range records {
		out[i] = toConsumptionResponse(r, caps)
	}
	return out
}

func toSeriesResponse(points []aggregator.SeriesPoint) seriesResponse {
	s := seriesResponse{
		Dates:  make([]string, len(points)),
		Labels: make([]string, len(points)),
		Values: make([]float64, len(points)),
	}
	for i, p := range points {
		s.Dates[i] = p.Date
		s.Labels[i] = p.Label
		s.Values[i] = p.KWh
	}
	return s
}

func toDashboardResponse(r *aggregator.Result, viewer domain.User, f aggregator.Filter) dashboardResponse {
	caps := domain.CapabilitiesFor(viewer.Role)
	return dashboardResponse{
		Filter: filterResponse{ClientID: f.ClientID, HouseID: f.HouseID},
		Summary: summaryResponse{
			TotalKWh:     r.Summary.TotalKWh,
			TotalLabel:   aggregator.FormatKWh(r.Summary.TotalKWh),
			AverageKWh:   r.Summary.AverageKWh,
			AverageLabel: aggregator.FormatKWh(r.Summary.AverageKWh),
			HouseCount:   r.Summary.HouseCount,
			RecordCount:  r.Summary.RecordCount,
		},
		Recent:       toConsumptionsResponse(r.Recent, caps),
		Series:       toSeriesResponse(r.Series),
		Clients:      toClientsResponse(r.Clients),
		Houses:       toHousesResponse(r.Houses),
		Capabilities: caps,
	}
}

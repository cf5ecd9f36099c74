package handler

import (
	"github.com/myenergy/tracker/internal/core/domain"
)

// --- Requests ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=120"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=3"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin user"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type profileRequest struct {
	Name     string `json:"name"     validate:"required,max=120"`
	Password string `json:"password" validate:"omitempty,min=3"`
}

type clientRequest struct {
	Name    string `json:"name"    validate:"required,max=120"`
	Contact string `json:"contact" validate:"max=200"`
}

type houseRequest struct {
	Label   string `json:"label"   validate:"required,max=120"`
	Address string `json:"address" validate:"max=300"`
}

type consumptionRequest struct {
	Date string   `json:"date" validate:"required,datetime=2006-01-02"`
	KWh  *float64 `json:"kwh"  validate:"required,gte=0"`
	Note string   `json:"note" validate:"max=500"`
}

// --- Responses ---

type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	IsMe  bool   `json:"is_me,omitempty"`
}

type meResponse struct {
	User         userResponse        `json:"user"`
	Capabilities domain.Capabilities `json:"capabilities"`
}

type loginResponse struct {
	Token        string              `json:"token"`
	ExpiresAt    string              `json:"expires_at"`
	User         userResponse        `json:"user"`
	Capabilities domain.Capabilities `json:"capabilities"`
}

type clientResponse struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

type houseResponse struct {
	ID          string `json:"id"`
	ClientID    string `json:"client_id"`
	Label       string `json:"label"`
	Address     string `json:"address"`
	OptionLabel string `json:"option_label"`
}

type consumptionResponse struct {
	ID        string  `json:"id"`
	HouseID   string  `json:"house_id"`
	Date      string  `json:"date"`
	DateLabel string  `json:"date_label"`
	KWh       float64 `json:"kwh"`
	KWhLabel  string  `json:"kwh_label"`
	Note      string  `json:"note"`
	CanDelete bool    `json:"can_delete"`
}

type listConsumptionsResponse struct {
	Data  []consumptionResponse `json:"data"`
	Total int                   `json:"total"`
}

type summaryResponse struct {
	TotalKWh     float64 `json:"total_kwh"`
	TotalLabel   string  `json:"total_label"`
	AverageKWh   float64 `json:"average_kwh"`
	AverageLabel string  `json:"average_label"`
	HouseCount   int     `json:"house_count"`
	RecordCount  int     `json:"record_count"`
}

type seriesResponse struct {
	Dates  []string  `json:"dates"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

type filterResponse struct {
	ClientID string `json:"client_id"`
	HouseID  string `json:"house_id"`
}

type dashboardResponse struct {
	Filter       filterResponse        `json:"filter"`
	Summary      summaryResponse       `json:"summary"`
	Recent       []consumptionResponse `json:"recent"`
	Series       seriesResponse        `json:"series"`
	Clients      []clientResponse      `json:"clients"`
	Houses       []houseResponse       `json:"houses"`
	Capabilities domain.Capabilities   `json:"capabilities"`
}

type deleteHouseResponse struct {
	ID                  string `json:"id"`
	ConsumptionsRemoved int    `json:"consumptions_removed"`
}

package ports

import (
	"context"

	"github.com/myenergy/tracker/internal/core/aggregator"
	"github.com/myenergy/tracker/internal/core/domain"
)

type ClientInput struct {
	Name    string
	Contact string
}

type HouseInput struct {
	Label   string
	Address string
}

type ConsumptionInput struct {
	Date string
	KWh  float64
	Note string
}

// DirectoryService manages clients and their houses.
type DirectoryService interface {
	ListClients(ctx context.Context, viewer domain.User) ([]domain.Client, error)
	CreateClient(ctx context.Context, viewer domain.User, input ClientInput) (*domain.Client, error)
	ListHouses(ctx context.Context, viewer domain.User, clientID string) ([]domain.House, error)
	CreateHouse(ctx context.Context, viewer domain.User, clientID string, input HouseInput) (*domain.House, error)
	DeleteHouse(ctx context.Context, viewer domain.User, houseID string) (int, error)
}

type ConsumptionService interface {
	Add(ctx context.Context, viewer domain.User, houseID string, input ConsumptionInput) (*domain.Consumption, error)
	Delete(ctx context.Context, viewer domain.User, id string) error
	List(ctx context.Context, viewer domain.User, filter aggregator.Filter) ([]domain.Consumption, error)
}

type UserService interface {
	List(ctx context.Context, viewer domain.User) ([]domain.User, error)
	Delete(ctx context.Context, viewer domain.User, id string) error
}

type DashboardService interface {
	Dashboard(ctx context.Context, viewer domain.User, filter aggregator.Filter) (*aggregator.Result, error)
}

// ImportResult reports the size of an imported document.
type ImportResult struct {
	Users        int `json:"users"`
	Clients      int `json:"clients"`
	Houses       int `json:"houses"`
	Consumptions int `json:"consumptions"`
}

type BackupService interface {
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, data []byte) (*ImportResult, error)
}

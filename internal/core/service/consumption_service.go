package service

import (
	"context"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/myenergy/tracker/internal/core/aggregator"
	"github.com/myenergy/tracker/internal/core/domain"
	"github.com/myenergy/tracker/internal/core/ports"
)

type ConsumptionService struct {
	store  *Store
	logger zerolog.Logger
}

func NewConsumptionService(store *Store, logger zerolog.Logger) *ConsumptionService {
	return &ConsumptionService{store: store, logger: logger}
}

// Add records a reading for a house the viewer can see.
func (s *ConsumptionService) Add(ctx context.Context, viewer domain.User, houseID string, input ports.ConsumptionInput) (*domain.Consumption, error) {
	if houseID == "" {
		return nil, domain.ErrHouseRequired
	}
	if !domain.ValidDate(input.Date) {
		return nil, domain.ErrInvalidInput
	}
	if input.KWh < 0 || math.IsNaN(input.KWh) || math.IsInf(input.KWh, 0) {
		return nil, domain.ErrInvalidReading
	}

	record := domain.Consumption{
		ID:      newID(),
		HouseID: houseID,
		Date:    input.Date,
		KWh:     domain.KWh(input.KWh),
		Note:    strings.TrimSpace(input.Note),
	}
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		if _, err := visibleHouse(doc, viewer, houseID); err != nil {
			return err
		}
		doc.Consumptions = append(doc.Consumptions, record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("consumption_id", record.ID).
		Str("house_id", houseID).
		Float64("kwh", input.KWh).
		Msg("consumption recorded")
	return &record, nil
}

func (s *ConsumptionService) Delete(ctx context.Context, viewer domain.User, id string) error {
	if !viewer.IsAdmin() {
		return domain.ErrForbidden
	}

	err := s.store.Update(ctx, func(doc *domain.Document) error {
		if !doc.RemoveConsumption(id) {
			return domain.ErrConsumptionNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("consumption_id", id).Msg("consumption deleted")
	return nil
}

// List returns every reading inside the filter, newest first.
func (s *ConsumptionService) List(ctx context.Context, viewer domain.User, filter aggregator.Filter) ([]domain.Consumption, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkFilter(doc, viewer, filter); err != nil {
		return nil, err
	}

	houses := aggregator.ResolveHouses(viewer, filter, doc.Clients, doc.Houses)
	return aggregator.SortByDateDesc(aggregator.FilterRecords(doc.Consumptions, houses, filter)), nil
}

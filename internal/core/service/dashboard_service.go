package service

import (
	"context"

	"github.com/myenergy/tracker/internal/core/aggregator"
	"github.com/myenergy/tracker/internal/core/domain"
)

type DashboardService struct {
	store *Store
}

func NewDashboardService(store *Store) *DashboardService {
	return &DashboardService{store: store}
}

func (s *DashboardService) Dashboard(ctx context.Context, viewer domain.User, filter aggregator.Filter) (*aggregator.Result, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := checkFilter(doc, viewer, filter); err != nil {
		return nil, err
	}
	res := aggregator.Compute(doc, viewer, filter)
	return &res, nil
}

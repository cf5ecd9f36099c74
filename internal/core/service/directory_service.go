package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/myenergy/tracker/internal/core/aggregator"
	"github.com/myenergy/tracker/internal/core/domain"
	"github.com/myenergy/tracker/internal/core/ports"
)

type DirectoryService struct {
	store  *Store
	logger zerolog.Logger
}

func NewDirectoryService(store *Store, logger zerolog.Logger) *DirectoryService {
	return &DirectoryService{store: store, logger: logger}
}

func (s *DirectoryService) ListClients(ctx context.Context, viewer domain.User) ([]domain.Client, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return aggregator.VisibleClients(viewer, doc.Clients), nil
}

// CreateClient adds a client owned by the calling admin.
func (s *DirectoryService) CreateClient(ctx context.Context, viewer domain.User, input ports.ClientInput) (*domain.Client, error) {
	if !viewer.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	client := domain.Client{
		ID:      newID(),
		UserID:  viewer.ID,
		Name:    name,
		Contact: strings.TrimSpace(input.Contact),
	}
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		doc.Clients = append(doc.Clients, client)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("client_id", client.ID).Str("owner_id", viewer.ID).Msg("client created")
	return &client, nil
}

// ListHouses returns the house picker contents for a client selection;
// "all" or an empty id means no selection.
func (s *DirectoryService) ListHouses(ctx context.Context, viewer domain.User, clientID string) ([]domain.House, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if (aggregator.Filter{ClientID: clientID}).ClientSelected() {
		if _, err := visibleClient(doc, viewer, clientID); err != nil {
			return nil, err
		}
	}
	return aggregator.HouseOptions(viewer, clientID, doc.Clients, doc.Houses), nil
}

func (s *DirectoryService) CreateHouse(ctx context.Context, viewer domain.User, clientID string, input ports.HouseInput) (*domain.House, error) {
	if !(aggregator.Filter{ClientID: clientID}).ClientSelected() {
		return nil, domain.ErrClientRequired
	}
	label := strings.TrimSpace(input.Label)
	if label == "" {
		return nil, domain.ErrInvalidInput
	}

	house := domain.House{
		ID:       newID(),
		ClientID: clientID,
		Label:    label,
		Address:  strings.TrimSpace(input.Address),
	}
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		if _, err := visibleClient(doc, viewer, clientID); err != nil {
			return err
		}
		doc.Houses = append(doc.Houses, house)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("house_id", house.ID).Str("client_id", clientID).Msg("house created")
	return &house, nil
}

// DeleteHouse removes the house and all of its readings. It returns how many
// readings went with it.
func (s *DirectoryService) DeleteHouse(ctx context.Context, viewer domain.User, houseID string) (int, error) {
	if !viewer.IsAdmin() {
		return 0, domain.ErrForbidden
	}

	var removed int
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		n, ok := doc.RemoveHouse(houseID)
		if !ok {
			return domain.ErrHouseNotFound
		}
		removed = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info().Str("house_id", houseID).Int("consumptions_removed", removed).Msg("house deleted")
	return removed, nil
}

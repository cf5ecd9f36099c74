package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/myenergy/tracker/internal/core/domain"
)

// UserDeletePolicy decides what happens to the clients of a deleted user.
type UserDeletePolicy string

const (
	// DeletePolicyOrphan removes only the user record.
	DeletePolicyOrphan UserDeletePolicy = "orphan"
	// DeletePolicyCascade also removes the user's clients, their houses and
	// the readings of those houses.
	DeletePolicyCascade UserDeletePolicy = "cascade"
)

func ParseUserDeletePolicy(s string) (UserDeletePolicy, error) {
	switch UserDeletePolicy(s) {
	case "", DeletePolicyOrphan:
		return DeletePolicyOrphan, nil
	case DeletePolicyCascade:
		return DeletePolicyCascade, nil
	}
	return "", fmt.Errorf("unknown user delete policy %q", s)
}

type UserService struct {
	store  *Store
	policy UserDeletePolicy
	logger zerolog.Logger
}

func NewUserService(store *Store, policy UserDeletePolicy, logger zerolog.Logger) *UserService {
	if policy == "" {
		policy = DeletePolicyOrphan
	}
	return &UserService{store: store, policy: policy, logger: logger}
}

func (s *UserService) List(ctx context.Context, viewer domain.User) ([]domain.User, error) {
	if !viewer.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.Users, nil
}

func (s *UserService) Delete(ctx context.Context, viewer domain.User, id string) error {
	if !viewer.IsAdmin() {
		return domain.ErrForbidden
	}
	if id == viewer.ID {
		return domain.ErrCannotDeleteSelf
	}

	var owned []string
	err := s.store.Update(ctx, func(doc *domain.Document) error {
		if !doc.RemoveUser(id) {
			return domain.ErrUserNotFound
		}
		owned = doc.ClientsOwnedBy(id)
		if s.policy == DeletePolicyCascade {
			for _, c := range owned {
				doc.RemoveClient(c)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.policy == DeletePolicyOrphan && len(owned) > 0 {
		s.logger.Warn().Str("user_id", id).Int("orphaned_clients", len(owned)).Msg("user deleted, clients kept")
		return nil
	}
	s.logger.Info().Str("user_id", id).Str("policy", string(s.policy)).Int("clients_removed", len(owned)).Msg("user deleted")
	return nil
}

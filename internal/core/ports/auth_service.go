package ports

import (
	"context"
	"time"

	"github.com/myenergy/tracker/internal/core/domain"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type ProfileInput struct {
	Name     string
	Password string
}

// Session is the outcome of a successful login.
type Session struct {
	ID        string
	Token     string
	User      domain.User
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, sessionID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, sessionID string, input ProfileInput) (*domain.User, error)
}

package ports

import (
	"context"
	"time"

	"github.com/myenergy/tracker/internal/core/domain"
)

// DocumentRepository persists the encoded document as a single value.
// Read returns domain.ErrDocumentNotFound when nothing has been stored yet.
type DocumentRepository interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// SessionRepository holds the user snapshot of each logged-in session.
// Get returns domain.ErrSessionNotFound for unknown or expired sessions.
type SessionRepository interface {
	Put(ctx context.Context, id string, user domain.User, ttl time.Duration) error
	Get(ctx context.Context, id string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// Pinger is implemented by backends that can report their connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

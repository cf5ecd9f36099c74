// Package memory keeps the document and the sessions in process memory.
// Nothing survives a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/myenergy/tracker/internal/core/domain"
)

type DocumentRepository struct {
	mu   sync.RWMutex
	data []byte
}

func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{}
}

func (r *DocumentRepository) Read(_ context.Context) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.data == nil {
		return nil, domain.ErrDocumentNotFound
	}
	return append([]byte(nil), r.data...), nil
}

func (r *DocumentRepository) Write(_ context.Context, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = append([]byte(nil), data...)
	return nil
}

type session struct {
	user      domain.User
	expiresAt time.Time
}

// SessionRepository expires sessions lazily on lookup.
type SessionRepository struct {
	mu       sync.Mutex
	sessions map[string]session
	now      func() time.Time
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]session), now: time.Now}
}

func (r *SessionRepository) Put(_ context.Context, id string, user domain.User, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := session{user: user}
	if ttl > 0 {
		s.expiresAt = r.now().Add(ttl)
	}
	r.sessions[id] = s
	return nil
}

func (r *SessionRepository) Get(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if !s.expiresAt.IsZero() && r.now().After(s.expiresAt) {
		delete(r.sessions, id)
		return nil, domain.ErrSessionNotFound
	}
	u := s.user
	return &u, nil
}

func (r *SessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

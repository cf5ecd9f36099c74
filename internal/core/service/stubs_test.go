package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/myenergy/tracker/internal/core/domain"
)

type stubDocumentRepo struct {
	mu       sync.Mutex
	data     []byte
	writes   int
	readErr  error
	writeErr error
}

func (r *stubDocumentRepo) Read(_ context.Context) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil {
		return nil, r.readErr
	}
	if r.data == nil {
		return nil, domain.ErrDocumentNotFound
	}
	return append([]byte(nil), r.data...), nil
}

func (r *stubDocumentRepo) Write(_ context.Context, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.writeErr != nil {
		return r.writeErr
	}
	r.data = append([]byte(nil), data...)
	r.writes++
	return nil
}

type stubSessionRepo struct {
	sessions map[string]domain.User
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]domain.User)}
}

func (r *stubSessionRepo) Put(_ context.Context, id string, user domain.User, _ time.Duration) error {
	r.sessions[id] = user
	return nil
}

func (r *stubSessionRepo) Get(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &u, nil
}

func (r *stubSessionRepo) Delete(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

var testHasher = NewPasswordHasher(bcrypt.MinCost)

var seedAdmin = domain.User{
	ID:       "admin_01",
	Name:     "Super Admin",
	Email:    "admin@app.com",
	Password: LegacyDigest("admin123"),
	Role:     domain.RoleAdmin,
}

func newTestStore(repo *stubDocumentRepo) *Store {
	return NewStore(repo, seedAdmin, zerolog.Nop())
}

// seededStore returns a store holding doc as its current document.
func seededStore(doc *domain.Document) (*Store, *stubDocumentRepo) {
	repo := &stubDocumentRepo{}
	store := newTestStore(repo)
	if err := store.Save(context.Background(), doc); err != nil {
		panic(err)
	}
	return store, repo
}

// fixtureDocument has two users each owning one client with one house.
//
//	admin_01
//	u_alice -> A -> A1 (10 kWh)
//	u_bob   -> B -> B1 (5 kWh)
func fixtureDocument() *domain.Document {
	return &domain.Document{
		Users: []domain.User{
			seedAdmin,
			{ID: "u_alice", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser},
			{ID: "u_bob", Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser},
		},
		Clients: []domain.Client{
			{ID: "A", UserID: "u_alice", Name: "Alice (Minha Conta)"},
			{ID: "B", UserID: "u_bob", Name: "Bob (Minha Conta)"},
		},
		Houses: []domain.House{
			{ID: "A1", ClientID: "A", Label: "Casa A"},
			{ID: "B1", ClientID: "B", Label: "Casa B"},
		},
		Consumptions: []domain.Consumption{
			{ID: "r1", HouseID: "A1", Date: "2024-01-02", KWh: 10},
			{ID: "r2", HouseID: "B1", Date: "2024-01-01", KWh: 5},
		},
	}
}

func mustLoad(s *Store) *domain.Document {
	doc, err := s.Load(context.Background())
	if err != nil {
		panic(err)
	}
	return doc
}

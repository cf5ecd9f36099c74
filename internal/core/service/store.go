package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/myenergy/tracker/internal/core/domain"
	"github.com/myenergy/tracker/internal/core/ports"
)

// Store loads and saves the whole document through a repository. Update is
// serialized so a read-modify-write never interleaves with another one in
// the same process.
type Store struct {
	repo   ports.DocumentRepository
	seed   domain.User
	logger zerolog.Logger
	mu     sync.Mutex
}

// NewStore returns a Store that writes seed as the only user the first time
// an empty repository is loaded.
func NewStore(repo ports.DocumentRepository, seed domain.User, logger zerolog.Logger) *Store {
	return &Store{repo: repo, seed: seed, logger: logger}
}

func (s *Store) Load(ctx context.Context) (*domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) Save(ctx context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, doc)
}

// Update loads the document, applies fn and saves the result. Nothing is
// written when fn returns an error.
func (s *Store) Update(ctx context.Context, fn func(doc *domain.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(ctx, doc)
}

// Ping checks the underlying repository when it supports it.
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.repo.(ports.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (s *Store) load(ctx context.Context) (*domain.Document, error) {
	data, err := s.repo.Read(ctx)
	if errors.Is(err, domain.ErrDocumentNotFound) {
		doc := domain.NewDocument()
		doc.Users = append(doc.Users, s.seed)
		if err := s.save(ctx, doc); err != nil {
			return nil, err
		}
		s.logger.Info().Str("email", s.seed.Email).Msg("seeded default admin")
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return DecodeDocument(data)
}

func (s *Store) save(ctx context.Context, doc *domain.Document) error {
	doc.Normalize()
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if err := s.repo.Write(ctx, data); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

// DecodeDocument parses a persisted document. Undecodable input yields
// domain.ErrCorruptDocument.
func DecodeDocument(data []byte) (*domain.Document, error) {
	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptDocument, err)
	}
	doc.Normalize()
	return &doc, nil
}

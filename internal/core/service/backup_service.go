package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/myenergy/tracker/internal/core/domain"
	"github.com/myenergy/tracker/internal/core/ports"
)

// requiredImportKeys must be present and non-null in an imported file.
var requiredImportKeys = []string{"users", "consumptions"}

type BackupService struct {
	store  *Store
	logger zerolog.Logger
}

func NewBackupService(store *Store, logger zerolog.Logger) *BackupService {
	return &BackupService{store: store, logger: logger}
}

// Export returns the whole document in its persisted form.
func (s *BackupService) Export(ctx context.Context) ([]byte, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Import replaces the whole document. The file is fully decoded before
// anything is written; a missing clients or houses key becomes an empty list.
func (s *BackupService) Import(ctx context.Context, data []byte) (*ports.ImportResult, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}
	for _, k := range requiredImportKeys {
		raw, ok := keys[k]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return nil, fmt.Errorf("%w: missing %q", domain.ErrInvalidImport, k)
		}
	}

	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return nil, err
	}

	res := &ports.ImportResult{
		Users:        len(doc.Users),
		Clients:      len(doc.Clients),
		Houses:       len(doc.Houses),
		Consumptions: len(doc.Consumptions),
	}
	s.logger.Info().
		Int("users", res.Users).
		Int("clients", res.Clients).
		Int("houses", res.Houses).
		Int("consumptions", res.Consumptions).
		Msg("document imported")
	return res, nil
}

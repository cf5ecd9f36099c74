package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/myenergy/tracker/internal/core/domain"
)

// DocumentRepository keeps the whole document under a single key without
// expiry.
type DocumentRepository struct {
	client *redis.Client
	key    string
}

func NewDocumentRepository(client *redis.Client, key string) *DocumentRepository {
	return &DocumentRepository{client: client, key: key}
}

func (r *DocumentRepository) Read(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	return data, nil
}

func (r *DocumentRepository) Write(ctx context.Context, data []byte) error {
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

func (r *DocumentRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

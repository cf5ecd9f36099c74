package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/myenergy/tracker/internal/core/domain"
)

const documentsCollection = "documents"

// DocumentRepository stores the encoded document as one record keyed by the
// store key. The payload is kept as a JSON string so it round-trips byte for
// byte.
type DocumentRepository struct {
	coll *mongo.Collection
	key  string
}

func NewDocumentRepository(db *mongo.Database, key string) *DocumentRepository {
	return &DocumentRepository{coll: db.Collection(documentsCollection), key: key}
}

type mongoDocument struct {
	ID        string `bson:"_id"`
	Payload   string `bson:"payload"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (r *DocumentRepository) Read(ctx context.Context) ([]byte, error) {
	var md mongoDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": r.key}).Decode(&md); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("find document: %w", err)
	}
	return []byte(md.Payload), nil
}

func (r *DocumentRepository) Write(ctx context.Context, data []byte) error {
	md := mongoDocument{
		ID:        r.key,
		Payload:   string(data),
		UpdatedAt: time.Now().UTC().Unix(),
	}

	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": r.key}, md, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("replace document: %w", err)
	}
	return nil
}

func (r *DocumentRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gomarketplace/cart-service/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// snapshotDocument is one key-value slot. ExpiresAt backs a TTL index; the
// repository also checks it on read because the TTL monitor runs lazily.
type snapshotDocument struct {
	Key       string     `bson:"_id"`
	Value     string     `bson:"value"`
	UpdatedAt time.Time  `bson:"updated_at"`
	ExpiresAt *time.Time `bson:"expires_at,omitempty"`
}

type cartSnapshotRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewCartSnapshotRepository(collection *mongo.Collection) repository.CartSnapshotRepository {
	return &cartSnapshotRepository{
		collection: collection,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// EnsureIndexes creates the TTL index on expires_at.
func EnsureIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("expires_at_ttl"),
	})
	if err != nil {
		return fmt.Errorf("failed to create ttl index on %s: %w", collection.Name(), err)
	}
	return nil
}

func (r *cartSnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, repository.ErrEmptyKey
	}

	var doc snapshotDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart snapshot %s from mongodb: %w", key, err)
	}

	if doc.ExpiresAt != nil && !r.now().Before(*doc.ExpiresAt) {
		return nil, repository.ErrNotFound
	}
	return []byte(doc.Value), nil
}

func (r *cartSnapshotRepository) Save(ctx context.Context, key string, blob []byte, ttl time.Duration) error {
	if key == "" {
		return repository.ErrEmptyKey
	}

	now := r.now()
	doc := snapshotDocument{
		Key:       key,
		Value:     string(blob),
		UpdatedAt: now,
	}
	if ttl > 0 {
		expiresAt := now.Add(ttl)
		doc.ExpiresAt = &expiresAt
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": key}, doc, opts); err != nil {
		return fmt.Errorf("failed to save cart snapshot %s to mongodb: %w", key, err)
	}
	return nil
}

func (r *cartSnapshotRepository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return repository.ErrEmptyKey
	}

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("failed to delete cart snapshot %s from mongodb: %w", key, err)
	}
	return nil
}

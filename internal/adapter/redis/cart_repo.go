package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gomarketplace/cart-service/internal/repository"
	"github.com/redis/go-redis/v9"
)

type cartSnapshotRepository struct {
	client redis.Cmdable
}

func NewCartSnapshotRepository(client redis.Cmdable) repository.CartSnapshotRepository {
	return &cartSnapshotRepository{
		client: client,
	}
}

func (r *cartSnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, repository.ErrEmptyKey
	}

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get cart snapshot %s from redis: %w", key, err)
	}
	return val, nil
}

func (r *cartSnapshotRepository) Save(ctx context.Context, key string, blob []byte, ttl time.Duration) error {
	if key == "" {
		return repository.ErrEmptyKey
	}

	if err := r.client.Set(ctx, key, blob, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart snapshot %s to redis: %w", key, err)
	}
	return nil
}

func (r *cartSnapshotRepository) Delete(ctx context.Context, key string) error {
	if key == "" {
		return repository.ErrEmptyKey
	}

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cart snapshot %s from redis: %w", key, err)
	}
	return nil
}

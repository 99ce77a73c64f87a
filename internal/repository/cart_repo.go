package repository

import (
	"context"
	"time"
)

// CartSnapshotRepository stores the serialized cart in a single key-value slot.
// Load returns ErrNotFound when the slot has never been written or was deleted.
type CartSnapshotRepository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, blob []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

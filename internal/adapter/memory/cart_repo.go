package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gomarketplace/cart-service/internal/repository"
)

type entry struct {
	blob      []byte
	expiresAt time.Time
}

// CartSnapshotRepository keeps snapshots in process memory. Entries with a TTL
// expire lazily on the next Load.
type CartSnapshotRepository struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewCartSnapshotRepository() *CartSnapshotRepository {
	return &CartSnapshotRepository{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (r *CartSnapshotRepository) Load(_ context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, repository.ErrEmptyKey
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[key]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if !e.expiresAt.IsZero() && !r.now().Before(e.expiresAt) {
		delete(r.entries, key)
		return nil, repository.ErrNotFound
	}

	out := make([]byte, len(e.blob))
	copy(out, e.blob)
	return out, nil
}

func (r *CartSnapshotRepository) Save(_ context.Context, key string, blob []byte, ttl time.Duration) error {
	if key == "" {
		return repository.ErrEmptyKey
	}

	stored := make([]byte, len(blob))
	copy(stored, blob)

	e := entry{blob: stored}
	if ttl > 0 {
		e.expiresAt = r.now().Add(ttl)
	}

	r.mu.Lock()
	r.entries[key] = e
	r.mu.Unlock()
	return nil
}

func (r *CartSnapshotRepository) Delete(_ context.Context, key string) error {
	if key == "" {
		return repository.ErrEmptyKey
	}

	r.mu.Lock()
	delete(r.entries, key)
	r.mu.Unlock()
	return nil
}

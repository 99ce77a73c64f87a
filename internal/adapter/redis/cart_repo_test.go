package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gomarketplace/cart-service/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "@GoMarketplace:cart"

func newTestRepo(t *testing.T) (repository.CartSnapshotRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCartSnapshotRepository(client), mr
}

func TestCartSnapshotRepository_LoadMissing(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Load(context.Background(), testKey)

	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCartSnapshotRepository_SaveLoadDelete(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()
	blob := []byte(`[{"id":"A","title":"Mug","image_url":"u","price":1.5,"quantity":2}]`)

	require.NoError(t, repo.Save(ctx, testKey, blob, 0))

	raw, err := mr.Get(testKey)
	require.NoError(t, err)
	assert.Equal(t, string(blob), raw)

	got, err := repo.Load(ctx, testKey)
	require.NoError(t, err)
	assert.Equal(t, blob, got)

	require.NoError(t, repo.Delete(ctx, testKey))
	_, err = repo.Load(ctx, testKey)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCartSnapshotRepository_SaveWithTTL(t *testing.T) {
	repo, mr := newTestRepo(t)

	require.NoError(t, repo.Save(context.Background(), testKey, []byte("[]"), time.Hour))

	assert.Equal(t, time.Hour, mr.TTL(testKey))
	mr.FastForward(2 * time.Hour)
	assert.False(t, mr.Exists(testKey))
}

func TestCartSnapshotRepository_EmptyKey(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Load(ctx, "")
	assert.ErrorIs(t, err, repository.ErrEmptyKey)
	assert.ErrorIs(t, repo.Save(ctx, "", nil, 0), repository.ErrEmptyKey)
	assert.ErrorIs(t, repo.Delete(ctx, ""), repository.ErrEmptyKey)
}

func TestCartSnapshotRepository_ServerDown(t *testing.T) {
	repo, mr := newTestRepo(t)
	mr.Close()

	_, err := repo.Load(context.Background(), testKey)

	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}

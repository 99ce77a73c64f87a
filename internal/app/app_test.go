package app

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gomarketplace/cart-service/internal/app/config"
	"github.com/gomarketplace/cart-service/internal/domain/entity"
	"github.com/gomarketplace/cart-service/internal/platform/logger"
	"github.com/gomarketplace/cart-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(driver string) *config.Config {
	return &config.Config{
		Env:        "test",
		HTTPServer: config.HTTPServerConfig{Port: "0"},
		GRPCServer: config.GRPCServerConfig{Port: "0"},
		Storage:    config.StorageConfig{Driver: driver},
		Cart:       config.CartConfig{StorageKey: "@GoMarketplace:cart"},
		Metrics:    config.MetricsConfig{Namespace: "test"},
	}
}

func TestNew_MemoryDriver(t *testing.T) {
	application, err := New(testConfig(config.StorageDriverMemory), logger.NewNop())

	require.NoError(t, err)
	cart, err := application.store.Cart(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestNew_RedisDriverRehydrates(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("@GoMarketplace:cart", `[{"id":"A","title":"Mug","image_url":"u","price":2,"quantity":3}]`))
	cfg := testConfig(config.StorageDriverRedis)
	cfg.Redis.Addr = mr.Addr()

	application, err := New(cfg, logger.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { application.closeClients(context.Background()) })

	cart, err := application.store.Cart(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.LineItem{{ID: "A", Title: "Mug", ImageURL: "u", Price: 2, Quantity: 3}}, cart.Items)

	_, err = application.store.Increment(context.Background(), "A")
	require.NoError(t, err)
	raw, err := mr.Get("@GoMarketplace:cart")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"A","title":"Mug","image_url":"u","price":2,"quantity":4}]`, raw)
}

func TestNew_RedisUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(config.StorageDriverRedis)
	cfg.Redis.Addr = mr.Addr()
	mr.Close()

	_, err := New(cfg, logger.NewNop())

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrConnectionFailed)
}

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gomarketplace/cart-service/internal/app/config"
	"github.com/gomarketplace/cart-service/internal/platform/logger"
	"github.com/gomarketplace/cart-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), config.RedisConfig{Addr: mr.Addr()}, logger.NewNop())

	require.NoError(t, err)
	assert.NoError(t, client.Close())
}

func TestNewClient_PingFails(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.RedisConfig{Addr: addr, DialTimeout: time.Second}
	client, err := NewClient(context.Background(), cfg, logger.NewNop())

	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrConnectionFailed)
	assert.Contains(t, err.Error(), addr)
	assert.Nil(t, client)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_EnvDefaults(t *testing.T) {
	t.Setenv("CART_STORAGE_DRIVER", StorageDriverMemory)

	cfg, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "@GoMarketplace:cart", cfg.Cart.StorageKey)
	assert.Equal(t, time.Duration(0), cfg.Cart.TTL)
	assert.Equal(t, "cart.updated", cfg.NATS.Subject)
	assert.False(t, cfg.NATS.Enabled)
}

func TestLoadConfig_UnknownDriver(t *testing.T) {
	t.Setenv("CART_STORAGE_DRIVER", "sqlite")

	_, err := LoadConfig("")

	assert.Error(t, err)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
env: test
storage:
  driver: mongo
cart:
  storage_key: "@Shop:cart"
  ttl: 48h
mongo:
  database: carts
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, StorageDriverMongo, cfg.Storage.Driver)
	assert.Equal(t, "@Shop:cart", cfg.Cart.StorageKey)
	assert.Equal(t, 48*time.Hour, cfg.Cart.TTL)
	assert.Equal(t, "carts", cfg.MongoDB.Database)
	assert.Equal(t, "cart_snapshots", cfg.MongoDB.Collection)
}

func TestLoadConfig_MissingFileFallsBackToEnv(t *testing.T) {
	t.Setenv("CART_STORAGE_DRIVER", StorageDriverMemory)
	t.Setenv("CART_STORAGE_KEY", "@Env:cart")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "@Env:cart", cfg.Cart.StorageKey)
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{
		Storage: StorageConfig{Driver: StorageDriverRedis},
		Cart:    CartConfig{StorageKey: "k", TTL: -time.Second},
	}
	assert.Error(t, cfg.Validate())

	cfg.Cart.TTL = 0
	assert.NoError(t, cfg.Validate())

	cfg.Cart.StorageKey = ""
	assert.Error(t, cfg.Validate())
}

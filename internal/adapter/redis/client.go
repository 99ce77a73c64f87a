package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/gomarketplace/cart-service/internal/app/config"
	"github.com/gomarketplace/cart-service/internal/platform/logger"
	"github.com/gomarketplace/cart-service/internal/repository"
	"github.com/redis/go-redis/v9"
)

const defaultDialTimeout = 5 * time.Second

// NewClient connects to the snapshot Redis and verifies it with a PING.
// Ping failures wrap repository.ErrConnectionFailed.
func NewClient(ctx context.Context, cfg config.RedisConfig, log logger.Logger) (*redis.Client, error) {
	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = defaultDialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: dialTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			log.Warnw("Failed to close Redis client after ping error", "addr", cfg.Addr, "error", closeErr)
		}
		return nil, fmt.Errorf("%w: redis at %s: %w", repository.ErrConnectionFailed, cfg.Addr, err)
	}

	log.Infow("Redis ping succeeded", "addr", cfg.Addr, "db", cfg.DB)
	return client, nil
}

package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/gomarketplace/cart-service/internal/app/config"
	"github.com/gomarketplace/cart-service/internal/platform/logger"
	"github.com/gomarketplace/cart-service/internal/repository"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultConnectTimeout = 10 * time.Second
	pingTimeout           = 5 * time.Second
	disconnectTimeout     = 5 * time.Second
)

// NewClient connects to the snapshot database and pings the primary.
// Ping failures wrap repository.ErrConnectionFailed.
func NewClient(ctx context.Context, cfg config.MongoDBConfig, log logger.Logger) (*mongo.Client, error) {
	connectTimeout := cfg.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = defaultConnectTimeout
	}

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(connectTimeout).
		SetAppName("cart-service")
	if cfg.User != "" && cfg.Password != "" {
		clientOptions.SetAuth(options.Credential{
			Username: cfg.User,
			Password: cfg.Password,
		})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("invalid mongodb client options: %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(ctx, pingTimeout)
	defer cancelPing()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
		defer cancel()
		if dErr := client.Disconnect(disconnectCtx); dErr != nil {
			log.Warnw("Failed to disconnect MongoDB client after ping error", "database", cfg.Database, "error", dErr)
		}
		return nil, fmt.Errorf("%w: mongodb database %s: %w", repository.ErrConnectionFailed, cfg.Database, err)
	}

	log.Infow("MongoDB ping succeeded", "database", cfg.Database, "collection", cfg.Collection)
	return client, nil
}

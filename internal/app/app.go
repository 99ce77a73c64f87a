package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gomarketplace/cart-service/internal/adapter/memory"
	mongoadapter "github.com/gomarketplace/cart-service/internal/adapter/mongo"
	natsadapter "github.com/gomarketplace/cart-service/internal/adapter/nats"
	redisadapter "github.com/gomarketplace/cart-service/internal/adapter/redis"
	"github.com/gomarketplace/cart-service/internal/app/config"
	"github.com/gomarketplace/cart-service/internal/platform/logger"
	"github.com/gomarketplace/cart-service/internal/platform/metrics"
	grpcserver "github.com/gomarketplace/cart-service/internal/port/grpc"
	httpserver "github.com/gomarketplace/cart-service/internal/port/http"
	"github.com/gomarketplace/cart-service/internal/repository"
	"github.com/gomarketplace/cart-service/internal/service"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type App struct {
	cfg         *config.Config
	log         logger.Logger
	store       service.CartStore
	httpServer  *httpserver.Server
	grpcServer  *grpcserver.Server
	redisClient *redis.Client
	mongoClient *mongo.Client
	natsConn    *nats.Conn
}

// New wires storage, events and transports, then loads the persisted cart.
// A storage backend that cannot be reached aborts startup.
func New(cfg *config.Config, appLogger logger.Logger) (*App, error) {
	ctx := context.Background()

	appLogger.Infof("Configuration loaded: Env=%s, Storage=%s, HTTP Port: %s, GRPC Port: %s",
		cfg.Env, cfg.Storage.Driver, cfg.HTTPServer.Port, cfg.GRPCServer.Port)

	application := &App{cfg: cfg, log: appLogger}

	repo, err := application.initStorage(ctx)
	if err != nil {
		application.closeClients(ctx)
		return nil, err
	}

	publisher, err := application.initPublisher()
	if err != nil {
		application.closeClients(ctx)
		return nil, err
	}

	metricsManager := metrics.NewMetricsManager(cfg.Metrics.Namespace)

	store := service.NewCartStore(repo, publisher, appLogger, metricsManager, service.CartStoreConfig{
		StorageKey: cfg.Cart.StorageKey,
		TTL:        cfg.Cart.TTL,
	})
	if err := store.Load(ctx); err != nil {
		application.closeClients(ctx)
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	application.store = store

	cartHandler := httpserver.NewCartHandler(store, appLogger)
	router := httpserver.NewRouter(cartHandler, appLogger, metricsManager)
	application.httpServer = httpserver.NewServer(
		appLogger,
		cfg.HTTPServer.Port,
		router,
		cfg.HTTPServer.ReadTimeout,
		cfg.HTTPServer.WriteTimeout,
	)

	application.grpcServer = grpcserver.NewServer(
		appLogger,
		metricsManager,
		cfg.GRPCServer.Port,
		cfg.GRPCServer.TimeoutGraceful,
		cfg.GRPCServer.MaxConnectionIdle,
		grpcserver.NewHandler(store, appLogger),
	)

	return application, nil
}

func (a *App) initStorage(ctx context.Context) (repository.CartSnapshotRepository, error) {
	switch a.cfg.Storage.Driver {
	case config.StorageDriverRedis:
		a.log.Info("Initializing Redis client...")
		client, err := redisadapter.NewClient(ctx, a.cfg.Redis, a.log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis client: %w", err)
		}
		a.redisClient = client
		a.log.Info("Redis client initialized successfully")
		return redisadapter.NewCartSnapshotRepository(client), nil

	case config.StorageDriverMongo:
		a.log.Info("Initializing MongoDB client...")
		client, err := mongoadapter.NewClient(ctx, a.cfg.MongoDB, a.log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize MongoDB client: %w", err)
		}
		a.mongoClient = client
		collection := client.Database(a.cfg.MongoDB.Database).Collection(a.cfg.MongoDB.Collection)
		if err := mongoadapter.EnsureIndexes(ctx, collection); err != nil {
			a.log.Warnf("Could not ensure MongoDB indexes: %v", err)
		}
		a.log.Info("MongoDB client initialized successfully")
		return mongoadapter.NewCartSnapshotRepository(collection), nil

	case config.StorageDriverMemory:
		a.log.Warnf("Using in-memory cart storage, the cart will not survive a restart")
		return memory.NewCartSnapshotRepository(), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", a.cfg.Storage.Driver)
	}
}

func (a *App) initPublisher() (service.CartEventPublisher, error) {
	if !a.cfg.NATS.Enabled {
		a.log.Info("NATS disabled, cart events will not be published")
		return nil, nil
	}

	conn, err := natsadapter.NewConnection(a.cfg.NATS, a.log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize NATS connection: %w", err)
	}
	a.natsConn = conn

	publisher, err := natsadapter.NewNATSPublisher(conn)
	if err != nil {
		return nil, err
	}
	a.log.Infof("Publishing cart events to NATS subject %s", a.cfg.NATS.Subject)
	return natsadapter.NewCartEventPublisher(publisher, a.cfg.NATS.Subject), nil
}

func (a *App) Run() {
	a.log.Info("Starting application components...")

	go func() {
		if err := a.httpServer.Start(); err != nil {
			a.log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()
	go func() {
		if err := a.grpcServer.Start(); err != nil {
			a.log.Fatalf("Failed to start gRPC server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit
	a.log.Infof("Received shutdown signal: %v. Shutting down application...", receivedSignal)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GRPCServer.TimeoutGraceful+5*time.Second)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Errorf("Error during HTTP server graceful shutdown: %v", err)
	}
	if err := a.grpcServer.Stop(shutdownCtx); err != nil {
		a.log.Errorf("Error during gRPC server graceful shutdown: %v", err)
	}

	a.closeClients(shutdownCtx)
	a.log.Info("Application shut down successfully")
}

func (a *App) closeClients(ctx context.Context) {
	if a.natsConn != nil {
		if err := a.natsConn.Drain(); err != nil {
			a.log.Errorf("Error draining NATS connection: %v", err)
		}
	}

	if a.mongoClient != nil {
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			a.log.Errorf("Error disconnecting from MongoDB: %v", err)
		} else {
			a.log.Info("MongoDB connection closed successfully")
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Errorf("Error closing Redis client: %v", err)
		} else {
			a.log.Info("Redis client closed successfully")
		}
	}
}

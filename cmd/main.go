package main

import (
	"log"
	"os"

	"github.com/gomarketplace/cart-service/internal/app"
	"github.com/gomarketplace/cart-service/internal/app/config"
	"github.com/gomarketplace/cart-service/internal/platform/logger"
)

func main() {
	cfg := config.MustLoad()

	appLogger, err := logger.NewZapLogger(logger.ZapLoggerConfig{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	if err != nil {
		log.Fatalf("cart-service: cannot build logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	application, err := app.New(cfg, appLogger)
	if err != nil {
		appLogger.Errorw("Cart service failed to start", "env", cfg.Env, "storage", cfg.Storage.Driver, "error", err)
		_ = appLogger.Sync()
		os.Exit(1)
	}

	application.Run()
}

package main

import (
	"context"
	"errors"
	"os"

	"github.com/joho/godotenv"

	"NewsDigest/internal/app"
	"NewsDigest/internal/config"
	"NewsDigest/internal/logging"
	"NewsDigest/internal/usecase"
)

func main() {
	// A .env file is optional; real deployments use plain env vars.
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, usecase.ErrDeliveryFailed) {
			// The digest was produced; only the mail leg failed.
			logger.Error("digest produced but not delivered", "error", err)
			return
		}
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}

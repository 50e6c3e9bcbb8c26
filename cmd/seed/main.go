package main

import (
	"context"
	"fmt"
	"os"

	"canteen-storefront/internal/config"
	"canteen-storefront/internal/db"
	"canteen-storefront/internal/logging"
	productrepo "canteen-storefront/internal/repository/product"
	"canteen-storefront/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(logging.Options{Service: "seed", Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	if _, err := seed.Apply(ctx, productrepo.NewPostgres(pool, logger), logger); err != nil {
		logger.Fatal().Err(err).Msg("seed apply")
	}
}

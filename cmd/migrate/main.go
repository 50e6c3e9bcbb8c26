package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"canteen-storefront/internal/config"
	"canteen-storefront/internal/db"
	"canteen-storefront/internal/logging"
	"canteen-storefront/internal/migrate"
)

func main() {
	var (
		down    bool
		version bool
	)
	flag.BoolVar(&down, "down", false, "Revert the most recent migration")
	flag.BoolVar(&version, "version", false, "Print the applied schema version and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(logging.Options{Service: "migrate", Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx := logging.WithContext(context.Background(), logger)
	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	switch {
	case version:
		v, dirty, err := migrate.Version(ctx, pool)
		if err != nil {
			logger.Fatal().Err(err).Msg("read schema version")
		}
		logger.Info().Uint("version", v).Bool("dirty", dirty).Msg("schema version")
	case down:
		if err := migrate.Rollback(ctx, pool); err != nil {
			logger.Fatal().Err(err).Msg("rollback migration")
		}
		logger.Info().Msg("migration rolled back")
	default:
		if err := migrate.Apply(ctx, pool); err != nil {
			logger.Fatal().Err(err).Msg("apply migrations")
		}
		logger.Info().Msg("migrations applied")
	}
}

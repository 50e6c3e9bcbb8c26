package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"canteen-storefront/internal/config"
	"canteen-storefront/internal/db"
	"canteen-storefront/internal/importer"
	"canteen-storefront/internal/logging"
	"canteen-storefront/internal/repository/product"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to the menu CSV (id,name,category,image,description,variety,price)")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(logging.Options{Service: "importer", Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect db")
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatal().Err(err).Str("file", filePath).Msg("open file")
	}
	defer f.Close()

	started := time.Now()
	imp := importer.NewCSVImporter(f, product.NewPostgres(pool, logger), logger)
	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatal().Err(err).Int("imported", count).Msg("import failed")
	}
	logger.Info().Int("imported", count).Dur("took", time.Since(started)).Msg("import finished")
}

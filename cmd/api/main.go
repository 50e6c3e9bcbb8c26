package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"canteen-storefront/internal/catalog"
	"canteen-storefront/internal/checkout"
	"canteen-storefront/internal/config"
	"canteen-storefront/internal/db"
	"canteen-storefront/internal/httpserver"
	"canteen-storefront/internal/importer"
	"canteen-storefront/internal/logging"
	customerrepo "canteen-storefront/internal/repository/customer"
	orderrepo "canteen-storefront/internal/repository/order"
	productrepo "canteen-storefront/internal/repository/product"
	tokenrepo "canteen-storefront/internal/repository/token"
	customersvc "canteen-storefront/internal/service/customer"
	"canteen-storefront/internal/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(logging.Options{Service: "api", Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithContext(ctx, logger)

	dbpool, err := db.Connect(ctx, cfg.DBConnString, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to db")
	}
	defer dbpool.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	menu, err := loadCatalog(ctx, cfg.CatalogCSV, productRepo, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("load catalog")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	orders := orderrepo.NewPostgres(dbpool, logger)
	orderCreator := checkout.NewBreakerCreator(orders, checkout.BreakerSettings{
		MaxFailures: cfg.Breaker.MaxFailures,
		OpenTimeout: cfg.Breaker.OpenTimeout,
	}, logger)
	sessions := session.NewManager(
		httpserver.CheckoutDeps(orderCreator, checkout.NewMetrics(registry)),
		cfg.Session.IdleTTL,
		logger,
	)

	customerService := customersvc.New(
		customerrepo.NewPostgres(dbpool, logger),
		tokenrepo.NewPostgres(dbpool, logger),
		cfg.Auth.AccessTokenTTL,
		logger,
	)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CustomerSvc: customerService,
		Orders:      orders,
		Catalog:     menu,
		Sessions:    sessions,
		Cookie: httpserver.SessionCookie{
			Name:   cfg.Session.CookieName,
			MaxAge: cfg.Session.IdleTTL,
			Secure: cfg.Session.SecureOnly,
		},
		CORSOrigins: cfg.CORSOrigins,
		Gatherer:    registry,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("init server")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		return
	}
	logger.Info().Msg("server stopped")
}

// loadCatalog prefers an explicit CSV menu and otherwise reads the products table.
func loadCatalog(ctx context.Context, csvPath string, products catalog.Source, logger zerolog.Logger) (*catalog.Catalog, error) {
	if csvPath == "" {
		return catalog.Load(ctx, products, logger)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		return nil, fmt.Errorf("open catalog csv: %w", err)
	}
	defer f.Close()

	list, err := importer.ParseMenu(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", csvPath, err)
	}
	c, err := catalog.New(list)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("file", csvPath).Int("products", c.Len()).Msg("catalog loaded from csv")
	return c, nil
}

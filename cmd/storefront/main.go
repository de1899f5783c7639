package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alpiedelaletra/storefront/internal/api"
	"github.com/alpiedelaletra/storefront/internal/cart"
	"github.com/alpiedelaletra/storefront/internal/catalog"
	"github.com/alpiedelaletra/storefront/internal/checkout"
	"github.com/alpiedelaletra/storefront/internal/config"
	"github.com/alpiedelaletra/storefront/internal/configurator"
	"github.com/alpiedelaletra/storefront/internal/messaging"
	"github.com/alpiedelaletra/storefront/internal/repository/postgres"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, db, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	if db != nil {
		defer db.Close()
	}
	logger.Info("Catalog loaded",
		zap.String("source", cfg.Catalog.Source),
		zap.Int("products", len(cat.Products())),
		zap.Int("models", len(cat.Models(catalog.AllModels))),
	)

	limits := configurator.Limits{
		Cart:                     cart.Limits{MaxQuantity: cfg.Cart.MaxQuantity},
		PersonalizationMaxLength: cfg.Cart.PersonalizationMaxLength,
	}

	sessions := cart.NewSessions(limits.Cart, cfg.Cart.SessionTTL, logger)
	go sessions.RunSweeper(ctx, sweepInterval(cfg.Cart.SessionTTL))

	var opener messaging.Opener
	if cfg.Messaging.Verify {
		opener = messaging.NewClient(cfg.Messaging, logger)
	} else {
		opener = messaging.NewRedirectOpener(logger)
	}

	router := api.NewRouter(cfg, api.Services{
		Catalog:  cat,
		Sessions: sessions,
		Checkout: checkout.NewService(opener, checkout.OptionsFromConfig(cfg), logger),
		Limits:   limits,
	}, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	zcfg := zap.NewDevelopmentConfig()
	if cfg.Environment == "production" {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

func loadCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*catalog.Catalog, *sql.DB, error) {
	if cfg.Catalog.Source == "postgres" {
		db, err := postgres.NewConnection(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		repos := postgres.NewRepositories(db, logger)
		cat, err := catalog.Load(ctx, repos.Catalog)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return cat, db, nil
	}

	src, err := catalog.OpenFile(cfg.Catalog.File)
	if err != nil {
		return nil, nil, err
	}
	cat, err := catalog.Load(ctx, src)
	return cat, nil, err
}

func sweepInterval(ttl time.Duration) time.Duration {
	every := ttl / 4
	if every < time.Minute {
		every = time.Minute
	}
	return every
}

// Package capsulelog is the persistence and derived-statistics core of a
// supplement-intake tracker. Open wires the configured key-value backend,
// logging and telemetry into a storage.Service; the UI layer calls the
// service's operations and feeds the record list through the stats package.
package capsulelog

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"

	"github.com/rmcosta/capsulelog/config"
	"github.com/rmcosta/capsulelog/credentials"
	"github.com/rmcosta/capsulelog/kvstore"
	"github.com/rmcosta/capsulelog/observability"
	"github.com/rmcosta/capsulelog/storage"
)

// App bundles the wired core for an embedding application.
type App struct {
	Service *storage.Service
	Logger  *zap.Logger

	// MetricsHandler serves the Prometheus scrape endpoint; mounting it is
	// the embedder's choice.
	MetricsHandler http.Handler

	store         kvstore.Store
	meterProvider *sdkmetric.MeterProvider
}

// Open builds the core from configuration: logger, telemetry, the selected
// key-value backend, the session token manager and — when enabled — the
// credentials capability.
func Open(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, err := observability.InitLogger(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	meterProvider, metricsHandler, err := observability.InitTelemetry("capsulelog")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		_ = observability.Shutdown(ctx, meterProvider, logger)
		return nil, err
	}

	metrics, err := storage.NewMetrics(otel.Meter("capsulelog/storage"))
	if err != nil {
		_ = store.Close()
		_ = observability.Shutdown(ctx, meterProvider, logger)
		return nil, fmt.Errorf("failed to create storage metrics: %w", err)
	}

	tokens := storage.NewTokenManager(cfg.Session.Secret, cfg.Session.TokenExpiry.Duration)

	var creds *credentials.Manager
	if cfg.Session.RequireCredentials {
		creds = credentials.NewManager(credentials.DefaultCost)
	}

	service := storage.New(store, tokens, creds, cfg.Storage.KeyPrefix, logger, metrics)

	logger.Info("capsulelog core opened",
		zap.String("backend", cfg.Storage.Backend),
		zap.Bool("credentials", creds != nil),
	)

	return &App{
		Service:        service,
		Logger:         logger,
		MetricsHandler: metricsHandler,
		store:          store,
		meterProvider:  meterProvider,
	}, nil
}

// openStore selects and opens the configured key-value backend.
func openStore(cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return kvstore.NewMemory(), nil
	case config.BackendSQLite:
		return kvstore.NewSQLite(cfg.Storage.Path)
	case config.BackendRedis:
		return kvstore.NewRedis(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// Close releases the backend and flushes telemetry.
func (a *App) Close(ctx context.Context) error {
	return errors.Join(
		a.store.Close(),
		observability.Shutdown(ctx, a.meterProvider, a.Logger),
	)
}

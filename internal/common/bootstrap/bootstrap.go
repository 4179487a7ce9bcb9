package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/app-registry/internal/common/config"
	"github.com/AlibekovAA/app-registry/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/app-registry/internal/common/crypto"
	"github.com/AlibekovAA/app-registry/internal/common/db"
	commonhttp "github.com/AlibekovAA/app-registry/internal/common/http"
	"github.com/AlibekovAA/app-registry/internal/common/logger"
	"github.com/AlibekovAA/app-registry/internal/common/resilience"
	"github.com/AlibekovAA/app-registry/internal/registry/repository"
	"github.com/AlibekovAA/app-registry/internal/registry/service"
)

type RegistryApp struct {
	Config      config.RegistryConfig
	Log         *logger.Logger
	Pool        *pgxpool.Pool
	Repo        repository.Repository
	Service     *service.RegistryService
	HealthCheck commonhttp.HealthCheck
}

// NewRegistryApp loads configuration and wires storage and the service.
// Pool is nil for the memory backend.
func NewRegistryApp(ctx context.Context) (*RegistryApp, error) {
	cfg, err := config.LoadRegistryConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogDir, constants.ServiceName, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app := &RegistryApp{Config: cfg, Log: log}

	switch cfg.Storage {
	case constants.StoragePostgres:
		if err := initializePostgres(ctx, app); err != nil {
			_ = log.Close()
			return nil, err
		}
	default:
		log.Warn("using in-memory storage, data is lost on restart")
		app.Repo = repository.NewMemoryRepository()
	}

	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Threshold:  cfg.CircuitBreakerThreshold,
		Timeout:    cfg.CircuitBreakerTimeout,
		ResetAfter: cfg.CircuitBreakerReset,
		Name:       "registry-storage",
		Logger:     log,
	})

	app.Service = service.NewRegistryService(
		app.Repo,
		commoncrypto.NewUUIDGenerator(),
		breaker,
		service.Config{UniqueAlias: cfg.UniqueAlias},
		log,
	)

	return app, nil
}

func initializePostgres(ctx context.Context, app *RegistryApp) error {
	if err := db.RunMigrations(ctx, app.Config.DatabaseURL); err != nil {
		return err
	}
	app.Log.Info("database migrations applied")

	pool, err := db.NewPool(ctx, app.Log, app.Config.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database pool: %w", err)
	}

	app.Pool = pool
	app.Repo = repository.NewPgRepository(pool, app.Log)
	app.HealthCheck = pool.Ping
	return nil
}

// Close releases the pool and the log file.
func (a *RegistryApp) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
	_ = a.Log.Close()
}

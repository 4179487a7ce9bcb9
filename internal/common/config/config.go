package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/AlibekovAA/app-registry/internal/common/constants"
	commonerrors "github.com/AlibekovAA/app-registry/internal/common/errors"
)

type RegistryConfig struct {
	HTTPPort       string        `env:"REGISTRY_HTTP_PORT"       envDefault:"8080"`
	Storage        string        `env:"REGISTRY_STORAGE"         envDefault:"postgres"`
	DatabaseURL    string        `env:"DATABASE_URL"`
	RequestTimeout time.Duration `env:"REGISTRY_REQUEST_TIMEOUT" envDefault:"5s"`

	// UniqueAlias switches alias uniqueness on top of username uniqueness.
	UniqueAlias  bool `env:"REGISTRY_UNIQUE_ALIAS"  envDefault:"true"`
	LegacyRoutes bool `env:"REGISTRY_LEGACY_ROUTES" envDefault:"true"`

	RateLimitRPS        float64 `env:"REGISTRY_RATE_LIMIT_RPS"         envDefault:"50"`
	RateLimitBurst      int     `env:"REGISTRY_RATE_LIMIT_BURST"       envDefault:"100"`
	LoginRateLimitRPS   float64 `env:"REGISTRY_LOGIN_RATE_LIMIT_RPS"   envDefault:"5"`
	LoginRateLimitBurst int     `env:"REGISTRY_LOGIN_RATE_LIMIT_BURST" envDefault:"10"`

	CircuitBreakerThreshold int32         `env:"REGISTRY_CB_THRESHOLD" envDefault:"500"`
	CircuitBreakerTimeout   time.Duration `env:"REGISTRY_CB_TIMEOUT"   envDefault:"15s"`
	CircuitBreakerReset     time.Duration `env:"REGISTRY_CB_RESET"     envDefault:"10s"`

	LogDir   string `env:"LOG_DIR"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

func LoadRegistryConfig() (RegistryConfig, error) {
	return loadRegistryConfig(env.Options{})
}

func loadRegistryConfig(opts env.Options) (RegistryConfig, error) {
	var cfg RegistryConfig
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return RegistryConfig{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return RegistryConfig{}, err
	}

	return cfg, nil
}

func (c RegistryConfig) validate() error {
	switch c.Storage {
	case constants.StoragePostgres:
		if c.DatabaseURL == "" {
			return commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("DATABASE_URL is required for %s storage", c.Storage))
		}
	case constants.StorageMemory:
	default:
		return commonerrors.ErrInvalidStorage.WithCause(fmt.Errorf("REGISTRY_STORAGE=%q", c.Storage))
	}

	if c.RequestTimeout <= 0 {
		return commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("REGISTRY_REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout))
	}

	return nil
}

package config

import (
	"errors"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/AlibekovAA/app-registry/internal/common/errors"
)

func TestLoadRegistryConfig_Defaults(t *testing.T) {
	cfg, err := loadRegistryConfig(env.Options{Environment: map[string]string{
		"DATABASE_URL": "postgres://registry@localhost/registry",
	}})
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "postgres", cfg.Storage)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.UniqueAlias)
	assert.True(t, cfg.LegacyRoutes)
	assert.Equal(t, 50.0, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.LoginRateLimitBurst)
	assert.Equal(t, int32(500), cfg.CircuitBreakerThreshold)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadRegistryConfig_Overrides(t *testing.T) {
	cfg, err := loadRegistryConfig(env.Options{Environment: map[string]string{
		"REGISTRY_STORAGE":       "memory",
		"REGISTRY_HTTP_PORT":     "9090",
		"REGISTRY_UNIQUE_ALIAS":  "false",
		"REGISTRY_LEGACY_ROUTES": "false",
		"REGISTRY_CB_TIMEOUT":    "2s",
		"LOG_LEVEL":              "debug",
	}})
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.False(t, cfg.UniqueAlias)
	assert.False(t, cfg.LegacyRoutes)
	assert.Equal(t, 2*time.Second, cfg.CircuitBreakerTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRegistryConfig_PostgresRequiresURL(t *testing.T) {
	_, err := loadRegistryConfig(env.Options{Environment: map[string]string{}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, commonerrors.ErrMissingRequiredEnv))
}

func TestLoadRegistryConfig_UnknownStorage(t *testing.T) {
	_, err := loadRegistryConfig(env.Options{Environment: map[string]string{
		"REGISTRY_STORAGE": "redis",
	}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, commonerrors.ErrInvalidStorage))
}

func TestLoadRegistryConfig_BadDuration(t *testing.T) {
	_, err := loadRegistryConfig(env.Options{Environment: map[string]string{
		"REGISTRY_STORAGE":         "memory",
		"REGISTRY_REQUEST_TIMEOUT": "soon",
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse environment")
}

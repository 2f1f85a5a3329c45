package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv sets the minimum environment for Load to succeed.
// t.Setenv also prevents parallel execution, which keeps the env isolated.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STUDENTHUB_DATABASE_URL", "postgres://localhost:5432/studenthub_test")
	t.Setenv("STUDENTHUB_AUTH_JWT_SECRET", "test-jwt-secret-that-is-32-chars-long")
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Server.LogLevel)
		assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
		assert.Equal(t, 0, cfg.Auth.BcryptCost)
		assert.Equal(t, 5, cfg.RateLimit.RegisterPerMinute)
		assert.Equal(t, 10, cfg.RateLimit.LoginPerMinute)
		assert.Equal(t, "listing-images", cfg.Storage.Bucket)
		assert.Empty(t, cfg.Storage.Endpoint)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("STUDENTHUB_SERVER_PORT", "9090")
		t.Setenv("STUDENTHUB_SERVER_LOG_LEVEL", "debug")
		t.Setenv("STUDENTHUB_RATE_LIMIT_LOGIN_PER_MINUTE", "3")
		t.Setenv("STUDENTHUB_STORAGE_ENDPOINT", "localhost:9000")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 9090, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Server.LogLevel)
		assert.Equal(t, 3, cfg.RateLimit.LoginPerMinute)
		assert.Equal(t, "localhost:9000", cfg.Storage.Endpoint)
	})

	t.Run("rejects missing database URL", func(t *testing.T) {
		t.Setenv("STUDENTHUB_AUTH_JWT_SECRET", "test-jwt-secret-that-is-32-chars-long")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation")
	})

	t.Run("rejects short JWT secret", func(t *testing.T) {
		t.Setenv("STUDENTHUB_DATABASE_URL", "postgres://localhost:5432/studenthub_test")
		t.Setenv("STUDENTHUB_AUTH_JWT_SECRET", "too-short")

		_, err := Load()
		require.Error(t, err)
	})

	t.Run("rejects invalid log level", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("STUDENTHUB_SERVER_LOG_LEVEL", "verbose")

		_, err := Load()
		require.Error(t, err)
	})
}

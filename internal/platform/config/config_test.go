package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.True(t, cfg.SeedSampleData)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, "100-M", cfg.RateLimit)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/ledger.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SEED_SAMPLE_DATA", "false")
	t.Setenv("JWT_EXPIRY_DURATION", "15m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StorageSQLite, cfg.StorageDriver)
	assert.Equal(t, "/tmp/ledger.db", cfg.SQLitePath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.False(t, cfg.SeedSampleData)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiryDuration)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Run("unknown storage driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "redis")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "STORAGE_DRIVER")
	})

	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "postgres")
		t.Setenv("PGSQL_URL", "")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "PGSQL_URL")
	})

	t.Run("bad log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "chatty")
		_, err := LoadConfig()
		assert.ErrorContains(t, err, "LOG_LEVEL")
	})

	t.Run("bad expiry falls back", func(t *testing.T) {
		t.Setenv("JWT_EXPIRY_DURATION", "soon")
		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	})
}

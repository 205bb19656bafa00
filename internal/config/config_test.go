package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"HTTP_PORT", "DATABASE_DRIVER", "DATABASE_DSN", "APP_DEBUG", "LOG_LEVEL", "LOG_FORMAT", "SEED_DEMO_DATA", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, DriverPostgres, cfg.DatabaseDriver)
	assert.Equal(t, defaultDSN, cfg.DatabaseDSN)
	assert.False(t, cfg.Debug)
	assert.True(t, cfg.SeedDemoData)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.Warnings)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "SQLite")
	t.Setenv("DATABASE_DSN", "")
	t.Setenv("APP_DEBUG", "true")
	t.Setenv("SEED_DEMO_DATA", "0")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, DriverSQLite, cfg.DatabaseDriver)
	assert.Equal(t, "skladets.db", cfg.DatabaseDSN)
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.SeedDemoData)
	assert.Equal(t, "console", cfg.LogFormat)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mongo")

	_, err := Load()
	assert.Error(t, err)
}

func TestGetBoolFallsBack(t *testing.T) {
	t.Setenv("SOME_FLAG", "not-a-bool")
	assert.True(t, getBool("SOME_FLAG", true))
	t.Setenv("SOME_FLAG", "false")
	assert.False(t, getBool("SOME_FLAG", true))
}

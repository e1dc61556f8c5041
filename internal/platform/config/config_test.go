package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PGSQL_URL", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ACCOUNT_CACHE_TTL", "")
	t.Setenv("LEDGER_CURRENCY_SCALE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.AccountCacheTTL)
	assert.Equal(t, int32(2), cfg.CurrencyScale)
	assert.False(t, cfg.IsProduction)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://ledger@localhost/ledger")
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("ACCOUNT_CACHE_TTL", "90s")
	t.Setenv("LEDGER_CURRENCY_SCALE", "0")
	t.Setenv("DEFAULT_WORKPLACE_ID", "wp-1")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres://ledger@localhost/ledger", cfg.DatabaseURL)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, 90*time.Second, cfg.AccountCacheTTL)
	assert.Equal(t, int32(0), cfg.CurrencyScale)
	assert.Equal(t, "wp-1", cfg.DefaultWorkplaceID)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")
	t.Setenv("ACCOUNT_CACHE_TTL", "soon")
	t.Setenv("LEDGER_CURRENCY_SCALE", "12")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Minute, cfg.AccountCacheTTL)
	assert.Equal(t, int32(2), cfg.CurrencyScale)
}

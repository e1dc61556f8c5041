package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultAccountCacheTTL = 5 * time.Minute
	defaultCurrencyScale   = 2
	maxCurrencyScale       = 8
)

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	IsProduction       bool
	EnableDBCheck      bool
	LogLevel           string
	RedisURL           string // Optional, enables the account cache
	AccountCacheTTL    time.Duration
	CurrencyScale      int32 // decimal places of the ledger currency, 0 for rupiah
	DefaultWorkplaceID string
	RunMigrations      bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("ACCOUNT_CACHE_TTL", defaultAccountCacheTTL.String())
	v.SetDefault("LEDGER_CURRENCY_SCALE", defaultCurrencyScale)
	v.SetDefault("DEFAULT_WORKPLACE_ID", "")
	v.SetDefault("RUN_MIGRATIONS", true)

	// Actual environment variables override the .env file and the defaults.
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		RedisURL:           v.GetString("REDIS_URL"),
		DefaultWorkplaceID: v.GetString("DEFAULT_WORKPLACE_ID"),
		RunMigrations:      v.GetBool("RUN_MIGRATIONS"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.LogLevel = strings.ToLower(v.GetString("LOG_LEVEL"))
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	// Load account cache TTL (e.g., "90s", "5m")
	ttlStr := v.GetString("ACCOUNT_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = defaultAccountCacheTTL
		log.Printf("Warning: Invalid value for ACCOUNT_CACHE_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl.String())
	}
	cfg.AccountCacheTTL = ttl

	scale := v.GetInt("LEDGER_CURRENCY_SCALE")
	if scale < 0 || scale > maxCurrencyScale {
		log.Printf("Warning: Invalid value for LEDGER_CURRENCY_SCALE (%d). Defaulting to %d.\n", scale, defaultCurrencyScale)
		scale = defaultCurrencyScale
	}
	cfg.CurrencyScale = int32(scale)

	return cfg, nil
}

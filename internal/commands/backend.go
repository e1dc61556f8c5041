package commands

import (
	"context"
	"log/slog"

	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/SscSPs/ledger_core/internal/repositories/cache"
	"github.com/SscSPs/ledger_core/internal/repositories/database/pgsql"
	"github.com/SscSPs/ledger_core/pkg/database"
)

// OpenPostgres migrates the schema when RUN_MIGRATIONS is set, opens the PostgreSQL pool and,
// when REDIS_URL is set, the account cache in front of it. A redis outage only disables the cache.
func OpenPostgres(ctx context.Context, cfg *config.Config) (*Backend, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.RunMigrations {
		result, err := database.Migrate(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		logger.Debug("Database schema checked", slog.Bool("applied", result.Applied), slog.Uint64("version", uint64(result.Version)))
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return nil, err
	}
	closers := []func(){func() { database.ClosePgxPool(pool) }}

	repos := pgsql.NewRepositoryProvider(pool)
	if cfg.RedisURL != "" {
		client, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("Account cache disabled", slog.String("error", err.Error()))
		} else {
			accountCache := cache.NewAccountCache(repos.AccountRepo, client, cfg.AccountCacheTTL)
			repos.AccountRepo = accountCache
			repos.TxManager = accountCache.WrapTransactions(repos.TxManager)
			closers = append(closers, func() {
				if cerr := client.Close(); cerr != nil {
					logger.Warn("Error closing redis client", slog.String("error", cerr.Error()))
				}
			})
		}
	}

	return &Backend{
		Services: services.NewServiceContainer(cfg, repos, nil),
		Accounts: pgsql.NewAccountRepository(pool),
		Close: func() {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		},
	}, nil
}

package commands

import (
	"errors"
	"log/slog"

	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/spf13/cobra"
)

func newMigrateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config.DatabaseURL == "" {
				return errors.New("PGSQL_URL is required")
			}
			result, err := app.Migrate(app.Config.DatabaseURL)
			if err != nil {
				return err
			}
			if logger := middleware.GetLoggerFromCtx(cmd.Context()); logger != nil {
				logger.Info("Database migrations finished",
					slog.Bool("applied", result.Applied),
					slog.Uint64("version", uint64(result.Version)))
			}
			return printJSON(cmd, result)
		},
	}
}

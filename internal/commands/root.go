package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/middleware"
	"github.com/SscSPs/ledger_core/internal/platform/config"
	"github.com/SscSPs/ledger_core/pkg/database"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// AccountWriter stores accounts of an imported chart.
type AccountWriter interface {
	SaveAccount(ctx context.Context, account domain.Account) error
}

// Backend is an opened store and the services running on it.
type Backend struct {
	Services *portssvc.ServiceContainer
	Accounts AccountWriter
	Close    func()
}

// Opener opens the backend commands run against.
type Opener func(ctx context.Context, cfg *config.Config) (*Backend, error)

// App holds what the commands share.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Open    Opener
	Migrate func(databaseURL string) (database.MigrationResult, error)
}

type globalOptions struct {
	workplace string
	user      string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand(app *App) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "ledger_core",
		Short: "Double-entry general ledger",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: middleware.CommandLogging(app.Logger),
	}

	rootCmd.PersistentFlags().StringVar(&opts.workplace, "workplace", app.Config.DefaultWorkplaceID, "workplace ID (default DEFAULT_WORKPLACE_ID)")
	rootCmd.PersistentFlags().StringVar(&opts.user, "user", "cli", "acting user ID recorded in audit fields")

	rootCmd.AddCommand(
		newMigrateCommand(app),
		newAccountCommand(app, opts),
		newEntryCommand(app, opts),
		newLedgerCommand(app, opts),
		newAgingCommand(),
		newReconcileCommand(app),
	)

	return rootCmd
}

// withBackend opens the backend for one command and closes it afterwards.
func withBackend(cmd *cobra.Command, app *App, opts *globalOptions, fn func(ctx context.Context, b *Backend) error) error {
	if opts.workplace == "" {
		return errors.New("--workplace is required when DEFAULT_WORKPLACE_ID is not set")
	}
	ctx := middleware.WithUserID(cmd.Context(), opts.user)
	b, err := app.Open(ctx, app.Config)
	if err != nil {
		return fmt.Errorf("opening ledger store: %w", err)
	}
	defer b.Close()
	return fn(ctx, b)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func parseDate(flag, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s must be YYYY-MM-DD: %w", flag, err)
	}
	return t, nil
}

// parseOptionalDate returns nil for an empty flag value.
func parseOptionalDate(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(flag, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

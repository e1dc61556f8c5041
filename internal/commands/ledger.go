package commands

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/spf13/cobra"
)

func newLedgerCommand(app *App, opts *globalOptions) *cobra.Command {
	var (
		accounts    []string
		accountType string
		from        string
		to          string
	)
	cmd := &cobra.Command{
		Use:   "gl",
		Short: "Project the general ledger of a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fromDate, err := parseDate("from", from)
			if err != nil {
				return err
			}
			toDate, err := parseDate("to", to)
			if err != nil {
				return err
			}
			req := dto.GeneralLedgerRequest{AccountCodes: accounts, From: fromDate, To: toDate}
			if accountType != "" {
				t := domain.AccountType(accountType)
				req.AccountType = &t
			}
			return withBackend(cmd, app, opts, func(ctx context.Context, b *Backend) error {
				ledger, err := b.Services.Ledger.GeneralLedger(ctx, opts.workplace, req)
				if err != nil {
					return err
				}
				return printJSON(cmd, ledger)
			})
		},
	}
	cmd.Flags().StringSliceVar(&accounts, "account", nil, "account codes to include (default: all)")
	cmd.Flags().StringVar(&accountType, "type", "", "restrict to one account type")
	cmd.Flags().StringVar(&from, "from", "", "first day YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

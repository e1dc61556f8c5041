package commands

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/spf13/cobra"
)

// newAgingCommand classifies the items of a file; it needs no store.
func newAgingCommand() *cobra.Command {
	var (
		file string
		asOf string
	)
	cmd := &cobra.Command{
		Use:   "aging",
		Short: "Build an aging report from a YAML list of open items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req dto.AgingReportRequest
			if err := readYAML(file, &req); err != nil {
				return err
			}
			ref, err := parseOptionalDate("as-of", asOf)
			if err != nil {
				return err
			}
			if ref != nil {
				req.ReferenceDate = ref
			}
			report, err := services.NewAgingService().BuildReport(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd, report)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to the items YAML file")
	cmd.Flags().StringVar(&asOf, "as-of", "", "reference date YYYY-MM-DD (default: file value, then today)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newReconcileCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Bank reconciliation tools",
	}

	var (
		file  string
		scale int32
	)
	preview := &cobra.Command{
		Use:   "preview",
		Short: "Compute adjusted balances from YAML figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var figures domain.ReconciliationFigures
			if err := readYAML(file, &figures); err != nil {
				return err
			}
			svc := services.NewReconciliationService(nil, nil, nil, nil, services.WithCurrencyScale(scale))
			return printJSON(cmd, svc.Preview(figures))
		},
	}
	preview.Flags().StringVar(&file, "file", "", "path to the figures YAML file")
	preview.Flags().Int32Var(&scale, "scale", app.Config.CurrencyScale, "decimal places of the ledger currency")
	_ = preview.MarkFlagRequired("file")

	cmd.AddCommand(preview)
	return cmd
}

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// chartFile is the YAML layout of an imported chart of accounts.
type chartFile struct {
	Accounts []chartAccount `yaml:"accounts" validate:"required,dive"`
}

type chartAccount struct {
	Code        string             `json:"code" yaml:"code" validate:"required,max=50"`
	Name        string             `json:"name" yaml:"name" validate:"required,max=200"`
	AccountType domain.AccountType `json:"accountType" yaml:"accountType" validate:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	SubType     string             `json:"subType" yaml:"subType"`
	ParentCode  string             `json:"parentCode" yaml:"parentCode"`
	IsHeader    bool               `json:"isHeader" yaml:"isHeader"`
	IsActive    *bool              `json:"isActive" yaml:"isActive"` // defaults to true
}

type importResult struct {
	Imported int      `json:"imported"`
	Codes    []string `json:"codes"`
}

func newAccountCommand(app *App, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Inspect and seed the chart of accounts",
	}
	cmd.AddCommand(newAccountShowCommand(app, opts), newAccountImportCommand(app, opts))
	return cmd
}

func newAccountShowCommand(app *App, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <code>",
		Short: "Show an account and its balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, app, opts, func(ctx context.Context, b *Backend) error {
				acc, err := b.Services.Accounts.Lookup(ctx, opts.workplace, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, dto.ToAccountResponse(acc))
			})
		},
	}
}

func newAccountImportCommand(app *App, opts *globalOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import accounts from a YAML chart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var chart chartFile
			if err := readYAML(file, &chart); err != nil {
				return err
			}
			if err := validateChart(chart); err != nil {
				return err
			}
			return withBackend(cmd, app, opts, func(ctx context.Context, b *Backend) error {
				result := importResult{Codes: []string{}}
				now := time.Now().UTC()
				for _, a := range chart.Accounts {
					account := toAccount(a, opts.workplace, opts.user, now)
					if err := b.Accounts.SaveAccount(ctx, account); err != nil {
						return fmt.Errorf("importing account %s: %w", a.Code, err)
					}
					result.Imported++
					result.Codes = append(result.Codes, a.Code)
				}
				return printJSON(cmd, result)
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to the chart YAML file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// validateChart checks field rules and rejects codes listed twice.
func validateChart(chart chartFile) error {
	if err := services.NewValidator().Struct(chart); err != nil {
		return apperrors.NewValidationError("accounts", "%v", err)
	}
	seen := make(map[string]struct{}, len(chart.Accounts))
	var errs apperrors.ValidationErrors
	for _, a := range chart.Accounts {
		if _, dup := seen[a.Code]; dup {
			errs = append(errs, apperrors.NewValidationError("accounts", "account %s is listed twice", a.Code))
		}
		seen[a.Code] = struct{}{}
	}
	return errs.OrNil()
}

func toAccount(a chartAccount, workplaceID, userID string, now time.Time) domain.Account {
	active := true
	if a.IsActive != nil {
		active = *a.IsActive
	}
	return domain.Account{
		AccountID:   uuid.NewString(),
		WorkplaceID: workplaceID,
		Code:        a.Code,
		Name:        a.Name,
		AccountType: a.AccountType,
		SubType:     a.SubType,
		ParentCode:  a.ParentCode,
		IsHeader:    a.IsHeader,
		IsActive:    active,
		AuditFields: domain.NewAuditFields(now, userID),
		Balance:     decimal.Zero,
	}
}

package commands

import (
	"context"
	"fmt"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/spf13/cobra"
)

func newEntryCommand(app *App, opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage journal entries",
	}
	cmd.AddCommand(
		newEntryCreateCommand(app, opts),
		newEntryShowCommand(app, opts),
		newEntryListCommand(app, opts),
		newEntryPostCommand(app, opts),
		newEntryReverseCommand(app, opts),
		newEntryDeleteCommand(app, opts),
	)
	return cmd
}

func newEntryCreateCommand(app *App, opts *globalOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a draft entry from a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req dto.CreateEntryRequest
			if err := readYAML(file, &req); err != nil {
				return err
			}
			return withBackend(cmd, app, opts, func(ctx context.Context, b *Backend) error {
				entry, err := b.Services.Journal.CreateEntry(ctx, opts.workplace, req, opts.user)
				if err != nil {
					return err
				}
				return printJSON(cmd, entry)
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to the entry YAML file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newEntryShowCommand(app *App, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <entry-id>",
		Short: "Show an entry with its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, app, opts, func(ctx context.Context, b *Backend) error {
				entry, err := b.Services.Journal.GetEntry(ctx, opts.workplace, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, entry)
			})
		},
	}
}

func newEntryListCommand(app *App, opts *globalOptions) *cobra.Command {
	var (
		limit  int
		status string
		next   string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := dto.ListEntriesParams{Limit: limit}
			if status != "" {
				s := domain.JournalStatus(status)
				params.Status = &s
			}
			if next != "" {
				params.NextToken = &next
			}
			return withBackend(cmd, app, opts, func(ctx context.Context, b *Backend) error {
				page, err := b.Services.Journal.ListEntries(ctx, opts.workplace, params)
				if err != nil {
					return err
				}
				return printJSON(cmd, page)
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "page size (1-100)")
	cmd.Flags().StringVar(&status, "status", "", "DRAFT or POSTED")
	cmd.Flags().StringVar(&next, "next", "", "token of the next page")
	return cmd
}

func newEntryPostCommand(app *App, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "post <entry-id>",
		Short: "Post a draft entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, app, opts, func(ctx context.Context, b *Backend) error {
				entry, err := b.Services.Journal.PostEntry(ctx, opts.workplace, args[0], opts.user)
				if err != nil {
					return err
				}
				return printJSON(cmd, entry)
			})
		},
	}
}

func newEntryReverseCommand(app *App, opts *globalOptions) *cobra.Command {
	var date string
	cmd := &cobra.Command{
		Use:   "reverse <entry-id>",
		Short: "Post the reversal of a posted entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reversalDate, err := parseOptionalDate("date", date)
			if err != nil {
				return err
			}
			return withBackend(cmd, app, opts, func(ctx context.Context, b *Backend) error {
				entry, err := b.Services.Journal.ReverseEntry(ctx, opts.workplace, args[0],
					dto.ReverseEntryRequest{ReversalDate: reversalDate}, opts.user)
				if err != nil {
					return err
				}
				return printJSON(cmd, entry)
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "reversal date YYYY-MM-DD (default: original entry date)")
	return cmd
}

func newEntryDeleteCommand(app *App, opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <entry-id>...",
		Short: "Delete draft entries",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBackend(cmd, app, opts, func(ctx context.Context, b *Backend) error {
				if len(args) == 1 {
					if err := b.Services.Journal.DeleteEntry(ctx, opts.workplace, args[0], opts.user); err != nil {
						return err
					}
					return printJSON(cmd, map[string]string{"deleted": args[0]})
				}
				result, err := b.Services.Journal.BatchDeleteEntries(ctx, opts.workplace, args, opts.user)
				if err != nil {
					return err
				}
				if err := printJSON(cmd, result); err != nil {
					return err
				}
				if result.Failed > 0 {
					return fmt.Errorf("%d of %d entries were not deleted", result.Failed, len(args))
				}
				return nil
			})
		},
	}
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ledgerProjector implements the LedgerProjectorSvc interface
type ledgerProjector struct {
	BaseService
	accountRepo portsrepo.AccountReader
	ledgerRepo  portsrepo.LedgerReader
}

// NewLedgerProjector creates the general ledger projection over posted lines.
func NewLedgerProjector(accountRepo portsrepo.AccountReader, ledgerRepo portsrepo.LedgerReader, options ...ServiceOption) portssvc.LedgerProjectorSvc {
	return &ledgerProjector{
		BaseService: newBaseService(options...),
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.LedgerProjectorSvc = (*ledgerProjector)(nil)

func (s *ledgerProjector) GeneralLedger(ctx context.Context, workplaceID string, req dto.GeneralLedgerRequest) (*domain.GeneralLedger, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}
	filter := req.ToFilter()
	from, to := accounting.DateOnly(filter.From), accounting.DateOnly(filter.To)

	accounts, err := s.selectAccounts(ctx, workplaceID, filter)
	if err != nil {
		return nil, err
	}

	ledger := &domain.GeneralLedger{
		From:     from,
		To:       to,
		Accounts: make([]domain.AccountLedger, 0, len(accounts)),
		Summary:  domain.GeneralLedgerSummary{TotalDebit: decimal.Zero, TotalCredit: decimal.Zero},
	}
	if len(accounts) == 0 {
		return ledger, nil
	}

	codes := make([]string, len(accounts))
	for i, acc := range accounts {
		codes[i] = acc.Code
	}

	opening, err := s.ledgerRepo.PostedTotalsBefore(ctx, workplaceID, codes, from)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute opening balances", slog.String("workplace_id", workplaceID))
		return nil, fmt.Errorf("failed to compute opening balances: %w", err)
	}
	lines, err := s.ledgerRepo.ListPostedLines(ctx, workplaceID, codes, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to list posted lines", slog.String("workplace_id", workplaceID))
		return nil, fmt.Errorf("failed to list posted lines: %w", err)
	}
	SortPostedLines(lines)

	byAccount := make(map[string][]domain.PostedLine, len(codes))
	for _, l := range lines {
		byAccount[l.AccountCode] = append(byAccount[l.AccountCode], l)
	}

	entryIDs := make(map[string]struct{})
	for _, acc := range accounts {
		al, err := project(acc, opening[acc.Code], byAccount[acc.Code])
		if err != nil {
			return nil, err
		}
		for _, l := range al.Lines {
			entryIDs[l.EntryID] = struct{}{}
		}
		ledger.Summary.TotalDebit = ledger.Summary.TotalDebit.Add(al.TotalDebit)
		ledger.Summary.TotalCredit = ledger.Summary.TotalCredit.Add(al.TotalCredit)
		ledger.Accounts = append(ledger.Accounts, al)
	}
	ledger.Summary.EntryCount = len(entryIDs)

	s.LogDebug(ctx, "General ledger projected",
		slog.Int("accounts", len(ledger.Accounts)),
		slog.Int("entries", ledger.Summary.EntryCount))
	return ledger, nil
}

// selectAccounts resolves the filter into non-header accounts ordered by code.
func (s *ledgerProjector) selectAccounts(ctx context.Context, workplaceID string, filter domain.GeneralLedgerFilter) ([]domain.Account, error) {
	var selected []domain.Account
	if len(filter.AccountCodes) > 0 {
		codes := uniqueStrings(filter.AccountCodes)
		found, err := s.accountRepo.FindAccountsByCodes(ctx, workplaceID, codes)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch accounts: %w", err)
		}
		var errs apperrors.ValidationErrors
		for _, code := range codes {
			acc, ok := found[code]
			if !ok {
				errs = append(errs, apperrors.NewValidationError("accountCodes", "account %s does not exist", code))
				continue
			}
			if filter.AccountType != nil && acc.AccountType != *filter.AccountType {
				continue
			}
			selected = append(selected, acc)
		}
		if err := errs.OrNil(); err != nil {
			return nil, err
		}
	} else {
		all, err := s.accountRepo.ListAccounts(ctx, workplaceID, filter.AccountType)
		if err != nil {
			return nil, fmt.Errorf("failed to list accounts: %w", err)
		}
		selected = all
	}

	out := selected[:0]
	for _, acc := range selected {
		if !acc.IsHeader {
			out = append(out, acc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// SortPostedLines orders lines by (entryDate, entryNumber, lineNumber) ascending.
func SortPostedLines(lines []domain.PostedLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if !a.EntryDate.Equal(b.EntryDate) {
			return a.EntryDate.Before(b.EntryDate)
		}
		if a.EntryNumber != b.EntryNumber {
			return a.EntryNumber < b.EntryNumber
		}
		return a.LineNumber < b.LineNumber
	})
}

// project folds already sorted lines of one account into running balances.
func project(acc domain.Account, opening domain.AccountTotals, lines []domain.PostedLine) (domain.AccountLedger, error) {
	al := domain.AccountLedger{
		AccountCode:    acc.Code,
		AccountName:    acc.Name,
		AccountType:    acc.AccountType,
		OpeningBalance: accounting.NormalBalance(opening, acc.AccountType),
		Lines:          make([]domain.LedgerLine, 0, len(lines)),
		TotalDebit:     decimal.Zero,
		TotalCredit:    decimal.Zero,
	}

	running := al.OpeningBalance
	for _, l := range lines {
		signed, err := accounting.CalculateSignedAmount(l.LineItem, acc.AccountType)
		if err != nil {
			return al, err
		}
		running = running.Add(signed)
		al.TotalDebit = al.TotalDebit.Add(l.DebitAmount)
		al.TotalCredit = al.TotalCredit.Add(l.CreditAmount)
		al.Lines = append(al.Lines, domain.LedgerLine{PostedLine: l, SignedAmount: signed, RunningBalance: running})
	}
	al.ClosingBalance = running
	return al, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
)

// accountRegistry implements the AccountRegistrySvc interface
type accountRegistry struct {
	BaseService
	accountRepo portsrepo.AccountReader
}

// NewAccountRegistry creates the read-only chart-of-accounts lookup.
// repo may be a caching decorator; postings re-check accounts under lock.
func NewAccountRegistry(repo portsrepo.AccountReader, options ...ServiceOption) portssvc.AccountRegistrySvc {
	return &accountRegistry{
		BaseService: newBaseService(options...),
		accountRepo: repo,
	}
}

// Ensure accountRegistry implements the AccountRegistrySvc interface
var _ portssvc.AccountRegistrySvc = (*accountRegistry)(nil)

func (s *accountRegistry) Lookup(ctx context.Context, workplaceID string, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, workplaceID, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("account %s: %w", code, apperrors.ErrNotFound)
		}
		s.LogError(ctx, err, "Failed to find account", slog.String("account_code", code))
		return nil, fmt.Errorf("failed to find account %s: %w", code, err)
	}
	return account, nil
}

func (s *accountRegistry) IsPostable(account domain.Account) bool {
	return account.IsPostable()
}

func (s *accountRegistry) ResolvePostable(ctx context.Context, workplaceID string, codes []string) (map[string]domain.Account, error) {
	unique := uniqueStrings(codes)
	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, workplaceID, unique)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts", slog.Int("count", len(unique)))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	if err := checkPostable(unique, accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *accountRegistry) FindPostableBySubType(ctx context.Context, workplaceID string, subType string) (*domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsBySubType(ctx, workplaceID, subType)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts by sub-type", slog.String("sub_type", subType))
		return nil, fmt.Errorf("failed to fetch accounts with sub-type %s: %w", subType, err)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
	for i := range accounts {
		if accounts[i].IsPostable() {
			return &accounts[i], nil
		}
	}
	return nil, fmt.Errorf("no postable account with sub-type %s: %w", subType, apperrors.ErrNotFound)
}

// checkPostable reports every code that is missing, inactive or a header account.
func checkPostable(codes []string, accounts map[string]domain.Account) error {
	var errs apperrors.ValidationErrors
	for _, code := range codes {
		acc, ok := accounts[code]
		switch {
		case !ok:
			errs = append(errs, apperrors.NewValidationError("accountCode", "account %s does not exist", code))
		case !acc.IsActive:
			errs = append(errs, apperrors.NewValidationError("accountCode", "account %s is inactive", code))
		case acc.IsHeader:
			errs = append(errs, apperrors.NewValidationError("accountCode", "account %s is a header account and cannot be posted to", code))
		}
	}
	return errs.OrNil()
}

func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, s := range input {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		result = append(result, s)
	}
	return result
}

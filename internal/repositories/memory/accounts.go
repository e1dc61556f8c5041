package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SeedAccounts stores accounts as the chart-of-accounts collaborator would.
func (s *Store) SeedAccounts(accounts ...domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, acc := range accounts {
		s.data.accounts[key{acc.WorkplaceID, acc.Code}] = acc
	}
}

// SaveAccount inserts one account, failing with apperrors.ErrDuplicate when the code is taken.
func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	defer s.write(ctx)()
	k := key{account.WorkplaceID, account.Code}
	if _, exists := s.data.accounts[k]; exists {
		return fmt.Errorf("account %s: %w", account.Code, apperrors.ErrDuplicate)
	}
	s.data.accounts[k] = account
	return nil
}

// SetAccountActive flips the active flag of an account.
func (s *Store) SetAccountActive(workplaceID, code string, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.data.accounts[key{workplaceID, code}]
	if !ok {
		return fmt.Errorf("account %s: %w", code, apperrors.ErrNotFound)
	}
	acc.IsActive = active
	s.data.accounts[key{workplaceID, code}] = acc
	return nil
}

func (s *Store) FindAccountByCode(ctx context.Context, workplaceID string, code string) (*domain.Account, error) {
	defer s.read(ctx)()
	acc, ok := s.data.accounts[key{workplaceID, code}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &acc, nil
}

func (s *Store) FindAccountsByCodes(ctx context.Context, workplaceID string, codes []string) (map[string]domain.Account, error) {
	defer s.read(ctx)()
	return s.accountsByCodes(workplaceID, codes), nil
}

func (s *Store) accountsByCodes(workplaceID string, codes []string) map[string]domain.Account {
	out := make(map[string]domain.Account, len(codes))
	for _, code := range codes {
		if acc, ok := s.data.accounts[key{workplaceID, code}]; ok {
			out[code] = acc
		}
	}
	return out
}

func (s *Store) FindAccountsBySubType(ctx context.Context, workplaceID string, subType string) ([]domain.Account, error) {
	defer s.read(ctx)()
	var out []domain.Account
	for k, acc := range s.data.accounts {
		if k.workplaceID == workplaceID && acc.SubType == subType {
			out = append(out, acc)
		}
	}
	sortAccounts(out)
	return out, nil
}

func (s *Store) ListAccounts(ctx context.Context, workplaceID string, accountType *domain.AccountType) ([]domain.Account, error) {
	defer s.read(ctx)()
	var out []domain.Account
	for k, acc := range s.data.accounts {
		if k.workplaceID != workplaceID {
			continue
		}
		if accountType != nil && acc.AccountType != *accountType {
			continue
		}
		out = append(out, acc)
	}
	sortAccounts(out)
	return out, nil
}

// FindAccountsByCodesForUpdate relies on the store lock held by WithinTransaction.
func (s *Store) FindAccountsByCodesForUpdate(ctx context.Context, workplaceID string, codes []string) (map[string]domain.Account, error) {
	defer s.write(ctx)()
	return s.accountsByCodes(workplaceID, codes), nil
}

func (s *Store) UpdateAccountBalancesInTx(ctx context.Context, workplaceID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	defer s.write(ctx)()
	for code := range balanceChanges {
		if _, ok := s.data.accounts[key{workplaceID, code}]; !ok {
			return fmt.Errorf("account %s: %w", code, apperrors.ErrNotFound)
		}
	}
	for code, change := range balanceChanges {
		k := key{workplaceID, code}
		acc := s.data.accounts[k]
		acc.Balance = acc.Balance.Add(change)
		acc.Touch(now, userID)
		s.data.accounts[k] = acc
	}
	return nil
}

func sortAccounts(accounts []domain.Account) {
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Code < accounts[j].Code })
}

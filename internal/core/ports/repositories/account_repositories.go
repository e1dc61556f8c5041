package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByCode retrieves an account by its code within a workplace.
	FindAccountByCode(ctx context.Context, workplaceID string, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves multiple accounts keyed by code. Unknown codes are absent from the map.
	FindAccountsByCodes(ctx context.Context, workplaceID string, codes []string) (map[string]domain.Account, error)

	// FindAccountsBySubType retrieves accounts with the given sub-type, ordered by code.
	FindAccountsBySubType(ctx context.Context, workplaceID string, subType string) ([]domain.Account, error)

	// ListAccounts retrieves accounts of a workplace ordered by code, optionally of one type.
	ListAccounts(ctx context.Context, workplaceID string, accountType *domain.AccountType) ([]domain.Account, error)
}

// AccountTransactionSupport defines operations that support posting transactions.
// Both must be called with a ctx obtained from TransactionManager.WithinTransaction.
type AccountTransactionSupport interface {
	// FindAccountsByCodesForUpdate selects accounts and locks them, in code order, until the transaction ends.
	FindAccountsByCodesForUpdate(ctx context.Context, workplaceID string, codes []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx adds each signed change to the balance of the account with that code.
	UpdateAccountBalancesInTx(ctx context.Context, workplaceID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountTransactionSupport
}

package repositories

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// CashTransactionReader defines read operations for cash transaction data
type CashTransactionReader interface {
	FindCashTransactionByID(ctx context.Context, workplaceID string, cashTransactionID string) (*domain.CashTransaction, error)

	// ListCashTransactions retrieves cash transactions ordered by transaction date descending, optionally in one status.
	ListCashTransactions(ctx context.Context, workplaceID string, status *domain.CashTransactionStatus) ([]domain.CashTransaction, error)
}

// CashTransactionWriter defines write operations for cash transaction data
type CashTransactionWriter interface {
	SaveCashTransaction(ctx context.Context, ct domain.CashTransaction) error

	// UpdateCashTransaction is version-checked against ct.Version.
	UpdateCashTransaction(ctx context.Context, ct domain.CashTransaction) error

	DeleteCashTransaction(ctx context.Context, workplaceID string, cashTransactionID string, version int) error
}

// CashTransactionTransactionSupport defines operations that must run inside TransactionManager.WithinTransaction.
type CashTransactionTransactionSupport interface {
	FindCashTransactionByIDForUpdate(ctx context.Context, workplaceID string, cashTransactionID string) (*domain.CashTransaction, error)
}

// CashTransactionRepositoryFacade combines all cash-transaction-related repository interfaces
type CashTransactionRepositoryFacade interface {
	CashTransactionReader
	CashTransactionWriter
	CashTransactionTransactionSupport
}

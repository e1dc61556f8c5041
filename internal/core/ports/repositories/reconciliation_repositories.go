package repositories

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// ReconciliationReader defines read operations for bank reconciliation data
type ReconciliationReader interface {
	FindReconciliationByID(ctx context.Context, workplaceID string, reconciliationID string) (*domain.BankReconciliation, error)

	// ListReconciliations retrieves reconciliations ordered by statement date descending.
	// An empty bankAccountCode lists every bank account.
	ListReconciliations(ctx context.Context, workplaceID string, bankAccountCode string) ([]domain.BankReconciliation, error)
}

// ReconciliationWriter defines write operations for bank reconciliation data
type ReconciliationWriter interface {
	SaveReconciliation(ctx context.Context, rec domain.BankReconciliation) error

	// UpdateReconciliation is version-checked against rec.Version.
	UpdateReconciliation(ctx context.Context, rec domain.BankReconciliation) error

	DeleteReconciliation(ctx context.Context, workplaceID string, reconciliationID string, version int) error
}

// ReconciliationTransactionSupport defines operations that must run inside TransactionManager.WithinTransaction.
type ReconciliationTransactionSupport interface {
	FindReconciliationByIDForUpdate(ctx context.Context, workplaceID string, reconciliationID string) (*domain.BankReconciliation, error)
}

// ReconciliationRepositoryFacade combines all reconciliation-related repository interfaces
type ReconciliationRepositoryFacade interface {
	ReconciliationReader
	ReconciliationWriter
	ReconciliationTransactionSupport
}

package repositories

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// TransferReader defines read operations for bank transfer data
type TransferReader interface {
	FindTransferByID(ctx context.Context, workplaceID string, transferID string) (*domain.BankTransfer, error)

	// ListTransfers retrieves transfers ordered by transfer date descending, optionally in one status.
	ListTransfers(ctx context.Context, workplaceID string, status *domain.TransferStatus) ([]domain.BankTransfer, error)
}

// TransferWriter defines write operations for bank transfer data
type TransferWriter interface {
	SaveTransfer(ctx context.Context, transfer domain.BankTransfer) error

	// UpdateTransfer is version-checked against transfer.Version.
	UpdateTransfer(ctx context.Context, transfer domain.BankTransfer) error

	DeleteTransfer(ctx context.Context, workplaceID string, transferID string, version int) error
}

// TransferTransactionSupport defines operations that must run inside TransactionManager.WithinTransaction.
type TransferTransactionSupport interface {
	FindTransferByIDForUpdate(ctx context.Context, workplaceID string, transferID string) (*domain.BankTransfer, error)
}

// TransferRepositoryFacade combines all transfer-related repository interfaces
type TransferRepositoryFacade interface {
	TransferReader
	TransferWriter
	TransferTransactionSupport
}

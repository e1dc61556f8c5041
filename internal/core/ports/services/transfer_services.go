package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// TransferSvcFacade is the bank transfer workflow.
type TransferSvcFacade interface {
	CreateTransfer(ctx context.Context, workplaceID string, req dto.CreateTransferRequest, userID string) (*domain.BankTransfer, error)
	GetTransfer(ctx context.Context, workplaceID string, id string) (*domain.BankTransfer, error)
	ListTransfers(ctx context.Context, workplaceID string, status *domain.TransferStatus) ([]domain.BankTransfer, error)

	// ApproveTransfer posts the transfer entry and marks the transfer APPROVED in one store transaction.
	ApproveTransfer(ctx context.Context, workplaceID string, id string, userID string) (*domain.BankTransfer, error)
	RejectTransfer(ctx context.Context, workplaceID string, id string, reason string, userID string) (*domain.BankTransfer, error)
	StartTransfer(ctx context.Context, workplaceID string, id string, userID string) (*domain.BankTransfer, error)
	CompleteTransfer(ctx context.Context, workplaceID string, id string, userID string) (*domain.BankTransfer, error)

	// FailTransfer and CancelTransfer reverse the posted entry.
	FailTransfer(ctx context.Context, workplaceID string, id string, reason string, userID string) (*domain.BankTransfer, error)
	CancelTransfer(ctx context.Context, workplaceID string, id string, reason string, userID string) (*domain.BankTransfer, error)
	DeleteTransfer(ctx context.Context, workplaceID string, id string, userID string) error
}

package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// CashTransactionSvcFacade is the lifecycle of cash receipts and disbursements.
type CashTransactionSvcFacade interface {
	CreateCashTransaction(ctx context.Context, workplaceID string, req dto.CreateCashTransactionRequest, userID string) (*domain.CashTransaction, error)
	GetCashTransaction(ctx context.Context, workplaceID string, id string) (*domain.CashTransaction, error)
	ListCashTransactions(ctx context.Context, workplaceID string, status *domain.CashTransactionStatus) ([]domain.CashTransaction, error)
	UpdateCashTransaction(ctx context.Context, workplaceID string, id string, req dto.UpdateCashTransactionRequest, userID string) (*domain.CashTransaction, error)
	SubmitCashTransaction(ctx context.Context, workplaceID string, id string, userID string) (*domain.CashTransaction, error)

	// ApproveCashTransaction posts the journal entry and marks the transaction POSTED in one store transaction.
	ApproveCashTransaction(ctx context.Context, workplaceID string, id string, userID string) (*domain.CashTransaction, error)
	RejectCashTransaction(ctx context.Context, workplaceID string, id string, reason string, userID string) (*domain.CashTransaction, error)

	// VoidCashTransaction reverses the posted entry and marks the transaction VOID.
	VoidCashTransaction(ctx context.Context, workplaceID string, id string, userID string) (*domain.CashTransaction, error)
	DeleteCashTransaction(ctx context.Context, workplaceID string, id string, userID string) error
}

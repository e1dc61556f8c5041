package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// ReconciliationSvcFacade is the bank reconciliation workflow.
type ReconciliationSvcFacade interface {
	CreateReconciliation(ctx context.Context, workplaceID string, req dto.CreateReconciliationRequest, userID string) (*domain.BankReconciliation, error)
	GetReconciliation(ctx context.Context, workplaceID string, id string) (*domain.BankReconciliation, error)
	ListReconciliations(ctx context.Context, workplaceID string, bankAccountCode string) ([]domain.BankReconciliation, error)
	UpdateReconciliation(ctx context.Context, workplaceID string, id string, req dto.UpdateReconciliationRequest, userID string) (*domain.BankReconciliation, error)

	// Preview computes the adjusted balances without touching the store.
	Preview(figures domain.ReconciliationFigures) domain.ReconciliationResult

	SubmitForReview(ctx context.Context, workplaceID string, id string, userID string) (*domain.BankReconciliation, error)

	// ApproveReconciliation refuses unbalanced reconciliations and posts the adjustment entry when one is needed.
	ApproveReconciliation(ctx context.Context, workplaceID string, id string, userID string) (*domain.BankReconciliation, error)
	RejectReconciliation(ctx context.Context, workplaceID string, id string, reason string, userID string) (*domain.BankReconciliation, error)
	CompleteReconciliation(ctx context.Context, workplaceID string, id string, userID string) (*domain.BankReconciliation, error)
	DeleteReconciliation(ctx context.Context, workplaceID string, id string, userID string) error
}

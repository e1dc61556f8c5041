package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/google/uuid"
)

const entityCashTransaction = "cash transaction"

// cashTransactionService implements the CashTransactionSvcFacade interface
type cashTransactionService struct {
	BaseService
	txManager portsrepo.TransactionManager
	cashRepo  portsrepo.CashTransactionRepositoryFacade
	registry  portssvc.AccountRegistrySvc
	journal   portssvc.JournalSvcFacade
}

// NewCashTransactionService creates the cash receipt and disbursement adapter.
func NewCashTransactionService(
	txManager portsrepo.TransactionManager,
	cashRepo portsrepo.CashTransactionRepositoryFacade,
	registry portssvc.AccountRegistrySvc,
	journal portssvc.JournalSvcFacade,
	options ...ServiceOption,
) portssvc.CashTransactionSvcFacade {
	return &cashTransactionService{
		BaseService: newBaseService(options...),
		txManager:   txManager,
		cashRepo:    cashRepo,
		registry:    registry,
		journal:     journal,
	}
}

var _ portssvc.CashTransactionSvcFacade = (*cashTransactionService)(nil)

func (s *cashTransactionService) CreateCashTransaction(ctx context.Context, workplaceID string, req dto.CreateCashTransactionRequest, userID string) (*domain.CashTransaction, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}
	ct := domain.CashTransaction{
		CashTransactionID: uuid.NewString(),
		WorkplaceID:       workplaceID,
		Kind:              req.Kind,
		TransactionDate:   req.TransactionDate,
		CashAccountCode:   req.CashAccountCode,
		OffsetAccountCode: req.OffsetAccountCode,
		Amount:            req.Amount,
		Description:       req.Description,
		DescriptionID:     req.DescriptionID,
		Reference:         req.Reference,
		Status:            domain.CashDraft,
		Version:           1,
		AuditFields:       domain.NewAuditFields(s.now(), userID),
	}
	if err := s.validateCashTransaction(ctx, ct); err != nil {
		return nil, err
	}

	if err := s.cashRepo.SaveCashTransaction(ctx, ct); err != nil {
		s.LogError(ctx, err, "Failed to save cash transaction", slog.String("workplace_id", workplaceID))
		return nil, fmt.Errorf("failed to save cash transaction: %w", err)
	}

	s.LogInfo(ctx, "Cash transaction created successfully",
		slog.String("cash_transaction_id", ct.CashTransactionID),
		slog.String("kind", string(ct.Kind)))
	return &ct, nil
}

func (s *cashTransactionService) validateCashTransaction(ctx context.Context, ct domain.CashTransaction) error {
	if err := requirePositive("amount", ct.Amount); err != nil {
		return err
	}
	if err := s.checkScale("amount", ct.Amount); err != nil {
		return err
	}
	if ct.CashAccountCode == ct.OffsetAccountCode {
		return apperrors.NewValidationError("offsetAccountCode", "offset account must differ from the cash account")
	}
	_, err := s.registry.ResolvePostable(ctx, ct.WorkplaceID, []string{ct.CashAccountCode, ct.OffsetAccountCode})
	return err
}

func (s *cashTransactionService) GetCashTransaction(ctx context.Context, workplaceID string, id string) (*domain.CashTransaction, error) {
	ct, err := s.cashRepo.FindCashTransactionByID(ctx, workplaceID, id)
	if err != nil {
		return nil, s.wrapFind(ctx, err, id)
	}
	return ct, nil
}

func (s *cashTransactionService) ListCashTransactions(ctx context.Context, workplaceID string, status *domain.CashTransactionStatus) ([]domain.CashTransaction, error) {
	items, err := s.cashRepo.ListCashTransactions(ctx, workplaceID, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list cash transactions", slog.String("workplace_id", workplaceID))
		return nil, fmt.Errorf("failed to list cash transactions: %w", err)
	}
	return items, nil
}

func (s *cashTransactionService) UpdateCashTransaction(ctx context.Context, workplaceID string, id string, req dto.UpdateCashTransactionRequest, userID string) (*domain.CashTransaction, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}
	return s.transition(ctx, workplaceID, id, userID, "update", []domain.CashTransactionStatus{domain.CashDraft},
		func(txCtx context.Context, ct *domain.CashTransaction) error {
			if req.TransactionDate != nil {
				ct.TransactionDate = *req.TransactionDate
			}
			if req.CashAccountCode != nil {
				ct.CashAccountCode = *req.CashAccountCode
			}
			if req.OffsetAccountCode != nil {
				ct.OffsetAccountCode = *req.OffsetAccountCode
			}
			if req.Amount != nil {
				ct.Amount = *req.Amount
			}
			if req.Description != nil {
				ct.Description = *req.Description
			}
			if req.DescriptionID != nil {
				ct.DescriptionID = *req.DescriptionID
			}
			if req.Reference != nil {
				ct.Reference = *req.Reference
			}
			return s.validateCashTransaction(txCtx, *ct)
		})
}

func (s *cashTransactionService) SubmitCashTransaction(ctx context.Context, workplaceID string, id string, userID string) (*domain.CashTransaction, error) {
	return s.transition(ctx, workplaceID, id, userID, "submit", []domain.CashTransactionStatus{domain.CashDraft},
		func(_ context.Context, ct *domain.CashTransaction) error {
			ct.Status = domain.CashSubmitted
			return nil
		})
}

func (s *cashTransactionService) ApproveCashTransaction(ctx context.Context, workplaceID string, id string, userID string) (*domain.CashTransaction, error) {
	return s.transition(ctx, workplaceID, id, userID, "approve", []domain.CashTransactionStatus{domain.CashSubmitted},
		func(txCtx context.Context, ct *domain.CashTransaction) error {
			entry, err := s.journal.PostNewEntry(txCtx, workplaceID, ct.Template(), userID)
			if err != nil {
				return fmt.Errorf("failed to post cash transaction entry: %w", err)
			}
			ct.JournalEntryID = &entry.EntryID
			ct.Status = domain.CashPosted
			return nil
		})
}

func (s *cashTransactionService) RejectCashTransaction(ctx context.Context, workplaceID string, id string, reason string, userID string) (*domain.CashTransaction, error) {
	if err := requireReason(reason); err != nil {
		return nil, err
	}
	return s.transition(ctx, workplaceID, id, userID, "reject", []domain.CashTransactionStatus{domain.CashSubmitted},
		func(_ context.Context, ct *domain.CashTransaction) error {
			ct.Status = domain.CashRejected
			ct.RejectionReason = reason
			return nil
		})
}

func (s *cashTransactionService) VoidCashTransaction(ctx context.Context, workplaceID string, id string, userID string) (*domain.CashTransaction, error) {
	return s.transition(ctx, workplaceID, id, userID, "void", []domain.CashTransactionStatus{domain.CashPosted},
		func(txCtx context.Context, ct *domain.CashTransaction) error {
			if ct.JournalEntryID == nil {
				return fmt.Errorf("posted cash transaction %s has no journal entry: %w", ct.CashTransactionID, apperrors.ErrInternal)
			}
			reversal, err := s.journal.ReverseEntry(txCtx, workplaceID, *ct.JournalEntryID, dto.ReverseEntryRequest{}, userID)
			if err != nil {
				return fmt.Errorf("failed to reverse cash transaction entry: %w", err)
			}
			ct.ReversalEntryID = &reversal.EntryID
			ct.Status = domain.CashVoid
			return nil
		})
}

func (s *cashTransactionService) DeleteCashTransaction(ctx context.Context, workplaceID string, id string, userID string) error {
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		ct, err := s.cashRepo.FindCashTransactionByIDForUpdate(txCtx, workplaceID, id)
		if err != nil {
			return s.wrapFind(txCtx, err, id)
		}
		if ct.Status != domain.CashDraft {
			return apperrors.NewStateTransitionError(entityCashTransaction, id, string(ct.Status), "delete")
		}
		return s.cashRepo.DeleteCashTransaction(txCtx, workplaceID, id, ct.Version)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete cash transaction", slog.String("cash_transaction_id", id))
		return err
	}
	s.LogInfo(ctx, "Cash transaction deleted successfully", slog.String("cash_transaction_id", id), slog.String("user_id", userID))
	return nil
}

// transition locks the cash transaction, checks its status, lets apply mutate it and stores the result,
// all in one store transaction.
func (s *cashTransactionService) transition(
	ctx context.Context, workplaceID, id, userID, attempted string,
	allowed []domain.CashTransactionStatus,
	apply func(txCtx context.Context, ct *domain.CashTransaction) error,
) (*domain.CashTransaction, error) {
	var result *domain.CashTransaction
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		ct, err := s.cashRepo.FindCashTransactionByIDForUpdate(txCtx, workplaceID, id)
		if err != nil {
			return s.wrapFind(txCtx, err, id)
		}
		if !containsStatus(allowed, ct.Status) {
			return apperrors.NewStateTransitionError(entityCashTransaction, id, string(ct.Status), attempted)
		}
		if err := apply(txCtx, ct); err != nil {
			return err
		}
		ct.Touch(s.now(), userID)
		if err := s.cashRepo.UpdateCashTransaction(txCtx, *ct); err != nil {
			return fmt.Errorf("failed to update cash transaction %s: %w", id, err)
		}
		ct.Version++
		result = ct
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Cash transaction "+attempted+" failed", slog.String("cash_transaction_id", id))
		return nil, err
	}
	s.LogInfo(ctx, "Cash transaction "+attempted+" succeeded",
		slog.String("cash_transaction_id", id),
		slog.String("status", string(result.Status)))
	return result, nil
}

func (s *cashTransactionService) wrapFind(ctx context.Context, err error, id string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("cash transaction %s: %w", id, apperrors.ErrNotFound)
	}
	s.LogError(ctx, err, "Failed to find cash transaction", slog.String("cash_transaction_id", id))
	return fmt.Errorf("failed to find cash transaction %s: %w", id, err)
}

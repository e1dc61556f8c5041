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
	"github.com/shopspring/decimal"
)

const entityTransfer = "bank transfer"

// transferService implements the TransferSvcFacade interface
type transferService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	transferRepo portsrepo.TransferRepositoryFacade
	registry     portssvc.AccountRegistrySvc
	journal      portssvc.JournalSvcFacade
}

// NewTransferService creates the bank transfer adapter.
func NewTransferService(
	txManager portsrepo.TransactionManager,
	transferRepo portsrepo.TransferRepositoryFacade,
	registry portssvc.AccountRegistrySvc,
	journal portssvc.JournalSvcFacade,
	options ...ServiceOption,
) portssvc.TransferSvcFacade {
	return &transferService{
		BaseService:  newBaseService(options...),
		txManager:    txManager,
		transferRepo: transferRepo,
		registry:     registry,
		journal:      journal,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

func (s *transferService) CreateTransfer(ctx context.Context, workplaceID string, req dto.CreateTransferRequest, userID string) (*domain.BankTransfer, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}
	if err := requirePositive("amount", req.Amount); err != nil {
		return nil, err
	}
	if err := s.checkScale("amount", req.Amount); err != nil {
		return nil, err
	}

	fee := decimal.Zero
	if req.TransferFee != nil {
		fee = *req.TransferFee
	}
	if fee.IsNegative() {
		return nil, apperrors.NewValidationError("transferFee", "transfer fee must not be negative")
	}
	if err := s.checkScale("transferFee", fee); err != nil {
		return nil, err
	}

	codes := []string{req.FromAccountCode, req.ToAccountCode}
	feeAccount := req.FeeAccountCode
	if fee.IsPositive() {
		if feeAccount == "" {
			acc, err := s.registry.FindPostableBySubType(ctx, workplaceID, domain.SubTypeBankCharges)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, apperrors.NewValidationError("feeAccountCode", "fee account is required when no %s account is configured", domain.SubTypeBankCharges)
				}
				return nil, err
			}
			feeAccount = acc.Code
		}
		codes = append(codes, feeAccount)
	} else {
		feeAccount = ""
	}
	if _, err := s.registry.ResolvePostable(ctx, workplaceID, codes); err != nil {
		return nil, err
	}

	transfer := domain.BankTransfer{
		TransferID:      uuid.NewString(),
		WorkplaceID:     workplaceID,
		FromAccountCode: req.FromAccountCode,
		ToAccountCode:   req.ToAccountCode,
		Amount:          req.Amount,
		TransferFee:     fee,
		FeeAccountCode:  feeAccount,
		TransferDate:    req.TransferDate,
		Reference:       req.Reference,
		Description:     req.Description,
		DescriptionID:   req.DescriptionID,
		Status:          domain.TransferPending,
		Version:         1,
		AuditFields:     domain.NewAuditFields(s.now(), userID),
	}

	if err := s.transferRepo.SaveTransfer(ctx, transfer); err != nil {
		s.LogError(ctx, err, "Failed to save bank transfer", slog.String("workplace_id", workplaceID))
		return nil, fmt.Errorf("failed to save bank transfer: %w", err)
	}

	s.LogInfo(ctx, "Bank transfer created successfully",
		slog.String("transfer_id", transfer.TransferID),
		slog.String("amount", transfer.Amount.String()))
	return &transfer, nil
}

func (s *transferService) GetTransfer(ctx context.Context, workplaceID string, id string) (*domain.BankTransfer, error) {
	transfer, err := s.transferRepo.FindTransferByID(ctx, workplaceID, id)
	if err != nil {
		return nil, s.wrapFind(ctx, err, id)
	}
	return transfer, nil
}

func (s *transferService) ListTransfers(ctx context.Context, workplaceID string, status *domain.TransferStatus) ([]domain.BankTransfer, error) {
	transfers, err := s.transferRepo.ListTransfers(ctx, workplaceID, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank transfers", slog.String("workplace_id", workplaceID))
		return nil, fmt.Errorf("failed to list bank transfers: %w", err)
	}
	return transfers, nil
}

func (s *transferService) ApproveTransfer(ctx context.Context, workplaceID string, id string, userID string) (*domain.BankTransfer, error) {
	return s.transition(ctx, workplaceID, id, userID, "approve", []domain.TransferStatus{domain.TransferPending},
		func(txCtx context.Context, t *domain.BankTransfer) error {
			entry, err := s.journal.PostNewEntry(txCtx, workplaceID, t.Template(), userID)
			if err != nil {
				return fmt.Errorf("failed to post bank transfer entry: %w", err)
			}
			t.JournalEntryID = &entry.EntryID
			t.Status = domain.TransferApproved
			return nil
		})
}

func (s *transferService) RejectTransfer(ctx context.Context, workplaceID string, id string, reason string, userID string) (*domain.BankTransfer, error) {
	if err := requireReason(reason); err != nil {
		return nil, err
	}
	return s.transition(ctx, workplaceID, id, userID, "reject", []domain.TransferStatus{domain.TransferPending},
		func(_ context.Context, t *domain.BankTransfer) error {
			t.Status = domain.TransferRejected
			t.RejectionReason = reason
			return nil
		})
}

func (s *transferService) StartTransfer(ctx context.Context, workplaceID string, id string, userID string) (*domain.BankTransfer, error) {
	return s.transition(ctx, workplaceID, id, userID, "start", []domain.TransferStatus{domain.TransferApproved},
		func(_ context.Context, t *domain.BankTransfer) error {
			t.Status = domain.TransferInProgress
			return nil
		})
}

func (s *transferService) CompleteTransfer(ctx context.Context, workplaceID string, id string, userID string) (*domain.BankTransfer, error) {
	return s.transition(ctx, workplaceID, id, userID, "complete",
		[]domain.TransferStatus{domain.TransferApproved, domain.TransferInProgress},
		func(_ context.Context, t *domain.BankTransfer) error {
			t.Status = domain.TransferCompleted
			return nil
		})
}

func (s *transferService) FailTransfer(ctx context.Context, workplaceID string, id string, reason string, userID string) (*domain.BankTransfer, error) {
	if err := requireReason(reason); err != nil {
		return nil, err
	}
	return s.transition(ctx, workplaceID, id, userID, "fail", []domain.TransferStatus{domain.TransferInProgress},
		func(txCtx context.Context, t *domain.BankTransfer) error {
			return s.reverse(txCtx, t, domain.TransferFailed, reason, userID)
		})
}

func (s *transferService) CancelTransfer(ctx context.Context, workplaceID string, id string, reason string, userID string) (*domain.BankTransfer, error) {
	if err := requireReason(reason); err != nil {
		return nil, err
	}
	return s.transition(ctx, workplaceID, id, userID, "cancel",
		[]domain.TransferStatus{domain.TransferApproved, domain.TransferInProgress},
		func(txCtx context.Context, t *domain.BankTransfer) error {
			return s.reverse(txCtx, t, domain.TransferCancelled, reason, userID)
		})
}

// reverse offsets the posted transfer entry and moves the transfer to status.
func (s *transferService) reverse(txCtx context.Context, t *domain.BankTransfer, status domain.TransferStatus, reason, userID string) error {
	if t.JournalEntryID == nil {
		return fmt.Errorf("bank transfer %s in %s has no journal entry: %w", t.TransferID, t.Status, apperrors.ErrInternal)
	}
	reversal, err := s.journal.ReverseEntry(txCtx, t.WorkplaceID, *t.JournalEntryID, dto.ReverseEntryRequest{}, userID)
	if err != nil {
		return fmt.Errorf("failed to reverse bank transfer entry: %w", err)
	}
	t.ReversalEntryID = &reversal.EntryID
	t.Status = status
	t.RejectionReason = reason
	return nil
}

func (s *transferService) DeleteTransfer(ctx context.Context, workplaceID string, id string, userID string) error {
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		t, err := s.transferRepo.FindTransferByIDForUpdate(txCtx, workplaceID, id)
		if err != nil {
			return s.wrapFind(txCtx, err, id)
		}
		if t.Status != domain.TransferPending {
			return apperrors.NewStateTransitionError(entityTransfer, id, string(t.Status), "delete")
		}
		return s.transferRepo.DeleteTransfer(txCtx, workplaceID, id, t.Version)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete bank transfer", slog.String("transfer_id", id))
		return err
	}
	s.LogInfo(ctx, "Bank transfer deleted successfully", slog.String("transfer_id", id), slog.String("user_id", userID))
	return nil
}

func (s *transferService) transition(
	ctx context.Context, workplaceID, id, userID, attempted string,
	allowed []domain.TransferStatus,
	apply func(txCtx context.Context, t *domain.BankTransfer) error,
) (*domain.BankTransfer, error) {
	var result *domain.BankTransfer
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		t, err := s.transferRepo.FindTransferByIDForUpdate(txCtx, workplaceID, id)
		if err != nil {
			return s.wrapFind(txCtx, err, id)
		}
		if !containsStatus(allowed, t.Status) {
			return apperrors.NewStateTransitionError(entityTransfer, id, string(t.Status), attempted)
		}
		if err := apply(txCtx, t); err != nil {
			return err
		}
		t.Touch(s.now(), userID)
		if err := s.transferRepo.UpdateTransfer(txCtx, *t); err != nil {
			return fmt.Errorf("failed to update bank transfer %s: %w", id, err)
		}
		t.Version++
		result = t
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Bank transfer "+attempted+" failed", slog.String("transfer_id", id))
		return nil, err
	}
	s.LogInfo(ctx, "Bank transfer "+attempted+" succeeded",
		slog.String("transfer_id", id),
		slog.String("status", string(result.Status)))
	return result, nil
}

func (s *transferService) wrapFind(ctx context.Context, err error, id string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("bank transfer %s: %w", id, apperrors.ErrNotFound)
	}
	s.LogError(ctx, err, "Failed to find bank transfer", slog.String("transfer_id", id))
	return fmt.Errorf("failed to find bank transfer %s: %w", id, err)
}

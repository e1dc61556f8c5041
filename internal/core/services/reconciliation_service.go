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
	"github.com/SscSPs/ledger_core/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const entityReconciliation = "bank reconciliation"

// reconciliationService implements the ReconciliationSvcFacade interface
type reconciliationService struct {
	BaseService
	txManager portsrepo.TransactionManager
	recRepo   portsrepo.ReconciliationRepositoryFacade
	registry  portssvc.AccountRegistrySvc
	journal   portssvc.JournalPostingSvc
}

// NewReconciliationService creates the bank reconciliation engine.
func NewReconciliationService(
	txManager portsrepo.TransactionManager,
	recRepo portsrepo.ReconciliationRepositoryFacade,
	registry portssvc.AccountRegistrySvc,
	journal portssvc.JournalPostingSvc,
	options ...ServiceOption,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		BaseService: newBaseService(options...),
		txManager:   txManager,
		recRepo:     recRepo,
		registry:    registry,
		journal:     journal,
	}
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

func (s *reconciliationService) CreateReconciliation(ctx context.Context, workplaceID string, req dto.CreateReconciliationRequest, userID string) (*domain.BankReconciliation, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}
	if err := s.validateFigures(req.Figures); err != nil {
		return nil, err
	}
	if _, err := s.registry.ResolvePostable(ctx, workplaceID, []string{req.BankAccountCode}); err != nil {
		return nil, err
	}

	rec := domain.BankReconciliation{
		ReconciliationID:      uuid.NewString(),
		WorkplaceID:           workplaceID,
		BankAccountCode:       req.BankAccountCode,
		StatementDate:         req.StatementDate,
		PeriodStart:           req.PeriodStart,
		PeriodEnd:             req.PeriodEnd,
		BookBalanceStart:      req.BookBalanceStart,
		Status:                domain.ReconciliationDraft,
		Notes:                 req.Notes,
		Version:               1,
		ReconciliationFigures: req.Figures,
		ReconciliationResult:  s.Preview(req.Figures),
		AuditFields:           domain.NewAuditFields(s.now(), userID),
	}

	if err := s.recRepo.SaveReconciliation(ctx, rec); err != nil {
		s.LogError(ctx, err, "Failed to save bank reconciliation", slog.String("bank_account_code", req.BankAccountCode))
		return nil, fmt.Errorf("failed to save bank reconciliation: %w", err)
	}

	s.LogInfo(ctx, "Bank reconciliation created successfully",
		slog.String("reconciliation_id", rec.ReconciliationID),
		slog.Bool("is_balanced", rec.IsBalanced))
	return &rec, nil
}

// validateFigures requires the unsigned items to be non-negative and every item to fit the currency scale.
func (s *reconciliationService) validateFigures(f domain.ReconciliationFigures) error {
	figures := []struct {
		field    string
		amount   decimal.Decimal
		unsigned bool
	}{
		{"bookBalanceEnd", f.BookBalanceEnd, false},
		{"statementBalance", f.StatementBalance, false},
		{"depositsInTransit", f.DepositsInTransit, true},
		{"outstandingChecks", f.OutstandingChecks, true},
		{"bankCharges", f.BankCharges, true},
		{"bankInterest", f.BankInterest, true},
		{"otherAdjustments", f.OtherAdjustments, false},
	}

	var errs apperrors.ValidationErrors
	for _, fig := range figures {
		if fig.unsigned && fig.amount.IsNegative() {
			errs = append(errs, apperrors.NewValidationError(fig.field, "must not be negative"))
			continue
		}
		var ve apperrors.ValidationError
		if err := s.checkScale(fig.field, fig.amount); errors.As(err, &ve) {
			errs = append(errs, ve)
		}
	}
	return errs.OrNil()
}

func (s *reconciliationService) GetReconciliation(ctx context.Context, workplaceID string, id string) (*domain.BankReconciliation, error) {
	rec, err := s.recRepo.FindReconciliationByID(ctx, workplaceID, id)
	if err != nil {
		return nil, s.wrapFind(ctx, err, id)
	}
	return rec, nil
}

func (s *reconciliationService) ListReconciliations(ctx context.Context, workplaceID string, bankAccountCode string) ([]domain.BankReconciliation, error) {
	recs, err := s.recRepo.ListReconciliations(ctx, workplaceID, bankAccountCode)
	if err != nil {
		s.LogError(ctx, err, "Failed to list bank reconciliations", slog.String("workplace_id", workplaceID))
		return nil, fmt.Errorf("failed to list bank reconciliations: %w", err)
	}
	return recs, nil
}

func (s *reconciliationService) UpdateReconciliation(ctx context.Context, workplaceID string, id string, req dto.UpdateReconciliationRequest, userID string) (*domain.BankReconciliation, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}
	if req.Figures != nil {
		if err := s.validateFigures(*req.Figures); err != nil {
			return nil, err
		}
	}
	editable := []domain.ReconciliationStatus{domain.ReconciliationDraft, domain.ReconciliationInProgress, domain.ReconciliationRejected}
	return s.transition(ctx, workplaceID, id, userID, "update", editable,
		func(_ context.Context, rec *domain.BankReconciliation) error {
			if req.StatementDate != nil {
				rec.StatementDate = *req.StatementDate
			}
			if req.BookBalanceStart != nil {
				rec.BookBalanceStart = *req.BookBalanceStart
			}
			if req.Figures != nil {
				rec.ReconciliationFigures = *req.Figures
			}
			if req.Notes != nil {
				rec.Notes = *req.Notes
			}
			rec.ReconciliationResult = s.Preview(rec.ReconciliationFigures)
			rec.Status = domain.ReconciliationInProgress
			rec.RejectionReason = ""
			return nil
		})
}

func (s *reconciliationService) Preview(figures domain.ReconciliationFigures) domain.ReconciliationResult {
	return accounting.ComputeReconciliation(figures, s.currencyScale)
}

func (s *reconciliationService) SubmitForReview(ctx context.Context, workplaceID string, id string, userID string) (*domain.BankReconciliation, error) {
	return s.transition(ctx, workplaceID, id, userID, "submit for review",
		[]domain.ReconciliationStatus{domain.ReconciliationDraft, domain.ReconciliationInProgress},
		func(_ context.Context, rec *domain.BankReconciliation) error {
			rec.Status = domain.ReconciliationReviewed
			rec.ReviewedBy = userID
			return nil
		})
}

func (s *reconciliationService) ApproveReconciliation(ctx context.Context, workplaceID string, id string, userID string) (*domain.BankReconciliation, error) {
	return s.transition(ctx, workplaceID, id, userID, "approve", []domain.ReconciliationStatus{domain.ReconciliationReviewed},
		func(txCtx context.Context, rec *domain.BankReconciliation) error {
			rec.ReconciliationResult = s.Preview(rec.ReconciliationFigures)
			if !rec.IsBalanced {
				return apperrors.NewStateTransitionError(entityReconciliation, rec.ReconciliationID, string(rec.Status), "approve").
					WithReason(fmt.Sprintf("reconciliation is not balanced: difference %s", rec.Difference.String()))
			}

			if rec.HasBookAdjustments() {
				template, err := s.adjustmentTemplate(txCtx, rec)
				if err != nil {
					return err
				}
				entry, err := s.journal.PostNewEntry(txCtx, workplaceID, template, userID)
				if err != nil {
					return fmt.Errorf("failed to post reconciliation adjustment entry: %w", err)
				}
				rec.AdjustmentEntryID = &entry.EntryID
			}

			rec.Status = domain.ReconciliationApproved
			rec.ApprovedBy = userID
			return nil
		})
}

// adjustmentTemplate resolves the default charges, interest and other adjustment accounts by sub-type.
// Only accounts for non-zero items are required.
func (s *reconciliationService) adjustmentTemplate(ctx context.Context, rec *domain.BankReconciliation) (domain.ReconciliationAdjustmentTemplate, error) {
	template := domain.ReconciliationAdjustmentTemplate{
		EntryHeader: domain.EntryHeader{
			EntryDate:     rec.StatementDate,
			Description:   fmt.Sprintf("Bank reconciliation adjustment for %s as of %s", rec.BankAccountCode, rec.StatementDate.Format("2006-01-02")),
			DescriptionID: fmt.Sprintf("Penyesuaian rekonsiliasi bank %s per %s", rec.BankAccountCode, rec.StatementDate.Format("2006-01-02")),
		},
		BankAccount: rec.BankAccountCode,
		Charges:     rec.BankCharges,
		Interest:    rec.BankInterest,
		Other:       rec.OtherAdjustments,
	}

	resolve := func(amount decimal.Decimal, subType string, target *string) error {
		if amount.IsZero() {
			return nil
		}
		acc, err := s.registry.FindPostableBySubType(ctx, rec.WorkplaceID, subType)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationError("accountCode", "no postable %s account is configured", subType)
			}
			return err
		}
		*target = acc.Code
		return nil
	}

	if err := resolve(rec.BankCharges, domain.SubTypeBankCharges, &template.ChargesAccount); err != nil {
		return template, err
	}
	if err := resolve(rec.BankInterest, domain.SubTypeBankInterest, &template.InterestAccount); err != nil {
		return template, err
	}
	if err := resolve(rec.OtherAdjustments, domain.SubTypeOtherAdjustment, &template.OtherAccount); err != nil {
		return template, err
	}
	return template, nil
}

func (s *reconciliationService) RejectReconciliation(ctx context.Context, workplaceID string, id string, reason string, userID string) (*domain.BankReconciliation, error) {
	if err := requireReason(reason); err != nil {
		return nil, err
	}
	return s.transition(ctx, workplaceID, id, userID, "reject", []domain.ReconciliationStatus{domain.ReconciliationReviewed},
		func(_ context.Context, rec *domain.BankReconciliation) error {
			rec.Status = domain.ReconciliationRejected
			rec.RejectionReason = reason
			return nil
		})
}

func (s *reconciliationService) CompleteReconciliation(ctx context.Context, workplaceID string, id string, userID string) (*domain.BankReconciliation, error) {
	return s.transition(ctx, workplaceID, id, userID, "complete", []domain.ReconciliationStatus{domain.ReconciliationApproved},
		func(_ context.Context, rec *domain.BankReconciliation) error {
			rec.Status = domain.ReconciliationCompleted
			return nil
		})
}

func (s *reconciliationService) DeleteReconciliation(ctx context.Context, workplaceID string, id string, userID string) error {
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		rec, err := s.recRepo.FindReconciliationByIDForUpdate(txCtx, workplaceID, id)
		if err != nil {
			return s.wrapFind(txCtx, err, id)
		}
		if !rec.Status.IsDeletable() {
			return apperrors.NewStateTransitionError(entityReconciliation, id, string(rec.Status), "delete")
		}
		return s.recRepo.DeleteReconciliation(txCtx, workplaceID, id, rec.Version)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete bank reconciliation", slog.String("reconciliation_id", id))
		return err
	}
	s.LogInfo(ctx, "Bank reconciliation deleted successfully", slog.String("reconciliation_id", id), slog.String("user_id", userID))
	return nil
}

func (s *reconciliationService) transition(
	ctx context.Context, workplaceID, id, userID, attempted string,
	allowed []domain.ReconciliationStatus,
	apply func(txCtx context.Context, rec *domain.BankReconciliation) error,
) (*domain.BankReconciliation, error) {
	var result *domain.BankReconciliation
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		rec, err := s.recRepo.FindReconciliationByIDForUpdate(txCtx, workplaceID, id)
		if err != nil {
			return s.wrapFind(txCtx, err, id)
		}
		if !containsStatus(allowed, rec.Status) {
			return apperrors.NewStateTransitionError(entityReconciliation, id, string(rec.Status), attempted)
		}
		if err := apply(txCtx, rec); err != nil {
			return err
		}
		rec.Touch(s.now(), userID)
		if err := s.recRepo.UpdateReconciliation(txCtx, *rec); err != nil {
			return fmt.Errorf("failed to update bank reconciliation %s: %w", id, err)
		}
		rec.Version++
		result = rec
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Bank reconciliation "+attempted+" failed", slog.String("reconciliation_id", id))
		return nil, err
	}
	s.LogInfo(ctx, "Bank reconciliation "+attempted+" succeeded",
		slog.String("reconciliation_id", id),
		slog.String("status", string(result.Status)))
	return result, nil
}

func (s *reconciliationService) wrapFind(ctx context.Context, err error, id string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("bank reconciliation %s: %w", id, apperrors.ErrNotFound)
	}
	s.LogError(ctx, err, "Failed to find bank reconciliation", slog.String("reconciliation_id", id))
	return fmt.Errorf("failed to find bank reconciliation %s: %w", id, err)
}

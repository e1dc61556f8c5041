package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	entityJournalEntry = "journal entry"

	defaultListLimit = 20

	reversalPrefix   = "Reversal of %s: %s"
	reversalPrefixID = "Pembalikan %s: %s"
)

// journalService implements the JournalSvcFacade interface
type journalService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	registry    portssvc.AccountRegistrySvc
}

// NewJournalService creates a new journal service.
func NewJournalService(
	txManager portsrepo.TransactionManager,
	journalRepo portsrepo.JournalRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	registry portssvc.AccountRegistrySvc,
	options ...ServiceOption,
) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: newBaseService(options...),
		txManager:   txManager,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		registry:    registry,
	}
}

// Ensure journalService implements the JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) CreateEntry(ctx context.Context, workplaceID string, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}
	if !req.TransactionType.IsValid() {
		return nil, apperrors.NewValidationError("transactionType", "unknown transaction type %q", req.TransactionType)
	}

	header := domain.EntryHeader{
		EntryDate:      req.EntryDate,
		Description:    req.Description,
		DescriptionID:  req.DescriptionID,
		DocumentNumber: req.DocumentNumber,
	}
	return s.createDraft(ctx, workplaceID, req.TransactionType, header, dto.ToLineItems(req.Lines), userID)
}

func (s *journalService) CreateFromTemplate(ctx context.Context, workplaceID string, template domain.EntryTemplate, userID string) (*domain.JournalEntry, error) {
	if template == nil {
		return nil, apperrors.NewValidationError("template", "entry template is required")
	}
	header := template.Header()
	var errs apperrors.ValidationErrors
	if header.EntryDate.IsZero() {
		errs = append(errs, apperrors.NewValidationError("entryDate", "entry date is required"))
	}
	if strings.TrimSpace(header.Description) == "" {
		errs = append(errs, apperrors.NewValidationError("description", "description is required"))
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}
	return s.createDraft(ctx, workplaceID, template.Type(), header, template.Lines(), userID)
}

// createDraft validates lines and accounts and stores a new DRAFT entry.
func (s *journalService) createDraft(ctx context.Context, workplaceID string, txnType domain.TransactionType, header domain.EntryHeader, lines []domain.LineItem, userID string) (*domain.JournalEntry, error) {
	if err := accounting.ValidateEntryLines(lines, s.currencyScale); err != nil {
		s.LogDebug(ctx, "Journal entry lines failed validation", slog.String("error", err.Error()))
		return nil, err
	}

	entry := s.newEntry(workplaceID, txnType, header, lines, userID)

	var saved *domain.JournalEntry
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.registry.ResolvePostable(txCtx, workplaceID, entry.AccountCodes()); err != nil {
			return err
		}
		var err error
		saved, err = s.journalRepo.SaveEntry(txCtx, entry)
		return err
	})
	if err != nil {
		if !apperrors.IsValidation(err) {
			s.LogError(ctx, err, "Failed to save journal entry", slog.String("workplace_id", workplaceID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created successfully",
		slog.String("entry_id", saved.EntryID),
		slog.String("entry_number", saved.DisplayNumber()),
		slog.String("transaction_type", string(saved.TransactionType)))
	return saved, nil
}

func (s *journalService) newEntry(workplaceID string, txnType domain.TransactionType, header domain.EntryHeader, lines []domain.LineItem, userID string) domain.JournalEntry {
	now := s.now()
	entryID := uuid.NewString()
	entry := domain.JournalEntry{
		EntryID:         entryID,
		WorkplaceID:     workplaceID,
		EntryDate:       header.EntryDate,
		TransactionType: txnType,
		Description:     header.Description,
		DescriptionID:   header.DescriptionID,
		DocumentNumber:  header.DocumentNumber,
		Version:         1,
		AuditFields:     domain.NewAuditFields(now, userID),
	}
	entry.Lines = renumberLines(entryID, lines)
	return entry
}

func renumberLines(entryID string, lines []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(lines))
	for i, l := range lines {
		l.LineID = uuid.NewString()
		l.EntryID = entryID
		l.LineNumber = i + 1
		out[i] = l
	}
	return out
}

func (s *journalService) GetEntry(ctx context.Context, workplaceID string, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, workplaceID, entryID)
	if err != nil {
		return nil, s.wrapFind(ctx, err, entryID)
	}
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, workplaceID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if err := s.validateRequest(ctx, params); err != nil {
		return nil, err
	}
	limit := params.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, workplaceID, limit, params.NextToken, params.Status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries", slog.String("workplace_id", workplaceID))
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}
	return &dto.ListEntriesResponse{Entries: entries, NextToken: nextToken}, nil
}

func (s *journalService) UpdateEntry(ctx context.Context, workplaceID string, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}

	var updated *domain.JournalEntry
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		entry, err := s.journalRepo.FindEntryByIDForUpdate(txCtx, workplaceID, entryID)
		if err != nil {
			return s.wrapFind(txCtx, err, entryID)
		}
		if entry.IsPosted {
			return apperrors.NewStateTransitionError(entityJournalEntry, entry.DisplayNumber(), string(domain.Posted), "update").
				WithReason("posted entries can only be reversed")
		}

		if req.EntryDate != nil {
			entry.EntryDate = *req.EntryDate
		}
		if req.Description != nil {
			entry.Description = *req.Description
		}
		if req.DescriptionID != nil {
			entry.DescriptionID = *req.DescriptionID
		}
		if req.DocumentNumber != nil {
			entry.DocumentNumber = req.DocumentNumber
		}
		if req.Lines != nil {
			lines := dto.ToLineItems(req.Lines)
			if err := accounting.ValidateEntryLines(lines, s.currencyScale); err != nil {
				return err
			}
			entry.Lines = renumberLines(entry.EntryID, lines)
			if _, err := s.registry.ResolvePostable(txCtx, workplaceID, entry.AccountCodes()); err != nil {
				return err
			}
		}
		entry.Touch(s.now(), userID)

		if err := s.journalRepo.UpdateEntry(txCtx, *entry); err != nil {
			return fmt.Errorf("failed to update journal entry %s: %w", entryID, err)
		}
		entry.Version++
		updated = entry
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry updated successfully", slog.String("entry_id", entryID))
	return updated, nil
}

func (s *journalService) PostEntry(ctx context.Context, workplaceID string, entryID string, userID string) (*domain.JournalEntry, error) {
	var posted *domain.JournalEntry
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		posted, err = s.postLocked(txCtx, workplaceID, entryID, userID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to post journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry posted successfully",
		slog.String("entry_id", posted.EntryID),
		slog.String("entry_number", posted.DisplayNumber()))
	return posted, nil
}

// postLocked locks the entry, applies its balances and flips it to POSTED. It must run inside a transaction.
func (s *journalService) postLocked(txCtx context.Context, workplaceID string, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByIDForUpdate(txCtx, workplaceID, entryID)
	if err != nil {
		return nil, s.wrapFind(txCtx, err, entryID)
	}
	if entry.IsPosted {
		return nil, apperrors.NewStateTransitionError(entityJournalEntry, entry.DisplayNumber(), string(domain.Posted), "post").
			WithReason("entry is already posted")
	}
	if !entry.TotalDebit().Equal(entry.TotalCredit()) {
		return nil, apperrors.NewValidationError("lines", "journal entry does not balance: debits %s, credits %s",
			entry.TotalDebit().String(), entry.TotalCredit().String())
	}

	now := s.now()
	if err := s.applyBalances(txCtx, workplaceID, entry, userID, now); err != nil {
		return nil, err
	}
	if err := s.journalRepo.MarkPosted(txCtx, workplaceID, entry.EntryID, entry.Version, userID, now); err != nil {
		return nil, fmt.Errorf("failed to mark journal entry %s posted: %w", entry.DisplayNumber(), err)
	}

	entry.IsPosted = true
	entry.PostedAt = &now
	entry.PostedBy = userID
	entry.Version++
	entry.Touch(now, userID)
	return entry, nil
}

// applyBalances locks the entry's accounts, re-checks that they are postable and adds each line's signed amount.
func (s *journalService) applyBalances(txCtx context.Context, workplaceID string, entry *domain.JournalEntry, userID string, now time.Time) error {
	codes := entry.AccountCodes()
	accounts, err := s.accountRepo.FindAccountsByCodesForUpdate(txCtx, workplaceID, codes)
	if err != nil {
		return fmt.Errorf("failed to lock accounts for posting: %w", err)
	}
	if err := checkPostable(codes, accounts); err != nil {
		return err
	}

	balanceChanges := make(map[string]decimal.Decimal, len(codes))
	for _, line := range entry.Lines {
		signedAmount, err := accounting.CalculateSignedAmount(line, accounts[line.AccountCode].AccountType)
		if err != nil {
			return fmt.Errorf("failed to calculate signed amount for line %d: %w", line.LineNumber, err)
		}
		balanceChanges[line.AccountCode] = balanceChanges[line.AccountCode].Add(signedAmount)
	}

	if err := s.accountRepo.UpdateAccountBalancesInTx(txCtx, workplaceID, balanceChanges, userID, now); err != nil {
		return fmt.Errorf("failed to update account balances: %w", err)
	}
	return nil
}

func (s *journalService) ReverseEntry(ctx context.Context, workplaceID string, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.JournalEntry, error) {
	var reversal *domain.JournalEntry
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		reversal, err = s.reverseLocked(txCtx, workplaceID, entryID, req, userID)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to reverse journal entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry reversed successfully",
		slog.String("entry_id", entryID),
		slog.String("reversing_entry_id", reversal.EntryID),
		slog.String("reversing_entry_number", reversal.DisplayNumber()))
	return reversal, nil
}

func (s *journalService) reverseLocked(txCtx context.Context, workplaceID string, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.JournalEntry, error) {
	original, err := s.journalRepo.FindEntryByIDForUpdate(txCtx, workplaceID, entryID)
	if err != nil {
		return nil, s.wrapFind(txCtx, err, entryID)
	}
	if !original.IsPosted {
		return nil, apperrors.NewStateTransitionError(entityJournalEntry, original.DisplayNumber(), string(domain.Draft), "reverse").
			WithReason("only posted entries can be reversed")
	}
	if original.IsReversing {
		return nil, apperrors.NewStateTransitionError(entityJournalEntry, original.DisplayNumber(), string(domain.Posted), "reverse").
			WithReason("entry is itself a reversal")
	}
	existing, err := s.journalRepo.FindReversalOf(txCtx, workplaceID, original.EntryID)
	switch {
	case err == nil:
		return nil, apperrors.NewStateTransitionError(entityJournalEntry, original.DisplayNumber(), string(domain.Posted), "reverse").
			WithReason("already reversed by " + existing.DisplayNumber())
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("failed to check existing reversal: %w", err)
	}

	reversalDate := original.EntryDate
	if req.ReversalDate != nil {
		if req.ReversalDate.Before(original.EntryDate) {
			return nil, apperrors.NewValidationError("reversalDate", "reversal date cannot be before the original entry date")
		}
		reversalDate = *req.ReversalDate
	}

	swapped := make([]domain.LineItem, len(original.Lines))
	for i, l := range original.Lines {
		swapped[i] = l.Swapped()
	}
	header := domain.EntryHeader{
		EntryDate:      reversalDate,
		Description:    fmt.Sprintf(reversalPrefix, original.DisplayNumber(), original.Description),
		DescriptionID:  fmt.Sprintf(reversalPrefixID, original.DisplayNumber(), original.DescriptionID),
		DocumentNumber: original.DocumentNumber,
	}
	draft := s.newEntry(workplaceID, original.TransactionType, header, swapped, userID)
	draft.IsReversing = true
	draft.ReversedEntryID = &original.EntryID

	saved, err := s.journalRepo.SaveEntry(txCtx, draft)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewStateTransitionError(entityJournalEntry, original.DisplayNumber(), string(domain.Posted), "reverse").
				WithReason("entry is already reversed")
		}
		return nil, fmt.Errorf("failed to save reversing journal entry: %w", err)
	}
	return s.postLocked(txCtx, workplaceID, saved.EntryID, userID)
}

func (s *journalService) DeleteEntry(ctx context.Context, workplaceID string, entryID string, userID string) error {
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		entry, err := s.journalRepo.FindEntryByIDForUpdate(txCtx, workplaceID, entryID)
		if err != nil {
			return s.wrapFind(txCtx, err, entryID)
		}
		if entry.IsPosted {
			return apperrors.NewStateTransitionError(entityJournalEntry, entry.DisplayNumber(), string(domain.Posted), "delete").
				WithReason("posted entries can only be reversed")
		}
		return s.journalRepo.DeleteEntry(txCtx, workplaceID, entryID, entry.Version)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry", slog.String("entry_id", entryID))
		return err
	}

	s.LogInfo(ctx, "Journal entry deleted successfully", slog.String("entry_id", entryID), slog.String("user_id", userID))
	return nil
}

func (s *journalService) BatchDeleteEntries(ctx context.Context, workplaceID string, entryIDs []string, userID string) (*domain.BatchResult, error) {
	if len(entryIDs) == 0 {
		return nil, apperrors.NewValidationError("ids", "at least one entry id is required")
	}

	result := &domain.BatchResult{Results: make([]domain.BatchItemResult, 0, len(entryIDs))}
	for _, id := range entryIDs {
		item := domain.BatchItemResult{ID: id, Success: true}
		if err := s.DeleteEntry(ctx, workplaceID, id, userID); err != nil {
			item.Success = false
			item.Kind = apperrors.Kind(err)
			item.Error = err.Error()
			result.Failed++
		} else {
			result.Succeeded++
		}
		result.Results = append(result.Results, item)
	}

	s.LogInfo(ctx, "Batch delete finished",
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", result.Failed))
	return result, nil
}

func (s *journalService) PostNewEntry(ctx context.Context, workplaceID string, template domain.EntryTemplate, userID string) (*domain.JournalEntry, error) {
	var posted *domain.JournalEntry
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		draft, err := s.CreateFromTemplate(txCtx, workplaceID, template, userID)
		if err != nil {
			return err
		}
		posted, err = s.postLocked(txCtx, workplaceID, draft.EntryID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Journal entry posted successfully",
		slog.String("entry_id", posted.EntryID),
		slog.String("entry_number", posted.DisplayNumber()))
	return posted, nil
}

func (s *journalService) wrapFind(ctx context.Context, err error, entryID string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("journal entry %s: %w", entryID, apperrors.ErrNotFound)
	}
	s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
	return fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
}

package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/utils/accounting"
	"github.com/SscSPs/ledger_core/internal/utils/pagination"
)

func (s *Store) FindEntryByID(ctx context.Context, workplaceID string, entryID string) (*domain.JournalEntry, error) {
	defer s.read(ctx)()
	return s.entry(workplaceID, entryID)
}

// FindEntryByIDForUpdate relies on the store lock held by WithinTransaction.
func (s *Store) FindEntryByIDForUpdate(ctx context.Context, workplaceID string, entryID string) (*domain.JournalEntry, error) {
	defer s.write(ctx)()
	return s.entry(workplaceID, entryID)
}

func (s *Store) entry(workplaceID, entryID string) (*domain.JournalEntry, error) {
	e, ok := s.data.entries[key{workplaceID, entryID}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	c := copyEntry(e)
	return &c, nil
}

func (s *Store) ListEntries(ctx context.Context, workplaceID string, limit int, nextToken *string, status *domain.JournalStatus) ([]domain.JournalEntry, *string, error) {
	defer s.read(ctx)()

	var (
		cursorDate   time.Time
		cursorNumber int64
		hasCursor    bool
	)
	if nextToken != nil && *nextToken != "" {
		d, n, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursorDate, cursorNumber, hasCursor = d, n, true
	}

	var all []domain.JournalEntry
	for k, e := range s.data.entries {
		if k.workplaceID != workplaceID {
			continue
		}
		if status != nil && e.Status() != *status {
			continue
		}
		if hasCursor && !pagination.After(e.EntryDate, e.EntryNumber, cursorDate, cursorNumber) {
			continue
		}
		all = append(all, e)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].EntryDate.Equal(all[j].EntryDate) {
			return all[i].EntryNumber > all[j].EntryNumber
		}
		return all[i].EntryDate.After(all[j].EntryDate)
	})

	var next *string
	if limit > 0 && len(all) > limit {
		all = all[:limit]
		last := all[len(all)-1]
		token := pagination.EncodeToken(last.EntryDate, last.EntryNumber)
		next = &token
	}

	out := make([]domain.JournalEntry, len(all))
	for i, e := range all {
		out[i] = copyEntry(e)
	}
	return out, next, nil
}

func (s *Store) FindReversalOf(ctx context.Context, workplaceID string, entryID string) (*domain.JournalEntry, error) {
	defer s.read(ctx)()
	if e, ok := s.reversalOf(workplaceID, entryID); ok {
		c := copyEntry(e)
		return &c, nil
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) reversalOf(workplaceID, entryID string) (domain.JournalEntry, bool) {
	for k, e := range s.data.entries {
		if k.workplaceID == workplaceID && e.ReversedEntryID != nil && *e.ReversedEntryID == entryID {
			return e, true
		}
	}
	return domain.JournalEntry{}, false
}

func (s *Store) SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	defer s.write(ctx)()

	k := key{entry.WorkplaceID, entry.EntryID}
	if _, exists := s.data.entries[k]; exists {
		return nil, fmt.Errorf("journal entry %s: %w", entry.EntryID, apperrors.ErrDuplicate)
	}
	if entry.ReversedEntryID != nil {
		if _, exists := s.reversalOf(entry.WorkplaceID, *entry.ReversedEntryID); exists {
			return nil, fmt.Errorf("reversal of %s: %w", *entry.ReversedEntryID, apperrors.ErrDuplicate)
		}
	}

	s.data.sequences[entry.WorkplaceID]++
	entry.EntryNumber = s.data.sequences[entry.WorkplaceID]
	for i := range entry.Lines {
		entry.Lines[i].EntryID = entry.EntryID
	}
	s.data.entries[k] = copyEntry(entry)

	saved := copyEntry(entry)
	return &saved, nil
}

func (s *Store) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	defer s.write(ctx)()

	k := key{entry.WorkplaceID, entry.EntryID}
	stored, err := s.checkEntryVersion(k, entry.Version)
	if err != nil {
		return err
	}
	entry.EntryNumber = stored.EntryNumber
	entry.Version++
	s.data.entries[k] = copyEntry(entry)
	return nil
}

func (s *Store) MarkPosted(ctx context.Context, workplaceID string, entryID string, version int, postedBy string, postedAt time.Time) error {
	defer s.write(ctx)()

	k := key{workplaceID, entryID}
	stored, err := s.checkEntryVersion(k, version)
	if err != nil {
		return err
	}
	stored.IsPosted = true
	stored.PostedAt = &postedAt
	stored.PostedBy = postedBy
	stored.Touch(postedAt, postedBy)
	stored.Version++
	s.data.entries[k] = stored
	return nil
}

func (s *Store) DeleteEntry(ctx context.Context, workplaceID string, entryID string, version int) error {
	defer s.write(ctx)()

	k := key{workplaceID, entryID}
	if _, err := s.checkEntryVersion(k, version); err != nil {
		return err
	}
	delete(s.data.entries, k)
	return nil
}

func (s *Store) checkEntryVersion(k key, version int) (domain.JournalEntry, error) {
	stored, ok := s.data.entries[k]
	if !ok {
		return domain.JournalEntry{}, apperrors.ErrNotFound
	}
	if stored.Version != version {
		return domain.JournalEntry{}, fmt.Errorf("journal entry %s at version %d: %w", k.id, version, apperrors.ErrConflict)
	}
	return stored, nil
}

func (s *Store) ListPostedLines(ctx context.Context, workplaceID string, accountCodes []string, from, to time.Time) ([]domain.PostedLine, error) {
	defer s.read(ctx)()

	codes := codeSet(accountCodes)
	from, to = accounting.DateOnly(from), accounting.DateOnly(to)

	var out []domain.PostedLine
	for k, e := range s.data.entries {
		if k.workplaceID != workplaceID || !e.IsPosted {
			continue
		}
		day := accounting.DateOnly(e.EntryDate)
		if day.Before(from) || day.After(to) {
			continue
		}
		for _, line := range e.Lines {
			if _, ok := codes[line.AccountCode]; !ok {
				continue
			}
			out = append(out, domain.PostedLine{
				EntryID:     e.EntryID,
				EntryNumber: e.EntryNumber,
				EntryDate:   e.EntryDate,
				IsReversing: e.IsReversing,
				LineItem:    line,
			})
		}
	}
	return out, nil
}

func (s *Store) PostedTotalsBefore(ctx context.Context, workplaceID string, accountCodes []string, before time.Time) (map[string]domain.AccountTotals, error) {
	defer s.read(ctx)()

	codes := codeSet(accountCodes)
	before = accounting.DateOnly(before)

	out := make(map[string]domain.AccountTotals)
	for k, e := range s.data.entries {
		if k.workplaceID != workplaceID || !e.IsPosted {
			continue
		}
		if !accounting.DateOnly(e.EntryDate).Before(before) {
			continue
		}
		for _, line := range e.Lines {
			if _, ok := codes[line.AccountCode]; !ok {
				continue
			}
			t := out[line.AccountCode]
			t.Debit = t.Debit.Add(line.DebitAmount)
			t.Credit = t.Credit.Add(line.CreditAmount)
			out[line.AccountCode] = t
		}
	}
	return out, nil
}

func codeSet(codes []string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

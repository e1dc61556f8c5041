package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// JournalReader defines read operations for journal entry data
type JournalReader interface {
	// FindEntryByID retrieves an entry and its lines.
	FindEntryByID(ctx context.Context, workplaceID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries ordered by (entryDate, entryNumber) descending.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, workplaceID string, limit int, nextToken *string, status *domain.JournalStatus) ([]domain.JournalEntry, *string, error)

	// FindReversalOf retrieves the entry reversing entryID, or ErrNotFound.
	FindReversalOf(ctx context.Context, workplaceID string, entryID string) (*domain.JournalEntry, error)
}

// LedgerReader defines the reads behind the general ledger projection. Only posted entries are returned.
type LedgerReader interface {
	// ListPostedLines retrieves posted lines on the given accounts with entry dates in [from, to]. Order is unspecified.
	ListPostedLines(ctx context.Context, workplaceID string, accountCodes []string, from, to time.Time) ([]domain.PostedLine, error)

	// PostedTotalsBefore sums posted debits and credits per account for entries dated before the given day.
	PostedTotalsBefore(ctx context.Context, workplaceID string, accountCodes []string, before time.Time) (map[string]domain.AccountTotals, error)
}

// JournalWriter defines write operations for journal entry data.
// Version-checked writes expect the version that was read and fail with apperrors.ErrConflict on mismatch.
type JournalWriter interface {
	// SaveEntry persists a new entry and its lines, assigning the next EntryNumber of the workplace.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)

	// UpdateEntry replaces the header fields and lines of an entry.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error

	// MarkPosted flips an entry to posted.
	MarkPosted(ctx context.Context, workplaceID string, entryID string, version int, postedBy string, postedAt time.Time) error

	// DeleteEntry removes an entry and its lines.
	DeleteEntry(ctx context.Context, workplaceID string, entryID string, version int) error
}

// JournalTransactionSupport defines operations that must run inside TransactionManager.WithinTransaction.
type JournalTransactionSupport interface {
	// FindEntryByIDForUpdate retrieves an entry and locks it until the transaction ends.
	FindEntryByIDForUpdate(ctx context.Context, workplaceID string, entryID string) (*domain.JournalEntry, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	LedgerReader
	JournalWriter
	JournalTransactionSupport
}

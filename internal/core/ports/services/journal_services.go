package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntry retrieves a specific entry by its ID.
	GetEntry(ctx context.Context, workplaceID string, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries in a workplace.
	ListEntries(ctx context.Context, workplaceID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// CreateEntry validates and persists a new draft entry.
	CreateEntry(ctx context.Context, workplaceID string, req dto.CreateEntryRequest, userID string) (*domain.JournalEntry, error)

	// CreateFromTemplate persists a new draft entry built by a transaction type template.
	CreateFromTemplate(ctx context.Context, workplaceID string, template domain.EntryTemplate, userID string) (*domain.JournalEntry, error)

	// UpdateEntry edits a draft entry.
	UpdateEntry(ctx context.Context, workplaceID string, entryID string, req dto.UpdateEntryRequest, userID string) (*domain.JournalEntry, error)

	// PostEntry flips a draft entry to posted and applies its balances.
	PostEntry(ctx context.Context, workplaceID string, entryID string, userID string) (*domain.JournalEntry, error)

	// ReverseEntry creates and posts the entry offsetting a posted entry.
	ReverseEntry(ctx context.Context, workplaceID string, entryID string, req dto.ReverseEntryRequest, userID string) (*domain.JournalEntry, error)

	// DeleteEntry removes a draft entry.
	DeleteEntry(ctx context.Context, workplaceID string, entryID string, userID string) error

	// BatchDeleteEntries deletes each draft independently and reports every outcome.
	BatchDeleteEntries(ctx context.Context, workplaceID string, entryIDs []string, userID string) (*domain.BatchResult, error)
}

// JournalPostingSvc is used by the adapters that turn business documents into posted entries.
type JournalPostingSvc interface {
	// PostNewEntry creates and posts an entry from a template. It joins the caller's transaction when there is one.
	PostNewEntry(ctx context.Context, workplaceID string, template domain.EntryTemplate, userID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalPostingSvc
}

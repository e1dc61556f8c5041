package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineRequest is one line of a journal entry as supplied by the caller.
type LineRequest struct {
	AccountCode   string          `json:"accountCode" yaml:"accountCode" validate:"required"`
	DebitAmount   decimal.Decimal `json:"debitAmount" yaml:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount" yaml:"creditAmount"`
	Description   string          `json:"description" yaml:"description" validate:"max=500"`
	DescriptionID string          `json:"descriptionId" yaml:"descriptionId" validate:"max=500"`
}

// CreateEntryRequest defines the data needed to create a draft journal entry.
type CreateEntryRequest struct {
	EntryDate       time.Time              `json:"entryDate" yaml:"entryDate" validate:"required"`
	TransactionType domain.TransactionType `json:"transactionType" yaml:"transactionType" validate:"required"`
	Description     string                 `json:"description" yaml:"description" validate:"required,max=500"`
	DescriptionID   string                 `json:"descriptionId" yaml:"descriptionId" validate:"max=500"`
	DocumentNumber  *string                `json:"documentNumber" yaml:"documentNumber" validate:"omitempty,max=100"`
	Lines           []LineRequest          `json:"lines" yaml:"lines" validate:"dive"`
}

// UpdateEntryRequest replaces fields of a draft entry.
// Use pointers to distinguish between zero-value updates and fields not provided.
// A non-nil Lines replaces every line.
type UpdateEntryRequest struct {
	EntryDate      *time.Time    `json:"entryDate"`
	Description    *string       `json:"description" validate:"omitempty,min=1,max=500"`
	DescriptionID  *string       `json:"descriptionId" validate:"omitempty,max=500"`
	DocumentNumber *string       `json:"documentNumber" validate:"omitempty,max=100"`
	Lines          []LineRequest `json:"lines" validate:"omitempty,dive"`
}

// ReverseEntryRequest carries the optional overrides of a reversal.
type ReverseEntryRequest struct {
	ReversalDate *time.Time `json:"reversalDate"` // defaults to the original entry date
}

// ListEntriesParams defines the parameters for listing journal entries.
type ListEntriesParams struct {
	Limit     int                   `json:"limit" validate:"omitempty,min=1,max=100"`
	NextToken *string               `json:"nextToken"`
	Status    *domain.JournalStatus `json:"status" validate:"omitempty,oneof=DRAFT POSTED"`
}

// ListEntriesResponse is a page of journal entries.
type ListEntriesResponse struct {
	Entries   []domain.JournalEntry `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// ToLineItems converts line requests into numbered domain line items.
func ToLineItems(reqs []LineRequest) []domain.LineItem {
	lines := make([]domain.LineItem, len(reqs))
	for i, r := range reqs {
		lines[i] = domain.LineItem{
			LineNumber:    i + 1,
			AccountCode:   r.AccountCode,
			DebitAmount:   r.DebitAmount,
			CreditAmount:  r.CreditAmount,
			Description:   r.Description,
			DescriptionID: r.DescriptionID,
		}
	}
	return lines
}

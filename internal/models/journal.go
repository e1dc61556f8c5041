package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is a row of the journal_entries table. Lines live in journal_lines.
type JournalEntry struct {
	EntryID         string     `db:"entry_id"`
	WorkplaceID     string     `db:"workplace_id"`
	EntryNumber     int64      `db:"entry_number"`
	EntryDate       time.Time  `db:"entry_date"`
	TransactionType string     `db:"transaction_type"`
	Description     string     `db:"description"`
	DescriptionID   string     `db:"description_id"`
	DocumentNumber  *string    `db:"document_number"` // Nullable
	IsPosted        bool       `db:"is_posted"`
	PostedAt        *time.Time `db:"posted_at"` // Nullable
	PostedBy        string     `db:"posted_by"`
	IsReversing     bool       `db:"is_reversing"`
	ReversedEntryID *string    `db:"reversed_entry_id"` // Nullable, unique when set
	Version         int        `db:"version"`
	AuditFields
}

// JournalLine is a row of the journal_lines table.
type JournalLine struct {
	LineID        string          `db:"line_id"`
	EntryID       string          `db:"entry_id"`
	LineNumber    int             `db:"line_number"`
	AccountCode   string          `db:"account_code"`
	DebitAmount   decimal.Decimal `db:"debit_amount"`
	CreditAmount  decimal.Decimal `db:"credit_amount"`
	Description   string          `db:"description"`
	DescriptionID string          `db:"description_id"`
}

// PostedLine is a journal line joined with the header fields of its posted entry.
type PostedLine struct {
	EntryNumber int64     `db:"entry_number"`
	EntryDate   time.Time `db:"entry_date"`
	IsReversing bool      `db:"is_reversing"`
	JournalLine
}

// AccountTotals is one row of the per-account debit and credit sums.
type AccountTotals struct {
	AccountCode string          `db:"account_code"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashKind distinguishes money coming in from money going out.
type CashKind string

const (
	Receipt      CashKind = "RECEIPT"
	Disbursement CashKind = "DISBURSEMENT"
)

// IsValid reports whether k is RECEIPT or DISBURSEMENT.
func (k CashKind) IsValid() bool {
	return k == Receipt || k == Disbursement
}

// CashTransactionStatus is the lifecycle state of a cash transaction.
type CashTransactionStatus string

const (
	CashDraft     CashTransactionStatus = "DRAFT"
	CashSubmitted CashTransactionStatus = "SUBMITTED"
	CashPosted    CashTransactionStatus = "POSTED"
	CashRejected  CashTransactionStatus = "REJECTED"
	CashVoid      CashTransactionStatus = "VOID"
)

// CashTransaction is a cash receipt or disbursement that becomes a two-line journal entry on approval.
type CashTransaction struct {
	CashTransactionID string                `json:"cashTransactionID"`
	WorkplaceID       string                `json:"workplaceID"`
	Kind              CashKind              `json:"kind"`
	TransactionDate   time.Time             `json:"transactionDate"`
	CashAccountCode   string                `json:"cashAccountCode"`
	OffsetAccountCode string                `json:"offsetAccountCode"`
	Amount            decimal.Decimal       `json:"amount"`
	Description       string                `json:"description"`
	DescriptionID     string                `json:"descriptionId"`
	Reference         string                `json:"reference"`
	Status            CashTransactionStatus `json:"status"`
	JournalEntryID    *string               `json:"journalEntryID,omitempty"`
	ReversalEntryID   *string               `json:"reversalEntryID,omitempty"`
	RejectionReason   string                `json:"rejectionReason,omitempty"`
	Version           int                   `json:"version"`
	AuditFields
}

// Template builds the entry template matching the transaction kind.
func (c CashTransaction) Template() EntryTemplate {
	header := EntryHeader{
		EntryDate:     c.TransactionDate,
		Description:   c.Description,
		DescriptionID: c.DescriptionID,
	}
	if c.Reference != "" {
		ref := c.Reference
		header.DocumentNumber = &ref
	}
	if c.Kind == Disbursement {
		return CashDisbursementTemplate{EntryHeader: header, CashAccount: c.CashAccountCode, OffsetAccount: c.OffsetAccountCode, Amount: c.Amount}
	}
	return CashReceiptTemplate{EntryHeader: header, CashAccount: c.CashAccountCode, OffsetAccount: c.OffsetAccountCode, Amount: c.Amount}
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus is the lifecycle state of a bank transfer.
type TransferStatus string

const (
	TransferPending    TransferStatus = "PENDING"
	TransferApproved   TransferStatus = "APPROVED"
	TransferInProgress TransferStatus = "IN_PROGRESS"
	TransferCompleted  TransferStatus = "COMPLETED"
	TransferFailed     TransferStatus = "FAILED"
	TransferRejected   TransferStatus = "REJECTED"
	TransferCancelled  TransferStatus = "CANCELLED"
)

// HasPostedEntry reports whether a journal entry exists for a transfer in this state.
func (s TransferStatus) HasPostedEntry() bool {
	return s == TransferApproved || s == TransferInProgress || s == TransferCompleted
}

// BankTransfer moves money between two of the workplace's own accounts, with an optional fee leg.
type BankTransfer struct {
	TransferID      string          `json:"transferID"`
	WorkplaceID     string          `json:"workplaceID"`
	FromAccountCode string          `json:"fromAccountCode"`
	ToAccountCode   string          `json:"toAccountCode"`
	Amount          decimal.Decimal `json:"amount"`
	TransferFee     decimal.Decimal `json:"transferFee"`
	FeeAccountCode  string          `json:"feeAccountCode,omitempty"`
	TransferDate    time.Time       `json:"transferDate"`
	Reference       string          `json:"reference,omitempty"`
	Description     string          `json:"description"`
	DescriptionID   string          `json:"descriptionId"`
	Status          TransferStatus  `json:"status"`
	JournalEntryID  *string         `json:"journalEntryID,omitempty"`
	ReversalEntryID *string         `json:"reversalEntryID,omitempty"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	Version         int             `json:"version"`
	AuditFields
}

// Template builds the transfer entry template.
func (t BankTransfer) Template() BankTransferTemplate {
	header := EntryHeader{
		EntryDate:     t.TransferDate,
		Description:   t.Description,
		DescriptionID: t.DescriptionID,
	}
	if t.Reference != "" {
		ref := t.Reference
		header.DocumentNumber = &ref
	}
	return BankTransferTemplate{
		EntryHeader: header,
		FromAccount: t.FromAccountCode,
		ToAccount:   t.ToAccountCode,
		FeeAccount:  t.FeeAccountCode,
		Amount:      t.Amount,
		Fee:         t.TransferFee,
	}
}

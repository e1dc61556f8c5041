package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the business event that produced a journal entry.
type TransactionType string

const (
	TxnInvoiceSent        TransactionType = "INVOICE_SENT"
	TxnPaymentReceived    TransactionType = "PAYMENT_RECEIVED"
	TxnExpenseSubmitted   TransactionType = "EXPENSE_SUBMITTED"
	TxnPaymentMade        TransactionType = "PAYMENT_MADE"
	TxnDepreciation       TransactionType = "DEPRECIATION"
	TxnAdjustment         TransactionType = "ADJUSTMENT"
	TxnManual             TransactionType = "MANUAL"
	TxnCashReceipt        TransactionType = "CASH_RECEIPT"
	TxnCashDisbursement   TransactionType = "CASH_DISBURSEMENT"
	TxnBankTransfer       TransactionType = "BANK_TRANSFER"
	TxnBankReconciliation TransactionType = "BANK_RECONCILIATION"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	switch t {
	case TxnInvoiceSent, TxnPaymentReceived, TxnExpenseSubmitted, TxnPaymentMade, TxnDepreciation,
		TxnAdjustment, TxnManual, TxnCashReceipt, TxnCashDisbursement, TxnBankTransfer, TxnBankReconciliation:
		return true
	}
	return false
}

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft  JournalStatus = "DRAFT"
	Posted JournalStatus = "POSTED"
)

// JournalEntry is a balanced financial event composed of line items.
type JournalEntry struct {
	EntryID         string          `json:"entryID"`
	WorkplaceID     string          `json:"workplaceID"`
	EntryNumber     int64           `json:"entryNumber"` // assigned by the store, sequential per workplace
	EntryDate       time.Time       `json:"entryDate"`
	TransactionType TransactionType `json:"transactionType"`
	Description     string          `json:"description"`
	DescriptionID   string          `json:"descriptionId"`
	DocumentNumber  *string         `json:"documentNumber,omitempty"`
	IsPosted        bool            `json:"isPosted"`
	PostedAt        *time.Time      `json:"postedAt,omitempty"`
	PostedBy        string          `json:"postedBy,omitempty"`
	IsReversing     bool            `json:"isReversing"`
	ReversedEntryID *string         `json:"reversedEntryID,omitempty"` // set on the reversing entry
	Version         int             `json:"version"`
	Lines           []LineItem      `json:"lines"`
	AuditFields
}

// Status derives the lifecycle state from IsPosted.
func (e JournalEntry) Status() JournalStatus {
	if e.IsPosted {
		return Posted
	}
	return Draft
}

// DisplayNumber formats EntryNumber, e.g. "JE-000042".
func (e JournalEntry) DisplayNumber() string {
	return FormatEntryNumber(e.EntryNumber)
}

// FormatEntryNumber formats a sequence number the way entries are referenced in descriptions.
func FormatEntryNumber(n int64) string {
	return fmt.Sprintf("JE-%06d", n)
}

// TotalDebit sums the debit side.
func (e JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.DebitAmount)
	}
	return total
}

// TotalCredit sums the credit side.
func (e JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, l := range e.Lines {
		total = total.Add(l.CreditAmount)
	}
	return total
}

// AccountCodes returns the distinct account codes in order of first appearance.
func (e JournalEntry) AccountCodes() []string {
	seen := make(map[string]struct{}, len(e.Lines))
	codes := make([]string, 0, len(e.Lines))
	for _, l := range e.Lines {
		if _, ok := seen[l.AccountCode]; ok {
			continue
		}
		seen[l.AccountCode] = struct{}{}
		codes = append(codes, l.AccountCode)
	}
	return codes
}

// BatchItemResult is the outcome for one id of a batch operation.
type BatchItemResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Kind    string `json:"kind,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BatchResult is the outcome of a partial-failure batch operation.
type BatchResult struct {
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
	Results   []BatchItemResult `json:"results"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationStatus is the lifecycle state of a bank reconciliation.
type ReconciliationStatus string

const (
	ReconciliationDraft      ReconciliationStatus = "DRAFT"
	ReconciliationInProgress ReconciliationStatus = "IN_PROGRESS"
	ReconciliationReviewed   ReconciliationStatus = "REVIEWED"
	ReconciliationApproved   ReconciliationStatus = "APPROVED"
	ReconciliationRejected   ReconciliationStatus = "REJECTED"
	ReconciliationCompleted  ReconciliationStatus = "COMPLETED"
)

// IsEditable reports whether figures may still change.
func (s ReconciliationStatus) IsEditable() bool {
	switch s {
	case ReconciliationDraft, ReconciliationInProgress, ReconciliationRejected:
		return true
	}
	return false
}

// IsDeletable reports whether the reconciliation may be removed.
// Reviewed, approved and completed reconciliations are permanent.
func (s ReconciliationStatus) IsDeletable() bool {
	return s == ReconciliationDraft || s == ReconciliationInProgress
}

// ReconciliationFigures are the statement and book inputs of a reconciliation.
type ReconciliationFigures struct {
	BookBalanceEnd    decimal.Decimal `json:"bookBalanceEnd" yaml:"bookBalanceEnd"`
	StatementBalance  decimal.Decimal `json:"statementBalance" yaml:"statementBalance"`
	DepositsInTransit decimal.Decimal `json:"depositsInTransit" yaml:"depositsInTransit"`
	OutstandingChecks decimal.Decimal `json:"outstandingChecks" yaml:"outstandingChecks"`
	BankCharges       decimal.Decimal `json:"bankCharges" yaml:"bankCharges"`
	BankInterest      decimal.Decimal `json:"bankInterest" yaml:"bankInterest"`
	OtherAdjustments  decimal.Decimal `json:"otherAdjustments" yaml:"otherAdjustments"` // signed
}

// HasBookAdjustments reports whether approving must post an adjustment entry.
func (f ReconciliationFigures) HasBookAdjustments() bool {
	return !f.BankCharges.IsZero() || !f.BankInterest.IsZero() || !f.OtherAdjustments.IsZero()
}

// ReconciliationResult holds the derived balances.
type ReconciliationResult struct {
	AdjustedBookBalance decimal.Decimal `json:"adjustedBookBalance"`
	AdjustedBankBalance decimal.Decimal `json:"adjustedBankBalance"`
	Difference          decimal.Decimal `json:"difference"`
	IsBalanced          bool            `json:"isBalanced"`
}

// BankReconciliation matches a bank statement against the book balance of one bank account.
type BankReconciliation struct {
	ReconciliationID  string               `json:"reconciliationID"`
	WorkplaceID       string               `json:"workplaceID"`
	BankAccountCode   string               `json:"bankAccountCode"`
	StatementDate     time.Time            `json:"statementDate"`
	PeriodStart       time.Time            `json:"periodStart"`
	PeriodEnd         time.Time            `json:"periodEnd"`
	BookBalanceStart  decimal.Decimal      `json:"bookBalanceStart"`
	Status            ReconciliationStatus `json:"status"`
	RejectionReason   string               `json:"rejectionReason,omitempty"`
	AdjustmentEntryID *string              `json:"adjustmentEntryID,omitempty"`
	Notes             string               `json:"notes,omitempty"`
	ReviewedBy        string               `json:"reviewedBy,omitempty"`
	ApprovedBy        string               `json:"approvedBy,omitempty"`
	Version           int                  `json:"version"`
	ReconciliationFigures
	ReconciliationResult
	AuditFields
}

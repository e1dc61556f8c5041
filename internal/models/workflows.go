package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankReconciliation is a row of the bank_reconciliations table.
type BankReconciliation struct {
	ReconciliationID    string          `db:"reconciliation_id"`
	WorkplaceID         string          `db:"workplace_id"`
	BankAccountCode     string          `db:"bank_account_code"`
	StatementDate       time.Time       `db:"statement_date"`
	PeriodStart         time.Time       `db:"period_start"`
	PeriodEnd           time.Time       `db:"period_end"`
	BookBalanceStart    decimal.Decimal `db:"book_balance_start"`
	BookBalanceEnd      decimal.Decimal `db:"book_balance_end"`
	StatementBalance    decimal.Decimal `db:"statement_balance"`
	DepositsInTransit   decimal.Decimal `db:"deposits_in_transit"`
	OutstandingChecks   decimal.Decimal `db:"outstanding_checks"`
	BankCharges         decimal.Decimal `db:"bank_charges"`
	BankInterest        decimal.Decimal `db:"bank_interest"`
	OtherAdjustments    decimal.Decimal `db:"other_adjustments"`
	AdjustedBookBalance decimal.Decimal `db:"adjusted_book_balance"`
	AdjustedBankBalance decimal.Decimal `db:"adjusted_bank_balance"`
	Difference          decimal.Decimal `db:"difference"`
	IsBalanced          bool            `db:"is_balanced"`
	Status              string          `db:"status"`
	RejectionReason     string          `db:"rejection_reason"`
	AdjustmentEntryID   *string         `db:"adjustment_entry_id"` // Nullable
	Notes               string          `db:"notes"`
	ReviewedBy          string          `db:"reviewed_by"`
	ApprovedBy          string          `db:"approved_by"`
	Version             int             `db:"version"`
	AuditFields
}

// BankTransfer is a row of the bank_transfers table.
type BankTransfer struct {
	TransferID      string          `db:"transfer_id"`
	WorkplaceID     string          `db:"workplace_id"`
	FromAccountCode string          `db:"from_account_code"`
	ToAccountCode   string          `db:"to_account_code"`
	Amount          decimal.Decimal `db:"amount"`
	TransferFee     decimal.Decimal `db:"transfer_fee"`
	FeeAccountCode  string          `db:"fee_account_code"`
	TransferDate    time.Time       `db:"transfer_date"`
	Reference       string          `db:"reference"`
	Description     string          `db:"description"`
	DescriptionID   string          `db:"description_id"`
	Status          string          `db:"status"`
	JournalEntryID  *string         `db:"journal_entry_id"`  // Nullable
	ReversalEntryID *string         `db:"reversal_entry_id"` // Nullable
	RejectionReason string          `db:"rejection_reason"`
	Version         int             `db:"version"`
	AuditFields
}

// CashTransaction is a row of the cash_transactions table.
type CashTransaction struct {
	CashTransactionID string          `db:"cash_transaction_id"`
	WorkplaceID       string          `db:"workplace_id"`
	Kind              string          `db:"kind"`
	TransactionDate   time.Time       `db:"transaction_date"`
	CashAccountCode   string          `db:"cash_account_code"`
	OffsetAccountCode string          `db:"offset_account_code"`
	Amount            decimal.Decimal `db:"amount"`
	Description       string          `db:"description"`
	DescriptionID     string          `db:"description_id"`
	Reference         string          `db:"reference"`
	Status            string          `db:"status"`
	JournalEntryID    *string         `db:"journal_entry_id"`  // Nullable
	ReversalEntryID   *string         `db:"reversal_entry_id"` // Nullable
	RejectionReason   string          `db:"rejection_reason"`
	Version           int             `db:"version"`
	AuditFields
}

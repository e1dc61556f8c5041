package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GeneralLedgerFilter selects the accounts and period of a projection.
// An empty AccountCodes and nil AccountType select every account.
type GeneralLedgerFilter struct {
	AccountCodes []string
	AccountType  *AccountType
	From         time.Time
	To           time.Time
}

// PostedLine is a line of a posted entry joined with its entry header, as read from the store.
type PostedLine struct {
	EntryID     string    `json:"entryID"`
	EntryNumber int64     `json:"entryNumber"`
	EntryDate   time.Time `json:"entryDate"`
	IsReversing bool      `json:"isReversing"`
	LineItem
}

// LedgerLine is a posted line with the account's balance after it.
type LedgerLine struct {
	PostedLine
	SignedAmount   decimal.Decimal `json:"signedAmount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// AccountLedger is the projection of one account over the period.
type AccountLedger struct {
	AccountCode    string          `json:"accountCode"`
	AccountName    string          `json:"accountName"`
	AccountType    AccountType     `json:"accountType"`
	OpeningBalance decimal.Decimal `json:"openingBalance"`
	Lines          []LedgerLine    `json:"lines"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
}

// GeneralLedgerSummary totals the filtered set.
type GeneralLedgerSummary struct {
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	EntryCount  int             `json:"entryCount"`
}

// GeneralLedger is the full projection result.
type GeneralLedger struct {
	From     time.Time            `json:"from"`
	To       time.Time            `json:"to"`
	Accounts []AccountLedger      `json:"accounts"`
	Summary  GeneralLedgerSummary `json:"summary"`
}

// AccountTotals are the debit and credit sums of an account over some range.
type AccountTotals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

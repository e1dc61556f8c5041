package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// IsDebitNormal reports whether a debit increases accounts of this type.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}

// Well-known account sub-types. SubType is free-form; these are the ones the core resolves by itself.
const (
	SubTypeCash            = "CASH"
	SubTypeBank            = "BANK"
	SubTypeBankCharges     = "BANK_CHARGES"
	SubTypeBankInterest    = "BANK_INTEREST"
	SubTypeOtherAdjustment = "OTHER_ADJUSTMENT"
	SubTypeDrawing         = "DRAWING"
)

// Account represents an entry in the chart of accounts.
// Accounts are created and retired outside the ledger core; the core only reads them
// and applies balance changes inside posting transactions.
type Account struct {
	AccountID   string      `json:"accountID"`
	WorkplaceID string      `json:"workplaceID"`
	Code        string      `json:"code"` // hierarchical, e.g. "1-1001"
	Name        string      `json:"name"`
	AccountType AccountType `json:"accountType"`
	SubType     string      `json:"subType"`
	ParentCode  string      `json:"parentCode"`
	IsHeader    bool        `json:"isHeader"` // summary account, never posted to
	IsActive    bool        `json:"isActive"`
	AuditFields
	Balance decimal.Decimal `json:"balance"`
}

// IsPostable reports whether journal lines may reference the account.
func (a Account) IsPostable() bool {
	return a.IsActive && !a.IsHeader
}

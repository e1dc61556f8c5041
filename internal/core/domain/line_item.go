package domain

import "github.com/shopspring/decimal"

// Side indicates whether a line item is a Debit or a Credit.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

// LineItem is a single line of a JournalEntry, affecting one account.
// Exactly one of DebitAmount and CreditAmount is non-zero.
type LineItem struct {
	LineID        string          `json:"lineID"`
	EntryID       string          `json:"entryID"`
	LineNumber    int             `json:"lineNumber"` // 1-based order within the entry
	AccountCode   string          `json:"accountCode"`
	DebitAmount   decimal.Decimal `json:"debitAmount"`
	CreditAmount  decimal.Decimal `json:"creditAmount"`
	Description   string          `json:"description"`
	DescriptionID string          `json:"descriptionId"`
}

// Side returns DEBIT when the debit amount is set, CREDIT otherwise.
func (l LineItem) Side() Side {
	if !l.DebitAmount.IsZero() {
		return Debit
	}
	return Credit
}

// Amount returns the non-zero side's magnitude.
func (l LineItem) Amount() decimal.Decimal {
	if l.Side() == Debit {
		return l.DebitAmount
	}
	return l.CreditAmount
}

// Swapped returns a copy with debit and credit exchanged.
func (l LineItem) Swapped() LineItem {
	l.DebitAmount, l.CreditAmount = l.CreditAmount, l.DebitAmount
	return l
}

// DebitLine is a shorthand for a debit line item.
func DebitLine(accountCode string, amount decimal.Decimal, description string) LineItem {
	return LineItem{AccountCode: accountCode, DebitAmount: amount, CreditAmount: decimal.Zero, Description: description}
}

// CreditLine is a shorthand for a credit line item.
func CreditLine(accountCode string, amount decimal.Decimal, description string) LineItem {
	return LineItem{AccountCode: accountCode, DebitAmount: decimal.Zero, CreditAmount: amount, Description: description}
}

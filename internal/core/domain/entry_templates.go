package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryTemplate builds the lines of a journal entry for one transaction type.
// The set of templates is closed: only types in this package implement it.
type EntryTemplate interface {
	Type() TransactionType
	Header() EntryHeader
	Lines() []LineItem
	isEntryTemplate()
}

// EntryHeader carries the header fields shared by every template.
type EntryHeader struct {
	EntryDate      time.Time
	Description    string
	DescriptionID  string
	DocumentNumber *string
}

// Header returns the header itself so templates embedding it satisfy EntryTemplate.Header.
func (h EntryHeader) Header() EntryHeader { return h }

func numbered(lines ...LineItem) []LineItem {
	out := make([]LineItem, 0, len(lines))
	for _, l := range lines {
		l.LineNumber = len(out) + 1
		out = append(out, l)
	}
	return out
}

// InvoiceSentTemplate: Dr receivable (gross) / Cr revenue (net) / Cr tax payable.
type InvoiceSentTemplate struct {
	EntryHeader
	ReceivableAccount string
	RevenueAccount    string
	TaxAccount        string
	Amount            decimal.Decimal // net of tax
	Tax               decimal.Decimal
}

func (InvoiceSentTemplate) Type() TransactionType { return TxnInvoiceSent }
func (InvoiceSentTemplate) isEntryTemplate()      {}

func (t InvoiceSentTemplate) Lines() []LineItem {
	lines := []LineItem{
		DebitLine(t.ReceivableAccount, t.Amount.Add(t.Tax), t.Description),
		CreditLine(t.RevenueAccount, t.Amount, t.Description),
	}
	if t.Tax.IsPositive() {
		lines = append(lines, CreditLine(t.TaxAccount, t.Tax, t.Description))
	}
	return numbered(lines...)
}

// PaymentReceivedTemplate: Dr cash / Cr receivable.
type PaymentReceivedTemplate struct {
	EntryHeader
	CashAccount       string
	ReceivableAccount string
	Amount            decimal.Decimal
}

func (PaymentReceivedTemplate) Type() TransactionType { return TxnPaymentReceived }
func (PaymentReceivedTemplate) isEntryTemplate()      {}

func (t PaymentReceivedTemplate) Lines() []LineItem {
	return numbered(
		DebitLine(t.CashAccount, t.Amount, t.Description),
		CreditLine(t.ReceivableAccount, t.Amount, t.Description),
	)
}

// ExpenseSubmittedTemplate: Dr expense / Cr payable.
type ExpenseSubmittedTemplate struct {
	EntryHeader
	ExpenseAccount string
	PayableAccount string
	Amount         decimal.Decimal
}

func (ExpenseSubmittedTemplate) Type() TransactionType { return TxnExpenseSubmitted }
func (ExpenseSubmittedTemplate) isEntryTemplate()      {}

func (t ExpenseSubmittedTemplate) Lines() []LineItem {
	return numbered(
		DebitLine(t.ExpenseAccount, t.Amount, t.Description),
		CreditLine(t.PayableAccount, t.Amount, t.Description),
	)
}

// PaymentMadeTemplate: Dr payable / Cr cash.
type PaymentMadeTemplate struct {
	EntryHeader
	PayableAccount string
	CashAccount    string
	Amount         decimal.Decimal
}

func (PaymentMadeTemplate) Type() TransactionType { return TxnPaymentMade }
func (PaymentMadeTemplate) isEntryTemplate()      {}

func (t PaymentMadeTemplate) Lines() []LineItem {
	return numbered(
		DebitLine(t.PayableAccount, t.Amount, t.Description),
		CreditLine(t.CashAccount, t.Amount, t.Description),
	)
}

// DepreciationTemplate: Dr depreciation expense / Cr accumulated depreciation.
type DepreciationTemplate struct {
	EntryHeader
	ExpenseAccount     string
	AccumulatedAccount string
	Amount             decimal.Decimal
}

func (DepreciationTemplate) Type() TransactionType { return TxnDepreciation }
func (DepreciationTemplate) isEntryTemplate()      {}

func (t DepreciationTemplate) Lines() []LineItem {
	return numbered(
		DebitLine(t.ExpenseAccount, t.Amount, t.Description),
		CreditLine(t.AccumulatedAccount, t.Amount, t.Description),
	)
}

// AdjustmentTemplate is a single debit/credit pair between any two accounts.
type AdjustmentTemplate struct {
	EntryHeader
	DebitAccount  string
	CreditAccount string
	Amount        decimal.Decimal
}

func (AdjustmentTemplate) Type() TransactionType { return TxnAdjustment }
func (AdjustmentTemplate) isEntryTemplate()      {}

func (t AdjustmentTemplate) Lines() []LineItem {
	return numbered(
		DebitLine(t.DebitAccount, t.Amount, t.Description),
		CreditLine(t.CreditAccount, t.Amount, t.Description),
	)
}

// CashReceiptTemplate: Dr cash / Cr offset (revenue or equity).
type CashReceiptTemplate struct {
	EntryHeader
	CashAccount   string
	OffsetAccount string
	Amount        decimal.Decimal
}

func (CashReceiptTemplate) Type() TransactionType { return TxnCashReceipt }
func (CashReceiptTemplate) isEntryTemplate()      {}

func (t CashReceiptTemplate) Lines() []LineItem {
	return numbered(
		DebitLine(t.CashAccount, t.Amount, t.Description),
		CreditLine(t.OffsetAccount, t.Amount, t.Description),
	)
}

// CashDisbursementTemplate: Dr offset (expense) / Cr cash.
type CashDisbursementTemplate struct {
	EntryHeader
	CashAccount   string
	OffsetAccount string
	Amount        decimal.Decimal
}

func (CashDisbursementTemplate) Type() TransactionType { return TxnCashDisbursement }
func (CashDisbursementTemplate) isEntryTemplate()      {}

func (t CashDisbursementTemplate) Lines() []LineItem {
	return numbered(
		DebitLine(t.OffsetAccount, t.Amount, t.Description),
		CreditLine(t.CashAccount, t.Amount, t.Description),
	)
}

// BankTransferTemplate: Dr destination / Cr source, plus Dr fee / Cr source when a fee is charged.
type BankTransferTemplate struct {
	EntryHeader
	FromAccount string
	ToAccount   string
	FeeAccount  string
	Amount      decimal.Decimal
	Fee         decimal.Decimal
}

func (BankTransferTemplate) Type() TransactionType { return TxnBankTransfer }
func (BankTransferTemplate) isEntryTemplate()      {}

func (t BankTransferTemplate) Lines() []LineItem {
	lines := []LineItem{
		DebitLine(t.ToAccount, t.Amount, t.Description),
		CreditLine(t.FromAccount, t.Amount, t.Description),
	}
	if t.Fee.IsPositive() {
		lines = append(lines,
			DebitLine(t.FeeAccount, t.Fee, t.Description),
			CreditLine(t.FromAccount, t.Fee, t.Description),
		)
	}
	return numbered(lines...)
}

// ReconciliationAdjustmentTemplate books the statement-only items of an approved reconciliation.
// Zero amounts produce no lines.
type ReconciliationAdjustmentTemplate struct {
	EntryHeader
	BankAccount     string
	ChargesAccount  string
	InterestAccount string
	OtherAccount    string
	Charges         decimal.Decimal
	Interest        decimal.Decimal
	Other           decimal.Decimal // signed; positive increases the bank balance
}

func (ReconciliationAdjustmentTemplate) Type() TransactionType { return TxnBankReconciliation }
func (ReconciliationAdjustmentTemplate) isEntryTemplate()      {}

func (t ReconciliationAdjustmentTemplate) Lines() []LineItem {
	var lines []LineItem
	if t.Charges.IsPositive() {
		lines = append(lines,
			DebitLine(t.ChargesAccount, t.Charges, t.Description),
			CreditLine(t.BankAccount, t.Charges, t.Description),
		)
	}
	if t.Interest.IsPositive() {
		lines = append(lines,
			DebitLine(t.BankAccount, t.Interest, t.Description),
			CreditLine(t.InterestAccount, t.Interest, t.Description),
		)
	}
	switch t.Other.Sign() {
	case 1:
		lines = append(lines,
			DebitLine(t.BankAccount, t.Other, t.Description),
			CreditLine(t.OtherAccount, t.Other, t.Description),
		)
	case -1:
		abs := t.Other.Abs()
		lines = append(lines,
			DebitLine(t.OtherAccount, abs, t.Description),
			CreditLine(t.BankAccount, abs, t.Description),
		)
	}
	return numbered(lines...)
}

var (
	_ EntryTemplate = InvoiceSentTemplate{}
	_ EntryTemplate = PaymentReceivedTemplate{}
	_ EntryTemplate = ExpenseSubmittedTemplate{}
	_ EntryTemplate = PaymentMadeTemplate{}
	_ EntryTemplate = DepreciationTemplate{}
	_ EntryTemplate = AdjustmentTemplate{}
	_ EntryTemplate = CashReceiptTemplate{}
	_ EntryTemplate = CashDisbursementTemplate{}
	_ EntryTemplate = BankTransferTemplate{}
	_ EntryTemplate = ReconciliationAdjustmentTemplate{}
)

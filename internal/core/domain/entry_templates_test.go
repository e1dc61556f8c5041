package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestEntryTemplates_Balanced(t *testing.T) {
	header := domain.EntryHeader{EntryDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Description: "test"}

	tests := []struct {
		name      string
		template  domain.EntryTemplate
		wantType  domain.TransactionType
		wantLines int
	}{
		{
			name:      "invoice with tax",
			template:  domain.InvoiceSentTemplate{EntryHeader: header, ReceivableAccount: "1-1200", RevenueAccount: "4-1000", TaxAccount: "2-1300", Amount: dec("1000000"), Tax: dec("110000")},
			wantType:  domain.TxnInvoiceSent,
			wantLines: 3,
		},
		{
			name:      "invoice without tax",
			template:  domain.InvoiceSentTemplate{EntryHeader: header, ReceivableAccount: "1-1200", RevenueAccount: "4-1000", Amount: dec("1000000")},
			wantType:  domain.TxnInvoiceSent,
			wantLines: 2,
		},
		{
			name:      "payment received",
			template:  domain.PaymentReceivedTemplate{EntryHeader: header, CashAccount: "1-1001", ReceivableAccount: "1-1200", Amount: dec("500")},
			wantType:  domain.TxnPaymentReceived,
			wantLines: 2,
		},
		{
			name:      "expense submitted",
			template:  domain.ExpenseSubmittedTemplate{EntryHeader: header, ExpenseAccount: "6-1000", PayableAccount: "2-1000", Amount: dec("75.50")},
			wantType:  domain.TxnExpenseSubmitted,
			wantLines: 2,
		},
		{
			name:      "payment made",
			template:  domain.PaymentMadeTemplate{EntryHeader: header, PayableAccount: "2-1000", CashAccount: "1-1001", Amount: dec("75.50")},
			wantType:  domain.TxnPaymentMade,
			wantLines: 2,
		},
		{
			name:      "depreciation",
			template:  domain.DepreciationTemplate{EntryHeader: header, ExpenseAccount: "6-2000", AccumulatedAccount: "1-2900", Amount: dec("250000")},
			wantType:  domain.TxnDepreciation,
			wantLines: 2,
		},
		{
			name:      "transfer with fee",
			template:  domain.BankTransferTemplate{EntryHeader: header, FromAccount: "1-1002", ToAccount: "1-1003", FeeAccount: "6-9000", Amount: dec("1000"), Fee: dec("6.5")},
			wantType:  domain.TxnBankTransfer,
			wantLines: 4,
		},
		{
			name:      "transfer without fee",
			template:  domain.BankTransferTemplate{EntryHeader: header, FromAccount: "1-1002", ToAccount: "1-1003", Amount: dec("1000")},
			wantType:  domain.TxnBankTransfer,
			wantLines: 2,
		},
		{
			name:      "reconciliation adjustment with negative other",
			template:  domain.ReconciliationAdjustmentTemplate{EntryHeader: header, BankAccount: "1-1002", ChargesAccount: "6-9000", InterestAccount: "4-9000", OtherAccount: "6-9900", Charges: dec("20000"), Interest: dec("50000"), Other: dec("-100")},
			wantType:  domain.TxnBankReconciliation,
			wantLines: 6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := tt.template.Lines()
			entry := domain.JournalEntry{Lines: lines}

			assert.Equal(t, tt.wantType, tt.template.Type())
			assert.Len(t, lines, tt.wantLines)
			assert.True(t, entry.TotalDebit().Equal(entry.TotalCredit()), "debits %s credits %s", entry.TotalDebit(), entry.TotalCredit())
			for i, l := range lines {
				assert.Equal(t, i+1, l.LineNumber)
				assert.True(t, l.DebitAmount.IsZero() != l.CreditAmount.IsZero(), "line %d must have exactly one side", i+1)
			}
		})
	}
}

func TestCashTransaction_Template(t *testing.T) {
	base := domain.CashTransaction{
		TransactionDate:   time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		CashAccountCode:   "1-1001",
		OffsetAccountCode: "4-1000",
		Amount:            dec("1000000"),
		Reference:         "KW-001",
	}

	t.Run("receipt debits cash", func(t *testing.T) {
		base.Kind = domain.Receipt
		tpl := base.Template()
		lines := tpl.Lines()

		assert.Equal(t, domain.TxnCashReceipt, tpl.Type())
		assert.Equal(t, "1-1001", lines[0].AccountCode)
		assert.Equal(t, domain.Debit, lines[0].Side())
		assert.Equal(t, "4-1000", lines[1].AccountCode)
		assert.Equal(t, domain.Credit, lines[1].Side())
		if assert.NotNil(t, tpl.Header().DocumentNumber) {
			assert.Equal(t, "KW-001", *tpl.Header().DocumentNumber)
		}
	})

	t.Run("disbursement credits cash", func(t *testing.T) {
		base.Kind = domain.Disbursement
		tpl := base.Template()
		lines := tpl.Lines()

		assert.Equal(t, domain.TxnCashDisbursement, tpl.Type())
		assert.Equal(t, "4-1000", lines[0].AccountCode)
		assert.Equal(t, domain.Debit, lines[0].Side())
		assert.Equal(t, "1-1001", lines[1].AccountCode)
		assert.Equal(t, domain.Credit, lines[1].Side())
	})
}

func TestReconciliationAdjustmentTemplate_NoAdjustments(t *testing.T) {
	tpl := domain.ReconciliationAdjustmentTemplate{BankAccount: "1-1002"}
	assert.Empty(t, tpl.Lines())
}

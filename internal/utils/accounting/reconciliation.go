package accounting

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// ComputeReconciliation derives the adjusted balances of a bank reconciliation.
//
//	adjustedBook = bookBalanceEnd + bankInterest - bankCharges + otherAdjustments
//	adjustedBank = statementBalance + depositsInTransit - outstandingChecks
//
// The reconciliation is balanced when the absolute difference is below one minor unit at scale.
func ComputeReconciliation(f domain.ReconciliationFigures, scale int32) domain.ReconciliationResult {
	adjustedBook := f.BookBalanceEnd.
		Add(f.BankInterest).
		Sub(f.BankCharges).
		Add(f.OtherAdjustments)
	adjustedBank := f.StatementBalance.
		Add(f.DepositsInTransit).
		Sub(f.OutstandingChecks)
	difference := adjustedBook.Sub(adjustedBank).Abs()

	return domain.ReconciliationResult{
		AdjustedBookBalance: adjustedBook,
		AdjustedBankBalance: adjustedBank,
		Difference:          difference,
		IsBalanced:          difference.LessThan(MinorUnit(scale)),
	}
}

package accounting

import (
	"fmt"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateSignedAmount applies the normal-balance sign of accountType to a line.
// This is used by posting and by the general ledger projection so both agree on what a line does to a balance.
func CalculateSignedAmount(line domain.LineItem, accountType domain.AccountType) (decimal.Decimal, error) {
	// DEBIT to ASSET/EXPENSE -> Positive (+)
	// CREDIT to ASSET/EXPENSE -> Negative (-)
	// DEBIT to LIABILITY/EQUITY/REVENUE -> Negative (-)
	// CREDIT to LIABILITY/EQUITY/REVENUE -> Positive (+)
	net := line.DebitAmount.Sub(line.CreditAmount)
	switch accountType {
	case domain.Asset, domain.Expense:
		return net, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return net.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s' encountered for account %s", accountType, line.AccountCode)
	}
}

// NormalBalance turns debit and credit totals into a balance in the account type's natural sign.
func NormalBalance(totals domain.AccountTotals, accountType domain.AccountType) decimal.Decimal {
	net := totals.Debit.Sub(totals.Credit)
	if accountType.IsDebitNormal() {
		return net
	}
	return net.Neg()
}

// ValidateEntryLines checks the shape of a journal entry's lines: at least two lines,
// exactly one positive side per line, at most scale decimal places and debits equal to credits.
// Every problem found is reported, not only the first. Lines rejected for their sides
// are left out of the debit and credit totals.
func ValidateEntryLines(lines []domain.LineItem, scale int32) error {
	if len(lines) < 2 {
		return apperrors.NewValidationError("lines", "journal entry must have at least two lines, got %d", len(lines))
	}

	var errs apperrors.ValidationErrors
	totalDebit, totalCredit := decimal.Zero, decimal.Zero

	for i, line := range lines {
		field := fmt.Sprintf("lines[%d]", i)
		if line.AccountCode == "" {
			errs = append(errs, apperrors.NewValidationError(field+".accountCode", "account code is required"))
		}

		debitSet, creditSet := !line.DebitAmount.IsZero(), !line.CreditAmount.IsZero()
		switch {
		case debitSet == creditSet:
			errs = append(errs, apperrors.NewValidationError(field, "exactly one of debit and credit must be non-zero"))
			continue
		case line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative():
			errs = append(errs, apperrors.NewValidationError(field, "amount must be positive"))
			continue
		}

		amount := line.Amount()
		if !amount.Equal(amount.Truncate(scale)) {
			errs = append(errs, apperrors.NewValidationError(field, "amount %s has more than %d decimal places", amount.String(), scale))
		}

		totalDebit = totalDebit.Add(line.DebitAmount)
		totalCredit = totalCredit.Add(line.CreditAmount)
	}

	if !totalDebit.Equal(totalCredit) {
		errs = append(errs, apperrors.NewValidationError("lines",
			"journal entry does not balance: debits %s, credits %s", totalDebit.String(), totalCredit.String()))
	}
	return errs.OrNil()
}

// MinorUnit returns the smallest representable amount at the given scale, e.g. 0.01 for scale 2.
func MinorUnit(scale int32) decimal.Decimal {
	return decimal.New(1, -scale)
}

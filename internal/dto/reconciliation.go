package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReconciliationRequest defines the data needed to start a bank reconciliation.
type CreateReconciliationRequest struct {
	BankAccountCode  string                       `json:"bankAccountCode" validate:"required"`
	StatementDate    time.Time                    `json:"statementDate" validate:"required"`
	PeriodStart      time.Time                    `json:"periodStart" validate:"required"`
	PeriodEnd        time.Time                    `json:"periodEnd" validate:"required,gtefield=PeriodStart"`
	BookBalanceStart decimal.Decimal              `json:"bookBalanceStart"`
	Figures          domain.ReconciliationFigures `json:"figures"`
	Notes            string                       `json:"notes" validate:"max=1000"`
}

// UpdateReconciliationRequest replaces figures or notes of an editable reconciliation.
type UpdateReconciliationRequest struct {
	StatementDate    *time.Time                    `json:"statementDate"`
	BookBalanceStart *decimal.Decimal              `json:"bookBalanceStart"`
	Figures          *domain.ReconciliationFigures `json:"figures"`
	Notes            *string                       `json:"notes" validate:"omitempty,max=1000"`
}

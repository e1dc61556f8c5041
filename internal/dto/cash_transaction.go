package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCashTransactionRequest defines the data needed to create a draft cash transaction.
type CreateCashTransactionRequest struct {
	Kind              domain.CashKind `json:"kind" validate:"required,oneof=RECEIPT DISBURSEMENT"`
	TransactionDate   time.Time       `json:"transactionDate" validate:"required"`
	CashAccountCode   string          `json:"cashAccountCode" validate:"required"`
	OffsetAccountCode string          `json:"offsetAccountCode" validate:"required,nefield=CashAccountCode"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description" validate:"required,max=500"`
	DescriptionID     string          `json:"descriptionId" validate:"max=500"`
	Reference         string          `json:"reference" validate:"max=100"`
}

// UpdateCashTransactionRequest replaces fields of a draft cash transaction.
type UpdateCashTransactionRequest struct {
	TransactionDate   *time.Time       `json:"transactionDate"`
	CashAccountCode   *string          `json:"cashAccountCode" validate:"omitempty,min=1"`
	OffsetAccountCode *string          `json:"offsetAccountCode" validate:"omitempty,min=1"`
	Amount            *decimal.Decimal `json:"amount"`
	Description       *string          `json:"description" validate:"omitempty,min=1,max=500"`
	DescriptionID     *string          `json:"descriptionId" validate:"omitempty,max=500"`
	Reference         *string          `json:"reference" validate:"omitempty,max=100"`
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransferRequest defines the data needed to create a pending bank transfer.
type CreateTransferRequest struct {
	FromAccountCode string           `json:"fromAccountCode" validate:"required"`
	ToAccountCode   string           `json:"toAccountCode" validate:"required,nefield=FromAccountCode"`
	Amount          decimal.Decimal  `json:"amount"`
	TransferFee     *decimal.Decimal `json:"transferFee"`    // Optional
	FeeAccountCode  string           `json:"feeAccountCode"` // Optional, defaults to the BANK_CHARGES account
	TransferDate    time.Time        `json:"transferDate" validate:"required"`
	Reference       string           `json:"reference" validate:"max=100"`
	Description     string           `json:"description" validate:"required,max=500"`
	DescriptionID   string           `json:"descriptionId" validate:"max=500"`
}

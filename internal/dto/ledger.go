package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// GeneralLedgerRequest selects the accounts and period of a general ledger projection.
type GeneralLedgerRequest struct {
	AccountCodes []string            `json:"accountCodes" validate:"dive,required"`
	AccountType  *domain.AccountType `json:"accountType" validate:"omitempty,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	From         time.Time           `json:"from" validate:"required"`
	To           time.Time           `json:"to" validate:"required,gtefield=From"`
}

// ToFilter converts the request into the domain filter.
func (r GeneralLedgerRequest) ToFilter() domain.GeneralLedgerFilter {
	return domain.GeneralLedgerFilter{
		AccountCodes: r.AccountCodes,
		AccountType:  r.AccountType,
		From:         r.From,
		To:           r.To,
	}
}

// AgingReportRequest carries outstanding items and an optional reference date.
type AgingReportRequest struct {
	Items         []domain.AgingItem `json:"items" yaml:"items" validate:"dive"`
	ReferenceDate *time.Time         `json:"referenceDate" yaml:"referenceDate"`
}

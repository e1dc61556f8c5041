package dto

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountResponse defines the data returned for an account lookup.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	SubType       string             `json:"subType,omitempty"`
	ParentCode    string             `json:"parentCode,omitempty"` // Note: Empty string if null in DB
	IsHeader      bool               `json:"isHeader"`
	IsActive      bool               `json:"isActive"`
	IsPostable    bool               `json:"isPostable"`
	Balance       decimal.Decimal    `json:"balance"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Code:          acc.Code,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		SubType:       acc.SubType,
		ParentCode:    acc.ParentCode,
		IsHeader:      acc.IsHeader,
		IsActive:      acc.IsActive,
		IsPostable:    acc.IsPostable(),
		Balance:       acc.Balance,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

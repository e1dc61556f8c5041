package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
)

// AccountRegistrySvc is the read-only view of the chart of accounts used by every posting.
type AccountRegistrySvc interface {
	// Lookup retrieves an account by code, or apperrors.ErrNotFound.
	Lookup(ctx context.Context, workplaceID string, code string) (*domain.Account, error)

	// IsPostable reports whether lines may reference the account (active and not a header).
	IsPostable(account domain.Account) bool

	// ResolvePostable retrieves every code and fails with a validation error naming each
	// unknown, inactive or header account.
	ResolvePostable(ctx context.Context, workplaceID string, codes []string) (map[string]domain.Account, error)

	// FindPostableBySubType retrieves the first postable account with the sub-type, by code order.
	FindPostableBySubType(ctx context.Context, workplaceID string, subType string) (*domain.Account, error)
}

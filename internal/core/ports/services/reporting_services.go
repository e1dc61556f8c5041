package services

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/dto"
)

// AgingSvc classifies outstanding receivables and payables.
type AgingSvc interface {
	// BuildReport classifies the items as of req.ReferenceDate, or now when it is nil.
	BuildReport(ctx context.Context, req dto.AgingReportRequest) (*domain.AgingReport, error)
}

// LedgerProjectorSvc replays posted lines into per-account running balances.
type LedgerProjectorSvc interface {
	GeneralLedger(ctx context.Context, workplaceID string, req dto.GeneralLedgerRequest) (*domain.GeneralLedger, error)
}

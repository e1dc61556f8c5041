package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/SscSPs/ledger_core/internal/utils/accounting"
)

type agingService struct {
	BaseService
}

// NewAgingService creates the receivable and payable aging classifier.
func NewAgingService(options ...ServiceOption) portssvc.AgingSvc {
	return &agingService{BaseService: newBaseService(options...)}
}

var _ portssvc.AgingSvc = (*agingService)(nil)

func (s *agingService) BuildReport(ctx context.Context, req dto.AgingReportRequest) (*domain.AgingReport, error) {
	if err := s.validateRequest(ctx, req); err != nil {
		return nil, err
	}

	referenceDate := s.now()
	if req.ReferenceDate != nil {
		referenceDate = *req.ReferenceDate
	}
	report := accounting.SummarizeAging(req.Items, accounting.DateOnly(referenceDate))

	s.LogDebug(ctx, "Aging report built",
		slog.Int("items", len(report.Entries)),
		slog.String("grand_total", report.GrandTotal.String()))
	return &report, nil
}

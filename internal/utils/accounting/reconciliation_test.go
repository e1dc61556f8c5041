package accounting

import (
	"testing"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestComputeReconciliation(t *testing.T) {
	tests := []struct {
		name         string
		figures      domain.ReconciliationFigures
		scale        int32
		wantBook     string
		wantBank     string
		wantDiff     string
		wantBalanced bool
	}{
		{
			name: "interest and charges offset by deposit in transit",
			figures: domain.ReconciliationFigures{
				BookBalanceEnd:    d("10000000"),
				BankInterest:      d("50000"),
				BankCharges:       d("20000"),
				OtherAdjustments:  d("0"),
				StatementBalance:  d("10000000"),
				DepositsInTransit: d("30000"),
				OutstandingChecks: d("0"),
			},
			scale:        2,
			wantBook:     "10030000",
			wantBank:     "10030000",
			wantDiff:     "0",
			wantBalanced: true,
		},
		{
			name: "one cent off at scale 2",
			figures: domain.ReconciliationFigures{
				BookBalanceEnd:   d("100.01"),
				StatementBalance: d("100.00"),
			},
			scale:        2,
			wantBook:     "100.01",
			wantBank:     "100",
			wantDiff:     "0.01",
			wantBalanced: false,
		},
		{
			name: "sub-cent difference is balanced",
			figures: domain.ReconciliationFigures{
				BookBalanceEnd:   d("100.004"),
				StatementBalance: d("100.00"),
			},
			scale:        2,
			wantBook:     "100.004",
			wantBank:     "100",
			wantDiff:     "0.004",
			wantBalanced: true,
		},
		{
			name: "rupiah scale rejects one rupiah",
			figures: domain.ReconciliationFigures{
				BookBalanceEnd:    d("5000000"),
				StatementBalance:  d("5000001"),
				OutstandingChecks: d("0"),
			},
			scale:        0,
			wantBook:     "5000000",
			wantBank:     "5000001",
			wantDiff:     "1",
			wantBalanced: false,
		},
		{
			name: "negative other adjustment and outstanding checks",
			figures: domain.ReconciliationFigures{
				BookBalanceEnd:    d("2000"),
				OtherAdjustments:  d("-150"),
				StatementBalance:  d("2350"),
				OutstandingChecks: d("500"),
			},
			scale:        2,
			wantBook:     "1850",
			wantBank:     "1850",
			wantDiff:     "0",
			wantBalanced: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeReconciliation(tt.figures, tt.scale)
			assert.True(t, got.AdjustedBookBalance.Equal(d(tt.wantBook)), "book %s", got.AdjustedBookBalance)
			assert.True(t, got.AdjustedBankBalance.Equal(d(tt.wantBank)), "bank %s", got.AdjustedBankBalance)
			assert.True(t, got.Difference.Equal(d(tt.wantDiff)), "diff %s", got.Difference)
			assert.Equal(t, tt.wantBalanced, got.IsBalanced)
		})
	}
}

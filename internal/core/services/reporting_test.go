package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/core/services"
	"github.com/SscSPs/ledger_core/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAgingReportDefaultsToToday(t *testing.T) {
	svc := services.NewAgingService(services.WithClock(func() time.Time { return fixedNow }))

	report, err := svc.BuildReport(context.Background(), dto.AgingReportRequest{
		Items: []domain.AgingItem{
			{ItemID: "inv-1", Kind: domain.Receivable, DueDate: fixedNow.AddDate(0, 0, -45), Amount: amount("200")},
			{ItemID: "inv-2", Kind: domain.Receivable, DueDate: fixedNow.AddDate(0, 0, 3), Amount: amount("50")},
			{ItemID: "bill-1", Kind: domain.Payable, DueDate: fixedNow.AddDate(0, 0, -120), Amount: amount("75")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, date(time.March, 31), report.ReferenceDate)
	require.Len(t, report.Entries, 3)
	assert.Equal(t, "inv-1", report.Entries[0].ItemID)
	assert.Equal(t, 45, report.Entries[0].DaysOverdue)
	assert.Equal(t, domain.Bucket31To60, report.Entries[0].Bucket)
	assert.Equal(t, domain.BucketCurrent, report.Entries[1].Bucket)
	assert.Equal(t, domain.BucketOver90, report.Entries[2].Bucket)
	assert.True(t, report.GrandTotal.Equal(amount("325")))

	require.Len(t, report.Buckets, len(domain.AgingBuckets))
	for i, b := range domain.AgingBuckets {
		assert.Equal(t, b, report.Buckets[i].Bucket)
	}
}

func TestAgingReportValidatesItems(t *testing.T) {
	svc := services.NewAgingService()
	ref := date(time.March, 1)

	_, err := svc.BuildReport(context.Background(), dto.AgingReportRequest{
		Items:         []domain.AgingItem{{DueDate: ref, Amount: amount("1")}},
		ReferenceDate: &ref,
	})
	assert.True(t, apperrors.IsValidation(err), "got %v", err)
}

func TestAccountRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("sub-type lookup picks the first postable account by code", func(t *testing.T) {
		repo := new(MockAccountRepository)
		repo.On("FindAccountsBySubType", ctx, testWorkplace, domain.SubTypeBank).Return([]domain.Account{
			{Code: "1-1103", IsActive: true},
			{Code: "1-1101", IsActive: false},
			{Code: "1-1102", IsActive: true},
		}, nil).Once()

		acc, err := services.NewAccountRegistry(repo).FindPostableBySubType(ctx, testWorkplace, domain.SubTypeBank)
		require.NoError(t, err)
		assert.Equal(t, "1-1102", acc.Code)
		repo.AssertExpectations(t)
	})

	t.Run("sub-type lookup without candidates is not found", func(t *testing.T) {
		repo := new(MockAccountRepository)
		repo.On("FindAccountsBySubType", ctx, testWorkplace, domain.SubTypeCash).Return([]domain.Account{}, nil).Once()

		_, err := services.NewAccountRegistry(repo).FindPostableBySubType(ctx, testWorkplace, domain.SubTypeCash)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("resolve reports every unusable code", func(t *testing.T) {
		repo := new(MockAccountRepository)
		repo.On("FindAccountsByCodes", ctx, testWorkplace, []string{"a", "b", "c"}).Return(map[string]domain.Account{
			"a": {Code: "a", IsActive: true, IsHeader: true},
			"b": {Code: "b", IsActive: false},
		}, nil).Once()

		_, err := services.NewAccountRegistry(repo).ResolvePostable(ctx, testWorkplace, []string{"a", "b", "a", "c"})
		require.Error(t, err)
		var verrs apperrors.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Len(t, verrs, 3)
	})

	t.Run("lookup wraps store errors", func(t *testing.T) {
		repo := new(MockAccountRepository)
		storeErr := errors.New("pool closed")
		repo.On("FindAccountByCode", mock.Anything, testWorkplace, "x").Return(nil, storeErr).Once()

		_, err := services.NewAccountRegistry(repo).Lookup(ctx, testWorkplace, "x")
		assert.ErrorIs(t, err, storeErr)
		assert.False(t, apperrors.IsNotFound(err))
	})
}

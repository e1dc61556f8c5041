package accounting

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyAging(t *testing.T) {
	ref := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		dueDate  time.Time
		wantDays int
		want     domain.AgingBucket
	}{
		{"due today", ref, 0, domain.BucketCurrent},
		{"due in the future", ref.AddDate(0, 0, 10), 0, domain.BucketCurrent},
		{"one day", ref.AddDate(0, 0, -1), 1, domain.Bucket1To30},
		{"thirty days", ref.AddDate(0, 0, -30), 30, domain.Bucket1To30},
		{"thirty one days", ref.AddDate(0, 0, -31), 31, domain.Bucket31To60},
		{"sixty days", ref.AddDate(0, 0, -60), 60, domain.Bucket31To60},
		{"sixty one days", ref.AddDate(0, 0, -61), 61, domain.Bucket61To90},
		{"ninety days", ref.AddDate(0, 0, -90), 90, domain.Bucket61To90},
		{"ninety one days", ref.AddDate(0, 0, -91), 91, domain.BucketOver90},
		{"a year", ref.AddDate(-1, 0, 0), 366, domain.BucketOver90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyAging(tt.dueDate, ref)
			assert.Equal(t, tt.wantDays, got.DaysOverdue)
			assert.Equal(t, tt.want, got.Bucket)
			assert.Equal(t, got, ClassifyAging(tt.dueDate, ref), "classification must be deterministic")
		})
	}
}

func TestClassifyAging_IgnoresTimeOfDay(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*60*60)
	due := time.Date(2024, 6, 29, 23, 59, 0, 0, jakarta)
	ref := time.Date(2024, 6, 30, 0, 1, 0, 0, jakarta)

	got := ClassifyAging(due, ref)
	assert.Equal(t, 1, got.DaysOverdue)
	assert.Equal(t, domain.Bucket1To30, got.Bucket)
}

func TestSummarizeAging(t *testing.T) {
	ref := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	items := []domain.AgingItem{
		{ItemID: "inv-1", Kind: domain.Receivable, DueDate: ref.AddDate(0, 0, -45), Amount: d("1500000")},
		{ItemID: "inv-2", Kind: domain.Receivable, DueDate: ref, Amount: d("250000")},
		{ItemID: "inv-3", Kind: domain.Receivable, DueDate: ref.AddDate(0, 0, -120), Amount: d("75000")},
	}

	report := SummarizeAging(items, ref)

	require.Len(t, report.Entries, 3)
	assert.Equal(t, "inv-1", report.Entries[0].ItemID)
	assert.Equal(t, domain.Bucket31To60, report.Entries[0].Bucket)
	assert.Equal(t, 45, report.Entries[0].DaysOverdue)

	require.Len(t, report.Buckets, len(domain.AgingBuckets))
	for i, b := range domain.AgingBuckets {
		assert.Equal(t, b, report.Buckets[i].Bucket)
	}

	thirtyOneToSixty := report.Buckets[2]
	assert.Equal(t, 1, thirtyOneToSixty.Count)
	assert.True(t, thirtyOneToSixty.Total.Equal(d("1500000")), "31-60 bucket must hold only the 45 day item")
	assert.True(t, report.Buckets[0].Total.Equal(d("250000")))
	assert.True(t, report.Buckets[1].Total.IsZero())
	assert.True(t, report.Buckets[4].Total.Equal(d("75000")))
	assert.True(t, report.GrandTotal.Equal(d("1825000")))
}

func TestSummarizeAging_Empty(t *testing.T) {
	report := SummarizeAging(nil, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Empty(t, report.Entries)
	assert.Len(t, report.Buckets, 5)
	assert.True(t, report.GrandTotal.IsZero())
}

package accounting

import (
	"time"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
)

// civilDays counts the calendar days from a to b, ignoring time of day and DST shifts.
func civilDays(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// BucketFor maps whole days overdue to its aging bucket.
func BucketFor(daysOverdue int) domain.AgingBucket {
	switch {
	case daysOverdue <= 0:
		return domain.BucketCurrent
	case daysOverdue <= 30:
		return domain.Bucket1To30
	case daysOverdue <= 60:
		return domain.Bucket31To60
	case daysOverdue <= 90:
		return domain.Bucket61To90
	default:
		return domain.BucketOver90
	}
}

// ClassifyAging returns how many whole days dueDate lies before referenceDate (never negative) and its bucket.
func ClassifyAging(dueDate, referenceDate time.Time) domain.AgingClassification {
	days := civilDays(dueDate, referenceDate)
	if days < 0 {
		days = 0
	}
	return domain.AgingClassification{DaysOverdue: days, Bucket: BucketFor(days)}
}

// SummarizeAging classifies every item against referenceDate and totals them per bucket.
// Entries keep the input order; buckets are always reported in domain.AgingBuckets order, empty ones included.
func SummarizeAging(items []domain.AgingItem, referenceDate time.Time) domain.AgingReport {
	report := domain.AgingReport{
		ReferenceDate: referenceDate,
		Entries:       make([]domain.AgingEntry, 0, len(items)),
		Buckets:       make([]domain.AgingBucketTotal, len(domain.AgingBuckets)),
		GrandTotal:    decimal.Zero,
	}

	index := make(map[domain.AgingBucket]int, len(domain.AgingBuckets))
	for i, b := range domain.AgingBuckets {
		report.Buckets[i] = domain.AgingBucketTotal{Bucket: b, Total: decimal.Zero}
		index[b] = i
	}

	for _, item := range items {
		c := ClassifyAging(item.DueDate, referenceDate)
		report.Entries = append(report.Entries, domain.AgingEntry{AgingItem: item, AgingClassification: c})

		bt := &report.Buckets[index[c.Bucket]]
		bt.Count++
		bt.Total = bt.Total.Add(item.Amount)
		report.GrandTotal = report.GrandTotal.Add(item.Amount)
	}
	return report
}

// DateOnly drops the time of day, keeping the calendar date of t as midnight UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

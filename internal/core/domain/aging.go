package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AgingBucket is a days-overdue band.
type AgingBucket string

const (
	BucketCurrent AgingBucket = "Current"
	Bucket1To30   AgingBucket = "1-30 days"
	Bucket31To60  AgingBucket = "31-60 days"
	Bucket61To90  AgingBucket = "61-90 days"
	BucketOver90  AgingBucket = "Over 90 days"
)

// AgingBuckets lists the buckets in report order.
var AgingBuckets = []AgingBucket{BucketCurrent, Bucket1To30, Bucket31To60, Bucket61To90, BucketOver90}

// AgingKind separates receivables from payables.
type AgingKind string

const (
	Receivable AgingKind = "RECEIVABLE"
	Payable    AgingKind = "PAYABLE"
)

// AgingItem is an outstanding document supplied by the invoicing or expense collaborator.
type AgingItem struct {
	ItemID         string          `json:"itemID" yaml:"itemID" validate:"required"`
	Kind           AgingKind       `json:"kind" yaml:"kind" validate:"omitempty,oneof=RECEIVABLE PAYABLE"`
	PartyName      string          `json:"partyName" yaml:"partyName"`
	DocumentNumber string          `json:"documentNumber" yaml:"documentNumber"`
	DueDate        time.Time       `json:"dueDate" yaml:"dueDate" validate:"required"`
	Amount         decimal.Decimal `json:"amount" yaml:"amount"`
}

// AgingClassification is the result of classifying one due date.
type AgingClassification struct {
	DaysOverdue int         `json:"daysOverdue"`
	Bucket      AgingBucket `json:"bucket"`
}

// AgingEntry is an AgingItem with its classification. Derived, never persisted.
type AgingEntry struct {
	AgingItem
	AgingClassification
}

// AgingBucketTotal sums the items that fell into one bucket.
type AgingBucketTotal struct {
	Bucket AgingBucket     `json:"bucket"`
	Count  int             `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// AgingReport is the aggregation over a collection of items.
type AgingReport struct {
	ReferenceDate time.Time          `json:"referenceDate"`
	Entries       []AgingEntry       `json:"entries"`
	Buckets       []AgingBucketTotal `json:"buckets"`
	GrandTotal    decimal.Decimal    `json:"grandTotal"`
}

package mapping

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

// ToModelJournalEntry converts the header of a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		WorkplaceID:     d.WorkplaceID,
		EntryNumber:     d.EntryNumber,
		EntryDate:       d.EntryDate,
		TransactionType: string(d.TransactionType),
		Description:     d.Description,
		DescriptionID:   d.DescriptionID,
		DocumentNumber:  d.DocumentNumber,
		IsPosted:        d.IsPosted,
		PostedAt:        d.PostedAt,
		PostedBy:        d.PostedBy,
		IsReversing:     d.IsReversing,
		ReversedEntryID: d.ReversedEntryID,
		Version:         d.Version,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry and its lines to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		WorkplaceID:     m.WorkplaceID,
		EntryNumber:     m.EntryNumber,
		EntryDate:       m.EntryDate,
		TransactionType: domain.TransactionType(m.TransactionType),
		Description:     m.Description,
		DescriptionID:   m.DescriptionID,
		DocumentNumber:  m.DocumentNumber,
		IsPosted:        m.IsPosted,
		PostedAt:        m.PostedAt,
		PostedBy:        m.PostedBy,
		IsReversing:     m.IsReversing,
		ReversedEntryID: m.ReversedEntryID,
		Version:         m.Version,
		Lines:           ToDomainLineItemSlice(lines),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain LineItem to a model JournalLine
func ToModelJournalLine(d domain.LineItem) models.JournalLine {
	return models.JournalLine{
		LineID:        d.LineID,
		EntryID:       d.EntryID,
		LineNumber:    d.LineNumber,
		AccountCode:   d.AccountCode,
		DebitAmount:   d.DebitAmount,
		CreditAmount:  d.CreditAmount,
		Description:   d.Description,
		DescriptionID: d.DescriptionID,
	}
}

// ToDomainLineItem converts a model JournalLine to a domain LineItem
func ToDomainLineItem(m models.JournalLine) domain.LineItem {
	return domain.LineItem{
		LineID:        m.LineID,
		EntryID:       m.EntryID,
		LineNumber:    m.LineNumber,
		AccountCode:   m.AccountCode,
		DebitAmount:   m.DebitAmount,
		CreditAmount:  m.CreditAmount,
		Description:   m.Description,
		DescriptionID: m.DescriptionID,
	}
}

// ToDomainLineItemSlice converts a slice of model JournalLines to domain LineItems
func ToDomainLineItemSlice(ms []models.JournalLine) []domain.LineItem {
	out := make([]domain.LineItem, len(ms))
	for i, m := range ms {
		out[i] = ToDomainLineItem(m)
	}
	return out
}

// ToDomainPostedLine converts a joined model PostedLine to a domain PostedLine
func ToDomainPostedLine(m models.PostedLine) domain.PostedLine {
	return domain.PostedLine{
		EntryID:     m.EntryID,
		EntryNumber: m.EntryNumber,
		EntryDate:   m.EntryDate,
		IsReversing: m.IsReversing,
		LineItem:    ToDomainLineItem(m.JournalLine),
	}
}

// ToDomainAccountTotals keys the summed rows by account code.
func ToDomainAccountTotals(ms []models.AccountTotals) map[string]domain.AccountTotals {
	out := make(map[string]domain.AccountTotals, len(ms))
	for _, m := range ms {
		out[m.AccountCode] = domain.AccountTotals{Debit: m.Debit, Credit: m.Credit}
	}
	return out
}

package mapping

import (
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/SscSPs/ledger_core/internal/models"
)

// ToModelReconciliation converts a domain BankReconciliation to a model BankReconciliation
func ToModelReconciliation(d domain.BankReconciliation) models.BankReconciliation {
	return models.BankReconciliation{
		ReconciliationID:    d.ReconciliationID,
		WorkplaceID:         d.WorkplaceID,
		BankAccountCode:     d.BankAccountCode,
		StatementDate:       d.StatementDate,
		PeriodStart:         d.PeriodStart,
		PeriodEnd:           d.PeriodEnd,
		BookBalanceStart:    d.BookBalanceStart,
		BookBalanceEnd:      d.BookBalanceEnd,
		StatementBalance:    d.StatementBalance,
		DepositsInTransit:   d.DepositsInTransit,
		OutstandingChecks:   d.OutstandingChecks,
		BankCharges:         d.BankCharges,
		BankInterest:        d.BankInterest,
		OtherAdjustments:    d.OtherAdjustments,
		AdjustedBookBalance: d.AdjustedBookBalance,
		AdjustedBankBalance: d.AdjustedBankBalance,
		Difference:          d.Difference,
		IsBalanced:          d.IsBalanced,
		Status:              string(d.Status),
		RejectionReason:     d.RejectionReason,
		AdjustmentEntryID:   d.AdjustmentEntryID,
		Notes:               d.Notes,
		ReviewedBy:          d.ReviewedBy,
		ApprovedBy:          d.ApprovedBy,
		Version:             d.Version,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReconciliation converts a model BankReconciliation to a domain BankReconciliation
func ToDomainReconciliation(m models.BankReconciliation) domain.BankReconciliation {
	return domain.BankReconciliation{
		ReconciliationID:  m.ReconciliationID,
		WorkplaceID:       m.WorkplaceID,
		BankAccountCode:   m.BankAccountCode,
		StatementDate:     m.StatementDate,
		PeriodStart:       m.PeriodStart,
		PeriodEnd:         m.PeriodEnd,
		BookBalanceStart:  m.BookBalanceStart,
		Status:            domain.ReconciliationStatus(m.Status),
		RejectionReason:   m.RejectionReason,
		AdjustmentEntryID: m.AdjustmentEntryID,
		Notes:             m.Notes,
		ReviewedBy:        m.ReviewedBy,
		ApprovedBy:        m.ApprovedBy,
		Version:           m.Version,
		ReconciliationFigures: domain.ReconciliationFigures{
			BookBalanceEnd:    m.BookBalanceEnd,
			StatementBalance:  m.StatementBalance,
			DepositsInTransit: m.DepositsInTransit,
			OutstandingChecks: m.OutstandingChecks,
			BankCharges:       m.BankCharges,
			BankInterest:      m.BankInterest,
			OtherAdjustments:  m.OtherAdjustments,
		},
		ReconciliationResult: domain.ReconciliationResult{
			AdjustedBookBalance: m.AdjustedBookBalance,
			AdjustedBankBalance: m.AdjustedBankBalance,
			Difference:          m.Difference,
			IsBalanced:          m.IsBalanced,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransfer converts a domain BankTransfer to a model BankTransfer
func ToModelTransfer(d domain.BankTransfer) models.BankTransfer {
	return models.BankTransfer{
		TransferID:      d.TransferID,
		WorkplaceID:     d.WorkplaceID,
		FromAccountCode: d.FromAccountCode,
		ToAccountCode:   d.ToAccountCode,
		Amount:          d.Amount,
		TransferFee:     d.TransferFee,
		FeeAccountCode:  d.FeeAccountCode,
		TransferDate:    d.TransferDate,
		Reference:       d.Reference,
		Description:     d.Description,
		DescriptionID:   d.DescriptionID,
		Status:          string(d.Status),
		JournalEntryID:  d.JournalEntryID,
		ReversalEntryID: d.ReversalEntryID,
		RejectionReason: d.RejectionReason,
		Version:         d.Version,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransfer converts a model BankTransfer to a domain BankTransfer
func ToDomainTransfer(m models.BankTransfer) domain.BankTransfer {
	return domain.BankTransfer{
		TransferID:      m.TransferID,
		WorkplaceID:     m.WorkplaceID,
		FromAccountCode: m.FromAccountCode,
		ToAccountCode:   m.ToAccountCode,
		Amount:          m.Amount,
		TransferFee:     m.TransferFee,
		FeeAccountCode:  m.FeeAccountCode,
		TransferDate:    m.TransferDate,
		Reference:       m.Reference,
		Description:     m.Description,
		DescriptionID:   m.DescriptionID,
		Status:          domain.TransferStatus(m.Status),
		JournalEntryID:  m.JournalEntryID,
		ReversalEntryID: m.ReversalEntryID,
		RejectionReason: m.RejectionReason,
		Version:         m.Version,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCashTransaction converts a domain CashTransaction to a model CashTransaction
func ToModelCashTransaction(d domain.CashTransaction) models.CashTransaction {
	return models.CashTransaction{
		CashTransactionID: d.CashTransactionID,
		WorkplaceID:       d.WorkplaceID,
		Kind:              string(d.Kind),
		TransactionDate:   d.TransactionDate,
		CashAccountCode:   d.CashAccountCode,
		OffsetAccountCode: d.OffsetAccountCode,
		Amount:            d.Amount,
		Description:       d.Description,
		DescriptionID:     d.DescriptionID,
		Reference:         d.Reference,
		Status:            string(d.Status),
		JournalEntryID:    d.JournalEntryID,
		ReversalEntryID:   d.ReversalEntryID,
		RejectionReason:   d.RejectionReason,
		Version:           d.Version,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCashTransaction converts a model CashTransaction to a domain CashTransaction
func ToDomainCashTransaction(m models.CashTransaction) domain.CashTransaction {
	return domain.CashTransaction{
		CashTransactionID: m.CashTransactionID,
		WorkplaceID:       m.WorkplaceID,
		Kind:              domain.CashKind(m.Kind),
		TransactionDate:   m.TransactionDate,
		CashAccountCode:   m.CashAccountCode,
		OffsetAccountCode: m.OffsetAccountCode,
		Amount:            m.Amount,
		Description:       m.Description,
		DescriptionID:     m.DescriptionID,
		Reference:         m.Reference,
		Status:            domain.CashTransactionStatus(m.Status),
		JournalEntryID:    m.JournalEntryID,
		ReversalEntryID:   m.ReversalEntryID,
		RejectionReason:   m.RejectionReason,
		Version:           m.Version,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

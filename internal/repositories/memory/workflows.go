package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
)

func conflict(entity, id string, version int) error {
	return fmt.Errorf("%s %s at version %d: %w", entity, id, version, apperrors.ErrConflict)
}

// Reconciliations

func (s *Store) FindReconciliationByID(ctx context.Context, workplaceID string, reconciliationID string) (*domain.BankReconciliation, error) {
	defer s.read(ctx)()
	rec, ok := s.data.reconciliations[key{workplaceID, reconciliationID}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &rec, nil
}

func (s *Store) FindReconciliationByIDForUpdate(ctx context.Context, workplaceID string, reconciliationID string) (*domain.BankReconciliation, error) {
	defer s.write(ctx)()
	rec, ok := s.data.reconciliations[key{workplaceID, reconciliationID}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &rec, nil
}

func (s *Store) ListReconciliations(ctx context.Context, workplaceID string, bankAccountCode string) ([]domain.BankReconciliation, error) {
	defer s.read(ctx)()
	var out []domain.BankReconciliation
	for k, rec := range s.data.reconciliations {
		if k.workplaceID != workplaceID {
			continue
		}
		if bankAccountCode != "" && rec.BankAccountCode != bankAccountCode {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StatementDate.Equal(out[j].StatementDate) {
			return out[i].ReconciliationID < out[j].ReconciliationID
		}
		return out[i].StatementDate.After(out[j].StatementDate)
	})
	return out, nil
}

func (s *Store) SaveReconciliation(ctx context.Context, rec domain.BankReconciliation) error {
	defer s.write(ctx)()
	k := key{rec.WorkplaceID, rec.ReconciliationID}
	if _, exists := s.data.reconciliations[k]; exists {
		return fmt.Errorf("bank reconciliation %s: %w", rec.ReconciliationID, apperrors.ErrDuplicate)
	}
	s.data.reconciliations[k] = rec
	return nil
}

func (s *Store) UpdateReconciliation(ctx context.Context, rec domain.BankReconciliation) error {
	defer s.write(ctx)()
	k := key{rec.WorkplaceID, rec.ReconciliationID}
	stored, ok := s.data.reconciliations[k]
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.Version != rec.Version {
		return conflict("bank reconciliation", rec.ReconciliationID, rec.Version)
	}
	rec.Version++
	s.data.reconciliations[k] = rec
	return nil
}

func (s *Store) DeleteReconciliation(ctx context.Context, workplaceID string, reconciliationID string, version int) error {
	defer s.write(ctx)()
	k := key{workplaceID, reconciliationID}
	stored, ok := s.data.reconciliations[k]
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.Version != version {
		return conflict("bank reconciliation", reconciliationID, version)
	}
	delete(s.data.reconciliations, k)
	return nil
}

// Transfers

func (s *Store) FindTransferByID(ctx context.Context, workplaceID string, transferID string) (*domain.BankTransfer, error) {
	defer s.read(ctx)()
	t, ok := s.data.transfers[key{workplaceID, transferID}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (s *Store) FindTransferByIDForUpdate(ctx context.Context, workplaceID string, transferID string) (*domain.BankTransfer, error) {
	defer s.write(ctx)()
	t, ok := s.data.transfers[key{workplaceID, transferID}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (s *Store) ListTransfers(ctx context.Context, workplaceID string, status *domain.TransferStatus) ([]domain.BankTransfer, error) {
	defer s.read(ctx)()
	var out []domain.BankTransfer
	for k, t := range s.data.transfers {
		if k.workplaceID != workplaceID {
			continue
		}
		if status != nil && t.Status != *status {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TransferDate.Equal(out[j].TransferDate) {
			return out[i].TransferID < out[j].TransferID
		}
		return out[i].TransferDate.After(out[j].TransferDate)
	})
	return out, nil
}

func (s *Store) SaveTransfer(ctx context.Context, transfer domain.BankTransfer) error {
	defer s.write(ctx)()
	k := key{transfer.WorkplaceID, transfer.TransferID}
	if _, exists := s.data.transfers[k]; exists {
		return fmt.Errorf("bank transfer %s: %w", transfer.TransferID, apperrors.ErrDuplicate)
	}
	s.data.transfers[k] = transfer
	return nil
}

func (s *Store) UpdateTransfer(ctx context.Context, transfer domain.BankTransfer) error {
	defer s.write(ctx)()
	k := key{transfer.WorkplaceID, transfer.TransferID}
	stored, ok := s.data.transfers[k]
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.Version != transfer.Version {
		return conflict("bank transfer", transfer.TransferID, transfer.Version)
	}
	transfer.Version++
	s.data.transfers[k] = transfer
	return nil
}

func (s *Store) DeleteTransfer(ctx context.Context, workplaceID string, transferID string, version int) error {
	defer s.write(ctx)()
	k := key{workplaceID, transferID}
	stored, ok := s.data.transfers[k]
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.Version != version {
		return conflict("bank transfer", transferID, version)
	}
	delete(s.data.transfers, k)
	return nil
}

// Cash transactions

func (s *Store) FindCashTransactionByID(ctx context.Context, workplaceID string, cashTransactionID string) (*domain.CashTransaction, error) {
	defer s.read(ctx)()
	ct, ok := s.data.cash[key{workplaceID, cashTransactionID}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &ct, nil
}

func (s *Store) FindCashTransactionByIDForUpdate(ctx context.Context, workplaceID string, cashTransactionID string) (*domain.CashTransaction, error) {
	defer s.write(ctx)()
	ct, ok := s.data.cash[key{workplaceID, cashTransactionID}]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &ct, nil
}

func (s *Store) ListCashTransactions(ctx context.Context, workplaceID string, status *domain.CashTransactionStatus) ([]domain.CashTransaction, error) {
	defer s.read(ctx)()
	var out []domain.CashTransaction
	for k, ct := range s.data.cash {
		if k.workplaceID != workplaceID {
			continue
		}
		if status != nil && ct.Status != *status {
			continue
		}
		out = append(out, ct)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].CashTransactionID < out[j].CashTransactionID
		}
		return out[i].TransactionDate.After(out[j].TransactionDate)
	})
	return out, nil
}

func (s *Store) SaveCashTransaction(ctx context.Context, ct domain.CashTransaction) error {
	defer s.write(ctx)()
	k := key{ct.WorkplaceID, ct.CashTransactionID}
	if _, exists := s.data.cash[k]; exists {
		return fmt.Errorf("cash transaction %s: %w", ct.CashTransactionID, apperrors.ErrDuplicate)
	}
	s.data.cash[k] = ct
	return nil
}

func (s *Store) UpdateCashTransaction(ctx context.Context, ct domain.CashTransaction) error {
	defer s.write(ctx)()
	k := key{ct.WorkplaceID, ct.CashTransactionID}
	stored, ok := s.data.cash[k]
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.Version != ct.Version {
		return conflict("cash transaction", ct.CashTransactionID, ct.Version)
	}
	ct.Version++
	s.data.cash[k] = ct
	return nil
}

func (s *Store) DeleteCashTransaction(ctx context.Context, workplaceID string, cashTransactionID string, version int) error {
	defer s.write(ctx)()
	k := key{workplaceID, cashTransactionID}
	stored, ok := s.data.cash[k]
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.Version != version {
		return conflict("cash transaction", cashTransactionID, version)
	}
	delete(s.data.cash, k)
	return nil
}

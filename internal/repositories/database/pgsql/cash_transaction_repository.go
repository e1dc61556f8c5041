package pgsql

import (
	"context"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	cashTransactionColumns = `cash_transaction_id, workplace_id, kind, transaction_date, cash_account_code, offset_account_code,
	amount, description, description_id, reference, status, journal_entry_id, reversal_entry_id, rejection_reason,
	version, created_at, created_by, last_updated_at, last_updated_by`

	entityCashTransaction = "cash transaction"
)

type PgxCashTransactionRepository struct {
	BaseRepository
}

func newPgxCashTransactionRepository(pool *pgxpool.Pool) *PgxCashTransactionRepository {
	return &PgxCashTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CashTransactionRepositoryFacade = (*PgxCashTransactionRepository)(nil)

func (r *PgxCashTransactionRepository) SaveCashTransaction(ctx context.Context, ct domain.CashTransaction) error {
	m := mapping.ToModelCashTransaction(ct)
	query := `
		INSERT INTO cash_transactions (` + cashTransactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.CashTransactionID,
		m.WorkplaceID,
		m.Kind,
		m.TransactionDate,
		m.CashAccountCode,
		m.OffsetAccountCode,
		m.Amount,
		m.Description,
		m.DescriptionID,
		m.Reference,
		m.Status,
		m.JournalEntryID,
		m.ReversalEntryID,
		m.RejectionReason,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return dbError(err, "failed to save cash transaction %s", m.CashTransactionID)
	}
	return nil
}

// UpdateCashTransaction rewrites the editable and workflow columns when ct.Version still matches.
func (r *PgxCashTransactionRepository) UpdateCashTransaction(ctx context.Context, ct domain.CashTransaction) error {
	m := mapping.ToModelCashTransaction(ct)
	q := r.db(ctx)
	query := `
		UPDATE cash_transactions
		SET transaction_date = $4, cash_account_code = $5, offset_account_code = $6, amount = $7, description = $8,
		    description_id = $9, reference = $10, status = $11, journal_entry_id = $12, reversal_entry_id = $13,
		    rejection_reason = $14, last_updated_at = $15, last_updated_by = $16, version = version + 1
		WHERE workplace_id = $1 AND cash_transaction_id = $2 AND version = $3;
	`
	cmdTag, err := q.Exec(ctx, query,
		m.WorkplaceID,
		m.CashTransactionID,
		m.Version,
		m.TransactionDate,
		m.CashAccountCode,
		m.OffsetAccountCode,
		m.Amount,
		m.Description,
		m.DescriptionID,
		m.Reference,
		m.Status,
		m.JournalEntryID,
		m.ReversalEntryID,
		m.RejectionReason,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return dbError(err, "failed to update cash transaction %s", m.CashTransactionID)
	}
	if cmdTag.RowsAffected() == 0 {
		return versionMiss(ctx, q, "cash_transactions", "cash_transaction_id", m.WorkplaceID, m.CashTransactionID, m.Version, entityCashTransaction)
	}
	return nil
}

func (r *PgxCashTransactionRepository) DeleteCashTransaction(ctx context.Context, workplaceID string, cashTransactionID string, version int) error {
	q := r.db(ctx)
	cmdTag, err := q.Exec(ctx, `DELETE FROM cash_transactions WHERE workplace_id = $1 AND cash_transaction_id = $2 AND version = $3;`,
		workplaceID, cashTransactionID, version)
	if err != nil {
		return dbError(err, "failed to delete cash transaction %s", cashTransactionID)
	}
	if cmdTag.RowsAffected() == 0 {
		return versionMiss(ctx, q, "cash_transactions", "cash_transaction_id", workplaceID, cashTransactionID, version, entityCashTransaction)
	}
	return nil
}

func (r *PgxCashTransactionRepository) FindCashTransactionByID(ctx context.Context, workplaceID string, cashTransactionID string) (*domain.CashTransaction, error) {
	query := `SELECT ` + cashTransactionColumns + ` FROM cash_transactions WHERE workplace_id = $1 AND cash_transaction_id = $2;`
	return r.findCashTransaction(ctx, query, workplaceID, cashTransactionID)
}

func (r *PgxCashTransactionRepository) FindCashTransactionByIDForUpdate(ctx context.Context, workplaceID string, cashTransactionID string) (*domain.CashTransaction, error) {
	query := `SELECT ` + cashTransactionColumns + ` FROM cash_transactions WHERE workplace_id = $1 AND cash_transaction_id = $2 FOR UPDATE;`
	return r.findCashTransaction(ctx, query, workplaceID, cashTransactionID)
}

func (r *PgxCashTransactionRepository) findCashTransaction(ctx context.Context, query, workplaceID, id string) (*domain.CashTransaction, error) {
	m, err := collectOne[models.CashTransaction](ctx, r.db(ctx), query, workplaceID, id)
	if err != nil {
		return nil, dbError(err, "failed to find cash transaction %s", id)
	}
	ct := mapping.ToDomainCashTransaction(m)
	return &ct, nil
}

func (r *PgxCashTransactionRepository) ListCashTransactions(ctx context.Context, workplaceID string, status *domain.CashTransactionStatus) ([]domain.CashTransaction, error) {
	query := `
		SELECT ` + cashTransactionColumns + `
		FROM cash_transactions
		WHERE workplace_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY transaction_date DESC, cash_transaction_id DESC;
	`
	var statusFilter *string
	if status != nil {
		s := string(*status)
		statusFilter = &s
	}
	ms, err := collect[models.CashTransaction](ctx, r.db(ctx), query, workplaceID, statusFilter)
	if err != nil {
		return nil, dbError(err, "failed to list cash transactions")
	}
	out := make([]domain.CashTransaction, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainCashTransaction(m)
	}
	return out, nil
}

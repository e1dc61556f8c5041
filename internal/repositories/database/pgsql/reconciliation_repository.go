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
	reconciliationColumns = `reconciliation_id, workplace_id, bank_account_code, statement_date, period_start, period_end,
	book_balance_start, book_balance_end, statement_balance, deposits_in_transit, outstanding_checks,
	bank_charges, bank_interest, other_adjustments, adjusted_book_balance, adjusted_bank_balance, difference, is_balanced,
	status, rejection_reason, adjustment_entry_id, notes, reviewed_by, approved_by, version,
	created_at, created_by, last_updated_at, last_updated_by`

	entityReconciliation = "bank reconciliation"
)

type PgxReconciliationRepository struct {
	BaseRepository
}

func newPgxReconciliationRepository(pool *pgxpool.Pool) *PgxReconciliationRepository {
	return &PgxReconciliationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReconciliationRepositoryFacade = (*PgxReconciliationRepository)(nil)

func (r *PgxReconciliationRepository) SaveReconciliation(ctx context.Context, rec domain.BankReconciliation) error {
	m := mapping.ToModelReconciliation(rec)
	query := `
		INSERT INTO bank_reconciliations (` + reconciliationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		        $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.ReconciliationID,
		m.WorkplaceID,
		m.BankAccountCode,
		m.StatementDate,
		m.PeriodStart,
		m.PeriodEnd,
		m.BookBalanceStart,
		m.BookBalanceEnd,
		m.StatementBalance,
		m.DepositsInTransit,
		m.OutstandingChecks,
		m.BankCharges,
		m.BankInterest,
		m.OtherAdjustments,
		m.AdjustedBookBalance,
		m.AdjustedBankBalance,
		m.Difference,
		m.IsBalanced,
		m.Status,
		m.RejectionReason,
		m.AdjustmentEntryID,
		m.Notes,
		m.ReviewedBy,
		m.ApprovedBy,
		m.Version,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return dbError(err, "failed to save bank reconciliation %s", m.ReconciliationID)
	}
	return nil
}

// UpdateReconciliation rewrites every mutable column when rec.Version still matches.
func (r *PgxReconciliationRepository) UpdateReconciliation(ctx context.Context, rec domain.BankReconciliation) error {
	m := mapping.ToModelReconciliation(rec)
	q := r.db(ctx)
	query := `
		UPDATE bank_reconciliations
		SET statement_date = $4, period_start = $5, period_end = $6, book_balance_start = $7, book_balance_end = $8,
		    statement_balance = $9, deposits_in_transit = $10, outstanding_checks = $11, bank_charges = $12,
		    bank_interest = $13, other_adjustments = $14, adjusted_book_balance = $15, adjusted_bank_balance = $16,
		    difference = $17, is_balanced = $18, status = $19, rejection_reason = $20, adjustment_entry_id = $21,
		    notes = $22, reviewed_by = $23, approved_by = $24, last_updated_at = $25, last_updated_by = $26,
		    version = version + 1
		WHERE workplace_id = $1 AND reconciliation_id = $2 AND version = $3;
	`
	cmdTag, err := q.Exec(ctx, query,
		m.WorkplaceID,
		m.ReconciliationID,
		m.Version,
		m.StatementDate,
		m.PeriodStart,
		m.PeriodEnd,
		m.BookBalanceStart,
		m.BookBalanceEnd,
		m.StatementBalance,
		m.DepositsInTransit,
		m.OutstandingChecks,
		m.BankCharges,
		m.BankInterest,
		m.OtherAdjustments,
		m.AdjustedBookBalance,
		m.AdjustedBankBalance,
		m.Difference,
		m.IsBalanced,
		m.Status,
		m.RejectionReason,
		m.AdjustmentEntryID,
		m.Notes,
		m.ReviewedBy,
		m.ApprovedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return dbError(err, "failed to update bank reconciliation %s", m.ReconciliationID)
	}
	if cmdTag.RowsAffected() == 0 {
		return versionMiss(ctx, q, "bank_reconciliations", "reconciliation_id", m.WorkplaceID, m.ReconciliationID, m.Version, entityReconciliation)
	}
	return nil
}

func (r *PgxReconciliationRepository) DeleteReconciliation(ctx context.Context, workplaceID string, reconciliationID string, version int) error {
	q := r.db(ctx)
	cmdTag, err := q.Exec(ctx, `DELETE FROM bank_reconciliations WHERE workplace_id = $1 AND reconciliation_id = $2 AND version = $3;`,
		workplaceID, reconciliationID, version)
	if err != nil {
		return dbError(err, "failed to delete bank reconciliation %s", reconciliationID)
	}
	if cmdTag.RowsAffected() == 0 {
		return versionMiss(ctx, q, "bank_reconciliations", "reconciliation_id", workplaceID, reconciliationID, version, entityReconciliation)
	}
	return nil
}

func (r *PgxReconciliationRepository) FindReconciliationByID(ctx context.Context, workplaceID string, reconciliationID string) (*domain.BankReconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM bank_reconciliations WHERE workplace_id = $1 AND reconciliation_id = $2;`
	return r.findReconciliation(ctx, query, workplaceID, reconciliationID)
}

func (r *PgxReconciliationRepository) FindReconciliationByIDForUpdate(ctx context.Context, workplaceID string, reconciliationID string) (*domain.BankReconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM bank_reconciliations WHERE workplace_id = $1 AND reconciliation_id = $2 FOR UPDATE;`
	return r.findReconciliation(ctx, query, workplaceID, reconciliationID)
}

func (r *PgxReconciliationRepository) findReconciliation(ctx context.Context, query, workplaceID, id string) (*domain.BankReconciliation, error) {
	m, err := collectOne[models.BankReconciliation](ctx, r.db(ctx), query, workplaceID, id)
	if err != nil {
		return nil, dbError(err, "failed to find bank reconciliation %s", id)
	}
	rec := mapping.ToDomainReconciliation(m)
	return &rec, nil
}

func (r *PgxReconciliationRepository) ListReconciliations(ctx context.Context, workplaceID string, bankAccountCode string) ([]domain.BankReconciliation, error) {
	query := `
		SELECT ` + reconciliationColumns + `
		FROM bank_reconciliations
		WHERE workplace_id = $1 AND ($2 = '' OR bank_account_code = $2)
		ORDER BY statement_date DESC, reconciliation_id DESC;
	`
	ms, err := collect[models.BankReconciliation](ctx, r.db(ctx), query, workplaceID, bankAccountCode)
	if err != nil {
		return nil, dbError(err, "failed to list bank reconciliations")
	}
	out := make([]domain.BankReconciliation, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainReconciliation(m)
	}
	return out, nil
}

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
	transferColumns = `transfer_id, workplace_id, from_account_code, to_account_code, amount, transfer_fee, fee_account_code,
	transfer_date, reference, description, description_id, status, journal_entry_id, reversal_entry_id, rejection_reason,
	version, created_at, created_by, last_updated_at, last_updated_by`

	entityTransfer = "bank transfer"
)

type PgxTransferRepository struct {
	BaseRepository
}

func newPgxTransferRepository(pool *pgxpool.Pool) *PgxTransferRepository {
	return &PgxTransferRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransferRepositoryFacade = (*PgxTransferRepository)(nil)

func (r *PgxTransferRepository) SaveTransfer(ctx context.Context, transfer domain.BankTransfer) error {
	m := mapping.ToModelTransfer(transfer)
	query := `
		INSERT INTO bank_transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.TransferID,
		m.WorkplaceID,
		m.FromAccountCode,
		m.ToAccountCode,
		m.Amount,
		m.TransferFee,
		m.FeeAccountCode,
		m.TransferDate,
		m.Reference,
		m.Description,
		m.DescriptionID,
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
		return dbError(err, "failed to save bank transfer %s", m.TransferID)
	}
	return nil
}

// UpdateTransfer stores the workflow columns; amounts and accounts are fixed at creation.
func (r *PgxTransferRepository) UpdateTransfer(ctx context.Context, transfer domain.BankTransfer) error {
	m := mapping.ToModelTransfer(transfer)
	q := r.db(ctx)
	query := `
		UPDATE bank_transfers
		SET status = $4, journal_entry_id = $5, reversal_entry_id = $6, rejection_reason = $7,
		    last_updated_at = $8, last_updated_by = $9, version = version + 1
		WHERE workplace_id = $1 AND transfer_id = $2 AND version = $3;
	`
	cmdTag, err := q.Exec(ctx, query,
		m.WorkplaceID,
		m.TransferID,
		m.Version,
		m.Status,
		m.JournalEntryID,
		m.ReversalEntryID,
		m.RejectionReason,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return dbError(err, "failed to update bank transfer %s", m.TransferID)
	}
	if cmdTag.RowsAffected() == 0 {
		return versionMiss(ctx, q, "bank_transfers", "transfer_id", m.WorkplaceID, m.TransferID, m.Version, entityTransfer)
	}
	return nil
}

func (r *PgxTransferRepository) DeleteTransfer(ctx context.Context, workplaceID string, transferID string, version int) error {
	q := r.db(ctx)
	cmdTag, err := q.Exec(ctx, `DELETE FROM bank_transfers WHERE workplace_id = $1 AND transfer_id = $2 AND version = $3;`,
		workplaceID, transferID, version)
	if err != nil {
		return dbError(err, "failed to delete bank transfer %s", transferID)
	}
	if cmdTag.RowsAffected() == 0 {
		return versionMiss(ctx, q, "bank_transfers", "transfer_id", workplaceID, transferID, version, entityTransfer)
	}
	return nil
}

func (r *PgxTransferRepository) FindTransferByID(ctx context.Context, workplaceID string, transferID string) (*domain.BankTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM bank_transfers WHERE workplace_id = $1 AND transfer_id = $2;`
	return r.findTransfer(ctx, query, workplaceID, transferID)
}

func (r *PgxTransferRepository) FindTransferByIDForUpdate(ctx context.Context, workplaceID string, transferID string) (*domain.BankTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM bank_transfers WHERE workplace_id = $1 AND transfer_id = $2 FOR UPDATE;`
	return r.findTransfer(ctx, query, workplaceID, transferID)
}

func (r *PgxTransferRepository) findTransfer(ctx context.Context, query, workplaceID, id string) (*domain.BankTransfer, error) {
	m, err := collectOne[models.BankTransfer](ctx, r.db(ctx), query, workplaceID, id)
	if err != nil {
		return nil, dbError(err, "failed to find bank transfer %s", id)
	}
	t := mapping.ToDomainTransfer(m)
	return &t, nil
}

func (r *PgxTransferRepository) ListTransfers(ctx context.Context, workplaceID string, status *domain.TransferStatus) ([]domain.BankTransfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM bank_transfers
		WHERE workplace_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY transfer_date DESC, transfer_id DESC;
	`
	var statusFilter *string
	if status != nil {
		s := string(*status)
		statusFilter = &s
	}
	ms, err := collect[models.BankTransfer](ctx, r.db(ctx), query, workplaceID, statusFilter)
	if err != nil {
		return nil, dbError(err, "failed to list bank transfers")
	}
	out := make([]domain.BankTransfer, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainTransfer(m)
	}
	return out, nil
}

package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/accounting"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/SscSPs/ledger_core/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	entryColumns = `entry_id, workplace_id, entry_number, entry_date, transaction_type, description, description_id,
	document_number, is_posted, posted_at, posted_by, is_reversing, reversed_entry_id, version,
	created_at, created_by, last_updated_at, last_updated_by`
	lineColumns = `line_id, entry_id, line_number, account_code, debit_amount, credit_amount, description, description_id`

	entityEntry = "journal entry"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// SaveEntry assigns the next entry number of the workplace and inserts the entry with its lines.
// The sequence row stays locked until the surrounding transaction ends, so numbers have no gaps.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	err := r.WithinTransaction(ctx, func(txCtx context.Context) error {
		q := r.db(txCtx)

		seqQuery := `
			INSERT INTO entry_sequences (workplace_id, last_number) VALUES ($1, 1)
			ON CONFLICT (workplace_id) DO UPDATE SET last_number = entry_sequences.last_number + 1
			RETURNING last_number;
		`
		if err := q.QueryRow(txCtx, seqQuery, entry.WorkplaceID).Scan(&entry.EntryNumber); err != nil {
			return dbError(err, "failed to allocate entry number for workplace %s", entry.WorkplaceID)
		}
		for i := range entry.Lines {
			entry.Lines[i].EntryID = entry.EntryID
		}

		m := mapping.ToModelJournalEntry(entry)
		insertQuery := `
			INSERT INTO journal_entries (` + entryColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
		`
		_, err := q.Exec(txCtx, insertQuery,
			m.EntryID,
			m.WorkplaceID,
			m.EntryNumber,
			m.EntryDate,
			m.TransactionType,
			m.Description,
			m.DescriptionID,
			m.DocumentNumber,
			m.IsPosted,
			m.PostedAt,
			m.PostedBy,
			m.IsReversing,
			m.ReversedEntryID,
			m.Version,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return dbError(err, "failed to insert journal entry %s", m.EntryID)
		}
		return r.insertLines(txCtx, q, entry.Lines)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *PgxJournalRepository) insertLines(ctx context.Context, q querier, lines []domain.LineItem) error {
	if len(lines) == 0 {
		return nil
	}
	query := `
		INSERT INTO journal_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(query,
			m.LineID,
			m.EntryID,
			m.LineNumber,
			m.AccountCode,
			m.DebitAmount,
			m.CreditAmount,
			m.Description,
			m.DescriptionID,
		)
	}
	// Close reports the first failed insert of the batch
	if err := q.SendBatch(ctx, batch).Close(); err != nil {
		return dbError(err, "failed to insert journal lines")
	}
	return nil
}

// UpdateEntry replaces the header fields and lines of an entry.
func (r *PgxJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	return r.WithinTransaction(ctx, func(txCtx context.Context) error {
		q := r.db(txCtx)
		m := mapping.ToModelJournalEntry(entry)

		query := `
			UPDATE journal_entries
			SET entry_date = $4, transaction_type = $5, description = $6, description_id = $7, document_number = $8,
			    last_updated_at = $9, last_updated_by = $10, version = version + 1
			WHERE workplace_id = $1 AND entry_id = $2 AND version = $3;
		`
		cmdTag, err := q.Exec(txCtx, query,
			m.WorkplaceID,
			m.EntryID,
			m.Version,
			m.EntryDate,
			m.TransactionType,
			m.Description,
			m.DescriptionID,
			m.DocumentNumber,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			return dbError(err, "failed to update journal entry %s", m.EntryID)
		}
		if cmdTag.RowsAffected() == 0 {
			return versionMiss(txCtx, q, "journal_entries", "entry_id", m.WorkplaceID, m.EntryID, m.Version, entityEntry)
		}

		if _, err := q.Exec(txCtx, `DELETE FROM journal_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
			return dbError(err, "failed to replace lines of journal entry %s", m.EntryID)
		}
		lines := make([]domain.LineItem, len(entry.Lines))
		for i, line := range entry.Lines {
			line.EntryID = entry.EntryID
			lines[i] = line
		}
		return r.insertLines(txCtx, q, lines)
	})
}

func (r *PgxJournalRepository) MarkPosted(ctx context.Context, workplaceID string, entryID string, version int, postedBy string, postedAt time.Time) error {
	q := r.db(ctx)
	query := `
		UPDATE journal_entries
		SET is_posted = TRUE, posted_at = $4, posted_by = $5, last_updated_at = $4, last_updated_by = $5, version = version + 1
		WHERE workplace_id = $1 AND entry_id = $2 AND version = $3;
	`
	cmdTag, err := q.Exec(ctx, query, workplaceID, entryID, version, postedAt, postedBy)
	if err != nil {
		return dbError(err, "failed to mark journal entry %s posted", entryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return versionMiss(ctx, q, "journal_entries", "entry_id", workplaceID, entryID, version, entityEntry)
	}
	return nil
}

// DeleteEntry removes an entry; its lines go with it through ON DELETE CASCADE.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, workplaceID string, entryID string, version int) error {
	q := r.db(ctx)
	cmdTag, err := q.Exec(ctx, `DELETE FROM journal_entries WHERE workplace_id = $1 AND entry_id = $2 AND version = $3;`,
		workplaceID, entryID, version)
	if err != nil {
		return dbError(err, "failed to delete journal entry %s", entryID)
	}
	if cmdTag.RowsAffected() == 0 {
		return versionMiss(ctx, q, "journal_entries", "entry_id", workplaceID, entryID, version, entityEntry)
	}
	return nil
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, workplaceID string, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE workplace_id = $1 AND entry_id = $2;`
	return r.findEntry(ctx, query, workplaceID, entryID)
}

// FindEntryByIDForUpdate locks the entry row until the transaction ends.
func (r *PgxJournalRepository) FindEntryByIDForUpdate(ctx context.Context, workplaceID string, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE workplace_id = $1 AND entry_id = $2 FOR UPDATE;`
	return r.findEntry(ctx, query, workplaceID, entryID)
}

func (r *PgxJournalRepository) FindReversalOf(ctx context.Context, workplaceID string, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE workplace_id = $1 AND reversed_entry_id = $2;`
	return r.findEntry(ctx, query, workplaceID, entryID)
}

func (r *PgxJournalRepository) findEntry(ctx context.Context, query string, workplaceID, id string) (*domain.JournalEntry, error) {
	q := r.db(ctx)
	m, err := collectOne[models.JournalEntry](ctx, q, query, workplaceID, id)
	if err != nil {
		return nil, dbError(err, "failed to find journal entry %s", id)
	}
	lines, err := r.linesFor(ctx, q, []string{m.EntryID})
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(m, lines[m.EntryID])
	return &entry, nil
}

func (r *PgxJournalRepository) linesFor(ctx context.Context, q querier, entryIDs []string) (map[string][]models.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_lines WHERE entry_id = ANY($1) ORDER BY entry_id, line_number;`
	ms, err := collect[models.JournalLine](ctx, q, query, entryIDs)
	if err != nil {
		return nil, dbError(err, "failed to query journal lines")
	}
	out := make(map[string][]models.JournalLine, len(entryIDs))
	for _, m := range ms {
		out[m.EntryID] = append(out[m.EntryID], m)
	}
	return out, nil
}

// ListEntries retrieves a page of entries using keyset pagination on (entry_date, entry_number).
// It returns the entries, a token for the next page, and an error.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, workplaceID string, limit int, nextToken *string, status *domain.JournalStatus) ([]domain.JournalEntry, *string, error) {
	var (
		cursorDate   *time.Time
		cursorNumber int64
	)
	if nextToken != nil && *nextToken != "" {
		d, n, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursorDate, cursorNumber = &d, n
	}

	var posted *bool
	if status != nil {
		p := *status == domain.Posted
		posted = &p
	}

	// We fetch one extra row to determine if there's a next page.
	var fetchLimit *int
	if limit > 0 {
		l := limit + 1
		fetchLimit = &l
	}

	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE workplace_id = $1
		  AND ($2::boolean IS NULL OR is_posted = $2)
		  AND ($3::date IS NULL OR (entry_date, entry_number) < ($3::date, $4::bigint))
		ORDER BY entry_date DESC, entry_number DESC
		LIMIT $5;
	`
	q := r.db(ctx)
	ms, err := collect[models.JournalEntry](ctx, q, query, workplaceID, posted, cursorDate, cursorNumber, fetchLimit)
	if err != nil {
		return nil, nil, dbError(err, "failed to list journal entries")
	}

	var next *string
	if limit > 0 && len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.EntryDate, last.EntryNumber)
		next = &token
	}
	if len(ms) == 0 {
		return []domain.JournalEntry{}, nil, nil
	}

	ids := make([]string, len(ms))
	for i, m := range ms {
		ids[i] = m.EntryID
	}
	lines, err := r.linesFor(ctx, q, ids)
	if err != nil {
		return nil, nil, err
	}

	out := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainJournalEntry(m, lines[m.EntryID])
	}
	return out, next, nil
}

func (r *PgxJournalRepository) ListPostedLines(ctx context.Context, workplaceID string, accountCodes []string, from, to time.Time) ([]domain.PostedLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.line_number, l.account_code, l.debit_amount, l.credit_amount,
		       l.description, l.description_id, e.entry_number, e.entry_date, e.is_reversing
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.workplace_id = $1 AND e.is_posted AND l.account_code = ANY($2)
		  AND e.entry_date BETWEEN $3::date AND $4::date;
	`
	ms, err := collect[models.PostedLine](ctx, r.db(ctx), query, workplaceID, accountCodes,
		accounting.DateOnly(from), accounting.DateOnly(to))
	if err != nil {
		return nil, dbError(err, "failed to query posted lines")
	}
	out := make([]domain.PostedLine, len(ms))
	for i, m := range ms {
		out[i] = mapping.ToDomainPostedLine(m)
	}
	return out, nil
}

func (r *PgxJournalRepository) PostedTotalsBefore(ctx context.Context, workplaceID string, accountCodes []string, before time.Time) (map[string]domain.AccountTotals, error) {
	query := `
		SELECT l.account_code, SUM(l.debit_amount) AS debit, SUM(l.credit_amount) AS credit
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.workplace_id = $1 AND e.is_posted AND l.account_code = ANY($2)
		  AND e.entry_date < $3::date
		GROUP BY l.account_code;
	`
	ms, err := collect[models.AccountTotals](ctx, r.db(ctx), query, workplaceID, accountCodes, accounting.DateOnly(before))
	if err != nil {
		return nil, dbError(err, "failed to sum posted lines")
	}
	return mapping.ToDomainAccountTotals(ms), nil
}

package pgsql

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/internal/models"
	"github.com/SscSPs/ledger_core/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, workplace_id, code, name, account_type, sub_type, parent_code, is_header, is_active,
	created_at, created_by, last_updated_at, last_updated_by, balance`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// SaveAccount inserts a new account. Charts of accounts are maintained outside the ledger;
// this is used for seeding.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.AccountID,
		m.WorkplaceID,
		m.Code,
		m.Name,
		m.AccountType,
		m.SubType,
		m.ParentCode,
		m.IsHeader,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.Balance,
	)
	if err != nil {
		return dbError(err, "failed to save account %s", m.Code)
	}
	return nil
}

// FindAccountByCode retrieves an account by its code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, workplaceID string, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE workplace_id = $1 AND code = $2;`
	m, err := collectOne[models.Account](ctx, r.db(ctx), query, workplaceID, code)
	if err != nil {
		return nil, dbError(err, "failed to find account %s", code)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountsByCodes retrieves multiple accounts keyed by code.
func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, workplaceID string, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE workplace_id = $1 AND code = ANY($2);`
	ms, err := collect[models.Account](ctx, r.db(ctx), query, workplaceID, codes)
	if err != nil {
		return nil, dbError(err, "failed to query accounts by codes")
	}
	return mapping.ToDomainAccountMap(ms), nil
}

// FindAccountsByCodesForUpdate locks the rows in code order so concurrent postings
// touching overlapping accounts cannot deadlock. Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByCodesForUpdate(ctx context.Context, workplaceID string, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE workplace_id = $1 AND code = ANY($2)
		ORDER BY code
		FOR UPDATE;
	`
	ms, err := collect[models.Account](ctx, r.db(ctx), query, workplaceID, codes)
	if err != nil {
		return nil, dbError(err, "failed to query accounts by codes for update")
	}
	return mapping.ToDomainAccountMap(ms), nil
}

func (r *PgxAccountRepository) FindAccountsBySubType(ctx context.Context, workplaceID string, subType string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE workplace_id = $1 AND sub_type = $2 ORDER BY code;`
	ms, err := collect[models.Account](ctx, r.db(ctx), query, workplaceID, subType)
	if err != nil {
		return nil, dbError(err, "failed to query accounts of sub-type %s", subType)
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, workplaceID string, accountType *domain.AccountType) ([]domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE workplace_id = $1 AND ($2::text IS NULL OR account_type = $2)
		ORDER BY code;
	`
	var typeFilter *string
	if accountType != nil {
		t := string(*accountType)
		typeFilter = &t
	}
	ms, err := collect[models.Account](ctx, r.db(ctx), query, workplaceID, typeFilter)
	if err != nil {
		return nil, dbError(err, "failed to list accounts")
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// UpdateAccountBalancesInTx applies balance changes to multiple accounts within a transaction.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, workplaceID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $3, last_updated_at = $4, last_updated_by = $5
		WHERE workplace_id = $1 AND code = $2;
	`

	codes := make([]string, 0, len(balanceChanges))
	for code := range balanceChanges {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	return r.WithinTransaction(ctx, func(txCtx context.Context) error {
		batch := &pgx.Batch{}
		for _, code := range codes {
			batch.Queue(query, workplaceID, code, balanceChanges[code], now, userID)
		}

		br := r.db(txCtx).SendBatch(txCtx, batch)
		defer br.Close()

		for _, code := range codes {
			cmdTag, err := br.Exec()
			if err != nil {
				return dbError(err, "failed to update balance of account %s", code)
			}
			if cmdTag.RowsAffected() == 0 {
				return fmt.Errorf("account %s: %w", code, apperrors.ErrNotFound)
			}
		}
		return nil
	})
}

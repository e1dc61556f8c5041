package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository to one pool. They share the transaction carried in ctx,
// so any of them can serve as the TransactionManager.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:           &BaseRepository{Pool: dbPool},
		AccountRepo:         newPgxAccountRepository(dbPool),
		JournalRepo:         newPgxJournalRepository(dbPool),
		ReconciliationRepo:  newPgxReconciliationRepository(dbPool),
		TransferRepo:        newPgxTransferRepository(dbPool),
		CashTransactionRepo: newPgxCashTransactionRepository(dbPool),
	}
}

// NewAccountRepository exposes the account table for seeding a chart of accounts.
func NewAccountRepository(dbPool *pgxpool.Pool) *PgxAccountRepository {
	return newPgxAccountRepository(dbPool)
}

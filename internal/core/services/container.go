package services

import (
	"time"

	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_core/internal/core/ports/services"
	"github.com/SscSPs/ledger_core/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// clock may be nil, in which case time.Now is used.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, clock func() time.Time) *portssvc.ServiceContainer {
	if clock == nil {
		clock = time.Now
	}
	options := []ServiceOption{
		WithClock(clock),
		WithCurrencyScale(cfg.CurrencyScale),
		WithValidator(NewValidator()),
	}

	container := &portssvc.ServiceContainer{}

	// The registry is the leaf every posting depends on
	container.Accounts = NewAccountRegistry(repos.AccountRepo, options...)
	container.Journal = NewJournalService(repos.TxManager, repos.JournalRepo, repos.AccountRepo, container.Accounts, options...)

	container.CashTransaction = NewCashTransactionService(repos.TxManager, repos.CashTransactionRepo, container.Accounts, container.Journal, options...)
	container.Reconciliation = NewReconciliationService(repos.TxManager, repos.ReconciliationRepo, container.Accounts, container.Journal, options...)
	container.Transfer = NewTransferService(repos.TxManager, repos.TransferRepo, container.Accounts, container.Journal, options...)

	container.Aging = NewAgingService(options...)
	container.Ledger = NewLedgerProjector(repos.AccountRepo, repos.JournalRepo, options...)

	return container
}

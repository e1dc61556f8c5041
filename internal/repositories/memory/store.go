// Package memory provides in-memory repositories with the same transactional
// contract as the PostgreSQL adapters: WithinTransaction serializes writers on a
// store-wide lock and restores a snapshot when the function fails.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
)

type key struct {
	workplaceID string
	id          string
}

type state struct {
	accounts        map[key]domain.Account // keyed by account code
	entries         map[key]domain.JournalEntry
	sequences       map[string]int64
	reconciliations map[key]domain.BankReconciliation
	transfers       map[key]domain.BankTransfer
	cash            map[key]domain.CashTransaction
}

func newState() state {
	return state{
		accounts:        make(map[key]domain.Account),
		entries:         make(map[key]domain.JournalEntry),
		sequences:       make(map[string]int64),
		reconciliations: make(map[key]domain.BankReconciliation),
		transfers:       make(map[key]domain.BankTransfer),
		cash:            make(map[key]domain.CashTransaction),
	}
}

func (s state) clone() state {
	c := newState()
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.entries {
		c.entries[k] = copyEntry(v)
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	for k, v := range s.reconciliations {
		c.reconciliations[k] = v
	}
	for k, v := range s.transfers {
		c.transfers[k] = v
	}
	for k, v := range s.cash {
		c.cash[k] = v
	}
	return c
}

func copyEntry(e domain.JournalEntry) domain.JournalEntry {
	lines := make([]domain.LineItem, len(e.Lines))
	copy(lines, e.Lines)
	e.Lines = lines
	return e
}

// Store is an in-memory implementation of every repository port.
type Store struct {
	mu   sync.RWMutex
	data state
}

// New creates an empty store.
func New() *Store {
	return &Store{data: newState()}
}

// Repositories exposes the store through the repository ports.
func (s *Store) Repositories() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:           s,
		AccountRepo:         s,
		JournalRepo:         s,
		ReconciliationRepo:  s,
		TransferRepo:        s,
		CashTransactionRepo: s,
	}
}

var (
	_ portsrepo.TransactionManager              = (*Store)(nil)
	_ portsrepo.AccountRepositoryFacade         = (*Store)(nil)
	_ portsrepo.JournalRepositoryFacade         = (*Store)(nil)
	_ portsrepo.ReconciliationRepositoryFacade  = (*Store)(nil)
	_ portsrepo.TransferRepositoryFacade        = (*Store)(nil)
	_ portsrepo.CashTransactionRepositoryFacade = (*Store)(nil)
)

type txKey struct{}

func (s *Store) inTx(ctx context.Context) bool {
	owner, _ := ctx.Value(txKey{}).(*Store)
	return owner == s
}

// WithinTransaction implements portsrepo.TransactionManager.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	defer func() {
		if r := recover(); r != nil {
			s.data = snapshot
			panic(r)
		}
		if err != nil {
			s.data = snapshot
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, s))
}

// read takes the shared lock unless ctx already holds the store lock.
func (s *Store) read(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

// write takes the exclusive lock unless ctx already holds it.
func (s *Store) write(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

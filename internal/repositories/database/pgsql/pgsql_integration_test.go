package pgsql

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_core/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_core/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testWorkplace = "wp-pgsql-test"

// PgsqlTestSuite runs against a real database named by TEST_PGSQL_URL.
type PgsqlTestSuite struct {
	suite.Suite
	ctx   context.Context
	pool  *pgxpool.Pool
	repos portsrepo.RepositoryProvider
	now   time.Time
}

func TestPgsqlRepositories(t *testing.T) {
	url := os.Getenv("TEST_PGSQL_URL")
	if url == "" {
		t.Skip("TEST_PGSQL_URL not set")
	}
	suite.Run(t, &PgsqlTestSuite{})
}

func (s *PgsqlTestSuite) SetupSuite() {
	url := os.Getenv("TEST_PGSQL_URL")
	s.ctx = context.Background()
	_, err := database.Migrate(url)
	s.Require().NoError(err)
	s.pool, err = database.NewPgxPool(s.ctx, url, true)
	s.Require().NoError(err)
	s.repos = NewRepositoryProvider(s.pool)
	s.now = time.Date(2026, 3, 31, 10, 0, 0, 0, time.UTC)
}

func (s *PgsqlTestSuite) TearDownSuite() {
	database.ClosePgxPool(s.pool)
}

func (s *PgsqlTestSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `
		TRUNCATE cash_transactions, bank_transfers, bank_reconciliations, journal_lines, journal_entries,
		         entry_sequences, accounts;
	`)
	s.Require().NoError(err)

	accounts := NewAccountRepository(s.pool)
	for _, acc := range []domain.Account{
		{Code: "1-1001", Name: "Cash", AccountType: domain.Asset, SubType: domain.SubTypeCash},
		{Code: "4-1001", Name: "Sales", AccountType: domain.Revenue},
	} {
		acc.AccountID = uuid.NewString()
		acc.WorkplaceID = testWorkplace
		acc.IsActive = true
		acc.Balance = decimal.Zero
		acc.AuditFields = domain.NewAuditFields(s.now, "seed")
		s.Require().NoError(accounts.SaveAccount(s.ctx, acc))
	}
}

func (s *PgsqlTestSuite) newEntry(day int, amount string) domain.JournalEntry {
	id := uuid.NewString()
	amt := decimal.RequireFromString(amount)
	cash := domain.DebitLine("1-1001", amt, "")
	cash.LineID, cash.LineNumber = uuid.NewString(), 1
	sales := domain.CreditLine("4-1001", amt, "")
	sales.LineID, sales.LineNumber = uuid.NewString(), 2
	return domain.JournalEntry{
		EntryID:         id,
		WorkplaceID:     testWorkplace,
		EntryDate:       time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC),
		TransactionType: domain.TxnAdjustment,
		Description:     "Cash sale",
		Version:         1,
		Lines:           []domain.LineItem{cash, sales},
		AuditFields:     domain.NewAuditFields(s.now, "u1"),
	}
}

func (s *PgsqlTestSuite) TestSaveAssignsSequentialNumbers() {
	first, err := s.repos.JournalRepo.SaveEntry(s.ctx, s.newEntry(1, "10.00"))
	s.Require().NoError(err)
	second, err := s.repos.JournalRepo.SaveEntry(s.ctx, s.newEntry(2, "20.00"))
	s.Require().NoError(err)

	s.Equal(int64(1), first.EntryNumber)
	s.Equal(int64(2), second.EntryNumber)

	found, err := s.repos.JournalRepo.FindEntryByID(s.ctx, testWorkplace, second.EntryID)
	s.Require().NoError(err)
	s.Len(found.Lines, 2)
	s.Equal(1, found.Lines[0].LineNumber)
	s.True(found.Lines[0].DebitAmount.Equal(decimal.RequireFromString("20")))
}

func (s *PgsqlTestSuite) TestVersionCheckedWrites() {
	saved, err := s.repos.JournalRepo.SaveEntry(s.ctx, s.newEntry(1, "10.00"))
	s.Require().NoError(err)

	err = s.repos.JournalRepo.MarkPosted(s.ctx, testWorkplace, saved.EntryID, 7, "u1", s.now)
	s.ErrorIs(err, apperrors.ErrConflict)

	err = s.repos.JournalRepo.MarkPosted(s.ctx, testWorkplace, "missing", 1, "u1", s.now)
	s.ErrorIs(err, apperrors.ErrNotFound)

	s.Require().NoError(s.repos.JournalRepo.MarkPosted(s.ctx, testWorkplace, saved.EntryID, 1, "u1", s.now))
	posted, err := s.repos.JournalRepo.FindEntryByID(s.ctx, testWorkplace, saved.EntryID)
	s.Require().NoError(err)
	s.True(posted.IsPosted)
	s.Equal(2, posted.Version)
}

func (s *PgsqlTestSuite) TestSecondReversalIsDuplicate() {
	original, err := s.repos.JournalRepo.SaveEntry(s.ctx, s.newEntry(1, "10.00"))
	s.Require().NoError(err)

	reversal := s.newEntry(2, "10.00")
	reversal.IsReversing = true
	reversal.ReversedEntryID = &original.EntryID
	_, err = s.repos.JournalRepo.SaveEntry(s.ctx, reversal)
	s.Require().NoError(err)

	again := s.newEntry(3, "10.00")
	again.IsReversing = true
	again.ReversedEntryID = &original.EntryID
	_, err = s.repos.JournalRepo.SaveEntry(s.ctx, again)
	s.ErrorIs(err, apperrors.ErrDuplicate)

	found, err := s.repos.JournalRepo.FindReversalOf(s.ctx, testWorkplace, original.EntryID)
	s.Require().NoError(err)
	s.Equal(reversal.EntryID, found.EntryID)
}

func (s *PgsqlTestSuite) TestListEntriesPaginates() {
	for _, day := range []int{3, 1, 3, 2} {
		_, err := s.repos.JournalRepo.SaveEntry(s.ctx, s.newEntry(day, "1.00"))
		s.Require().NoError(err)
	}

	page, next, err := s.repos.JournalRepo.ListEntries(s.ctx, testWorkplace, 3, nil, nil)
	s.Require().NoError(err)
	s.Require().Len(page, 3)
	s.Require().NotNil(next)
	s.Equal([]int64{3, 1, 4}, []int64{page[0].EntryNumber, page[1].EntryNumber, page[2].EntryNumber})

	rest, next, err := s.repos.JournalRepo.ListEntries(s.ctx, testWorkplace, 3, next, nil)
	s.Require().NoError(err)
	s.Nil(next)
	s.Require().Len(rest, 1)
	s.Equal(int64(2), rest[0].EntryNumber)
}

func (s *PgsqlTestSuite) TestTransactionRollsBackBalancesAndEntries() {
	boom := errors.New("boom")
	err := s.repos.TxManager.WithinTransaction(s.ctx, func(txCtx context.Context) error {
		if _, err := s.repos.JournalRepo.SaveEntry(txCtx, s.newEntry(1, "10.00")); err != nil {
			return err
		}
		locked, err := s.repos.AccountRepo.FindAccountsByCodesForUpdate(txCtx, testWorkplace, []string{"1-1001"})
		if err != nil {
			return err
		}
		s.Len(locked, 1)
		if err := s.repos.AccountRepo.UpdateAccountBalancesInTx(txCtx, testWorkplace,
			map[string]decimal.Decimal{"1-1001": decimal.NewFromInt(10)}, "u1", s.now); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	cash, err := s.repos.AccountRepo.FindAccountByCode(s.ctx, testWorkplace, "1-1001")
	s.Require().NoError(err)
	s.True(cash.Balance.IsZero())

	page, _, err := s.repos.JournalRepo.ListEntries(s.ctx, testWorkplace, 10, nil, nil)
	s.Require().NoError(err)
	s.Empty(page)
}

func (s *PgsqlTestSuite) TestLedgerReadsSeePostedOnly() {
	posted, err := s.repos.JournalRepo.SaveEntry(s.ctx, s.newEntry(5, "30.00"))
	s.Require().NoError(err)
	s.Require().NoError(s.repos.JournalRepo.MarkPosted(s.ctx, testWorkplace, posted.EntryID, 1, "u1", s.now))
	early, err := s.repos.JournalRepo.SaveEntry(s.ctx, s.newEntry(1, "5.00"))
	s.Require().NoError(err)
	s.Require().NoError(s.repos.JournalRepo.MarkPosted(s.ctx, testWorkplace, early.EntryID, 1, "u1", s.now))
	_, err = s.repos.JournalRepo.SaveEntry(s.ctx, s.newEntry(6, "99.00"))
	s.Require().NoError(err)

	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	lines, err := s.repos.JournalRepo.ListPostedLines(s.ctx, testWorkplace, []string{"1-1001"}, from, to)
	s.Require().NoError(err)
	s.Require().Len(lines, 1)
	s.Equal(posted.EntryID, lines[0].EntryID)

	totals, err := s.repos.JournalRepo.PostedTotalsBefore(s.ctx, testWorkplace, []string{"1-1001", "4-1001"}, from)
	s.Require().NoError(err)
	s.True(totals["1-1001"].Debit.Equal(decimal.NewFromInt(5)))
	s.True(totals["4-1001"].Credit.Equal(decimal.NewFromInt(5)))
}

func (s *PgsqlTestSuite) TestTransferVersioning() {
	transfer := domain.BankTransfer{
		TransferID:      uuid.NewString(),
		WorkplaceID:     testWorkplace,
		FromAccountCode: "1-1001",
		ToAccountCode:   "4-1001",
		Amount:          decimal.NewFromInt(10),
		TransferFee:     decimal.Zero,
		TransferDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Description:     "Move",
		Status:          domain.TransferPending,
		Version:         1,
		AuditFields:     domain.NewAuditFields(s.now, "u1"),
	}
	s.Require().NoError(s.repos.TransferRepo.SaveTransfer(s.ctx, transfer))
	s.ErrorIs(s.repos.TransferRepo.SaveTransfer(s.ctx, transfer), apperrors.ErrDuplicate)

	transfer.Status = domain.TransferRejected
	transfer.RejectionReason = "wrong account"
	s.Require().NoError(s.repos.TransferRepo.UpdateTransfer(s.ctx, transfer))
	s.ErrorIs(s.repos.TransferRepo.UpdateTransfer(s.ctx, transfer), apperrors.ErrConflict)

	found, err := s.repos.TransferRepo.FindTransferByID(s.ctx, testWorkplace, transfer.TransferID)
	s.Require().NoError(err)
	s.Equal(domain.TransferRejected, found.Status)
	s.Equal(2, found.Version)

	rejected := domain.TransferRejected
	list, err := s.repos.TransferRepo.ListTransfers(s.ctx, testWorkplace, &rejected)
	s.Require().NoError(err)
	s.Len(list, 1)
}

package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ws = "ws-1"

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 9, 30, 0, 0, time.UTC)
}

func draft(id string, date time.Time) domain.JournalEntry {
	amt := decimal.NewFromInt(100)
	return domain.JournalEntry{
		EntryID:         id,
		WorkplaceID:     ws,
		EntryDate:       date,
		TransactionType: domain.TxnAdjustment,
		Description:     "test " + id,
		Version:         1,
		Lines: []domain.LineItem{
			{LineID: id + "-1", LineNumber: 1, AccountCode: "1101", DebitAmount: amt, CreditAmount: decimal.Zero},
			{LineID: id + "-2", LineNumber: 2, AccountCode: "4101", DebitAmount: decimal.Zero, CreditAmount: amt},
		},
	}
}

func TestSaveEntryAssignsNumbersPerWorkplace(t *testing.T) {
	s := New()
	ctx := context.Background()

	a, err := s.SaveEntry(ctx, draft("a", day(1)))
	require.NoError(t, err)
	b, err := s.SaveEntry(ctx, draft("b", day(1)))
	require.NoError(t, err)
	other := draft("c", day(1))
	other.WorkplaceID = "ws-2"
	c, err := s.SaveEntry(ctx, other)
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.EntryNumber)
	assert.Equal(t, int64(2), b.EntryNumber)
	assert.Equal(t, int64(1), c.EntryNumber)
	assert.Equal(t, "a", a.Lines[0].EntryID)
}

func TestReturnedEntriesAreCopies(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, err := s.SaveEntry(ctx, draft("a", day(1)))
	require.NoError(t, err)

	got, err := s.FindEntryByID(ctx, ws, "a")
	require.NoError(t, err)
	got.Lines[0].AccountCode = "9999"

	again, err := s.FindEntryByID(ctx, ws, "a")
	require.NoError(t, err)
	assert.Equal(t, "1101", again.Lines[0].AccountCode)
}

func TestWithinTransactionRollsBackOnError(t *testing.T) {
	s := New()
	s.SeedAccounts(domain.Account{WorkplaceID: ws, Code: "1101", AccountType: domain.Asset, IsActive: true, Balance: decimal.Zero})
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := s.SaveEntry(txCtx, draft("a", day(1))); err != nil {
			return err
		}
		if err := s.UpdateAccountBalancesInTx(txCtx, ws, map[string]decimal.Decimal{"1101": decimal.NewFromInt(5)}, "u", day(1)); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.FindEntryByID(ctx, ws, "a")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	acc, err := s.FindAccountByCode(ctx, ws, "1101")
	require.NoError(t, err)
	assert.True(t, acc.Balance.IsZero())

	// The sequence is restored too.
	saved, err := s.SaveEntry(ctx, draft("b", day(1)))
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.EntryNumber)
}

func TestNestedTransactionJoinsOuter(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithinTransaction(ctx, func(outer context.Context) error {
		inner := s.WithinTransaction(outer, func(innerCtx context.Context) error {
			_, err := s.SaveEntry(innerCtx, draft("a", day(1)))
			return err
		})
		require.NoError(t, inner)
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.FindEntryByID(ctx, ws, "a")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestVersionCheckedWrites(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, err := s.SaveEntry(ctx, draft("a", day(1)))
	require.NoError(t, err)

	err = s.MarkPosted(ctx, ws, "a", 2, "u", day(2))
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, s.MarkPosted(ctx, ws, "a", 1, "u", day(2)))
	got, err := s.FindEntryByID(ctx, ws, "a")
	require.NoError(t, err)
	assert.True(t, got.IsPosted)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, "u", got.PostedBy)

	assert.ErrorIs(t, s.DeleteEntry(ctx, ws, "a", 1), apperrors.ErrConflict)
	assert.ErrorIs(t, s.DeleteEntry(ctx, ws, "missing", 1), apperrors.ErrNotFound)
}

func TestSaveEntryRejectsSecondReversal(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, err := s.SaveEntry(ctx, draft("a", day(1)))
	require.NoError(t, err)

	original := "a"
	r1 := draft("r1", day(2))
	r1.IsReversing, r1.ReversedEntryID = true, &original
	_, err = s.SaveEntry(ctx, r1)
	require.NoError(t, err)

	r2 := draft("r2", day(2))
	r2.IsReversing, r2.ReversedEntryID = true, &original
	_, err = s.SaveEntry(ctx, r2)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	found, err := s.FindReversalOf(ctx, ws, "a")
	require.NoError(t, err)
	assert.Equal(t, "r1", found.EntryID)
}

func TestListEntriesPaginatesDescending(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, e := range []domain.JournalEntry{draft("a", day(1)), draft("b", day(3)), draft("c", day(2)), draft("d", day(3))} {
		_, err := s.SaveEntry(ctx, e)
		require.NoError(t, err)
	}

	page, next, err := s.ListEntries(ctx, ws, 3, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, []string{"d", "b", "c"}, ids(page))

	page, next, err = s.ListEntries(ctx, ws, 3, next, nil)
	require.NoError(t, err)
	assert.Nil(t, next)
	assert.Equal(t, []string{"a"}, ids(page))

	bad := "not-a-token"
	_, _, err = s.ListEntries(ctx, ws, 3, &bad, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestLedgerReadsOnlyPostedLinesInRange(t *testing.T) {
	s := New()
	ctx := context.Background()
	for _, e := range []domain.JournalEntry{draft("a", day(1)), draft("b", day(5)), draft("c", day(9)), draft("d", day(5))} {
		_, err := s.SaveEntry(ctx, e)
		require.NoError(t, err)
	}
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.MarkPosted(ctx, ws, id, 1, "u", day(10)))
	}

	lines, err := s.ListPostedLines(ctx, ws, []string{"1101"}, day(5), day(9))
	require.NoError(t, err)
	got := map[string]bool{}
	for _, l := range lines {
		got[l.EntryID] = true
		assert.Equal(t, "1101", l.AccountCode)
	}
	assert.Equal(t, map[string]bool{"b": true, "c": true}, got)

	totals, err := s.PostedTotalsBefore(ctx, ws, []string{"1101", "4101"}, day(5))
	require.NoError(t, err)
	assert.True(t, totals["1101"].Debit.Equal(decimal.NewFromInt(100)))
	assert.True(t, totals["4101"].Credit.Equal(decimal.NewFromInt(100)))
}

func TestWorkflowRecordsAreVersionChecked(t *testing.T) {
	s := New()
	ctx := context.Background()
	tr := domain.BankTransfer{TransferID: "t1", WorkplaceID: ws, Status: domain.TransferPending, Version: 1}
	require.NoError(t, s.SaveTransfer(ctx, tr))
	assert.ErrorIs(t, s.SaveTransfer(ctx, tr), apperrors.ErrDuplicate)

	tr.Status = domain.TransferApproved
	require.NoError(t, s.UpdateTransfer(ctx, tr))
	assert.ErrorIs(t, s.UpdateTransfer(ctx, tr), apperrors.ErrConflict)

	approved := domain.TransferApproved
	list, err := s.ListTransfers(ctx, ws, &approved)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].Version)

	require.NoError(t, s.DeleteTransfer(ctx, ws, "t1", 2))
	_, err = s.FindTransferByID(ctx, ws, "t1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func ids(entries []domain.JournalEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.EntryID
	}
	return out
}

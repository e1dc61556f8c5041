package pgsql

import (
	"context"
	"errors"
	"testing"

	"github.com/SscSPs/ledger_core/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// commitTx is a pgx.Tx whose Commit fails with err; other methods are not used.
type commitTx struct {
	pgx.Tx
	err error
}

func (tx commitTx) Commit(context.Context) error { return tx.err }

func TestCommit_MapsDriverErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		internal bool
	}{
		{name: "success"},
		{name: "serialization failure", err: &pgconn.PgError{Code: serializationFailure}, sentinel: apperrors.ErrConflict},
		{name: "deadlock", err: &pgconn.PgError{Code: deadlockDetected}, sentinel: apperrors.ErrConflict},
		{name: "deferred unique violation", err: &pgconn.PgError{Code: uniqueViolation}, sentinel: apperrors.ErrDuplicate},
		{name: "connection lost", err: errors.New("conn closed"), internal: true},
	}

	repo := &BaseRepository{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Commit(context.Background(), commitTx{err: tt.err})
			switch {
			case tt.sentinel != nil:
				assert.ErrorIs(t, err, tt.sentinel)
			case tt.internal:
				var appErr *apperrors.AppError
				assert.ErrorAs(t, err, &appErr)
				assert.False(t, apperrors.IsConflict(err))
			default:
				assert.NoError(t, err)
			}
		})
	}
}

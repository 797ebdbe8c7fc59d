package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewDatabaseFromDB(sqlx.NewDb(mockDB, "sqlmock"), zap.NewNop()), mock
}

func TestFormatFolio(t *testing.T) {
	tests := []struct {
		year int
		seq  int
		want string
	}{
		{2026, 1, "BIN-2026-00001"},
		{2026, 42, "BIN-2026-00042"},
		{2027, 1, "BIN-2027-00001"},
		{2026, 99999, "BIN-2026-99999"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFolio(tt.year, tt.seq))
	}
}

func TestNextFolioSeqTx(t *testing.T) {
	db, mock := newMockDatabase(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO folio_counters`).
		WithArgs(2026).
		WillReturnRows(sqlmock.NewRows([]string{"last_seq"}).AddRow(7))
	mock.ExpectCommit()

	err := db.InTx(ctx, func(tx *sqlx.Tx) error {
		seq, err := db.NextFolioSeqTx(ctx, tx, 2026)
		require.NoError(t, err)
		assert.Equal(t, 7, seq)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInTxRollsBackOnError(t *testing.T) {
	db, mock := newMockDatabase(t)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := db.InTx(ctx, func(tx *sqlx.Tx) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("not a pq error")))
	assert.False(t, IsUniqueViolation(nil))
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, IsSerializationFailure(&pq.Error{Code: "40001"}))
	assert.True(t, IsSerializationFailure(&pq.Error{Code: "40P01"}))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))
}

package storage

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinishRHInterviewTx(t *testing.T) {
	db, mock := newMockDatabase(t)
	ctx := context.Background()
	interviewID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE rh_interviews SET finished_at = \$2`).
		WithArgs(interviewID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.InTx(ctx, func(tx *sqlx.Tx) error {
		closed, err := db.FinishRHInterviewTx(ctx, tx, interviewID, time.Now())
		require.NoError(t, err)
		assert.True(t, closed)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinishRHInterviewTxAlreadyClosed(t *testing.T) {
	db, mock := newMockDatabase(t)
	ctx := context.Background()
	interviewID := uuid.New()

	// La cláusula finished_at IS NULL no encuentra fila que actualizar
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE rh_interviews SET finished_at = \$2`).
		WithArgs(interviewID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := db.InTx(ctx, func(tx *sqlx.Tx) error {
		closed, err := db.FinishRHInterviewTx(ctx, tx, interviewID, time.Now())
		require.NoError(t, err)
		assert.False(t, closed)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

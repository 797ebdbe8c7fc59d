package services

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/apperrors"
	"github.com/MemoRT22/Vacantes-sub000/internal/models"
	"github.com/MemoRT22/Vacantes-sub000/internal/storage"
)

func newMockDB(t *testing.T) (*storage.Database, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return storage.NewDatabaseFromDB(sqlx.NewDb(mockDB, "sqlmock"), zap.NewNop()), mock
}

var applicationColumns = []string{
	"id", "folio", "folio_year", "folio_seq", "candidate_id", "vacancy_id",
	"status", "created_at", "updated_at",
}

func applicationRows(id uuid.UUID, folio string, status models.ApplicationStatus) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(applicationColumns).
		AddRow(id.String(), folio, 2026, 1, uuid.NewString(), uuid.NewString(), string(status), now, now)
}

func rhInterviewRows(interviewID, applicationID uuid.UUID, finishedAt driver.Value) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "application_id", "bank_version_id", "started_at", "finished_at"}).
		AddRow(interviewID.String(), applicationID.String(), uuid.NewString(), time.Now(), finishedAt)
}

func TestStartEvaluationRequiresManagerResult(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPipelineService(db, zap.NewNop())
	appID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM applications WHERE id = \$1 FOR UPDATE`).
		WithArgs(appID).
		WillReturnRows(applicationRows(appID, "BIN-2026-00001", models.StatusEntrevistaConManager))
	mock.ExpectQuery(`SELECT \* FROM rh_interviews WHERE application_id = \$1`).
		WithArgs(appID).
		WillReturnRows(rhInterviewRows(uuid.New(), appID, time.Now()))
	mock.ExpectQuery(`SELECT \* FROM manager_interviews WHERE application_id = \$1`).
		WithArgs(appID).
		WillReturnRows(sqlmock.NewRows([]string{"application_id", "score", "notes", "updated_at"}))
	mock.ExpectRollback()

	_, err := svc.StartEvaluation(context.Background(), appID, uuid.New(), models.RoleRH)
	assert.True(t, apperrors.Is(err, apperrors.CodePreconditionNotMet))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStartEvaluationWrongStage(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewPipelineService(db, zap.NewNop())
	appID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM applications WHERE id = \$1 FOR UPDATE`).
		WithArgs(appID).
		WillReturnRows(applicationRows(appID, "BIN-2026-00001", models.StatusEntrevistaConRH))
	mock.ExpectRollback()

	_, err := svc.StartEvaluation(context.Background(), appID, uuid.New(), models.RoleRH)
	assert.True(t, apperrors.Is(err, apperrors.CodeInvalidTransition))
	assert.NoError(t, mock.ExpectationsWereMet())
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/apperrors"
	"github.com/MemoRT22/Vacantes-sub000/internal/models"
)

func bankQuestionRows(questionID, versionID uuid.UUID, required bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "version_id", "ord", "text", "is_required"}).
		AddRow(questionID.String(), versionID.String(), 1, "¿Por qué le interesa el puesto?", required)
}

func TestRHInterviewSaveDraftOnClosedInterview(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRHInterviewService(db, zap.NewNop())
	appID := uuid.New()

	// El candado regresa la entrevista ya cerrada: el borrador no toca nada
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM rh_interviews WHERE application_id = \$1 FOR UPDATE`).
		WithArgs(appID).
		WillReturnRows(rhInterviewRows(uuid.New(), appID, time.Now()))
	mock.ExpectRollback()

	answers := []AnswerInput{{QuestionID: uuid.New(), Answer: "respuesta"}}
	err := svc.SaveDraft(context.Background(), appID, answers, nil, uuid.New(), models.RoleRH)
	assert.True(t, apperrors.Is(err, apperrors.CodeAlreadyFinalized))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRHInterviewFinalize(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRHInterviewService(db, zap.NewNop())
	appID := uuid.New()
	interviewID := uuid.New()
	versionID := uuid.New()
	questionID := uuid.New()

	interviewRow := sqlmock.NewRows([]string{"id", "application_id", "bank_version_id", "started_at", "finished_at"}).
		AddRow(interviewID.String(), appID.String(), versionID.String(), time.Now(), nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM rh_interviews WHERE application_id = \$1 FOR UPDATE`).
		WithArgs(appID).
		WillReturnRows(interviewRow)
	mock.ExpectQuery(`SELECT \* FROM question_bank_questions WHERE version_id = \$1`).
		WithArgs(versionID).
		WillReturnRows(bankQuestionRows(questionID, versionID, true))
	mock.ExpectQuery(`SELECT \* FROM rh_interview_answers WHERE interview_id = \$1`).
		WithArgs(interviewID).
		WillReturnRows(sqlmock.NewRows([]string{"interview_id", "question_id", "answer"}).
			AddRow(interviewID.String(), questionID.String(), "me interesa el giro de la empresa"))
	mock.ExpectExec(`UPDATE rh_interviews SET finished_at = \$2`).
		WithArgs(interviewID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.Finalize(context.Background(), appID, uuid.New(), models.RoleRH)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRHInterviewFinalizeOnClosedInterview(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRHInterviewService(db, zap.NewNop())
	appID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM rh_interviews WHERE application_id = \$1 FOR UPDATE`).
		WithArgs(appID).
		WillReturnRows(rhInterviewRows(uuid.New(), appID, time.Now()))
	mock.ExpectRollback()

	err := svc.Finalize(context.Background(), appID, uuid.New(), models.RoleRH)
	assert.True(t, apperrors.Is(err, apperrors.CodeAlreadyFinalized))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRHInterviewFinalizeMissingRequiredAnswer(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewRHInterviewService(db, zap.NewNop())
	appID := uuid.New()
	interviewID := uuid.New()
	versionID := uuid.New()

	interviewRow := sqlmock.NewRows([]string{"id", "application_id", "bank_version_id", "started_at", "finished_at"}).
		AddRow(interviewID.String(), appID.String(), versionID.String(), time.Now(), nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM rh_interviews WHERE application_id = \$1 FOR UPDATE`).
		WithArgs(appID).
		WillReturnRows(interviewRow)
	mock.ExpectQuery(`SELECT \* FROM question_bank_questions WHERE version_id = \$1`).
		WithArgs(versionID).
		WillReturnRows(bankQuestionRows(uuid.New(), versionID, true))
	mock.ExpectQuery(`SELECT \* FROM rh_interview_answers WHERE interview_id = \$1`).
		WithArgs(interviewID).
		WillReturnRows(sqlmock.NewRows([]string{"interview_id", "question_id", "answer"}))
	mock.ExpectRollback()

	err := svc.Finalize(context.Background(), appID, uuid.New(), models.RoleRH)
	assert.True(t, apperrors.Is(err, apperrors.CodeMissingRequiredAnswers))
	assert.NoError(t, mock.ExpectationsWereMet())
}

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

func evaluationScoreRows(applicationID uuid.UUID, score int) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"application_id", "criterion", "score", "updated_at"})
	for _, c := range models.EvaluationCriteria {
		rows.AddRow(applicationID.String(), string(c.ID), score, time.Now())
	}
	return rows
}

func evaluationSummaryRows(applicationID uuid.UUID) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"application_id", "factors_for", "factors_against", "conclusion",
		"references_laborales", "total", "updated_at",
	}).AddRow(applicationID.String(), "experiencia sólida", "poca capacitación", "se recomienda contratar", nil, nil, time.Now())
}

func TestEvaluationFinalizePersistsTotal(t *testing.T) {
	db, mock := newMockDB(t)
	pipeline := NewPipelineService(db, zap.NewNop())
	svc := NewEvaluationService(db, pipeline, zap.NewNop())
	appID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM applications WHERE id = \$1 FOR UPDATE`).
		WithArgs(appID).
		WillReturnRows(applicationRows(appID, "BIN-2026-00001", models.StatusEvaluando))
	mock.ExpectQuery(`SELECT \* FROM evaluation_scores WHERE application_id = \$1`).
		WithArgs(appID).
		WillReturnRows(evaluationScoreRows(appID, 4))
	mock.ExpectQuery(`SELECT \* FROM evaluation_summaries WHERE application_id = \$1`).
		WithArgs(appID).
		WillReturnRows(evaluationSummaryRows(appID))
	// 16 criterios con 4 cada uno
	mock.ExpectExec(`UPDATE evaluation_summaries SET total = \$2`).
		WithArgs(appID, 64, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE applications SET status = \$2`).
		WithArgs(appID, string(models.StatusAceptado), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO audit_log`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	app, err := svc.Finalize(context.Background(), appID, models.StatusAceptado, uuid.New(), models.RoleRH)
	require.NoError(t, err)
	assert.Equal(t, models.StatusAceptado, app.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluationFinalizeSecondCallRejected(t *testing.T) {
	db, mock := newMockDB(t)
	pipeline := NewPipelineService(db, zap.NewNop())
	svc := NewEvaluationService(db, pipeline, zap.NewNop())
	appID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM applications WHERE id = \$1 FOR UPDATE`).
		WithArgs(appID).
		WillReturnRows(applicationRows(appID, "BIN-2026-00001", models.StatusAceptado))
	mock.ExpectRollback()

	_, err := svc.Finalize(context.Background(), appID, models.StatusRechazado, uuid.New(), models.RoleRH)
	assert.True(t, apperrors.Is(err, apperrors.CodeAlreadyFinalized))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluationFinalizeRequiresAllScores(t *testing.T) {
	db, mock := newMockDB(t)
	pipeline := NewPipelineService(db, zap.NewNop())
	svc := NewEvaluationService(db, pipeline, zap.NewNop())
	appID := uuid.New()

	incomplete := sqlmock.NewRows([]string{"application_id", "criterion", "score", "updated_at"}).
		AddRow(appID.String(), string(models.EvaluationCriteria[0].ID), 3, time.Now())

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM applications WHERE id = \$1 FOR UPDATE`).
		WithArgs(appID).
		WillReturnRows(applicationRows(appID, "BIN-2026-00001", models.StatusEvaluando))
	mock.ExpectQuery(`SELECT \* FROM evaluation_scores WHERE application_id = \$1`).
		WithArgs(appID).
		WillReturnRows(incomplete)
	mock.ExpectRollback()

	_, err := svc.Finalize(context.Background(), appID, models.StatusAceptado, uuid.New(), models.RoleRH)
	assert.True(t, apperrors.Is(err, apperrors.CodeIncompleteScoreSet))
	assert.NoError(t, mock.ExpectationsWereMet())
}

package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MemoRT22/Vacantes-sub000/internal/models"
)

// GetEvaluationScores regresa las calificaciones capturadas de la solicitud
func (d *Database) GetEvaluationScores(ctx context.Context, applicationID uuid.UUID) ([]models.EvaluationScore, error) {
	var scores []models.EvaluationScore
	query := `SELECT * FROM evaluation_scores WHERE application_id = $1 ORDER BY criterion`

	if err := d.db.SelectContext(ctx, &scores, query, applicationID); err != nil {
		return nil, err
	}
	return scores, nil
}

// GetEvaluationScoresTx variante transaccional de GetEvaluationScores
func (d *Database) GetEvaluationScoresTx(ctx context.Context, tx *sqlx.Tx, applicationID uuid.UUID) ([]models.EvaluationScore, error) {
	var scores []models.EvaluationScore
	query := `SELECT * FROM evaluation_scores WHERE application_id = $1 ORDER BY criterion`

	if err := tx.SelectContext(ctx, &scores, query, applicationID); err != nil {
		return nil, err
	}
	return scores, nil
}

// UpsertEvaluationScoresTx guarda el juego completo de calificaciones
func (d *Database) UpsertEvaluationScoresTx(ctx context.Context, tx *sqlx.Tx, applicationID uuid.UUID, scores map[models.CriterionID]int) error {
	query := `
        INSERT INTO evaluation_scores (application_id, criterion, score, updated_at)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (application_id, criterion) DO UPDATE SET
            score = EXCLUDED.score,
            updated_at = EXCLUDED.updated_at
    `

	now := time.Now()
	for criterion, score := range scores {
		if _, err := tx.ExecContext(ctx, query, applicationID, criterion, score, now); err != nil {
			return err
		}
	}
	return nil
}

// GetEvaluationSummary regresa el resumen de evaluación, si existe
func (d *Database) GetEvaluationSummary(ctx context.Context, applicationID uuid.UUID) (*models.EvaluationSummary, error) {
	var summary models.EvaluationSummary
	query := `SELECT * FROM evaluation_summaries WHERE application_id = $1`

	err := d.db.GetContext(ctx, &summary, query, applicationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &summary, nil
}

// GetEvaluationSummaryTx variante transaccional de GetEvaluationSummary
func (d *Database) GetEvaluationSummaryTx(ctx context.Context, tx *sqlx.Tx, applicationID uuid.UUID) (*models.EvaluationSummary, error) {
	var summary models.EvaluationSummary
	query := `SELECT * FROM evaluation_summaries WHERE application_id = $1`

	err := tx.GetContext(ctx, &summary, query, applicationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &summary, nil
}

// UpsertEvaluationSummaryTx guarda o actualiza el resumen de evaluación
func (d *Database) UpsertEvaluationSummaryTx(ctx context.Context, tx *sqlx.Tx, summary *models.EvaluationSummary) error {
	query := `
        INSERT INTO evaluation_summaries (application_id, factors_for, factors_against,
                                          conclusion, references_laborales, updated_at)
        VALUES (:application_id, :factors_for, :factors_against,
                :conclusion, :references_laborales, :updated_at)
        ON CONFLICT (application_id) DO UPDATE SET
            factors_for = EXCLUDED.factors_for,
            factors_against = EXCLUDED.factors_against,
            conclusion = EXCLUDED.conclusion,
            references_laborales = EXCLUDED.references_laborales,
            updated_at = EXCLUDED.updated_at
    `

	_, err := tx.NamedExecContext(ctx, query, summary)
	return err
}

// SetEvaluationTotalTx persiste el total calculado al momento de finalizar
func (d *Database) SetEvaluationTotalTx(ctx context.Context, tx *sqlx.Tx, applicationID uuid.UUID, total int) error {
	query := `UPDATE evaluation_summaries SET total = $2, updated_at = $3 WHERE application_id = $1`
	_, err := tx.ExecContext(ctx, query, applicationID, total, time.Now())
	return err
}

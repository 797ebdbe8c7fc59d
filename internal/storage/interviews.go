package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MemoRT22/Vacantes-sub000/internal/models"
)

// GetRHInterview regresa la entrevista con RH de la solicitud, si existe
func (d *Database) GetRHInterview(ctx context.Context, applicationID uuid.UUID) (*models.RHInterview, error) {
	var interview models.RHInterview
	query := `SELECT * FROM rh_interviews WHERE application_id = $1`

	err := d.db.GetContext(ctx, &interview, query, applicationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &interview, nil
}

// GetRHInterviewTx variante transaccional de GetRHInterview
func (d *Database) GetRHInterviewTx(ctx context.Context, tx *sqlx.Tx, applicationID uuid.UUID) (*models.RHInterview, error) {
	var interview models.RHInterview
	query := `SELECT * FROM rh_interviews WHERE application_id = $1`

	err := tx.GetContext(ctx, &interview, query, applicationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &interview, nil
}

// LockRHInterviewTx lee la entrevista bloqueando su fila (FOR UPDATE).
// Serializa borradores y cierre concurrentes sobre la misma entrevista.
func (d *Database) LockRHInterviewTx(ctx context.Context, tx *sqlx.Tx, applicationID uuid.UUID) (*models.RHInterview, error) {
	var interview models.RHInterview
	query := `SELECT * FROM rh_interviews WHERE application_id = $1 FOR UPDATE`

	err := tx.GetContext(ctx, &interview, query, applicationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &interview, nil
}

// CreateRHInterviewTx crea la entrevista con RH congelando la versión del banco
func (d *Database) CreateRHInterviewTx(ctx context.Context, tx *sqlx.Tx, interview *models.RHInterview) error {
	query := `
        INSERT INTO rh_interviews (id, application_id, bank_version_id, started_at)
        VALUES (:id, :application_id, :bank_version_id, :started_at)
    `

	_, err := tx.NamedExecContext(ctx, query, interview)
	return err
}

// FinishRHInterviewTx fija finished_at, después de esto la entrevista es solo
// lectura. Regresa false si la fila ya estaba cerrada.
func (d *Database) FinishRHInterviewTx(ctx context.Context, tx *sqlx.Tx, interviewID uuid.UUID, finishedAt time.Time) (bool, error) {
	query := `UPDATE rh_interviews SET finished_at = $2 WHERE id = $1 AND finished_at IS NULL`
	res, err := tx.ExecContext(ctx, query, interviewID, finishedAt)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// GetInterviewAnswers regresa las respuestas capturadas de la entrevista
func (d *Database) GetInterviewAnswers(ctx context.Context, interviewID uuid.UUID) ([]models.InterviewAnswer, error) {
	var answers []models.InterviewAnswer
	query := `SELECT * FROM rh_interview_answers WHERE interview_id = $1`

	if err := d.db.SelectContext(ctx, &answers, query, interviewID); err != nil {
		return nil, err
	}
	return answers, nil
}

// GetInterviewAnswersTx variante transaccional de GetInterviewAnswers
func (d *Database) GetInterviewAnswersTx(ctx context.Context, tx *sqlx.Tx, interviewID uuid.UUID) ([]models.InterviewAnswer, error) {
	var answers []models.InterviewAnswer
	query := `SELECT * FROM rh_interview_answers WHERE interview_id = $1`

	if err := tx.SelectContext(ctx, &answers, query, interviewID); err != nil {
		return nil, err
	}
	return answers, nil
}

// UpsertInterviewAnswerTx guarda o reemplaza la respuesta a una pregunta del banco
func (d *Database) UpsertInterviewAnswerTx(ctx context.Context, tx *sqlx.Tx, answer *models.InterviewAnswer) error {
	query := `
        INSERT INTO rh_interview_answers (interview_id, question_id, answer)
        VALUES (:interview_id, :question_id, :answer)
        ON CONFLICT (interview_id, question_id) DO UPDATE SET
            answer = EXCLUDED.answer
    `

	_, err := tx.NamedExecContext(ctx, query, answer)
	return err
}

// GetExtraQuestions regresa las preguntas libres de la entrevista en orden
func (d *Database) GetExtraQuestions(ctx context.Context, interviewID uuid.UUID) ([]models.ExtraQuestion, error) {
	var extras []models.ExtraQuestion
	query := `SELECT * FROM rh_interview_extras WHERE interview_id = $1 ORDER BY ord`

	if err := d.db.SelectContext(ctx, &extras, query, interviewID); err != nil {
		return nil, err
	}
	return extras, nil
}

// ReplaceExtraQuestionsTx reemplaza el bloque de preguntas libres del borrador
func (d *Database) ReplaceExtraQuestionsTx(ctx context.Context, tx *sqlx.Tx, interviewID uuid.UUID, extras []models.ExtraQuestion) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM rh_interview_extras WHERE interview_id = $1`, interviewID); err != nil {
		return err
	}

	query := `
        INSERT INTO rh_interview_extras (id, interview_id, ord, question, answer)
        VALUES ($1, $2, $3, $4, $5)
    `
	for i, extra := range extras {
		if _, err := tx.ExecContext(ctx, query, uuid.New(), interviewID, i+1, extra.Question, extra.Answer); err != nil {
			return err
		}
	}
	return nil
}

// GetManagerInterview regresa el resultado de la entrevista con el manager, si existe
func (d *Database) GetManagerInterview(ctx context.Context, applicationID uuid.UUID) (*models.ManagerInterview, error) {
	var interview models.ManagerInterview
	query := `SELECT * FROM manager_interviews WHERE application_id = $1`

	err := d.db.GetContext(ctx, &interview, query, applicationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &interview, nil
}

// GetManagerInterviewTx variante transaccional de GetManagerInterview
func (d *Database) GetManagerInterviewTx(ctx context.Context, tx *sqlx.Tx, applicationID uuid.UUID) (*models.ManagerInterview, error) {
	var interview models.ManagerInterview
	query := `SELECT * FROM manager_interviews WHERE application_id = $1`

	err := tx.GetContext(ctx, &interview, query, applicationID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &interview, nil
}

// UpsertManagerInterviewTx guarda o actualiza el resultado del manager
func (d *Database) UpsertManagerInterviewTx(ctx context.Context, tx *sqlx.Tx, interview *models.ManagerInterview) error {
	query := `
        INSERT INTO manager_interviews (application_id, score, notes, updated_at)
        VALUES (:application_id, :score, :notes, :updated_at)
        ON CONFLICT (application_id) DO UPDATE SET
            score = EXCLUDED.score,
            notes = EXCLUDED.notes,
            updated_at = EXCLUDED.updated_at
    `

	_, err := tx.NamedExecContext(ctx, query, interview)
	return err
}

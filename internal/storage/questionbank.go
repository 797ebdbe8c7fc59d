package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MemoRT22/Vacantes-sub000/internal/models"
)

// GetActiveBankVersion regresa la versión activa del banco para el tipo de vacante
func (d *Database) GetActiveBankVersion(ctx context.Context, kind models.VacancyKind) (*models.QuestionBankVersion, error) {
	var version models.QuestionBankVersion
	query := `SELECT * FROM question_bank_versions WHERE kind = $1 AND is_active = true`

	err := d.db.GetContext(ctx, &version, query, kind)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &version, nil
}

// GetBankVersionByID busca una versión del banco por id
func (d *Database) GetBankVersionByID(ctx context.Context, id uuid.UUID) (*models.QuestionBankVersion, error) {
	var version models.QuestionBankVersion
	query := `SELECT * FROM question_bank_versions WHERE id = $1`

	err := d.db.GetContext(ctx, &version, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &version, nil
}

// ListBankVersions regresa las versiones del banco para un tipo, la más reciente primero
func (d *Database) ListBankVersions(ctx context.Context, kind models.VacancyKind) ([]models.QuestionBankVersion, error) {
	var versions []models.QuestionBankVersion
	query := `SELECT * FROM question_bank_versions WHERE kind = $1 ORDER BY version DESC`

	if err := d.db.SelectContext(ctx, &versions, query, kind); err != nil {
		return nil, err
	}
	return versions, nil
}

// GetBankQuestions regresa las preguntas de una versión en su orden
func (d *Database) GetBankQuestions(ctx context.Context, versionID uuid.UUID) ([]models.BankQuestion, error) {
	var questions []models.BankQuestion
	query := `SELECT * FROM question_bank_questions WHERE version_id = $1 ORDER BY ord`

	if err := d.db.SelectContext(ctx, &questions, query, versionID); err != nil {
		return nil, err
	}
	return questions, nil
}

// CreateBankVersionTx inserta una versión nueva del banco con sus preguntas.
// Si activate es verdadero desactiva la versión activa anterior del mismo tipo;
// las versiones previas nunca se modifican más allá de su bandera de activación.
func (d *Database) CreateBankVersionTx(ctx context.Context, tx *sqlx.Tx, kind models.VacancyKind, questions []models.BankQuestion, activate bool) (*models.QuestionBankVersion, error) {
	var nextVersion int
	seqQuery := `
        SELECT COALESCE(MAX(version), 0) + 1 FROM question_bank_versions WHERE kind = $1
    `
	if err := tx.GetContext(ctx, &nextVersion, seqQuery, kind); err != nil {
		return nil, err
	}

	if activate {
		deactivate := `UPDATE question_bank_versions SET is_active = false WHERE kind = $1 AND is_active = true`
		if _, err := tx.ExecContext(ctx, deactivate, kind); err != nil {
			return nil, err
		}
	}

	version := models.QuestionBankVersion{
		ID:        uuid.New(),
		Kind:      kind,
		Version:   nextVersion,
		IsActive:  activate,
		CreatedAt: time.Now(),
	}

	insertVersion := `
        INSERT INTO question_bank_versions (id, kind, version, is_active, created_at)
        VALUES (:id, :kind, :version, :is_active, :created_at)
    `
	if _, err := tx.NamedExecContext(ctx, insertVersion, &version); err != nil {
		return nil, err
	}

	insertQuestion := `
        INSERT INTO question_bank_questions (id, version_id, ord, text, is_required)
        VALUES ($1, $2, $3, $4, $5)
    `
	for i := range questions {
		questions[i].ID = uuid.New()
		questions[i].VersionID = version.ID
		if _, err := tx.ExecContext(ctx, insertQuestion,
			questions[i].ID, version.ID, questions[i].Ord, questions[i].Text, questions[i].IsRequired); err != nil {
			return nil, err
		}
	}

	return &version, nil
}

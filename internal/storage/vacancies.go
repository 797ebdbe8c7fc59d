package storage

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/MemoRT22/Vacantes-sub000/internal/models"
)

// GetVacancyByID busca una vacante por id
func (d *Database) GetVacancyByID(ctx context.Context, id uuid.UUID) (*models.Vacancy, error) {
	var vacancy models.Vacancy
	query := `SELECT * FROM vacancies WHERE id = $1`

	err := d.db.GetContext(ctx, &vacancy, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &vacancy, nil
}

// GetRequiredDocs regresa los documentos requeridos de la vacante, opcionalmente por fase
func (d *Database) GetRequiredDocs(ctx context.Context, vacancyID uuid.UUID, phase models.DocumentPhase) ([]models.RequiredDocumentSpec, error) {
	var specs []models.RequiredDocumentSpec

	if phase == "" {
		query := `SELECT * FROM vacancy_required_docs WHERE vacancy_id = $1 ORDER BY doc_type`
		if err := d.db.SelectContext(ctx, &specs, query, vacancyID); err != nil {
			return nil, err
		}
		return specs, nil
	}

	query := `SELECT * FROM vacancy_required_docs WHERE vacancy_id = $1 AND phase = $2 ORDER BY doc_type`
	if err := d.db.SelectContext(ctx, &specs, query, vacancyID, phase); err != nil {
		return nil, err
	}
	return specs, nil
}

// GetStaffByID busca un usuario interno por id
func (d *Database) GetStaffByID(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	var staff models.Staff
	query := `SELECT * FROM staff WHERE id = $1`

	err := d.db.GetContext(ctx, &staff, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &staff, nil
}

// GetStaffByEmail busca un usuario interno por correo
func (d *Database) GetStaffByEmail(ctx context.Context, email string) (*models.Staff, error) {
	var staff models.Staff
	query := `SELECT * FROM staff WHERE email = $1`

	err := d.db.GetContext(ctx, &staff, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &staff, nil
}

// ListVacancies regresa las vacantes, opcionalmente solo las activas
func (d *Database) ListVacancies(ctx context.Context, onlyActive bool) ([]models.Vacancy, error) {
	var vacancies []models.Vacancy

	query := `SELECT * FROM vacancies ORDER BY created_at DESC`
	if onlyActive {
		query = `SELECT * FROM vacancies WHERE is_active = true ORDER BY created_at DESC`
	}

	if err := d.db.SelectContext(ctx, &vacancies, query); err != nil {
		return nil, err
	}
	return vacancies, nil
}

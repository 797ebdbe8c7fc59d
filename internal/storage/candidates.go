package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MemoRT22/Vacantes-sub000/internal/models"
)

// UpsertCandidateTx crea o actualiza el candidato por correo y regresa la fila vigente
func (d *Database) UpsertCandidateTx(ctx context.Context, tx *sqlx.Tx, email, fullName, phone string) (*models.Candidate, error) {
	var candidate models.Candidate
	query := `
        INSERT INTO candidates (id, email, full_name, phone, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $5)
        ON CONFLICT (email) DO UPDATE SET
            full_name = EXCLUDED.full_name,
            phone = EXCLUDED.phone,
            updated_at = EXCLUDED.updated_at
        RETURNING *
    `

	err := tx.GetContext(ctx, &candidate, query, uuid.New(), email, fullName, phone, time.Now())
	if err != nil {
		return nil, err
	}

	return &candidate, nil
}

// GetCandidateByEmail busca un candidato por correo
func (d *Database) GetCandidateByEmail(ctx context.Context, email string) (*models.Candidate, error) {
	var candidate models.Candidate
	query := `SELECT * FROM candidates WHERE email = $1`

	err := d.db.GetContext(ctx, &candidate, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &candidate, nil
}

// GetCandidateByID busca un candidato por id
func (d *Database) GetCandidateByID(ctx context.Context, id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	query := `SELECT * FROM candidates WHERE id = $1`

	err := d.db.GetContext(ctx, &candidate, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &candidate, nil
}

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MemoRT22/Vacantes-sub000/internal/models"
)

// FormatFolio arma el folio BIN-YYYY-NNNNN
func FormatFolio(year, seq int) string {
	return fmt.Sprintf("BIN-%04d-%05d", year, seq)
}

// GetApplicationByID busca una solicitud por id
func (d *Database) GetApplicationByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	query := `SELECT * FROM applications WHERE id = $1`

	err := d.db.GetContext(ctx, &app, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &app, nil
}

// GetApplicationByFolio busca una solicitud por folio
func (d *Database) GetApplicationByFolio(ctx context.Context, folio string) (*models.Application, error) {
	var app models.Application
	query := `SELECT * FROM applications WHERE folio = $1`

	err := d.db.GetContext(ctx, &app, query, folio)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &app, nil
}

// GetApplicationByPair busca la solicitud de un par (vacante, candidato)
func (d *Database) GetApplicationByPair(ctx context.Context, vacancyID, candidateID uuid.UUID) (*models.Application, error) {
	var app models.Application
	query := `SELECT * FROM applications WHERE vacancy_id = $1 AND candidate_id = $2`

	err := d.db.GetContext(ctx, &app, query, vacancyID, candidateID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &app, nil
}

// GetApplicationByPairTx variante transaccional de GetApplicationByPair
func (d *Database) GetApplicationByPairTx(ctx context.Context, tx *sqlx.Tx, vacancyID, candidateID uuid.UUID) (*models.Application, error) {
	var app models.Application
	query := `SELECT * FROM applications WHERE vacancy_id = $1 AND candidate_id = $2`

	err := tx.GetContext(ctx, &app, query, vacancyID, candidateID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &app, nil
}

// LockApplicationTx lee la solicitud bloqueando su fila (FOR UPDATE)
func (d *Database) LockApplicationTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	query := `SELECT * FROM applications WHERE id = $1 FOR UPDATE`

	err := tx.GetContext(ctx, &app, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &app, nil
}

// NextFolioSeqTx calcula la siguiente secuencia del año dentro de la transacción.
// El candado de folio_counters serializa a los que compiten por el mismo año.
func (d *Database) NextFolioSeqTx(ctx context.Context, tx *sqlx.Tx, year int) (int, error) {
	var seq int
	query := `
        INSERT INTO folio_counters (year, last_seq)
        VALUES ($1, 1)
        ON CONFLICT (year) DO UPDATE SET last_seq = folio_counters.last_seq + 1
        RETURNING last_seq
    `

	if err := tx.GetContext(ctx, &seq, query, year); err != nil {
		return 0, err
	}
	return seq, nil
}

// CreateApplicationTx inserta la solicitud nueva dentro de la transacción
func (d *Database) CreateApplicationTx(ctx context.Context, tx *sqlx.Tx, app *models.Application) error {
	query := `
        INSERT INTO applications (id, folio, folio_year, folio_seq, candidate_id, vacancy_id,
                                  status, created_at, updated_at)
        VALUES (:id, :folio, :folio_year, :folio_seq, :candidate_id, :vacancy_id,
                :status, :created_at, :updated_at)
    `

	_, err := tx.NamedExecContext(ctx, query, app)
	return err
}

// UpdateApplicationStatusTx cambia el estado de la solicitud ya bloqueada
func (d *Database) UpdateApplicationStatusTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, status models.ApplicationStatus) error {
	query := `UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`
	_, err := tx.ExecContext(ctx, query, id, status, time.Now())
	return err
}

// SetRHScheduleTx guarda la cita de entrevista con RH
func (d *Database) SetRHScheduleTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, at time.Time, place string) error {
	query := `
        UPDATE applications
        SET rh_interview_at = $2, rh_interview_place = $3, updated_at = $4
        WHERE id = $1
    `
	_, err := tx.ExecContext(ctx, query, id, at, place, time.Now())
	return err
}

// SetManagerScheduleTx guarda la cita de entrevista con el manager
func (d *Database) SetManagerScheduleTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, at time.Time, place string) error {
	query := `
        UPDATE applications
        SET manager_interview_at = $2, manager_interview_place = $3, updated_at = $4
        WHERE id = $1
    `
	_, err := tx.ExecContext(ctx, query, id, at, place, time.Now())
	return err
}

// AppendAuditTx agrega una entrada inmutable a la bitácora
func (d *Database) AppendAuditTx(ctx context.Context, tx *sqlx.Tx, entry *models.AuditLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query := `
        INSERT INTO audit_log (id, application_id, action, from_status, to_status, actor_id, note, created_at)
        VALUES (:id, :application_id, :action, :from_status, :to_status, :actor_id, :note, :created_at)
    `

	_, err := tx.NamedExecContext(ctx, query, entry)
	return err
}

// GetAuditTrail regresa la bitácora de la solicitud en orden cronológico
func (d *Database) GetAuditTrail(ctx context.Context, applicationID uuid.UUID) ([]models.AuditLogEntry, error) {
	var entries []models.AuditLogEntry
	query := `SELECT * FROM audit_log WHERE application_id = $1 ORDER BY created_at, id`

	if err := d.db.SelectContext(ctx, &entries, query, applicationID); err != nil {
		return nil, err
	}
	return entries, nil
}

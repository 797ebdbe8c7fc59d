package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MemoRT22/Vacantes-sub000/internal/models"
)

// NextDocumentVersionTx calcula la siguiente versión del documento.
// Se llama con la fila de la solicitud ya bloqueada para serializar asignaciones.
func (d *Database) NextDocumentVersionTx(ctx context.Context, tx *sqlx.Tx, applicationID uuid.UUID, docType models.DocumentType) (int, error) {
	var next int
	query := `
        SELECT COALESCE(MAX(version), 0) + 1
        FROM application_documents
        WHERE application_id = $1 AND doc_type = $2
    `

	if err := tx.GetContext(ctx, &next, query, applicationID, docType); err != nil {
		return 0, err
	}
	return next, nil
}

// InsertDocumentTx inserta una versión de documento dentro de la transacción
func (d *Database) InsertDocumentTx(ctx context.Context, tx *sqlx.Tx, doc *models.ApplicationDocument) error {
	query := `
        INSERT INTO application_documents (id, application_id, doc_type, phase, version,
                                           file_name, file_path, mime_type, file_size, uploaded_at)
        VALUES (:id, :application_id, :doc_type, :phase, :version,
                :file_name, :file_path, :mime_type, :file_size, :uploaded_at)
    `

	_, err := tx.NamedExecContext(ctx, query, doc)
	return err
}

// GetDocuments regresa todas las versiones de documentos de la solicitud
func (d *Database) GetDocuments(ctx context.Context, applicationID uuid.UUID) ([]models.ApplicationDocument, error) {
	var docs []models.ApplicationDocument
	query := `
        SELECT * FROM application_documents
        WHERE application_id = $1
        ORDER BY doc_type, version
    `

	if err := d.db.SelectContext(ctx, &docs, query, applicationID); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetCurrentDocuments regresa la versión vigente (máxima) por tipo de documento
func (d *Database) GetCurrentDocuments(ctx context.Context, applicationID uuid.UUID) ([]models.ApplicationDocument, error) {
	var docs []models.ApplicationDocument
	query := `
        SELECT DISTINCT ON (doc_type) *
        FROM application_documents
        WHERE application_id = $1
        ORDER BY doc_type, version DESC
    `

	if err := d.db.SelectContext(ctx, &docs, query, applicationID); err != nil {
		return nil, err
	}
	return docs, nil
}

// GetUploadedDocTypes regresa los tipos de documento con al menos una versión en la fase
func (d *Database) GetUploadedDocTypes(ctx context.Context, applicationID uuid.UUID, phase models.DocumentPhase) ([]models.DocumentType, error) {
	var types []models.DocumentType
	query := `
        SELECT DISTINCT doc_type FROM application_documents
        WHERE application_id = $1 AND phase = $2
        ORDER BY doc_type
    `

	if err := d.db.SelectContext(ctx, &types, query, applicationID, phase); err != nil {
		return nil, err
	}
	return types, nil
}

package services

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/apperrors"
	"github.com/MemoRT22/Vacantes-sub000/internal/models"
	"github.com/MemoRT22/Vacantes-sub000/internal/storage"
)

// DocumentService seguimiento de cumplimiento documental por fase
type DocumentService struct {
	db         *storage.Database
	redis      *storage.RedisClient
	files      *storage.FileStore
	sessionTTL time.Duration
	logger     *zap.Logger
}

// NewDocumentService crea el servicio de documentos
func NewDocumentService(db *storage.Database, redis *storage.RedisClient, files *storage.FileStore, sessionTTL time.Duration, logger *zap.Logger) *DocumentService {
	return &DocumentService{
		db:         db,
		redis:      redis,
		files:      files,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// DocsProgress vista derivada de avance documental de una fase
type DocsProgress struct {
	Required  []models.DocumentType `json:"required"`
	Uploaded  []models.DocumentType `json:"uploaded"`
	Pending   []models.DocumentType `json:"pending"`
	CanUpload bool                  `json:"can_upload"`
}

// StartUploadInput datos para abrir una sesión de subida DESPUES
type StartUploadInput struct {
	Folio    string              `json:"folio"`
	Email    string              `json:"email"`
	DocType  models.DocumentType `json:"doc_type"`
	FileName string              `json:"filename"`
	MimeType string              `json:"mimetype"`
	FileSize int64               `json:"size"`
}

// StartUploadResult sesión abierta con su destino de escritura
type StartUploadResult struct {
	UploadID  string    `json:"upload_id"`
	WritePath string    `json:"write_path"`
	Version   int       `json:"version"`
	ExpiresAt time.Time `json:"expires_at"`
}

// progress calcula la vista requerido/entregado/pendiente de una fase
func (s *DocumentService) progress(ctx context.Context, app *models.Application, phase models.DocumentPhase, canUpload bool) (*DocsProgress, error) {
	specs, err := s.db.GetRequiredDocs(ctx, app.VacancyID, phase)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	uploaded, err := s.db.GetUploadedDocTypes(ctx, app.ID, phase)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	have := make(map[models.DocumentType]bool, len(uploaded))
	for _, t := range uploaded {
		have[t] = true
	}

	result := &DocsProgress{
		Required:  []models.DocumentType{},
		Uploaded:  []models.DocumentType{},
		Pending:   []models.DocumentType{},
		CanUpload: canUpload,
	}
	for _, spec := range specs {
		result.Required = append(result.Required, spec.DocType)
		if have[spec.DocType] {
			result.Uploaded = append(result.Uploaded, spec.DocType)
		} else {
			result.Pending = append(result.Pending, spec.DocType)
		}
	}
	return result, nil
}

// GetNecessaryProgress avance de la fase NECESARIO para personal interno
func (s *DocumentService) GetNecessaryProgress(ctx context.Context, applicationID uuid.UUID) (*DocsProgress, error) {
	app, err := s.db.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if app == nil {
		return nil, apperrors.NotFound("application")
	}

	return s.progress(ctx, app, models.PhaseNecesario, !models.IsTerminal(app.Status))
}

// GetAfterDocsProgress avance de la fase DESPUES; consulta pública por folio y correo
func (s *DocumentService) GetAfterDocsProgress(ctx context.Context, folio, email string) (*DocsProgress, error) {
	app, err := s.lookupByFolioAndEmail(ctx, folio, email)
	if err != nil {
		return nil, err
	}

	return s.progress(ctx, app, models.PhaseDespues, app.Status == models.StatusAceptado)
}

// StartUpload abre la sesión de subida de un documento DESPUES.
// Solo con la solicitud en Aceptado; regresa un upload_id opaco y la
// ubicación temporal donde el cliente escribe los bytes.
func (s *DocumentService) StartUpload(ctx context.Context, input StartUploadInput) (*StartUploadResult, error) {
	if !models.IsValidDocumentType(input.DocType) {
		return nil, apperrors.ValidationField("doc_type", "unknown document type "+string(input.DocType))
	}
	if strings.TrimSpace(input.FileName) == "" {
		return nil, apperrors.ValidationField("filename", "filename is required")
	}

	app, err := s.lookupByFolioAndEmail(ctx, input.Folio, input.Email)
	if err != nil {
		return nil, err
	}
	if app.Status != models.StatusAceptado {
		return nil, apperrors.UploadNotAllowed("after-phase documents require an accepted application")
	}

	var version int
	err = s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		// El candado de la solicitud serializa la asignación de versión
		if _, err := s.db.LockApplicationTx(ctx, tx, app.ID); err != nil {
			return err
		}
		version, err = s.db.NextDocumentVersionTx(ctx, tx, app.ID, input.DocType)
		return err
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	session := &storage.UploadSession{
		UploadID:      uuid.NewString(),
		ApplicationID: app.ID,
		Folio:         app.Folio,
		DocType:       input.DocType,
		Version:       version,
		FileName:      input.FileName,
		MimeType:      input.MimeType,
		FileSize:      input.FileSize,
		CreatedAt:     time.Now(),
	}
	session.PendingPath = s.files.PendingPath(session.UploadID)

	if err := s.redis.SaveUploadSession(ctx, session, s.sessionTTL); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.logger.Info("After-doc upload session opened",
		zap.String("folio", app.Folio),
		zap.String("doc_type", string(input.DocType)),
		zap.Int("version", version),
		zap.String("upload_id", session.UploadID))

	return &StartUploadResult{
		UploadID:  session.UploadID,
		WritePath: session.PendingPath,
		Version:   version,
		ExpiresAt: session.CreatedAt.Add(s.sessionTTL),
	}, nil
}

// WriteBytes recibe el contenido de una sesión abierta y lo deposita
// en el área temporal. No registra nada todavía.
func (s *DocumentService) WriteBytes(ctx context.Context, uploadID string, content io.Reader) (int64, error) {
	session, err := s.redis.GetUploadSession(ctx, uploadID)
	if err != nil {
		return 0, apperrors.Internal(err)
	}
	if session == nil {
		return 0, apperrors.NotFound("upload session")
	}

	size, err := s.files.WritePending(uploadID, content)
	if err != nil {
		return 0, apperrors.Internal(err)
	}
	return size, nil
}

// FinalizeUpload registra la versión solo después de confirmar los bytes.
// Una sesión nunca finalizada no deja registro alguno.
func (s *DocumentService) FinalizeUpload(ctx context.Context, uploadID string) (*models.ApplicationDocument, error) {
	session, err := s.redis.GetUploadSession(ctx, uploadID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if session == nil {
		return nil, apperrors.NotFound("upload session")
	}

	size, err := s.files.StatPending(uploadID)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.UploadNotAllowed("upload bytes were never written")
		}
		return nil, apperrors.Internal(err)
	}

	doc, err := s.recordUpload(ctx, session, size, session.Version)
	if err != nil && storage.IsUniqueViolation(err) {
		// Una sesión concurrente ganó esta versión; recalculamos una vez
		var next int
		retryErr := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
			if _, err := s.db.LockApplicationTx(ctx, tx, session.ApplicationID); err != nil {
				return err
			}
			next, err = s.db.NextDocumentVersionTx(ctx, tx, session.ApplicationID, session.DocType)
			return err
		})
		if retryErr != nil {
			return nil, apperrors.Internal(retryErr)
		}
		doc, err = s.recordUpload(ctx, session, size, next)
	}
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("document version conflict")
		}
		return nil, asAppError(err)
	}

	if err := s.redis.DeleteUploadSession(ctx, uploadID); err != nil {
		s.logger.Warn("Failed to delete finished upload session",
			zap.String("upload_id", uploadID),
			zap.Error(err))
	}

	s.logger.Info("After-doc upload finalized",
		zap.String("folio", session.Folio),
		zap.String("doc_type", string(session.DocType)),
		zap.Int("version", doc.Version))

	return doc, nil
}

// recordUpload inserta la fila antes de mover los bytes: la fila reserva
// el número de versión, así una violación de unicidad sale con los bytes
// pendientes intactos y sin pisar una versión ya confirmada.
func (s *DocumentService) recordUpload(ctx context.Context, session *storage.UploadSession, size int64, version int) (*models.ApplicationDocument, error) {
	doc := &models.ApplicationDocument{
		ID:            uuid.New(),
		ApplicationID: session.ApplicationID,
		DocType:       session.DocType,
		Phase:         models.PhaseDespues,
		Version:       version,
		FileName:      session.FileName,
		FilePath:      s.files.DocPath(session.ApplicationID, string(session.DocType), version),
		MimeType:      session.MimeType,
		FileSize:      size,
		UploadedAt:    time.Now(),
	}

	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.db.InsertDocumentTx(ctx, tx, doc); err != nil {
			return err
		}
		path, err := s.files.Promote(session.UploadID, session.ApplicationID, string(session.DocType), version)
		if err != nil {
			return err
		}
		doc.FilePath = path
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListDocuments todas las versiones de la solicitud para personal interno
func (s *DocumentService) ListDocuments(ctx context.Context, applicationID uuid.UUID) ([]models.ApplicationDocument, error) {
	docs, err := s.db.GetDocuments(ctx, applicationID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return docs, nil
}

// SweepExpired elimina bytes pendientes cuya sesión ya expiró; lo corre el cron
func (s *DocumentService) SweepExpired(ctx context.Context) {
	removed, err := s.files.SweepPending(s.sessionTTL, func(uploadID string) bool {
		live, err := s.redis.HasUploadSession(ctx, uploadID)
		if err != nil {
			// Ante la duda se conserva; el siguiente barrido lo reintenta
			return true
		}
		return live
	})
	if err != nil {
		s.logger.Error("Pending upload sweep failed", zap.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Info("Stale pending uploads removed", zap.Int("count", removed))
	}
}

func (s *DocumentService) lookupByFolioAndEmail(ctx context.Context, folio, email string) (*models.Application, error) {
	if err := ValidateFolio(folio); err != nil {
		return nil, err
	}
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	app, err := s.db.GetApplicationByFolio(ctx, folio)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if app == nil {
		return nil, apperrors.NotFound("application")
	}

	candidate, err := s.db.GetCandidateByID(ctx, app.CandidateID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if candidate == nil || !strings.EqualFold(candidate.Email, strings.TrimSpace(email)) {
		return nil, apperrors.NotFound("application")
	}

	return app, nil
}

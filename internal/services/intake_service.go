package services

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/apperrors"
	"github.com/MemoRT22/Vacantes-sub000/internal/models"
	"github.com/MemoRT22/Vacantes-sub000/internal/storage"
)

// IntakeService punto único de entrada donde nace una solicitud
type IntakeService struct {
	db     *storage.Database
	files  *storage.FileStore
	logger *zap.Logger
}

// NewIntakeService crea el servicio de recepción
func NewIntakeService(db *storage.Database, files *storage.FileStore, logger *zap.Logger) *IntakeService {
	return &IntakeService{
		db:     db,
		files:  files,
		logger: logger,
	}
}

// CandidateInput datos del candidato al aplicar
type CandidateInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// IntakeFile documento NECESARIO entregado al aplicar
type IntakeFile struct {
	DocType  models.DocumentType
	FileName string
	MimeType string
	Content  io.Reader
}

// ApplyResult folio y estado que se regresan al candidato
type ApplyResult struct {
	Folio  string                   `json:"folio"`
	Status models.ApplicationStatus `json:"status"`
}

// Apply crea o reutiliza la solicitud del par (vacante, candidato).
// Es idempotente: un segundo intento del mismo par regresa el folio existente.
func (s *IntakeService) Apply(ctx context.Context, vacancyID uuid.UUID, candidate CandidateInput, files []IntakeFile) (*ApplyResult, error) {
	candidate.FullName = strings.TrimSpace(candidate.FullName)
	candidate.Email = strings.TrimSpace(strings.ToLower(candidate.Email))
	candidate.Phone = strings.TrimSpace(candidate.Phone)

	if candidate.FullName == "" {
		return nil, apperrors.ValidationField("full_name", "full name is required")
	}
	if err := ValidateEmail(candidate.Email); err != nil {
		return nil, err
	}
	for _, file := range files {
		if !models.IsValidDocumentType(file.DocType) {
			return nil, apperrors.ValidationField("doc_type", "unknown document type "+string(file.DocType))
		}
	}

	vacancy, err := s.db.GetVacancyByID(ctx, vacancyID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if vacancy == nil {
		return nil, apperrors.NotFound("vacancy")
	}
	if !vacancy.IsActive {
		return nil, apperrors.Inactive("vacancy")
	}

	result, err := s.apply(ctx, vacancy, candidate, files)
	if err != nil && (storage.IsUniqueViolation(err) || storage.IsSerializationFailure(err)) {
		// Perdimos la carrera del par (vacante, candidato) o un conflicto
		// transitorio; un reintento resuelve al folio ya existente.
		s.logger.Info("Intake conflict, retrying once",
			zap.String("vacancy_id", vacancyID.String()),
			zap.String("email", candidate.Email))
		result, err = s.apply(ctx, vacancy, candidate, files)
	}
	if err != nil {
		if appErr, ok := err.(*apperrors.Error); ok {
			return nil, appErr
		}
		return nil, apperrors.Internal(err)
	}

	return result, nil
}

func (s *IntakeService) apply(ctx context.Context, vacancy *models.Vacancy, candidate CandidateInput, files []IntakeFile) (*ApplyResult, error) {
	var result *ApplyResult
	var wroteDocsFor uuid.UUID

	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		cand, err := s.db.UpsertCandidateTx(ctx, tx, candidate.Email, candidate.FullName, candidate.Phone)
		if err != nil {
			return err
		}

		existing, err := s.db.GetApplicationByPairTx(ctx, tx, vacancy.ID, cand.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			result = &ApplyResult{Folio: existing.Folio, Status: existing.Status}
			return nil
		}

		now := time.Now()
		year := now.Year()
		seq, err := s.db.NextFolioSeqTx(ctx, tx, year)
		if err != nil {
			return err
		}

		app := &models.Application{
			ID:          uuid.New(),
			Folio:       storage.FormatFolio(year, seq),
			FolioYear:   year,
			FolioSeq:    seq,
			CandidateID: cand.ID,
			VacancyID:   vacancy.ID,
			Status:      models.StatusRevisionDeDocumentos,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.db.CreateApplicationTx(ctx, tx, app); err != nil {
			return err
		}

		// El núcleo solo registra lo entregado; no valida que el juego
		// NECESARIO esté completo.
		for _, file := range files {
			wroteDocsFor = app.ID
			path, size, err := s.files.Write(app.ID, string(file.DocType), 1, file.Content)
			if err != nil {
				return err
			}
			doc := &models.ApplicationDocument{
				ID:            uuid.New(),
				ApplicationID: app.ID,
				DocType:       file.DocType,
				Phase:         models.PhaseNecesario,
				Version:       1,
				FileName:      file.FileName,
				FilePath:      path,
				MimeType:      file.MimeType,
				FileSize:      size,
				UploadedAt:    now,
			}
			if err := s.db.InsertDocumentTx(ctx, tx, doc); err != nil {
				return err
			}
		}

		entry := &models.AuditLogEntry{
			ApplicationID: app.ID,
			Action:        models.ActionApplicationCreate,
			ToStatus:      models.StatusRevisionDeDocumentos,
			Note:          "application created with " + storage.FormatFolio(year, seq),
		}
		if err := s.db.AppendAuditTx(ctx, tx, entry); err != nil {
			return err
		}

		s.logger.Info("Application created",
			zap.String("folio", app.Folio),
			zap.String("vacancy_id", vacancy.ID.String()),
			zap.String("candidate_id", cand.ID.String()))

		result = &ApplyResult{Folio: app.Folio, Status: app.Status}
		return nil
	})
	if err != nil {
		// La transacción abortó: los bytes ya escritos quedarían huérfanos
		// bajo un id de solicitud que nunca existió.
		if wroteDocsFor != uuid.Nil {
			if rmErr := s.files.RemoveDocs(wroteDocsFor); rmErr != nil {
				s.logger.Warn("Failed to remove intake files after rollback",
					zap.String("application_id", wroteDocsFor.String()),
					zap.Error(rmErr))
			}
		}
		return nil, err
	}

	return result, nil
}

// GetStatusByFolio consulta pública de estado validando el formato del folio
func (s *IntakeService) GetStatusByFolio(ctx context.Context, folio string) (*ApplyResult, error) {
	if err := ValidateFolio(folio); err != nil {
		return nil, err
	}

	app, err := s.db.GetApplicationByFolio(ctx, folio)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if app == nil {
		return nil, apperrors.NotFound("application")
	}

	return &ApplyResult{Folio: app.Folio, Status: app.Status}, nil
}

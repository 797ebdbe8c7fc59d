package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/apperrors"
	"github.com/MemoRT22/Vacantes-sub000/internal/models"
	"github.com/MemoRT22/Vacantes-sub000/internal/storage"
)

// ManagerInterviewService captura del resultado de la entrevista con el manager
type ManagerInterviewService struct {
	db     *storage.Database
	logger *zap.Logger
}

// NewManagerInterviewService crea el servicio de entrevista con el manager
func NewManagerInterviewService(db *storage.Database, logger *zap.Logger) *ManagerInterviewService {
	return &ManagerInterviewService{
		db:     db,
		logger: logger,
	}
}

// SaveResult guarda o corrige calificación y notas. Disponible mientras la
// solicitud no sea terminal; no hay finalize propio, el cierre del pipeline
// lo congela. Solo el manager asignado a la vacante puede capturar.
func (s *ManagerInterviewService) SaveResult(ctx context.Context, applicationID uuid.UUID, score int, notes string, actorID uuid.UUID, actorRole models.StaffRole) (*models.ManagerInterview, error) {
	if err := requireRole(actorRole, models.RoleManager); err != nil {
		return nil, err
	}
	if score < models.MinManagerScore || score > models.MaxManagerScore {
		return nil, apperrors.OutOfRange("score", models.MinManagerScore, models.MaxManagerScore)
	}

	var interview *models.ManagerInterview
	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		app, err := s.db.LockApplicationTx(ctx, tx, applicationID)
		if err != nil {
			return err
		}
		if app == nil {
			return apperrors.NotFound("application")
		}
		if models.IsTerminal(app.Status) {
			return apperrors.AlreadyFinalized()
		}

		vacancy, err := s.db.GetVacancyByID(ctx, app.VacancyID)
		if err != nil {
			return err
		}
		if vacancy == nil {
			return apperrors.NotFound("vacancy")
		}
		if vacancy.ManagerID != actorID {
			return apperrors.Forbidden("application belongs to another manager")
		}

		interview = &models.ManagerInterview{
			ApplicationID: applicationID,
			Score:         score,
			Notes:         notes,
			UpdatedAt:     time.Now(),
		}
		return s.db.UpsertManagerInterviewTx(ctx, tx, interview)
	})
	if err != nil {
		return nil, asAppError(err)
	}

	s.logger.Info("Manager interview result saved",
		zap.String("application_id", applicationID.String()),
		zap.Int("score", score))

	return interview, nil
}

// Get regresa el resultado capturado, si existe
func (s *ManagerInterviewService) Get(ctx context.Context, applicationID uuid.UUID) (*models.ManagerInterview, error) {
	interview, err := s.db.GetManagerInterview(ctx, applicationID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if interview == nil {
		return nil, apperrors.NotFound("manager interview")
	}
	return interview, nil
}

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

// PipelineService dueño del estado de la solicitud y de sus transiciones.
// Toda mutación bloquea la fila de la solicitud (FOR UPDATE) y deja
// una entrada en la bitácora dentro de la misma transacción.
type PipelineService struct {
	db     *storage.Database
	logger *zap.Logger
}

// NewPipelineService crea el servicio del pipeline
func NewPipelineService(db *storage.Database, logger *zap.Logger) *PipelineService {
	return &PipelineService{
		db:     db,
		logger: logger,
	}
}

// ScheduleRHInterview agenda o reagenda la entrevista con RH.
// Legal solo en RevisionDeDocumentos o EntrevistaConRH; desde el primero
// además avanza el estado.
func (s *PipelineService) ScheduleRHInterview(ctx context.Context, applicationID uuid.UUID, at time.Time, place string, actorID uuid.UUID, actorRole models.StaffRole) (*models.Application, error) {
	if err := requireRole(actorRole, models.RoleRH); err != nil {
		return nil, err
	}
	if place == "" {
		return nil, apperrors.ValidationField("location", "interview location is required")
	}

	var app *models.Application
	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		app, err = s.db.LockApplicationTx(ctx, tx, applicationID)
		if err != nil {
			return err
		}
		if app == nil {
			return apperrors.NotFound("application")
		}

		if app.Status != models.StatusRevisionDeDocumentos && app.Status != models.StatusEntrevistaConRH {
			return apperrors.InvalidTransition(string(app.Status), string(models.StatusEntrevistaConRH))
		}

		if err := s.db.SetRHScheduleTx(ctx, tx, app.ID, at, place); err != nil {
			return err
		}

		if app.Status == models.StatusRevisionDeDocumentos {
			if err := s.advanceTx(ctx, tx, app, models.StatusEntrevistaConRH, models.ActionScheduleRH, actorID, "RH interview scheduled at "+place); err != nil {
				return err
			}
		}
		app.RHInterviewAt = &at
		app.RHInterviewPlace = &place
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}

	return app, nil
}

// ScheduleManagerInterview agenda la entrevista con el manager.
// Requiere la entrevista con RH terminada.
func (s *PipelineService) ScheduleManagerInterview(ctx context.Context, applicationID uuid.UUID, at time.Time, place string, actorID uuid.UUID, actorRole models.StaffRole) (*models.Application, error) {
	if err := requireRole(actorRole, models.RoleRH); err != nil {
		return nil, err
	}
	if place == "" {
		return nil, apperrors.ValidationField("location", "interview location is required")
	}

	var app *models.Application
	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		app, err = s.db.LockApplicationTx(ctx, tx, applicationID)
		if err != nil {
			return err
		}
		if app == nil {
			return apperrors.NotFound("application")
		}

		if app.Status != models.StatusEntrevistaConRH && app.Status != models.StatusEntrevistaConManager {
			return apperrors.InvalidTransition(string(app.Status), string(models.StatusEntrevistaConManager))
		}

		interview, err := s.db.GetRHInterviewTx(ctx, tx, app.ID)
		if err != nil {
			return err
		}
		if !interview.Finished() {
			return apperrors.PreconditionNotMet("rh_interview_finished")
		}

		if err := s.db.SetManagerScheduleTx(ctx, tx, app.ID, at, place); err != nil {
			return err
		}

		if app.Status == models.StatusEntrevistaConRH {
			if err := s.advanceTx(ctx, tx, app, models.StatusEntrevistaConManager, models.ActionScheduleManager, actorID, "manager interview scheduled at "+place); err != nil {
				return err
			}
		}
		app.MgrInterviewAt = &at
		app.MgrInterviewPlace = &place
		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}

	return app, nil
}

// StartEvaluation desbloquea la evaluación final.
// Requiere la entrevista con RH terminada y el resultado del manager capturado.
func (s *PipelineService) StartEvaluation(ctx context.Context, applicationID uuid.UUID, actorID uuid.UUID, actorRole models.StaffRole) (*models.Application, error) {
	if err := requireRole(actorRole, models.RoleRH); err != nil {
		return nil, err
	}

	var app *models.Application
	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		var err error
		app, err = s.db.LockApplicationTx(ctx, tx, applicationID)
		if err != nil {
			return err
		}
		if app == nil {
			return apperrors.NotFound("application")
		}

		if app.Status != models.StatusEntrevistaConManager {
			return apperrors.InvalidTransition(string(app.Status), string(models.StatusEvaluando))
		}

		var missing []string
		rhInterview, err := s.db.GetRHInterviewTx(ctx, tx, app.ID)
		if err != nil {
			return err
		}
		if !rhInterview.Finished() {
			missing = append(missing, "rh_interview_finished")
		}
		mgrInterview, err := s.db.GetManagerInterviewTx(ctx, tx, app.ID)
		if err != nil {
			return err
		}
		if mgrInterview == nil {
			missing = append(missing, "manager_interview")
		}
		if len(missing) > 0 {
			return apperrors.PreconditionNotMet(missing...)
		}

		return s.advanceTx(ctx, tx, app, models.StatusEvaluando, models.ActionStartEvaluation, actorID, "evaluation started")
	})
	if err != nil {
		return nil, asAppError(err)
	}

	return app, nil
}

// Finalize aplica la decisión terminal. El candado de la fila garantiza
// que solo una de dos llamadas concurrentes gane; la otra observa
// AlreadyFinalized. Las precondiciones de completitud las revalida
// EvaluationService antes de delegar aquí.
func (s *PipelineService) Finalize(ctx context.Context, tx *sqlx.Tx, app *models.Application, decision models.ApplicationStatus, actorID uuid.UUID) error {
	if !models.IsDecision(decision) {
		return apperrors.ValidationField("decision", "decision must be Aceptado or Rechazado")
	}
	if models.IsTerminal(app.Status) {
		return apperrors.AlreadyFinalized()
	}
	if app.Status != models.StatusEvaluando {
		return apperrors.InvalidTransition(string(app.Status), string(decision))
	}

	return s.advanceTx(ctx, tx, app, decision, models.ActionFinalize, actorID, "decision: "+string(decision))
}

// advanceTx aplica la transición ya validada y escribe la bitácora
func (s *PipelineService) advanceTx(ctx context.Context, tx *sqlx.Tx, app *models.Application, to models.ApplicationStatus, action string, actorID uuid.UUID, note string) error {
	if !models.CanTransition(app.Status, to) {
		return apperrors.InvalidTransition(string(app.Status), string(to))
	}

	if err := s.db.UpdateApplicationStatusTx(ctx, tx, app.ID, to); err != nil {
		return err
	}

	from := app.Status
	entry := &models.AuditLogEntry{
		ApplicationID: app.ID,
		Action:        action,
		FromStatus:    &from,
		ToStatus:      to,
		ActorID:       &actorID,
		Note:          note,
	}
	if err := s.db.AppendAuditTx(ctx, tx, entry); err != nil {
		return err
	}

	s.logger.Info("Application status changed",
		zap.String("folio", app.Folio),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("action", action))

	app.Status = to
	return nil
}

// asAppError conserva errores tipados y envuelve el resto como interno
func asAppError(err error) error {
	if appErr, ok := err.(*apperrors.Error); ok {
		return appErr
	}
	return apperrors.Internal(err)
}

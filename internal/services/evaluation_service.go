package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/apperrors"
	"github.com/MemoRT22/Vacantes-sub000/internal/models"
	"github.com/MemoRT22/Vacantes-sub000/internal/storage"
)

// EvaluationService cédula de 16 criterios y compuerta del cierre
type EvaluationService struct {
	db       *storage.Database
	pipeline *PipelineService
	logger   *zap.Logger
}

// NewEvaluationService crea el servicio de evaluación
func NewEvaluationService(db *storage.Database, pipeline *PipelineService, logger *zap.Logger) *EvaluationService {
	return &EvaluationService{
		db:       db,
		pipeline: pipeline,
		logger:   logger,
	}
}

// ScoreInput calificación de un criterio
type ScoreInput struct {
	Criterion models.CriterionID `json:"criterion"`
	Score     int                `json:"score"`
}

// SummaryInput campos del resumen final
type SummaryInput struct {
	FactorsFor           string  `json:"factors_for"`
	FactorsAgainst       string  `json:"factors_against"`
	Conclusion           string  `json:"conclusion"`
	ReferenciasLaborales *string `json:"references_laborales,omitempty"`
}

// EvaluationView cédula completa para consulta
type EvaluationView struct {
	Scores  []models.EvaluationScore  `json:"scores"`
	Summary *models.EvaluationSummary `json:"summary,omitempty"`
}

// validateScoreSet exige exactamente una calificación por criterio, cada una en rango
func validateScoreSet(scores []ScoreInput) (map[models.CriterionID]int, error) {
	if len(scores) != models.CriterionCount {
		return nil, apperrors.IncompleteScoreSet("exactly 16 criterion scores are required").
			WithDetail("received", len(scores))
	}

	set := make(map[models.CriterionID]int, len(scores))
	for _, score := range scores {
		if !models.IsValidCriterion(score.Criterion) {
			return nil, apperrors.ValidationField("criterion", "unknown criterion "+string(score.Criterion))
		}
		if _, dup := set[score.Criterion]; dup {
			return nil, apperrors.ValidationField("criterion", "duplicate criterion "+string(score.Criterion))
		}
		if score.Score < models.MinCriterionScore || score.Score > models.MaxCriterionScore {
			return nil, apperrors.OutOfRange(string(score.Criterion), models.MinCriterionScore, models.MaxCriterionScore)
		}
		set[score.Criterion] = score.Score
	}
	return set, nil
}

// SaveScores guarda el juego completo de calificaciones, todo o nada.
// Puede repetirse para afinar valores antes del cierre.
func (s *EvaluationService) SaveScores(ctx context.Context, applicationID uuid.UUID, scores []ScoreInput, actorID uuid.UUID, actorRole models.StaffRole) error {
	if err := requireRole(actorRole, models.RoleRH); err != nil {
		return err
	}

	set, err := validateScoreSet(scores)
	if err != nil {
		return err
	}

	err = s.db.InTx(ctx, func(tx *sqlx.Tx) error {
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
		if app.Status != models.StatusEvaluando {
			return apperrors.InvalidTransition(string(app.Status), string(models.StatusEvaluando))
		}

		return s.db.UpsertEvaluationScoresTx(ctx, tx, applicationID, set)
	})
	if err != nil {
		return asAppError(err)
	}

	return nil
}

// SaveSummary guarda el resumen; tres campos obligatorios, referencias opcional
func (s *EvaluationService) SaveSummary(ctx context.Context, applicationID uuid.UUID, input SummaryInput, actorID uuid.UUID, actorRole models.StaffRole) error {
	if err := requireRole(actorRole, models.RoleRH); err != nil {
		return err
	}

	if strings.TrimSpace(input.FactorsFor) == "" {
		return apperrors.ValidationField("factors_for", "factors_for is required")
	}
	if strings.TrimSpace(input.FactorsAgainst) == "" {
		return apperrors.ValidationField("factors_against", "factors_against is required")
	}
	if strings.TrimSpace(input.Conclusion) == "" {
		return apperrors.ValidationField("conclusion", "conclusion is required")
	}

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
		if app.Status != models.StatusEvaluando {
			return apperrors.InvalidTransition(string(app.Status), string(models.StatusEvaluando))
		}

		summary := &models.EvaluationSummary{
			ApplicationID:        applicationID,
			FactorsFor:           input.FactorsFor,
			FactorsAgainst:       input.FactorsAgainst,
			Conclusion:           input.Conclusion,
			ReferenciasLaborales: input.ReferenciasLaborales,
			UpdatedAt:            time.Now(),
		}
		return s.db.UpsertEvaluationSummaryTx(ctx, tx, summary)
	})
	if err != nil {
		return asAppError(err)
	}

	return nil
}

// Finalize revalida la completitud, persiste el total y delega la transición
// terminal al pipeline dentro de la misma transacción. El total es informativo:
// la decisión la toma el evaluador, no un umbral.
func (s *EvaluationService) Finalize(ctx context.Context, applicationID uuid.UUID, decision models.ApplicationStatus, actorID uuid.UUID, actorRole models.StaffRole) (*models.Application, error) {
	if err := requireRole(actorRole, models.RoleRH); err != nil {
		return nil, err
	}
	if !models.IsDecision(decision) {
		return nil, apperrors.ValidationField("decision", "decision must be Aceptado or Rechazado")
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
		if models.IsTerminal(app.Status) {
			return apperrors.AlreadyFinalized()
		}
		if app.Status != models.StatusEvaluando {
			return apperrors.InvalidTransition(string(app.Status), string(decision))
		}

		scores, err := s.db.GetEvaluationScoresTx(ctx, tx, applicationID)
		if err != nil {
			return err
		}
		if len(scores) != models.CriterionCount {
			return apperrors.IncompleteScoreSet("all 16 criterion scores must be present before finalize").
				WithDetail("present", len(scores))
		}

		summary, err := s.db.GetEvaluationSummaryTx(ctx, tx, applicationID)
		if err != nil {
			return err
		}
		if summary == nil ||
			strings.TrimSpace(summary.FactorsFor) == "" ||
			strings.TrimSpace(summary.FactorsAgainst) == "" ||
			strings.TrimSpace(summary.Conclusion) == "" {
			return apperrors.PreconditionNotMet("evaluation_summary")
		}

		total := 0
		for _, score := range scores {
			total += score.Score
		}
		if err := s.db.SetEvaluationTotalTx(ctx, tx, applicationID, total); err != nil {
			return err
		}

		return s.pipeline.Finalize(ctx, tx, app, decision, actorID)
	})
	if err != nil {
		return nil, asAppError(err)
	}

	return app, nil
}

// Get regresa la cédula capturada de la solicitud
func (s *EvaluationService) Get(ctx context.Context, applicationID uuid.UUID) (*EvaluationView, error) {
	scores, err := s.db.GetEvaluationScores(ctx, applicationID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	summary, err := s.db.GetEvaluationSummary(ctx, applicationID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &EvaluationView{Scores: scores, Summary: summary}, nil
}

// Criteria regresa el catálogo fijo de criterios con grupo y orden
func (s *EvaluationService) Criteria() []models.Criterion {
	return models.EvaluationCriteria
}

package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/apperrors"
	"github.com/MemoRT22/Vacantes-sub000/internal/models"
	"github.com/MemoRT22/Vacantes-sub000/internal/storage"
)

// RHInterviewService captura estructurada de la entrevista con RH
type RHInterviewService struct {
	db     *storage.Database
	logger *zap.Logger
}

// NewRHInterviewService crea el servicio de entrevista con RH
func NewRHInterviewService(db *storage.Database, logger *zap.Logger) *RHInterviewService {
	return &RHInterviewService{
		db:     db,
		logger: logger,
	}
}

// AnswerInput respuesta a una pregunta del banco
type AnswerInput struct {
	QuestionID uuid.UUID `json:"question_id"`
	Answer     string    `json:"answer"`
}

// ExtraInput pregunta libre con su respuesta
type ExtraInput struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// InterviewView entrevista con su banco congelado y capturas
type InterviewView struct {
	Interview *models.RHInterview      `json:"interview"`
	Questions []models.BankQuestion    `json:"questions"`
	Answers   []models.InterviewAnswer `json:"answers"`
	Extras    []models.ExtraQuestion   `json:"extra_questions"`
}

// Start crea la entrevista congelando la versión activa del banco.
// La referencia apunta a una versión inmutable: activar un banco nuevo
// después no cambia esta entrevista.
func (s *RHInterviewService) Start(ctx context.Context, applicationID uuid.UUID, actorID uuid.UUID, actorRole models.StaffRole) (*models.RHInterview, error) {
	if err := requireRole(actorRole, models.RoleRH); err != nil {
		return nil, err
	}

	app, err := s.db.GetApplicationByID(ctx, applicationID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if app == nil {
		return nil, apperrors.NotFound("application")
	}
	if app.Status != models.StatusEntrevistaConRH {
		return nil, apperrors.InvalidTransition(string(app.Status), string(models.StatusEntrevistaConRH))
	}

	existing, err := s.db.GetRHInterview(ctx, applicationID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("rh interview already started")
	}

	vacancy, err := s.db.GetVacancyByID(ctx, app.VacancyID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if vacancy == nil {
		return nil, apperrors.NotFound("vacancy")
	}

	bank, err := s.db.GetActiveBankVersion(ctx, vacancy.Kind)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if bank == nil {
		return nil, apperrors.NotFound("question bank")
	}

	interview := &models.RHInterview{
		ID:            uuid.New(),
		ApplicationID: applicationID,
		BankVersionID: bank.ID,
		StartedAt:     time.Now(),
	}

	err = s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		return s.db.CreateRHInterviewTx(ctx, tx, interview)
	})
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("rh interview already started")
		}
		return nil, apperrors.Internal(err)
	}

	s.logger.Info("RH interview started",
		zap.String("folio", app.Folio),
		zap.String("bank_version_id", bank.ID.String()))

	return interview, nil
}

// SaveDraft guarda respuestas y preguntas libres; legal mientras la
// entrevista no esté cerrada y no toca el estado de la solicitud.
func (s *RHInterviewService) SaveDraft(ctx context.Context, applicationID uuid.UUID, answers []AnswerInput, extras []ExtraInput, actorID uuid.UUID, actorRole models.StaffRole) error {
	if err := requireRole(actorRole, models.RoleRH); err != nil {
		return err
	}

	// El candado de la entrevista serializa borradores contra el cierre:
	// la verificación de finished_at y las escrituras van en la misma transacción.
	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		interview, err := s.db.LockRHInterviewTx(ctx, tx, applicationID)
		if err != nil {
			return err
		}
		if interview == nil {
			return apperrors.NotFound("rh interview")
		}
		if interview.Finished() {
			return apperrors.AlreadyFinalized()
		}

		// La versión del banco es inmutable, leerla fuera del candado es seguro
		questions, err := s.db.GetBankQuestions(ctx, interview.BankVersionID)
		if err != nil {
			return err
		}
		known := make(map[uuid.UUID]bool, len(questions))
		for _, q := range questions {
			known[q.ID] = true
		}
		for _, answer := range answers {
			if !known[answer.QuestionID] {
				return apperrors.ValidationField("question_id", "question "+answer.QuestionID.String()+" is not part of the interview snapshot")
			}
		}

		for _, answer := range answers {
			row := &models.InterviewAnswer{
				InterviewID: interview.ID,
				QuestionID:  answer.QuestionID,
				Answer:      answer.Answer,
			}
			if err := s.db.UpsertInterviewAnswerTx(ctx, tx, row); err != nil {
				return err
			}
		}

		rows := make([]models.ExtraQuestion, 0, len(extras))
		for _, extra := range extras {
			rows = append(rows, models.ExtraQuestion{Question: extra.Question, Answer: extra.Answer})
		}
		return s.db.ReplaceExtraQuestionsTx(ctx, tx, interview.ID, rows)
	})
	if err != nil {
		return asAppError(err)
	}

	return nil
}

// Finalize cierra la entrevista. Toda pregunta is_required del banco
// congelado debe tener respuesta no vacía; después todo es solo lectura.
func (s *RHInterviewService) Finalize(ctx context.Context, applicationID uuid.UUID, actorID uuid.UUID, actorRole models.StaffRole) error {
	if err := requireRole(actorRole, models.RoleRH); err != nil {
		return err
	}

	// Completitud y cierre bajo el mismo candado: ningún borrador puede
	// colarse entre la verificación y el finished_at.
	err := s.db.InTx(ctx, func(tx *sqlx.Tx) error {
		interview, err := s.db.LockRHInterviewTx(ctx, tx, applicationID)
		if err != nil {
			return err
		}
		if interview == nil {
			return apperrors.NotFound("rh interview")
		}
		if interview.Finished() {
			return apperrors.AlreadyFinalized()
		}

		questions, err := s.db.GetBankQuestions(ctx, interview.BankVersionID)
		if err != nil {
			return err
		}
		answers, err := s.db.GetInterviewAnswersTx(ctx, tx, interview.ID)
		if err != nil {
			return err
		}

		answered := make(map[uuid.UUID]string, len(answers))
		for _, a := range answers {
			answered[a.QuestionID] = a.Answer
		}

		var unmet []string
		for _, q := range questions {
			if q.IsRequired && strings.TrimSpace(answered[q.ID]) == "" {
				unmet = append(unmet, q.ID.String())
			}
		}
		if len(unmet) > 0 {
			sort.Strings(unmet)
			return apperrors.MissingRequiredAnswers(unmet)
		}

		closed, err := s.db.FinishRHInterviewTx(ctx, tx, interview.ID, time.Now())
		if err != nil {
			return err
		}
		if !closed {
			return apperrors.AlreadyFinalized()
		}
		return nil
	})
	if err != nil {
		return asAppError(err)
	}

	s.logger.Info("RH interview finalized",
		zap.String("application_id", applicationID.String()))

	return nil
}

// Get regresa la entrevista con su banco congelado y lo capturado
func (s *RHInterviewService) Get(ctx context.Context, applicationID uuid.UUID) (*InterviewView, error) {
	interview, err := s.db.GetRHInterview(ctx, applicationID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if interview == nil {
		return nil, apperrors.NotFound("rh interview")
	}

	questions, err := s.db.GetBankQuestions(ctx, interview.BankVersionID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	answers, err := s.db.GetInterviewAnswers(ctx, interview.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	extras, err := s.db.GetExtraQuestions(ctx, interview.ID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &InterviewView{
		Interview: interview,
		Questions: questions,
		Answers:   answers,
		Extras:    extras,
	}, nil
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/api/middleware"
	"github.com/MemoRT22/Vacantes-sub000/internal/models"
	"github.com/MemoRT22/Vacantes-sub000/internal/services"
	"github.com/MemoRT22/Vacantes-sub000/pkg/utils"
)

// EvaluationHandler cédula de evaluación y decisión final
type EvaluationHandler struct {
	evaluation *services.EvaluationService
	logger     *zap.Logger
}

func NewEvaluationHandler(evaluation *services.EvaluationService, logger *zap.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		evaluation: evaluation,
		logger:     logger,
	}
}

func (h *EvaluationHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/criteria", h.Criteria)
	r.Get("/{applicationID}", h.Get)
	r.Put("/{applicationID}/scores", h.SaveScores)
	r.Put("/{applicationID}/summary", h.SaveSummary)
	r.Post("/{applicationID}/finalize", h.Finalize)

	return r
}

type ScoresRequest struct {
	Scores []services.ScoreInput `json:"scores"`
}

type FinalizeRequest struct {
	Decision models.ApplicationStatus `json:"decision"`
}

// Criteria catálogo fijo de los 16 criterios en orden de cédula
func (h *EvaluationHandler) Criteria(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, h.evaluation.Criteria())
}

// SaveScores guarda el juego completo de calificaciones
func (h *EvaluationHandler) SaveScores(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := applicationIDParam(r)
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	var req ScoresRequest
	if err := utils.BindJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.evaluation.SaveScores(r.Context(), applicationID, req.Scores,
		middleware.GetStaffID(r.Context()), middleware.GetStaffRole(r.Context()))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteMessage(w, "Scores saved")
}

// SaveSummary guarda el resumen cualitativo de la cédula
func (h *EvaluationHandler) SaveSummary(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := applicationIDParam(r)
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	var req services.SummaryInput
	if err := utils.BindJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.evaluation.SaveSummary(r.Context(), applicationID, req,
		middleware.GetStaffID(r.Context()), middleware.GetStaffRole(r.Context()))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteMessage(w, "Summary saved")
}

// Finalize emite la decisión Aceptado o Rechazado, a lo más una vez
func (h *EvaluationHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := applicationIDParam(r)
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	var req FinalizeRequest
	if err := utils.BindJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, err := h.evaluation.Finalize(r.Context(), applicationID, req.Decision,
		middleware.GetStaffID(r.Context()), middleware.GetStaffRole(r.Context()))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, app)
}

// Get cédula completa: calificaciones, resumen y total si ya hay decisión
func (h *EvaluationHandler) Get(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := applicationIDParam(r)
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	view, err := h.evaluation.Get(r.Context(), applicationID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, view)
}

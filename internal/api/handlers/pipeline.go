package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/api/middleware"
	"github.com/MemoRT22/Vacantes-sub000/internal/services"
	"github.com/MemoRT22/Vacantes-sub000/internal/storage"
	"github.com/MemoRT22/Vacantes-sub000/pkg/utils"
)

// PipelineHandler avances de etapa y bitácora de una solicitud
type PipelineHandler struct {
	pipeline *services.PipelineService
	db       *storage.Database
	logger   *zap.Logger
}

func NewPipelineHandler(pipeline *services.PipelineService, db *storage.Database, logger *zap.Logger) *PipelineHandler {
	return &PipelineHandler{
		pipeline: pipeline,
		db:       db,
		logger:   logger,
	}
}

func (h *PipelineHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{applicationID}", h.GetApplication)
	r.Get("/{applicationID}/audit", h.GetAuditTrail)
	r.Post("/{applicationID}/schedule-rh", h.ScheduleRH)
	r.Post("/{applicationID}/schedule-manager", h.ScheduleManager)
	r.Post("/{applicationID}/start-evaluation", h.StartEvaluation)

	return r
}

type ScheduleRequest struct {
	At    time.Time `json:"at"`
	Place string    `json:"place"`
}

func applicationIDParam(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "applicationID"))
	return id, err == nil
}

// GetApplication consulta interna de una solicitud
func (h *PipelineHandler) GetApplication(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := applicationIDParam(r)
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	app, err := h.db.GetApplicationByID(r.Context(), applicationID)
	if err != nil {
		h.logger.Error("Failed to get application", zap.Error(err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get application")
		return
	}
	if app == nil {
		utils.WriteNotFound(w, "Application")
		return
	}

	utils.WriteSuccess(w, app)
}

// GetAuditTrail bitácora ordenada de la solicitud
func (h *PipelineHandler) GetAuditTrail(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := applicationIDParam(r)
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	trail, err := h.db.GetAuditTrail(r.Context(), applicationID)
	if err != nil {
		h.logger.Error("Failed to get audit trail", zap.Error(err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to get audit trail")
		return
	}

	utils.WriteSuccess(w, trail)
}

// ScheduleRH agenda la entrevista con RH
func (h *PipelineHandler) ScheduleRH(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := applicationIDParam(r)
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	var req ScheduleRequest
	if err := utils.BindJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, err := h.pipeline.ScheduleRHInterview(r.Context(), applicationID, req.At, req.Place,
		middleware.GetStaffID(r.Context()), middleware.GetStaffRole(r.Context()))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, app)
}

// ScheduleManager agenda la entrevista con el manager
func (h *PipelineHandler) ScheduleManager(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := applicationIDParam(r)
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	var req ScheduleRequest
	if err := utils.BindJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	app, err := h.pipeline.ScheduleManagerInterview(r.Context(), applicationID, req.At, req.Place,
		middleware.GetStaffID(r.Context()), middleware.GetStaffRole(r.Context()))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, app)
}

// StartEvaluation pasa la solicitud a Evaluando
func (h *PipelineHandler) StartEvaluation(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := applicationIDParam(r)
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	app, err := h.pipeline.StartEvaluation(r.Context(), applicationID,
		middleware.GetStaffID(r.Context()), middleware.GetStaffRole(r.Context()))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, app)
}

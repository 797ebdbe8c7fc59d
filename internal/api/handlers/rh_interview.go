package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/api/middleware"
	"github.com/MemoRT22/Vacantes-sub000/internal/services"
	"github.com/MemoRT22/Vacantes-sub000/pkg/utils"
)

// RHInterviewHandler captura de la entrevista con RH
type RHInterviewHandler struct {
	interviews *services.RHInterviewService
	logger     *zap.Logger
}

func NewRHInterviewHandler(interviews *services.RHInterviewService, logger *zap.Logger) *RHInterviewHandler {
	return &RHInterviewHandler{
		interviews: interviews,
		logger:     logger,
	}
}

func (h *RHInterviewHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{applicationID}", h.Get)
	r.Post("/{applicationID}/start", h.Start)
	r.Put("/{applicationID}/draft", h.SaveDraft)
	r.Post("/{applicationID}/finalize", h.Finalize)

	return r
}

type DraftRequest struct {
	Answers []services.AnswerInput `json:"answers"`
	Extras  []services.ExtraInput  `json:"extra_questions"`
}

// Start abre la entrevista y congela el banco activo
func (h *RHInterviewHandler) Start(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := applicationIDParam(r)
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	interview, err := h.interviews.Start(r.Context(), applicationID,
		middleware.GetStaffID(r.Context()), middleware.GetStaffRole(r.Context()))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteCreated(w, interview)
}

// SaveDraft guarda respuestas parciales; se puede llamar varias veces
func (h *RHInterviewHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := applicationIDParam(r)
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	var req DraftRequest
	if err := utils.BindJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.interviews.SaveDraft(r.Context(), applicationID, req.Answers, req.Extras,
		middleware.GetStaffID(r.Context()), middleware.GetStaffRole(r.Context()))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteMessage(w, "Draft saved")
}

// Finalize cierra la entrevista; exige las preguntas obligatorias contestadas
func (h *RHInterviewHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := applicationIDParam(r)
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	err := h.interviews.Finalize(r.Context(), applicationID,
		middleware.GetStaffID(r.Context()), middleware.GetStaffRole(r.Context()))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteMessage(w, "Interview finalized")
}

// Get entrevista con banco congelado, respuestas y preguntas extra
func (h *RHInterviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := applicationIDParam(r)
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	view, err := h.interviews.Get(r.Context(), applicationID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, view)
}

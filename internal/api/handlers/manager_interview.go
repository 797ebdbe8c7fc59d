package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/api/middleware"
	"github.com/MemoRT22/Vacantes-sub000/internal/services"
	"github.com/MemoRT22/Vacantes-sub000/pkg/utils"
)

// ManagerInterviewHandler resultado de la entrevista con el manager
type ManagerInterviewHandler struct {
	interviews *services.ManagerInterviewService
	logger     *zap.Logger
}

func NewManagerInterviewHandler(interviews *services.ManagerInterviewService, logger *zap.Logger) *ManagerInterviewHandler {
	return &ManagerInterviewHandler{
		interviews: interviews,
		logger:     logger,
	}
}

func (h *ManagerInterviewHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{applicationID}", h.Get)
	r.Put("/{applicationID}", h.SaveResult)

	return r
}

type ManagerResultRequest struct {
	Score int    `json:"score"`
	Notes string `json:"notes"`
}

// SaveResult captura o corrige el resultado del manager asignado
func (h *ManagerInterviewHandler) SaveResult(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := applicationIDParam(r)
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	var req ManagerResultRequest
	if err := utils.BindJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	interview, err := h.interviews.SaveResult(r.Context(), applicationID, req.Score, req.Notes,
		middleware.GetStaffID(r.Context()), middleware.GetStaffRole(r.Context()))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, interview)
}

func (h *ManagerInterviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := applicationIDParam(r)
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	interview, err := h.interviews.Get(r.Context(), applicationID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}
	if interview == nil {
		utils.WriteNotFound(w, "Manager interview")
		return
	}

	utils.WriteSuccess(w, interview)
}

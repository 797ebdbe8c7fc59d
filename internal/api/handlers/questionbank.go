package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/api/middleware"
	"github.com/MemoRT22/Vacantes-sub000/internal/models"
	"github.com/MemoRT22/Vacantes-sub000/internal/services"
	"github.com/MemoRT22/Vacantes-sub000/pkg/utils"
)

// maxBankCSV límite del CSV del banco de preguntas (4 MiB)
const maxBankCSV = 4 << 20

// QuestionBankHandler versiones del banco de preguntas por tipo de vacante
type QuestionBankHandler struct {
	bank   *services.QuestionBankService
	logger *zap.Logger
}

func NewQuestionBankHandler(bank *services.QuestionBankService, logger *zap.Logger) *QuestionBankHandler {
	return &QuestionBankHandler{
		bank:   bank,
		logger: logger,
	}
}

func (h *QuestionBankHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{kind}", h.ListVersions)
	r.Post("/{kind}/import", h.Import)
	r.Get("/versions/{versionID}", h.GetVersion)

	return r
}

// Import crea una versión nueva del banco desde un CSV multipart
func (h *QuestionBankHandler) Import(w http.ResponseWriter, r *http.Request) {
	kind := models.VacancyKind(chi.URLParam(r, "kind"))

	if err := r.ParseMultipartForm(maxBankCSV); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}

	file, _, err := r.FormFile("questions")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Missing questions file")
		return
	}
	defer file.Close()

	activate, _ := strconv.ParseBool(r.FormValue("activate"))

	version, err := h.bank.Import(r.Context(), kind, file, activate,
		middleware.GetStaffID(r.Context()), middleware.GetStaffRole(r.Context()))
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteCreated(w, version)
}

// ListVersions versiones del banco de un tipo de vacante
func (h *QuestionBankHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	kind := models.VacancyKind(chi.URLParam(r, "kind"))

	versions, err := h.bank.ListVersions(r.Context(), kind)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, versions)
}

// GetVersion versión concreta con sus preguntas
func (h *QuestionBankHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	versionID, err := uuid.Parse(chi.URLParam(r, "versionID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid version id")
		return
	}

	view, err := h.bank.GetVersion(r.Context(), versionID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, view)
}

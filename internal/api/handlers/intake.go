package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/models"
	"github.com/MemoRT22/Vacantes-sub000/internal/services"
	"github.com/MemoRT22/Vacantes-sub000/internal/storage"
	"github.com/MemoRT22/Vacantes-sub000/pkg/utils"
)

// maxIntakeMemory límite de memoria para el multipart de intake (32 MiB)
const maxIntakeMemory = 32 << 20

// IntakeHandler endpoints públicos de postulación y consulta de folio
type IntakeHandler struct {
	intake *services.IntakeService
	db     *storage.Database
	logger *zap.Logger
}

func NewIntakeHandler(intake *services.IntakeService, db *storage.Database, logger *zap.Logger) *IntakeHandler {
	return &IntakeHandler{
		intake: intake,
		db:     db,
		logger: logger,
	}
}

func (h *IntakeHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListVacancies)
	r.Post("/{vacancyID}/apply", h.Apply)

	return r
}

// ListVacancies vacantes activas visibles al público
func (h *IntakeHandler) ListVacancies(w http.ResponseWriter, r *http.Request) {
	vacancies, err := h.db.ListVacancies(r.Context(), true)
	if err != nil {
		h.logger.Error("Failed to list vacancies", zap.Error(err))
		utils.WriteError(w, http.StatusInternalServerError, "Failed to list vacancies")
		return
	}

	utils.WriteSuccess(w, vacancies)
}

// Apply recibe la postulación multipart: datos del candidato más los
// documentos NECESARIO. El nombre de cada parte de archivo es el tipo
// de documento.
func (h *IntakeHandler) Apply(w http.ResponseWriter, r *http.Request) {
	vacancyID, err := uuid.Parse(chi.URLParam(r, "vacancyID"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid vacancy id")
		return
	}

	if err := r.ParseMultipartForm(maxIntakeMemory); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}

	candidate := services.CandidateInput{
		FullName: r.FormValue("full_name"),
		Email:    r.FormValue("email"),
		Phone:    r.FormValue("phone"),
	}

	var files []services.IntakeFile
	for field, parts := range r.MultipartForm.File {
		if len(parts) == 0 {
			continue
		}
		part := parts[0]

		src, err := part.Open()
		if err != nil {
			utils.WriteError(w, http.StatusBadRequest, "Unreadable file part: "+field)
			return
		}
		defer src.Close()

		files = append(files, services.IntakeFile{
			DocType:  models.DocumentType(field),
			FileName: part.Filename,
			MimeType: part.Header.Get("Content-Type"),
			Content:  src,
		})
	}

	result, err := h.intake.Apply(r.Context(), vacancyID, candidate, files)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteCreated(w, result)
}

// Status consulta pública del estado por folio
func (h *IntakeHandler) Status(w http.ResponseWriter, r *http.Request) {
	folio := chi.URLParam(r, "folio")

	result, err := h.intake.GetStatusByFolio(r.Context(), folio)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, result)
}

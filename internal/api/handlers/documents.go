package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/MemoRT22/Vacantes-sub000/internal/services"
	"github.com/MemoRT22/Vacantes-sub000/pkg/utils"
)

// maxUploadBytes límite por documento DESPUES (16 MiB)
const maxUploadBytes = 16 << 20

// DocumentHandler cumplimiento documental y subidas DESPUES
type DocumentHandler struct {
	documents *services.DocumentService
	logger    *zap.Logger
}

func NewDocumentHandler(documents *services.DocumentService, logger *zap.Logger) *DocumentHandler {
	return &DocumentHandler{
		documents: documents,
		logger:    logger,
	}
}

// Routes rutas internas (personal autenticado)
func (h *DocumentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{applicationID}", h.List)
	r.Get("/{applicationID}/progress", h.NecessaryProgress)

	return r
}

// PublicRoutes rutas del candidato aceptado (folio + correo)
func (h *DocumentHandler) PublicRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/progress", h.AfterProgress)
	r.Post("/uploads", h.StartUpload)
	r.Put("/uploads/{uploadID}", h.WriteBytes)
	r.Post("/uploads/{uploadID}/finalize", h.FinalizeUpload)

	return r
}

// List historial completo de documentos con todas sus versiones
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := applicationIDParam(r)
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	docs, err := h.documents.ListDocuments(r.Context(), applicationID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, docs)
}

// NecessaryProgress avance de la fase NECESARIO de una solicitud
func (h *DocumentHandler) NecessaryProgress(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := applicationIDParam(r)
	if !ok {
		utils.WriteError(w, http.StatusBadRequest, "Invalid application id")
		return
	}

	progress, err := h.documents.GetNecessaryProgress(r.Context(), applicationID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, progress)
}

// AfterProgress avance DESPUES consultado con folio y correo
func (h *DocumentHandler) AfterProgress(w http.ResponseWriter, r *http.Request) {
	folio := r.URL.Query().Get("folio")
	email := r.URL.Query().Get("email")

	progress, err := h.documents.GetAfterDocsProgress(r.Context(), folio, email)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, progress)
}

// StartUpload abre una sesión de subida con vigencia limitada
func (h *DocumentHandler) StartUpload(w http.ResponseWriter, r *http.Request) {
	var req services.StartUploadInput
	if err := utils.BindJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.documents.StartUpload(r.Context(), req)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteCreated(w, result)
}

// WriteBytes deposita el contenido del archivo en la sesión abierta
func (h *DocumentHandler) WriteBytes(w http.ResponseWriter, r *http.Request) {
	uploadID := chi.URLParam(r, "uploadID")

	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	defer body.Close()

	size, err := h.documents.WriteBytes(r.Context(), uploadID, body)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, map[string]interface{}{
		"upload_id": uploadID,
		"size":      size,
	})
}

// FinalizeUpload vuelve oficial la versión; sin esta llamada no hay registro
func (h *DocumentHandler) FinalizeUpload(w http.ResponseWriter, r *http.Request) {
	uploadID := chi.URLParam(r, "uploadID")

	doc, err := h.documents.FinalizeUpload(r.Context(), uploadID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteSuccess(w, doc)
}

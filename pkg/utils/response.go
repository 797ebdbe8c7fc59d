package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/MemoRT22/Vacantes-sub000/internal/apperrors"
)

// JSONResponse respuesta JSON estándar
type JSONResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorBody cuerpo del error con código estable y detalle
type ErrorBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// WriteJSON escribe una respuesta JSON
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// WriteSuccess respuesta exitosa
func WriteSuccess(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusOK, JSONResponse{
		Success: true,
		Data:    data,
	})
}

// WriteCreated respuesta de recurso creado
func WriteCreated(w http.ResponseWriter, data interface{}) {
	WriteJSON(w, http.StatusCreated, JSONResponse{
		Success: true,
		Data:    data,
	})
}

// WriteMessage respuesta con solo un mensaje
func WriteMessage(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, JSONResponse{
		Success: true,
		Message: message,
	})
}

// WriteError respuesta de error plano
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, JSONResponse{
		Success: false,
		Error:   &ErrorBody{Code: string(apperrors.CodeInternal), Message: message},
	})
}

// statusFor mapea el código de negocio al estatus HTTP
func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.CodeValidation, apperrors.CodeOutOfRange, apperrors.CodeIncompleteScoreSet,
		apperrors.CodeMissingRequiredAnswers:
		return http.StatusBadRequest
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeForbidden:
		return http.StatusForbidden
	case apperrors.CodeInactive, apperrors.CodeInvalidTransition, apperrors.CodePreconditionNotMet,
		apperrors.CodeUploadNotAllowed:
		return http.StatusUnprocessableEntity
	case apperrors.CodeAlreadyFinalized, apperrors.CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteAppError serializa un error tipado del núcleo
func WriteAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.Error); ok {
		body := &ErrorBody{
			Code:    string(appErr.Code),
			Message: appErr.Message,
			Details: appErr.Details,
		}
		if appErr.Code == apperrors.CodeInternal {
			// No exponemos detalles internos
			body.Message = "internal server error"
			body.Details = nil
		}
		WriteJSON(w, statusFor(appErr.Code), JSONResponse{Success: false, Error: body})
		return
	}

	WriteError(w, http.StatusInternalServerError, "internal server error")
}

// WriteNotFound error 404
func WriteNotFound(w http.ResponseWriter, resource string) {
	WriteJSON(w, http.StatusNotFound, JSONResponse{
		Success: false,
		Error:   &ErrorBody{Code: string(apperrors.CodeNotFound), Message: resource + " not found"},
	})
}

// WriteUnauthorized error 401
func WriteUnauthorized(w http.ResponseWriter) {
	WriteJSON(w, http.StatusUnauthorized, JSONResponse{
		Success: false,
		Error:   &ErrorBody{Code: "UNAUTHORIZED", Message: "Unauthorized"},
	})
}

// BindJSON decodifica el cuerpo JSON de la petición
func BindJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}

	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// HealthCheckResponse respuesta del health check
type HealthCheckResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services,omitempty"`
}

// WriteHealthCheck escribe la respuesta del health check
func WriteHealthCheck(w http.ResponseWriter, status string, services map[string]string) {
	WriteJSON(w, http.StatusOK, HealthCheckResponse{
		Status:    status,
		Timestamp: time.Now(),
		Services:  services,
	})
}

// Package apperrors define los errores tipados que regresan los servicios del núcleo.
package apperrors

import (
	"errors"
	"fmt"
)

// Code código estable del error, expuesto tal cual al cliente
type Code string

const (
	CodeValidation             Code = "VALIDATION_ERROR"
	CodeNotFound               Code = "NOT_FOUND"
	CodeInactive               Code = "VACANCY_INACTIVE"
	CodeInvalidTransition      Code = "INVALID_TRANSITION"
	CodePreconditionNotMet     Code = "PRECONDITION_NOT_MET"
	CodeIncompleteScoreSet     Code = "INCOMPLETE_SCORE_SET"
	CodeMissingRequiredAnswers Code = "MISSING_REQUIRED_ANSWERS"
	CodeAlreadyFinalized       Code = "ALREADY_FINALIZED"
	CodeUploadNotAllowed       Code = "UPLOAD_NOT_ALLOWED"
	CodeOutOfRange             Code = "OUT_OF_RANGE"
	CodeForbidden              Code = "FORBIDDEN"
	CodeConflict               Code = "CONFLICT"
	CodeInternal               Code = "INTERNAL"
)

// Error error de negocio con código estable y detalle re-presentable
type Error struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// WithDetail agrega un campo de detalle y regresa el mismo error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = map[string]interface{}{}
	}
	e.Details[key] = value
	return e
}

// New construye un error con código y mensaje
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap construye un error conservando la causa
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// Is verifica si err (o su cadena) lleva el código dado
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf regresa el código del error, o CodeInternal si no es un *Error
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// Constructores por tipo

func Validation(message string) *Error { return New(CodeValidation, message) }

func ValidationField(field, message string) *Error {
	return New(CodeValidation, message).WithDetail("field", field)
}

func NotFound(resource string) *Error {
	return New(CodeNotFound, resource+" not found").WithDetail("resource", resource)
}

func Inactive(resource string) *Error {
	return New(CodeInactive, resource+" is not active")
}

func InvalidTransition(from, to string) *Error {
	return New(CodeInvalidTransition, fmt.Sprintf("transition %s -> %s is not allowed", from, to)).
		WithDetail("from", from).
		WithDetail("to", to)
}

func PreconditionNotMet(missing ...string) *Error {
	return New(CodePreconditionNotMet, "stage prerequisites are not met").
		WithDetail("missing", missing)
}

func IncompleteScoreSet(message string) *Error {
	return New(CodeIncompleteScoreSet, message)
}

func MissingRequiredAnswers(questionIDs []string) *Error {
	return New(CodeMissingRequiredAnswers, "required questions are unanswered").
		WithDetail("question_ids", questionIDs)
}

func AlreadyFinalized() *Error {
	return New(CodeAlreadyFinalized, "application is already finalized")
}

func UploadNotAllowed(message string) *Error {
	return New(CodeUploadNotAllowed, message)
}

func OutOfRange(field string, min, max int) *Error {
	return New(CodeOutOfRange, fmt.Sprintf("%s must be between %d and %d", field, min, max)).
		WithDetail("field", field)
}

func Forbidden(message string) *Error { return New(CodeForbidden, message) }

func Conflict(message string) *Error { return New(CodeConflict, message) }

func Internal(cause error) *Error {
	return Wrap(CodeInternal, "internal error", cause)
}

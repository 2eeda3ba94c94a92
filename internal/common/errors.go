package common

import (
	"net/http"
)

// AppError represents an error with an attached code and HTTP status.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError builds a 400 error for a user-correctable request problem.
func ValidationError(message string, details any) *AppError {
	return &AppError{Code: "VALIDATION", Message: message, HTTPStatus: http.StatusBadRequest, Details: details}
}

// NotFoundError builds a 404 error.
func NotFoundError(message string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: message, HTTPStatus: http.StatusNotFound}
}

// PersistenceError wraps a store failure. The underlying error is kept for
// WriteErrorLogged; the message returned to the client stays opaque.
func PersistenceError(err error) *AppError {
	return &AppError{Code: "PERSISTENCE", Message: "internal error", HTTPStatus: http.StatusInternalServerError, Err: err}
}

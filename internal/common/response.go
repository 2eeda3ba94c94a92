package common

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
)

// ErrorBody represents a consistent error payload returned by the API.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// JSON writes the provided value to the response writer as JSON.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// JSONError renders an error response using the canonical error shape.
func JSONError(w http.ResponseWriter, status int, code, message string, details any) {
	JSON(w, status, map[string]any{
		"error": ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteError translates an error into the canonical error response. AppError
// values keep their status and code; anything else becomes an opaque 500.
func WriteError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		code := appErr.Code
		if code == "" {
			code = "INTERNAL"
		}
		message := appErr.Message
		if message == "" {
			message = "internal error"
		}
		JSONError(w, status, code, message, appErr.Details)
		return
	}
	JSONError(w, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}

// WriteErrorLogged behaves like WriteError but records server-side failures
// first, so the underlying cause survives even though the response body stays
// opaque. Client-correctable AppErrors (4xx) are written without a log line.
func WriteErrorLogged(logger zerolog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var appErr *AppError
	serverSide := true
	if errors.As(err, &appErr) {
		serverSide = appErr.HTTPStatus == 0 || appErr.HTTPStatus >= http.StatusInternalServerError
	}
	if serverSide {
		evt := logger.Error().Err(err)
		if r != nil {
			evt = evt.Str("method", r.Method).Str("path", r.URL.Path)
		}
		evt.Msg("request failed")
	}
	WriteError(w, err)
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/capitalize-ai/health-assistant/internal/middleware"
	"github.com/capitalize-ai/health-assistant/internal/service"
	"github.com/capitalize-ai/health-assistant/pkg/logger"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// errorStatus maps service errors to an HTTP status and error code.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrEmptySubmission):
		return http.StatusBadRequest, "empty_submission"
	case errors.Is(err, service.ErrTurnInProgress):
		return http.StatusConflict, "turn_in_progress"
	case errors.Is(err, service.ErrShuttingDown):
		return http.StatusServiceUnavailable, "shutting_down"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

// writeServiceError writes the error reply for a service error.
func writeServiceError(w http.ResponseWriter, err error) {
	status, code := errorStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeError(w, status, code, msg)
}

// decodeJSON decodes a bounded request body.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	return json.NewDecoder(r.Body).Decode(v)
}

// requestLogger tags log lines with the caller's correlation and user IDs.
func requestLogger(base *logger.Logger, r *http.Request) *logger.Logger {
	ctx := r.Context()
	return base.WithRequest(middleware.GetCorrelationID(ctx), middleware.GetUserID(ctx))
}

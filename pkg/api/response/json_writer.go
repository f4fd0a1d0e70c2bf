package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dskvich/assistant-chat/pkg/domain"
	"github.com/dskvich/assistant-chat/pkg/logger"
)

type JSONResponseWriter struct{}

func (j *JSONResponseWriter) WriteSuccessResponse(w http.ResponseWriter, data any) {
	j.write(w, http.StatusOK, data)
}

func (j *JSONResponseWriter) WriteErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	j.write(w, statusCode, ErrorResponse{Error: message})
}

// WriteError picks the status code from the error kind.
func (j *JSONResponseWriter) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusCode(err)
	message := err.Error()

	switch {
	case errors.Is(err, domain.ErrMissingAPIKey):
		message = domain.MissingAPIKeyMessage
	case status == http.StatusInternalServerError:
		slog.ErrorContext(r.Context(), "Handling request", "path", r.URL.Path, logger.Err(err))
	default:
		slog.WarnContext(r.Context(), "Request rejected", "path", r.URL.Path, "status", status, logger.Err(err))
	}

	j.WriteErrorResponse(w, status, message)
}

func (j *JSONResponseWriter) write(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding response", logger.Err(err))
	}
}

func StatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingAPIKey):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrEmptyPrompt), errors.Is(err, domain.ErrNoAssistant):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRunInProgress), errors.Is(err, domain.ErrNoActiveRun),
		errors.Is(err, domain.ErrRunCancelled):
		return http.StatusConflict
	case errors.Is(err, domain.ErrFileTypeNotAllowed):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrRunTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, domain.ErrRunFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

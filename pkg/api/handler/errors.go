package handler

import (
	"errors"
	"net/http"

	"github.com/dskvich/assistant-chat/pkg/api/response"
)

var errBadRequest = errors.New("bad request")

type errorWriter struct {
	response.JSONResponseWriter
}

// fail is WriteError with handler-local errors mapped first.
func (e *errorWriter) fail(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, errBadRequest) {
		e.WriteErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	e.WriteError(w, r, err)
}

package handler

import (
	"net/http"

	"github.com/dskvich/assistant-chat/pkg/api/response"
)

type SessionCounter interface {
	Count() int
}

func Health(sessions SessionCounter) http.HandlerFunc {
	writer := response.JSONResponseWriter{}
	return func(w http.ResponseWriter, r *http.Request) {
		writer.WriteSuccessResponse(w, map[string]any{
			"status":   "ok",
			"sessions": sessions.Count(),
		})
	}
}

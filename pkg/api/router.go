package api

import (
	"net/http"

	"github.com/dskvich/assistant-chat/pkg/api/middleware"
)

// Handlers are the endpoints served by the router.
type Handlers struct {
	Page       http.HandlerFunc
	SetKey     http.HandlerFunc
	KeyStatus  http.HandlerFunc
	Assistants http.HandlerFunc
	Select     http.HandlerFunc
	Submit     http.HandlerFunc
	Messages   http.HandlerFunc
	Cancel     http.HandlerFunc
	Upload     http.HandlerFunc
	Files      http.HandlerFunc
	Events     http.HandlerFunc
	Health     http.HandlerFunc
}

func NewRouter(sessions middleware.SessionRepository, h Handlers) http.Handler {
	app := http.NewServeMux()
	app.HandleFunc("GET /{$}", h.Page)
	app.HandleFunc("GET /api/key", h.KeyStatus)
	app.HandleFunc("POST /api/key", h.SetKey)
	app.HandleFunc("GET /api/assistants", h.Assistants)
	app.HandleFunc("POST /api/assistants/select", h.Select)
	app.HandleFunc("GET /api/messages", h.Messages)
	app.HandleFunc("POST /api/messages", h.Submit)
	app.HandleFunc("POST /api/run/cancel", h.Cancel)
	app.HandleFunc("GET /api/files", h.Files)
	app.HandleFunc("POST /api/files", h.Upload)
	app.HandleFunc("GET /api/events", h.Events)

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", middleware.Recover(h.Health))
	mux.Handle("/", middleware.Chain(app,
		middleware.Recover,
		middleware.RequestID,
		middleware.Logging,
		middleware.Session(sessions),
	))

	return mux
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/dskvich/assistant-chat/pkg/domain"
)

type messages struct {
	errorWriter
	runner       RunSubmitter
	conversation ConversationProvider
}

func NewMessages(runner RunSubmitter, conversation ConversationProvider) *messages {
	return &messages{
		runner:       runner,
		conversation: conversation,
	}
}

type submitRequest struct {
	Prompt string `json:"prompt"`
}

type conversationResponse struct {
	Messages []domain.RenderedMessage `json:"messages"`
	Busy     bool                     `json:"busy"`
}

// Submit blocks until the run of the prompt finishes.
func (m *messages) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		m.fail(w, r, err)
		return
	}

	rendered, err := m.runner.Submit(r.Context(), session(r), req.Prompt)
	if err != nil {
		m.fail(w, r, err)
		return
	}

	m.WriteSuccessResponse(w, conversationResponse{Messages: rendered})
}

func (m *messages) List(w http.ResponseWriter, r *http.Request) {
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	sess := session(r)

	rendered, err := m.conversation.Conversation(r.Context(), sess, refresh)
	if err != nil {
		m.fail(w, r, err)
		return
	}

	m.WriteSuccessResponse(w, conversationResponse{Messages: rendered, Busy: sess.Busy()})
}

func (m *messages) Cancel(w http.ResponseWriter, r *http.Request) {
	sess := session(r)

	run, _ := sess.ActiveRun()
	if !sess.CancelSubmission() {
		m.fail(w, r, domain.ErrNoActiveRun)
		return
	}

	m.WriteSuccessResponse(w, map[string]string{"run_id": run.ID, "status": "cancelling"})
}

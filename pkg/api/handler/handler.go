package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dskvich/assistant-chat/pkg/api/middleware"
	"github.com/dskvich/assistant-chat/pkg/domain"
)

type RunSubmitter interface {
	Submit(ctx context.Context, sess *domain.Session, prompt string) ([]domain.RenderedMessage, error)
}

type ConversationProvider interface {
	Conversation(ctx context.Context, sess *domain.Session, refresh bool) ([]domain.RenderedMessage, error)
}

type AssistantProvider interface {
	List(ctx context.Context, sess *domain.Session) ([]domain.Assistant, error)
	Select(ctx context.Context, sess *domain.Session, assistantID string) error
}

type FileUploader interface {
	Upload(ctx context.Context, sess *domain.Session, name string, r io.Reader) (domain.UploadedFile, error)
	Files(sess *domain.Session) []domain.UploadedFile
}

type KeyChecker interface {
	HasKey(sess *domain.Session) bool
	KeyConfigured() bool
}

type EventSubscriber interface {
	Subscribe(sessionID string) (<-chan domain.RunEvent, func())
}

// maxJSONBody bounds the small JSON payloads of the API.
const maxJSONBody = 64 << 10

func session(r *http.Request) *domain.Session {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		panic("handler: session middleware is not installed")
	}
	return sess
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(v); err != nil {
		return fmt.Errorf("%w: decoding request body: %v", errBadRequest, err)
	}
	return nil
}

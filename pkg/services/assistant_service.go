package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"github.com/dskvich/assistant-chat/pkg/domain"
)

type assistantService struct {
	clients *clientProvider
	limit   int
}

func NewAssistantService(clients *clientProvider, limit int) *assistantService {
	return &assistantService{
		clients: clients,
		limit:   limit,
	}
}

// List returns the configured assistants, newest first. Without a prior choice
// the first one becomes the session selection.
func (s *assistantService) List(ctx context.Context, sess *domain.Session) ([]domain.Assistant, error) {
	api, err := s.clients.ForSession(sess)
	if err != nil {
		return nil, err
	}

	assistants, err := api.ListAssistants(ctx, s.limit)
	if err != nil {
		return nil, err
	}

	selected := sess.AssistantID()
	if len(assistants) > 0 && !lo.ContainsBy(assistants, func(a domain.Assistant) bool { return a.ID == selected }) {
		sess.SelectAssistant(assistants[0].ID)
		slog.DebugContext(ctx, "Assistant selected by default", "assistantID", assistants[0].ID)
	}

	return assistants, nil
}

func (s *assistantService) Select(ctx context.Context, sess *domain.Session, assistantID string) error {
	assistants, err := s.List(ctx, sess)
	if err != nil {
		return err
	}

	if !lo.ContainsBy(assistants, func(a domain.Assistant) bool { return a.ID == assistantID }) {
		return fmt.Errorf("assistant %q: %w", assistantID, domain.ErrNotFound)
	}

	sess.SelectAssistant(assistantID)
	slog.InfoContext(ctx, "Assistant selected", "assistantID", assistantID)

	return nil
}

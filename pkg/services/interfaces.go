package services

import (
	"context"

	"github.com/dskvich/assistant-chat/pkg/domain"
)

// AssistantAPI is the subset of the remote Assistants API the app talks to.
type AssistantAPI interface {
	ListAssistants(ctx context.Context, limit int) ([]domain.Assistant, error)
	CreateThread(ctx context.Context) (string, error)
	CreateMessage(ctx context.Context, threadID, text string, fileIDs []string) (domain.Message, error)
	CreateRun(ctx context.Context, threadID, assistantID string) (domain.Run, error)
	RetrieveRun(ctx context.Context, threadID, runID string) (domain.Run, error)
	CancelRun(ctx context.Context, threadID, runID string) (domain.Run, error)
	ListMessages(ctx context.Context, threadID string) ([]domain.Message, error)
	GetFileContent(ctx context.Context, fileID string) ([]byte, error)
	UploadFile(ctx context.Context, path, name string) (domain.UploadedFile, error)
}

// ClientFactory builds an AssistantAPI bound to one API key.
type ClientFactory func(apiKey string) (AssistantAPI, error)

type EventPublisher interface {
	Publish(sessionID string, event domain.RunEvent)
}

package openai

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/samber/lo"
	"github.com/sashabaranov/go-openai"

	"github.com/dskvich/assistant-chat/pkg/domain"
)

const (
	purposeAssistants = "assistants"
	messagesPageSize  = 100
)

var runTools = []openai.Tool{
	{Type: "code_interpreter"},
	{Type: "retrieval"},
}

type client struct {
	api *openai.Client
}

// NewClient creates an Assistants API client for the given key. An empty baseURL
// keeps the library default.
func NewClient(token, baseURL string, hc *http.Client) (*client, error) {
	if token == "" {
		return nil, domain.ErrMissingAPIKey
	}

	cfg := openai.DefaultConfig(token)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if hc != nil {
		cfg.HTTPClient = hc
	}

	return &client{api: openai.NewClientWithConfig(cfg)}, nil
}

func (c *client) ListAssistants(ctx context.Context, limit int) ([]domain.Assistant, error) {
	resp, err := c.api.ListAssistants(ctx, &limit, lo.ToPtr("desc"), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("listing assistants: %w", err)
	}

	return lo.Map(resp.Assistants, func(a openai.Assistant, _ int) domain.Assistant {
		return domain.Assistant{
			ID:   a.ID,
			Name: lo.Ternary(a.Name != nil && *a.Name != "", lo.FromPtr(a.Name), a.ID),
		}
	}), nil
}

func (c *client) CreateThread(ctx context.Context) (string, error) {
	thread, err := c.api.CreateThread(ctx, openai.ThreadRequest{})
	if err != nil {
		return "", fmt.Errorf("creating thread: %w", err)
	}

	slog.DebugContext(ctx, "Thread created", "threadID", thread.ID)

	return thread.ID, nil
}

func (c *client) CreateMessage(ctx context.Context, threadID, text string, fileIDs []string) (domain.Message, error) {
	msg, err := c.api.CreateMessage(ctx, threadID, openai.MessageRequest{
		Role:    domain.MessageRoleUser,
		Content: text,
		FileIds: fileIDs,
	})
	if err != nil {
		return domain.Message{}, fmt.Errorf("creating message: %w", err)
	}

	return toDomainMessage(msg), nil
}

func (c *client) CreateRun(ctx context.Context, threadID, assistantID string) (domain.Run, error) {
	run, err := c.api.CreateRun(ctx, threadID, openai.RunRequest{
		AssistantID: assistantID,
		Tools:       runTools,
	})
	if err != nil {
		return domain.Run{}, fmt.Errorf("creating run: %w", err)
	}

	return toDomainRun(run), nil
}

func (c *client) RetrieveRun(ctx context.Context, threadID, runID string) (domain.Run, error) {
	run, err := c.api.RetrieveRun(ctx, threadID, runID)
	if err != nil {
		return domain.Run{}, fmt.Errorf("retrieving run: %w", err)
	}

	return toDomainRun(run), nil
}

func (c *client) CancelRun(ctx context.Context, threadID, runID string) (domain.Run, error) {
	run, err := c.api.CancelRun(ctx, threadID, runID)
	if err != nil {
		return domain.Run{}, fmt.Errorf("cancelling run: %w", err)
	}

	return toDomainRun(run), nil
}

// ListMessages returns every message of the thread, newest first, following pagination.
func (c *client) ListMessages(ctx context.Context, threadID string) ([]domain.Message, error) {
	var (
		messages []domain.Message
		after    *string
	)

	for {
		page, err := c.api.ListMessage(ctx, threadID, lo.ToPtr(messagesPageSize), lo.ToPtr("desc"), after, nil)
		if err != nil {
			return nil, fmt.Errorf("listing messages: %w", err)
		}

		for _, m := range page.Messages {
			messages = append(messages, toDomainMessage(m))
		}

		if !page.HasMore || page.LastID == nil || len(page.Messages) == 0 {
			return messages, nil
		}
		after = page.LastID
	}
}

func (c *client) GetFileContent(ctx context.Context, fileID string) ([]byte, error) {
	content, err := c.api.GetFileContent(ctx, fileID)
	if err != nil {
		return nil, fmt.Errorf("fetching file content: %w", err)
	}
	defer content.Close()

	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("reading file content: %w", err)
	}

	return data, nil
}

func (c *client) UploadFile(ctx context.Context, path, name string) (domain.UploadedFile, error) {
	f, err := c.api.CreateFile(ctx, openai.FileRequest{
		FileName: name,
		FilePath: path,
		Purpose:  purposeAssistants,
	})
	if err != nil {
		return domain.UploadedFile{}, fmt.Errorf("uploading file: %w", err)
	}

	slog.DebugContext(ctx, "File uploaded", "fileID", f.ID, "bytes", f.Bytes)

	return domain.UploadedFile{
		ID:    f.ID,
		Name:  name,
		Bytes: int64(f.Bytes),
	}, nil
}

package openai

import (
	"encoding/json"

	"github.com/sashabaranov/go-openai"

	"github.com/dskvich/assistant-chat/pkg/domain"
)

func toDomainRun(run openai.Run) domain.Run {
	r := domain.Run{
		ID:          run.ID,
		ThreadID:    run.ThreadID,
		AssistantID: run.AssistantID,
		Status:      domain.RunStatus(run.Status),
	}
	if run.LastError != nil {
		r.LastError = string(run.LastError.Code) + ": " + run.LastError.Message
	}
	return r
}

func toDomainMessage(msg openai.Message) domain.Message {
	parts := make([]domain.ContentPart, 0, len(msg.Content))
	for _, c := range msg.Content {
		parts = append(parts, toContentPart(c))
	}

	return domain.Message{
		ID:        msg.ID,
		Role:      msg.Role,
		CreatedAt: int64(msg.CreatedAt),
		Parts:     parts,
	}
}

func toContentPart(c openai.MessageContent) domain.ContentPart {
	switch {
	case c.Type == string(domain.ContentPartTypeText) && c.Text != nil:
		return domain.ContentPart{Type: domain.ContentPartTypeText, Text: c.Text.Value}
	case c.Type == string(domain.ContentPartTypeImage) && c.ImageFile != nil && c.ImageFile.FileID != "":
		return domain.ContentPart{Type: domain.ContentPartTypeImage, FileID: c.ImageFile.FileID}
	}

	// Unknown kinds and known kinds without their payload.
	raw, err := json.Marshal(c)
	if err != nil {
		raw = []byte(c.Type)
	}
	return domain.ContentPart{Type: domain.ContentPartTypeRaw, Raw: string(raw)}
}

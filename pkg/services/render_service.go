package services

import (
	"bytes"
	"cmp"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"slices"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/dskvich/assistant-chat/pkg/domain"
	"github.com/dskvich/assistant-chat/pkg/render"
)

const defaultImageFetchLimit = 4

var renderedRoles = []string{domain.MessageRoleUser, domain.MessageRoleAssistant}

type renderService struct {
	clients    *clientProvider
	tempDir    string
	fetchLimit int
}

func NewRenderService(clients *clientProvider, tempDir string) *renderService {
	return &renderService{
		clients:    clients,
		tempDir:    tempDir,
		fetchLimit: defaultImageFetchLimit,
	}
}

// Conversation returns the session history, rendering the thread when nothing
// is cached or refresh is requested.
func (s *renderService) Conversation(ctx context.Context, sess *domain.Session, refresh bool) ([]domain.RenderedMessage, error) {
	threadID := sess.ThreadID()
	if threadID == "" {
		return []domain.RenderedMessage{}, nil
	}

	if history := sess.History(); !refresh && history != nil {
		return history, nil
	}

	api, err := s.clients.ForSession(sess)
	if err != nil {
		return nil, err
	}

	messages, err := s.RenderThread(ctx, api, threadID)
	if err != nil {
		return nil, err
	}
	sess.SetHistory(messages)

	return messages, nil
}

// RenderThread fetches every message of the thread and renders it oldest first.
func (s *renderService) RenderThread(ctx context.Context, api AssistantAPI, threadID string) ([]domain.RenderedMessage, error) {
	messages, err := api.ListMessages(ctx, threadID)
	if err != nil {
		return nil, err
	}

	// The API lists newest first.
	messages = lo.Reverse(messages)
	slices.SortStableFunc(messages, func(a, b domain.Message) int {
		return cmp.Compare(a.CreatedAt, b.CreatedAt)
	})
	messages = lo.Filter(messages, func(m domain.Message, _ int) bool {
		return lo.Contains(renderedRoles, m.Role)
	})

	out := make([]domain.RenderedMessage, len(messages))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fetchLimit)

	for i, m := range messages {
		out[i] = domain.RenderedMessage{
			ID:     m.ID,
			Role:   m.Role,
			Blocks: make([]domain.Block, len(m.Parts)),
		}

		for j, part := range m.Parts {
			switch {
			case part.Type == domain.ContentPartTypeText:
				out[i].Blocks[j] = domain.Block{Kind: domain.BlockKindText, HTML: render.ToHTML(part.Text)}
			case part.Type == domain.ContentPartTypeImage && part.FileID != "":
				fileID := part.FileID
				block := &out[i].Blocks[j]
				g.Go(func() error {
					img, err := s.fetchImage(gctx, api, fileID)
					if err != nil {
						return err
					}
					*block = domain.Block{Kind: domain.BlockKindImage, Image: img}
					return nil
				})
			default:
				raw, _ := lo.Coalesce(part.Raw, string(part.Type))
				out[i].Blocks[j] = domain.Block{Kind: domain.BlockKindRaw, HTML: render.Preformatted(raw)}
			}
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// fetchImage downloads an image file through a temp file and decodes its header.
func (s *renderService) fetchImage(ctx context.Context, api AssistantAPI, fileID string) (*domain.Image, error) {
	data, err := api.GetFileContent(ctx, fileID)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(s.tempDir, "image-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	if _, err := tmp.Write(data); err != nil {
		return nil, fmt.Errorf("writing temp file: %w", err)
	}
	if _, err := tmp.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("rewinding temp file: %w", err)
	}

	img := &domain.Image{FileID: fileID}

	cfg, format, err := image.DecodeConfig(tmp)
	switch {
	case err == nil:
		img.MimeType = "image/" + format
		img.Width, img.Height = cfg.Width, cfg.Height
	case strings.HasPrefix(http.DetectContentType(data), "image/"):
		img.MimeType = http.DetectContentType(data)
	default:
		return nil, fmt.Errorf("decoding image %s: %w", fileID, err)
	}

	var buf bytes.Buffer
	buf.WriteString("data:" + img.MimeType + ";base64,")
	buf.WriteString(base64.StdEncoding.EncodeToString(data))
	img.DataURI = buf.String()

	return img, nil
}

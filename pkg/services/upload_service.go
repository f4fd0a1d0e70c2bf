package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/dskvich/assistant-chat/pkg/domain"
)

var allowedExtensions = []string{
	".txt", ".md",
	".csv", ".tsv", ".xlsx", ".json",
	".png", ".jpg", ".jpeg", ".gif", ".webp",
}

func AllowedExtensions() []string {
	return slices.Clone(allowedExtensions)
}

func IsAllowedFile(name string) bool {
	return lo.Contains(allowedExtensions, strings.ToLower(filepath.Ext(name)))
}

type uploadService struct {
	clients  *clientProvider
	tempDir  string
	maxBytes int64
}

func NewUploadService(clients *clientProvider, tempDir string, maxBytes int64) *uploadService {
	return &uploadService{
		clients:  clients,
		tempDir:  tempDir,
		maxBytes: maxBytes,
	}
}

// Upload stages r in a temp file, forwards it to the remote file storage and
// records the remote id on the session for the next message.
func (s *uploadService) Upload(ctx context.Context, sess *domain.Session, name string, r io.Reader) (domain.UploadedFile, error) {
	name = filepath.Base(name)
	if !IsAllowedFile(name) {
		return domain.UploadedFile{}, fmt.Errorf("%w: %q", domain.ErrFileTypeNotAllowed, filepath.Ext(name))
	}

	api, err := s.clients.ForSession(sess)
	if err != nil {
		return domain.UploadedFile{}, err
	}

	tmp, err := os.CreateTemp(s.tempDir, "upload-*"+strings.ToLower(filepath.Ext(name)))
	if err != nil {
		return domain.UploadedFile{}, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	written, err := io.Copy(tmp, io.LimitReader(r, s.maxBytes+1))
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return domain.UploadedFile{}, fmt.Errorf("staging upload: %w", err)
	}
	if written > s.maxBytes {
		return domain.UploadedFile{}, fmt.Errorf("%w: limit is %d bytes", domain.ErrFileTooLarge, s.maxBytes)
	}

	slog.InfoContext(ctx, "Uploading file", "name", name, "bytes", written)

	file, err := api.UploadFile(ctx, tmp.Name(), name)
	if err != nil {
		return domain.UploadedFile{}, err
	}

	file.Name = name
	file.Bytes, _ = lo.Coalesce(file.Bytes, written)
	file.UploadedAt = time.Now()
	sess.AddFile(file)

	return file, nil
}

func (s *uploadService) Files(sess *domain.Session) []domain.UploadedFile {
	return sess.Files()
}

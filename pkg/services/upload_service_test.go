package services

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dskvich/assistant-chat/pkg/domain"
)

func TestIsAllowedFile(t *testing.T) {
	tests := []struct {
		name    string
		allowed bool
	}{
		{"resume.txt", true},
		{"jobs.CSV", true},
		{"salary.xlsx", true},
		{"photo.JPEG", true},
		{"chart.png", true},
		{"script.sh", false},
		{"binary.exe", false},
		{"archive.zip", false},
		{"noext", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, IsAllowedFile(tt.name), tt.name)
	}
}

func TestUploadRejectsDisallowedTypeBeforeRemoteCall(t *testing.T) {
	api := newFakeAPI()
	svc := NewUploadService(providerFor(api), t.TempDir(), 1024)
	sess := domain.NewSession("s", time.Now())

	_, err := svc.Upload(context.Background(), sess, "evil.exe", strings.NewReader("MZ"))
	require.ErrorIs(t, err, domain.ErrFileTypeNotAllowed)
	assert.Empty(t, api.callNames())
	assert.Empty(t, sess.Files())
}

func TestUploadRecordsRemoteID(t *testing.T) {
	api := newFakeAPI()
	tempDir := t.TempDir()
	svc := NewUploadService(providerFor(api), tempDir, 1024)
	sess := domain.NewSession("s", time.Now())

	file, err := svc.Upload(context.Background(), sess, "../../resume.txt", strings.NewReader("ten years of Go"))
	require.NoError(t, err)

	assert.Equal(t, "file_1", file.ID)
	assert.Equal(t, "resume.txt", file.Name)
	assert.EqualValues(t, len("ten years of Go"), file.Bytes)
	assert.Equal(t, "ten years of Go", string(api.uploaded["file_1"]))
	assert.Equal(t, []string{"file_1"}, sess.PendingFileIDs())

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries, "staged file is deleted")
}

func TestUploadTooLarge(t *testing.T) {
	api := newFakeAPI()
	tempDir := t.TempDir()
	svc := NewUploadService(providerFor(api), tempDir, 4)

	_, err := svc.Upload(context.Background(), domain.NewSession("s", time.Now()), "big.csv", strings.NewReader("a,b,c,d"))
	require.ErrorIs(t, err, domain.ErrFileTooLarge)
	assert.Empty(t, api.callNames())

	entries, err := os.ReadDir(tempDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionSingleSubmission(t *testing.T) {
	s := NewSession("s1", time.Now())

	_, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.BeginSubmission(cancel))
	assert.ErrorIs(t, s.BeginSubmission(func() {}), ErrRunInProgress)

	s.UpdateRun(Run{ID: "run_1", Status: RunStatusQueued})
	run, ok := s.ActiveRun()
	require.True(t, ok)
	assert.Equal(t, "run_1", run.ID)

	s.EndSubmission()
	_, ok = s.ActiveRun()
	assert.False(t, ok)
	assert.False(t, s.Busy())
	assert.NoError(t, s.BeginSubmission(func() {}))
}

func TestSessionCancelSubmission(t *testing.T) {
	s := NewSession("s1", time.Now())
	assert.False(t, s.CancelSubmission())

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.BeginSubmission(cancel))
	assert.True(t, s.CancelSubmission())
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestSessionPendingFiles(t *testing.T) {
	s := NewSession("s1", time.Now())
	s.AddFile(UploadedFile{ID: "file-a"})
	s.AddFile(UploadedFile{ID: "file-b"})

	assert.Equal(t, []string{"file-a", "file-b"}, s.PendingFileIDs())

	s.MarkFilesAttached([]string{"file-a"})
	assert.Equal(t, []string{"file-b"}, s.PendingFileIDs())
	assert.Len(t, s.Files(), 2)
}

func TestSessionSetAPIKeyResetsRemoteState(t *testing.T) {
	s := NewSession("s1", time.Now())
	s.SetAPIKey("key-1")
	s.SetThreadID("thread_1")
	s.SelectAssistant("asst_1")
	s.AddFile(UploadedFile{ID: "file-a"})

	s.SetAPIKey("key-1")
	assert.Equal(t, "thread_1", s.ThreadID())

	s.SetAPIKey("key-2")
	assert.Empty(t, s.ThreadID())
	assert.Empty(t, s.AssistantID())
	assert.Empty(t, s.Files())
}

func TestRunStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status   RunStatus
		terminal bool
	}{
		{RunStatusQueued, false},
		{RunStatusInProgress, false},
		{RunStatusCancelling, false},
		{RunStatusRequiresAction, true},
		{RunStatusCompleted, true},
		{RunStatusFailed, true},
		{RunStatusCancelled, true},
		{RunStatusExpired, true},
		{RunStatus("unknown"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.terminal, tt.status.IsTerminal(), tt.status)
	}
}

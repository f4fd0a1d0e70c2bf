package domain

import (
	"context"
	"sync"
	"time"
)

// Session holds everything a single browser session knows about its conversation.
// All accessors are safe for concurrent use.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu          sync.Mutex
	apiKey      string
	assistantID string
	threadID    string

	busy      bool
	activeRun *Run
	cancelRun context.CancelFunc

	files   []UploadedFile
	history []RenderedMessage
}

func NewSession(id string, createdAt time.Time) *Session {
	return &Session{ID: id, CreatedAt: createdAt}
}

func (s *Session) APIKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiKey
}

// SetAPIKey replaces the key. A different key means a different remote account,
// so the thread, files and history bound to the old one are dropped.
func (s *Session) SetAPIKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.apiKey == key {
		return
	}
	s.apiKey = key
	s.assistantID = ""
	s.threadID = ""
	s.files = nil
	s.history = nil
}

func (s *Session) AssistantID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assistantID
}

func (s *Session) SelectAssistant(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assistantID = id
}

func (s *Session) ThreadID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threadID
}

func (s *Session) SetThreadID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threadID = id
}

// BeginSubmission reserves the session for one message/run round trip.
// It fails with ErrRunInProgress while another round trip is outstanding.
func (s *Session) BeginSubmission(cancel context.CancelFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return ErrRunInProgress
	}
	s.busy = true
	s.activeRun = nil
	s.cancelRun = cancel
	return nil
}

func (s *Session) UpdateRun(run Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeRun = &run
}

func (s *Session) ActiveRun() (Run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeRun == nil {
		return Run{}, false
	}
	return *s.activeRun, true
}

func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *Session) EndSubmission() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelRun != nil {
		s.cancelRun()
	}
	s.busy = false
	s.activeRun = nil
	s.cancelRun = nil
}

// CancelSubmission aborts the outstanding round trip, if any.
func (s *Session) CancelSubmission() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.busy || s.cancelRun == nil {
		return false
	}
	s.cancelRun()
	return true
}

func (s *Session) AddFile(f UploadedFile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = append(s.files, f)
}

func (s *Session) Files() []UploadedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]UploadedFile(nil), s.files...)
}

// PendingFileIDs returns ids of uploaded files not yet attached to a message.
func (s *Session) PendingFileIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []string
	for _, f := range s.files {
		if !f.Attached {
			ids = append(ids, f.ID)
		}
	}
	return ids
}

func (s *Session) MarkFilesAttached(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attached := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		attached[id] = struct{}{}
	}
	for i := range s.files {
		if _, ok := attached[s.files[i].ID]; ok {
			s.files[i].Attached = true
		}
	}
}

func (s *Session) History() []RenderedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RenderedMessage(nil), s.history...)
}

func (s *Session) SetHistory(history []RenderedMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = history
}

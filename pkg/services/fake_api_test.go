package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/dskvich/assistant-chat/pkg/domain"
)

type call struct {
	name string
	args []string
}

// fakeAPI is an in-memory Assistants API. Runs walk through statuses in order
// on every RetrieveRun and stay on the last one.
type fakeAPI struct {
	mu sync.Mutex

	calls      []call
	assistants []domain.Assistant
	messages   []domain.Message // newest first, like the remote
	statuses   []domain.RunStatus
	lastError  string
	reply      []domain.ContentPart
	files      map[string][]byte
	uploaded   map[string][]byte

	retrieveCount int
	nextID        int
	errOn         map[string]error
	// failures makes the next n calls of a method fail with errTransient.
	failures map[string]int
}

var errTransient = errors.New("connection reset")

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		files:    map[string][]byte{},
		uploaded: map[string][]byte{},
		errOn:    map[string]error{},
		failures: map[string]int{},
	}
}

func (f *fakeAPI) record(name string, args ...string) error {
	f.calls = append(f.calls, call{name: name, args: args})
	if f.failures[name] > 0 {
		f.failures[name]--
		return errTransient
	}
	return f.errOn[name]
}

func (f *fakeAPI) callNames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	names := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		names = append(names, c.name)
	}
	return names
}

func (f *fakeAPI) id(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s_%d", prefix, f.nextID)
}

func (f *fakeAPI) ListAssistants(_ context.Context, _ int) ([]domain.Assistant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListAssistants"); err != nil {
		return nil, err
	}
	return f.assistants, nil
}

func (f *fakeAPI) CreateThread(_ context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateThread"); err != nil {
		return "", err
	}
	return f.id("thread"), nil
}

func (f *fakeAPI) CreateMessage(_ context.Context, threadID, text string, fileIDs []string) (domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateMessage", append([]string{threadID, text}, fileIDs...)...); err != nil {
		return domain.Message{}, err
	}

	msg := domain.Message{
		ID:        f.id("msg"),
		Role:      domain.MessageRoleUser,
		CreatedAt: int64(f.nextID),
		Parts:     []domain.ContentPart{{Type: domain.ContentPartTypeText, Text: text}},
	}
	f.messages = append([]domain.Message{msg}, f.messages...)
	return msg, nil
}

func (f *fakeAPI) CreateRun(_ context.Context, threadID, assistantID string) (domain.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateRun", threadID, assistantID); err != nil {
		return domain.Run{}, err
	}
	return domain.Run{ID: f.id("run"), ThreadID: threadID, AssistantID: assistantID, Status: domain.RunStatusQueued}, nil
}

func (f *fakeAPI) RetrieveRun(_ context.Context, threadID, runID string) (domain.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("RetrieveRun", threadID, runID); err != nil {
		return domain.Run{}, err
	}

	status := domain.RunStatusInProgress
	if len(f.statuses) > 0 {
		status = f.statuses[min(f.retrieveCount, len(f.statuses)-1)]
	}
	f.retrieveCount++

	run := domain.Run{ID: runID, ThreadID: threadID, Status: status}
	if status == domain.RunStatusCompleted && f.reply != nil {
		f.messages = append([]domain.Message{{
			ID:        f.id("msg"),
			Role:      domain.MessageRoleAssistant,
			CreatedAt: int64(f.nextID),
			Parts:     f.reply,
		}}, f.messages...)
		f.reply = nil
	}
	if status == domain.RunStatusFailed {
		run.LastError = f.lastError
	}
	return run, nil
}

func (f *fakeAPI) CancelRun(_ context.Context, threadID, runID string) (domain.Run, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CancelRun", threadID, runID); err != nil {
		return domain.Run{}, err
	}
	return domain.Run{ID: runID, ThreadID: threadID, Status: domain.RunStatusCancelling}, nil
}

func (f *fakeAPI) ListMessages(_ context.Context, threadID string) ([]domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListMessages", threadID); err != nil {
		return nil, err
	}
	return append([]domain.Message(nil), f.messages...), nil
}

func (f *fakeAPI) GetFileContent(_ context.Context, fileID string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetFileContent", fileID); err != nil {
		return nil, err
	}
	data, ok := f.files[fileID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

func (f *fakeAPI) UploadFile(_ context.Context, path, name string) (domain.UploadedFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UploadFile", path, name); err != nil {
		return domain.UploadedFile{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.UploadedFile{}, err
	}
	id := f.id("file")
	f.uploaded[id] = data
	return domain.UploadedFile{ID: id, Name: name}, nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.RunEvent
}

func (p *recordingPublisher) Publish(_ string, event domain.RunEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) types() []domain.RunEventType {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]domain.RunEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func providerFor(api AssistantAPI) *clientProvider {
	return NewClientProvider(func(string) (AssistantAPI, error) { return api, nil }, "sk-default")
}

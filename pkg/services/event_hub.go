package services

import (
	"log/slog"
	"sync"

	"github.com/dskvich/assistant-chat/pkg/domain"
)

const subscriberBuffer = 16

type eventHub struct {
	mu   sync.RWMutex
	subs map[string]map[chan domain.RunEvent]struct{}
}

func NewEventHub() *eventHub {
	return &eventHub{
		subs: make(map[string]map[chan domain.RunEvent]struct{}),
	}
}

// Subscribe registers a listener for run events of one session. The returned
// func must be called to release it.
func (h *eventHub) Subscribe(sessionID string) (<-chan domain.RunEvent, func()) {
	ch := make(chan domain.RunEvent, subscriberBuffer)

	h.mu.Lock()
	if h.subs[sessionID] == nil {
		h.subs[sessionID] = make(map[chan domain.RunEvent]struct{})
	}
	h.subs[sessionID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()

			delete(h.subs[sessionID], ch)
			if len(h.subs[sessionID]) == 0 {
				delete(h.subs, sessionID)
			}
			close(ch)
		})
	}
}

// Publish never blocks; slow listeners lose events.
func (h *eventHub) Publish(sessionID string, event domain.RunEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[sessionID] {
		select {
		case ch <- event:
		default:
			slog.Warn("Dropping run event for slow subscriber", "sessionID", sessionID, "type", event.Type)
		}
	}
}

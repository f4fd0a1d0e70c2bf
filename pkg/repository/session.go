package repository

import (
	"sync"
	"time"

	"github.com/dskvich/assistant-chat/pkg/domain"
)

type sessionEntry struct {
	session    *domain.Session
	lastAccess time.Time
}

type sessionRepository struct {
	mu       sync.Mutex
	sessions map[string]sessionEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionRepository(ttl time.Duration) *sessionRepository {
	return &sessionRepository{
		sessions: make(map[string]sessionEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *sessionRepository) Save(session *domain.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = sessionEntry{
		session:    session,
		lastAccess: r.now(),
	}
}

// GetByID returns a live session and refreshes its idle timer.
func (r *sessionRepository) GetByID(id string) (*domain.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok {
		return nil, false
	}

	if r.isExpired(entry) {
		delete(r.sessions, id)
		return nil, false
	}

	entry.lastAccess = r.now()
	r.sessions[id] = entry

	return entry.session, true
}

func (r *sessionRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
}

// DeleteExpired drops idle sessions and returns how many were removed.
// Sessions with a run in flight are kept.
func (r *sessionRepository) DeleteExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed int
	for id, entry := range r.sessions {
		if r.isExpired(entry) && !entry.session.Busy() {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

func (r *sessionRepository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

func (r *sessionRepository) isExpired(entry sessionEntry) bool {
	if r.ttl <= 0 {
		return false
	}
	return r.now().Sub(entry.lastAccess) > r.ttl
}

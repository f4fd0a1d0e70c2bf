package workers

import (
	"context"
	"log/slog"
	"time"
)

type ExpiredSessionRemover interface {
	DeleteExpired() int
}

type sessionJanitor struct {
	sessions ExpiredSessionRemover
	interval time.Duration
}

func NewSessionJanitor(sessions ExpiredSessionRemover, interval time.Duration) *sessionJanitor {
	return &sessionJanitor{
		sessions: sessions,
		interval: interval,
	}
}

func (s *sessionJanitor) Name() string { return "session_janitor" }

func (s *sessionJanitor) Start(ctx context.Context) error {
	slog.Info("Starting worker", "name", s.Name(), "interval", s.interval)
	defer slog.Info("Worker stopped", "name", s.Name())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := s.sessions.DeleteExpired(); n > 0 {
				slog.InfoContext(ctx, "Expired sessions removed", "count", n)
			}
		}
	}
}

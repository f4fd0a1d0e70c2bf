package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/dskvich/assistant-chat/pkg/domain"
	"github.com/dskvich/assistant-chat/pkg/logger"
)

const (
	cancelRunTimeout = 10 * time.Second

	// maxRetrieveFailures is how many RetrieveRun errors in a row end the poll.
	maxRetrieveFailures = 3
)

type RunConfig struct {
	PollInterval    time.Duration
	MaxPollInterval time.Duration
	Timeout         time.Duration
}

type runService struct {
	clients   *clientProvider
	renderer  *renderService
	publisher EventPublisher
	cfg       RunConfig
}

func NewRunService(
	clients *clientProvider,
	renderer *renderService,
	publisher EventPublisher,
	cfg RunConfig,
) *runService {
	return &runService{
		clients:   clients,
		renderer:  renderer,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Submit appends the prompt to the session thread, runs the selected assistant
// on it and returns the rendered conversation once the run completes.
func (s *runService) Submit(ctx context.Context, sess *domain.Session, prompt string) ([]domain.RenderedMessage, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, domain.ErrEmptyPrompt
	}

	api, err := s.clients.ForSession(sess)
	if err != nil {
		return nil, err
	}

	assistantID := sess.AssistantID()
	if assistantID == "" {
		return nil, domain.ErrNoAssistant
	}

	ctx, cancel := s.runContext(ctx)
	if err := sess.BeginSubmission(cancel); err != nil {
		cancel()
		return nil, err
	}
	defer sess.EndSubmission()

	threadID, err := s.ensureThread(ctx, api, sess)
	if err != nil {
		return nil, err
	}

	fileIDs := sess.PendingFileIDs()

	slog.InfoContext(ctx, "Adding user message", "threadID", threadID, "files", len(fileIDs))

	if _, err := api.CreateMessage(ctx, threadID, prompt, fileIDs); err != nil {
		return nil, err
	}
	sess.MarkFilesAttached(fileIDs)

	run, err := api.CreateRun(ctx, threadID, assistantID)
	if err != nil {
		return nil, err
	}
	sess.UpdateRun(run)

	slog.InfoContext(ctx, "Run created", "runID", run.ID, "assistantID", assistantID, "status", run.Status)
	s.publisher.Publish(sess.ID, domain.RunEvent{Type: domain.RunEventSubmitted, RunID: run.ID, Status: run.Status})

	run, err = s.poll(ctx, api, sess, threadID, run)
	if err != nil {
		s.publishFailure(sess, run, err)
		return nil, err
	}

	if run.Status != domain.RunStatusCompleted {
		err := fmt.Errorf("%w: status %s", domain.ErrRunFailed, run.Status)
		if run.LastError != "" {
			err = fmt.Errorf("%w: status %s: %s", domain.ErrRunFailed, run.Status, run.LastError)
		}
		s.publishFailure(sess, run, err)
		return nil, err
	}

	messages, err := s.renderer.RenderThread(ctx, api, threadID)
	if err != nil {
		s.publishFailure(sess, run, err)
		return nil, fmt.Errorf("rendering thread: %w", err)
	}
	sess.SetHistory(messages)

	slog.InfoContext(ctx, "Run completed", "runID", run.ID, "messages", len(messages))
	s.publisher.Publish(sess.ID, domain.RunEvent{Type: domain.RunEventCompleted, RunID: run.ID, Status: run.Status})

	return messages, nil
}

func (s *runService) runContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, s.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

func (s *runService) ensureThread(ctx context.Context, api AssistantAPI, sess *domain.Session) (string, error) {
	if threadID := sess.ThreadID(); threadID != "" {
		return threadID, nil
	}

	threadID, err := api.CreateThread(ctx)
	if err != nil {
		return "", err
	}
	sess.SetThreadID(threadID)

	slog.InfoContext(ctx, "Thread created for session", "threadID", threadID)

	return threadID, nil
}

// poll waits until the run reaches a terminal status. It returns a pending run
// only together with an error.
func (s *runService) poll(ctx context.Context, api AssistantAPI, sess *domain.Session, threadID string, run domain.Run) (domain.Run, error) {
	b := s.newBackOff()
	notified := false
	failures := 0

	for !run.Status.IsTerminal() {
		if !notified {
			s.publisher.Publish(sess.ID, domain.RunEvent{Type: domain.RunEventPending, RunID: run.ID, Status: run.Status})
			notified = true
		}

		wait := b.NextBackOff()
		if wait == backoff.Stop {
			s.cancelRemote(ctx, api, threadID, run.ID)
			return run, domain.ErrRunTimeout
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.cancelRemote(ctx, api, threadID, run.ID)
			return run, contextError(ctx)
		case <-timer.C:
		}

		next, err := api.RetrieveRun(ctx, threadID, run.ID)
		if err != nil {
			if ctx.Err() != nil {
				s.cancelRemote(ctx, api, threadID, run.ID)
				return run, contextError(ctx)
			}

			failures++
			if failures < maxRetrieveFailures {
				slog.WarnContext(ctx, "Retrieving run, will retry", "runID", run.ID, "attempt", failures, logger.Err(err))
				continue
			}

			// The session is released on return, so the remote run must not outlive it.
			s.cancelRemote(ctx, api, threadID, run.ID)
			return run, fmt.Errorf("polling run %s: %w", run.ID, err)
		}
		failures = 0

		if next.Status != run.Status {
			slog.DebugContext(ctx, "Run status changed", "runID", run.ID, "from", run.Status, "to", next.Status)
			s.publisher.Publish(sess.ID, domain.RunEvent{Type: domain.RunEventStatus, RunID: next.ID, Status: next.Status})
		}

		run = next
		sess.UpdateRun(run)
	}

	return run, nil
}

func (s *runService) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.cfg.PollInterval
	b.MaxInterval = s.cfg.MaxPollInterval
	b.Multiplier = 1.5
	b.RandomizationFactor = 0
	b.MaxElapsedTime = s.cfg.Timeout
	b.Reset()
	return b
}

func (s *runService) cancelRemote(ctx context.Context, api AssistantAPI, threadID, runID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cancelRunTimeout)
	defer cancel()

	if _, err := api.CancelRun(ctx, threadID, runID); err != nil {
		slog.WarnContext(ctx, "Cancelling run", "runID", runID, logger.Err(err))
		return
	}
	slog.InfoContext(ctx, "Run cancelled", "runID", runID)
}

func (s *runService) publishFailure(sess *domain.Session, run domain.Run, err error) {
	s.publisher.Publish(sess.ID, domain.RunEvent{
		Type:   domain.RunEventFailed,
		RunID:  run.ID,
		Status: run.Status,
		Error:  err.Error(),
	})
}

func contextError(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.ErrRunTimeout
	}
	return fmt.Errorf("%w: %w", domain.ErrRunCancelled, ctx.Err())
}

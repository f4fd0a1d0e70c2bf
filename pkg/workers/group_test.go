package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type funcWorker struct {
	name string
	fn   func(ctx context.Context) error
}

func (f funcWorker) Name() string                    { return f.name }
func (f funcWorker) Start(ctx context.Context) error { return f.fn(ctx) }

func TestGroupStopsOnFirstError(t *testing.T) {
	stopped := make(chan struct{})
	g := Group{
		funcWorker{"failing", func(context.Context) error { return errors.New("boom") }},
		funcWorker{"waiting", func(ctx context.Context) error {
			<-ctx.Done()
			close(stopped)
			return nil
		}},
	}

	err := g.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing: boom")

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("waiting worker was not stopped")
	}
}

func TestGroupStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	g := Group{funcWorker{"idle", func(ctx context.Context) error {
		<-ctx.Done()
		return nil
	}}}

	done := make(chan error, 1)
	go func() { done <- g.Start(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("group did not stop")
	}
}

package background

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvery_RunsImmediatelyOnStart(t *testing.T) {
	js, err := NewJobScheduler()
	require.NoError(t, err)

	ran := make(chan struct{}, 1)
	require.NoError(t, js.Every("catalog-export", time.Hour, true, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}))

	js.Start()
	defer func() { assert.NoError(t, js.Stop()) }()

	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestEvery_RejectsNonPositiveInterval(t *testing.T) {
	js, err := NewJobScheduler()
	require.NoError(t, err)

	err = js.Every("broken", 0, false, func(context.Context) error { return nil })

	assert.Error(t, err)
	assert.Empty(t, js.JobNames())
}

func TestStop_CancelsTaskContext(t *testing.T) {
	js, err := NewJobScheduler()
	require.NoError(t, err)

	started := make(chan struct{})
	cancelled := make(chan error, 1)
	require.NoError(t, js.Every("long-running", time.Hour, true, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		cancelled <- ctx.Err()
		return errors.New("stopped")
	}))
	assert.Equal(t, []string{"long-running"}, js.JobNames())

	js.Start()
	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not start")
	}

	require.NoError(t, js.Stop())
	assert.ErrorIs(t, <-cancelled, context.Canceled)
}

package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eunio-health/eunio-sync/internal/logger"
)

var errTransient = errors.New("transient")

func isTransient(err error) bool { return errors.Is(err, errTransient) }

func newTestScheduler(attempts int) *Scheduler {
	return NewScheduler(Config{
		BaseDelay:   time.Millisecond,
		MaxDelay:    4 * time.Millisecond,
		MaxAttempts: attempts,
	}, isTransient, logger.Nop())
}

func TestScheduler_SucceedsFirstAttempt(t *testing.T) {
	s := newTestScheduler(3)

	calls := 0
	err := s.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestScheduler_RetriesTransientThenSucceeds(t *testing.T) {
	s := newTestScheduler(5)

	calls := 0
	err := s.Do(context.Background(), "op", func(context.Context) error {
		calls++
		if calls < 3 {
			return errTransient
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestScheduler_TerminalErrorSurfacesImmediately(t *testing.T) {
	s := newTestScheduler(5)
	terminal := errors.New("schema rejected")

	calls := 0
	err := s.Do(context.Background(), "op", func(context.Context) error {
		calls++
		return terminal
	})

	require.ErrorIs(t, err, terminal)
	assert.Equal(t, 1, calls, "terminal errors must not be re-attempted")
	assert.NotErrorIs(t, err, ErrAttemptsExhausted)
}

func TestScheduler_ExhaustionWrapsLastError(t *testing.T) {
	s := newTestScheduler(3)

	calls := 0
	err := s.Do(context.Background(), "push daily_log", func(context.Context) error {
		calls++
		return errTransient
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, ErrAttemptsExhausted)
	assert.ErrorIs(t, err, errTransient)
	assert.Contains(t, err.Error(), "push daily_log")
}

func TestScheduler_ContextCancelledDuringBackoff(t *testing.T) {
	s := NewScheduler(Config{
		BaseDelay:   time.Minute,
		MaxDelay:    time.Minute,
		MaxAttempts: 3,
	}, isTransient, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- s.Do(ctx, "op", func(context.Context) error {
			calls++
			return errTransient
		})
	}()

	// Let the first attempt fail and the scheduler park in backoff.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	case <-time.After(time.Second):
		t.Fatal("Do did not return after context cancellation")
	}
}

func TestScheduler_DefaultsApplied(t *testing.T) {
	s := NewScheduler(Config{}, isTransient, logger.Nop())

	assert.Equal(t, 500*time.Millisecond, s.cfg.BaseDelay)
	assert.Equal(t, 500*time.Millisecond, s.cfg.MaxDelay)
	assert.Equal(t, 1, s.cfg.MaxAttempts)

	// A single allowed attempt means a transient failure exhausts at once.
	err := s.Do(context.Background(), "op", func(context.Context) error {
		return errTransient
	})
	assert.ErrorIs(t, err, ErrAttemptsExhausted)
}

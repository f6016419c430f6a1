// Package retry wraps remote gateway calls with exponential backoff.
//
// The scheduler itself knows nothing about transports: a classification
// function supplied at construction decides whether an error is transient.
// Terminal errors surface immediately; transient ones are re-attempted with
// doubling delays up to a cap, and exhaustion is reported as
// [ErrAttemptsExhausted] wrapping the last transient error.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eunio-health/eunio-sync/internal/logger"
)

// ErrAttemptsExhausted marks an operation that stayed transiently broken
// through every allowed attempt. The sync cycle ends in Failed; the next
// trigger starts from scratch.
var ErrAttemptsExhausted = errors.New("retry attempts exhausted")

// Config holds the backoff shape.
type Config struct {
	// BaseDelay is the wait before the second attempt. Doubles per attempt.
	BaseDelay time.Duration
	// MaxDelay caps the doubling.
	MaxDelay time.Duration
	// MaxAttempts is the total number of tries, first attempt included.
	MaxAttempts int
}

// Scheduler executes operations with retry/backoff.
type Scheduler struct {
	cfg       Config
	retryable func(error) bool
	logger    *logger.Logger
}

// NewScheduler constructs a Scheduler. retryable classifies errors:
// true means transient (retry), false means terminal (surface now).
func NewScheduler(cfg Config, retryable func(error) bool, log *logger.Logger) *Scheduler {
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 500 * time.Millisecond
	}
	if cfg.MaxDelay < cfg.BaseDelay {
		cfg.MaxDelay = cfg.BaseDelay
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}

	return &Scheduler{cfg: cfg, retryable: retryable, logger: log}
}

// Do runs fn until it succeeds, fails terminally, exhausts attempts, or ctx
// is cancelled. op labels the operation in logs.
func (s *Scheduler) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	delay := s.cfg.BaseDelay
	var lastErr error

	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%s cancelled during backoff: %w", op, ctx.Err())
			case <-time.After(delay):
			}

			delay *= 2
			if delay > s.cfg.MaxDelay {
				delay = s.cfg.MaxDelay
			}
		}

		err := fn(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return fmt.Errorf("%s cancelled: %w", op, err)
		}
		if !s.retryable(err) {
			return err
		}

		lastErr = err
		s.logger.Debug().
			Str("func", "Scheduler.Do").
			Str("op", op).
			Int("attempt", attempt).
			Dur("next_delay", delay).
			Err(err).
			Msg("transient failure, will retry")
	}

	return fmt.Errorf("%w: %s failed after %d attempts: %w", ErrAttemptsExhausted, op, s.cfg.MaxAttempts, lastErr)
}

package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	defaultMaxAttempts    = 3
	defaultBackoffInitial = 200 * time.Millisecond
	defaultBackoffMax     = 3 * time.Second
)

// Policy bounds how often and how patiently an operation is retried.
type Policy struct {
	MaxAttempts    int
	BackoffInitial time.Duration
	BackoffMax     time.Duration

	// SleepFn replaces the timer-based wait, mostly for tests.
	SleepFn func(ctx context.Context, d time.Duration) error
}

func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:    defaultMaxAttempts,
		BackoffInitial: defaultBackoffInitial,
		BackoffMax:     defaultBackoffMax,
	}
}

func (p Policy) attempts() int {
	if p.MaxAttempts <= 0 {
		return defaultMaxAttempts
	}
	return p.MaxAttempts
}

// Delay returns the wait before the attempt after the given one: doubling
// from BackoffInitial and capped at BackoffMax.
func (p Policy) Delay(attempt int) time.Duration {
	base := p.BackoffInitial
	max := p.BackoffMax
	if base <= 0 {
		base = defaultBackoffInitial
	}
	if max <= 0 || max < base {
		max = base
	}

	delay := base
	for i := 1; i < attempt; i++ {
		if delay >= max/2 {
			return max
		}
		delay *= 2
	}
	if delay > max {
		return max
	}
	return delay
}

func (p Policy) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	if p.SleepFn != nil {
		return p.SleepFn(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do runs fn until it succeeds, fails terminally, or the policy runs out of
// attempts.
func Do[T any](ctx context.Context, p Policy, log *slog.Logger, stage string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if log == nil {
		log = slog.Default()
	}

	attempts := p.attempts()
	var lastErr error
	lastDecision := Decision{Class: ClassTerminal, Reason: "unset"}

	for attempt := 1; attempt <= attempts; attempt++ {
		value, err := fn(ctx)
		if err == nil {
			return value, nil
		}
		lastErr = err
		lastDecision = Classify(err)

		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		if !lastDecision.IsTransient() {
			return zero, fmt.Errorf("terminal_failure stage=%s attempt=%d reason=%s: %w", stage, attempt, lastDecision.Reason, err)
		}
		if attempt == attempts {
			break
		}

		log.Warn("call failed; retrying",
			"stage", stage,
			"classification_reason", lastDecision.Reason,
			"attempt", attempt,
			"error", err,
		)
		if sleepErr := p.sleep(ctx, p.Delay(attempt)); sleepErr != nil {
			return zero, sleepErr
		}
	}

	return zero, fmt.Errorf("transient_recovery_exhausted stage=%s attempts=%d reason=%s: %w", stage, attempts, lastDecision.Reason, lastErr)
}

package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned when the upstream is considered down.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State represents the circuit breaker state.
type State int

const (
	StateClosed   State = iota // Normal operation
	StateOpen                  // Failing, rejecting calls
	StateHalfOpen              // Probing whether the upstream recovered
)

// Breaker stops calling an upstream chain endpoint after repeated failures.
type Breaker struct {
	mu               sync.Mutex
	state            State
	failureCount     int
	successCount     int
	failureThreshold int
	successThreshold int
	openTimeout      time.Duration
	lastFailureAt    time.Time
	isFailure        func(error) bool
	onStateChange    func(from, to State)
	nowFn            func() time.Time
}

// Config configures a circuit breaker.
type Config struct {
	FailureThreshold int           // consecutive failures before opening (default: 5)
	SuccessThreshold int           // successes in half-open before closing (default: 2)
	OpenTimeout      time.Duration // how long to stay open before probing (default: 30s)
	// IsFailure decides whether an error counts against the upstream.
	// Defaults to every non-nil error.
	IsFailure     func(error) bool
	OnStateChange func(from, to State)
}

func New(cfg Config) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = 2
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.IsFailure == nil {
		cfg.IsFailure = func(err error) bool { return err != nil }
	}
	return &Breaker{
		state:            StateClosed,
		failureThreshold: cfg.FailureThreshold,
		successThreshold: cfg.SuccessThreshold,
		openTimeout:      cfg.OpenTimeout,
		isFailure:        cfg.IsFailure,
		onStateChange:    cfg.OnStateChange,
		nowFn:            time.Now,
	}
}

// Call runs fn when the breaker allows it and records the outcome.
// Errors that IsFailure rejects (e.g. "not found") count as successes:
// the upstream answered.
func (b *Breaker) Call(fn func() error) error {
	if err := b.Allow(); err != nil {
		return err
	}
	err := fn()
	if err != nil && b.isFailure(err) {
		b.RecordFailure()
	} else {
		b.RecordSuccess()
	}
	return err
}

// Allow checks if a call should be attempted.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maybeHalfOpen()
	if b.state == StateOpen {
		return ErrCircuitOpen
	}
	return nil
}

// RecordSuccess records a successful call.
func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failureCount = 0
	if b.state == StateHalfOpen {
		b.successCount++
		if b.successCount >= b.successThreshold {
			b.setState(StateClosed)
		}
	}
}

// RecordFailure records a failed call.
func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failureCount++
	b.successCount = 0
	b.lastFailureAt = b.nowFn()
	switch b.state {
	case StateHalfOpen:
		b.setState(StateOpen)
	case StateClosed:
		if b.failureCount >= b.failureThreshold {
			b.setState(StateOpen)
		}
	}
}

// State returns the current state, moving open to half-open once the
// open timeout has elapsed.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.maybeHalfOpen()
	return b.state
}

func (b *Breaker) maybeHalfOpen() {
	if b.state == StateOpen && b.nowFn().Sub(b.lastFailureAt) > b.openTimeout {
		b.setState(StateHalfOpen)
	}
}

func (b *Breaker) setState(to State) {
	from := b.state
	if from == to {
		return
	}
	b.state = to
	b.successCount = 0
	if to == StateClosed {
		b.failureCount = 0
	}
	if b.onStateChange != nil {
		b.onStateChange(from, to)
	}
}

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

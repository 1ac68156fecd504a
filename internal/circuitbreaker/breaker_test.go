package circuitbreaker

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("http status 503")

func newTestBreaker(cfg Config) (*Breaker, *time.Time) {
	b := New(cfg)
	now := time.Unix(1_700_000_000, 0)
	b.nowFn = func() time.Time { return now }
	return b, &now
}

func TestNew_Defaults(t *testing.T) {
	b := New(Config{})
	assert.Equal(t, StateClosed, b.State())
	assert.Equal(t, 5, b.failureThreshold)
	assert.Equal(t, 2, b.successThreshold)
	assert.Equal(t, 30*time.Second, b.openTimeout)
}

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b, _ := newTestBreaker(Config{FailureThreshold: 3, OpenTimeout: time.Hour})

	b.RecordFailure()
	b.RecordFailure()
	require.NoError(t, b.Allow(), "should still be closed below threshold")

	b.RecordFailure()
	assert.Equal(t, StateOpen, b.State())
	assert.ErrorIs(t, b.Allow(), ErrCircuitOpen)
}

func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker(Config{FailureThreshold: 3, OpenTimeout: time.Hour})

	b.RecordFailure()
	b.RecordFailure()
	b.RecordSuccess()
	b.RecordFailure()
	b.RecordFailure()
	assert.Equal(t, StateClosed, b.State())
}

func TestBreaker_HalfOpenLifecycle(t *testing.T) {
	var transitions []string
	b, now := newTestBreaker(Config{
		FailureThreshold: 1,
		SuccessThreshold: 2,
		OpenTimeout:      10 * time.Second,
		OnStateChange: func(from, to State) {
			transitions = append(transitions, from.String()+"->"+to.String())
		},
	})

	b.RecordFailure()
	assert.Equal(t, StateOpen, b.State())

	*now = now.Add(11 * time.Second)
	assert.Equal(t, StateHalfOpen, b.State())
	require.NoError(t, b.Allow())

	b.RecordSuccess()
	assert.Equal(t, StateHalfOpen, b.State())
	b.RecordSuccess()
	assert.Equal(t, StateClosed, b.State())

	assert.Equal(t, []string{"closed->open", "open->half-open", "half-open->closed"}, transitions)
}

func TestBreaker_HalfOpenReopensOnFailure(t *testing.T) {
	b, now := newTestBreaker(Config{FailureThreshold: 1, OpenTimeout: time.Second})

	b.RecordFailure()
	*now = now.Add(2 * time.Second)
	assert.Equal(t, StateHalfOpen, b.State())

	b.RecordFailure()
	assert.Equal(t, StateOpen, b.State())
}

func TestBreaker_CallCountsOnlyFailures(t *testing.T) {
	errNotFound := errors.New("not found")
	b, _ := newTestBreaker(Config{
		FailureThreshold: 2,
		OpenTimeout:      time.Hour,
		IsFailure:        func(err error) bool { return !errors.Is(err, errNotFound) },
	})

	for i := 0; i < 5; i++ {
		err := b.Call(func() error { return errNotFound })
		assert.ErrorIs(t, err, errNotFound)
	}
	assert.Equal(t, StateClosed, b.State())

	_ = b.Call(func() error { return errUpstream })
	_ = b.Call(func() error { return errUpstream })
	assert.Equal(t, StateOpen, b.State())

	called := false
	err := b.Call(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(99).String())
}

func TestBreaker_ConcurrentCalls(t *testing.T) {
	b := New(Config{FailureThreshold: 1000, OpenTimeout: time.Hour})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = b.Call(func() error {
				if i%2 == 0 {
					return errUpstream
				}
				return nil
			})
		}(i)
	}
	wg.Wait()
	assert.Equal(t, StateClosed, b.State())
}

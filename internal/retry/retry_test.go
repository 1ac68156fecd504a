package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallnet/js-recall-sub004/internal/chain/evm/rpc"
	"github.com/recallnet/js-recall-sub004/internal/circuitbreaker"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o deadline" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify_ExplicitMarkers(t *testing.T) {
	transient := Classify(Transient(errors.New("rpc timed out")))
	assert.Equal(t, ClassTransient, transient.Class)
	assert.Equal(t, "explicit_transient", transient.Reason)

	terminal := Classify(Terminal(errors.New("invalid params")))
	assert.Equal(t, ClassTerminal, terminal.Class)
	assert.Equal(t, "explicit_terminal", terminal.Reason)

	assert.Nil(t, Transient(nil))
	assert.Nil(t, Terminal(nil))
}

func TestClassify_RepresentativeRuntimeErrors(t *testing.T) {
	testCases := []struct {
		name          string
		err           error
		expectedClass Class
	}{
		{name: "context deadline transient", err: context.DeadlineExceeded, expectedClass: ClassTransient},
		{name: "context canceled terminal", err: fmt.Errorf("wrap: %w", context.Canceled), expectedClass: ClassTerminal},
		{name: "net timeout transient", err: fmt.Errorf("http request: %w", timeoutErr{}), expectedClass: ClassTransient},
		{name: "circuit open terminal", err: fmt.Errorf("call: %w", circuitbreaker.ErrCircuitOpen), expectedClass: ClassTerminal},
		{name: "jsonrpc server range transient", err: fmt.Errorf("eth_call: %w", &rpc.RPCError{Code: -32000, Message: "header not found"}), expectedClass: ClassTransient},
		{name: "jsonrpc invalid params terminal", err: &rpc.RPCError{Code: -32602, Message: "invalid params"}, expectedClass: ClassTerminal},
		{name: "http 503 transient", err: errors.New("http status 503: busy"), expectedClass: ClassTransient},
		{name: "http 401 terminal", err: errors.New("http status 401: unauthorized"), expectedClass: ClassTerminal},
		{name: "unknown defaults terminal", err: errors.New("unexpected failure"), expectedClass: ClassTerminal},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			decision := Classify(tc.err)
			assert.Equal(t, tc.expectedClass, decision.Class)
		})
	}
}

func TestPolicyDelay_DoublesAndCaps(t *testing.T) {
	p := Policy{BackoffInitial: 100 * time.Millisecond, BackoffMax: 500 * time.Millisecond}

	assert.Equal(t, 100*time.Millisecond, p.Delay(1))
	assert.Equal(t, 200*time.Millisecond, p.Delay(2))
	assert.Equal(t, 400*time.Millisecond, p.Delay(3))
	assert.Equal(t, 500*time.Millisecond, p.Delay(4))
	assert.Equal(t, 500*time.Millisecond, p.Delay(10))
}

func TestDo_RetriesTransientThenSucceeds(t *testing.T) {
	var slept []time.Duration
	p := Policy{
		MaxAttempts:    3,
		BackoffInitial: 10 * time.Millisecond,
		BackoffMax:     time.Second,
		SleepFn: func(_ context.Context, d time.Duration) error {
			slept = append(slept, d)
			return nil
		},
	}

	calls := 0
	got, err := Do(context.Background(), p, nil, "test", func(context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, errors.New("http status 502: bad gateway")
		}
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, got)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, slept)
}

func TestDo_StopsOnTerminal(t *testing.T) {
	p := Policy{MaxAttempts: 5, SleepFn: func(context.Context, time.Duration) error { return nil }}

	calls := 0
	_, err := Do(context.Background(), p, nil, "test", func(context.Context) (string, error) {
		calls++
		return "", errors.New("invalid params")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Contains(t, err.Error(), "terminal_failure")
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	p := Policy{MaxAttempts: 2, SleepFn: func(context.Context, time.Duration) error { return nil }}

	calls := 0
	_, err := Do(context.Background(), p, nil, "test", func(context.Context) (string, error) {
		calls++
		return "", errors.New("connection reset by peer")
	})
	require.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.Contains(t, err.Error(), "transient_recovery_exhausted")
}

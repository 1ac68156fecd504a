package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/recallnet/js-recall-sub004/internal/circuitbreaker"
	"github.com/recallnet/js-recall-sub004/internal/metrics"
	"golang.org/x/time/rate"
)

// Limiter paces RPC calls for one chain with a token bucket.
// A nil *Limiter never blocks.
type Limiter struct {
	limiter *rate.Limiter
	chain   string
}

// NewLimiter allows rps requests per second with a burst of burst tokens.
// It returns nil (unlimited) when rps is not positive.
func NewLimiter(rps float64, burst int, chain string) *Limiter {
	if rps <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		chain:   chain,
	}
}

// Wait blocks until one token is available or ctx is done.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}
	r := l.limiter.Reserve()
	if !r.OK() {
		return fmt.Errorf("rate: cannot reserve token")
	}
	delay := r.Delay()
	if delay <= 0 {
		return nil
	}
	metrics.RPCRateLimitWaits.WithLabelValues(l.chain).Inc()
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	}
}

// RecordRPCCall records an RPC call metric with status classification.
func RecordRPCCall(chain, method string, err error) {
	metrics.RPCCallsTotal.WithLabelValues(chain, method, ClassifyRPCError(err)).Inc()
}

// ClassifyRPCError buckets an RPC error into a low-cardinality status label.
func ClassifyRPCError(err error) string {
	if err == nil {
		return "ok"
	}
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return "circuit_open"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	lower := strings.ToLower(err.Error())
	switch {
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded"):
		return "timeout"
	case strings.Contains(lower, "rate limit") || strings.Contains(lower, "429") || strings.Contains(lower, "too many requests"):
		return "rate_limited"
	case strings.Contains(lower, "500") || strings.Contains(lower, "502") || strings.Contains(lower, "503") || strings.Contains(lower, "internal server error"):
		return "server_error"
	case strings.Contains(lower, "connection refused") || strings.Contains(lower, "connection reset") ||
		strings.Contains(lower, "no such host") || strings.Contains(lower, "broken pipe") || strings.Contains(lower, "eof"):
		return "network_error"
	default:
		return "client_error"
	}
}

package syncer

import (
	"sync"
	"time"

	"github.com/recallnet/js-recall-sub004/internal/domain/model"
)

type HealthStatus string

const (
	HealthStatusUnknown   HealthStatus = "UNKNOWN"
	HealthStatusHealthy   HealthStatus = "HEALTHY"
	HealthStatusUnhealthy HealthStatus = "UNHEALTHY"

	// DefaultUnhealthyThreshold is the number of consecutive failed cycles
	// before a chain is reported unhealthy.
	DefaultUnhealthyThreshold = 5
)

// ChainHealth tracks consecutive sync failures of one chain across wallets.
type ChainHealth struct {
	mu                  sync.RWMutex
	chain               model.Chain
	status              HealthStatus
	consecutiveFailures int
	lastSuccessAt       *time.Time
	lastFailureAt       *time.Time
	lastError           string
	unhealthyThreshold  int
	nowFn               func() time.Time
}

func NewChainHealth(c model.Chain, threshold int) *ChainHealth {
	if threshold <= 0 {
		threshold = DefaultUnhealthyThreshold
	}
	return &ChainHealth{
		chain:              c,
		status:             HealthStatusUnknown,
		unhealthyThreshold: threshold,
		nowFn:              time.Now,
	}
}

// RecordSuccess returns true if the chain recovered from unhealthy on this call.
func (h *ChainHealth) RecordSuccess() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	now := h.nowFn()
	wasUnhealthy := h.status == HealthStatusUnhealthy
	h.consecutiveFailures = 0
	h.lastSuccessAt = &now
	h.lastError = ""
	h.status = HealthStatusHealthy
	return wasUnhealthy
}

// RecordFailure returns true if the chain turned unhealthy on this call.
func (h *ChainHealth) RecordFailure(err error) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	now := h.nowFn()
	h.consecutiveFailures++
	h.lastFailureAt = &now
	if err != nil {
		h.lastError = err.Error()
	}
	if h.consecutiveFailures >= h.unhealthyThreshold && h.status != HealthStatusUnhealthy {
		h.status = HealthStatusUnhealthy
		return true
	}
	return false
}

func (h *ChainHealth) Healthy() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status != HealthStatusUnhealthy
}

func (h *ChainHealth) Snapshot() HealthSnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return HealthSnapshot{
		Chain:               h.chain.String(),
		Status:              string(h.status),
		ConsecutiveFailures: h.consecutiveFailures,
		LastSuccessAt:       h.lastSuccessAt,
		LastFailureAt:       h.lastFailureAt,
		LastError:           h.lastError,
	}
}

// HealthSnapshot is a point-in-time view of chain health (JSON-safe).
type HealthSnapshot struct {
	Chain               string     `json:"chain"`
	Status              string     `json:"status"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
	LastSuccessAt       *time.Time `json:"last_success_at,omitempty"`
	LastFailureAt       *time.Time `json:"last_failure_at,omitempty"`
	LastError           string     `json:"last_error,omitempty"`
}

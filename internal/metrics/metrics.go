package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Classifier and sync counters, partitioned by chain.

var (
	// Classifier
	TradesEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradesync",
		Subsystem: "classifier",
		Name:      "trades_emitted_total",
		Help:      "Total swaps emitted, by resolver path",
	}, []string{"chain", "resolved_by"})

	TransfersEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradesync",
		Subsystem: "classifier",
		Name:      "transfers_emitted_total",
		Help:      "Total deposit/withdraw transfers emitted",
	}, []string{"chain", "type"})

	CandidatesRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradesync",
		Subsystem: "classifier",
		Name:      "candidates_rejected_total",
		Help:      "Swap candidates dropped without emitting a trade",
	}, []string{"chain", "reason"})

	TransactionsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradesync",
		Subsystem: "classifier",
		Name:      "transactions_skipped_total",
		Help:      "Transactions skipped because the receipt was missing or failed to load",
	}, []string{"chain", "reason"})

	ChainErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradesync",
		Subsystem: "classifier",
		Name:      "chain_errors_total",
		Help:      "Per-chain failures isolated from sibling chains",
	}, []string{"chain", "stage"})

	ChainSyncLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "tradesync",
		Subsystem: "classifier",
		Name:      "chain_sync_duration_seconds",
		Help:      "Duration of one chain's classification pass",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}, []string{"chain", "operation"})

	LowestSkippedBlock = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tradesync",
		Subsystem: "classifier",
		Name:      "lowest_skipped_block",
		Help:      "Lowest block reported for re-polling (0 when none)",
	}, []string{"chain"})

	// RPC
	RPCCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradesync",
		Subsystem: "rpc",
		Name:      "calls_total",
		Help:      "Total RPC calls by chain, method and status",
	}, []string{"chain", "method", "status"})

	RPCRateLimitWaits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradesync",
		Subsystem: "rpc",
		Name:      "rate_limit_waits_total",
		Help:      "Total times an RPC call waited on the rate limiter",
	}, []string{"chain"})

	ReceiptCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradesync",
		Subsystem: "rpc",
		Name:      "receipt_cache_hits_total",
		Help:      "Receipts served from the in-process cache",
	}, []string{"chain"})

	BreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tradesync",
		Subsystem: "rpc",
		Name:      "breaker_state",
		Help:      "Circuit breaker state (0=closed, 1=open, 2=half-open)",
	}, []string{"chain"})

	// Syncer
	SyncCyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradesync",
		Subsystem: "syncer",
		Name:      "cycles_total",
		Help:      "Total sync cycles per wallet and chain",
	}, []string{"chain", "status"})

	SyncCursorBlock = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "tradesync",
		Subsystem: "syncer",
		Name:      "cursor_block",
		Help:      "Most recent next from-block stored for a chain",
	}, []string{"chain"})

	PublishErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradesync",
		Subsystem: "sink",
		Name:      "publish_errors_total",
		Help:      "Failed publishes of classified records",
	}, []string{"topic"})

	// Alerts
	AlertsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradesync",
		Subsystem: "alert",
		Name:      "sent_total",
		Help:      "Alerts delivered, by channel and type",
	}, []string{"channel", "type"})

	AlertsCooldownSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tradesync",
		Subsystem: "alert",
		Name:      "cooldown_skipped_total",
		Help:      "Alerts suppressed by the per-chain cooldown",
	}, []string{"channel", "type"})
)

package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelTrace "go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/recallnet/js-recall-sub004/internal/alert"
	"github.com/recallnet/js-recall-sub004/internal/domain/model"
	"github.com/recallnet/js-recall-sub004/internal/metrics"
	"github.com/recallnet/js-recall-sub004/internal/swap"
	"github.com/recallnet/js-recall-sub004/internal/tracing"
)

const defaultConcurrency = 4

// CursorStore persists the next block to poll per wallet and chain.
type CursorStore interface {
	Get(ctx context.Context, wallet string, c model.Chain) (int64, bool, error)
	Set(ctx context.Context, wallet string, c model.Chain, block int64) error
}

type Publisher interface {
	PublishTrades(ctx context.Context, trades []model.Trade) error
	PublishTransfers(ctx context.Context, wallet string, transfers []model.Transfer) error
}

type Provider interface {
	Sync(ctx context.Context, wallet string, since swap.Since, chains []model.Chain) (swap.SyncResult, error)
}

type Config struct {
	Wallets  []string
	Chains   []model.Chain
	Interval time.Duration
	// InitialLookback is how far back a wallet with no stored cursor starts.
	InitialLookback    time.Duration
	Concurrency        int
	UnhealthyThreshold int
}

// Syncer polls every watched wallet on every chain, publishes what the
// provider classifies and advances the per-wallet cursor.
//
// A reported skipped block becomes the next cursor, so the following cycle
// re-reads everything from that block. Trade and transfer ids are
// deterministic, so consumers dedupe the re-emitted records.
type Syncer struct {
	provider  Provider
	cursors   CursorStore
	publisher Publisher
	cfg       Config
	health    map[model.Chain]*ChainHealth
	alerter   alert.Alerter
	logger    *slog.Logger
	nowFn     func() time.Time
}

type Option func(*Syncer)

// WithAlerter notifies a when a chain turns unhealthy and when it recovers.
func WithAlerter(a alert.Alerter) Option {
	return func(s *Syncer) { s.alerter = a }
}

func WithClock(now func() time.Time) Option {
	return func(s *Syncer) { s.nowFn = now }
}

func New(provider Provider, cursors CursorStore, publisher Publisher, cfg Config, logger *slog.Logger, opts ...Option) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	s := &Syncer{
		provider:  provider,
		cursors:   cursors,
		publisher: publisher,
		cfg:       cfg,
		health:    make(map[model.Chain]*ChainHealth, len(cfg.Chains)),
		alerter:   &alert.NoopAlerter{},
		logger:    logger.With("component", "syncer"),
		nowFn:     time.Now,
	}
	for _, c := range cfg.Chains {
		s.health[c] = NewChainHealth(c, cfg.UnhealthyThreshold)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes a cycle immediately and then once per interval until ctx is done.
func (s *Syncer) Run(ctx context.Context) error {
	interval := s.cfg.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	s.logger.Info("syncer started",
		"wallets", len(s.cfg.Wallets),
		"chains", len(s.cfg.Chains),
		"interval", interval,
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := s.RunOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("sync cycle finished with errors", "error", err)
		}
		select {
		case <-ctx.Done():
			s.logger.Info("syncer stopped", "cause", "context_done")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce syncs every wallet and chain pair once. Pairs fail independently;
// the returned error joins every failure.
func (s *Syncer) RunOnce(ctx context.Context) error {
	var (
		mu   sync.Mutex
		errs []error
	)
	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)
	for _, wallet := range s.cfg.Wallets {
		for _, c := range s.cfg.Chains {
			wallet, c := wallet, c
			g.Go(func() error {
				if err := s.syncPair(ctx, wallet, c); err != nil {
					mu.Lock()
					errs = append(errs, fmt.Errorf("%s/%s: %w", c, wallet, err))
					mu.Unlock()
				}
				return nil
			})
		}
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

func (s *Syncer) syncPair(ctx context.Context, wallet string, c model.Chain) error {
	log := s.logger.With("chain", c.String(), "wallet", wallet)
	spanCtx, span := tracing.Tracer("syncer").Start(ctx, "syncer.syncPair",
		otelTrace.WithAttributes(
			attribute.String("chain", c.String()),
			attribute.String("wallet", wallet),
		),
	)
	defer span.End()

	next, err := s.cycle(spanCtx, log, wallet, c)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.SyncCyclesTotal.WithLabelValues(c.String(), "error").Inc()
		if h := s.health[c]; h != nil && h.RecordFailure(err) {
			log.Error("chain marked unhealthy", "error", err)
			s.notify(ctx, alert.Alert{
				Type:    alert.AlertTypeUnhealthy,
				Chain:   c.String(),
				Title:   "Sync failing",
				Message: fmt.Sprintf("%d consecutive failed cycles", h.Snapshot().ConsecutiveFailures),
				Fields:  map[string]string{"wallet": wallet, "last_error": err.Error()},
			})
		}
		log.Warn("sync cycle failed", "error", err)
		return err
	}
	metrics.SyncCyclesTotal.WithLabelValues(c.String(), "ok").Inc()
	if h := s.health[c]; h != nil && h.RecordSuccess() {
		log.Info("chain recovered")
		s.notify(ctx, alert.Alert{
			Type:    alert.AlertTypeRecovery,
			Chain:   c.String(),
			Title:   "Sync recovered",
			Message: "cycle succeeded after repeated failures",
			Fields:  map[string]string{"wallet": wallet},
		})
	}
	if next != nil {
		span.SetAttributes(attribute.Int64("next_block", *next))
	}
	return nil
}

func (s *Syncer) cycle(ctx context.Context, log *slog.Logger, wallet string, c model.Chain) (*int64, error) {
	since, err := s.since(ctx, wallet, c)
	if err != nil {
		return nil, err
	}

	res, err := s.provider.Sync(ctx, wallet, since, []model.Chain{c})
	if err != nil {
		return nil, fmt.Errorf("sync: %w", err)
	}
	if chainErr, ok := res.Failed[c]; ok {
		return nil, fmt.Errorf("sync: %w", chainErr)
	}

	// Publish before moving the cursor so a failed publish is retried next cycle.
	if err := s.publisher.PublishTrades(ctx, res.Trades); err != nil {
		return nil, fmt.Errorf("publish trades: %w", err)
	}
	if err := s.publisher.PublishTransfers(ctx, wallet, res.Transfers); err != nil {
		return nil, fmt.Errorf("publish transfers: %w", err)
	}

	next, ok := nextCursor(res, c)
	if !ok {
		log.Debug("head unknown, cursor unchanged", "trades", len(res.Trades))
		return nil, nil
	}
	if err := s.cursors.Set(ctx, wallet, c, next); err != nil {
		return nil, fmt.Errorf("store cursor: %w", err)
	}
	metrics.SyncCursorBlock.WithLabelValues(c.String()).Set(float64(next))
	log.Info("sync cycle complete",
		"trades", len(res.Trades),
		"transfers", len(res.Transfers),
		"next_block", next,
	)
	return &next, nil
}

func (s *Syncer) since(ctx context.Context, wallet string, c model.Chain) (swap.Since, error) {
	block, found, err := s.cursors.Get(ctx, wallet, c)
	if err != nil {
		return swap.Since{}, fmt.Errorf("load cursor: %w", err)
	}
	if found {
		return swap.SinceBlock(block), nil
	}
	return swap.SinceTime(s.nowFn().Add(-s.cfg.InitialLookback)), nil
}

// nextCursor picks the block the next cycle starts from: the skipped block
// when one was reported, otherwise the block after the observed head.
func nextCursor(res swap.SyncResult, c model.Chain) (int64, bool) {
	if skipped, ok := res.SkippedBlocks[c]; ok {
		return skipped, true
	}
	if head, ok := res.Heads[c]; ok {
		return head + 1, true
	}
	return 0, false
}

func (s *Syncer) notify(ctx context.Context, a alert.Alert) {
	if err := s.alerter.Send(ctx, a); err != nil {
		s.logger.Warn("alert delivery failed", "type", a.Type, "chain", a.Chain, "error", err)
	}
}

// Healthy reports false when any chain crossed the failure threshold.
func (s *Syncer) Healthy() bool {
	for _, h := range s.health {
		if !h.Healthy() {
			return false
		}
	}
	return true
}

// Health returns per-chain snapshots in configured chain order.
func (s *Syncer) Health() []HealthSnapshot {
	out := make([]HealthSnapshot, 0, len(s.cfg.Chains))
	for _, c := range s.cfg.Chains {
		if h := s.health[c]; h != nil {
			out = append(out, h.Snapshot())
		}
	}
	return out
}

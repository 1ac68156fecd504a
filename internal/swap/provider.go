package swap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelTrace "go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/recallnet/js-recall-sub004/internal/chain"
	"github.com/recallnet/js-recall-sub004/internal/domain/model"
	"github.com/recallnet/js-recall-sub004/internal/metrics"
	"github.com/recallnet/js-recall-sub004/internal/tracing"
)

var (
	ErrEmptyWallet = errors.New("wallet address is required")
	ErrNoSource    = errors.New("no data source configured for chain")
)

// TradesResult is the outcome of GetTradesSince.
type TradesResult struct {
	Trades []model.Trade
	// LowestSkippedBlock is the minimum of SkippedBlocks, nil when no chain
	// has a block to re-poll.
	LowestSkippedBlock *int64
	SkippedBlocks      map[model.Chain]int64
}

// SyncResult is everything one pass over a wallet produces.
type SyncResult struct {
	TradesResult
	Transfers []model.Transfer
	// Heads holds the head block observed per chain at the start of the pass.
	Heads map[model.Chain]int64
	// Failed lists chains whose pass was aborted; their data is absent.
	Failed map[model.Chain]error
}

type chainOutcome struct {
	chain     model.Chain
	trades    []model.Trade
	transfers []model.Transfer
	skipped   *int64
	head      int64
	headKnown bool
	err       error
}

// Provider classifies a wallet's on-chain activity into trades and plain
// transfers across chains. It holds no state between calls.
type Provider struct {
	sources   map[model.Chain]chain.Source
	cfg       Config
	protocols *ProtocolMatcher
	logger    *slog.Logger
	nowFn     func() time.Time
}

type Option func(*Provider)

// WithClock overrides time.Now for time-based starts.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.nowFn = now }
}

func New(sources []chain.Source, cfg Config, logger *slog.Logger, opts ...Option) *Provider {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	p := &Provider{
		sources:   make(map[model.Chain]chain.Source, len(sources)),
		cfg:       cfg,
		protocols: NewProtocolMatcher(cfg.ProtocolFilters),
		logger:    logger.With("component", "swap_classifier"),
		nowFn:     time.Now,
	}
	for _, src := range sources {
		if src == nil {
			continue
		}
		p.sources[src.Chain()] = src
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name composes the identities of the underlying sources.
func (p *Provider) Name() string {
	names := make([]string, 0, len(p.sources))
	for _, src := range p.sources {
		names = append(names, src.Name())
	}
	sort.Strings(names)
	return "swap-classifier(" + strings.Join(names, ",") + ")"
}

// IsHealthy reports whether every configured source is healthy.
func (p *Provider) IsHealthy(ctx context.Context) bool {
	if len(p.sources) == 0 {
		return false
	}
	for c, src := range p.sources {
		if !src.IsHealthy(ctx) {
			p.logger.Warn("source unhealthy", "chain", c.String(), "source", src.Name())
			return false
		}
	}
	return true
}

// GetNativeBalance returns the wallet's native balance on an EVM chain.
func (p *Provider) GetNativeBalance(ctx context.Context, wallet string, c model.Chain) (string, error) {
	if strings.TrimSpace(wallet) == "" {
		return "", ErrEmptyWallet
	}
	if !c.IsEVM() {
		return "", fmt.Errorf("native balance on %s: %w", c, chain.ErrUnsupportedChainOperation)
	}
	src, ok := p.sources[c]
	if !ok {
		return "", fmt.Errorf("native balance on %s: %w", c, ErrNoSource)
	}
	balance, err := src.GetBalance(ctx, wallet)
	if err != nil {
		return "", fmt.Errorf("native balance on %s: %w", c, err)
	}
	return balance, nil
}

// GetTradesSince returns the wallet's swaps since the given start on each
// chain. Failures are isolated per chain and per transaction: they are
// logged and the affected data is left out. The error is reserved for an
// invalid request.
func (p *Provider) GetTradesSince(ctx context.Context, wallet string, since Since, chains []model.Chain) (TradesResult, error) {
	res, err := p.run(ctx, wallet, since, chains, true, false)
	if err != nil {
		return TradesResult{}, err
	}
	return res.TradesResult, nil
}

// GetTransferHistory returns the wallet's plain deposits and withdrawals.
func (p *Provider) GetTransferHistory(ctx context.Context, wallet string, since Since, chains []model.Chain) ([]model.Transfer, error) {
	res, err := p.run(ctx, wallet, since, chains, false, true)
	if err != nil {
		return nil, err
	}
	return res.Transfers, nil
}

// Sync classifies trades and transfers in one pass over each chain.
func (p *Provider) Sync(ctx context.Context, wallet string, since Since, chains []model.Chain) (SyncResult, error) {
	return p.run(ctx, wallet, since, chains, true, true)
}

func (p *Provider) run(ctx context.Context, wallet string, since Since, chains []model.Chain, wantTrades, wantTransfers bool) (SyncResult, error) {
	result := SyncResult{
		TradesResult: TradesResult{SkippedBlocks: map[model.Chain]int64{}},
		Heads:        map[model.Chain]int64{},
		Failed:       map[model.Chain]error{},
	}
	wallet = model.NormalizeAddress(wallet)
	if wallet == "" {
		return result, ErrEmptyWallet
	}
	chains = dedupeChains(chains)
	if len(chains) == 0 {
		p.logger.Warn("no chains requested", "wallet", wallet)
		return result, nil
	}

	outcomes := make([]chainOutcome, len(chains))
	// No shared context: one chain failing must not cancel the others.
	var g errgroup.Group
	for i, c := range chains {
		i, c := i, c
		g.Go(func() error {
			outcomes[i] = p.syncChain(ctx, wallet, since, c, wantTrades, wantTransfers)
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range outcomes {
		if o.err != nil {
			result.Failed[o.chain] = o.err
			continue
		}
		if o.headKnown {
			result.Heads[o.chain] = o.head
		}
		result.Trades = append(result.Trades, o.trades...)
		result.Transfers = append(result.Transfers, o.transfers...)

		lowest := int64(0)
		if o.skipped != nil {
			lowest = *o.skipped
			result.SkippedBlocks[o.chain] = *o.skipped
			if result.LowestSkippedBlock == nil || *o.skipped < *result.LowestSkippedBlock {
				b := *o.skipped
				result.LowestSkippedBlock = &b
			}
		}
		metrics.LowestSkippedBlock.WithLabelValues(o.chain.String()).Set(float64(lowest))
	}
	return result, nil
}

func (p *Provider) syncChain(ctx context.Context, wallet string, since Since, c model.Chain, wantTrades, wantTransfers bool) chainOutcome {
	log := p.logger.With("chain", c.String(), "wallet", wallet)
	operation := "trades"
	switch {
	case wantTrades && wantTransfers:
		operation = "sync"
	case wantTransfers:
		operation = "transfers"
	}

	spanCtx, span := tracing.Tracer("swap").Start(ctx, "swap.syncChain",
		otelTrace.WithAttributes(
			attribute.String("chain", c.String()),
			attribute.String("wallet", wallet),
			attribute.String("operation", operation),
		),
	)
	defer span.End()
	start := time.Now()
	defer func() {
		metrics.ChainSyncLatency.WithLabelValues(c.String(), operation).Observe(time.Since(start).Seconds())
	}()

	outcome, stage := p.classifyChain(spanCtx, log, wallet, since, c, wantTrades, wantTransfers)
	if outcome.err != nil {
		span.RecordError(outcome.err)
		span.SetStatus(codes.Error, outcome.err.Error())
		metrics.ChainErrors.WithLabelValues(c.String(), stage).Inc()
		log.Error("chain sync failed", "stage", stage, "error", outcome.err)
		return outcome
	}
	span.SetAttributes(
		attribute.Int("trades", len(outcome.trades)),
		attribute.Int("transfers", len(outcome.transfers)),
	)
	return outcome
}

func (p *Provider) classifyChain(ctx context.Context, log *slog.Logger, wallet string, since Since, c model.Chain, wantTrades, wantTransfers bool) (chainOutcome, string) {
	outcome := chainOutcome{chain: c}

	src, ok := p.sources[c]
	if !ok {
		outcome.err = fmt.Errorf("%s: %w", c, ErrNoSource)
		return outcome, "source"
	}
	history, ok := src.(chain.TransferHistorySource)
	if !ok {
		outcome.err = fmt.Errorf("transfer history on %s (%s): %w", c, src.Name(), chain.ErrUnsupportedChainOperation)
		return outcome, "source"
	}

	head, err := src.GetBlockNumber(ctx)
	switch {
	case err == nil:
		outcome.head, outcome.headKnown = head, true
	case since.IsBlock():
		// An explicit start needs no head; skips are then kept regardless of age.
		log.Warn("head block unavailable", "error", err)
	default:
		outcome.err = fmt.Errorf("get head block: %w", err)
		return outcome, "head"
	}

	params := p.cfg.params(c)
	from := StartBlock(since, head, p.nowFn(), params.SecondsPerBlock)
	var to *int64
	if outcome.headKnown {
		if from > head {
			return outcome, ""
		}
		to = &head
	}

	transfers, err := p.fetchTransfers(ctx, log, history, wallet, from, to)
	if err != nil {
		outcome.err = fmt.Errorf("fetch transfers from block %d: %w", from, err)
		return outcome, "transfers"
	}

	groups := GroupTransfers(wallet, transfers)
	native := p.cfg.NativeToken(c)
	for i := range groups {
		groups[i].Chain = c
	}

	if wantTransfers {
		outcome.transfers = ClassifyGroups(groups, native)
		for _, t := range outcome.transfers {
			metrics.TransfersEmitted.WithLabelValues(c.String(), string(t.Type)).Inc()
		}
	}
	if wantTrades {
		tracker := NewSkipTracker(head, outcome.headKnown, p.cfg.MaxSkipAgeBlocks)
		outcome.trades = p.resolveSwaps(ctx, log, src, groups, native, tracker)
		outcome.skipped = tracker.Lowest()
	}

	log.Debug("chain classified",
		"from_block", from,
		"transfers", len(transfers),
		"groups", len(groups),
		"trades", len(outcome.trades),
	)
	return outcome, ""
}

// fetchTransfers follows each direction's page keys until the upstream stops
// returning one. A page key seen before ends that direction instead of looping.
func (p *Provider) fetchTransfers(ctx context.Context, log *slog.Logger, src chain.TransferHistorySource, wallet string, from int64, to *int64) ([]model.RawTransfer, error) {
	var all []model.RawTransfer
	for _, dir := range []chain.Direction{chain.DirectionOutbound, chain.DirectionInbound} {
		pageKey := ""
		seen := map[string]struct{}{}
		for page := 0; ; page++ {
			res, err := src.GetAssetTransfers(ctx, chain.TransferQuery{
				Address:   wallet,
				Direction: dir,
				FromBlock: from,
				ToBlock:   to,
				PageKey:   pageKey,
			})
			if err != nil {
				return nil, fmt.Errorf("%s page %d: %w", dir, page, err)
			}
			all = append(all, res.Transfers...)
			if res.PageKey == "" {
				break
			}
			if _, dup := seen[res.PageKey]; dup {
				log.Warn("transfer page key repeated, stopping pagination",
					"direction", dir, "page", page, "page_key", res.PageKey)
				break
			}
			seen[res.PageKey] = struct{}{}
			pageKey = res.PageKey
		}
	}
	return all, nil
}

// resolveSwaps resolves every swap candidate concurrently, bounded by
// ReceiptConcurrency, and returns trades in group order.
func (p *Provider) resolveSwaps(ctx context.Context, log *slog.Logger, src chain.Source, groups []TransferGroup, native string, tracker *SkipTracker) []model.Trade {
	results := make([]*model.Trade, len(groups))

	var g errgroup.Group
	g.SetLimit(p.cfg.ReceiptConcurrency)
	for i := range groups {
		if !groups[i].IsSwapCandidate() {
			continue
		}
		i := i
		g.Go(func() error {
			results[i] = p.resolveCandidate(ctx, log, src, groups[i], native, tracker)
			return nil
		})
	}
	_ = g.Wait()

	trades := make([]model.Trade, 0, len(groups))
	for _, t := range results {
		if t != nil {
			trades = append(trades, *t)
		}
	}
	return trades
}

func (p *Provider) resolveCandidate(ctx context.Context, log *slog.Logger, src chain.Source, group TransferGroup, native string, tracker *SkipTracker) *model.Trade {
	c := group.Chain
	log = log.With("tx_hash", group.TxHash)

	if group.TxHash == "" {
		p.reject(log, c, "missing_hash", nil)
		return nil
	}

	receipt, err := src.GetTransactionReceipt(ctx, group.TxHash)
	if err != nil {
		p.skip(log, c, group.BlockNumber, "receipt_error", tracker, err)
		return nil
	}
	if receipt == nil {
		p.skip(log, c, group.BlockNumber, "receipt_missing", tracker, nil)
		return nil
	}
	if receipt.Status == "0x0" {
		p.reject(log, c, "reverted", nil)
		return nil
	}

	res, err := ResolveFromReceipt(group, receipt, native)
	if errors.Is(err, ErrInconclusive) {
		res, err = ResolveFromTransfers(group, native)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrZeroOutboundValue):
			p.reject(log, c, "zero_outbound", err)
		case errors.Is(err, ErrSameToken):
			p.reject(log, c, "same_token", nil)
		default:
			p.reject(log, c, "inconclusive", nil)
		}
		return nil
	}

	protocol := model.ProtocolUnknown
	if p.protocols.Enabled(c) {
		txTo := receipt.To
		if txTo == "" {
			tx, err := src.GetTransaction(ctx, group.TxHash)
			if err != nil || tx == nil {
				p.skip(log, c, group.BlockNumber, "transaction_unavailable", tracker, err)
				return nil
			}
			txTo = tx.To
		}
		name, ok := p.protocols.Match(c, txTo, receipt)
		if !ok {
			p.reject(log, c, "protocol_filter", nil)
			return nil
		}
		protocol = name
	}

	gasUsed, gasPrice := GasFromReceipt(receipt)
	metrics.TradesEmitted.WithLabelValues(c.String(), string(res.ResolvedBy)).Inc()
	return &model.Trade{
		ID:          model.TradeID(c, group.Wallet, group.TxHash),
		TxHash:      group.TxHash,
		Chain:       c,
		Wallet:      group.Wallet,
		FromToken:   res.FromToken,
		ToToken:     res.ToToken,
		FromSymbol:  res.FromSymbol,
		ToSymbol:    res.ToSymbol,
		FromAmount:  res.FromAmount,
		ToAmount:    res.ToAmount,
		Protocol:    protocol,
		GasUsed:     gasUsed,
		GasPrice:    gasPrice,
		BlockNumber: group.BlockNumber,
		Timestamp:   group.Timestamp,
		ResolvedBy:  res.ResolvedBy,
	}
}

func (p *Provider) skip(log *slog.Logger, c model.Chain, block int64, reason string, tracker *SkipTracker, err error) {
	metrics.TransactionsSkipped.WithLabelValues(c.String(), reason).Inc()
	tracked := tracker.Track(block)
	log.Warn("transaction skipped",
		"reason", reason,
		"block", block,
		"retry", tracked,
		"error", err,
	)
}

func (p *Provider) reject(log *slog.Logger, c model.Chain, reason string, err error) {
	metrics.CandidatesRejected.WithLabelValues(c.String(), reason).Inc()
	if reason == "zero_outbound" {
		log.Warn("swap candidate rejected", "reason", reason, "error", err)
		return
	}
	log.Debug("swap candidate rejected", "reason", reason)
}

func dedupeChains(chains []model.Chain) []model.Chain {
	seen := make(map[model.Chain]struct{}, len(chains))
	out := make([]model.Chain, 0, len(chains))
	for _, c := range chains {
		c = model.ParseChain(c.String())
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

package evm

import (
	"context"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/shopspring/decimal"

	"github.com/recallnet/js-recall-sub004/internal/chain"
	"github.com/recallnet/js-recall-sub004/internal/chain/evm/rpc"
	"github.com/recallnet/js-recall-sub004/internal/chain/ratelimit"
	"github.com/recallnet/js-recall-sub004/internal/circuitbreaker"
	"github.com/recallnet/js-recall-sub004/internal/domain/model"
	"github.com/recallnet/js-recall-sub004/internal/metrics"
	"github.com/recallnet/js-recall-sub004/internal/retry"
)

const (
	defaultReceiptCacheSize = 4096
	nativeDecimals          = 18
	transfersPerPage        = 1000
)

// Source serves one EVM chain over JSON-RPC. Every upstream call is paced by
// the rate limiter, guarded by the circuit breaker and retried on transient
// failures.
type Source struct {
	chain    model.Chain
	client   rpc.RPCClient
	limiter  *ratelimit.Limiter
	breaker  *circuitbreaker.Breaker
	policy   retry.Policy
	receipts *lru.Cache[string, *model.Receipt]
	logger   *slog.Logger

	cacheSize int
}

var _ chain.TransferHistorySource = (*Source)(nil)

type Option func(*Source)

func WithRateLimiter(l *ratelimit.Limiter) Option {
	return func(s *Source) { s.limiter = l }
}

func WithBreaker(b *circuitbreaker.Breaker) Option {
	return func(s *Source) { s.breaker = b }
}

func WithRetryPolicy(p retry.Policy) Option {
	return func(s *Source) { s.policy = p }
}

func WithReceiptCacheSize(size int) Option {
	return func(s *Source) { s.cacheSize = size }
}

func NewSource(chainID model.Chain, client rpc.RPCClient, logger *slog.Logger, opts ...Option) (*Source, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Source{
		chain:     chainID,
		client:    client,
		policy:    retry.DefaultPolicy(),
		logger:    logger.With("chain", chainID.String()),
		cacheSize: defaultReceiptCacheSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.breaker == nil {
		s.breaker = newBreaker(chainID)
	}
	if s.cacheSize <= 0 {
		s.cacheSize = defaultReceiptCacheSize
	}

	cache, err := lru.New[string, *model.Receipt](s.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create receipt cache: %w", err)
	}
	s.receipts = cache
	return s, nil
}

// newBreaker opens on transport and server faults only; an upstream that
// answers "invalid params" is still alive.
func newBreaker(chainID model.Chain) *circuitbreaker.Breaker {
	return circuitbreaker.New(circuitbreaker.Config{
		IsFailure: func(err error) bool {
			return retry.Classify(err).IsTransient()
		},
		OnStateChange: func(_, to circuitbreaker.State) {
			metrics.BreakerState.WithLabelValues(chainID.String()).Set(float64(to))
		},
	})
}

func (s *Source) Name() string {
	return "evm-rpc:" + s.chain.String()
}

func (s *Source) Chain() model.Chain {
	return s.chain
}

func (s *Source) GetBlockNumber(ctx context.Context) (int64, error) {
	return invoke(ctx, s, "eth_blockNumber", s.client.GetBlockNumber)
}

func (s *Source) GetTransactionReceipt(ctx context.Context, hash string) (*model.Receipt, error) {
	key := model.NormalizeHash(hash)
	if cached, ok := s.receipts.Get(key); ok {
		metrics.ReceiptCacheHits.WithLabelValues(s.chain.String()).Inc()
		return cached, nil
	}

	raw, err := invoke(ctx, s, "eth_getTransactionReceipt", func(ctx context.Context) (*rpc.TransactionReceipt, error) {
		return s.client.GetTransactionReceipt(ctx, hash)
	})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	receipt, err := convertReceipt(raw)
	if err != nil {
		return nil, fmt.Errorf("convert receipt %s: %w", hash, err)
	}
	// Pending receipts are not cached; a later poll may find them.
	s.receipts.Add(key, receipt)
	return receipt, nil
}

func (s *Source) GetTransaction(ctx context.Context, hash string) (*model.TxEnvelope, error) {
	tx, err := invoke(ctx, s, "eth_getTransactionByHash", func(ctx context.Context) (*rpc.Transaction, error) {
		return s.client.GetTransactionByHash(ctx, hash)
	})
	if err != nil || tx == nil {
		return nil, err
	}
	return &model.TxEnvelope{Hash: tx.Hash, From: tx.From, To: tx.To}, nil
}

// GetBalance returns the native balance in whole units, e.g. "1.5" ETH.
func (s *Source) GetBalance(ctx context.Context, address string) (string, error) {
	hexBalance, err := invoke(ctx, s, "eth_getBalance", func(ctx context.Context) (string, error) {
		return s.client.GetBalance(ctx, address)
	})
	if err != nil {
		return "", err
	}
	wei, err := rpc.ParseHexBig(hexBalance)
	if err != nil {
		return "", fmt.Errorf("parse balance of %s: %w", address, err)
	}
	return decimal.NewFromBigInt(wei, -nativeDecimals).String(), nil
}

func (s *Source) GetAssetTransfers(ctx context.Context, query chain.TransferQuery) (chain.TransferPage, error) {
	params := rpc.AssetTransfersParams{
		FromBlock:    rpc.FormatHexInt64(query.FromBlock),
		ToBlock:      "latest",
		Category:     historyCategories(s.chain),
		Order:        "asc",
		WithMetadata: true,
		MaxCount:     rpc.FormatHexInt64(transfersPerPage),
		PageKey:      query.PageKey,
	}
	if query.ToBlock != nil {
		params.ToBlock = rpc.FormatHexInt64(*query.ToBlock)
	}
	switch query.Direction {
	case chain.DirectionOutbound:
		params.FromAddress = query.Address
	case chain.DirectionInbound:
		params.ToAddress = query.Address
	default:
		return chain.TransferPage{}, fmt.Errorf("unknown transfer direction %q", query.Direction)
	}

	result, err := invoke(ctx, s, "alchemy_getAssetTransfers", func(ctx context.Context) (*rpc.AssetTransfersResult, error) {
		return s.client.GetAssetTransfers(ctx, params)
	})
	if err != nil {
		return chain.TransferPage{}, err
	}

	page := chain.TransferPage{
		Transfers: make([]model.RawTransfer, 0, len(result.Transfers)),
		PageKey:   result.PageKey,
	}
	for _, at := range result.Transfers {
		transfer, convErr := convertTransfer(s.chain, at)
		if convErr != nil {
			s.logger.Warn("dropping malformed transfer",
				"tx_hash", at.Hash,
				"unique_id", at.UniqueID,
				"error", convErr,
			)
			continue
		}
		page.Transfers = append(page.Transfers, transfer)
	}
	return page, nil
}

// IsHealthy reports false while the breaker is open without touching the
// upstream; otherwise it probes the head block.
func (s *Source) IsHealthy(ctx context.Context) bool {
	if s.breaker.State() == circuitbreaker.StateOpen {
		return false
	}
	_, err := s.client.GetBlockNumber(ctx)
	ratelimit.RecordRPCCall(s.chain.String(), "eth_blockNumber", err)
	return err == nil
}

func invoke[T any](ctx context.Context, s *Source, method string, fn func(context.Context) (T, error)) (T, error) {
	return retry.Do(ctx, s.policy, s.logger, method, func(ctx context.Context) (T, error) {
		var out T
		if err := s.limiter.Wait(ctx); err != nil {
			return out, err
		}
		err := s.breaker.Call(func() error {
			var callErr error
			out, callErr = fn(ctx)
			return callErr
		})
		ratelimit.RecordRPCCall(s.chain.String(), method, err)
		return out, err
	})
}

// historyCategories lists the transfer categories the indexed history API
// serves per chain. Internal native transfers are only indexed on a few.
func historyCategories(c model.Chain) []string {
	switch c {
	case model.ChainEthereum, model.ChainPolygon:
		return []string{"external", "internal", "erc20"}
	default:
		return []string{"external", "erc20"}
	}
}

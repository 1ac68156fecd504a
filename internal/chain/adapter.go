package chain

import (
	"context"
	"errors"

	"github.com/recallnet/js-recall-sub004/internal/domain/model"
)

// ErrUnsupportedChainOperation is returned when a chain cannot serve a call,
// e.g. a native balance lookup on a non-EVM chain.
var ErrUnsupportedChainOperation = errors.New("operation not supported for chain")

//go:generate mockgen -destination=mocks/mock_source.go -package=mocks . Source,TransferHistorySource

// Source abstracts the per-chain data the classifier consumes.
type Source interface {
	// Name identifies the upstream provider (e.g. "evm-rpc:base").
	Name() string

	// Chain returns the chain the source serves.
	Chain() model.Chain

	// GetBlockNumber returns the latest block on chain.
	GetBlockNumber(ctx context.Context) (int64, error)

	// GetTransactionReceipt returns the receipt for hash, or nil when the
	// receipt is not yet available.
	GetTransactionReceipt(ctx context.Context, hash string) (*model.Receipt, error)

	// GetTransaction returns the sender/recipient of a transaction, or nil when unknown.
	GetTransaction(ctx context.Context, hash string) (*model.TxEnvelope, error)

	// GetBalance returns the native balance of address as a decimal string.
	GetBalance(ctx context.Context, address string) (string, error)

	// IsHealthy reports whether the upstream is currently usable.
	IsHealthy(ctx context.Context) bool
}

// TransferHistorySource extends Source with an indexed transfer-history API.
// Sources that only speak raw JSON-RPC do not implement it.
type TransferHistorySource interface {
	Source
	GetAssetTransfers(ctx context.Context, query TransferQuery) (TransferPage, error)
}

// Direction selects which side of a transfer the queried address is on.
type Direction string

const (
	DirectionOutbound Direction = "outbound"
	DirectionInbound  Direction = "inbound"
)

// TransferQuery selects one page of transfers for an address.
type TransferQuery struct {
	Address   string
	Direction Direction
	FromBlock int64
	ToBlock   *int64 // nil means latest
	PageKey   string
}

// TransferPage is one page of transfers; an empty PageKey marks the last page.
type TransferPage struct {
	Transfers []model.RawTransfer
	PageKey   string
}

package model

import (
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProtocolUnknown labels swaps accepted without a protocol allow-list.
const ProtocolUnknown = "Unknown"

// Resolution records which resolver produced a trade.
type Resolution string

const (
	ResolvedByReceipt  Resolution = "receipt"
	ResolvedByFallback Resolution = "fallback"
)

// Trade is a swap of FromToken into ToToken executed by a wallet in one transaction.
type Trade struct {
	ID          uuid.UUID       `json:"id"`
	TxHash      string          `json:"tx_hash"`
	Chain       Chain           `json:"chain"`
	Wallet      string          `json:"wallet"`
	FromToken   string          `json:"from_token"`
	ToToken     string          `json:"to_token"`
	FromSymbol  string          `json:"from_symbol"`
	ToSymbol    string          `json:"to_symbol"`
	FromAmount  decimal.Decimal `json:"from_amount"`
	ToAmount    decimal.Decimal `json:"to_amount"`
	Protocol    string          `json:"protocol"`
	GasUsed     *big.Int        `json:"gas_used,omitempty"`
	GasPrice    *big.Int        `json:"gas_price,omitempty"`
	BlockNumber int64           `json:"block_number"`
	Timestamp   time.Time       `json:"timestamp"`
	ResolvedBy  Resolution      `json:"resolved_by"`
}

// TradeID is the dedupe key of a trade: one per chain, wallet and transaction.
func TradeID(chain Chain, wallet, txHash string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("trade|"+chain.String()+"|"+NormalizeAddress(wallet)+"|"+NormalizeHash(txHash)))
}

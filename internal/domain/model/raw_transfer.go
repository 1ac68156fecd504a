package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransferCategory is the indexer's taxonomy for a transfer leg.
type TransferCategory string

const (
	// CategoryExternal is a top-level native value transfer.
	CategoryExternal TransferCategory = "external"
	// CategoryInternal is a native value transfer made by a contract call.
	CategoryInternal TransferCategory = "internal"
	CategoryERC20    TransferCategory = "erc20"
	// CategoryUnsupported covers NFT and other legs the engine ignores.
	CategoryUnsupported TransferCategory = "unsupported"
)

// ParseTransferCategory maps an indexer category tag onto the engine taxonomy.
func ParseTransferCategory(raw string) TransferCategory {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "external":
		return CategoryExternal
	case "internal":
		return CategoryInternal
	case "erc20":
		return CategoryERC20
	default:
		return CategoryUnsupported
	}
}

// IsNative reports whether legs of this category move the chain's native asset.
func (c TransferCategory) IsNative() bool {
	return c == CategoryExternal || c == CategoryInternal
}

// RawTransfer is one leg of value movement as reported by the chain data source.
type RawTransfer struct {
	TxHash          string
	Chain           Chain
	BlockNumber     int64
	Timestamp       time.Time
	From            string
	To              string
	Asset           string
	ContractAddress string // empty for the native asset
	Amount          decimal.Decimal
	Category        TransferCategory
	UniqueID        string
	LogIndex        *int64
}

// IsNative reports whether the leg carries the native asset. The category tag
// is authoritative; a native-tagged leg that still names a contract is malformed.
func (t RawTransfer) IsNative() bool {
	return t.Category.IsNative() && strings.TrimSpace(t.ContractAddress) == ""
}

// IsWellFormed reports whether the leg can be attributed to a single asset.
func (t RawTransfer) IsWellFormed() bool {
	switch {
	case t.Category.IsNative():
		return strings.TrimSpace(t.ContractAddress) == ""
	case t.Category == CategoryERC20:
		return strings.TrimSpace(t.ContractAddress) != ""
	default:
		return false
	}
}

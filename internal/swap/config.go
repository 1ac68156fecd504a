package swap

import (
	"github.com/recallnet/js-recall-sub004/internal/domain/model"
)

const (
	DefaultMaxSkipAgeBlocks   = 1800
	DefaultReceiptConcurrency = 8

	fallbackSecondsPerBlock = 12
)

// ChainParams are the static per-chain constants the classifier needs.
type ChainParams struct {
	SecondsPerBlock float64
	// WrappedNative is the ERC-20 used to price the native asset.
	WrappedNative string
	// NativeToken is the reserved token id of native legs. Empty means the
	// zero address.
	NativeToken  string
	NativeSymbol string
}

// Config is immutable once handed to New.
type Config struct {
	Chains             map[model.Chain]ChainParams
	MaxSkipAgeBlocks   int64
	ReceiptConcurrency int
	ProtocolFilters    []model.ProtocolFilter
}

func DefaultConfig() Config {
	return Config{
		Chains: map[model.Chain]ChainParams{
			model.ChainEthereum: {
				SecondsPerBlock: 12,
				WrappedNative:   "0xc02aaa39b223fe8d0a0e5c4f27ead9083c756cc2",
				NativeSymbol:    "ETH",
			},
			model.ChainBase: {
				SecondsPerBlock: 2,
				WrappedNative:   "0x4200000000000000000000000000000000000006",
				NativeSymbol:    "ETH",
			},
			model.ChainOptimism: {
				SecondsPerBlock: 2,
				WrappedNative:   "0x4200000000000000000000000000000000000006",
				NativeSymbol:    "ETH",
			},
			model.ChainArbitrum: {
				SecondsPerBlock: 0.25,
				WrappedNative:   "0x82af49447d8a07e3bd95bd0d56f35241523fbab1",
				NativeSymbol:    "ETH",
			},
			model.ChainPolygon: {
				SecondsPerBlock: 2,
				WrappedNative:   "0x0d500b1d8e8ef31e21c99d1db9a6444d3adf1270",
				NativeSymbol:    "MATIC",
			},
			model.ChainBSC: {
				SecondsPerBlock: 3,
				WrappedNative:   "0xbb4cdb9cbd36b01bd1cbaebf2de08d9173bc095c",
				NativeSymbol:    "BNB",
			},
			model.ChainAvalanche: {
				SecondsPerBlock: 2,
				WrappedNative:   "0xb31f66aa3c1e785363f0875a1b74e27b85fd66c7",
				NativeSymbol:    "AVAX",
			},
		},
		MaxSkipAgeBlocks:   DefaultMaxSkipAgeBlocks,
		ReceiptConcurrency: DefaultReceiptConcurrency,
	}
}

// withDefaults fills zero-valued knobs so a partially built Config still works.
func (c Config) withDefaults() Config {
	if c.MaxSkipAgeBlocks <= 0 {
		c.MaxSkipAgeBlocks = DefaultMaxSkipAgeBlocks
	}
	if c.ReceiptConcurrency <= 0 {
		c.ReceiptConcurrency = DefaultReceiptConcurrency
	}
	if c.Chains == nil {
		c.Chains = DefaultConfig().Chains
	}
	return c
}

func (c Config) params(chain model.Chain) ChainParams {
	p := c.Chains[chain]
	if p.SecondsPerBlock <= 0 {
		p.SecondsPerBlock = fallbackSecondsPerBlock
	}
	return p
}

// NativeToken returns the token id native legs map to on chain.
func (c Config) NativeToken(chain model.Chain) string {
	if p, ok := c.Chains[chain]; ok && p.NativeToken != "" {
		return model.NormalizeAddress(p.NativeToken)
	}
	return model.NativeTokenAddress
}

// PriceLookupAddress swaps the reserved native id for the chain's wrapped
// native token. Other tokens are returned normalized and unchanged.
func (c Config) PriceLookupAddress(chain model.Chain, token string) string {
	token = model.NormalizeAddress(token)
	if token != c.NativeToken(chain) {
		return token
	}
	if p, ok := c.Chains[chain]; ok && p.WrappedNative != "" {
		return model.NormalizeAddress(p.WrappedNative)
	}
	return token
}

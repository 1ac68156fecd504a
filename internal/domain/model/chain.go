package model

import "strings"

type Chain string

const (
	ChainEthereum  Chain = "ethereum"
	ChainBase      Chain = "base"
	ChainOptimism  Chain = "optimism"
	ChainArbitrum  Chain = "arbitrum"
	ChainPolygon   Chain = "polygon"
	ChainBSC       Chain = "bsc"
	ChainAvalanche Chain = "avalanche"
	ChainSolana    Chain = "solana"
)

var evmChains = map[Chain]struct{}{
	ChainEthereum:  {},
	ChainBase:      {},
	ChainOptimism:  {},
	ChainArbitrum:  {},
	ChainPolygon:   {},
	ChainBSC:       {},
	ChainAvalanche: {},
}

func (c Chain) String() string {
	return string(c)
}

// IsEVM reports whether the chain speaks the Ethereum JSON-RPC dialect.
func (c Chain) IsEVM() bool {
	_, ok := evmChains[c]
	return ok
}

// ParseChain normalizes a chain identifier ("Base", " ETHEREUM ").
func ParseChain(raw string) Chain {
	return Chain(strings.ToLower(strings.TrimSpace(raw)))
}

// EVMChains returns the supported EVM chains in a stable order.
func EVMChains() []Chain {
	return []Chain{
		ChainEthereum,
		ChainBase,
		ChainOptimism,
		ChainArbitrum,
		ChainPolygon,
		ChainBSC,
		ChainAvalanche,
	}
}

package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recallnet/js-recall-sub004/internal/domain/model"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, int64(1800), cfg.MaxSkipAgeBlocks)
	assert.Equal(t, 8, cfg.ReceiptConcurrency)

	for _, c := range model.EVMChains() {
		params, ok := cfg.Chains[c]
		assert.True(t, ok, c)
		assert.Positive(t, params.SecondsPerBlock, c)
		assert.NotEmpty(t, params.WrappedNative, c)
	}
	assert.Equal(t, 0.25, cfg.Chains[model.ChainArbitrum].SecondsPerBlock)
}

func TestConfig_PriceLookupAddress(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "0x0d500b1d8e8ef31e21c99d1db9a6444d3adf1270",
		cfg.PriceLookupAddress(model.ChainPolygon, model.NativeTokenAddress))
	assert.Equal(t, "0x4200000000000000000000000000000000000006",
		cfg.PriceLookupAddress(model.ChainBase, model.NativeTokenAddress))
	assert.Equal(t, tokenUSDC, cfg.PriceLookupAddress(model.ChainBase, "0x833589FCD6EDB6E08F4C7C32D4F71B54BDA02913"))
	assert.Equal(t, model.NativeTokenAddress, cfg.PriceLookupAddress(model.ChainSolana, model.NativeTokenAddress))
}

func TestConfig_NativeTokenOverride(t *testing.T) {
	cfg := DefaultConfig()
	params := cfg.Chains[model.ChainPolygon]
	params.NativeToken = "0x0000000000000000000000000000000000001010"
	cfg.Chains[model.ChainPolygon] = params

	assert.Equal(t, "0x0000000000000000000000000000000000001010", cfg.NativeToken(model.ChainPolygon))
	assert.Equal(t, model.NativeTokenAddress, cfg.NativeToken(model.ChainBase))
	assert.Equal(t, "0x0d500b1d8e8ef31e21c99d1db9a6444d3adf1270",
		cfg.PriceLookupAddress(model.ChainPolygon, "0x0000000000000000000000000000000000001010"))
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, int64(DefaultMaxSkipAgeBlocks), cfg.MaxSkipAgeBlocks)
	assert.Equal(t, DefaultReceiptConcurrency, cfg.ReceiptConcurrency)
	assert.NotEmpty(t, cfg.Chains)
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/recallnet/js-recall-sub004/internal/domain/model"
	"github.com/recallnet/js-recall-sub004/internal/swap"
)

// FileConfig is the optional YAML file named by PROTOCOL_FILTERS_FILE.
//
//	protocol_filters:
//	  - protocol: UniswapV2
//	    chain: ethereum
//	    router: 0x7a250d5630b4cf539739df2c5dacb4c659f2488d
//	    swap_event_signature: 0xd78ad95fa46c994b6551d0da85fc275fe613ce37657fb8d5e3d130840159d822
//	chains:
//	  polygon:
//	    native_token: "0x0000000000000000000000000000000000001010"
type FileConfig struct {
	ProtocolFilters []model.ProtocolFilter         `yaml:"protocol_filters"`
	Chains          map[string]ChainParamsOverride `yaml:"chains"`
}

// ChainParamsOverride replaces the non-zero fields of a chain's defaults.
type ChainParamsOverride struct {
	SecondsPerBlock float64 `yaml:"seconds_per_block"`
	WrappedNative   string  `yaml:"wrapped_native"`
	NativeToken     string  `yaml:"native_token"`
	NativeSymbol    string  `yaml:"native_symbol"`
}

func LoadFile(path string) (*FileConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	return ParseFile(raw)
}

func ParseFile(raw []byte) (*FileConfig, error) {
	var file FileConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	for i, f := range file.ProtocolFilters {
		if f.Protocol == "" || f.Chain == "" || f.RouterAddress == "" || f.SwapEventSignature == "" {
			return nil, fmt.Errorf("protocol_filters[%d]: protocol, chain, router and swap_event_signature are required", i)
		}
		if !model.ParseChain(f.Chain.String()).IsEVM() {
			return nil, fmt.Errorf("protocol_filters[%d]: unsupported chain %q", i, f.Chain)
		}
	}
	return &file, nil
}

func (f *FileConfig) apply(cfg *swap.Config) {
	cfg.ProtocolFilters = append(cfg.ProtocolFilters, f.ProtocolFilters...)
	for name, o := range f.Chains {
		c := model.ParseChain(name)
		params := cfg.Chains[c]
		if o.SecondsPerBlock > 0 {
			params.SecondsPerBlock = o.SecondsPerBlock
		}
		if o.WrappedNative != "" {
			params.WrappedNative = o.WrappedNative
		}
		if o.NativeToken != "" {
			params.NativeToken = o.NativeToken
		}
		if o.NativeSymbol != "" {
			params.NativeSymbol = o.NativeSymbol
		}
		cfg.Chains[c] = params
	}
}

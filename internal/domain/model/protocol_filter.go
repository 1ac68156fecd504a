package model

// ProtocolFilter allows swaps routed through Router that emit SwapEventSignature.
type ProtocolFilter struct {
	Protocol           string `yaml:"protocol"`
	Chain              Chain  `yaml:"chain"`
	RouterAddress      string `yaml:"router"`
	SwapEventSignature string `yaml:"swap_event_signature"`
	// FactoryAddress is informational; pools are not resolved to factories.
	FactoryAddress string `yaml:"factory,omitempty"`
}

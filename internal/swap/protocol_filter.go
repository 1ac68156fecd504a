package swap

import (
	"strings"

	"github.com/recallnet/js-recall-sub004/internal/domain/model"
)

// ProtocolMatcher is the per-chain protocol allow-list. It is built once and
// only read afterwards.
type ProtocolMatcher struct {
	byChain map[model.Chain][]model.ProtocolFilter
}

func NewProtocolMatcher(filters []model.ProtocolFilter) *ProtocolMatcher {
	m := &ProtocolMatcher{byChain: make(map[model.Chain][]model.ProtocolFilter)}
	for _, f := range filters {
		f.Chain = model.ParseChain(f.Chain.String())
		f.RouterAddress = model.NormalizeAddress(f.RouterAddress)
		f.SwapEventSignature = strings.ToLower(strings.TrimSpace(f.SwapEventSignature))
		f.FactoryAddress = model.NormalizeAddress(f.FactoryAddress)
		if f.RouterAddress == "" || f.SwapEventSignature == "" {
			continue
		}
		m.byChain[f.Chain] = append(m.byChain[f.Chain], f)
	}
	return m
}

// Enabled reports whether chain has a non-empty allow-list.
func (m *ProtocolMatcher) Enabled(chain model.Chain) bool {
	return m != nil && len(m.byChain[chain]) > 0
}

// Match returns the protocol label for a swap whose transaction was sent to
// txTo. With no allow-list everything matches as ProtocolUnknown. Otherwise
// the router must match first, then the receipt must carry the router's swap
// event.
func (m *ProtocolMatcher) Match(chain model.Chain, txTo string, receipt *model.Receipt) (string, bool) {
	if !m.Enabled(chain) {
		return model.ProtocolUnknown, true
	}
	to := model.NormalizeAddress(txTo)
	if to == "" {
		return "", false
	}

	for _, f := range m.byChain[chain] {
		if f.RouterAddress != to {
			continue
		}
		if receiptHasTopic(receipt, f.SwapEventSignature) {
			return f.Protocol, true
		}
	}
	return "", false
}

func receiptHasTopic(receipt *model.Receipt, topic0 string) bool {
	if receipt == nil {
		return false
	}
	for _, l := range receipt.Logs {
		if !l.Removed && len(l.Topics) > 0 && strings.EqualFold(l.Topics[0], topic0) {
			return true
		}
	}
	return false
}

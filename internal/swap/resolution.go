package swap

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/recallnet/js-recall-sub004/internal/domain/model"
)

var (
	// ErrInconclusive means the resolver could not decide; the next one runs.
	ErrInconclusive = errors.New("swap resolution inconclusive")
	// ErrZeroOutboundValue rejects a candidate whose input leg moved nothing.
	// It is a data-shape problem and is never retried.
	ErrZeroOutboundValue = errors.New("zero outbound value")
	// ErrSameToken rejects a candidate whose input and output are one asset.
	ErrSameToken = errors.New("input and output token are the same")
)

// Resolution is the economic outcome of a swap candidate.
type Resolution struct {
	FromToken  string
	ToToken    string
	FromSymbol string
	ToSymbol   string
	FromAmount decimal.Decimal
	ToAmount   decimal.Decimal
	ResolvedBy model.Resolution
}

// legToken is the token id of a leg: the reserved native id for native legs,
// the contract otherwise. ok is false for legs that cannot be attributed.
func legToken(t model.RawTransfer, nativeToken string) (string, bool) {
	if !t.IsWellFormed() {
		return "", false
	}
	if t.IsNative() {
		return nativeToken, true
	}
	return model.NormalizeAddress(t.ContractAddress), true
}

// sumLegs totals the legs carrying token. matched is false when none do.
func sumLegs(legs []model.RawTransfer, token, nativeToken string) (total decimal.Decimal, symbol string, matched bool) {
	total = decimal.Zero
	for _, leg := range legs {
		id, ok := legToken(leg, nativeToken)
		if !ok || id != token {
			continue
		}
		if !matched {
			symbol = leg.Asset
			matched = true
		}
		total = total.Add(leg.Amount)
	}
	return total, symbol, matched
}

package swap

import (
	"fmt"

	"github.com/recallnet/js-recall-sub004/internal/domain/model"
)

// ResolveFromTransfers classifies a candidate from its legs alone: exactly one
// outbound leg and inbound legs that all carry one asset. It runs when the
// receipt holds no usable ERC-20 pattern, typically a native-asset input.
func ResolveFromTransfers(group TransferGroup, nativeToken string) (Resolution, error) {
	if len(group.Outbound) != 1 || len(group.Inbound) == 0 {
		return Resolution{}, ErrInconclusive
	}

	outLeg := group.Outbound[0]
	fromToken, ok := legToken(outLeg, nativeToken)
	if !ok {
		return Resolution{}, ErrInconclusive
	}

	toToken := ""
	for _, leg := range group.Inbound {
		token, ok := legToken(leg, nativeToken)
		if !ok {
			return Resolution{}, ErrInconclusive
		}
		if toToken != "" && token != toToken {
			return Resolution{}, ErrInconclusive
		}
		toToken = token
	}

	if outLeg.Amount.IsZero() {
		return Resolution{}, fmt.Errorf("%w: token %s", ErrZeroOutboundValue, fromToken)
	}
	if fromToken == toToken {
		return Resolution{}, ErrSameToken
	}

	toAmount, toSymbol, _ := sumLegs(group.Inbound, toToken, nativeToken)
	return Resolution{
		FromToken:  fromToken,
		ToToken:    toToken,
		FromSymbol: outLeg.Asset,
		ToSymbol:   toSymbol,
		FromAmount: outLeg.Amount,
		ToAmount:   toAmount,
		ResolvedBy: model.ResolvedByFallback,
	}, nil
}

package swap

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/recallnet/js-recall-sub004/internal/domain/model"
)

// GasFromReceipt parses the gas fields of receipt. Missing or malformed
// values come back nil; gas never blocks a trade.
func GasFromReceipt(receipt *model.Receipt) (gasUsed, gasPrice *big.Int) {
	if receipt == nil {
		return nil, nil
	}
	return parseQuantity(receipt.GasUsed), parseQuantity(receipt.EffectiveGasPrice)
}

func parseQuantity(raw string) *big.Int {
	if raw == "" {
		return nil
	}
	v, err := hexutil.DecodeBig(raw)
	if err != nil {
		return nil
	}
	return v
}

package swap

import (
	"fmt"
	"math/big"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/recallnet/js-recall-sub004/internal/domain/model"
)

// TransferEventTopic is topic0 of ERC-20 Transfer(address,address,uint256).
var TransferEventTopic = strings.ToLower(crypto.Keccak256Hash([]byte("Transfer(address,address,uint256)")).Hex())

type transferLog struct {
	token    string
	from     string
	to       string
	value    *big.Int
	logIndex int64
}

// walletTransferLogs decodes the receipt's ERC-20 Transfer events touching
// wallet, ordered by log index. ERC-721 transfers index the token id as a
// fourth topic and are skipped by the exact topic count.
func walletTransferLogs(receipt *model.Receipt, wallet string) (outbound, inbound []transferLog) {
	if receipt == nil {
		return nil, nil
	}
	logs := make([]transferLog, 0, len(receipt.Logs))
	for _, l := range receipt.Logs {
		if l.Removed || len(l.Topics) != 3 || !strings.EqualFold(l.Topics[0], TransferEventTopic) {
			continue
		}
		var value *big.Int
		if raw := common.FromHex(l.Data); len(raw) > 0 {
			value = new(big.Int).SetBytes(raw)
		}
		logs = append(logs, transferLog{
			token:    model.NormalizeAddress(l.Address),
			from:     topicAddress(l.Topics[1]),
			to:       topicAddress(l.Topics[2]),
			value:    value,
			logIndex: l.LogIndex,
		})
	}
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].logIndex < logs[j].logIndex })

	for _, l := range logs {
		if l.from == wallet {
			outbound = append(outbound, l)
		}
		if l.to == wallet {
			inbound = append(inbound, l)
		}
	}
	return outbound, inbound
}

func topicAddress(topic string) string {
	return model.NormalizeAddress(common.HexToAddress(topic).Hex())
}

// ResolveFromReceipt picks the swap's tokens from the receipt's Transfer logs:
// the first outbound log is the input and the last inbound log is the output,
// which collapses multi-hop routes to their ends. Amounts are taken from the
// group's legs for those tokens, never from leg positions.
func ResolveFromReceipt(group TransferGroup, receipt *model.Receipt, nativeToken string) (Resolution, error) {
	wallet := model.NormalizeAddress(group.Wallet)
	outLogs, inLogs := walletTransferLogs(receipt, wallet)
	if len(outLogs) == 0 || len(inLogs) == 0 {
		return Resolution{}, ErrInconclusive
	}

	input := outLogs[0]
	output := inLogs[len(inLogs)-1]
	// A Transfer log without data carries no amount to check.
	if input.value == nil {
		return Resolution{}, ErrInconclusive
	}
	if input.value.Sign() == 0 {
		return Resolution{}, fmt.Errorf("%w: token %s log %d", ErrZeroOutboundValue, input.token, input.logIndex)
	}
	if input.token == output.token {
		return Resolution{}, ErrSameToken
	}

	fromAmount, fromSymbol, ok := sumLegs(group.Outbound, input.token, nativeToken)
	if !ok {
		return Resolution{}, ErrInconclusive
	}
	toAmount, toSymbol, ok := sumLegs(group.Inbound, output.token, nativeToken)
	if !ok {
		return Resolution{}, ErrInconclusive
	}
	if fromAmount.IsZero() {
		return Resolution{}, fmt.Errorf("%w: token %s", ErrZeroOutboundValue, input.token)
	}

	return Resolution{
		FromToken:  input.token,
		ToToken:    output.token,
		FromSymbol: fromSymbol,
		ToSymbol:   toSymbol,
		FromAmount: fromAmount,
		ToAmount:   toAmount,
		ResolvedBy: model.ResolvedByReceipt,
	}, nil
}

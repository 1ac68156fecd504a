package evm

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recallnet/js-recall-sub004/internal/chain/evm/rpc"
	"github.com/recallnet/js-recall-sub004/internal/domain/model"
)

func convertReceipt(raw *rpc.TransactionReceipt) (*model.Receipt, error) {
	blockNumber, err := rpc.ParseHexInt64(raw.BlockNumber)
	if err != nil {
		return nil, fmt.Errorf("block number: %w", err)
	}

	receipt := &model.Receipt{
		TxHash:            raw.TransactionHash,
		BlockNumber:       blockNumber,
		From:              raw.From,
		To:                raw.To,
		Status:            raw.Status,
		GasUsed:           raw.GasUsed,
		EffectiveGasPrice: raw.EffectiveGasPrice,
		Logs:              make([]model.ReceiptLog, 0, len(raw.Logs)),
	}
	for _, l := range raw.Logs {
		if l == nil {
			continue
		}
		logIndex, err := rpc.ParseHexInt64(l.LogIndex)
		if err != nil {
			return nil, fmt.Errorf("log index: %w", err)
		}
		receipt.Logs = append(receipt.Logs, model.ReceiptLog{
			Address:  l.Address,
			Topics:   l.Topics,
			Data:     l.Data,
			LogIndex: logIndex,
			Removed:  l.Removed,
		})
	}
	return receipt, nil
}

func convertTransfer(c model.Chain, at rpc.AssetTransfer) (model.RawTransfer, error) {
	blockNumber, err := rpc.ParseHexInt64(at.BlockNum)
	if err != nil {
		return model.RawTransfer{}, fmt.Errorf("block number: %w", err)
	}

	category := model.ParseTransferCategory(at.Category)
	contract := ""
	if category == model.CategoryERC20 {
		contract = model.NormalizeAddress(at.RawContract.Address)
	}

	amount, err := transferAmount(at)
	if err != nil {
		return model.RawTransfer{}, err
	}

	var ts time.Time
	if at.Metadata != nil && at.Metadata.BlockTimestamp != "" {
		ts, err = time.Parse(time.RFC3339, at.Metadata.BlockTimestamp)
		if err != nil {
			return model.RawTransfer{}, fmt.Errorf("block timestamp: %w", err)
		}
		ts = ts.UTC()
	}

	return model.RawTransfer{
		TxHash:          model.NormalizeHash(at.Hash),
		Chain:           c,
		BlockNumber:     blockNumber,
		Timestamp:       ts,
		From:            model.NormalizeAddress(at.From),
		To:              model.NormalizeAddress(at.To),
		Asset:           at.Asset,
		ContractAddress: contract,
		Amount:          amount,
		Category:        category,
		UniqueID:        at.UniqueID,
		LogIndex:        logIndexFromUniqueID(at.UniqueID),
	}, nil
}

// transferAmount prefers the exact raw value scaled by the token decimals and
// falls back to the indexer's float rendering.
func transferAmount(at rpc.AssetTransfer) (decimal.Decimal, error) {
	if at.RawContract.Value != "" && at.RawContract.Decimal != "" {
		raw, err := rpc.ParseHexBig(at.RawContract.Value)
		if err != nil {
			return decimal.Zero, fmt.Errorf("raw value: %w", err)
		}
		decimals, err := rpc.ParseHexInt64(at.RawContract.Decimal)
		if err != nil {
			return decimal.Zero, fmt.Errorf("raw decimals: %w", err)
		}
		return decimal.NewFromBigInt(raw, -int32(decimals)), nil
	}
	if at.Value != nil {
		return decimal.NewFromFloat(*at.Value), nil
	}
	return decimal.Zero, nil
}

// logIndexFromUniqueID extracts N from "<hash>:log:<N>".
func logIndexFromUniqueID(uniqueID string) *int64 {
	parts := strings.Split(uniqueID, ":")
	if len(parts) != 3 || parts[1] != "log" {
		return nil
	}
	idx, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return nil
	}
	return &idx
}

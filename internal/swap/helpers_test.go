package swap

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recallnet/js-recall-sub004/internal/domain/model"
)

const (
	testWallet  = "0x1111111111111111111111111111111111111111"
	testRouter  = "0x2222222222222222222222222222222222222222"
	testPool    = "0x4444444444444444444444444444444444444444"
	tokenAERO   = "0x940181a94a35a4569e4529a3cdfb74e38fd98631"
	tokenUSDC   = "0x833589fcd6edb6e08f4c7c32d4f71b54bda02913"
	tokenMiddle = "0x3333333333333333333333333333333333333333"

	swapTopic = "0xd78ad95fa46c994b6551d0da85fc275fe613ce37657fb8d5e3d130840159d822"
)

var testTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func addressTopic(addr string) string {
	return "0x" + strings.Repeat("0", 24) + strings.TrimPrefix(strings.ToLower(addr), "0x")
}

func uint256Data(v int64) string {
	return fmt.Sprintf("0x%064x", big.NewInt(v))
}

func transferLogEntry(token, from, to string, value int64, logIndex int64) model.ReceiptLog {
	return model.ReceiptLog{
		Address:  token,
		Topics:   []string{TransferEventTopic, addressTopic(from), addressTopic(to)},
		Data:     uint256Data(value),
		LogIndex: logIndex,
	}
}

func int64Ptr(v int64) *int64 { return &v }

func erc20Leg(hash, from, to, token, symbol, amount string, logIndex *int64) model.RawTransfer {
	return model.RawTransfer{
		TxHash:          hash,
		Chain:           model.ChainBase,
		BlockNumber:     100,
		Timestamp:       testTime,
		From:            from,
		To:              to,
		Asset:           symbol,
		ContractAddress: token,
		Amount:          decimal.RequireFromString(amount),
		Category:        model.CategoryERC20,
		LogIndex:        logIndex,
	}
}

func nativeLeg(hash, from, to, amount string) model.RawTransfer {
	return model.RawTransfer{
		TxHash:      hash,
		Chain:       model.ChainBase,
		BlockNumber: 100,
		Timestamp:   testTime,
		From:        from,
		To:          to,
		Asset:       "ETH",
		Amount:      decimal.RequireFromString(amount),
		Category:    model.CategoryExternal,
	}
}

// t2 is AERO 106.83 -> USDC 69.82 through the router.
func t2Legs() []model.RawTransfer {
	return []model.RawTransfer{
		erc20Leg("0xt2", testWallet, testPool, tokenAERO, "AERO", "106.83", int64Ptr(0)),
		erc20Leg("0xt2", testPool, testWallet, tokenUSDC, "USDC", "69.82", int64Ptr(1)),
	}
}

func t2Receipt() *model.Receipt {
	return &model.Receipt{
		TxHash:            "0xt2",
		BlockNumber:       100,
		From:              testWallet,
		To:                testRouter,
		Status:            "0x1",
		GasUsed:           "0x2dc6c0",
		EffectiveGasPrice: "0x3b9aca00",
		Logs: []model.ReceiptLog{
			transferLogEntry(tokenAERO, testWallet, testPool, 10683, 0),
			transferLogEntry(tokenUSDC, testPool, testWallet, 6982, 1),
			{Address: testPool, Topics: []string{swapTopic}, Data: "0x", LogIndex: 2},
		},
	}
}

// t1 is 1.0 native -> 2000 USDC; the receipt only shows the USDC leg.
func t1Legs() []model.RawTransfer {
	return []model.RawTransfer{
		nativeLeg("0xt1", testWallet, testRouter, "1.0"),
		erc20Leg("0xt1", testPool, testWallet, tokenUSDC, "USDC", "2000", int64Ptr(0)),
	}
}

func t1Receipt() *model.Receipt {
	return &model.Receipt{
		TxHash:      "0xt1",
		BlockNumber: 100,
		From:        testWallet,
		To:          testRouter,
		Status:      "0x1",
		Logs: []model.ReceiptLog{
			transferLogEntry(tokenUSDC, testPool, testWallet, 2000, 0),
		},
	}
}

func reversed(in []model.RawTransfer) []model.RawTransfer {
	out := make([]model.RawTransfer, len(in))
	for i := range in {
		out[len(in)-1-i] = in[i]
	}
	return out
}

func singleGroup(legs []model.RawTransfer) TransferGroup {
	groups := GroupTransfers(testWallet, legs)
	if len(groups) != 1 {
		panic(fmt.Sprintf("expected one group, got %d", len(groups)))
	}
	return groups[0]
}

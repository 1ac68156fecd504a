package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallnet/js-recall-sub004/internal/domain/model"
)

func TestGroupTransfers_SplitsDirectionsCaseInsensitively(t *testing.T) {
	legs := []model.RawTransfer{
		erc20Leg("0xAA", "0x1111111111111111111111111111111111111111", testPool, tokenAERO, "AERO", "1", int64Ptr(0)),
		erc20Leg("0xaa", testPool, "0x1111111111111111111111111111111111111111", tokenUSDC, "USDC", "2", int64Ptr(1)),
		erc20Leg("0xbb", testPool, testRouter, tokenUSDC, "USDC", "5", nil),
	}
	groups := GroupTransfers("0X1111111111111111111111111111111111111111", legs)

	require.Len(t, groups, 1)
	g := groups[0]
	assert.Equal(t, "0xaa", g.TxHash)
	assert.Len(t, g.Outbound, 1)
	assert.Len(t, g.Inbound, 1)
	assert.True(t, g.IsSwapCandidate())
}

func TestGroupTransfers_EmptyHashLegsStayApart(t *testing.T) {
	legs := []model.RawTransfer{
		nativeLeg("", testPool, testWallet, "1"),
		nativeLeg("", testPool, testWallet, "2"),
	}
	groups := GroupTransfers(testWallet, legs)

	require.Len(t, groups, 2)
	for _, g := range groups {
		assert.Len(t, g.Inbound, 1)
		assert.False(t, g.IsSwapCandidate())
	}
}

func TestGroupTransfers_DedupesUniqueID(t *testing.T) {
	leg := erc20Leg("0xaa", testPool, testWallet, tokenUSDC, "USDC", "2", int64Ptr(1))
	leg.UniqueID = "0xaa:log:1"
	groups := GroupTransfers(testWallet, []model.RawTransfer{leg, leg})

	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Inbound, 1)
}

func TestGroupTransfers_SelfTransferIsBothDirections(t *testing.T) {
	groups := GroupTransfers(testWallet, []model.RawTransfer{
		nativeLeg("0xself", testWallet, testWallet, "1"),
	})

	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Outbound, 1)
	assert.Len(t, groups[0].Inbound, 1)
}

func TestGroupTransfers_OrderIndependent(t *testing.T) {
	legs := append(t2Legs(), t1Legs()...)
	later := erc20Leg("0xt3", testPool, testWallet, tokenUSDC, "USDC", "3", nil)
	later.BlockNumber = 90
	legs = append(legs, later)

	forward := GroupTransfers(testWallet, legs)
	backward := GroupTransfers(testWallet, reversed(legs))

	assert.Equal(t, forward, backward)
	require.Len(t, forward, 3)
	assert.Equal(t, "0xt3", forward[0].TxHash)
	assert.Equal(t, "0xt1", forward[1].TxHash)
	assert.Equal(t, "0xt2", forward[2].TxHash)
}

func TestGroupTransfers_EmptyWallet(t *testing.T) {
	assert.Nil(t, GroupTransfers("", t2Legs()))
}

package swap

import (
	"sort"
	"strings"
	"time"

	"github.com/recallnet/js-recall-sub004/internal/domain/model"
)

// TransferGroup is every leg of one transaction seen from one wallet.
type TransferGroup struct {
	TxHash      string
	Chain       model.Chain
	Wallet      string
	BlockNumber int64
	Timestamp   time.Time
	Outbound    []model.RawTransfer
	Inbound     []model.RawTransfer
}

// IsSwapCandidate reports whether value moved both ways.
func (g TransferGroup) IsSwapCandidate() bool {
	return len(g.Outbound) > 0 && len(g.Inbound) > 0
}

// GroupTransfers buckets legs by transaction hash and splits them into
// outbound and inbound relative to wallet. Legs not touching the wallet are
// dropped. A self transfer lands in both directions.
//
// The result does not depend on the order of transfers: legs are sorted
// canonically and groups come back ordered by (block, hash).
func GroupTransfers(wallet string, transfers []model.RawTransfer) []TransferGroup {
	wallet = model.NormalizeAddress(wallet)
	if wallet == "" {
		return nil
	}

	byHash := make(map[string]*TransferGroup)
	seen := make(map[string]map[string]struct{})
	var groups []*TransferGroup

	for _, t := range transfers {
		out := model.SameAddress(t.From, wallet)
		in := model.SameAddress(t.To, wallet)
		if !out && !in {
			continue
		}

		hash := model.NormalizeHash(t.TxHash)
		var g *TransferGroup
		if hash != "" {
			g = byHash[hash]
		}
		if g == nil {
			g = &TransferGroup{
				TxHash:      hash,
				Chain:       t.Chain,
				Wallet:      wallet,
				BlockNumber: t.BlockNumber,
				Timestamp:   t.Timestamp,
			}
			groups = append(groups, g)
			if hash != "" {
				byHash[hash] = g
				seen[hash] = make(map[string]struct{})
			}
		}

		if hash != "" && t.UniqueID != "" {
			if _, dup := seen[hash][t.UniqueID]; dup {
				continue
			}
			seen[hash][t.UniqueID] = struct{}{}
		}

		if t.BlockNumber < g.BlockNumber {
			g.BlockNumber = t.BlockNumber
		}
		if g.Timestamp.IsZero() || (!t.Timestamp.IsZero() && t.Timestamp.Before(g.Timestamp)) {
			g.Timestamp = t.Timestamp
		}
		if out {
			g.Outbound = append(g.Outbound, t)
		}
		if in {
			g.Inbound = append(g.Inbound, t)
		}
	}

	result := make([]TransferGroup, 0, len(groups))
	for _, g := range groups {
		sortLegs(g.Outbound)
		sortLegs(g.Inbound)
		result = append(result, *g)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.BlockNumber != b.BlockNumber {
			return a.BlockNumber < b.BlockNumber
		}
		if a.TxHash != b.TxHash {
			return a.TxHash < b.TxHash
		}
		return legKey(firstLeg(a)) < legKey(firstLeg(b))
	})
	return result
}

// sortLegs orders legs by log index (legs without one last), then by a
// content key so equal inputs always yield equal slices.
func sortLegs(legs []model.RawTransfer) {
	sort.SliceStable(legs, func(i, j int) bool {
		a, b := legs[i], legs[j]
		switch {
		case a.LogIndex != nil && b.LogIndex != nil && *a.LogIndex != *b.LogIndex:
			return *a.LogIndex < *b.LogIndex
		case a.LogIndex != nil && b.LogIndex == nil:
			return true
		case a.LogIndex == nil && b.LogIndex != nil:
			return false
		}
		return legKey(a) < legKey(b)
	})
}

func legKey(t model.RawTransfer) string {
	return strings.Join([]string{
		t.UniqueID,
		string(t.Category),
		model.NormalizeAddress(t.ContractAddress),
		model.NormalizeAddress(t.From),
		model.NormalizeAddress(t.To),
		t.Amount.String(),
		t.Timestamp.UTC().Format(time.RFC3339Nano),
	}, "|")
}

func firstLeg(g TransferGroup) model.RawTransfer {
	if len(g.Outbound) > 0 {
		return g.Outbound[0]
	}
	if len(g.Inbound) > 0 {
		return g.Inbound[0]
	}
	return model.RawTransfer{}
}

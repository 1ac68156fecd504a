package swap

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/recallnet/js-recall-sub004/internal/domain/model"
)

// ClassifyTransfers turns a one-directional group into one Transfer per leg.
// Swap candidates and groups with no legs yield nothing.
func ClassifyTransfers(group TransferGroup, nativeToken string) []model.Transfer {
	return newTransferClassifier(nativeToken).classify(group)
}

// ClassifyGroups classifies every group of one fetch. Hashless legs are
// numbered by how many identical hashless legs came before them, so two
// indistinguishable upstream records still get distinct ids.
func ClassifyGroups(groups []TransferGroup, nativeToken string) []model.Transfer {
	c := newTransferClassifier(nativeToken)
	var out []model.Transfer
	for _, g := range groups {
		out = append(out, c.classify(g)...)
	}
	return out
}

type transferClassifier struct {
	nativeToken string
	occurrences map[string]int
}

func newTransferClassifier(nativeToken string) *transferClassifier {
	return &transferClassifier{nativeToken: nativeToken, occurrences: map[string]int{}}
}

func (c *transferClassifier) classify(group TransferGroup) []model.Transfer {
	transferType, ok := model.ClassifyTransferGroup(len(group.Outbound) > 0, len(group.Inbound) > 0)
	if !ok {
		return nil
	}

	legs := group.Inbound
	if transferType == model.TransferWithdraw {
		legs = group.Outbound
	}

	transfers := make([]model.Transfer, 0, len(legs))
	for i, leg := range legs {
		token, ok := legToken(leg, c.nativeToken)
		if !ok {
			continue
		}
		counterparty := leg.From
		if transferType == model.TransferWithdraw {
			counterparty = leg.To
		}

		hash := model.NormalizeHash(leg.TxHash)
		synthesized := false
		if hash == "" {
			salt := strings.Join([]string{
				group.Chain.String(),
				token,
				model.NormalizeAddress(counterparty),
				strconv.FormatInt(leg.BlockNumber, 10),
				leg.UniqueID,
			}, "|")
			key := strings.Join([]string{
				model.NormalizeAddress(group.Wallet),
				leg.Timestamp.UTC().Format(time.RFC3339Nano),
				string(transferType),
				leg.Amount.String(),
				salt,
			}, "|")
			index := c.occurrences[key]
			c.occurrences[key] = index + 1
			hash = SynthesizeHash(group.Wallet, leg.Timestamp, transferType, leg.Amount, index, salt)
			synthesized = true
		}

		transfers = append(transfers, model.Transfer{
			ID:              model.TransferID(group.Chain, hash, transferType, i),
			Type:            transferType,
			Chain:           group.Chain,
			TokenAddress:    token,
			Symbol:          leg.Asset,
			Amount:          leg.Amount,
			From:            model.NormalizeAddress(leg.From),
			To:              model.NormalizeAddress(leg.To),
			TxHash:          hash,
			HashSynthesized: synthesized,
			BlockNumber:     leg.BlockNumber,
			Timestamp:       leg.Timestamp,
		})
	}
	return transfers
}

// SynthesizeHash derives a stable stand-in hash for a leg the upstream
// reported without one. Distinct legs differ in at least one input.
func SynthesizeHash(wallet string, ts time.Time, transferType model.TransferType, amount decimal.Decimal, index int, salt string) string {
	payload := strings.Join([]string{
		model.NormalizeAddress(wallet),
		ts.UTC().Format(time.RFC3339Nano),
		string(transferType),
		amount.String(),
		strconv.Itoa(index),
		salt,
	}, "|")
	sum := sha256.Sum256([]byte(payload))
	return "0x" + hex.EncodeToString(sum[:])
}

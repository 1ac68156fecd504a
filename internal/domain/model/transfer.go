package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransferType string

const (
	TransferDeposit  TransferType = "deposit"
	TransferWithdraw TransferType = "withdraw"
)

// Transfer is a plain deposit or withdrawal leg with no counter-leg.
type Transfer struct {
	ID              uuid.UUID       `json:"id"`
	Type            TransferType    `json:"type"`
	Chain           Chain           `json:"chain"`
	TokenAddress    string          `json:"token_address"`
	Symbol          string          `json:"symbol"`
	Amount          decimal.Decimal `json:"amount"`
	From            string          `json:"from"`
	To              string          `json:"to"`
	TxHash          string          `json:"tx_hash"`
	HashSynthesized bool            `json:"hash_synthesized"`
	BlockNumber     int64           `json:"block_number"`
	Timestamp       time.Time       `json:"timestamp"`
}

// TransferID derives a stable record id for one leg of a transaction.
func TransferID(chain Chain, txHash string, transferType TransferType, index int) uuid.UUID {
	name := chain.String() + "|" + NormalizeHash(txHash) + "|" + string(transferType) + "|" + strconv.Itoa(index)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("transfer|"+name))
}

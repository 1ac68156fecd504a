package rpc

import (
	"encoding/json"
	"fmt"
)

type Request struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error,omitempty"`
}

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type Transaction struct {
	Hash             string `json:"hash"`
	BlockNumber      string `json:"blockNumber"`
	TransactionIndex string `json:"transactionIndex"`
	From             string `json:"from"`
	To               string `json:"to"`
	Value            string `json:"value"`
	GasPrice         string `json:"gasPrice"`
}

type TransactionReceipt struct {
	TransactionHash   string `json:"transactionHash"`
	BlockNumber       string `json:"blockNumber"`
	TransactionIndex  string `json:"transactionIndex"`
	Status            string `json:"status"`
	From              string `json:"from"`
	To                string `json:"to"`
	GasUsed           string `json:"gasUsed"`
	EffectiveGasPrice string `json:"effectiveGasPrice"`
	Logs              []*Log `json:"logs"`
}

type Log struct {
	Address  string   `json:"address"`
	Topics   []string `json:"topics"`
	Data     string   `json:"data"`
	LogIndex string   `json:"logIndex"`
	Removed  bool     `json:"removed"`
}

// AssetTransfersParams is the request object of alchemy_getAssetTransfers.
type AssetTransfersParams struct {
	FromBlock        string   `json:"fromBlock"`
	ToBlock          string   `json:"toBlock,omitempty"`
	FromAddress      string   `json:"fromAddress,omitempty"`
	ToAddress        string   `json:"toAddress,omitempty"`
	Category         []string `json:"category"`
	Order            string   `json:"order,omitempty"`
	WithMetadata     bool     `json:"withMetadata"`
	ExcludeZeroValue bool     `json:"excludeZeroValue"`
	MaxCount         string   `json:"maxCount,omitempty"`
	PageKey          string   `json:"pageKey,omitempty"`
}

type AssetTransfersResult struct {
	Transfers []AssetTransfer `json:"transfers"`
	PageKey   string          `json:"pageKey"`
}

type AssetTransfer struct {
	BlockNum    string            `json:"blockNum"`
	UniqueID    string            `json:"uniqueId"`
	Hash        string            `json:"hash"`
	From        string            `json:"from"`
	To          string            `json:"to"`
	Value       *float64          `json:"value"`
	Asset       string            `json:"asset"`
	Category    string            `json:"category"`
	RawContract RawContract       `json:"rawContract"`
	Metadata    *TransferMetadata `json:"metadata"`
}

type RawContract struct {
	Value   string `json:"value"`
	Address string `json:"address"`
	Decimal string `json:"decimal"`
}

type TransferMetadata struct {
	BlockTimestamp string `json:"blockTimestamp"`
}

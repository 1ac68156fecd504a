package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

func (c *Client) GetBlockNumber(ctx context.Context) (int64, error) {
	result, err := c.call(ctx, "eth_blockNumber", []interface{}{})
	if err != nil {
		return 0, fmt.Errorf("eth_blockNumber: %w", err)
	}

	var hexNum string
	if err := json.Unmarshal(result, &hexNum); err != nil {
		return 0, fmt.Errorf("unmarshal block number: %w", err)
	}

	blockNumber, err := ParseHexInt64(hexNum)
	if err != nil {
		return 0, fmt.Errorf("parse block number: %w", err)
	}
	return blockNumber, nil
}

func (c *Client) GetTransactionByHash(ctx context.Context, hash string) (*Transaction, error) {
	result, err := c.call(ctx, "eth_getTransactionByHash", []interface{}{hash})
	if err != nil {
		return nil, fmt.Errorf("eth_getTransactionByHash(%s): %w", hash, err)
	}
	if isNull(result) {
		return nil, nil
	}

	var tx Transaction
	if err := json.Unmarshal(result, &tx); err != nil {
		return nil, fmt.Errorf("unmarshal transaction: %w", err)
	}
	return &tx, nil
}

func (c *Client) GetTransactionReceipt(ctx context.Context, hash string) (*TransactionReceipt, error) {
	result, err := c.call(ctx, "eth_getTransactionReceipt", []interface{}{hash})
	if err != nil {
		return nil, fmt.Errorf("eth_getTransactionReceipt(%s): %w", hash, err)
	}
	if isNull(result) {
		return nil, nil
	}

	var receipt TransactionReceipt
	if err := json.Unmarshal(result, &receipt); err != nil {
		return nil, fmt.Errorf("unmarshal transaction receipt: %w", err)
	}
	return &receipt, nil
}

// GetBalance returns the latest native balance of address as a hex quantity.
func (c *Client) GetBalance(ctx context.Context, address string) (string, error) {
	result, err := c.call(ctx, "eth_getBalance", []interface{}{address, "latest"})
	if err != nil {
		return "", fmt.Errorf("eth_getBalance(%s): %w", address, err)
	}

	var hexBalance string
	if err := json.Unmarshal(result, &hexBalance); err != nil {
		return "", fmt.Errorf("unmarshal balance: %w", err)
	}
	return hexBalance, nil
}

// GetAssetTransfers fetches one page of the indexed transfer history.
func (c *Client) GetAssetTransfers(ctx context.Context, params AssetTransfersParams) (*AssetTransfersResult, error) {
	result, err := c.call(ctx, "alchemy_getAssetTransfers", []interface{}{params})
	if err != nil {
		return nil, fmt.Errorf("alchemy_getAssetTransfers: %w", err)
	}

	var page AssetTransfersResult
	if err := json.Unmarshal(result, &page); err != nil {
		return nil, fmt.Errorf("unmarshal asset transfers: %w", err)
	}
	return &page, nil
}

func ParseHexInt64(value string) (int64, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return 0, fmt.Errorf("empty hex value")
	}
	raw = strings.TrimPrefix(strings.ToLower(raw), "0x")
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseUint(raw, 16, 63)
	if err != nil {
		return 0, fmt.Errorf("parse hex %q: %w", value, err)
	}
	return int64(parsed), nil
}

// ParseHexBig parses an arbitrary-width hex quantity ("0x" is zero).
func ParseHexBig(value string) (*big.Int, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return nil, fmt.Errorf("empty hex value")
	}
	raw = strings.TrimPrefix(strings.ToLower(raw), "0x")
	if raw == "" {
		return new(big.Int), nil
	}
	parsed, ok := new(big.Int).SetString(raw, 16)
	if !ok {
		return nil, fmt.Errorf("parse hex %q: invalid quantity", value)
	}
	return parsed, nil
}

func FormatHexInt64(value int64) string {
	return fmt.Sprintf("0x%x", value)
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

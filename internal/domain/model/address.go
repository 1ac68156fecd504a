package model

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// NativeTokenAddress is the reserved token identifier of a chain's native asset.
var NativeTokenAddress = NormalizeAddress(common.Address{}.Hex())

// NormalizeAddress lowercases an address and trims whitespace so it can be
// compared case-insensitively and used as a map key.
func NormalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// SameAddress compares two addresses case-insensitively. Empty never matches.
func SameAddress(a, b string) bool {
	na, nb := NormalizeAddress(a), NormalizeAddress(b)
	return na != "" && na == nb
}

// NormalizeHash lowercases a transaction hash.
func NormalizeHash(hash string) string {
	return strings.ToLower(strings.TrimSpace(hash))
}

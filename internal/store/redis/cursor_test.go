package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallnet/js-recall-sub004/internal/domain/model"
)

func TestCursorKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tradesync:cursor:base:0xabc", cursorKey("tradesync", "0xABC ", model.ChainBase))
	assert.Equal(t, "cursor:ethereum:0xabc", cursorKey("", "0xabc", model.ChainEthereum))
}

func TestParseCursor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		expected  int64
		expectErr bool
	}{
		{name: "zero", input: "0", expected: 0},
		{name: "positive", input: "123", expected: 123},
		{name: "whitespace trimmed", input: "  42  ", expected: 42},
		{name: "negative", input: "-1", expectErr: true},
		{name: "non-numeric", input: "abc", expectErr: true},
		{name: "empty", input: "", expectErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result, err := parseCursor(tt.input)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestMemoryCursorStore_Roundtrip(t *testing.T) {
	t.Parallel()

	store := NewMemoryCursorStore()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "0xabc", model.ChainBase)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "0xABC", model.ChainBase, 77))
	block, ok, err := store.Get(ctx, "0xabc", model.ChainBase)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(77), block)

	_, ok, err = store.Get(ctx, "0xabc", model.ChainEthereum)
	require.NoError(t, err)
	assert.False(t, ok)

	require.Error(t, store.Set(ctx, "0xabc", model.ChainBase, -1))
}

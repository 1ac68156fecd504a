package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallnet/js-recall-sub004/internal/domain/model"
)

func TestGasFromReceipt(t *testing.T) {
	used, price := GasFromReceipt(t2Receipt())
	require.NotNil(t, used)
	require.NotNil(t, price)
	assert.Equal(t, "3000000", used.String())
	assert.Equal(t, "1000000000", price.String())
}

func TestGasFromReceipt_MissingOrMalformed(t *testing.T) {
	used, price := GasFromReceipt(nil)
	assert.Nil(t, used)
	assert.Nil(t, price)

	used, price = GasFromReceipt(&model.Receipt{GasUsed: "0x5208", EffectiveGasPrice: "garbage"})
	require.NotNil(t, used)
	assert.Equal(t, "21000", used.String())
	assert.Nil(t, price)
}

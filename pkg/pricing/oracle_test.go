package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticOracle(t *testing.T) {
	oracle := NewStaticOracle(map[string]decimal.Decimal{
		"FLOW": decimal.RequireFromString("0.5"),
	})

	price, err := oracle.ReferencePrice("FLOW")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("0.5")))

	_, err = oracle.ReferencePrice("DOGE")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no reference price")
}

func TestDefaultOracleCoversCatalogue(t *testing.T) {
	oracle := DefaultOracle()

	for _, symbol := range []string{"FLOW", "USDC", "USDT", "stFLOW", "WETH"} {
		price, err := oracle.ReferencePrice(symbol)
		require.NoError(t, err, symbol)
		assert.True(t, price.IsPositive(), symbol)
	}
}

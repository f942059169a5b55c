package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowswap/pkg/token"
)

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		amount   string
		decimals int32
		want     string
	}{
		{"1", 6, "1000000"},
		{"4.985", 6, "4985000"},
		{"10.00000000", 8, "1000000000"},
		{"0.000001", 6, "1"},
		{"1.0000009", 6, "1000000"}, // sub-unit dust truncates
	}
	for _, tt := range tests {
		got := toBaseUnits(decimal.RequireFromString(tt.amount), tt.decimals)
		assert.Equal(t, tt.want, got.String(), "%s at %d decimals", tt.amount, tt.decimals)
	}
}

func TestSimClientSubmit(t *testing.T) {
	sim := NewSimClient()
	flow := token.Token{Address: token.NativeAddress, Symbol: "FLOW", Decimals: 8}
	usdc := token.Token{Address: "0xF1815bd50389c46847f0Bda824eC8da914045D14", Symbol: "USDC", Decimals: 6}

	params := SubmitParams{
		TokenIn:      flow,
		TokenOut:     usdc,
		AmountIn:     decimal.RequireFromString("10"),
		MinAmountOut: decimal.RequireFromString("4.96"),
		Recipient:    "0x52908400098527886E0F7030069857D2E4169EE7",
		Deadline:     time.Now().Add(20 * time.Minute),
	}

	first, err := sim.Submit(context.Background(), params)
	require.NoError(t, err)
	second, err := sim.Submit(context.Background(), params)
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each submission gets its own hash")
	assert.Equal(t, 2, sim.Submitted())

	finality, err := sim.AwaitFinality(context.Background(), first)
	require.NoError(t, err)
	assert.Equal(t, Sealed, finality)
}

func TestSimClientBalances(t *testing.T) {
	sim := NewSimClient()
	flow := token.Token{Address: token.NativeAddress, Symbol: "FLOW", Decimals: 8}
	owner := "0x52908400098527886E0F7030069857D2E4169EE7"

	bal, err := sim.Balance(context.Background(), owner, flow)
	require.NoError(t, err)
	assert.True(t, bal.IsZero())

	sim.SetBalance(owner, "FLOW", decimal.RequireFromString("7.25"))
	bal, err = sim.Balance(context.Background(), owner, flow)
	require.NoError(t, err)
	assert.Equal(t, "7.25", bal.String())
}

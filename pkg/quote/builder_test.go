package quote

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowswap/pkg/pricing"
	"flowswap/pkg/route"
	"flowswap/pkg/token"
)

func testBuilder(t *testing.T) (*Builder, *token.Registry) {
	t.Helper()
	registry := token.NewRegistry(token.DefaultTokens())
	graph := token.NewGraph(token.DefaultPools())
	hub, ok := registry.BySymbol("FLOW")
	require.True(t, ok)
	finder := route.NewFinder(graph, hub)
	builder := NewBuilder(registry, finder, pricing.DefaultOracle(), decimal.RequireFromString("0.0001"))
	return builder, registry
}

func mustToken(t *testing.T, registry *token.Registry, symbol string) token.Token {
	t.Helper()
	tok, ok := registry.BySymbol(symbol)
	require.True(t, ok)
	return tok
}

func TestBuildDirectQuote(t *testing.T) {
	builder, registry := testBuilder(t)
	flow := mustToken(t, registry, "FLOW")
	usdc := mustToken(t, registry, "USDC")

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	q, err := builder.Build(flow.Address, usdc.Address, "10.0", now)
	require.NoError(t, err)

	// 10 FLOW at 0.5/1.0 is 5 USDC, less the 0.30% pool fee.
	assert.Equal(t, "4.985000", q.AmountOut)
	assert.Equal(t, "10.00000000", q.AmountIn)
	assert.Equal(t, "0.03000000", q.FeeAmount)
	assert.Equal(t, "0.0001", q.EstimatedSettlementCost)

	require.Len(t, q.Route, 1)
	assert.Equal(t, int64(3000), q.Route[0].FeePPM)
	assert.Equal(t, flow.Address, q.Route[0].TokenIn)
	assert.Equal(t, usdc.Address, q.Route[0].TokenOut)

	assert.Equal(t, now, q.CreatedAt)
	assert.Equal(t, now.Add(TTL), q.ValidUntil)
	assert.NotEmpty(t, q.ID)
}

func TestBuildHubQuoteCompoundsFees(t *testing.T) {
	builder, registry := testBuilder(t)
	usdc := mustToken(t, registry, "USDC")
	stflow := mustToken(t, registry, "stFLOW")

	q, err := builder.Build(usdc.Address, stflow.Address, "100", time.Now())
	require.NoError(t, err)
	require.Len(t, q.Route, 2)

	// 100 USDC at 1.0/0.55, then 0.30% and 0.05% fees in sequence.
	want := decimal.RequireFromString("100").
		Div(decimal.RequireFromString("0.55")).
		Mul(decimal.RequireFromString("0.997")).
		Mul(decimal.RequireFromString("0.9995"))
	assert.Equal(t, want.StringFixed(stflow.Decimals), q.AmountOut)
}

func TestBuildUniqueIDs(t *testing.T) {
	builder, registry := testBuilder(t)
	flow := mustToken(t, registry, "FLOW")
	usdc := mustToken(t, registry, "USDC")

	a, err := builder.Build(flow.Address, usdc.Address, "1", time.Now())
	require.NoError(t, err)
	b, err := builder.Build(flow.Address, usdc.Address, "1", time.Now())
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.AmountOut, b.AmountOut, "same inputs must price identically")
}

func TestBuildRejectsBadInputs(t *testing.T) {
	builder, registry := testBuilder(t)
	flow := mustToken(t, registry, "FLOW")
	usdc := mustToken(t, registry, "USDC")

	tests := []struct {
		name     string
		tokenIn  string
		tokenOut string
		amount   string
		wantErr  error
	}{
		{"unknown token in", "0x0000000000000000000000000000000000000001", usdc.Address, "1", ErrInvalidToken},
		{"unknown token out", flow.Address, "0x0000000000000000000000000000000000000001", "1", ErrInvalidToken},
		{"zero amount", flow.Address, usdc.Address, "0", ErrInvalidAmount},
		{"negative amount", flow.Address, usdc.Address, "-5", ErrInvalidAmount},
		{"garbage amount", flow.Address, usdc.Address, "ten", ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := builder.Build(tt.tokenIn, tt.tokenOut, tt.amount, time.Now())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildNoRoute(t *testing.T) {
	builder, registry := testBuilder(t)
	flow := mustToken(t, registry, "FLOW")

	_, err := builder.Build(flow.Address, flow.Address, "1", time.Now())
	assert.ErrorIs(t, err, route.ErrNoRoute)
}

func TestPriceImpactSteps(t *testing.T) {
	builder, registry := testBuilder(t)
	flow := mustToken(t, registry, "FLOW")
	usdc := mustToken(t, registry, "USDC")

	tests := []struct {
		amount string
		want   string
	}{
		{"50", "0.10"},
		{"500", "0.50"},
		{"5000", "1.00"},
		{"50000", "2.50"},
	}
	for _, tt := range tests {
		q, err := builder.Build(flow.Address, usdc.Address, tt.amount, time.Now())
		require.NoError(t, err)
		assert.Equal(t, tt.want, q.PriceImpactPercent, "amount %s", tt.amount)
	}
}

func TestRoutePath(t *testing.T) {
	builder, registry := testBuilder(t)
	usdc := mustToken(t, registry, "USDC")
	stflow := mustToken(t, registry, "stFLOW")
	flow := mustToken(t, registry, "FLOW")

	q, err := builder.Build(usdc.Address, stflow.Address, "10", time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{usdc.Address, flow.Address, stflow.Address}, q.RoutePath())
}

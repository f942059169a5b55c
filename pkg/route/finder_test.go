package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowswap/pkg/token"
)

func testFinder(t *testing.T) (*Finder, *token.Registry) {
	t.Helper()
	registry := token.NewRegistry(token.DefaultTokens())
	graph := token.NewGraph(token.DefaultPools())
	hub, ok := registry.BySymbol("FLOW")
	require.True(t, ok)
	return NewFinder(graph, hub), registry
}

func TestFindRouteDirect(t *testing.T) {
	finder, registry := testFinder(t)
	flow, _ := registry.BySymbol("FLOW")
	usdc, _ := registry.BySymbol("USDC")

	route, err := finder.FindRoute(flow, usdc)
	require.NoError(t, err)
	require.Len(t, route, 1)
	assert.Equal(t, flow, route[0].TokenIn)
	assert.Equal(t, usdc, route[0].TokenOut)
	assert.Equal(t, []string{flow.Address, usdc.Address}, route.Addresses())
}

func TestFindRouteViaHub(t *testing.T) {
	finder, registry := testFinder(t)
	usdc, _ := registry.BySymbol("USDC")
	stflow, _ := registry.BySymbol("stFLOW")

	route, err := finder.FindRoute(usdc, stflow)
	require.NoError(t, err)
	require.Len(t, route, 2)
	assert.Equal(t, "FLOW", route[0].TokenOut.Symbol)
	assert.Equal(t, "FLOW", route[1].TokenIn.Symbol)
	assert.Equal(t, usdc.Address, route[0].TokenIn.Address)
	assert.Equal(t, stflow.Address, route[1].TokenOut.Address)
}

func TestFindRouteDirectBeatsHub(t *testing.T) {
	finder, registry := testFinder(t)
	usdc, _ := registry.BySymbol("USDC")
	usdt, _ := registry.BySymbol("USDT")

	// USDC/USDT has both a direct pool and a path through FLOW; the
	// direct pool must win.
	route, err := finder.FindRoute(usdc, usdt)
	require.NoError(t, err)
	require.Len(t, route, 1)
	assert.Equal(t, int64(500), route[0].Pool.FeePPM)
}

func TestFindRouteNoPath(t *testing.T) {
	finder, registry := testFinder(t)
	usdc, _ := registry.BySymbol("USDC")

	orphan := token.Token{Address: "0x1111111111111111111111111111111111111111", Symbol: "ORPHAN", Decimals: 18}
	_, err := finder.FindRoute(usdc, orphan)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestFindRouteSelfSwap(t *testing.T) {
	finder, registry := testFinder(t)
	flow, _ := registry.BySymbol("FLOW")

	_, err := finder.FindRoute(flow, flow)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoRoute)
}

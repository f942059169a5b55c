package route

import (
	"errors"
	"fmt"

	"flowswap/pkg/token"
)

// ErrNoRoute indicates that neither a direct pool nor a hub-mediated pair of
// pools connects the requested tokens.
var ErrNoRoute = errors.New("no route found")

// Hop is one pool traversal within a route, oriented from TokenIn to
// TokenOut.
type Hop struct {
	Pool     token.Pool
	TokenIn  token.Token
	TokenOut token.Token
}

// Route is the ordered pool path a swap traverses: one hop for a direct
// pool, two hops through the hub token otherwise.
type Route []Hop

// Finder discovers routes over a static pool graph. Only direct and
// hub-mediated paths are considered; the pool set is small and curated, so a
// general shortest-path search buys nothing.
type Finder struct {
	graph *token.Graph
	hub   token.Token
}

// NewFinder creates a route finder using hub as the intermediate token for
// indirect routes (the network's native asset in the default deployment).
func NewFinder(graph *token.Graph, hub token.Token) *Finder {
	return &Finder{graph: graph, hub: hub}
}

// FindRoute returns the pool path from tokenIn to tokenOut. A direct pool
// always wins over a hub route, regardless of fees or liquidity.
func (f *Finder) FindRoute(tokenIn, tokenOut token.Token) (Route, error) {
	if tokenIn.Address == tokenOut.Address {
		return nil, fmt.Errorf("cannot route %s to itself: %w", tokenIn.Symbol, ErrNoRoute)
	}

	if pool, ok := f.graph.Direct(tokenIn.Address, tokenOut.Address); ok {
		return Route{{Pool: pool, TokenIn: tokenIn, TokenOut: tokenOut}}, nil
	}

	// Two-hop fallback through the hub token.
	first, ok := f.graph.Direct(tokenIn.Address, f.hub.Address)
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", tokenIn.Symbol, tokenOut.Symbol, ErrNoRoute)
	}
	second, ok := f.graph.Direct(f.hub.Address, tokenOut.Address)
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", tokenIn.Symbol, tokenOut.Symbol, ErrNoRoute)
	}

	return Route{
		{Pool: first, TokenIn: tokenIn, TokenOut: f.hub},
		{Pool: second, TokenIn: f.hub, TokenOut: tokenOut},
	}, nil
}

// Addresses returns the token address path of the route, input first.
func (r Route) Addresses() []string {
	if len(r) == 0 {
		return nil
	}
	addrs := make([]string, 0, len(r)+1)
	addrs = append(addrs, r[0].TokenIn.Address)
	for _, hop := range r {
		addrs = append(addrs, hop.TokenOut.Address)
	}
	return addrs
}

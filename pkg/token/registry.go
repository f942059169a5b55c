package token

import (
	"fmt"
	"strings"
)

// Registry is a static catalogue of tradeable tokens. It is populated once
// and read-only afterwards, so lookups need no locking.
type Registry struct {
	byAddress map[string]Token
	bySymbol  map[string]Token
	ordered   []Token
}

// NewRegistry builds a registry from a token catalogue. Catalogue order is
// preserved by List.
func NewRegistry(tokens []Token) *Registry {
	r := &Registry{
		byAddress: make(map[string]Token, len(tokens)),
		bySymbol:  make(map[string]Token, len(tokens)),
		ordered:   make([]Token, len(tokens)),
	}
	copy(r.ordered, tokens)
	for _, t := range tokens {
		r.byAddress[strings.ToLower(t.Address)] = t
		r.bySymbol[strings.ToUpper(t.Symbol)] = t
	}
	return r
}

// List returns all registered tokens in catalogue order.
func (r *Registry) List() []Token {
	out := make([]Token, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// ByAddress looks up a token by its address (case-insensitive hex).
func (r *Registry) ByAddress(address string) (Token, bool) {
	t, ok := r.byAddress[strings.ToLower(address)]
	return t, ok
}

// BySymbol looks up a token by its symbol.
func (r *Registry) BySymbol(symbol string) (Token, bool) {
	t, ok := r.bySymbol[strings.ToUpper(symbol)]
	return t, ok
}

// Resolve accepts either an address or a symbol and returns the token.
func (r *Registry) Resolve(ref string) (Token, error) {
	if t, ok := r.ByAddress(ref); ok {
		return t, nil
	}
	if t, ok := r.BySymbol(ref); ok {
		return t, nil
	}
	return Token{}, fmt.Errorf("token '%s' not found", ref)
}

// Graph is the static set of known liquidity pools.
type Graph struct {
	pools []Pool
}

// NewGraph builds a pool graph. Pools referencing tokens outside the
// registry are the caller's responsibility to avoid.
func NewGraph(pools []Pool) *Graph {
	g := &Graph{pools: make([]Pool, len(pools))}
	copy(g.pools, pools)
	return g
}

// Pools returns all known pools.
func (g *Graph) Pools() []Pool {
	out := make([]Pool, len(g.pools))
	copy(out, g.pools)
	return out
}

// Direct returns the pool directly connecting the two token addresses, if
// one exists.
func (g *Graph) Direct(a, b string) (Pool, bool) {
	for _, p := range g.pools {
		if p.Connects(a, b) {
			return p, true
		}
	}
	return Pool{}, false
}

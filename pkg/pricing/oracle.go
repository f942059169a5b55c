package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Oracle supplies a reference price for a token symbol, denominated in USD.
// The quote builder only consumes the ratio between two reference prices, so
// any consistent denomination works.
type Oracle interface {
	ReferencePrice(symbol string) (decimal.Decimal, error)
}

// StaticOracle serves prices from a fixed table. A production deployment
// would swap this for an oracle backed by pool reserves or an external feed;
// the quote engine only sees the interface.
type StaticOracle struct {
	prices map[string]decimal.Decimal
}

// NewStaticOracle creates an oracle over the given symbol->price table.
func NewStaticOracle(prices map[string]decimal.Decimal) *StaticOracle {
	table := make(map[string]decimal.Decimal, len(prices))
	for sym, p := range prices {
		table[sym] = p
	}
	return &StaticOracle{prices: table}
}

// DefaultOracle returns the static reference table for the default Flow EVM
// catalogue.
func DefaultOracle() *StaticOracle {
	return NewStaticOracle(map[string]decimal.Decimal{
		"FLOW":   decimal.RequireFromString("0.5"),
		"USDC":   decimal.RequireFromString("1.0"),
		"USDT":   decimal.RequireFromString("1.0"),
		"stFLOW": decimal.RequireFromString("0.55"),
		"WETH":   decimal.RequireFromString("2500.0"),
	})
}

// ReferencePrice returns the reference price for a symbol.
func (o *StaticOracle) ReferencePrice(symbol string) (decimal.Decimal, error) {
	p, ok := o.prices[symbol]
	if !ok {
		return decimal.Zero, fmt.Errorf("no reference price for token '%s'", symbol)
	}
	return p, nil
}

package quote

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"flowswap/pkg/pricing"
	"flowswap/pkg/route"
	"flowswap/pkg/token"
)

var (
	oneMillion = decimal.NewFromInt(1_000_000)
	one        = decimal.NewFromInt(1)
)

// Builder computes quotes for a token pair and amount. It is pure
// computation: the Cache owns storage and lifetimes.
type Builder struct {
	registry       *token.Registry
	finder         *route.Finder
	oracle         pricing.Oracle
	settlementCost decimal.Decimal
}

// NewBuilder creates a quote builder. settlementCost is the flat
// network-cost estimate stamped on every quote, in FLOW.
func NewBuilder(registry *token.Registry, finder *route.Finder, oracle pricing.Oracle, settlementCost decimal.Decimal) *Builder {
	return &Builder{
		registry:       registry,
		finder:         finder,
		oracle:         oracle,
		settlementCost: settlementCost,
	}
}

// Build resolves the pair, finds a route and prices the trade. The returned
// quote is stamped with now and now+TTL. Amount math is done entirely in
// decimals; the result is rounded to the output token's declared precision.
func (b *Builder) Build(tokenInAddr, tokenOutAddr, amountIn string, now time.Time) (*Quote, error) {
	tokenIn, ok := b.registry.ByAddress(tokenInAddr)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, tokenInAddr)
	}
	tokenOut, ok := b.registry.ByAddress(tokenOutAddr)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, tokenOutAddr)
	}

	amount, err := decimal.NewFromString(amountIn)
	if err != nil || !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, amountIn)
	}

	path, err := b.finder.FindRoute(tokenIn, tokenOut)
	if err != nil {
		return nil, err
	}

	priceIn, err := b.oracle.ReferencePrice(tokenIn.Symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, tokenIn.Symbol)
	}
	priceOut, err := b.oracle.ReferencePrice(tokenOut.Symbol)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, tokenOut.Symbol)
	}

	// Constant-price conversion, then the per-pool fee for every hop.
	// FeePPM is parts per million, so 3000 keeps a factor of 0.997.
	out := amount.Mul(priceIn).Div(priceOut)
	keep := one
	for _, hop := range path {
		keep = keep.Mul(one.Sub(decimal.NewFromInt(hop.Pool.FeePPM).Div(oneMillion)))
	}
	out = out.Mul(keep)

	feeAmount := amount.Mul(one.Sub(keep))

	hops := make([]Hop, len(path))
	for i, hop := range path {
		hops[i] = Hop{
			PoolAddress: hop.Pool.Address,
			TokenIn:     hop.TokenIn.Address,
			TokenOut:    hop.TokenOut.Address,
			FeePPM:      hop.Pool.FeePPM,
		}
	}

	return &Quote{
		ID:                      uuid.NewString(),
		TokenIn:                 tokenIn,
		TokenOut:                tokenOut,
		AmountIn:                amount.StringFixed(tokenIn.Decimals),
		AmountOut:               out.StringFixed(tokenOut.Decimals),
		PriceImpactPercent:      priceImpact(amount).StringFixed(2),
		FeeAmount:               feeAmount.StringFixed(tokenIn.Decimals),
		Route:                   hops,
		EstimatedSettlementCost: b.settlementCost.String(),
		CreatedAt:               now,
		ValidUntil:              now.Add(TTL),
	}, nil
}

// priceImpact estimates impact as an increasing step function of trade
// size. This is a placeholder heuristic, not a liquidity-depth calculation.
func priceImpact(amountIn decimal.Decimal) decimal.Decimal {
	switch {
	case amountIn.LessThan(decimal.NewFromInt(100)):
		return decimal.RequireFromString("0.1")
	case amountIn.LessThan(decimal.NewFromInt(1_000)):
		return decimal.RequireFromString("0.5")
	case amountIn.LessThan(decimal.NewFromInt(10_000)):
		return decimal.RequireFromString("1.0")
	default:
		return decimal.RequireFromString("2.5")
	}
}

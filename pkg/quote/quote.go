package quote

import (
	"errors"
	"time"

	"flowswap/pkg/token"
)

// TTL is the fixed lifetime of every quote. ValidUntil is always CreatedAt
// plus this duration.
const TTL = 5 * time.Minute

// RefreshGrace is how long after expiry the cache still remembers a quote's
// original request parameters, so a refresh on an expired id can re-price
// the same trade instead of failing.
const RefreshGrace = 15 * time.Minute

var (
	// ErrInvalidToken indicates a token address that does not resolve in
	// the registry. Not retryable without correcting the input.
	ErrInvalidToken = errors.New("invalid token")

	// ErrInvalidAmount indicates a malformed or non-positive input amount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrQuoteExpired indicates the quote id is unknown or past its
	// ValidUntil. Retryable via refresh.
	ErrQuoteExpired = errors.New("quote expired")

	// ErrQuoteNotFound indicates a refresh target whose parameters are no
	// longer retained.
	ErrQuoteNotFound = errors.New("quote not found")

	// ErrQuoteConsumed indicates the quote was already spent by a
	// concurrent execution.
	ErrQuoteConsumed = errors.New("quote already consumed")
)

// Hop is one pool traversal in a quote's route, as exposed on the wire.
type Hop struct {
	PoolAddress string `json:"poolAddress"`
	TokenIn     string `json:"tokenIn"`
	TokenOut    string `json:"tokenOut"`
	FeePPM      int64  `json:"feeBps"`
}

// Quote is a time-bounded, priced offer to exchange a fixed amount of
// TokenIn for a computed amount of TokenOut. All amounts are decimal strings
// in the token's display precision.
type Quote struct {
	ID                      string      `json:"id"`
	TokenIn                 token.Token `json:"tokenIn"`
	TokenOut                token.Token `json:"tokenOut"`
	AmountIn                string      `json:"amountIn"`
	AmountOut               string      `json:"amountOut"`
	PriceImpactPercent      string      `json:"priceImpactPercent"`
	FeeAmount               string      `json:"feeAmount"`
	Route                   []Hop       `json:"route"`
	EstimatedSettlementCost string      `json:"estimatedSettlementCost"`
	CreatedAt               time.Time   `json:"createdAt"`
	ValidUntil              time.Time   `json:"validUntil"`
}

// RoutePath returns the token address path of the quote's route, input
// token first.
func (q *Quote) RoutePath() []string {
	if len(q.Route) == 0 {
		return nil
	}
	path := make([]string, 0, len(q.Route)+1)
	path = append(path, q.Route[0].TokenIn)
	for _, hop := range q.Route {
		path = append(path, hop.TokenOut)
	}
	return path
}

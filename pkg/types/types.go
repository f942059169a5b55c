// Package types holds the wire shapes shared by the HTTP server and the
// REST client.
package types

import (
	"flowswap/pkg/quote"
	"flowswap/pkg/swap"
	"flowswap/pkg/token"
	"flowswap/pkg/vault"
)

// QuoteRequest asks for a priced quote on a pair. Token fields accept
// addresses or registry symbols.
type QuoteRequest struct {
	TokenInAddress  string `json:"tokenInAddress"`
	TokenOutAddress string `json:"tokenOutAddress"`
	AmountIn        string `json:"amountIn"`
}

// RefreshRequest re-prices an existing quote by id.
type RefreshRequest struct {
	QuoteID string `json:"quoteId"`
}

// SwapRequest executes a previously issued quote. SlippageTolerance is a
// percentage; nil means the server default.
type SwapRequest struct {
	QuoteID           string   `json:"quoteId"`
	UserAddress       string   `json:"userAddress"`
	SlippageTolerance *float64 `json:"slippageTolerance,omitempty"`
}

// TokensResponse lists the supported token set.
type TokensResponse struct {
	Tokens []token.Token `json:"tokens"`
}

// BalancesResponse reports an address's balance for every supported token,
// keyed by token address. Amounts are decimal strings in display precision.
type BalancesResponse struct {
	Balances map[string]string `json:"balances"`
}

// QuoteResponse wraps a single quote.
type QuoteResponse struct {
	Quote quote.Quote `json:"quote"`
}

// TransactionResponse wraps a single swap transaction.
type TransactionResponse struct {
	Transaction swap.Transaction `json:"transaction"`
}

// ValidityResponse reports whether a quote is still executable.
// TimeRemaining is in milliseconds, clamped at zero.
type ValidityResponse struct {
	IsValid       bool         `json:"isValid"`
	Quote         *quote.Quote `json:"quote,omitempty"`
	TimeRemaining int64        `json:"timeRemaining"`
}

// VaultResponse reports an ERC-4626 vault position.
type VaultResponse struct {
	Vault vault.Position `json:"vault"`
}

// TransactionsResponse lists recorded swap transactions.
type TransactionsResponse struct {
	Transactions []*swap.Transaction `json:"transactions"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

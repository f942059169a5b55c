package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"flowswap/pkg/token"
)

// Finality is the terminal verdict of the settlement layer on a submitted
// transaction.
type Finality string

const (
	Sealed   Finality = "sealed"
	Reverted Finality = "reverted"
)

// SubmitParams carries everything the settlement layer needs to execute a
// swap. Amounts are in display units; implementations convert to base units
// using the token's declared decimals.
type SubmitParams struct {
	TokenIn      token.Token
	TokenOut     token.Token
	AmountIn     decimal.Decimal
	MinAmountOut decimal.Decimal
	Recipient    string
	Path         []string // token address path, input first
	Deadline     time.Time
}

// Client is the settlement-layer collaborator. Submit and AwaitFinality may
// suspend; both honor ctx cancellation. The quote engine never retries a
// failed submission.
type Client interface {
	// Submit hands the swap to the ledger and returns its settlement hash.
	Submit(ctx context.Context, params SubmitParams) (string, error)

	// AwaitFinality blocks until the submitted transaction is sealed or
	// reverted.
	AwaitFinality(ctx context.Context, hash string) (Finality, error)

	// Balance returns the owner's balance of a token, in display units.
	Balance(ctx context.Context, owner string, t token.Token) (decimal.Decimal, error)
}

package swap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"flowswap/pkg/ledger"
	"flowswap/pkg/metrics"
	"flowswap/pkg/quote"
)

// SettlementDeadline is how far in the future the on-chain deadline of a
// submitted swap is set.
const SettlementDeadline = 20 * time.Minute

// DefaultSlippagePercent is applied when the caller does not specify a
// slippage tolerance.
var DefaultSlippagePercent = decimal.RequireFromString("0.5")

var oneHundred = decimal.NewFromInt(100)

// Executor drives a quote through settlement. It consumes the quote, records
// a pending transaction, submits to the ledger and finalizes the record. The
// quote is spent no matter how settlement ends; a failed swap needs a fresh
// quote.
type Executor struct {
	cache   *quote.Cache
	store   *Store
	ledger  ledger.Client
	metrics *metrics.Metrics
	logger  *slog.Logger

	now func() time.Time
}

// NewExecutor creates a swap executor.
func NewExecutor(cache *quote.Cache, store *Store, client ledger.Client, m *metrics.Metrics, logger *slog.Logger) *Executor {
	return &Executor{
		cache:   cache,
		store:   store,
		ledger:  client,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Execute settles the quote identified by quoteID, sending the output to
// recipient. slippagePercent bounds how much worse than the quoted amount
// the settled output may be. The returned transaction reflects the final
// status; a non-nil error accompanies every failed settlement.
func (e *Executor) Execute(ctx context.Context, quoteID, recipient string, slippagePercent decimal.Decimal) (*Transaction, error) {
	q, err := e.cache.Get(quoteID)
	if err != nil {
		return nil, err
	}
	if err := e.cache.Consume(quoteID); err != nil {
		return nil, err
	}

	amountIn, err := decimal.NewFromString(q.AmountIn)
	if err != nil {
		return nil, fmt.Errorf("corrupt quote amount %q: %w", q.AmountIn, err)
	}
	amountOut, err := decimal.NewFromString(q.AmountOut)
	if err != nil {
		return nil, fmt.Errorf("corrupt quote amount %q: %w", q.AmountOut, err)
	}

	minOut := amountOut.Mul(decimal.NewFromInt(1).Sub(slippagePercent.Div(oneHundred))).
		Round(q.TokenOut.Decimals)

	now := e.now()
	tx := &Transaction{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		Quote:     *q,
		CreatedAt: now,
	}
	if err := e.store.Insert(tx); err != nil {
		return nil, err
	}

	e.logger.Info("executing swap",
		"transactionId", tx.ID,
		"quoteId", q.ID,
		"pair", q.TokenIn.Symbol+"/"+q.TokenOut.Symbol,
		"amountIn", q.AmountIn,
		"minAmountOut", minOut.StringFixed(q.TokenOut.Decimals))

	hash, err := e.ledger.Submit(ctx, ledger.SubmitParams{
		TokenIn:      q.TokenIn,
		TokenOut:     q.TokenOut,
		AmountIn:     amountIn,
		MinAmountOut: minOut,
		Recipient:    recipient,
		Path:         q.RoutePath(),
		Deadline:     now.Add(SettlementDeadline),
	})
	if err != nil {
		return e.fail(tx.ID, "", fmt.Errorf("swap submission failed: %w", err))
	}

	finality, err := e.ledger.AwaitFinality(ctx, hash)
	if err != nil {
		return e.fail(tx.ID, hash, fmt.Errorf("swap finality unknown: %w", err))
	}
	if finality != ledger.Sealed {
		return e.fail(tx.ID, hash, fmt.Errorf("swap reverted on chain"))
	}

	if err := e.store.MarkConfirmed(tx.ID, hash); err != nil {
		return nil, err
	}
	e.metrics.SwapFinished(string(StatusConfirmed))
	e.logger.Info("swap confirmed", "transactionId", tx.ID, "hash", hash)
	return e.store.Get(tx.ID)
}

func (e *Executor) fail(txID, hash string, cause error) (*Transaction, error) {
	if err := e.store.MarkFailed(txID, hash, cause.Error()); err != nil {
		return nil, err
	}
	e.metrics.SwapFinished(string(StatusFailed))
	e.logger.Error("swap failed", "transactionId", txID, "error", cause)

	tx, err := e.store.Get(txID)
	if err != nil {
		return nil, err
	}
	return tx, cause
}

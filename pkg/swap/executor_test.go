package swap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowswap/pkg/ledger"
	"flowswap/pkg/pricing"
	"flowswap/pkg/quote"
	"flowswap/pkg/route"
	"flowswap/pkg/token"
)

type executorFixture struct {
	executor *Executor
	cache    *quote.Cache
	store    *Store
	sim      *ledger.SimClient
	registry *token.Registry
}

func newFixture(t *testing.T) *executorFixture {
	t.Helper()
	registry := token.NewRegistry(token.DefaultTokens())
	graph := token.NewGraph(token.DefaultPools())
	hub, ok := registry.BySymbol("FLOW")
	require.True(t, ok)
	builder := quote.NewBuilder(registry, route.NewFinder(graph, hub), pricing.DefaultOracle(), decimal.RequireFromString("0.0001"))

	cache := quote.NewCache(builder)
	store := NewStore()
	sim := ledger.NewSimClient()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &executorFixture{
		executor: NewExecutor(cache, store, sim, nil, logger),
		cache:    cache,
		store:    store,
		sim:      sim,
		registry: registry,
	}
}

func (f *executorFixture) quoteFor(t *testing.T, amount string) *quote.Quote {
	t.Helper()
	flow, _ := f.registry.BySymbol("FLOW")
	usdc, _ := f.registry.BySymbol("USDC")
	q, err := f.cache.Request(flow.Address, usdc.Address, amount)
	require.NoError(t, err)
	return q
}

const recipient = "0x52908400098527886E0F7030069857D2E4169EE7"

func TestExecuteConfirmedSwap(t *testing.T) {
	f := newFixture(t)
	q := f.quoteFor(t, "10.0")

	start := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	f.executor.now = func() time.Time { return start }

	tx, err := f.executor.Execute(context.Background(), q.ID, recipient, DefaultSlippagePercent)
	require.NoError(t, err)

	assert.Equal(t, StatusConfirmed, tx.Status)
	assert.NotEmpty(t, tx.SettlementHash)
	assert.Equal(t, q.ID, tx.Quote.ID, "transaction freezes the executed quote")
	assert.Empty(t, tx.ErrorMessage)

	// Quoted 4.985000 USDC less the default 0.5% tolerance.
	assert.True(t, f.sim.LastParams.MinAmountOut.Equal(decimal.RequireFromString("4.960075")),
		"got %s", f.sim.LastParams.MinAmountOut)
	assert.Equal(t, start.Add(SettlementDeadline), f.sim.LastParams.Deadline)
	assert.Equal(t, q.RoutePath(), f.sim.LastParams.Path)
	assert.Equal(t, recipient, f.sim.LastParams.Recipient)
}

func TestExecuteUnknownQuote(t *testing.T) {
	f := newFixture(t)

	_, err := f.executor.Execute(context.Background(), "no-such-quote", recipient, DefaultSlippagePercent)
	assert.ErrorIs(t, err, quote.ErrQuoteExpired)
	assert.Empty(t, f.store.List(), "rejected executions leave no transaction record")
}

func TestExecuteConsumedQuote(t *testing.T) {
	f := newFixture(t)
	q := f.quoteFor(t, "10.0")

	_, err := f.executor.Execute(context.Background(), q.ID, recipient, DefaultSlippagePercent)
	require.NoError(t, err)

	_, err = f.executor.Execute(context.Background(), q.ID, recipient, DefaultSlippagePercent)
	assert.ErrorIs(t, err, quote.ErrQuoteConsumed)
	assert.Len(t, f.store.List(), 1, "the second attempt must not record a transaction")
}

func TestExecuteSubmitFailure(t *testing.T) {
	f := newFixture(t)
	q := f.quoteFor(t, "10.0")
	f.sim.SubmitErr = fmt.Errorf("insufficient allowance")

	tx, err := f.executor.Execute(context.Background(), q.ID, recipient, DefaultSlippagePercent)
	require.Error(t, err)
	require.NotNil(t, tx)

	assert.Equal(t, StatusFailed, tx.Status)
	assert.Empty(t, tx.SettlementHash)
	assert.Contains(t, tx.ErrorMessage, "insufficient allowance")

	// The quote is spent even though settlement failed.
	err = f.cache.Consume(q.ID)
	assert.ErrorIs(t, err, quote.ErrQuoteConsumed)
}

func TestExecuteRevertedSwap(t *testing.T) {
	f := newFixture(t)
	q := f.quoteFor(t, "10.0")
	f.sim.Verdict = ledger.Reverted

	tx, err := f.executor.Execute(context.Background(), q.ID, recipient, DefaultSlippagePercent)
	require.Error(t, err)
	require.NotNil(t, tx)

	assert.Equal(t, StatusFailed, tx.Status)
	assert.NotEmpty(t, tx.SettlementHash, "reverted swaps still carry their settlement hash")
	assert.Contains(t, tx.ErrorMessage, "reverted")
}

func TestExecuteIndependentTransactionIDs(t *testing.T) {
	f := newFixture(t)
	a := f.quoteFor(t, "1")
	b := f.quoteFor(t, "2")

	txA, err := f.executor.Execute(context.Background(), a.ID, recipient, DefaultSlippagePercent)
	require.NoError(t, err)
	txB, err := f.executor.Execute(context.Background(), b.ID, recipient, DefaultSlippagePercent)
	require.NoError(t, err)

	assert.NotEqual(t, txA.ID, txB.ID)
	assert.NotEqual(t, txA.ID, a.ID, "transaction ids are not quote ids")
}

func TestExecuteZeroSlippage(t *testing.T) {
	f := newFixture(t)
	q := f.quoteFor(t, "10.0")

	_, err := f.executor.Execute(context.Background(), q.ID, recipient, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "4.985", f.sim.LastParams.MinAmountOut.String())
}

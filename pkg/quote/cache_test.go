package quote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowswap/pkg/token"
)

// testClock is an adjustable time source for the cache under test.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testCache(t *testing.T) (*Cache, *testClock, token.Token, token.Token) {
	t.Helper()
	builder, registry := testBuilder(t)
	clock := &testClock{now: time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)}
	cache := NewCache(builder)
	cache.now = clock.Now
	return cache, clock, mustToken(t, registry, "FLOW"), mustToken(t, registry, "USDC")
}

func TestCacheRequestAndGet(t *testing.T) {
	cache, _, flow, usdc := testCache(t)

	q, err := cache.Request(flow.Address, usdc.Address, "10.0")
	require.NoError(t, err)
	assert.Equal(t, TTL, q.ValidUntil.Sub(q.CreatedAt))

	got, err := cache.Get(q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.ID, got.ID)
	assert.Equal(t, q.AmountOut, got.AmountOut)
	assert.Equal(t, 1, cache.Len())
}

func TestCacheGetUnknownID(t *testing.T) {
	cache, _, _, _ := testCache(t)

	_, err := cache.Get("nope")
	assert.ErrorIs(t, err, ErrQuoteExpired)
}

func TestCacheLazyEviction(t *testing.T) {
	cache, clock, flow, usdc := testCache(t)

	q, err := cache.Request(flow.Address, usdc.Address, "10.0")
	require.NoError(t, err)

	// One second before expiry the quote is still served.
	clock.Advance(TTL - time.Second)
	_, err = cache.Get(q.ID)
	require.NoError(t, err)

	clock.Advance(2 * time.Second)
	_, err = cache.Get(q.ID)
	assert.ErrorIs(t, err, ErrQuoteExpired)

	// The entry body survives for refresh, but the quote itself is gone.
	_, err = cache.Get(q.ID)
	assert.ErrorIs(t, err, ErrQuoteExpired)
	assert.False(t, cache.IsValid(q.ID))
}

func TestCacheValidity(t *testing.T) {
	cache, clock, flow, usdc := testCache(t)

	q, err := cache.Request(flow.Address, usdc.Address, "10.0")
	require.NoError(t, err)

	got, remaining, ok := cache.Validity(q.ID)
	require.True(t, ok)
	assert.Equal(t, q.ID, got.ID)
	assert.Equal(t, TTL, remaining)

	clock.Advance(TTL + time.Minute)
	_, remaining, ok = cache.Validity(q.ID)
	require.True(t, ok, "validity must not evict")
	assert.Equal(t, time.Duration(0), remaining)
	assert.False(t, cache.IsValid(q.ID))
}

func TestCacheRefreshIssuesNewQuote(t *testing.T) {
	cache, clock, flow, usdc := testCache(t)

	q, err := cache.Request(flow.Address, usdc.Address, "10.0")
	require.NoError(t, err)

	clock.Advance(time.Minute)
	refreshed, err := cache.Refresh(q.ID)
	require.NoError(t, err)

	assert.NotEqual(t, q.ID, refreshed.ID)
	assert.Equal(t, q.AmountIn, refreshed.AmountIn)
	assert.Equal(t, q.AmountOut, refreshed.AmountOut, "same parameters re-priced by the same oracle")
	assert.Equal(t, clock.Now(), refreshed.CreatedAt)
	assert.Equal(t, clock.Now().Add(TTL), refreshed.ValidUntil)

	// Old id is gone, new one is live.
	_, err = cache.Get(q.ID)
	assert.ErrorIs(t, err, ErrQuoteExpired)
	_, err = cache.Get(refreshed.ID)
	assert.NoError(t, err)
}

func TestCacheRefreshAfterExpiry(t *testing.T) {
	cache, clock, flow, usdc := testCache(t)

	q, err := cache.Request(flow.Address, usdc.Address, "10.0")
	require.NoError(t, err)

	// Expired but still within the parameter retention window.
	clock.Advance(TTL + time.Minute)
	refreshed, err := cache.Refresh(q.ID)
	require.NoError(t, err)
	assert.True(t, cache.IsValid(refreshed.ID))
}

func TestCacheRefreshForgottenID(t *testing.T) {
	cache, clock, flow, usdc := testCache(t)

	q, err := cache.Request(flow.Address, usdc.Address, "10.0")
	require.NoError(t, err)

	clock.Advance(TTL + RefreshGrace + time.Minute)
	_, err = cache.Refresh(q.ID)
	assert.ErrorIs(t, err, ErrQuoteNotFound)

	_, err = cache.Refresh("never-existed")
	assert.ErrorIs(t, err, ErrQuoteNotFound)
}

func TestCacheConsumeOnce(t *testing.T) {
	cache, _, flow, usdc := testCache(t)

	q, err := cache.Request(flow.Address, usdc.Address, "10.0")
	require.NoError(t, err)

	require.NoError(t, cache.Consume(q.ID))
	err = cache.Consume(q.ID)
	assert.ErrorIs(t, err, ErrQuoteConsumed)
}

func TestCacheConsumeExpired(t *testing.T) {
	cache, clock, flow, usdc := testCache(t)

	q, err := cache.Request(flow.Address, usdc.Address, "10.0")
	require.NoError(t, err)

	clock.Advance(TTL + time.Second)
	err = cache.Consume(q.ID)
	assert.ErrorIs(t, err, ErrQuoteExpired)
}

func TestCacheFailedBuildLeavesNoEntry(t *testing.T) {
	cache, _, flow, _ := testCache(t)

	_, err := cache.Request(flow.Address, flow.Address, "10.0")
	require.Error(t, err)
	assert.Equal(t, 0, cache.Len())
}

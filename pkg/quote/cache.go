package quote

import (
	"fmt"
	"sync"
	"time"
)

// requestParams are the original inputs a quote was built from. They outlive
// the quote itself by RefreshGrace so a refresh can re-price the same trade
// after expiry.
type requestParams struct {
	tokenIn  string
	tokenOut string
	amountIn string
}

type entry struct {
	quote       *Quote // nil once the quote has been evicted as expired
	params      requestParams
	paramsUntil time.Time
	consumed    bool
}

// Cache is the keyed store of live quotes. Eviction is lazy: an expired
// entry is removed when it is next read. Ids are UUIDs and never reused.
//
// All methods are safe for concurrent use; both Get and Consume are
// read-modify-write sequences and take the write lock.
type Cache struct {
	builder *Builder

	mu      sync.RWMutex
	entries map[string]*entry

	now func() time.Time
}

// NewCache creates a quote cache over the given builder.
func NewCache(builder *Builder) *Cache {
	return &Cache{
		builder: builder,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Request builds a quote for the pair and stores it before returning.
func (c *Cache) Request(tokenInAddr, tokenOutAddr, amountIn string) (*Quote, error) {
	now := c.now()
	q, err := c.builder.Build(tokenInAddr, tokenOutAddr, amountIn, now)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[q.ID] = &entry{
		quote:       q,
		params:      requestParams{tokenIn: tokenInAddr, tokenOut: tokenOutAddr, amountIn: amountIn},
		paramsUntil: q.ValidUntil.Add(RefreshGrace),
	}
	c.mu.Unlock()

	out := *q
	return &out, nil
}

// Get returns the live quote for id. An expired entry is evicted and
// reported as ErrQuoteExpired; unknown ids report the same, since the caller
// cannot tell the difference.
func (c *Cache) Get(id string) (*Quote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrQuoteExpired, id)
	}
	if e.quote == nil || !e.quote.ValidUntil.After(c.now()) {
		c.evictLocked(id, e)
		return nil, fmt.Errorf("%w: %s", ErrQuoteExpired, id)
	}

	out := *e.quote
	return &out, nil
}

// IsValid reports whether a non-expired entry exists for id. It never
// evicts.
func (c *Cache) IsValid(id string) bool {
	_, remaining, ok := c.Validity(id)
	return ok && remaining > 0
}

// Validity returns the stored quote (live or not yet forgotten) and the
// time remaining before expiry. ok is false when nothing is known about the
// id at all.
func (c *Cache) Validity(id string) (*Quote, time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[id]
	if !ok || e.quote == nil {
		return nil, 0, false
	}
	remaining := e.quote.ValidUntil.Sub(c.now())
	if remaining < 0 {
		remaining = 0
	}
	out := *e.quote
	return &out, remaining, true
}

// Refresh re-prices the trade described by the original request parameters
// of id, yielding a brand-new quote with a fresh id and TTL window. The old
// entry is removed. Works on expired ids while the parameters are still
// retained; afterwards returns ErrQuoteNotFound.
func (c *Cache) Refresh(id string) (*Quote, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e, ok := c.entries[id]
	if !ok || now.After(e.paramsUntil) {
		delete(c.entries, id)
		return nil, fmt.Errorf("%w: %s", ErrQuoteNotFound, id)
	}

	q, err := c.builder.Build(e.params.tokenIn, e.params.tokenOut, e.params.amountIn, now)
	if err != nil {
		return nil, err
	}

	delete(c.entries, id)
	c.entries[q.ID] = &entry{
		quote:       q,
		params:      e.params,
		paramsUntil: q.ValidUntil.Add(RefreshGrace),
	}

	out := *q
	return &out, nil
}

// Consume atomically marks a live quote as spent. A second Consume on the
// same id fails with ErrQuoteConsumed, turning a double-execute race into a
// hard error.
func (c *Cache) Consume(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[id]
	if !ok || e.quote == nil || !e.quote.ValidUntil.After(c.now()) {
		return fmt.Errorf("%w: %s", ErrQuoteExpired, id)
	}
	if e.consumed {
		return fmt.Errorf("%w: %s", ErrQuoteConsumed, id)
	}
	e.consumed = true
	return nil
}

// Len returns the number of entries currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// evictLocked drops the expired quote but keeps the request parameters
// around until their own deadline passes.
func (c *Cache) evictLocked(id string, e *entry) {
	if c.now().After(e.paramsUntil) {
		delete(c.entries, id)
		return
	}
	e.quote = nil
}

package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"flowswap/pkg/token"
)

// SimClient is an in-process settlement layer for dry runs and tests. Every
// submission succeeds and seals immediately unless a failure is scripted.
type SimClient struct {
	mu        sync.Mutex
	balances  map[string]decimal.Decimal // owner|symbol
	submitted int

	SubmitErr  error
	Verdict    Finality
	LastParams SubmitParams
}

// NewSimClient creates a simulator that seals everything it is given.
func NewSimClient() *SimClient {
	return &SimClient{
		balances: make(map[string]decimal.Decimal),
		Verdict:  Sealed,
	}
}

// SetBalance seeds a balance for Balance lookups.
func (s *SimClient) SetBalance(owner, symbol string, amount decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[balanceKey(owner, symbol)] = amount
}

// Submit records the swap and returns a deterministic pseudo-hash.
func (s *SimClient) Submit(_ context.Context, params SubmitParams) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.SubmitErr != nil {
		return "", s.SubmitErr
	}

	s.LastParams = params
	s.submitted++
	sum := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%s|%d",
		params.TokenIn.Symbol, params.TokenOut.Symbol, params.AmountIn.String(), s.submitted))
	return "0x" + hex.EncodeToString(sum[:]), nil
}

// AwaitFinality returns the scripted verdict without waiting.
func (s *SimClient) AwaitFinality(_ context.Context, _ string) (Finality, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Verdict, nil
}

// Balance returns the seeded balance, or zero when none was set.
func (s *SimClient) Balance(_ context.Context, owner string, t token.Token) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bal, ok := s.balances[balanceKey(owner, t.Symbol)]; ok {
		return bal, nil
	}
	return decimal.Zero, nil
}

// Submitted returns how many swaps have been handed to the simulator.
func (s *SimClient) Submitted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

func balanceKey(owner, symbol string) string {
	return owner + "|" + symbol
}

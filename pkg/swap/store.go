package swap

import (
	"fmt"
	"sync"
)

// ErrTransactionNotFound indicates a lookup for an id the store never saw.
var ErrTransactionNotFound = fmt.Errorf("transaction not found")

// Store is the append-only in-memory transaction record. Entries are never
// deleted; status transitions are the only mutation.
type Store struct {
	mu    sync.RWMutex
	byID  map[string]*Transaction
	order []string
}

// NewStore creates an empty transaction store.
func NewStore() *Store {
	return &Store{byID: make(map[string]*Transaction)}
}

// Insert records a new transaction. Inserting an id twice is a programming
// error and is rejected.
func (s *Store) Insert(tx *Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[tx.ID]; exists {
		return fmt.Errorf("transaction %s already recorded", tx.ID)
	}
	stored := *tx
	s.byID[tx.ID] = &stored
	s.order = append(s.order, tx.ID)
	return nil
}

// Get returns a copy of the transaction with the given id.
func (s *Store) Get(id string) (*Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	out := *tx
	return &out, nil
}

// List returns copies of all transactions in insertion order.
func (s *Store) List() []*Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Transaction, 0, len(s.order))
	for _, id := range s.order {
		tx := *s.byID[id]
		out = append(out, &tx)
	}
	return out
}

// MarkConfirmed transitions a pending transaction to confirmed and records
// its settlement hash.
func (s *Store) MarkConfirmed(id, hash string) error {
	return s.transition(id, func(tx *Transaction) {
		tx.Status = StatusConfirmed
		tx.SettlementHash = hash
	})
}

// MarkFailed transitions a pending transaction to failed and records the
// reason. hash may be empty when the submission itself failed.
func (s *Store) MarkFailed(id, hash, reason string) error {
	return s.transition(id, func(tx *Transaction) {
		tx.Status = StatusFailed
		tx.SettlementHash = hash
		tx.ErrorMessage = reason
	})
}

func (s *Store) transition(id string, apply func(*Transaction)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}
	if tx.Status != StatusPending {
		return fmt.Errorf("transaction %s is already %s", id, tx.Status)
	}
	apply(tx)
	return nil
}

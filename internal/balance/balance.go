// Package balance defines the play-money balance contract the engine
// settles against. The engine never computes a delta without reading the
// current balance first; implementations only need last-write-wins
// semantics because a single hand runs at a time.
package balance

import "sync"

// Service is the account balance consumed by the table for buy-ins and
// pot awards.
type Service interface {
	Balance() int
	SetBalance(amount int)
}

// InMemory is a mutex-guarded in-process Service. The lock serialises
// debit and credit so buy-in and payout never interleave.
type InMemory struct {
	mu     sync.Mutex
	amount int
}

// NewInMemory creates an in-memory balance holding the given amount
func NewInMemory(amount int) *InMemory {
	return &InMemory{amount: amount}
}

// Balance returns the current balance
func (s *InMemory) Balance() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.amount
}

// SetBalance replaces the current balance
func (s *InMemory) SetBalance(amount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.amount = amount
}

package payments

import (
	"context"
	"fmt"
	"sync"

	id "devdeck/pkg/domain"
)

// Ledger is an in-memory balance ledger implementing Settler. Used in dev
// mode and tests; it never mints value, it only moves balances it was seeded
// with via Credit.
type Ledger struct {
	mu       sync.RWMutex
	balances map[id.AccountID]int64
}

func NewLedger() *Ledger {
	return &Ledger{balances: make(map[id.AccountID]int64)}
}

// Credit seeds an account with funds.
func (l *Ledger) Credit(account id.AccountID, amount int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[account] += amount
}

// Balance returns the current balance of an account.
func (l *Ledger) Balance(account id.AccountID) int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[account]
}

// Transfer moves amount from one account to another. Debit and credit happen
// under one lock so no caller can observe the amount in flight.
func (l *Ledger) Transfer(_ context.Context, from, to id.AccountID, amount int64) error {
	if amount < 0 {
		return fmt.Errorf("negative transfer amount %d", amount)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[from] < amount {
		return ErrInsufficientBalance
	}
	l.balances[from] -= amount
	l.balances[to] += amount
	return nil
}

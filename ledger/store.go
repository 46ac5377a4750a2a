// Package ledger provides the base fungible-asset ledger: balance and
// total-supply bookkeeping with an atomic transfer primitive. The fee engine
// in package token wraps this ledger; it never mutates balances directly.
package ledger

import (
	"fmt"
	"sync"

	"github.com/refluxorg/libreflux-go/account"
)

// Ledger is the balance/supply bookkeeping collaborator. Implementations
// must make Transfer atomic: either both balance updates commit or neither.
type Ledger interface {
	// BalanceOf returns the balance of acct. Unknown accounts have balance 0.
	BalanceOf(acct account.Account) (uint64, error)

	// TotalSupply returns the total minted supply.
	TotalSupply() (uint64, error)

	// Mint credits newly created units to acct and grows the total supply.
	Mint(acct account.Account, amount uint64) error

	// Transfer atomically moves amount from one account to the other.
	Transfer(from, to account.Account, amount uint64) error
}

// MemLedger is an in-memory Ledger for tests and ephemeral use.
type MemLedger struct {
	mu       sync.RWMutex
	balances map[account.Account]uint64
	supply   uint64
}

// NewMemLedger creates an empty in-memory ledger.
func NewMemLedger() *MemLedger {
	return &MemLedger{balances: make(map[account.Account]uint64)}
}

// BalanceOf returns the balance of acct.
func (l *MemLedger) BalanceOf(acct account.Account) (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[acct], nil
}

// TotalSupply returns the total minted supply.
func (l *MemLedger) TotalSupply() (uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.supply, nil
}

// Mint credits amount to acct and grows the supply.
func (l *MemLedger) Mint(acct account.Account, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.supply+amount < l.supply {
		return fmt.Errorf("%w: supply %d + %d", ErrSupplyOverflow, l.supply, amount)
	}
	l.balances[acct] += amount
	l.supply += amount
	return nil
}

// Transfer atomically moves amount between accounts.
func (l *MemLedger) Transfer(from, to account.Account, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	bal := l.balances[from]
	if bal < amount {
		return fmt.Errorf("%w: balance %d, need %d", ErrInsufficientBalance, bal, amount)
	}
	l.balances[from] = bal - amount
	l.balances[to] += amount
	if l.balances[from] == 0 {
		delete(l.balances, from)
	}
	return nil
}

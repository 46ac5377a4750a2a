// Package settlement models the external settlement-currency collaborator:
// the system's held settlement balance, unconditional deposits, and the
// send-value-report-success primitive used to pay out claimed rewards.
//
// How the held balance is funded is an operational concern outside this
// library: an off-ledger actor converts collected fee-asset units into
// settlement currency and deposits the proceeds. No conversion rate is
// assumed here.
package settlement

import (
	"fmt"
	"sync"

	"github.com/refluxorg/libreflux-go/account"
)

// Bank is the settlement-currency collaborator.
type Bank interface {
	// Balance returns the settlement currency currently held by the system.
	Balance() uint64

	// Deposit unconditionally increases the held balance. Anyone may fund
	// the system; deposits have no accounting side effect.
	Deposit(amount uint64)

	// Send pays amount of settlement currency to the given account and
	// reports failure with a non-nil error.
	Send(to account.Account, amount uint64) error
}

// MemBank is an in-memory Bank. Sends debit the held balance and record
// the cumulative amount paid to each account.
type MemBank struct {
	mu   sync.Mutex
	held uint64
	paid map[account.Account]uint64
}

// NewMemBank creates an empty in-memory bank.
func NewMemBank() *MemBank {
	return &MemBank{paid: make(map[account.Account]uint64)}
}

// Balance returns the held settlement balance.
func (b *MemBank) Balance() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.held
}

// Deposit increases the held balance.
func (b *MemBank) Deposit(amount uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.held += amount
}

// Send debits the held balance and credits the recipient's paid total.
func (b *MemBank) Send(to account.Account, amount uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.held < amount {
		return fmt.Errorf("%w: held %d, need %d", ErrInsufficientFunds, b.held, amount)
	}
	b.held -= amount
	b.paid[to] += amount
	return nil
}

// PaidTo returns the cumulative settlement currency sent to acct.
func (b *MemBank) PaidTo(acct account.Account) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.paid[acct]
}

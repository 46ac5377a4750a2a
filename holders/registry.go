// Package holders maintains the dynamic set of accounts with a nonzero
// asset balance: O(1) membership, insert, and swap-and-pop removal, with
// positional enumeration for paginated reward distribution.
package holders

import (
	"fmt"

	"github.com/refluxorg/libreflux-go/account"
)

// Registry is an ordered sequence of holder accounts plus a back-reference
// map from account to its 1-based position in the sequence (0 = absent).
//
// Removal swaps the removed account with the last element, so positions are
// not stable across removals: an index observed before a Remove may refer to
// a different account afterwards.
//
// Registry is not safe for concurrent use; the owning ledger core serializes
// access.
type Registry struct {
	seq []account.Account
	pos map[account.Account]int // 1-based; 0 means absent
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{pos: make(map[account.Account]int)}
}

// Contains reports whether acct is registered.
func (r *Registry) Contains(acct account.Account) bool {
	return r.pos[acct] != 0
}

// Insert adds acct to the registry. No-op if already present.
// Call sites only invoke this after observing a positive balance.
func (r *Registry) Insert(acct account.Account) {
	if r.pos[acct] != 0 {
		return
	}
	r.seq = append(r.seq, acct)
	r.pos[acct] = len(r.seq)
}

// Remove deletes acct from the registry by swapping it with the last
// element and shrinking the sequence. No-op if absent.
// Call sites only invoke this after observing a zero balance.
func (r *Registry) Remove(acct account.Account) {
	p := r.pos[acct]
	if p == 0 {
		return
	}
	last := len(r.seq)
	if p != last {
		moved := r.seq[last-1]
		r.seq[p-1] = moved
		r.pos[moved] = p
	}
	r.seq = r.seq[:last-1]
	delete(r.pos, acct)
}

// At returns the account at the given zero-based index.
func (r *Registry) At(index int) (account.Account, error) {
	if index < 0 || index >= len(r.seq) {
		return account.Null, fmt.Errorf("%w: index %d, length %d", ErrIndexOutOfRange, index, len(r.seq))
	}
	return r.seq[index], nil
}

// Len returns the number of registered holders.
func (r *Registry) Len() int {
	return len(r.seq)
}

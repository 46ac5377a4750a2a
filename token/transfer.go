package token

import (
	"fmt"

	"github.com/refluxorg/libreflux-go/account"
	"github.com/refluxorg/libreflux-go/fees"
	"github.com/refluxorg/libreflux-go/ledger"
)

// Transfer moves amount from one account to the other through the
// fee-adjusted engine. Transfers to the pool proxy are sells, transfers
// from it are buys; both bear the corresponding fee unless a party is
// fee-exempt. Peer-to-peer transfers are fee-free. The fee splits into a
// reflection portion credited to the collected pool, a liquidity portion
// routed to the pool proxy, and a marketing portion routed to the
// marketing wallet; the recipient receives the net remainder. Holder
// registry membership is maintained for every account the transfer
// touches.
func (t *Token) Transfer(from, to account.Account, amount uint64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.update(from, to, amount)
}

// update is the single entry point wrapping the base ledger's transfer.
// The liquidity and marketing portions recurse through it with
// inFeeRouting set, so they are fee-free and still maintain registry
// membership for their recipients.
func (t *Token) update(from, to account.Account, amount uint64) error {
	if to.IsNull() {
		return fmt.Errorf("%w: recipient", ErrInvalidAddress)
	}

	// Validate the sender's funds for the full amount up front. The fee
	// routing below moves at most `amount` in pieces, so after this check
	// no sub-transfer can fail and leave partial effects behind.
	bal, err := t.ledger.BalanceOf(from)
	if err != nil {
		return err
	}
	if bal < amount {
		return fmt.Errorf("%w: balance %d, need %d", ledger.ErrInsufficientBalance, bal, amount)
	}

	fee := t.feeFor(from, to, amount)
	net := amount - fee

	if fee > 0 {
		split := fees.SplitFee(fee)
		t.collected += split.Reflection

		t.inFeeRouting = true
		err := t.update(from, t.pool, split.Liquidity)
		if err == nil {
			err = t.update(from, t.marketing, split.Marketing)
		}
		t.inFeeRouting = false
		if err != nil {
			return err
		}
	}

	if err := t.ledger.Transfer(from, to, net); err != nil {
		return err
	}

	// Registry membership tracks post-transfer balances: the recipient
	// enters on a zero-to-positive transition, the sender leaves when
	// drained to exactly zero.
	toBal, err := t.ledger.BalanceOf(to)
	if err != nil {
		return err
	}
	if toBal > 0 {
		t.registry.Insert(to)
	}
	fromBal, err := t.ledger.BalanceOf(from)
	if err != nil {
		return err
	}
	if fromBal == 0 {
		t.registry.Remove(from)
	}
	return nil
}

// feeFor classifies a transfer and returns the fee to deduct.
func (t *Token) feeFor(from, to account.Account, amount uint64) uint64 {
	if t.inFeeRouting || t.feeExempt[from] || t.feeExempt[to] {
		return 0
	}
	switch {
	case to == t.pool:
		return fees.FeeFor(amount, t.schedule.Sell())
	case from == t.pool:
		return fees.FeeFor(amount, t.schedule.Buy())
	default:
		return 0
	}
}

package token

import (
	"fmt"

	"github.com/refluxorg/libreflux-go/account"
)

// checkOwner gates administrative operations on the configured owner check.
func (t *Token) checkOwner(caller account.Account) error {
	if t.isOwner == nil || !t.isOwner(caller) {
		return fmt.Errorf("%w: %s", ErrNotOwner, caller)
	}
	return nil
}

// SetRewardExcluded adds acct to or removes it from the reward-exclusion
// set. Owner only.
func (t *Token) SetRewardExcluded(caller, acct account.Account, flag bool) error {
	if err := t.checkOwner(caller); err != nil {
		return err
	}
	t.mu.Lock()
	if flag {
		t.rewardExcluded[acct] = true
	} else {
		delete(t.rewardExcluded, acct)
	}
	t.mu.Unlock()

	t.emit(ExclusionChangedEvent{Account: acct, Rewards: true, Flag: flag})
	return nil
}

// SetFeeExempt adds acct to or removes it from the fee-exemption set.
// Transfers to or from an exempt account bypass fee computation entirely.
// Owner only.
func (t *Token) SetFeeExempt(caller, acct account.Account, flag bool) error {
	if err := t.checkOwner(caller); err != nil {
		return err
	}
	t.mu.Lock()
	if flag {
		t.feeExempt[acct] = true
	} else {
		delete(t.feeExempt, acct)
	}
	t.mu.Unlock()

	t.emit(ExclusionChangedEvent{Account: acct, Rewards: false, Flag: flag})
	return nil
}

// ProposeFees records a pending buy/sell fee change, restarting the
// governance timelock and discarding any unapplied proposal. Owner only.
func (t *Token) ProposeFees(caller account.Account, buy, sell uint64) error {
	if err := t.checkOwner(caller); err != nil {
		return err
	}
	t.mu.Lock()
	pending, err := t.schedule.Propose(buy, sell)
	t.mu.Unlock()
	if err != nil {
		return err
	}

	t.emit(FeeChangeProposedEvent{Buy: pending.Buy, Sell: pending.Sell, ProposedAt: pending.ProposedAt})
	return nil
}

// ApplyFees commits the pending fee change once its timelock has expired.
// Owner only.
func (t *Token) ApplyFees(caller account.Account) error {
	if err := t.checkOwner(caller); err != nil {
		return err
	}
	t.mu.Lock()
	err := t.schedule.Apply()
	buy, sell := t.schedule.Buy(), t.schedule.Sell()
	t.mu.Unlock()
	if err != nil {
		return err
	}

	t.emit(FeesUpdatedEvent{Buy: buy, Sell: sell})
	return nil
}

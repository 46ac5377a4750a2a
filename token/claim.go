package token

import (
	"fmt"

	"github.com/refluxorg/libreflux-go/account"
	"github.com/refluxorg/libreflux-go/settlement"
)

// Claim pays out the caller's accrued reward in settlement currency.
//
// The reward entry is zeroed before the external payout call
// (checks-effects-interactions), and a non-reentrant guard rejects any
// claim that arrives while the payout call is in flight. If the payout
// fails, the zeroed entry is restored and the error surfaces wrapped in
// settlement.ErrTransferFailed; no partial state survives.
func (t *Token) Claim(caller account.Account) error {
	t.mu.Lock()
	if t.claiming {
		t.mu.Unlock()
		return ErrReentrantClaim
	}
	if t.rewardExcluded[caller] {
		t.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrExcluded, caller)
	}
	reward := t.rewards[caller]
	if reward == 0 {
		t.mu.Unlock()
		return ErrNothingToClaim
	}
	if held := t.bank.Balance(); held < reward {
		t.mu.Unlock()
		return fmt.Errorf("%w: held %d, owed %d", ErrInsufficientSettlement, held, reward)
	}

	delete(t.rewards, caller)
	t.claiming = true
	t.mu.Unlock()

	// External call, made without the lock so the guard above handles
	// re-entrant callers instead of a deadlock.
	sendErr := t.bank.Send(caller, reward)

	t.mu.Lock()
	t.claiming = false
	if sendErr != nil {
		t.rewards[caller] += reward
		t.mu.Unlock()
		return fmt.Errorf("%w: %w", settlement.ErrTransferFailed, sendErr)
	}
	t.mu.Unlock()

	t.emit(RewardClaimedEvent{Account: caller, Amount: reward})
	return nil
}

package token

import (
	"fmt"
	"time"

	"github.com/refluxorg/libreflux-go/fees"
	"github.com/refluxorg/libreflux-go/holders"
)

// DistributeBatch converts the accumulated fee pool into per-holder reward
// entries for the holders at positions [start, end). Callable by anyone;
// the cooldown is the only access control, so any party may trigger it on
// a schedule.
//
// The pool is snapshotted and zeroed before allocation: fees collected
// during the next window start a fresh pool, and any part of the snapshot
// not covered by [start, end) is dropped, not carried forward.
//
// Holders that are reward-excluded or below the minimum eligible balance
// are skipped. Each eligible holder accrues
// amount * (balance*Scale/totalSupply) / Scale, with the supply
// snapshotted once for the whole batch.
func (t *Token) DistributeBatch(start, end int) error {
	t.mu.Lock()

	now := t.clock()
	if !t.lastDistributedAt.IsZero() {
		next := t.lastDistributedAt.Add(t.cfg.DistributionCooldown)
		if now.Before(next) {
			t.mu.Unlock()
			return fmt.Errorf("%w: next run at %s", ErrDistributionNotReady, next.UTC().Format(time.RFC3339))
		}
	}
	if start < 0 {
		t.mu.Unlock()
		return fmt.Errorf("%w: start %d", holders.ErrIndexOutOfRange, start)
	}

	amount := t.collected
	t.collected = 0

	supply, err := t.ledger.TotalSupply()
	if err != nil {
		t.mu.Unlock()
		return err
	}

	if end > t.registry.Len() {
		end = t.registry.Len()
	}
	for i := start; i < end; i++ {
		holder, err := t.registry.At(i)
		if err != nil {
			t.mu.Unlock()
			return err
		}
		if t.rewardExcluded[holder] {
			continue
		}
		bal, err := t.ledger.BalanceOf(holder)
		if err != nil {
			t.mu.Unlock()
			return err
		}
		if bal < t.cfg.MinEligibleBalance {
			continue
		}
		share := fees.MulDiv(bal, Scale, supply)
		t.rewards[holder] += fees.MulDiv(amount, share, Scale)
	}

	// The run consumes the cooldown window even when the batch covered
	// only part of the registry.
	t.lastDistributedAt = now
	t.mu.Unlock()

	t.emit(DistributionEvent{Amount: amount})
	return nil
}

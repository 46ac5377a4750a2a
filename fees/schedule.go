package fees

import (
	"fmt"
	"time"
)

// Clock supplies the current time. Injected so the timelock is testable
// without waiting out real delays.
type Clock func() time.Time

// PendingChange is a proposed buy/sell fee pair awaiting its timelock.
type PendingChange struct {
	Buy        uint64
	Sell       uint64
	ProposedAt time.Time
}

// Schedule holds the current buy/sell fee percentages and at most one
// pending, timelocked change. States: idle (no pending change) and
// proposed. A new proposal overwrites any unapplied one; there is no
// cancellation, only replacement.
//
// Schedule is not safe for concurrent use; the owning ledger core
// serializes access.
type Schedule struct {
	buy   uint64
	sell  uint64
	delay time.Duration
	clock Clock

	pending *PendingChange
}

// NewSchedule creates a fee schedule with the given starting percentages
// and governance delay. A nil clock defaults to time.Now.
func NewSchedule(buy, sell uint64, delay time.Duration, clock Clock) (*Schedule, error) {
	if buy > MaxFeePercent || sell > MaxFeePercent {
		return nil, fmt.Errorf("%w: buy=%d sell=%d", ErrFeeTooHigh, buy, sell)
	}
	if clock == nil {
		clock = time.Now
	}
	return &Schedule{buy: buy, sell: sell, delay: delay, clock: clock}, nil
}

// Buy returns the current buy fee percentage.
func (s *Schedule) Buy() uint64 { return s.buy }

// Sell returns the current sell fee percentage.
func (s *Schedule) Sell() uint64 { return s.sell }

// Pending returns the pending change, if any.
func (s *Schedule) Pending() (PendingChange, bool) {
	if s.pending == nil {
		return PendingChange{}, false
	}
	return *s.pending, true
}

// Propose records a new pending fee change, restarting the timelock and
// discarding any unapplied proposal.
func (s *Schedule) Propose(buy, sell uint64) (PendingChange, error) {
	if buy > MaxFeePercent || sell > MaxFeePercent {
		return PendingChange{}, fmt.Errorf("%w: buy=%d sell=%d", ErrFeeTooHigh, buy, sell)
	}
	s.pending = &PendingChange{Buy: buy, Sell: sell, ProposedAt: s.clock()}
	return *s.pending, nil
}

// Apply commits the pending change once its timelock has expired and
// clears it. The deadline itself is inclusive: applying at exactly
// proposedAt+delay succeeds.
func (s *Schedule) Apply() error {
	if s.pending == nil {
		return ErrNoPendingChange
	}
	deadline := s.pending.ProposedAt.Add(s.delay)
	if s.clock().Before(deadline) {
		return fmt.Errorf("%w: applicable at %s", ErrTimelockNotExpired, deadline.UTC().Format(time.RFC3339))
	}
	s.buy = s.pending.Buy
	s.sell = s.pending.Sell
	s.pending = nil
	return nil
}

// Restore reinstates a schedule from persisted state. Used by snapshot
// loading; pending may be nil.
func (s *Schedule) Restore(buy, sell uint64, pending *PendingChange) error {
	if buy > MaxFeePercent || sell > MaxFeePercent {
		return fmt.Errorf("%w: buy=%d sell=%d", ErrFeeTooHigh, buy, sell)
	}
	if pending != nil && (pending.Buy > MaxFeePercent || pending.Sell > MaxFeePercent) {
		return fmt.Errorf("%w: pending buy=%d sell=%d", ErrFeeTooHigh, pending.Buy, pending.Sell)
	}
	s.buy = buy
	s.sell = sell
	if pending == nil {
		s.pending = nil
	} else {
		p := *pending
		s.pending = &p
	}
	return nil
}

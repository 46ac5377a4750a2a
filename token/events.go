package token

import (
	"time"

	"github.com/refluxorg/libreflux-go/account"
)

// Event is a notification emitted by the ledger core for external
// observers and indexers. Events are delivered to the sink configured via
// WithEventSink after the emitting operation has committed and released
// its lock, so sinks may call back into the token.
type Event interface {
	event()
}

// DistributionEvent records a completed distribution run and the pool
// amount it snapshotted, whether or not the batch covered all holders.
type DistributionEvent struct {
	Amount uint64
}

// FeesUpdatedEvent records a committed fee change.
type FeesUpdatedEvent struct {
	Buy  uint64
	Sell uint64
}

// FeeChangeProposedEvent records a new pending fee change.
type FeeChangeProposedEvent struct {
	Buy        uint64
	Sell       uint64
	ProposedAt time.Time
}

// ExclusionChangedEvent records a change to one of the exclusion sets.
// Rewards distinguishes the reward-exclusion set from the fee-exemption set.
type ExclusionChangedEvent struct {
	Account account.Account
	Rewards bool
	Flag    bool
}

// RewardClaimedEvent records a successful reward payout.
type RewardClaimedEvent struct {
	Account account.Account
	Amount  uint64
}

func (DistributionEvent) event()      {}
func (FeesUpdatedEvent) event()       {}
func (FeeChangeProposedEvent) event() {}
func (ExclusionChangedEvent) event()  {}
func (RewardClaimedEvent) event()     {}

// emit delivers ev to the sink, if one is configured. Callers must not
// hold t.mu.
func (t *Token) emit(ev Event) {
	if t.sink != nil {
		t.sink(ev)
	}
}

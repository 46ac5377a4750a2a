package token

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/refluxorg/libreflux-go/account"
	"github.com/refluxorg/libreflux-go/fees"
	"github.com/refluxorg/libreflux-go/holders"
)

// State is a JSON snapshot of the core's accounting state: the reward
// ledger, the collected pool, the holder registry (in positional order),
// the exclusion sets, and the fee schedule. The base ledger's balances
// persist separately (see ledger.BoltLedger); restoring a snapshot only
// makes sense against the matching ledger.
type State struct {
	Collected         uint64            `json:"collected"`
	LastDistributedAt int64             `json:"last_distributed_at,omitempty"` // unix seconds
	Rewards           map[string]uint64 `json:"rewards,omitempty"`             // hex account -> amount
	Holders           []string          `json:"holders,omitempty"`             // registry order
	RewardExcluded    []string          `json:"reward_excluded,omitempty"`
	FeeExempt         []string          `json:"fee_exempt,omitempty"`
	BuyFee            uint64            `json:"buy_fee"`
	SellFee           uint64            `json:"sell_fee"`
	Pending           *PendingState     `json:"pending,omitempty"`
}

// PendingState is the persisted form of a pending fee change.
type PendingState struct {
	Buy        uint64 `json:"buy"`
	Sell       uint64 `json:"sell"`
	ProposedAt int64  `json:"proposed_at"` // unix seconds
}

// Snapshot captures the current accounting state.
func (t *Token) Snapshot() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := State{
		Collected: t.collected,
		Rewards:   make(map[string]uint64, len(t.rewards)),
		BuyFee:    t.schedule.Buy(),
		SellFee:   t.schedule.Sell(),
	}
	if !t.lastDistributedAt.IsZero() {
		s.LastDistributedAt = t.lastDistributedAt.Unix()
	}
	for acct, amount := range t.rewards {
		s.Rewards[acct.String()] = amount
	}
	for i := 0; i < t.registry.Len(); i++ {
		holder, _ := t.registry.At(i)
		s.Holders = append(s.Holders, holder.String())
	}
	for acct := range t.rewardExcluded {
		s.RewardExcluded = append(s.RewardExcluded, acct.String())
	}
	for acct := range t.feeExempt {
		s.FeeExempt = append(s.FeeExempt, acct.String())
	}
	sort.Strings(s.RewardExcluded)
	sort.Strings(s.FeeExempt)

	if pending, ok := t.schedule.Pending(); ok {
		s.Pending = &PendingState{
			Buy:        pending.Buy,
			Sell:       pending.Sell,
			ProposedAt: pending.ProposedAt.Unix(),
		}
	}
	return s
}

// Restore replaces the accounting state with a snapshot.
func (t *Token) Restore(s State) error {
	rewards := make(map[account.Account]uint64, len(s.Rewards))
	for hexAcct, amount := range s.Rewards {
		acct, err := account.FromHex(hexAcct)
		if err != nil {
			return fmt.Errorf("token: restore rewards: %w", err)
		}
		rewards[acct] = amount
	}

	registry := holders.NewRegistry()
	for _, hexAcct := range s.Holders {
		acct, err := account.FromHex(hexAcct)
		if err != nil {
			return fmt.Errorf("token: restore holders: %w", err)
		}
		registry.Insert(acct)
	}

	rewardExcluded, err := parseAccountSet(s.RewardExcluded)
	if err != nil {
		return fmt.Errorf("token: restore reward exclusions: %w", err)
	}
	feeExempt, err := parseAccountSet(s.FeeExempt)
	if err != nil {
		return fmt.Errorf("token: restore fee exemptions: %w", err)
	}

	var pending *fees.PendingChange
	if s.Pending != nil {
		pending = &fees.PendingChange{
			Buy:        s.Pending.Buy,
			Sell:       s.Pending.Sell,
			ProposedAt: time.Unix(s.Pending.ProposedAt, 0),
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.schedule.Restore(s.BuyFee, s.SellFee, pending); err != nil {
		return err
	}
	t.rewards = rewards
	t.registry = registry
	t.rewardExcluded = rewardExcluded
	t.feeExempt = feeExempt
	t.collected = s.Collected
	if s.LastDistributedAt != 0 {
		t.lastDistributedAt = time.Unix(s.LastDistributedAt, 0)
	} else {
		t.lastDistributedAt = time.Time{}
	}
	return nil
}

// SaveState writes the snapshot as indented JSON at path.
func (t *Token) SaveState(path string) error {
	data, err := json.MarshalIndent(t.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("token: marshal state: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// LoadState restores the snapshot at path. A missing file is not an
// error: the freshly constructed state stands.
func (t *Token) LoadState(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("token: read state: %w", err)
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("token: parse state: %w", err)
	}
	return t.Restore(s)
}

func parseAccountSet(hexAccts []string) (map[account.Account]bool, error) {
	set := make(map[account.Account]bool, len(hexAccts))
	for _, hexAcct := range hexAccts {
		acct, err := account.FromHex(hexAcct)
		if err != nil {
			return nil, err
		}
		set[acct] = true
	}
	return set, nil
}

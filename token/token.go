// Package token implements the fee-bearing asset core: the fee-adjusted
// transfer engine, the holder registry maintenance, the batched and
// time-gated reward distribution, the per-holder claim ledger, and the
// timelocked fee governance, all wrapped around a base ledger collaborator.
package token

import (
	"fmt"
	"sync"
	"time"

	"github.com/refluxorg/libreflux-go/account"
	"github.com/refluxorg/libreflux-go/config"
	"github.com/refluxorg/libreflux-go/fees"
	"github.com/refluxorg/libreflux-go/holders"
	"github.com/refluxorg/libreflux-go/ledger"
	"github.com/refluxorg/libreflux-go/settlement"
)

const (
	// InitialSupply is minted to the marketing wallet at construction.
	InitialSupply uint64 = 10_000_000

	// Scale is the fixed-point constant for pro-rata share computation:
	// share = balance*Scale/totalSupply, reward = amount*share/Scale.
	// Large enough that the double truncation is negligible against
	// typical balances.
	Scale uint64 = 1e18

	// poolProxyTag derives the pool-proxy account: the system's own
	// account standing in for an external liquidity venue. Transfers to
	// it are sells, transfers from it are buys.
	poolProxyTag = "reflux/pool-proxy/v1"
)

// Token is the fee-bearing ledger core. All mutating operations are
// serialized behind one mutex; each either commits all its effects or none.
type Token struct {
	mu sync.Mutex

	cfg     config.Config
	ledger  ledger.Ledger
	bank    settlement.Bank
	clock   fees.Clock
	isOwner func(account.Account) bool
	sink    func(Event)

	pool      account.Account
	marketing account.Account

	registry *holders.Registry
	schedule *fees.Schedule

	feeExempt      map[account.Account]bool
	rewardExcluded map[account.Account]bool

	rewards           map[account.Account]uint64
	collected         uint64
	lastDistributedAt time.Time

	// inFeeRouting is set while the engine performs its own liquidity and
	// marketing sub-transfers, so they bypass fee computation.
	inFeeRouting bool

	// claiming is set while a claim's external payout call is in flight.
	claiming bool
}

// Option customizes a Token at construction.
type Option func(*Token)

// WithLedger sets the base ledger. Defaults to an in-memory ledger.
func WithLedger(l ledger.Ledger) Option {
	return func(t *Token) { t.ledger = l }
}

// WithBank sets the settlement-currency bank. Defaults to an in-memory bank.
func WithBank(b settlement.Bank) Option {
	return func(t *Token) { t.bank = b }
}

// WithClock sets the time source. Defaults to time.Now.
func WithClock(c fees.Clock) Option {
	return func(t *Token) { t.clock = c }
}

// WithConfig sets the ledger parameters. Defaults to config.DefaultConfig
// (the DataDir field is not used by the core).
func WithConfig(cfg config.Config) Option {
	return func(t *Token) { t.cfg = cfg }
}

// WithOwner gates administrative operations on equality with owner.
func WithOwner(owner account.Account) Option {
	return func(t *Token) {
		t.isOwner = func(a account.Account) bool { return a == owner }
	}
}

// WithIsOwner installs an external access-control gate for administrative
// operations. Without WithOwner or WithIsOwner every administrative call
// fails with ErrNotOwner.
func WithIsOwner(gate func(account.Account) bool) Option {
	return func(t *Token) { t.isOwner = gate }
}

// WithEventSink installs a callback receiving emitted events. The sink is
// invoked outside the core's lock.
func WithEventSink(sink func(Event)) Option {
	return func(t *Token) { t.sink = sink }
}

// New creates a token core, mints the initial supply to the marketing
// wallet, and seeds the exclusion sets: the pool proxy and the marketing
// wallet never accrue rewards, and the marketing wallet's transfers bypass
// fees. The pool proxy is deliberately not fee-exempt: transfers touching
// it are exactly the ones that bear fees.
func New(marketingWallet account.Account, opts ...Option) (*Token, error) {
	if marketingWallet.IsNull() {
		return nil, fmt.Errorf("%w: marketing wallet", ErrInvalidAddress)
	}

	t := &Token{
		cfg:            config.DefaultConfig(),
		clock:          time.Now,
		pool:           account.FromTag(poolProxyTag),
		marketing:      marketingWallet,
		registry:       holders.NewRegistry(),
		feeExempt:      make(map[account.Account]bool),
		rewardExcluded: make(map[account.Account]bool),
		rewards:        make(map[account.Account]uint64),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.ledger == nil {
		t.ledger = ledger.NewMemLedger()
	}
	if t.bank == nil {
		t.bank = settlement.NewMemBank()
	}

	if t.cfg.DistributionCooldown <= 0 {
		return nil, config.ErrInvalidCooldown
	}
	if t.cfg.GovernanceDelay <= 0 {
		return nil, config.ErrInvalidDelay
	}

	schedule, err := fees.NewSchedule(t.cfg.BuyFeePercent, t.cfg.SellFeePercent, t.cfg.GovernanceDelay, t.clock)
	if err != nil {
		return nil, err
	}
	t.schedule = schedule

	t.rewardExcluded[t.pool] = true
	t.rewardExcluded[t.marketing] = true
	t.feeExempt[t.marketing] = true

	if err := t.ledger.Mint(t.marketing, InitialSupply); err != nil {
		return nil, fmt.Errorf("token: mint initial supply: %w", err)
	}
	t.registry.Insert(t.marketing)

	return t, nil
}

// PoolProxy returns the pool-proxy account.
func (t *Token) PoolProxy() account.Account { return t.pool }

// MarketingWallet returns the marketing wallet account.
func (t *Token) MarketingWallet() account.Account { return t.marketing }

// BalanceOf returns the base-ledger balance of acct.
func (t *Token) BalanceOf(acct account.Account) (uint64, error) {
	return t.ledger.BalanceOf(acct)
}

// TotalSupply returns the base-ledger total supply.
func (t *Token) TotalSupply() (uint64, error) {
	return t.ledger.TotalSupply()
}

// HolderCount returns the number of registered holders.
func (t *Token) HolderCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.registry.Len()
}

// HolderAt returns the holder at the given zero-based index. Positions are
// not stable across removals.
func (t *Token) HolderAt(index int) (account.Account, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.registry.At(index)
}

// IsHolder reports whether acct is in the holder registry.
func (t *Token) IsHolder(acct account.Account) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.registry.Contains(acct)
}

// CollectedPool returns the fee-derived value accumulated since the last
// distribution run, denominated in asset units.
func (t *Token) CollectedPool() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.collected
}

// LastDistributedAt returns the time of the last distribution run, zero if
// none has happened.
func (t *Token) LastDistributedAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastDistributedAt
}

// RewardOf returns acct's accrued, claimable settlement-currency balance.
func (t *Token) RewardOf(acct account.Account) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rewards[acct]
}

// Fees returns the current buy and sell fee percentages.
func (t *Token) Fees() (buy, sell uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.schedule.Buy(), t.schedule.Sell()
}

// PendingFeeChange returns the pending fee proposal, if any.
func (t *Token) PendingFeeChange() (fees.PendingChange, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.schedule.Pending()
}

// IsRewardExcluded reports whether acct is barred from rewards.
func (t *Token) IsRewardExcluded(acct account.Account) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rewardExcluded[acct]
}

// IsFeeExempt reports whether transfers to or from acct bypass fees.
func (t *Token) IsFeeExempt(acct account.Account) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.feeExempt[acct]
}

// DepositSettlement funds the system's settlement balance. Anyone may
// deposit; there is no accounting side effect.
func (t *Token) DepositSettlement(amount uint64) {
	t.bank.Deposit(amount)
}

// SettlementBalance returns the settlement currency held by the system.
func (t *Token) SettlementBalance() uint64 {
	return t.bank.Balance()
}

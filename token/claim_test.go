package token

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refluxorg/libreflux-go/account"
	"github.com/refluxorg/libreflux-go/settlement"
)

// accrueReward runs a buy and a full distribution so that holder A has a
// claimable reward of 693 settlement units.
func accrueReward(t *testing.T, tok *Token) account.Account {
	t.Helper()
	a := acct(0x01)
	pool := tok.PoolProxy()

	require.NoError(t, tok.Transfer(marketingAcct, pool, 2_000_000))
	require.NoError(t, tok.Transfer(pool, a, 1_000_000))
	require.NoError(t, tok.DistributeBatch(0, tok.HolderCount()))
	require.Equal(t, uint64(693), tok.RewardOf(a))
	return a
}

func TestClaim_Success(t *testing.T) {
	var events []Event
	bank := settlement.NewMemBank()
	tok, _ := newTestToken(t,
		WithBank(bank),
		WithEventSink(func(ev Event) { events = append(events, ev) }),
	)
	a := accrueReward(t, tok)

	tok.DepositSettlement(10_000)
	require.NoError(t, tok.Claim(a))

	// The entry is zeroed and the held balance drops by exactly the
	// claimed amount.
	assert.Equal(t, uint64(0), tok.RewardOf(a))
	assert.Equal(t, uint64(10_000-693), tok.SettlementBalance())
	assert.Equal(t, uint64(693), bank.PaidTo(a))

	// An immediate second claim finds nothing.
	assert.ErrorIs(t, tok.Claim(a), ErrNothingToClaim)

	// The last event is the claim (a distribution event precedes it).
	require.NotEmpty(t, events)
	assert.Equal(t, RewardClaimedEvent{Account: a, Amount: 693}, events[len(events)-1])
}

func TestClaim_Excluded(t *testing.T) {
	tok, _ := newTestToken(t)
	assert.ErrorIs(t, tok.Claim(marketingAcct), ErrExcluded)

	a := accrueReward(t, tok)
	require.NoError(t, tok.SetRewardExcluded(ownerAcct, a, true))
	assert.ErrorIs(t, tok.Claim(a), ErrExcluded)
}

func TestClaim_NothingToClaim(t *testing.T) {
	tok, _ := newTestToken(t)
	assert.ErrorIs(t, tok.Claim(acct(0x42)), ErrNothingToClaim)
}

func TestClaim_InsufficientSettlement(t *testing.T) {
	tok, _ := newTestToken(t)
	a := accrueReward(t, tok)

	tok.DepositSettlement(692) // one short of the owed 693
	err := tok.Claim(a)
	assert.ErrorIs(t, err, ErrInsufficientSettlement)

	// Nothing was paid or zeroed.
	assert.Equal(t, uint64(693), tok.RewardOf(a))
	assert.Equal(t, uint64(692), tok.SettlementBalance())
}

func TestClaim_SendFailureRollsBack(t *testing.T) {
	sendErr := errors.New("wire rejected")
	bank := &settlement.MockBank{
		BalanceFn: func() uint64 { return 1 << 40 },
		SendFn:    func(account.Account, uint64) error { return sendErr },
	}
	tok, _ := newTestToken(t, WithBank(bank))
	a := accrueReward(t, tok)

	err := tok.Claim(a)
	assert.ErrorIs(t, err, settlement.ErrTransferFailed)
	assert.ErrorIs(t, err, sendErr)

	// The zeroed entry is restored, so the claim can be retried later.
	assert.Equal(t, uint64(693), tok.RewardOf(a))
}

func TestClaim_ReentrancyRejected(t *testing.T) {
	var tok *Token
	var nestedErr error
	bank := &settlement.MockBank{
		BalanceFn: func() uint64 { return 1 << 40 },
		SendFn: func(to account.Account, amount uint64) error {
			// The payout callee re-enters the claim path before the
			// outer claim finishes.
			nestedErr = tok.Claim(to)
			return nil
		},
	}
	tok, _ = newTestToken(t, WithBank(bank))
	a := accrueReward(t, tok)

	require.NoError(t, tok.Claim(a))
	assert.ErrorIs(t, nestedErr, ErrReentrantClaim)
	assert.Equal(t, uint64(0), tok.RewardOf(a))
}

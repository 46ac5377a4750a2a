package token

import "errors"

var (
	// ErrInvalidAddress indicates the null account was supplied where a
	// real account is required.
	ErrInvalidAddress = errors.New("token: invalid address (null account)")

	// ErrNotOwner indicates the caller failed the owner gate on an
	// administrative operation.
	ErrNotOwner = errors.New("token: caller is not the owner")

	// ErrDistributionNotReady indicates the distribution cooldown has not
	// elapsed since the previous run.
	ErrDistributionNotReady = errors.New("token: distribution cooldown not elapsed")

	// ErrExcluded indicates the caller is barred from accruing or claiming
	// rewards.
	ErrExcluded = errors.New("token: account is excluded from rewards")

	// ErrNothingToClaim indicates the caller has no accrued reward.
	ErrNothingToClaim = errors.New("token: no accrued reward to claim")

	// ErrInsufficientSettlement indicates the held settlement balance does
	// not cover the owed reward.
	ErrInsufficientSettlement = errors.New("token: held settlement balance below owed reward")

	// ErrReentrantClaim indicates a claim was attempted while another claim's
	// external payout call was in flight.
	ErrReentrantClaim = errors.New("token: reentrant claim rejected")
)

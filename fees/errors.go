package fees

import "errors"

var (
	// ErrFeeTooHigh indicates a buy or sell fee percentage above 100.
	ErrFeeTooHigh = errors.New("fees: fee percentage exceeds 100")

	// ErrNoPendingChange indicates Apply was called with no proposal pending.
	ErrNoPendingChange = errors.New("fees: no pending fee change")

	// ErrTimelockNotExpired indicates the mandatory delay between proposing
	// and applying a fee change has not elapsed.
	ErrTimelockNotExpired = errors.New("fees: timelock not expired")
)

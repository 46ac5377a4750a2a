package settlement

import "errors"

var (
	// ErrInsufficientFunds indicates the held settlement balance does not
	// cover the requested send.
	ErrInsufficientFunds = errors.New("settlement: insufficient held funds")

	// ErrTransferFailed indicates the external payout primitive reported
	// failure.
	ErrTransferFailed = errors.New("settlement: transfer failed")
)

package ledger

import "errors"

var (
	// ErrInsufficientBalance indicates the sender's balance does not cover
	// the transfer amount.
	ErrInsufficientBalance = errors.New("ledger: insufficient balance")

	// ErrSupplyOverflow indicates a mint would overflow the total supply.
	ErrSupplyOverflow = errors.New("ledger: total supply overflow")
)

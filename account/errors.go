package account

import "errors"

var (
	// ErrInvalidLength indicates the input is not exactly 20 bytes.
	ErrInvalidLength = errors.New("account: identifier must be 20 bytes")

	// ErrEmptySeed indicates the derivation seed is empty.
	ErrEmptySeed = errors.New("account: derivation seed must not be empty")
)

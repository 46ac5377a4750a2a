package holders

import "errors"

var (
	// ErrIndexOutOfRange indicates a positional lookup at or beyond the
	// registry length.
	ErrIndexOutOfRange = errors.New("holders: index out of range")
)

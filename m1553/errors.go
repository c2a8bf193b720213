package m1553

import "errors"

var (
	// ErrInvalidWord indicates a structurally malformed 20-bit word pattern,
	// e.g. a raw value that does not fit in 20 bits.
	ErrInvalidWord = errors.New("invalid word")

	// ErrParity indicates that the odd-parity check over the start bit and
	// the 16 data bits failed.
	ErrParity = errors.New("parity error")

	// ErrInvalidAddress indicates a terminal or sub-address outside the
	// valid range [0, 31], or a reserved address used where it is not allowed.
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInsufficientData indicates that fewer bits or bytes were supplied
	// than the operation requires.
	ErrInsufficientData = errors.New("insufficient data")
)

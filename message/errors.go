package message

import "errors"

var (
	// ErrInvalidMessageType indicates a word type tag that does not resolve
	// to a known message shape, or an unknown mode code value.
	ErrInvalidMessageType = errors.New("invalid message type")

	// ErrInvalidCommand indicates a command whose fields violate the command
	// word layout, e.g. a word count above the field width.
	ErrInvalidCommand = errors.New("invalid command")

	// ErrInvalidResponse indicates a status word whose fields violate the
	// status word layout, e.g. an error code above 7 bits.
	ErrInvalidResponse = errors.New("invalid response")
)

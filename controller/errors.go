package controller

import "errors"

var (
	// ErrUnregisteredTerminal indicates an operation on a terminal address
	// that was never registered with the controller.
	ErrUnregisteredTerminal = errors.New("remote terminal not registered")

	// ErrValidation indicates a message field that violates a protocol
	// limit (word count, sub-address range).
	ErrValidation = errors.New("message validation failed")

	// ErrConfigOption indicates an out-of-range configuration option value.
	ErrConfigOption = errors.New("invalid controller option")
)

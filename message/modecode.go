package message

import "fmt"

// ModeCode is an in-band bus-management command carried in place of a normal
// sub-address/word-count pair when the command word signals mode-code form.
//
// The set is closed; unknown values fail conversion with ErrInvalidMessageType.
type ModeCode uint8

const (
	// Synchronize commands a terminal to synchronize (broadcast form).
	Synchronize ModeCode = iota
	// TransmitStatusWord requests retransmission of the last status word.
	TransmitStatusWord
	// InitiateSelfTest commands the terminal to run its self test.
	InitiateSelfTest
	// TransmitLastCommandWord requests the last received command word.
	TransmitLastCommandWord
	// TransmitBuiltInTestResult requests the built-in test (BIT) result word.
	TransmitBuiltInTestResult
	// SynchronizeAlt is the alternate synchronize form.
	SynchronizeAlt
	// TransmitVectorWord requests the terminal's vector word.
	TransmitVectorWord
	// SynchronizeAlt2 is the second alternate synchronize form.
	SynchronizeAlt2
	// TransmitLastDataWord requests the last transmitted data word.
	TransmitLastDataWord

	maxModeCode = TransmitLastDataWord
)

// ModeCodeFromValue converts a raw field value into a ModeCode.
//
// Returns ErrInvalidMessageType for values outside the closed set.
func ModeCodeFromValue(v uint8) (ModeCode, error) {
	if ModeCode(v) > maxModeCode {
		return 0, fmt.Errorf("%w: unknown mode code %d", ErrInvalidMessageType, v)
	}

	return ModeCode(v), nil
}

// Value returns the raw mode code value.
func (mc ModeCode) Value() uint8 {
	return uint8(mc)
}

// String returns the mode code name.
func (mc ModeCode) String() string {
	switch mc {
	case Synchronize:
		return "synchronize"
	case TransmitStatusWord:
		return "transmit-status-word"
	case InitiateSelfTest:
		return "initiate-self-test"
	case TransmitLastCommandWord:
		return "transmit-last-command-word"
	case TransmitBuiltInTestResult:
		return "transmit-built-in-test-result"
	case SynchronizeAlt:
		return "synchronize-alt"
	case TransmitVectorWord:
		return "transmit-vector-word"
	case SynchronizeAlt2:
		return "synchronize-alt-2"
	case TransmitLastDataWord:
		return "transmit-last-data-word"
	default:
		return "unknown"
	}
}

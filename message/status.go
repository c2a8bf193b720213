package message

import (
	"fmt"

	"github.com/milbus/go-1553/m1553"
)

// Status word data-field layout (16 bits):
//
//	bits 15–12  responding terminal address
//	bits 11–7   status flags
//	bits  6–0   message error code
const (
	statusAddressShift = 12
	statusAddressMask  = 0x0F
	statusFlagsShift   = 7
	statusFlagsMask    = 0x1F
	statusErrCodeMask  = 0x7F

	// MaxErrorCode is the highest message error code (7-bit field).
	MaxErrorCode uint8 = 0x7F
)

// StatusFlags holds the five independent condition flags of a status word.
type StatusFlags struct {
	// Reserved is the reserved flag bit.
	Reserved bool
	// Subsystem indicates a subsystem fault.
	Subsystem bool
	// Busy indicates the terminal cannot currently move data.
	Busy bool
	// Broadcast indicates the previous command was received as broadcast.
	Broadcast bool
	// MessageError indicates the terminal detected a message or parity error.
	MessageError bool
}

// Flag bit positions within the 5-bit flags field.
const (
	flagReserved     uint8 = 0x10
	flagSubsystem    uint8 = 0x08
	flagBusy         uint8 = 0x04
	flagBroadcast    uint8 = 0x02
	flagMessageError uint8 = 0x01
)

// Bits packs the flags into their 5-bit field value.
func (f StatusFlags) Bits() uint8 {
	var bits uint8
	if f.Reserved {
		bits |= flagReserved
	}
	if f.Subsystem {
		bits |= flagSubsystem
	}
	if f.Busy {
		bits |= flagBusy
	}
	if f.Broadcast {
		bits |= flagBroadcast
	}
	if f.MessageError {
		bits |= flagMessageError
	}

	return bits
}

// StatusFlagsFromBits unpacks a 5-bit field value into flags.
func StatusFlagsFromBits(bits uint8) StatusFlags {
	return StatusFlags{
		Reserved:     bits&flagReserved != 0,
		Subsystem:    bits&flagSubsystem != 0,
		Busy:         bits&flagBusy != 0,
		Broadcast:    bits&flagBroadcast != 0,
		MessageError: bits&flagMessageError != 0,
	}
}

// StatusWord is a validated Remote Terminal status response.
type StatusWord struct {
	Address   m1553.Address
	Flags     StatusFlags
	ErrorCode uint8
}

// NewStatusWord creates a StatusWord, validating field widths.
//
// Returns m1553.ErrInvalidAddress when addr exceeds the 4-bit address field,
// and ErrInvalidResponse when errorCode exceeds 7 bits.
func NewStatusWord(addr uint8, flags StatusFlags, errorCode uint8) (StatusWord, error) {
	address, err := m1553.NewAddress(addr)
	if err != nil {
		return StatusWord{}, err
	}
	if addr > MaxFieldAddress {
		return StatusWord{}, fmt.Errorf("%w: address %d exceeds the 4-bit status address field [0, %d]",
			m1553.ErrInvalidAddress, addr, MaxFieldAddress)
	}

	if errorCode > MaxErrorCode {
		return StatusWord{}, fmt.Errorf("%w: error code 0x%X exceeds 7 bits", ErrInvalidResponse, errorCode)
	}

	return StatusWord{
		Address:   address,
		Flags:     flags,
		ErrorCode: errorCode,
	}, nil
}

// DataBits packs the status fields into the 16-bit data field.
func (sw StatusWord) DataBits() uint16 {
	var data uint16
	data |= uint16(sw.Address.Value()&statusAddressMask) << statusAddressShift
	data |= uint16(sw.Flags.Bits()&statusFlagsMask) << statusFlagsShift
	data |= uint16(sw.ErrorCode) & statusErrCodeMask

	return data
}

// ToWord encodes the status word with computed parity and status sync.
func (sw StatusWord) ToWord() m1553.Word {
	return m1553.NewWord(sw.DataBits(), m1553.StatusWord)
}

// StatusFromWord decodes a status word from a word's data field.
//
// Returns ErrInvalidMessageType unless the word is tagged StatusWord.
func StatusFromWord(w m1553.Word) (StatusWord, error) {
	if w.Type() != m1553.StatusWord {
		return StatusWord{}, fmt.Errorf("%w: expected a status word, got %s", ErrInvalidMessageType, w.Type())
	}

	data := w.DataBits()

	return StatusWord{
		Address:   m1553.Address(uint8(data>>statusAddressShift) & statusAddressMask),
		Flags:     StatusFlagsFromBits(uint8(data>>statusFlagsShift) & statusFlagsMask),
		ErrorCode: uint8(data) & statusErrCodeMask,
	}, nil
}

// Healthy reports whether the status carries no error indication: no message
// error, no subsystem fault, and a zero error code.
func (sw StatusWord) Healthy() bool {
	return !sw.Flags.MessageError && !sw.Flags.Subsystem && sw.ErrorCode == 0
}

// String returns a short diagnostic representation.
func (sw StatusWord) String() string {
	return fmt.Sprintf("Status(%s, flags=0x%02X, error=0x%02X)", sw.Address, sw.Flags.Bits(), sw.ErrorCode)
}

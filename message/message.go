// Package message maps MIL-STD-1553B word data fields to structured
// command, status, and mode-code values, and defines the Message envelope
// grouping a command with its data words.
//
// All construction is validating: a Command or StatusWord value that exists
// was checked against its field widths, so downstream code assumes validity
// unconditionally. Encoding validated values back to words cannot fail.
//
// The modeled bit layouts (see command.go and status.go) narrow the address
// field to 4 bits, below the full 5-bit terminal address space. This is a
// documented limitation of the mapping, kept for wire compatibility with the
// governing layout description.
package message

import (
	"fmt"

	"github.com/milbus/go-1553/internal/util"
	"github.com/milbus/go-1553/m1553"
)

// Type discriminates the closed set of message shapes.
type Type uint8

const (
	// TypeCommandData is a command followed by its data words.
	TypeCommandData Type = iota
	// TypeStatus is a status word response.
	TypeStatus
	// TypeCommandOnly is a bare command word, e.g. a transmit command or a
	// mode code.
	TypeCommandOnly
)

// String returns the message type name.
func (t Type) String() string {
	switch t {
	case TypeCommandData:
		return "command-data"
	case TypeStatus:
		return "status"
	case TypeCommandOnly:
		return "command-only"
	default:
		return "unknown"
	}
}

// Message is the envelope over the closed set of message shapes:
// CommandData, Status, and CommandOnly.
//
// Consumers switch on MsgType and assert to the concrete type; the set is
// closed by the unexported marker method.
type Message interface {
	// MsgType returns the discriminant for this message shape.
	MsgType() Type
	// Address returns the terminal address associated with the message.
	Address() m1553.Address

	isMessage()
}

// CommandData is a command with its ordered data words.
//
// Invariant, checked at construction: len(DataWords) equals the command's
// declared word count.
type CommandData struct {
	Command   Command
	DataWords []m1553.Word
}

// NewCommandData creates a CommandData message, enforcing that the data word
// sequence length matches the command's declared word count.
//
// Returns ErrInvalidCommand on a length mismatch.
func NewCommandData(cmd Command, dataWords []m1553.Word) (*CommandData, error) {
	if len(dataWords) != int(cmd.WordCount.Value()) {
		return nil, fmt.Errorf("%w: %d data words do not match declared word count %d",
			ErrInvalidCommand, len(dataWords), cmd.WordCount.Value())
	}

	// The envelope owns its data word sequence.
	return &CommandData{Command: cmd, DataWords: util.CloneSlice(dataWords, 0)}, nil
}

// MsgType returns TypeCommandData.
func (m *CommandData) MsgType() Type { return TypeCommandData }

// Address returns the command's target address.
func (m *CommandData) Address() m1553.Address { return m.Command.Address }

// DataWordCount returns the number of attached data words.
func (m *CommandData) DataWordCount() int { return len(m.DataWords) }

func (m *CommandData) isMessage() {}

// Status wraps a status word response.
type Status struct {
	Status StatusWord
}

// NewStatus creates a Status message.
func NewStatus(sw StatusWord) *Status {
	return &Status{Status: sw}
}

// MsgType returns TypeStatus.
func (m *Status) MsgType() Type { return TypeStatus }

// Address returns the responding terminal's address.
func (m *Status) Address() m1553.Address { return m.Status.Address }

func (m *Status) isMessage() {}

// CommandOnly is a command with no data words, e.g. a transmit command or a
// mode code.
type CommandOnly struct {
	Command Command
}

// NewCommandOnly creates a CommandOnly message.
func NewCommandOnly(cmd Command) *CommandOnly {
	return &CommandOnly{Command: cmd}
}

// MsgType returns TypeCommandOnly.
func (m *CommandOnly) MsgType() Type { return TypeCommandOnly }

// Address returns the command's target address.
func (m *CommandOnly) Address() m1553.Address { return m.Command.Address }

// ModeCode returns the carried mode code when the command is in mode-code
// form; see Command.ModeCode.
func (m *CommandOnly) ModeCode() (ModeCode, error) { return m.Command.ModeCode() }

func (m *CommandOnly) isMessage() {}

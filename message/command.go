package message

import (
	"fmt"

	"github.com/milbus/go-1553/m1553"
)

// Field limits within the packed 16-bit command/status data field.
//
// The address field occupies 4 bits (15–12), a narrower mapping than the
// full 5-bit terminal address space. Commands and status words can therefore
// only carry addresses 0–15; this is a documented limitation of the modeled
// layout, not of the Address type itself.
const (
	// MaxFieldAddress is the highest address representable in the 4-bit
	// address field of a packed command or status word.
	MaxFieldAddress uint8 = 15

	// MaxSubAddress is the highest sub-address (5-bit field).
	MaxSubAddress uint8 = 31

	// MaxWordCount is the highest word count representable in the modeled
	// count field.
	MaxWordCount uint8 = 31
)

// SubAddress is a validated 5-bit sub-address selecting a functional endpoint
// within a Remote Terminal. Values 0 and 31 conventionally signal mode-code
// form instead of a data transfer.
type SubAddress uint8

// NewSubAddress creates a SubAddress, validating it is within [0, 31].
//
// Returns m1553.ErrInvalidAddress for values above MaxSubAddress.
func NewSubAddress(v uint8) (SubAddress, error) {
	if v > MaxSubAddress {
		return 0, fmt.Errorf("%w: sub-address %d out of range [0, %d]", m1553.ErrInvalidAddress, v, MaxSubAddress)
	}

	return SubAddress(v), nil
}

// Value returns the raw sub-address value.
func (sa SubAddress) Value() uint8 {
	return uint8(sa)
}

// IsModeCodeIndicator reports whether this sub-address signals mode-code form
// (values 0 and 31 are reserved for that purpose).
func (sa SubAddress) IsModeCodeIndicator() bool {
	return sa == 0 || uint8(sa) == MaxSubAddress
}

// WordCount is a validated data word count in the range [0, 31].
type WordCount uint8

// NewWordCount creates a WordCount, validating it is within [0, 31].
//
// Returns ErrInvalidCommand for values above MaxWordCount.
func NewWordCount(v uint8) (WordCount, error) {
	if v > MaxWordCount {
		return 0, fmt.Errorf("%w: word count %d out of range [0, %d]", ErrInvalidCommand, v, MaxWordCount)
	}

	return WordCount(v), nil
}

// Value returns the raw word count value.
func (wc WordCount) Value() uint8 {
	return uint8(wc)
}

// Direction is the transmit/receive flag of a command word.
type Direction uint8

const (
	// Receive means the Remote Terminal receives data from the bus.
	Receive Direction = iota
	// Transmit means the Remote Terminal transmits data onto the bus.
	Transmit
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Transmit {
		return "transmit"
	}

	return "receive"
}

// Command word data-field layout (16 bits):
//
//	bits 15–12  target address
//	bit  11     transmit/receive flag (1 = transmit)
//	bits 10–6   sub-address
//	bits  5–0   word count / mode code
const (
	cmdAddressShift = 12
	cmdAddressMask  = 0x0F
	cmdTransmitBit  = 0x0800
	cmdSubAddrShift = 6
	cmdSubAddrMask  = 0x1F
	cmdCountMask    = 0x3F
)

// Command is a validated Bus Controller command.
//
// When SubAddress signals mode-code form (0 or 31), the count field carries a
// mode code number instead of a data word count; see ModeCode.
type Command struct {
	Address    m1553.Address
	Direction  Direction
	SubAddress SubAddress
	WordCount  WordCount
}

// NewCommand creates a Command, validating every field against its width.
//
// Returns m1553.ErrInvalidAddress when addr exceeds the 4-bit address field
// or sub exceeds 5 bits, and ErrInvalidCommand when count exceeds 5 bits.
func NewCommand(addr uint8, dir Direction, sub uint8, count uint8) (Command, error) {
	address, err := m1553.NewAddress(addr)
	if err != nil {
		return Command{}, err
	}
	if addr > MaxFieldAddress {
		return Command{}, fmt.Errorf("%w: address %d exceeds the 4-bit command address field [0, %d]",
			m1553.ErrInvalidAddress, addr, MaxFieldAddress)
	}

	subAddr, err := NewSubAddress(sub)
	if err != nil {
		return Command{}, err
	}

	wordCount, err := NewWordCount(count)
	if err != nil {
		return Command{}, err
	}

	return Command{
		Address:    address,
		Direction:  dir,
		SubAddress: subAddr,
		WordCount:  wordCount,
	}, nil
}

// IsModeCode reports whether this command is in mode-code form.
func (c Command) IsModeCode() bool {
	return c.SubAddress.IsModeCodeIndicator()
}

// ModeCode interprets the count field as a mode code.
//
// Returns ErrInvalidMessageType when the command is not in mode-code form or
// the count field holds an unknown mode code value.
func (c Command) ModeCode() (ModeCode, error) {
	if !c.IsModeCode() {
		return 0, fmt.Errorf("%w: sub-address %d does not signal mode-code form", ErrInvalidMessageType, c.SubAddress.Value())
	}

	return ModeCodeFromValue(c.WordCount.Value())
}

// DataBits packs the command fields into the 16-bit data field.
func (c Command) DataBits() uint16 {
	var data uint16
	data |= uint16(c.Address.Value()&cmdAddressMask) << cmdAddressShift
	if c.Direction == Transmit {
		data |= cmdTransmitBit
	}
	data |= uint16(c.SubAddress.Value()&cmdSubAddrMask) << cmdSubAddrShift
	data |= uint16(c.WordCount.Value()) & cmdCountMask

	return data
}

// ToWord encodes the command as a word with computed parity and command sync.
// Mode-code commands are tagged ModeCodeWord, all others CommandWord.
func (c Command) ToWord() m1553.Word {
	wordType := m1553.CommandWord
	if c.IsModeCode() {
		wordType = m1553.ModeCodeWord
	}

	return m1553.NewWord(c.DataBits(), wordType)
}

// CommandFromWord decodes a command from a word's data field.
//
// Returns ErrInvalidMessageType unless the word is tagged CommandWord or
// ModeCodeWord. Field range errors cannot occur on decode: every field is
// masked to its width.
func CommandFromWord(w m1553.Word) (Command, error) {
	if w.Type() != m1553.CommandWord && w.Type() != m1553.ModeCodeWord {
		return Command{}, fmt.Errorf("%w: expected a command word, got %s", ErrInvalidMessageType, w.Type())
	}

	data := w.DataBits()

	dir := Receive
	if data&cmdTransmitBit != 0 {
		dir = Transmit
	}

	return Command{
		Address:    m1553.Address(uint8(data>>cmdAddressShift) & cmdAddressMask),
		Direction:  dir,
		SubAddress: SubAddress(uint8(data>>cmdSubAddrShift) & cmdSubAddrMask),
		// Bit 5 of the count field is reserved in this model; decode masks
		// to the constructible range.
		WordCount: WordCount(uint8(data) & MaxWordCount),
	}, nil
}

// String returns a short diagnostic representation.
func (c Command) String() string {
	if c.IsModeCode() {
		if mc, err := c.ModeCode(); err == nil {
			return fmt.Sprintf("Command(%s, mode-code %s)", c.Address, mc)
		}
	}

	return fmt.Sprintf("Command(%s, %s, sub-address %d, %d words)",
		c.Address, c.Direction, c.SubAddress.Value(), c.WordCount.Value())
}

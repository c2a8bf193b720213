package m1553

import "fmt"

// WordType tags how a word's 16 data bits are interpreted.
//
// The tag is attached at construction from protocol context; it is not
// recoverable from the bit pattern alone.
type WordType uint8

const (
	// CommandWord is a command word sent by the Bus Controller.
	CommandWord WordType = iota
	// DataWord is a data word.
	DataWord
	// StatusWord is a status word returned by a Remote Terminal.
	StatusWord
	// ModeCodeWord is a command word carrying an in-band mode code.
	ModeCodeWord
)

// String returns the human-readable name of the word type.
func (wt WordType) String() string {
	switch wt {
	case CommandWord:
		return "command"
	case DataWord:
		return "data"
	case StatusWord:
		return "status"
	case ModeCodeWord:
		return "mode-code"
	default:
		return "unknown"
	}
}

// Sync patterns embedded in word bits 19–18.
//
// Command, status and mode-code words share one sync pattern, data words the
// inverted one. The sync bits are excluded from parity and are never used to
// recover the word type.
const (
	CmdStatusSyncBits uint8 = 0b10
	DataSyncBits      uint8 = 0b01
)

// Bit layout masks within the 20-bit word.
const (
	wordMask   uint32 = 0xFFFFF // bits 19–0
	parityMask uint32 = 0x1FFFF // start bit + 16 data bits (bits 16–0)
)

// Word is a single immutable 20-bit MIL-STD-1553B word.
//
// Layout (LSB first): bit 0 start bit (always 0), bits 16–1 data field,
// bit 17 parity bit, bits 19–18 sync pattern.
type Word struct {
	raw      uint32
	wordType WordType
}

// NewWord constructs a word from a 16-bit data payload and a word type.
//
// The odd-parity bit and the sync pattern for the word type are computed and
// embedded; the start bit is always 0. Construction cannot fail: the payload
// is typed to the field width and parity is always computed fresh.
func NewWord(data uint16, wordType WordType) Word {
	raw := uint32(data) << 1
	raw |= uint32(OddParity(data)) << 17
	raw |= uint32(syncBitsFor(wordType)) << 18

	return Word{raw: raw, wordType: wordType}
}

// NewWordFromRaw validates an externally supplied 20-bit pattern and attaches
// the word type given by protocol context.
//
// Returns ErrInvalidWord if raw exceeds 20 bits, or ErrParity if the embedded
// parity bit does not match the odd-parity computation over the start bit and
// the 16 data bits.
func NewWordFromRaw(raw uint32, wordType WordType) (Word, error) {
	if raw > wordMask {
		return Word{}, fmt.Errorf("%w: raw value 0x%X exceeds %d bits", ErrInvalidWord, raw, WordLengthBits)
	}

	if err := validateParity(raw); err != nil {
		return Word{}, err
	}

	return Word{raw: raw, wordType: wordType}, nil
}

// NewWordUnchecked constructs a word without parity validation.
//
// Intended for building deliberately corrupt test data; production paths go
// through NewWord or NewWordFromRaw.
func NewWordUnchecked(raw uint32, wordType WordType) Word {
	return Word{raw: raw & wordMask, wordType: wordType}
}

// Raw returns the full 20-bit pattern.
func (w Word) Raw() uint32 {
	return w.raw
}

// Type returns the word type tag attached at construction.
func (w Word) Type() WordType {
	return w.wordType
}

// DataBits returns the 16-bit data field (bits 16–1).
func (w Word) DataBits() uint16 {
	return uint16((w.raw >> 1) & 0xFFFF)
}

// StartBit returns the start bit (bit 0); always false for valid words.
func (w Word) StartBit() bool {
	return w.raw&1 != 0
}

// ParityBit returns the embedded parity bit (bit 17).
func (w Word) ParityBit() bool {
	return (w.raw>>17)&1 != 0
}

// SyncBits returns the sync pattern (bits 19–18).
func (w Word) SyncBits() uint8 {
	return uint8((w.raw >> 18) & 0x3)
}

// String returns a short diagnostic representation.
func (w Word) String() string {
	return fmt.Sprintf("Word(type=%s, raw=0x%05X)", w.wordType, w.raw)
}

// OddParity computes the parity bit for a 16-bit data field.
//
// Odd parity covers the start bit (always 0) and the 16 data bits: the parity
// bit is chosen so the total count of 1-bits over those 17 bits plus the
// parity bit itself is odd.
func OddParity(data uint16) uint8 {
	ones := 0
	for v := data; v != 0; v &= v - 1 {
		ones++
	}

	if ones%2 == 0 {
		return 1
	}

	return 0
}

// validateParity checks odd parity over bits 16–0 plus the parity bit.
func validateParity(raw uint32) error {
	ones := 0
	for v := raw & parityMask; v != 0; v &= v - 1 {
		ones++
	}
	if (raw>>17)&1 != 0 {
		ones++
	}

	if ones%2 == 0 {
		return fmt.Errorf("%w: even number of 1-bits in word 0x%05X", ErrParity, raw)
	}

	return nil
}

func syncBitsFor(wordType WordType) uint8 {
	if wordType == DataWord {
		return DataSyncBits
	}

	return CmdStatusSyncBits
}

// Package manchester implements the bit-level line coding used by
// MIL-STD-1553B: each logical bit becomes a two-bit transition pair, so a
// 20-bit word occupies 40 coded bits (5 bytes) on the wire.
//
// Two conventions exist and the codec supports both:
//
//   - Thomas: 0 = high-to-low (pair 0b10), 1 = low-to-high (pair 0b01).
//     This is the authoritative convention for MIL-STD-1553B.
//   - IEEE 802.3: the inverse assignment.
//
// Byte packing: coded pairs are placed LSB first within each byte, four
// logical bits per byte. A pair with no transition (0b00 or 0b11) is a
// Manchester violation and decodes to ErrInvalidEncoding.
package manchester

import (
	"fmt"

	"github.com/milbus/go-1553/m1553"
)

// Encoding selects the Manchester convention.
type Encoding uint8

const (
	// Thomas encoding: 0 = high-to-low, 1 = low-to-high.
	Thomas Encoding = iota
	// IEEE 802.3 encoding: 0 = low-to-high, 1 = high-to-low.
	IEEE
)

// MilStd returns the convention mandated by MIL-STD-1553B.
func MilStd() Encoding {
	return Thomas
}

// String returns the name of the encoding convention.
func (e Encoding) String() string {
	switch e {
	case Thomas:
		return "thomas"
	case IEEE:
		return "ieee"
	default:
		return "unknown"
	}
}

// Coded pair values under the Thomas convention.
const (
	pairHighToLow uint8 = 0b10
	pairLowToHigh uint8 = 0b01
)

// Codec encodes and decodes Manchester line code under one convention.
//
// Encode and decode are exact inverses: DecodeBits(EncodeBits(x), len(x)) == x
// for every bit sequence x. The zero value is a Thomas codec.
type Codec struct {
	encoding Encoding
}

// NewCodec creates a codec for the given convention.
func NewCodec(encoding Encoding) *Codec {
	return &Codec{encoding: encoding}
}

// Encoding returns the convention this codec uses.
func (c *Codec) Encoding() Encoding {
	return c.encoding
}

// EncodeBit encodes one logical bit into its two-bit transition pair.
func (c *Codec) EncodeBit(bit bool) uint8 {
	one, zero := pairLowToHigh, pairHighToLow
	if c.encoding == IEEE {
		one, zero = pairHighToLow, pairLowToHigh
	}

	if bit {
		return one
	}

	return zero
}

// DecodeBit decodes a two-bit transition pair into a logical bit.
//
// Returns ErrInvalidEncoding when the pair has no mid-bit transition
// (0b00 or 0b11).
func (c *Codec) DecodeBit(pair uint8) (bool, error) {
	switch pair & 0x3 {
	case pairLowToHigh:
		return c.encoding == Thomas, nil
	case pairHighToLow:
		return c.encoding == IEEE, nil
	default:
		return false, fmt.Errorf("%w: pair %#04b has no transition", ErrInvalidEncoding, pair&0x3)
	}
}

// EncodeBits encodes a sequence of logical bits into Manchester-coded bytes.
//
// Pairs are packed LSB first, four logical bits per byte; a trailing partial
// byte is zero-padded in its unused high positions.
func (c *Codec) EncodeBits(bits []bool) []byte {
	out := make([]byte, 0, (len(bits)+3)/4)

	var cur byte
	pos := 0
	for _, bit := range bits {
		cur |= (c.EncodeBit(bit) & 0x3) << pos
		pos += 2

		if pos == 8 {
			out = append(out, cur)
			cur = 0
			pos = 0
		}
	}
	if pos > 0 {
		out = append(out, cur)
	}

	return out
}

// DecodeBits decodes numBits logical bits from Manchester-coded bytes.
//
// Returns ErrInsufficientData when data holds fewer than numBits coded pairs,
// or ErrInvalidEncoding on the first invalid pair.
func (c *Codec) DecodeBits(data []byte, numBits int) ([]bool, error) {
	bits := make([]bool, 0, numBits)

	for _, b := range data {
		for shift := 0; shift < 8 && len(bits) < numBits; shift += 2 {
			bit, err := c.DecodeBit((b >> shift) & 0x3)
			if err != nil {
				return nil, err
			}
			bits = append(bits, bit)
		}
		if len(bits) == numBits {
			break
		}
	}

	if len(bits) < numBits {
		return nil, fmt.Errorf("%w: want %d coded bits, got %d", m1553.ErrInsufficientData, numBits, len(bits))
	}

	return bits, nil
}

// EncodeWord encodes a 20-bit word pattern, LSB first, into 5 coded bytes.
func (c *Codec) EncodeWord(raw uint32) []byte {
	bits := make([]bool, m1553.WordLengthBits)
	for i := range bits {
		bits[i] = (raw>>i)&1 != 0
	}

	return c.EncodeBits(bits)
}

// DecodeWord decodes 5 coded bytes back into a 20-bit word pattern.
//
// Returns ErrInsufficientData when fewer than EncodedWordSize bytes are given.
func (c *Codec) DecodeWord(data []byte) (uint32, error) {
	if len(data) < m1553.EncodedWordSize {
		return 0, fmt.Errorf("%w: want %d bytes for one word, got %d",
			m1553.ErrInsufficientData, m1553.EncodedWordSize, len(data))
	}

	bits, err := c.DecodeBits(data, m1553.WordLengthBits)
	if err != nil {
		return 0, err
	}

	var raw uint32
	for i, bit := range bits {
		if bit {
			raw |= 1 << i
		}
	}

	return raw, nil
}

package m1553

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOddParity(t *testing.T) {
	assert.Equal(t, uint8(1), OddParity(0x0000), "0 ones is even, parity must be 1")
	assert.Equal(t, uint8(1), OddParity(0xFFFF), "16 ones is even, parity must be 1")
	assert.Equal(t, uint8(0), OddParity(0x0001), "1 one is already odd")
	assert.Equal(t, uint8(0), OddParity(0x8000))
	assert.Equal(t, uint8(1), OddParity(0xAAAA))
}

func TestNewWord_ParityInvariant(t *testing.T) {
	// For every constructed word, the count of 1-bits over
	// {start bit, data bits, parity bit} must be odd.
	payloads := []uint16{0x0000, 0x0001, 0x8000, 0xAAAA, 0x5555, 0xFFFF, 0x1234, 0xCAFE}

	for _, data := range payloads {
		w := NewWord(data, DataWord)
		ones := bits.OnesCount32(w.Raw()&0x1FFFF) + int(w.Raw()>>17&1)
		assert.Equal(t, 1, ones%2, "payload 0x%04X", data)
		assert.Equal(t, data, w.DataBits())
		assert.False(t, w.StartBit(), "start bit is always 0")
	}
}

func TestNewWord_SyncBits(t *testing.T) {
	assert.Equal(t, CmdStatusSyncBits, NewWord(0x1234, CommandWord).SyncBits())
	assert.Equal(t, CmdStatusSyncBits, NewWord(0x1234, StatusWord).SyncBits())
	assert.Equal(t, CmdStatusSyncBits, NewWord(0x1234, ModeCodeWord).SyncBits())
	assert.Equal(t, DataSyncBits, NewWord(0x1234, DataWord).SyncBits())
}

func TestNewWordFromRaw(t *testing.T) {
	// Round-trip through the raw pattern preserves everything.
	orig := NewWord(0xAAAA, CommandWord)
	w, err := NewWordFromRaw(orig.Raw(), CommandWord)
	require.NoError(t, err)
	assert.Equal(t, orig, w)

	// Raw value wider than 20 bits is structurally invalid.
	_, err = NewWordFromRaw(0x100000, DataWord)
	require.ErrorIs(t, err, ErrInvalidWord)

	// Flipping one data bit breaks odd parity.
	_, err = NewWordFromRaw(orig.Raw()^(1<<5), CommandWord)
	require.ErrorIs(t, err, ErrParity)

	// Flipping the parity bit itself also breaks it.
	_, err = NewWordFromRaw(orig.Raw()^(1<<17), CommandWord)
	require.ErrorIs(t, err, ErrParity)
}

func TestNewWordUnchecked(t *testing.T) {
	// Unchecked construction accepts bad parity and masks to 20 bits.
	w := NewWordUnchecked(0xFFFFFFFF, DataWord)
	assert.Equal(t, uint32(0xFFFFF), w.Raw())
	assert.Equal(t, DataWord, w.Type())
}

func TestWord_Accessors(t *testing.T) {
	w := NewWord(0x0001, StatusWord)
	assert.Equal(t, uint16(0x0001), w.DataBits())
	assert.False(t, w.ParityBit(), "one data bit set, parity bit stays 0")
	assert.Equal(t, StatusWord, w.Type())

	w = NewWord(0x0000, StatusWord)
	assert.True(t, w.ParityBit(), "zero data bits set, parity bit must be 1")
}

func TestWordType_String(t *testing.T) {
	assert.Equal(t, "command", CommandWord.String())
	assert.Equal(t, "data", DataWord.String())
	assert.Equal(t, "status", StatusWord.String())
	assert.Equal(t, "mode-code", ModeCodeWord.String())
}

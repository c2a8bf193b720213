package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milbus/go-1553/m1553"
)

func TestNewStatusWord(t *testing.T) {
	sw, err := NewStatusWord(3, StatusFlags{Busy: true}, 0x42)
	require.NoError(t, err)
	assert.Equal(t, uint8(3), sw.Address.Value())
	assert.True(t, sw.Flags.Busy)
	assert.Equal(t, uint8(0x42), sw.ErrorCode)

	// Error code above 7 bits.
	_, err = NewStatusWord(3, StatusFlags{}, 0x80)
	require.ErrorIs(t, err, ErrInvalidResponse)

	// Address above the 4-bit field width.
	_, err = NewStatusWord(16, StatusFlags{}, 0)
	require.ErrorIs(t, err, m1553.ErrInvalidAddress)
}

func TestStatusWord_WordRoundTrip(t *testing.T) {
	flags := StatusFlags{Busy: true}
	sw, err := NewStatusWord(3, flags, 0x42)
	require.NoError(t, err)

	w := sw.ToWord()
	assert.Equal(t, m1553.StatusWord, w.Type())

	decoded, err := StatusFromWord(w)
	require.NoError(t, err)
	assert.Equal(t, sw, decoded)
}

func TestStatusWord_Layout(t *testing.T) {
	sw, err := NewStatusWord(3, StatusFlags{Busy: true}, 0x42)
	require.NoError(t, err)

	// bits 15-12 address, bits 11-7 flags, bits 6-0 error code.
	want := uint16(3)<<12 | uint16(0x04)<<7 | 0x42
	assert.Equal(t, want, sw.DataBits())
}

func TestStatusFlags_Bits(t *testing.T) {
	tests := []struct {
		name  string
		flags StatusFlags
		bits  uint8
	}{
		{"none", StatusFlags{}, 0x00},
		{"reserved", StatusFlags{Reserved: true}, 0x10},
		{"subsystem", StatusFlags{Subsystem: true}, 0x08},
		{"busy", StatusFlags{Busy: true}, 0x04},
		{"broadcast", StatusFlags{Broadcast: true}, 0x02},
		{"message error", StatusFlags{MessageError: true}, 0x01},
		{"all", StatusFlags{Reserved: true, Subsystem: true, Busy: true, Broadcast: true, MessageError: true}, 0x1F},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.bits, tt.flags.Bits())
			assert.Equal(t, tt.flags, StatusFlagsFromBits(tt.bits))
		})
	}
}

func TestStatusFromWord_WrongType(t *testing.T) {
	w := m1553.NewWord(0x3042, m1553.CommandWord)
	_, err := StatusFromWord(w)
	require.ErrorIs(t, err, ErrInvalidMessageType)
}

func TestStatusWord_Healthy(t *testing.T) {
	sw, _ := NewStatusWord(3, StatusFlags{}, 0)
	assert.True(t, sw.Healthy())

	sw, _ = NewStatusWord(3, StatusFlags{Busy: true}, 0)
	assert.True(t, sw.Healthy(), "busy alone is not an error indication")

	sw, _ = NewStatusWord(3, StatusFlags{MessageError: true}, 0)
	assert.False(t, sw.Healthy())

	sw, _ = NewStatusWord(3, StatusFlags{}, 0x42)
	assert.False(t, sw.Healthy())
}

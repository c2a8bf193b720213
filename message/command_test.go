package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milbus/go-1553/m1553"
)

func TestNewCommand(t *testing.T) {
	cmd, err := NewCommand(5, Transmit, 10, 16)
	require.NoError(t, err)
	assert.Equal(t, uint8(5), cmd.Address.Value())
	assert.Equal(t, Transmit, cmd.Direction)
	assert.Equal(t, uint8(10), cmd.SubAddress.Value())
	assert.Equal(t, uint8(16), cmd.WordCount.Value())
	assert.False(t, cmd.IsModeCode())
}

func TestNewCommand_RangeErrors(t *testing.T) {
	// Address above the 4-bit field width.
	_, err := NewCommand(16, Receive, 1, 1)
	require.ErrorIs(t, err, m1553.ErrInvalidAddress)

	// Address above the terminal address space entirely.
	_, err = NewCommand(32, Receive, 1, 1)
	require.ErrorIs(t, err, m1553.ErrInvalidAddress)

	// Sub-address above 5 bits.
	_, err = NewCommand(5, Receive, 32, 1)
	require.ErrorIs(t, err, m1553.ErrInvalidAddress)

	// Word count above the modeled field.
	_, err = NewCommand(5, Receive, 10, 32)
	require.ErrorIs(t, err, ErrInvalidCommand)
}

func TestCommand_WordRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		addr  uint8
		dir   Direction
		sub   uint8
		count uint8
	}{
		{"transmit", 5, Transmit, 10, 16},
		{"receive", 3, Receive, 1, 1},
		{"max fields", 15, Transmit, 30, 31},
		{"zero count", 7, Receive, 12, 0},
		{"mode code sub 0", 2, Transmit, 0, 2},
		{"mode code sub 31", 4, Transmit, 31, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := NewCommand(tt.addr, tt.dir, tt.sub, tt.count)
			require.NoError(t, err)

			w := cmd.ToWord()
			decoded, err := CommandFromWord(w)
			require.NoError(t, err)
			assert.Equal(t, cmd, decoded)
		})
	}
}

func TestCommand_ToWord_Layout(t *testing.T) {
	cmd, err := NewCommand(5, Transmit, 10, 16)
	require.NoError(t, err)

	// bits 15-12 address, bit 11 T/R, bits 10-6 sub-address, bits 5-0 count.
	want := uint16(5)<<12 | 0x0800 | uint16(10)<<6 | 16
	assert.Equal(t, want, cmd.DataBits())
	assert.Equal(t, m1553.CommandWord, cmd.ToWord().Type())
}

func TestCommand_ModeCode(t *testing.T) {
	cmd, err := NewCommand(2, Transmit, 0, uint8(TransmitVectorWord))
	require.NoError(t, err)
	require.True(t, cmd.IsModeCode())
	assert.Equal(t, m1553.ModeCodeWord, cmd.ToWord().Type())

	mc, err := cmd.ModeCode()
	require.NoError(t, err)
	assert.Equal(t, TransmitVectorWord, mc)

	// Count field outside the closed mode-code set.
	cmd, err = NewCommand(2, Transmit, 31, 20)
	require.NoError(t, err)
	_, err = cmd.ModeCode()
	require.ErrorIs(t, err, ErrInvalidMessageType)

	// Not in mode-code form at all.
	cmd, err = NewCommand(2, Transmit, 10, 3)
	require.NoError(t, err)
	_, err = cmd.ModeCode()
	require.ErrorIs(t, err, ErrInvalidMessageType)
}

func TestCommandFromWord_WrongType(t *testing.T) {
	w := m1553.NewWord(0x1234, m1553.DataWord)
	_, err := CommandFromWord(w)
	require.ErrorIs(t, err, ErrInvalidMessageType)

	w = m1553.NewWord(0x1234, m1553.StatusWord)
	_, err = CommandFromWord(w)
	require.ErrorIs(t, err, ErrInvalidMessageType)
}

func TestSubAddress(t *testing.T) {
	_, err := NewSubAddress(31)
	require.NoError(t, err)

	_, err = NewSubAddress(32)
	require.ErrorIs(t, err, m1553.ErrInvalidAddress)

	sa, _ := NewSubAddress(0)
	assert.True(t, sa.IsModeCodeIndicator())
	sa, _ = NewSubAddress(31)
	assert.True(t, sa.IsModeCodeIndicator())
	sa, _ = NewSubAddress(15)
	assert.False(t, sa.IsModeCodeIndicator())
}

func TestWordCount(t *testing.T) {
	wc, err := NewWordCount(31)
	require.NoError(t, err)
	assert.Equal(t, uint8(31), wc.Value())

	_, err = NewWordCount(32)
	require.ErrorIs(t, err, ErrInvalidCommand)
}

func TestModeCodeFromValue(t *testing.T) {
	mc, err := ModeCodeFromValue(1)
	require.NoError(t, err)
	assert.Equal(t, TransmitStatusWord, mc)

	_, err = ModeCodeFromValue(99)
	require.ErrorIs(t, err, ErrInvalidMessageType)
}

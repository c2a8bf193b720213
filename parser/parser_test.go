package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milbus/go-1553/m1553"
	"github.com/milbus/go-1553/manchester"
	"github.com/milbus/go-1553/message"
)

// flipLogicalBit corrupts one decoded bit in a Manchester stream by swapping
// its coded pair (01 <-> 10), which keeps the stream decodable but changes
// the word content.
func flipLogicalBit(coded []byte, bitIndex int) []byte {
	out := make([]byte, len(coded))
	copy(out, coded)
	out[bitIndex/4] ^= 0x3 << ((bitIndex % 4) * 2)

	return out
}

func TestNewParser(t *testing.T) {
	p := NewParser(m1553.BusA)
	assert.Equal(t, m1553.BusA, p.Bus())
	assert.Equal(t, manchester.Thomas, p.Codec().Encoding())

	p = NewParser(m1553.BusB, WithEncoding(manchester.IEEE))
	assert.Equal(t, m1553.BusB, p.Bus())
	assert.Equal(t, manchester.IEEE, p.Codec().Encoding())
}

func TestParser_CommandRoundTrip(t *testing.T) {
	// End-to-end: build a command, encode to Manchester bytes, decode back.
	p := NewParser(m1553.BusA)

	cmd, err := message.NewCommand(5, message.Transmit, 10, 16)
	require.NoError(t, err)

	coded := p.EncodeCommand(cmd)
	assert.Len(t, coded, m1553.EncodedWordSize)

	w, err := p.ParseWord(coded, m1553.CommandWord)
	require.NoError(t, err)

	decoded, err := message.CommandFromWord(w)
	require.NoError(t, err)
	assert.Equal(t, cmd, decoded)
}

func TestParser_StatusRoundTripAndCorruption(t *testing.T) {
	p := NewParser(m1553.BusA)

	sw, err := message.NewStatusWord(3, message.StatusFlags{Busy: true}, 0x42)
	require.NoError(t, err)

	coded := p.EncodeStatus(sw)

	w, err := p.ParseWord(coded, m1553.StatusWord)
	require.NoError(t, err)
	decoded, err := message.StatusFromWord(w)
	require.NoError(t, err)
	assert.Equal(t, sw, decoded)

	// Corrupting one data bit before decode must surface as a parity error.
	corrupted := flipLogicalBit(coded, 5) // bit 5 is inside the data field
	_, err = p.ParseWord(corrupted, m1553.StatusWord)
	require.ErrorIs(t, err, m1553.ErrParity)
}

func TestParser_ParseWord_Boundaries(t *testing.T) {
	p := NewParser(m1553.BusA)

	// Fewer than 40 coded bits.
	_, err := p.ParseWord([]byte{0xAA, 0xAA, 0xAA, 0xAA}, m1553.DataWord)
	require.ErrorIs(t, err, m1553.ErrInsufficientData)

	// A full-size buffer containing a no-transition pair.
	bad := []byte{0x00, 0xAA, 0xAA, 0xAA, 0xAA}
	_, err = p.ParseWord(bad, m1553.DataWord)
	require.ErrorIs(t, err, manchester.ErrInvalidEncoding)
}

func TestParser_ParseWords(t *testing.T) {
	p := NewParser(m1553.BusA)

	coded := p.EncodeDataWords([]uint16{0x1111, 0x2222, 0x3333})
	words, err := p.ParseWords(coded, m1553.DataWord)
	require.NoError(t, err)
	require.Len(t, words, 3)
	assert.Equal(t, uint16(0x1111), words[0].DataBits())
	assert.Equal(t, uint16(0x2222), words[1].DataBits())
	assert.Equal(t, uint16(0x3333), words[2].DataBits())

	// A trailing partial word is ignored.
	words, err = p.ParseWords(coded[:m1553.EncodedWordSize+2], m1553.DataWord)
	require.NoError(t, err)
	assert.Len(t, words, 1)
}

func TestParser_ParseMessage(t *testing.T) {
	p := NewParser(m1553.BusA)

	cmd, err := message.NewCommand(5, message.Receive, 10, 2)
	require.NoError(t, err)
	data := []m1553.Word{
		m1553.NewWord(0xAAAA, m1553.DataWord),
		m1553.NewWord(0x5555, m1553.DataWord),
	}

	msg, err := p.ParseMessage(append([]m1553.Word{cmd.ToWord()}, data...))
	require.NoError(t, err)
	cd, ok := msg.(*message.CommandData)
	require.True(t, ok)
	assert.Equal(t, cmd, cd.Command)
	assert.Equal(t, data, cd.DataWords)

	// Bare command word.
	tcmd, err := message.NewCommand(5, message.Transmit, 10, 2)
	require.NoError(t, err)
	msg, err = p.ParseMessage([]m1553.Word{tcmd.ToWord()})
	require.NoError(t, err)
	assert.Equal(t, message.TypeCommandOnly, msg.MsgType())

	// Status word.
	sw, err := message.NewStatusWord(3, message.StatusFlags{}, 0)
	require.NoError(t, err)
	msg, err = p.ParseMessage([]m1553.Word{sw.ToWord()})
	require.NoError(t, err)
	assert.Equal(t, message.TypeStatus, msg.MsgType())

	// A data word cannot start a message.
	_, err = p.ParseMessage([]m1553.Word{m1553.NewWord(0x1234, m1553.DataWord)})
	require.ErrorIs(t, err, message.ErrInvalidMessageType)

	// Empty sequence.
	_, err = p.ParseMessage(nil)
	require.ErrorIs(t, err, m1553.ErrInsufficientData)
}

func TestParser_ParseMessage_ModeCode(t *testing.T) {
	p := NewParser(m1553.BusA)

	cmd, err := message.NewCommand(2, message.Transmit, 0, uint8(message.TransmitVectorWord))
	require.NoError(t, err)

	msg, err := p.ParseMessage([]m1553.Word{cmd.ToWord()})
	require.NoError(t, err)

	co, ok := msg.(*message.CommandOnly)
	require.True(t, ok)
	mc, err := co.ModeCode()
	require.NoError(t, err)
	assert.Equal(t, message.TransmitVectorWord, mc)
}

func TestParser_ParseTransaction(t *testing.T) {
	p := NewParser(m1553.BusB)
	ts := time.Unix(100, 0)

	cmd, err := message.NewCommand(5, message.Receive, 10, 2)
	require.NoError(t, err)
	commandBytes := append(p.EncodeCommand(cmd), p.EncodeDataWords([]uint16{0x1111, 0x2222})...)

	sw, err := message.NewStatusWord(5, message.StatusFlags{}, 0)
	require.NoError(t, err)
	responseBytes := p.EncodeStatus(sw)

	txn, err := p.ParseTransaction(commandBytes, responseBytes, ts)
	require.NoError(t, err)
	assert.Equal(t, m1553.BusB, txn.Bus)
	assert.Equal(t, ts, txn.Timestamp)
	assert.Equal(t, cmd, txn.Command)
	require.Len(t, txn.Data, 2)
	require.NotNil(t, txn.Status)
	assert.Equal(t, sw, *txn.Status)
	assert.True(t, txn.Succeeded())
	assert.False(t, txn.TimedOut())
}

func TestParser_ParseTransaction_NoResponse(t *testing.T) {
	// A transaction without a response is still returned so the controller
	// can classify the timeout.
	p := NewParser(m1553.BusA)

	cmd, err := message.NewCommand(5, message.Transmit, 10, 1)
	require.NoError(t, err)

	txn, err := p.ParseTransaction(p.EncodeCommand(cmd), nil, time.Unix(200, 0))
	require.NoError(t, err)
	assert.Nil(t, txn.Status)
	assert.True(t, txn.TimedOut())
	assert.False(t, txn.Succeeded())
}

func TestParser_ParseTransaction_DataCountMismatch(t *testing.T) {
	p := NewParser(m1553.BusA)

	cmd, err := message.NewCommand(5, message.Receive, 10, 3)
	require.NoError(t, err)
	commandBytes := append(p.EncodeCommand(cmd), p.EncodeDataWords([]uint16{0x1111})...)

	_, err = p.ParseTransaction(commandBytes, nil, time.Now())
	require.ErrorIs(t, err, message.ErrInvalidCommand)
}

func TestParser_ParseTransaction_InsufficientData(t *testing.T) {
	p := NewParser(m1553.BusA)

	_, err := p.ParseTransaction([]byte{0xAA}, nil, time.Now())
	require.ErrorIs(t, err, m1553.ErrInsufficientData)
}

func TestParser_EncodeMessage(t *testing.T) {
	p := NewParser(m1553.BusA)

	cmd, err := message.NewCommand(5, message.Receive, 10, 2)
	require.NoError(t, err)
	cd, err := message.NewCommandData(cmd, []m1553.Word{
		m1553.NewWord(0x1111, m1553.DataWord),
		m1553.NewWord(0x2222, m1553.DataWord),
	})
	require.NoError(t, err)

	coded, err := p.EncodeMessage(cd)
	require.NoError(t, err)
	assert.Len(t, coded, 3*m1553.EncodedWordSize)

	// Decode back: command word followed by data words.
	w, err := p.ParseWord(coded[:m1553.EncodedWordSize], m1553.CommandWord)
	require.NoError(t, err)
	decoded, err := message.CommandFromWord(w)
	require.NoError(t, err)
	assert.Equal(t, cmd, decoded)

	sw, err := message.NewStatusWord(3, message.StatusFlags{}, 0)
	require.NoError(t, err)
	coded, err = p.EncodeMessage(message.NewStatus(sw))
	require.NoError(t, err)
	assert.Len(t, coded, m1553.EncodedWordSize)

	coded, err = p.EncodeMessage(message.NewCommandOnly(cmd))
	require.NoError(t, err)
	assert.Len(t, coded, m1553.EncodedWordSize)
}

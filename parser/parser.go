// Package parser converts Manchester-coded byte streams into words, messages
// and transactions, and encodes structured values back to the wire.
//
// A Parser is bound to one bus (A or B) at construction so every Transaction
// it produces is tagged without per-call plumbing. The parser holds no
// cross-transaction state: each call is a pure format translation over the
// supplied bytes. Retry and terminal-health policy live in the controller
// package.
package parser

import (
	"fmt"
	"time"

	"github.com/milbus/go-1553/m1553"
	"github.com/milbus/go-1553/manchester"
	"github.com/milbus/go-1553/message"
)

// Parser is a bus-scoped, stateless format translator between
// Manchester-coded bytes and protocol messages.
type Parser struct {
	bus   m1553.Bus
	codec *manchester.Codec
}

// Option configures a Parser.
type Option interface {
	apply(p *Parser)
}

type optionFunc func(p *Parser)

func (f optionFunc) apply(p *Parser) { f(p) }

// WithEncoding selects the Manchester convention. The default is the Thomas
// convention mandated by MIL-STD-1553B; IEEE is available for equipment that
// deviates.
func WithEncoding(encoding manchester.Encoding) Option {
	return optionFunc(func(p *Parser) {
		p.codec = manchester.NewCodec(encoding)
	})
}

// NewParser creates a parser bound to the given bus.
func NewParser(bus m1553.Bus, opts ...Option) *Parser {
	p := &Parser{
		bus:   bus,
		codec: manchester.NewCodec(manchester.MilStd()),
	}

	for _, opt := range opts {
		opt.apply(p)
	}

	return p
}

// Bus returns the bus this parser is bound to.
func (p *Parser) Bus() m1553.Bus {
	return p.bus
}

// Codec returns the Manchester codec in use.
func (p *Parser) Codec() *manchester.Codec {
	return p.codec
}

// ParseWord decodes one Manchester-coded word from data and validates it.
//
// The word type is supplied by protocol context since it is not recoverable
// from the bits. Fails with m1553.ErrInsufficientData when data holds fewer
// than 40 coded bits, manchester.ErrInvalidEncoding on a codec violation, and
// m1553.ErrParity on a parity mismatch.
func (p *Parser) ParseWord(data []byte, wordType m1553.WordType) (m1553.Word, error) {
	raw, err := p.codec.DecodeWord(data)
	if err != nil {
		return m1553.Word{}, err
	}

	return m1553.NewWordFromRaw(raw, wordType)
}

// ParseWords decodes consecutive whole words of one type from data.
//
// Trailing bytes shorter than one coded word are ignored.
func (p *Parser) ParseWords(data []byte, wordType m1553.WordType) ([]m1553.Word, error) {
	words := make([]m1553.Word, 0, len(data)/m1553.EncodedWordSize)

	for offset := 0; offset+m1553.EncodedWordSize <= len(data); offset += m1553.EncodedWordSize {
		w, err := p.ParseWord(data[offset:offset+m1553.EncodedWordSize], wordType)
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}

	return words, nil
}

// ParseMessage classifies a word sequence by the leading word's type tag and
// decodes it into the corresponding message shape.
//
// A command word followed by data words becomes CommandData (the data word
// count must match the command's declaration); a bare command word becomes
// CommandOnly; a status word becomes Status. Fails with
// message.ErrInvalidMessageType when the leading tag resolves to no known
// shape, and m1553.ErrInsufficientData on an empty sequence.
func (p *Parser) ParseMessage(words []m1553.Word) (message.Message, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: empty word sequence", m1553.ErrInsufficientData)
	}

	first := words[0]

	switch first.Type() {
	case m1553.CommandWord, m1553.ModeCodeWord:
		cmd, err := message.CommandFromWord(first)
		if err != nil {
			return nil, err
		}

		data := make([]m1553.Word, 0, len(words)-1)
		for _, w := range words[1:] {
			if w.Type() != m1553.DataWord {
				break
			}
			data = append(data, w)
		}

		if len(data) == 0 {
			return message.NewCommandOnly(cmd), nil
		}

		return message.NewCommandData(cmd, data)

	case m1553.StatusWord:
		sw, err := message.StatusFromWord(first)
		if err != nil {
			return nil, err
		}

		return message.NewStatus(sw), nil

	default:
		return nil, fmt.Errorf("%w: a message cannot start with a %s word", message.ErrInvalidMessageType, first.Type())
	}
}

// ParseTransaction assembles one command/response exchange.
//
// commandBytes holds the coded command word, optionally followed by its data
// words; the data word count, when data is present, must match the command's
// declaration. responseBytes holds the coded status word, or is nil when no
// response arrived within the caller's response window — the transaction is
// still returned with Status nil so the controller can classify the timeout.
// timestamp is the caller-supplied observation time.
func (p *Parser) ParseTransaction(commandBytes, responseBytes []byte, timestamp time.Time) (*Transaction, error) {
	cmdWord, err := p.ParseWord(commandBytes, m1553.CommandWord)
	if err != nil {
		return nil, err
	}

	cmd, err := message.CommandFromWord(cmdWord)
	if err != nil {
		return nil, err
	}

	data, err := p.ParseWords(commandBytes[m1553.EncodedWordSize:], m1553.DataWord)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 && len(data) != int(cmd.WordCount.Value()) {
		return nil, fmt.Errorf("%w: %d data words do not match declared word count %d",
			message.ErrInvalidCommand, len(data), cmd.WordCount.Value())
	}

	txn := &Transaction{
		Bus:       p.bus,
		Timestamp: timestamp,
		Command:   cmd,
		Data:      data,
	}

	if responseBytes != nil {
		statusWord, err := p.ParseWord(responseBytes, m1553.StatusWord)
		if err != nil {
			return nil, err
		}

		sw, err := message.StatusFromWord(statusWord)
		if err != nil {
			return nil, err
		}
		txn.Status = &sw
	}

	return txn, nil
}

// EncodeWord encodes one validated word to its coded bytes.
func (p *Parser) EncodeWord(w m1553.Word) []byte {
	return p.codec.EncodeWord(w.Raw())
}

// EncodeCommand encodes a command to its coded bytes. Encoding a validated
// command cannot fail.
func (p *Parser) EncodeCommand(cmd message.Command) []byte {
	return p.EncodeWord(cmd.ToWord())
}

// EncodeStatus encodes a status word to its coded bytes.
func (p *Parser) EncodeStatus(sw message.StatusWord) []byte {
	return p.EncodeWord(sw.ToWord())
}

// EncodeDataWords encodes 16-bit payloads as data words, computing parity for
// each.
func (p *Parser) EncodeDataWords(values []uint16) []byte {
	out := make([]byte, 0, len(values)*m1553.EncodedWordSize)
	for _, v := range values {
		out = append(out, p.EncodeWord(m1553.NewWord(v, m1553.DataWord))...)
	}

	return out
}

// EncodeMessage encodes a message to its coded bytes: the command word
// followed by any data words, or the status word alone.
func (p *Parser) EncodeMessage(msg message.Message) ([]byte, error) {
	switch m := msg.(type) {
	case *message.CommandData:
		out := p.EncodeCommand(m.Command)
		for _, w := range m.DataWords {
			out = append(out, p.EncodeWord(w)...)
		}

		return out, nil

	case *message.Status:
		return p.EncodeStatus(m.Status), nil

	case *message.CommandOnly:
		return p.EncodeCommand(m.Command), nil

	default:
		return nil, fmt.Errorf("%w: unknown message shape %T", message.ErrInvalidMessageType, msg)
	}
}

package parser

import (
	"fmt"
	"time"

	"github.com/milbus/go-1553/m1553"
	"github.com/milbus/go-1553/message"
)

// Transaction is one complete command(+data)/response exchange observed on a
// bus.
//
// A Transaction is created when a command is parsed and is complete whether
// or not a status response arrived: a transaction with Status == nil is a
// response timeout, classified by the Bus Controller rather than discarded by
// the parser. The timestamp is supplied by the caller; the parser never reads
// a clock.
type Transaction struct {
	// Bus is the channel the exchange was observed on.
	Bus m1553.Bus
	// Timestamp is the caller-supplied observation time.
	Timestamp time.Time
	// Command is the originating command.
	Command message.Command
	// Data holds the data words that accompanied the command, if any.
	Data []m1553.Word
	// Status is the terminating status response, or nil when none arrived
	// within the caller's response window.
	Status *message.StatusWord
}

// HasResponse reports whether a status response arrived.
func (t *Transaction) HasResponse() bool {
	return t.Status != nil
}

// TimedOut reports whether the exchange completed without a response.
func (t *Transaction) TimedOut() bool {
	return t.Status == nil
}

// Succeeded reports whether a response arrived and carries no error
// indication.
func (t *Transaction) Succeeded() bool {
	return t.Status != nil && t.Status.Healthy()
}

// String returns a short diagnostic representation.
func (t *Transaction) String() string {
	outcome := "timeout"
	if t.HasResponse() {
		outcome = t.Status.String()
	}

	return fmt.Sprintf("Transaction(%s, %s, %d data words, %s)", t.Bus, t.Command, len(t.Data), outcome)
}

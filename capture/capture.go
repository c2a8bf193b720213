// Package capture provides a CBOR interchange format for recorded bus
// traffic and terminal statistics.
//
// A capture is a stream of self-delimiting CBOR records holding the raw
// Manchester-encoded byte payloads of each exchange. Records carry bytes,
// not decoded words, so a capture replays through the parser exactly as the
// original traffic did, including corrupt or truncated exchanges.
package capture

import (
	"time"

	"github.com/milbus/go-1553/controller"
	"github.com/milbus/go-1553/m1553"
)

// TransactionRecord is the interchange form of one observed exchange.
//
// Command and Response hold the Manchester-encoded byte payloads as seen on
// the wire. A nil Response marks a response timeout.
type TransactionRecord struct {
	Bus         uint8  `cbor:"1,keyasint"`
	TimestampUs int64  `cbor:"2,keyasint"`
	Command     []byte `cbor:"3,keyasint"`
	Response    []byte `cbor:"4,keyasint,omitempty"`
}

// NewTransactionRecord builds a record from raw exchange payloads.
// responseBytes may be nil for a timed-out exchange.
func NewTransactionRecord(bus m1553.Bus, ts time.Time, commandBytes, responseBytes []byte) TransactionRecord {
	return TransactionRecord{
		Bus:         bus.Bit(),
		TimestampUs: ts.UnixMicro(),
		Command:     commandBytes,
		Response:    responseBytes,
	}
}

// RecordBus returns the bus the record was captured on.
func (r *TransactionRecord) RecordBus() m1553.Bus {
	if r.Bus == m1553.BusB.Bit() {
		return m1553.BusB
	}

	return m1553.BusA
}

// Timestamp returns the record's observation time.
func (r *TransactionRecord) Timestamp() time.Time {
	return time.UnixMicro(r.TimestampUs).UTC()
}

// TimedOut reports whether the exchange completed without a response.
func (r *TransactionRecord) TimedOut() bool {
	return r.Response == nil
}

// StatsRecord is the interchange form of one terminal's statistics snapshot.
type StatsRecord struct {
	Address          uint8   `cbor:"1,keyasint"`
	State            string  `cbor:"2,keyasint"`
	SuccessCount     uint64  `cbor:"3,keyasint"`
	ErrorCount       uint64  `cbor:"4,keyasint"`
	TransactionCount uint64  `cbor:"5,keyasint"`
	ErrorRate        float64 `cbor:"6,keyasint"`
	Responding       bool    `cbor:"7,keyasint"`
	LastSeenUs       int64   `cbor:"8,keyasint,omitempty"`
}

// NewStatsRecord converts a controller snapshot to its interchange form.
func NewStatsRecord(stats controller.RTStats) StatsRecord {
	rec := StatsRecord{
		Address:          stats.Address.Value(),
		State:            stats.State.String(),
		SuccessCount:     stats.SuccessCount,
		ErrorCount:       stats.ErrorCount,
		TransactionCount: stats.TransactionCount,
		ErrorRate:        stats.ErrorRate,
		Responding:       stats.Responding,
	}
	if !stats.LastSeen.IsZero() {
		rec.LastSeenUs = stats.LastSeen.UnixMicro()
	}

	return rec
}

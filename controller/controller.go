// Package controller implements the Bus Controller's protocol-state engine:
// Remote Terminal registration, transaction outcome recording, the
// per-terminal {Unknown, Active, Unresponsive} state machine, and derived
// statistics.
//
// One BusController owns the terminal map of one bus. Deployments run an
// independent {parser, controller} pair per physical bus with no shared
// state; the controller assumes a single writer for mutations, while the
// terminal map tolerates concurrent snapshot reads.
//
// All timing is supplied by the caller: recording operations take the
// observation timestamp and the controller never reads a system clock.
package controller

import (
	"fmt"
	"sort"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/milbus/go-1553/logger"
	"github.com/milbus/go-1553/m1553"
	"github.com/milbus/go-1553/parser"
)

// BusController tracks the Remote Terminals of one bus.
type BusController struct {
	bus     m1553.Bus
	cfg     *Config
	rts     *xsync.MapOf[uint8, *RemoteTerminal]
	metrics Metrics
	logger  logger.Logger
}

// NewBusController creates a controller for the given bus.
func NewBusController(bus m1553.Bus, opts ...Option) (*BusController, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &BusController{
		bus:    bus,
		cfg:    cfg,
		rts:    xsync.NewMapOf[uint8, *RemoteTerminal](),
		logger: cfg.logger.With("bus", bus.String()),
	}, nil
}

// Bus returns the bus this controller manages.
func (bc *BusController) Bus() m1553.Bus {
	return bc.bus
}

// Metrics returns the controller's counters.
func (bc *BusController) Metrics() *Metrics {
	return &bc.metrics
}

// RegisterRT registers one Remote Terminal in state Unknown.
//
// Registration is idempotent: a duplicate is a no-op, not an error. Fails
// with m1553.ErrInvalidAddress for addresses that cannot be assigned to a
// terminal (30 is unassigned, 31 is broadcast).
func (bc *BusController) RegisterRT(addr uint8) error {
	address, err := m1553.NewAddress(addr)
	if err != nil {
		return err
	}
	if !address.IsRemoteTerminal() {
		return fmt.Errorf("%w: address %d is not assignable to a remote terminal [0, %d)",
			m1553.ErrInvalidAddress, addr, m1553.MaxRemoteTerminals)
	}

	if _, loaded := bc.rts.LoadOrStore(addr, newRemoteTerminal(address)); !loaded {
		bc.logger.Debug("remote terminal registered", "address", address.String())
	}

	return nil
}

// RegisterRTs registers multiple Remote Terminals; see RegisterRT.
// Fails on the first invalid address; terminals registered before the
// failure remain registered.
func (bc *BusController) RegisterRTs(addrs []uint8) error {
	for _, addr := range addrs {
		if err := bc.RegisterRT(addr); err != nil {
			return err
		}
	}

	return nil
}

// RTCount returns the number of registered terminals.
func (bc *BusController) RTCount() int {
	return bc.rts.Size()
}

// GetRT returns the terminal registered at addr.
func (bc *BusController) GetRT(addr uint8) (*RemoteTerminal, bool) {
	return bc.rts.Load(addr)
}

// ListRTs returns all registered terminals ordered by address.
func (bc *BusController) ListRTs() []*RemoteTerminal {
	rts := make([]*RemoteTerminal, 0, bc.rts.Size())
	bc.rts.Range(func(_ uint8, rt *RemoteTerminal) bool {
		rts = append(rts, rt)
		return true
	})

	sort.Slice(rts, func(i, j int) bool { return rts[i].address < rts[j].address })

	return rts
}

// RespondingRTs returns the terminals with an outcome recorded within the
// configured response window of now.
func (bc *BusController) RespondingRTs(now time.Time) []*RemoteTerminal {
	out := make([]*RemoteTerminal, 0)
	for _, rt := range bc.ListRTs() {
		if rt.IsResponding(now, bc.cfg.responseTimeout) {
			out = append(out, rt)
		}
	}

	return out
}

// RecordRTSuccess records a successful transaction outcome for a terminal.
//
// Updates counters and last-seen, and transitions the terminal to Active
// (from any state). Fails with ErrUnregisteredTerminal when addr was never
// registered.
func (bc *BusController) RecordRTSuccess(addr uint8, now time.Time) error {
	rt, ok := bc.rts.Load(addr)
	if !ok {
		return fmt.Errorf("%w: address %d", ErrUnregisteredTerminal, addr)
	}

	rt.recordSuccess(now)

	return nil
}

// RecordRTError records a failed transaction outcome (error response or
// timeout) for a terminal.
//
// Updates counters and last-seen; the terminal transitions to Unresponsive
// once the configured run of consecutive errors is reached. Fails with
// ErrUnregisteredTerminal when addr was never registered.
func (bc *BusController) RecordRTError(addr uint8, now time.Time) error {
	rt, ok := bc.rts.Load(addr)
	if !ok {
		return fmt.Errorf("%w: address %d", ErrUnregisteredTerminal, addr)
	}

	rt.recordError(now, bc.cfg.unresponsiveThreshold)
	if rt.State().IsUnresponsive() {
		bc.logger.Warn("remote terminal unresponsive",
			"address", rt.address.String(),
			"error_count", rt.errorCount,
		)
	}

	return nil
}

// RecordTransaction classifies an assembled transaction and records the
// outcome for its target terminal.
//
// Classification: no status response is a timeout (recorded as an error
// outcome); a status carrying an error indication is an error; everything
// else is a success. The transaction object itself is not retained.
func (bc *BusController) RecordTransaction(txn *parser.Transaction, now time.Time) error {
	addr := txn.Command.Address.Value()

	bc.metrics.incTransactionCount()

	switch {
	case txn.TimedOut():
		bc.metrics.incTimeoutCount()
		bc.logger.Debug("transaction timeout", "address", txn.Command.Address.String())

		return bc.RecordRTError(addr, now)

	case !txn.Status.Healthy():
		bc.metrics.incErrorCount()
		bc.logger.Debug("transaction error",
			"address", txn.Command.Address.String(),
			"error_code", txn.Status.ErrorCode,
		)

		return bc.RecordRTError(addr, now)

	default:
		bc.metrics.incSuccessCount()

		return bc.RecordRTSuccess(addr, now)
	}
}

// GetRTStats returns a statistics snapshot for a terminal at the given time.
//
// The second return value is false when the address is not registered;
// probing an unknown address is not an error.
func (bc *BusController) GetRTStats(addr uint8, now time.Time) (RTStats, bool) {
	rt, ok := bc.rts.Load(addr)
	if !ok {
		return RTStats{}, false
	}

	return snapshotRT(rt, now, bc.cfg.responseTimeout), true
}

// AllStats returns snapshots for every registered terminal, ordered by
// address.
func (bc *BusController) AllStats(now time.Time) []RTStats {
	rts := bc.ListRTs()
	stats := make([]RTStats, 0, len(rts))
	for _, rt := range rts {
		stats = append(stats, snapshotRT(rt, now, bc.cfg.responseTimeout))
	}

	return stats
}

package controller

import (
	"time"

	"github.com/milbus/go-1553/m1553"
)

// RTState represents the health state of a Remote Terminal as tracked by the
// Bus Controller.
type RTState uint8

const (
	// StateUnknown is the state of a freshly registered terminal with no
	// recorded evidence yet.
	StateUnknown RTState = iota
	// StateActive means the most recent evidence is a success.
	StateActive
	// StateUnresponsive means the configured run of consecutive errors or
	// timeouts has been reached.
	StateUnresponsive
)

// IsUnknown reports whether the state is Unknown.
func (s RTState) IsUnknown() bool { return s == StateUnknown }

// IsActive reports whether the state is Active.
func (s RTState) IsActive() bool { return s == StateActive }

// IsUnresponsive reports whether the state is Unresponsive.
func (s RTState) IsUnresponsive() bool { return s == StateUnresponsive }

// String returns the state name.
func (s RTState) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateActive:
		return "active"
	case StateUnresponsive:
		return "unresponsive"
	default:
		return "invalid"
	}
}

// RemoteTerminal tracks one registered terminal's health history.
//
// Entries are created on registration and never deleted; the state always
// reflects the most recent evidence window (there is no permanent "dead"
// state). All mutation happens through the owning BusController.
type RemoteTerminal struct {
	address m1553.Address

	state             RTState
	lastSeen          time.Time
	successCount      uint64
	errorCount        uint64
	consecutiveErrors int
}

func newRemoteTerminal(address m1553.Address) *RemoteTerminal {
	return &RemoteTerminal{address: address, state: StateUnknown}
}

// Address returns the terminal's address.
func (rt *RemoteTerminal) Address() m1553.Address { return rt.address }

// State returns the current health state.
func (rt *RemoteTerminal) State() RTState { return rt.state }

// SuccessCount returns the number of recorded successful transactions.
func (rt *RemoteTerminal) SuccessCount() uint64 { return rt.successCount }

// ErrorCount returns the number of recorded failed transactions.
func (rt *RemoteTerminal) ErrorCount() uint64 { return rt.errorCount }

// LastSeen returns the timestamp of the most recent recorded outcome; the
// zero time means nothing was recorded yet.
func (rt *RemoteTerminal) LastSeen() time.Time { return rt.lastSeen }

// IsResponding reports whether an outcome was recorded within timeout of now.
func (rt *RemoteTerminal) IsResponding(now time.Time, timeout time.Duration) bool {
	if rt.lastSeen.IsZero() {
		return false
	}

	return now.Sub(rt.lastSeen) < timeout
}

// recordSuccess transitions Unknown or Unresponsive back to Active and
// resets the consecutive error run.
func (rt *RemoteTerminal) recordSuccess(now time.Time) {
	rt.successCount++
	rt.consecutiveErrors = 0
	rt.state = StateActive
	rt.lastSeen = now
}

// recordError transitions to Unresponsive once the consecutive error run
// reaches threshold.
func (rt *RemoteTerminal) recordError(now time.Time, threshold int) {
	rt.errorCount++
	rt.consecutiveErrors++
	if rt.consecutiveErrors >= threshold {
		rt.state = StateUnresponsive
	}
	rt.lastSeen = now
}

package controller

import (
	"time"

	"github.com/milbus/go-1553/m1553"
)

// RTStats is a derived, read-only snapshot of one terminal's health.
// Snapshots are computed on demand and never stored.
type RTStats struct {
	// Address is the terminal's address.
	Address m1553.Address
	// State is the health state at snapshot time.
	State RTState
	// SuccessCount is the number of successful transactions.
	SuccessCount uint64
	// ErrorCount is the number of failed transactions.
	ErrorCount uint64
	// TransactionCount is SuccessCount + ErrorCount.
	TransactionCount uint64
	// ErrorRate is ErrorCount / TransactionCount, 0 with no history.
	ErrorRate float64
	// Responding reports whether an outcome was recorded within the
	// controller's response window of the snapshot time.
	Responding bool
	// LastSeen is the timestamp of the most recent recorded outcome.
	LastSeen time.Time
}

// snapshotRT computes an RTStats snapshot at the given time.
func snapshotRT(rt *RemoteTerminal, now time.Time, timeout time.Duration) RTStats {
	total := rt.successCount + rt.errorCount

	var rate float64
	if total > 0 {
		rate = float64(rt.errorCount) / float64(total)
	}

	return RTStats{
		Address:          rt.address,
		State:            rt.state,
		SuccessCount:     rt.successCount,
		ErrorCount:       rt.errorCount,
		TransactionCount: total,
		ErrorRate:        rate,
		Responding:       rt.IsResponding(now, timeout),
		LastSeen:         rt.lastSeen,
	}
}

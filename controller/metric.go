package controller

import "sync/atomic"

// Metrics contains atomic counters for one BusController.
// Counters can be used as the value of a prometheus CounterFunc.
type Metrics struct {
	// TransactionCount indicates the number of transactions recorded.
	TransactionCount atomic.Uint64
	// SuccessCount indicates the number of transactions classified as
	// successes.
	SuccessCount atomic.Uint64
	// ErrorCount indicates the number of transactions classified as errors
	// (error-indicating status responses).
	ErrorCount atomic.Uint64
	// TimeoutCount indicates the number of transactions that completed
	// without a status response.
	TimeoutCount atomic.Uint64
}

func (m *Metrics) incTransactionCount() {
	m.TransactionCount.Add(1)
}

func (m *Metrics) incSuccessCount() {
	m.SuccessCount.Add(1)
}

func (m *Metrics) incErrorCount() {
	m.ErrorCount.Add(1)
}

func (m *Metrics) incTimeoutCount() {
	m.TimeoutCount.Add(1)
}

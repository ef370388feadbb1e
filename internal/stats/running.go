// Package stats accumulates running classification counters for end-of-run
// reporting. Safe for concurrent use.
package stats

import "sync"

// Running tracks outcome totals and per-reason erase counts across a run.
type Running struct {
	mu           sync.Mutex
	swaps        int64
	splits       int64
	erases       int64
	eraseReasons map[string]int64
}

// New returns an empty collector.
func New() *Running {
	return &Running{
		eraseReasons: make(map[string]int64),
	}
}

// RecordSwap counts one BUY or SELL emission.
func (r *Running) RecordSwap() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.swaps++
}

// RecordSplit counts one token-to-token pair emission.
func (r *Running) RecordSplit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.splits++
}

// RecordErase counts one erase, keyed by its machine-readable reason.
func (r *Running) RecordErase(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.erases++
	if r.eraseReasons == nil {
		r.eraseReasons = make(map[string]int64)
	}
	r.eraseReasons[reason]++
}

// Snapshot is a point-in-time copy of the collected counters.
type Snapshot struct {
	Swaps        int64
	Splits       int64
	Erases       int64
	Total        int64
	EraseReasons map[string]int64
}

// Snapshot returns a consistent copy of the current counters.
func (r *Running) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	reasons := make(map[string]int64, len(r.eraseReasons))
	for k, v := range r.eraseReasons {
		reasons[k] = v
	}

	return Snapshot{
		Swaps:        r.swaps,
		Splits:       r.splits,
		Erases:       r.erases,
		Total:        r.swaps + r.splits + r.erases,
		EraseReasons: reasons,
	}
}

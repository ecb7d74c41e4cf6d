// Package rate derives per-process transfer rates from cumulative I/O
// counter samples taken on consecutive monitoring cycles.
package rate

import (
	"github.com/grigio/network-monitor/internal/model"
)

// Delta is the byte delta of one process between two samples. Units are
// bytes per sampling interval; the interval is assumed constant rather
// than measured, so a delayed tick biases the reported rate.
type Delta struct {
	Rx uint64 // growth of cumulative read bytes
	Tx uint64 // growth of cumulative write bytes
}

// Tracker retains the previous cycle's counter samples, one per PID.
// Not safe for concurrent use; the snapshot builder is its sole caller.
type Tracker struct {
	prev map[int32]model.IOCounterSample
}

// NewTracker returns a Tracker with no baseline. The first Compute call
// therefore yields zero deltas for every process.
func NewTracker() *Tracker {
	return &Tracker{prev: make(map[int32]model.IOCounterSample)}
}

// Compute returns the per-PID deltas between the retained samples and
// current, then replaces the retained map wholesale. PIDs absent from
// current are dropped, so short-lived processes can't accumulate.
//
// Deltas clamp at zero: a counter that shrank (pid reuse after restart,
// or wraparound) produces 0 rather than a spurious spike.
func (t *Tracker) Compute(current map[int32]model.IOCounterSample) map[int32]Delta {
	deltas := make(map[int32]Delta, len(current))

	for pid, sample := range current {
		prev, ok := t.prev[pid]
		if !ok {
			// No baseline yet for this process.
			deltas[pid] = Delta{}
			continue
		}
		deltas[pid] = Delta{
			Rx: clampedDiff(sample.ReadBytes, prev.ReadBytes),
			Tx: clampedDiff(sample.WriteBytes, prev.WriteBytes),
		}
	}

	t.prev = current
	return deltas
}

// Reset discards the retained baseline. The next Compute reports zero
// rates for everything, as on startup.
func (t *Tracker) Reset() {
	t.prev = make(map[int32]model.IOCounterSample)
}

// TrackedCount returns the number of PIDs with a retained baseline.
func (t *Tracker) TrackedCount() int {
	return len(t.prev)
}

func clampedDiff(current, previous uint64) uint64 {
	if current < previous {
		return 0
	}
	return current - previous
}

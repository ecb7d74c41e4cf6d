package rate

import (
	"testing"
	"time"

	"github.com/grigio/network-monitor/internal/model"
)

func sample(pid int32, read, write uint64) model.IOCounterSample {
	return model.IOCounterSample{
		PID:        pid,
		ReadBytes:  read,
		WriteBytes: write,
		SampledAt:  time.Now(),
	}
}

func TestCompute_FirstCycleYieldsZeroRates(t *testing.T) {
	tr := NewTracker()

	deltas := tr.Compute(map[int32]model.IOCounterSample{
		100: sample(100, 5000, 3000),
		101: sample(101, 1000, 0),
	})

	for pid, d := range deltas {
		if d.Rx != 0 || d.Tx != 0 {
			t.Errorf("pid %d: first cycle delta = %+v, want zero", pid, d)
		}
	}
}

func TestCompute_SecondCycleComputesDeltas(t *testing.T) {
	tr := NewTracker()
	tr.Compute(map[int32]model.IOCounterSample{
		100: sample(100, 0, 0),
		101: sample(101, 200, 100),
	})

	deltas := tr.Compute(map[int32]model.IOCounterSample{
		100: sample(100, 1024, 0),
		101: sample(101, 200, 612),
	})

	if d := deltas[100]; d.Rx != 1024 || d.Tx != 0 {
		t.Errorf("pid 100 delta = %+v, want {Rx:1024 Tx:0}", d)
	}
	if d := deltas[101]; d.Rx != 0 || d.Tx != 512 {
		t.Errorf("pid 101 delta = %+v, want {Rx:0 Tx:512}", d)
	}
}

func TestCompute_CounterWraparoundClampsToZero(t *testing.T) {
	tr := NewTracker()
	tr.Compute(map[int32]model.IOCounterSample{
		100: sample(100, 1<<32-10, 50),
	})

	deltas := tr.Compute(map[int32]model.IOCounterSample{
		100: sample(100, 5, 40),
	})

	if d := deltas[100]; d.Rx != 0 || d.Tx != 0 {
		t.Errorf("wrapped counter delta = %+v, want zero", d)
	}
}

func TestCompute_VanishedPIDsDropped(t *testing.T) {
	tr := NewTracker()
	tr.Compute(map[int32]model.IOCounterSample{
		100: sample(100, 10, 10),
		101: sample(101, 10, 10),
	})

	tr.Compute(map[int32]model.IOCounterSample{
		100: sample(100, 20, 20),
	})

	if tr.TrackedCount() != 1 {
		t.Errorf("TrackedCount = %d, want 1 after pid 101 vanished", tr.TrackedCount())
	}

	// A reappearing PID starts from a fresh baseline.
	deltas := tr.Compute(map[int32]model.IOCounterSample{
		101: sample(101, 9999, 9999),
	})
	if d := deltas[101]; d.Rx != 0 || d.Tx != 0 {
		t.Errorf("reappeared pid delta = %+v, want zero", d)
	}
}

func TestReset(t *testing.T) {
	tr := NewTracker()
	tr.Compute(map[int32]model.IOCounterSample{100: sample(100, 10, 10)})
	tr.Reset()

	deltas := tr.Compute(map[int32]model.IOCounterSample{100: sample(100, 500, 500)})
	if d := deltas[100]; d.Rx != 0 || d.Tx != 0 {
		t.Errorf("delta after Reset = %+v, want zero", d)
	}
}

func TestCompute_NeverNegative(t *testing.T) {
	tr := NewTracker()
	tr.Compute(map[int32]model.IOCounterSample{100: sample(100, 100, 100)})

	// Every combination of shrinking and growing counters stays >= 0
	// (uint64 result, so the real check is the clamp before subtraction).
	deltas := tr.Compute(map[int32]model.IOCounterSample{100: sample(100, 50, 150)})
	if d := deltas[100]; d.Rx != 0 || d.Tx != 50 {
		t.Errorf("mixed delta = %+v, want {Rx:0 Tx:50}", d)
	}
}

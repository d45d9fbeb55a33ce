package sparseplan

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"
)

// InvocationCounters counts the calls to an operation and the time spent in it.
type InvocationCounters struct {
	calls     atomic.Int64
	timeNanos atomic.Int64
}

// PlanMeta is meta data about the most recent planning run.
type PlanMeta struct {
	Duration time.Duration
	Cost     float64

	// Planned is the number of sparse points, Interpolated the number of dense points filled in
	// between them. Both are set only when refinement converges.
	Planned      int
	Interpolated int

	// Attempts counts sparse solves, Promotions the dense points moved into the sparse set.
	Attempts   int
	Promotions int

	timingMu sync.Mutex
	Timing   map[string]*InvocationCounters
}

// NewPlanMeta constructs PlanMeta.
func NewPlanMeta() *PlanMeta {
	return &PlanMeta{
		Timing: make(map[string]*InvocationCounters),
	}
}

// DeferTiming is a one-liner for timing a function:
//
//	defer planMeta.DeferTiming("functionName", time.Now())
func (pm *PlanMeta) DeferTiming(opName string, start time.Time) {
	pm.AddTiming(opName, time.Since(start))
}

// AddTiming increments the invocation count and time spent for an operation.
func (pm *PlanMeta) AddTiming(opName string, dur time.Duration) {
	pm.timingMu.Lock()
	defer pm.timingMu.Unlock()

	counter, exists := pm.Timing[opName]
	if !exists {
		counter = &InvocationCounters{}
		pm.Timing[opName] = counter
	}
	counter.calls.Add(1)
	counter.timeNanos.Add(dur.Nanoseconds())
}

// OutputTiming pretty-prints the timing of each refinement stage.
func (pm *PlanMeta) OutputTiming(outputWriter io.Writer) {
	pm.timingMu.Lock()
	defer pm.timingMu.Unlock()
	//nolint:errcheck
	fmt.Fprintf(outputWriter, `plan:					%v
  sparseSolution:		%v
    shortestPath:		%v
  interpolate:			%v
  promote:				%v
`,
		pm.Timing["plan"],
		pm.Timing["sparseSolution"],
		pm.Timing["shortestPath"],
		pm.Timing["interpolate"],
		pm.Timing["promote"],
	)
}

// Calls returns the number of times an operation was invoked.
func (ic *InvocationCounters) Calls() int64 {
	if ic == nil {
		return 0
	}
	return ic.calls.Load()
}

// TotalTime returns the accumulated runtime of an operation.
func (ic *InvocationCounters) TotalTime() time.Duration {
	if ic == nil {
		return 0
	}
	return time.Duration(ic.timeNanos.Load())
}

// Average returns the mean time per invocation, or zero when never invoked.
func (ic *InvocationCounters) Average() time.Duration {
	calls := ic.Calls()
	if calls == 0 {
		return 0
	}
	return ic.TotalTime() / time.Duration(calls)
}

// String formats the number of calls, total time and average.
func (ic *InvocationCounters) String() string {
	return fmt.Sprintf("Calls: %3d Total time: %-13s Average time: %v",
		ic.Calls(), ic.TotalTime(), ic.Average())
}

package heuristic

import (
	"math"
	"strconv"

	"github.com/gopherplan/gopherplan/task"
)

// A Value is a heuristic estimate: a non-negative number of cost units,
// or Infinity.
type Value int64

// Infinity means no relaxed plan reaches the goal, so no real plan does
// either. It compares greater than every finite value.
const Infinity Value = math.MaxInt64

// IsInfinite is true iff v is the unreachable sentinel.
func (v Value) IsInfinite() bool {
	return v == Infinity
}

func (v Value) String() string {
	if v.IsInfinite() {
		return "inf"
	}
	return strconv.FormatInt(int64(v), 10)
}

// A Heuristic estimates the cost of reaching the goal from a state.
// Estimates are admissible: 0 on any state satisfying the goal, and never
// more than the true optimal cost elsewhere. Estimate must be safe to call
// repeatedly on the same receiver.
type Heuristic interface {
	Estimate(s task.State) Value
}

// newLabels returns a fresh cost label per fact, all unreachable.
func newLabels(nbFacts int) []Value {
	labels := make([]Value, nbFacts)
	for i := range labels {
		labels[i] = Infinity
	}
	return labels
}

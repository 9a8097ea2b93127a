package heuristic

import "github.com/gopherplan/gopherplan/task"

// HMax estimates the goal distance of a state as the cost of the most
// expensive goal fact under the delete relaxation, where achieving a set of
// facts costs as much as its most expensive member.
type HMax struct {
	pb    *task.Task
	graph *relaxedGraph
	costs []int
}

// NewHMax returns an hmax estimator for the given task.
func NewHMax(pb *task.Task) *HMax {
	pre := make([][]task.Fact, len(pb.Actions))
	add := make([][]task.Fact, len(pb.Actions))
	costs := make([]int, len(pb.Actions))
	for i := range pb.Actions {
		pre[i] = pb.Actions[i].Pre
		add[i] = pb.Actions[i].Add
		costs[i] = pb.Actions[i].Cost
	}
	return &HMax{
		pb:    pb,
		graph: newRelaxedGraph(pb.NbFacts, pre, add),
		costs: costs,
	}
}

// Estimate returns the hmax value of s, or Infinity if some goal fact
// cannot be reached even under the relaxation.
func (h *HMax) Estimate(s task.State) Value {
	labels := newLabels(h.pb.NbFacts)
	for _, f := range s {
		labels[f] = 0
	}
	h.graph.propagate(h.costs, labels)
	res := Value(0)
	for _, f := range h.pb.Goal {
		if labels[f] > res {
			res = labels[f]
		}
	}
	return res
}

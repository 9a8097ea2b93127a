package heuristic

import "github.com/gopherplan/gopherplan/task"

// A relaxedGraph is the delete relaxation of a set of actions: only
// preconditions and add effects are kept. It is immutable and shared by
// every query of the heuristic owning it.
type relaxedGraph struct {
	nbFacts int
	pre     [][]task.Fact
	add     [][]task.Fact
	occ     [][]int32 // For each fact, the actions having it as a precondition.
	free    []int32   // Actions with no precondition at all.
}

func newRelaxedGraph(nbFacts int, pre, add [][]task.Fact) *relaxedGraph {
	g := &relaxedGraph{
		nbFacts: nbFacts,
		pre:     pre,
		add:     add,
		occ:     make([][]int32, nbFacts),
	}
	for i := range pre {
		if len(pre[i]) == 0 {
			g.free = append(g.free, int32(i))
			continue
		}
		for _, f := range pre[i] {
			g.occ[f] = append(g.occ[f], int32(i))
		}
	}
	return g
}

// propagate runs the hmax fixpoint over the graph: the cost of applying an
// action is its own cost plus the maximum label among its preconditions,
// and each add effect's label is tightened accordingly until convergence.
// On entry, labels must hold 0 for the facts of the query state and
// Infinity everywhere else; on exit it holds the converged labels.
// Since all costs are non-negative, the fixpoint is computed as a
// single-source shortest-path propagation: facts are finalized in
// increasing label order, so an action fires exactly once, when its last
// precondition is finalized, and that precondition carries the maximum.
func (g *relaxedGraph) propagate(costs []int, labels []Value) {
	unsat := make([]int, len(g.pre))
	for i := range g.pre {
		unsat[i] = len(g.pre[i])
	}
	q := newQueue(labels)
	relax := func(ai int32, base Value) {
		val := base + Value(costs[ai])
		for _, f := range g.add[ai] {
			if val < labels[f] {
				labels[f] = val
				q.update(int(f))
			}
		}
	}
	for _, ai := range g.free {
		relax(ai, 0)
	}
	for !q.empty() {
		f := q.removeMin()
		if labels[f].IsInfinite() {
			break // Everything still in the queue is unreachable.
		}
		for _, ai := range g.occ[f] {
			unsat[ai]--
			if unsat[ai] == 0 {
				relax(ai, labels[f])
			}
		}
	}
}

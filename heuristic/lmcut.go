package heuristic

import "github.com/gopherplan/gopherplan/task"

// LMCut estimates the goal distance of a state by accumulating disjunctive
// action landmarks: sets of actions such that every plan must use at least
// one of them. Each landmark contributes the minimum cost among its
// actions, that amount is subtracted from them, and the process repeats on
// the reduced costs until the relaxed goal becomes free. The accumulated
// total is admissible and never lower than hmax on the same state.
type LMCut struct {
	pb       *task.Task
	graph    *relaxedGraph
	base     []int     // Base action costs; the last entry is the artificial goal action.
	source   task.Fact // Artificial fact standing for "no precondition".
	goalFact task.Fact // Artificial fact standing for the goal conjunction.
	addOcc   [][]int32 // For each fact, the actions having it as an add effect.
}

// A landmark is one cut extracted from the justification graph.
// cost is the minimum current cost among its actions; it is always
// strictly positive.
type landmark struct {
	actions []int32
	cost    int
}

// NewLMCut returns an LM-Cut estimator for the given task.
func NewLMCut(pb *task.Task) *LMCut {
	source := task.Fact(pb.NbFacts)
	goalFact := task.Fact(pb.NbFacts + 1)
	nbActs := len(pb.Actions) + 1
	pre := make([][]task.Fact, nbActs)
	add := make([][]task.Fact, nbActs)
	base := make([]int, nbActs)
	for i := range pb.Actions {
		if len(pb.Actions[i].Pre) == 0 {
			pre[i] = []task.Fact{source}
		} else {
			pre[i] = pb.Actions[i].Pre
		}
		add[i] = pb.Actions[i].Add
		base[i] = pb.Actions[i].Cost
	}
	// Artificial zero-cost action achieving the goal conjunction.
	gi := nbActs - 1
	if len(pb.Goal) == 0 {
		pre[gi] = []task.Fact{source}
	} else {
		pre[gi] = pb.Goal
	}
	add[gi] = []task.Fact{goalFact}
	base[gi] = 0
	h := &LMCut{
		pb:       pb,
		graph:    newRelaxedGraph(pb.NbFacts+2, pre, add),
		base:     base,
		source:   source,
		goalFact: goalFact,
		addOcc:   make([][]int32, pb.NbFacts+2),
	}
	for i := range add {
		for _, f := range add[i] {
			h.addOcc[f] = append(h.addOcc[f], int32(i))
		}
	}
	return h
}

// Estimate returns the LM-Cut value of s, or Infinity if the goal cannot
// be reached even under the relaxation.
func (h *LMCut) Estimate(s task.State) Value {
	v, _ := h.estimate(s)
	return v
}

// estimate also returns the sequence of extracted landmarks.
func (h *LMCut) estimate(s task.State) (Value, []landmark) {
	costs := append([]int(nil), h.base...)
	labels := newLabels(h.graph.nbFacts)
	relabel := func() {
		for i := range labels {
			labels[i] = Infinity
		}
		for _, f := range s {
			labels[f] = 0
		}
		labels[h.source] = 0
		h.graph.propagate(costs, labels)
	}
	relabel()
	if labels[h.goalFact].IsInfinite() {
		return Infinity, nil
	}
	total := Value(0)
	var lms []landmark
	for labels[h.goalFact] > 0 {
		lm := h.cut(labels, costs)
		if len(lm.actions) == 0 {
			return Infinity, nil
		}
		total += Value(lm.cost)
		for _, ai := range lm.actions {
			costs[ai] -= lm.cost
		}
		lms = append(lms, lm)
		relabel()
	}
	return total, lms
}

// supporters designates, for each action, its responsible precondition:
// the precondition with the maximum label. Preconditions are sorted, so on
// ties the lowest fact id wins.
func (h *LMCut) supporters(labels []Value) []task.Fact {
	supp := make([]task.Fact, len(h.graph.pre))
	for i, pre := range h.graph.pre {
		best := pre[0]
		for _, f := range pre[1:] {
			if labels[f] > labels[best] {
				best = f
			}
		}
		supp[i] = best
	}
	return supp
}

// cut extracts one landmark from the justification graph induced by the
// current labels. The goal region is grown backward from the artificial
// goal fact along responsible-precondition edges, stopping at facts with
// label 0 (the zero region); the landmark is the set of actions bridging
// the two regions: responsible precondition in the zero region, some add
// effect in the goal region.
func (h *LMCut) cut(labels []Value, costs []int) landmark {
	supp := h.supporters(labels)
	inGoal := make([]bool, h.graph.nbFacts)
	inCut := make([]bool, len(costs))
	lm := landmark{cost: -1}
	frontier := []task.Fact{h.goalFact}
	inGoal[h.goalFact] = true
	for len(frontier) > 0 {
		f := frontier[0]
		frontier = frontier[1:]
		for _, ai := range h.addOcc[f] {
			sp := supp[ai]
			if labels[sp] == 0 {
				if !inCut[ai] {
					inCut[ai] = true
					lm.actions = append(lm.actions, ai)
					if lm.cost == -1 || costs[ai] < lm.cost {
						lm.cost = costs[ai]
					}
				}
			} else if !inGoal[sp] {
				inGoal[sp] = true
				frontier = append(frontier, sp)
			}
		}
	}
	if lm.cost == -1 {
		lm.cost = 0
	}
	return lm
}

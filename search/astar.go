package search

import (
	"github.com/gopherplan/gopherplan/heuristic"
	"github.com/gopherplan/gopherplan/task"
)

// Status is the outcome of a search.
type Status byte

const (
	// Indet means the search has not terminated yet.
	Indet = Status(iota)
	// Solved means an optimal plan was found.
	Solved
	// Unsolvable means no plan exists: the frontier emptied before a goal
	// state was reached.
	Unsolvable
)

func (s Status) String() string {
	switch s {
	case Indet:
		return "INDETERMINATE"
	case Solved:
		return "SOLVED"
	case Unsolvable:
		return "UNSOLVABLE"
	default:
		panic("invalid status")
	}
}

// Stats are statistics about the search.
// They are provided for information purpose only.
type Stats struct {
	Expanded  int // How many nodes were expanded
	Generated int // How many nodes were inserted into the frontier
	Evaluated int // How many heuristic estimates were computed
	Reopened  int // How many already expanded states were re-inserted on a cheaper path
	Pruned    int // How many successors were discarded because their estimate was infinite
}

// A Result is the outcome of a search: a status and, when solved, the
// optimal plan as the ordered names of its actions together with its total
// cost.
type Result struct {
	Status Status
	Plan   []string
	Cost   int
	Stats  Stats
}

// A node of the search tree. Nodes live in the engine's arena and point to
// their predecessor by index, which is all plan extraction needs.
type node struct {
	state  task.State
	key    string
	parent int32 // Index of the predecessor node; -1 for the root.
	action int32 // Index of the action leading here; -1 for the root.
	g      int
	h      heuristic.Value
}

// A record tracks the best known path cost to a state.
type record struct {
	g        int
	expanded bool
}

// An Engine runs A* over the implicit state graph of a task, guided by a
// pluggable admissible estimator. It is the exclusive owner of its frontier
// and visited records; a fresh engine is needed for each run.
type Engine struct {
	pb    *task.Task
	h     heuristic.Heuristic
	nodes []node
	open  openList
	best  map[string]record
	Stats Stats
}

// New makes an engine for the given task and estimator.
func New(pb *task.Task, h heuristic.Heuristic) *Engine {
	return &Engine{
		pb:   pb,
		h:    h,
		best: make(map[string]record),
	}
}

// Solve searches for an optimal plan from the task's initial state.
// The first goal node popped from the frontier has minimum cost among all
// goal nodes, because the estimator never overestimates; the returned
// plan's cost is therefore the true optimal cost. An empty frontier means
// the task is unsolvable, which is a normal outcome.
func (e *Engine) Solve() Result {
	h0 := e.h.Estimate(e.pb.Init)
	e.Stats.Evaluated++
	if !h0.IsInfinite() {
		e.addNode(e.pb.Init, -1, -1, 0, h0)
	} else {
		e.Stats.Pruned++
	}
	for len(e.open) > 0 {
		ent := e.open.removeMin()
		n := &e.nodes[ent.node]
		rec := e.best[n.key]
		if rec.g < n.g {
			continue // A cheaper path to this state was found in the meantime.
		}
		if e.pb.IsGoal(n.state) {
			return e.extract(ent.node)
		}
		rec.expanded = true
		e.best[n.key] = rec
		e.Stats.Expanded++
		e.expand(ent.node)
	}
	return Result{Status: Unsolvable, Stats: e.Stats}
}

// expand generates the successors of a node and inserts the improving ones
// into the frontier. A successor improving on an already expanded state is
// re-inserted: the estimators are admissible but not necessarily
// consistent, so a state can be rediscovered on a cheaper path after its
// expansion, and dropping it would break optimality.
func (e *Engine) expand(idx int32) {
	// The arena may grow and move: copy what we need before appending.
	state := e.nodes[idx].state
	g := e.nodes[idx].g
	for ai := range e.pb.Actions {
		a := &e.pb.Actions[ai]
		if !e.pb.Applicable(a, state) {
			continue
		}
		succ := e.pb.Apply(a, state)
		succG := g + a.Cost
		key := succ.Key()
		rec, seen := e.best[key]
		if seen && succG >= rec.g {
			continue
		}
		h := e.h.Estimate(succ)
		e.Stats.Evaluated++
		if h.IsInfinite() {
			e.Stats.Pruned++
			e.best[key] = record{g: succG}
			continue
		}
		if seen && rec.expanded {
			e.Stats.Reopened++
		}
		e.addNode(succ, idx, int32(ai), succG, h)
	}
}

// addNode appends a fresh node to the arena, records its path cost and
// pushes it onto the frontier.
func (e *Engine) addNode(s task.State, parent, action int32, g int, h heuristic.Value) {
	id := int32(len(e.nodes))
	n := node{
		state:  s,
		key:    s.Key(),
		parent: parent,
		action: action,
		g:      g,
		h:      h,
	}
	e.nodes = append(e.nodes, n)
	e.best[n.key] = record{g: g}
	e.open.push(entry{node: id, f: heuristic.Value(g) + h, h: h})
	e.Stats.Generated++
}

// extract walks the parent chain back to the root and returns the plan in
// application order.
func (e *Engine) extract(idx int32) Result {
	var plan []string
	for i := idx; e.nodes[i].parent >= 0; i = e.nodes[i].parent {
		plan = append(plan, e.pb.Actions[e.nodes[i].action].Name)
	}
	for i, j := 0, len(plan)-1; i < j; i, j = i+1, j-1 {
		plan[i], plan[j] = plan[j], plan[i]
	}
	return Result{
		Status: Solved,
		Plan:   plan,
		Cost:   e.nodes[idx].g,
		Stats:  e.Stats,
	}
}

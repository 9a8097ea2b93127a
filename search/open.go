package search

import "github.com/gopherplan/gopherplan/heuristic"

// The open list: a binary heap of frontier entries ordered by f value,
// ties broken by lower h, then by discovery order. Node ids grow in
// discovery order, so the node id doubles as the last tie breaker, which
// makes expansions fully deterministic.

type entry struct {
	node int32
	f    heuristic.Value
	h    heuristic.Value
}

func (e entry) lt(other entry) bool {
	if e.f != other.f {
		return e.f < other.f
	}
	if e.h != other.h {
		return e.h < other.h
	}
	return e.node < other.node
}

type openList []entry

func left(i int) int   { return i*2 + 1 }
func right(i int) int  { return (i + 1) * 2 }
func parent(i int) int { return (i - 1) >> 1 }

func (o *openList) push(e entry) {
	*o = append(*o, e)
	o.percolateUp(len(*o) - 1)
}

func (o *openList) removeMin() entry {
	h := *o
	min := h[0]
	h[0] = h[len(h)-1]
	*o = h[:len(h)-1]
	if len(*o) > 1 {
		o.percolateDown(0)
	}
	return min
}

func (o openList) percolateUp(i int) {
	x := o[i]
	p := parent(i)
	for i != 0 && x.lt(o[p]) {
		o[i] = o[p]
		i = p
		p = parent(p)
	}
	o[i] = x
}

func (o openList) percolateDown(i int) {
	x := o[i]
	for left(i) < len(o) {
		child := left(i)
		if right(i) < len(o) && o[right(i)].lt(o[child]) {
			child = right(i)
		}
		if !o[child].lt(x) {
			break
		}
		o[i] = o[child]
		i = child
	}
	o[i] = x
}

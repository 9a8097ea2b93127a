package task

// Basic types for the STRIPS-like task representation.

import "encoding/binary"

// A Fact is an atomic proposition, identified by a small integer id.
// Ids are dense: a task over n facts uses exactly the ids 0..n-1.
type Fact int32

// A State is the set of facts currently true, kept as a sorted slice.
// A well-formed state holds exactly one fact per variable group, an
// invariant maintained by construction of the actions and never checked
// at runtime.
type State []Fact

// Contains is true iff f is in s.
func (s State) Contains(f Fact) bool {
	lo, hi := 0, len(s)
	for lo < hi {
		mid := lo + (hi-lo)/2
		if s[mid] < f {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo < len(s) && s[lo] == f
}

// ContainsAll is true iff every fact of fs is in s.
// fs must be sorted in ascending order.
func (s State) ContainsAll(fs []Fact) bool {
	i := 0
	for _, f := range fs {
		for i < len(s) && s[i] < f {
			i++
		}
		if i == len(s) || s[i] != f {
			return false
		}
		i++
	}
	return true
}

// Key packs s into a string suitable as a map key.
// Two states are equal iff their keys are equal.
func (s State) Key() string {
	buf := make([]byte, 4*len(s))
	for i, f := range s {
		binary.LittleEndian.PutUint32(buf[4*i:], uint32(f))
	}
	return string(buf)
}

// An Action transforms a state into a new one.
// Pre, Add and Del are sorted in ascending order. Add and Del are disjoint,
// but both may overlap Pre. Cost is never negative.
type Action struct {
	Name string
	Pre  []Fact
	Add  []Fact
	Del  []Fact
	Cost int
}

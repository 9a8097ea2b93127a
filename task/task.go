package task

import "fmt"

// A Task is a full planning problem: the fact universe, the actions, the
// initial state and the goal. It is immutable once built.
type Task struct {
	NbFacts int
	Names   []string // Readable atom for each fact.
	Vars    []int    // Variable group owning each fact.
	Actions []Action
	Init    State
	Goal    []Fact // Sorted. A partial assignment, not a full state.
}

// Applicable is true iff a can be applied in s, i.e. every precondition
// fact of a is in s.
func (t *Task) Applicable(a *Action, s State) bool {
	return s.ContainsAll(a.Pre)
}

// Apply returns the state reached by applying a in s, i.e (s \ a.Del) ∪ a.Add.
// The parent state s is left untouched.
// Apply panics if a is not applicable in s.
func (t *Task) Apply(a *Action, s State) State {
	if !t.Applicable(a, s) {
		panic(fmt.Sprintf("task: action %q applied in a state where it is not applicable", a.Name))
	}
	kept := make(State, 0, len(s)+len(a.Add))
	d := 0
	for _, f := range s {
		for d < len(a.Del) && a.Del[d] < f {
			d++
		}
		if d < len(a.Del) && a.Del[d] == f {
			continue
		}
		kept = append(kept, f)
	}
	res := make(State, 0, len(kept)+len(a.Add))
	i, j := 0, 0
	for i < len(kept) && j < len(a.Add) {
		switch {
		case kept[i] < a.Add[j]:
			res = append(res, kept[i])
			i++
		case kept[i] > a.Add[j]:
			res = append(res, a.Add[j])
			j++
		default:
			res = append(res, kept[i])
			i++
			j++
		}
	}
	res = append(res, kept[i:]...)
	res = append(res, a.Add[j:]...)
	return res
}

// IsGoal is true iff every goal fact is in s.
func (t *Task) IsGoal(s State) bool {
	return s.ContainsAll(t.Goal)
}

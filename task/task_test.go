package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A tiny two-variable task: a robot moving between two places while
// carrying a ball around.
// Facts: 0 robot-at-a, 1 robot-at-b, 2 ball-at-a, 3 ball-at-b, 4 ball-held.
func gripperTask() *Task {
	return &Task{
		NbFacts: 5,
		Names:   []string{"robot-at-a", "robot-at-b", "ball-at-a", "ball-at-b", "ball-held"},
		Vars:    []int{0, 0, 1, 1, 1},
		Actions: []Action{
			{Name: "move-a-b", Pre: []Fact{0}, Add: []Fact{1}, Del: []Fact{0}, Cost: 1},
			{Name: "move-b-a", Pre: []Fact{1}, Add: []Fact{0}, Del: []Fact{1}, Cost: 1},
			{Name: "pick-a", Pre: []Fact{0, 2}, Add: []Fact{4}, Del: []Fact{2}, Cost: 1},
			{Name: "pick-b", Pre: []Fact{1, 3}, Add: []Fact{4}, Del: []Fact{3}, Cost: 1},
			{Name: "drop-a", Pre: []Fact{0, 4}, Add: []Fact{2}, Del: []Fact{4}, Cost: 1},
			{Name: "drop-b", Pre: []Fact{1, 4}, Add: []Fact{3}, Del: []Fact{4}, Cost: 1},
		},
		Init: State{0, 2},
		Goal: []Fact{3},
	}
}

func TestStateContains(t *testing.T) {
	s := State{1, 3, 7}
	for _, f := range []Fact{1, 3, 7} {
		assert.True(t, s.Contains(f), "state should contain %d", f)
	}
	for _, f := range []Fact{0, 2, 4, 8} {
		assert.False(t, s.Contains(f), "state should not contain %d", f)
	}
	assert.False(t, State{}.Contains(0))
}

func TestStateContainsAll(t *testing.T) {
	s := State{1, 3, 7}
	assert.True(t, s.ContainsAll(nil))
	assert.True(t, s.ContainsAll([]Fact{1}))
	assert.True(t, s.ContainsAll([]Fact{1, 7}))
	assert.True(t, s.ContainsAll([]Fact{1, 3, 7}))
	assert.False(t, s.ContainsAll([]Fact{2}))
	assert.False(t, s.ContainsAll([]Fact{1, 2}))
	assert.False(t, s.ContainsAll([]Fact{1, 3, 7, 9}))
	assert.False(t, State{}.ContainsAll([]Fact{0}))
}

func TestStateKey(t *testing.T) {
	assert.Equal(t, State{0, 2}.Key(), State{0, 2}.Key())
	assert.NotEqual(t, State{0, 2}.Key(), State{0, 3}.Key())
	assert.NotEqual(t, State{0}.Key(), State{0, 2}.Key())
}

func TestApplicable(t *testing.T) {
	pb := gripperTask()
	s := State{0, 2}
	assert.True(t, pb.Applicable(&pb.Actions[0], s), "move-a-b")
	assert.False(t, pb.Applicable(&pb.Actions[1], s), "move-b-a")
	assert.True(t, pb.Applicable(&pb.Actions[2], s), "pick-a")
	assert.False(t, pb.Applicable(&pb.Actions[4], s), "drop-a")
}

func TestApply(t *testing.T) {
	pb := gripperTask()
	s := State{0, 2}
	picked := pb.Apply(&pb.Actions[2], s)
	assert.Equal(t, State{0, 4}, picked)
	assert.Equal(t, State{0, 2}, s, "parent state must not be mutated")
	moved := pb.Apply(&pb.Actions[0], picked)
	assert.Equal(t, State{1, 4}, moved)
	dropped := pb.Apply(&pb.Actions[5], moved)
	assert.Equal(t, State{1, 3}, dropped)
	assert.True(t, pb.IsGoal(dropped))
}

func TestApplyPanicsWhenNotApplicable(t *testing.T) {
	pb := gripperTask()
	require.Panics(t, func() {
		pb.Apply(&pb.Actions[1], State{0, 2})
	})
}

func TestIsGoal(t *testing.T) {
	pb := gripperTask()
	assert.False(t, pb.IsGoal(State{0, 2}))
	assert.True(t, pb.IsGoal(State{0, 3}), "goal is a partial assignment")
	assert.True(t, pb.IsGoal(State{1, 3}))
}

func TestIsGoalEmptyGoal(t *testing.T) {
	pb := gripperTask()
	pb.Goal = nil
	assert.True(t, pb.IsGoal(State{0, 2}))
}

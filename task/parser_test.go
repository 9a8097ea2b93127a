package task

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gripperSAS = `begin_version
3
end_version
begin_metric
0
end_metric
2
begin_variable
var0
-1
2
Atom robot-at(a)
Atom robot-at(b)
end_variable
begin_variable
var1
-1
3
Atom ball-at(a)
Atom ball-at(b)
Atom ball-held()
end_variable
1
begin_mutex_group
2
1 0
1 1
end_mutex_group
begin_state
0
0
end_state
begin_goal
1
1 1
end_goal
2
begin_operator
move a b
0
1
0 0 0 1
1
end_operator
begin_operator
pick a
1
0 0
1
0 1 0 2
1
end_operator
0
`

func TestParseSAS(t *testing.T) {
	pb, err := ParseSAS(strings.NewReader(gripperSAS))
	require.NoError(t, err)
	assert.Equal(t, 5, pb.NbFacts)
	assert.Equal(t, []string{"Atom robot-at(a)", "Atom robot-at(b)", "Atom ball-at(a)", "Atom ball-at(b)", "Atom ball-held()"}, pb.Names)
	assert.Equal(t, []int{0, 0, 1, 1, 1}, pb.Vars)
	assert.Equal(t, State{0, 2}, pb.Init)
	assert.Equal(t, []Fact{3}, pb.Goal)
	require.Len(t, pb.Actions, 2)

	move := pb.Actions[0]
	assert.Equal(t, "move a b", move.Name)
	assert.Equal(t, []Fact{0}, move.Pre)
	assert.Equal(t, []Fact{1}, move.Add)
	assert.Equal(t, []Fact{0}, move.Del)
	assert.Equal(t, 1, move.Cost)

	pick := pb.Actions[1]
	assert.Equal(t, "pick a", pick.Name)
	assert.Equal(t, []Fact{0, 2}, pick.Pre)
	assert.Equal(t, []Fact{4}, pick.Add)
	assert.Equal(t, []Fact{2}, pick.Del)
	assert.Equal(t, 1, pick.Cost)
}

func TestParseSASMetric(t *testing.T) {
	costly := strings.Replace(gripperSAS, "begin_metric\n0", "begin_metric\n1", 1)
	costly = strings.Replace(costly, "0 0 0 1\n1", "0 0 0 1\n7", 1)
	pb, err := ParseSAS(strings.NewReader(costly))
	require.NoError(t, err)
	assert.Equal(t, 7, pb.Actions[0].Cost, "metric 1: operator costs are used")
	assert.Equal(t, 1, pb.Actions[1].Cost)

	// With metric 0, every action costs 1, whatever the cost line says.
	uniform := strings.Replace(gripperSAS, "0 0 0 1\n1", "0 0 0 1\n7", 1)
	pb, err = ParseSAS(strings.NewReader(uniform))
	require.NoError(t, err)
	assert.Equal(t, 1, pb.Actions[0].Cost)
}

// An effect with an unknown old value must delete every other fact of the
// variable.
func TestParseSASUnknownPrevalue(t *testing.T) {
	content := strings.Replace(gripperSAS, "0 1 0 2", "0 1 -1 2", 1)
	pb, err := ParseSAS(strings.NewReader(content))
	require.NoError(t, err)
	pick := pb.Actions[1]
	assert.Equal(t, []Fact{0}, pick.Pre)
	assert.Equal(t, []Fact{4}, pick.Add)
	assert.Equal(t, []Fact{2, 3}, pick.Del)
}

func TestParseSASErrors(t *testing.T) {
	tests := []struct {
		name    string
		mangle  func(string) string
		wantMsg string
	}{
		{"truncated", func(s string) string { return s[:len(s)/2] }, ""},
		{"badMarker", func(s string) string { return strings.Replace(s, "begin_state", "begin_states", 1) }, "begin_state"},
		{"derivedVariable", func(s string) string { return strings.Replace(s, "var0\n-1", "var0\n0", 1) }, "axioms are not supported"},
		{"conditionalEffect", func(s string) string { return strings.Replace(s, "0 0 0 1", "1 1 0 0 0 0 1", 1) }, "conditional"},
		{"malformedEffect", func(s string) string { return strings.Replace(s, "0 0 0 1", "0 0 0", 1) }, "malformed effect"},
		{"axiomRules", func(s string) string { return strings.Replace(s, "end_operator\n0\n", "end_operator\n2\n", 1) }, "axioms are not supported"},
		{"goalValueOutOfRange", func(s string) string { return strings.Replace(s, "1 1\nend_goal", "1 9\nend_goal", 1) }, "out of range"},
		{"negativeCost", func(s string) string {
			s = strings.Replace(s, "begin_metric\n0", "begin_metric\n1", 1)
			return strings.Replace(s, "0 0 0 1\n1", "0 0 0 1\n-3", 1)
		}, "negative cost"},
		{"nonIntegerState", func(s string) string { return strings.Replace(s, "begin_state\n0", "begin_state\nzero", 1) }, "integer"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseSAS(strings.NewReader(test.mangle(gripperSAS)))
			require.Error(t, err)
			if test.wantMsg != "" {
				assert.Contains(t, err.Error(), test.wantMsg)
			}
		})
	}
}

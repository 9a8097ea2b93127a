package task

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// sasParser reads a SAS stream line by line.
type sasParser struct {
	sc     *bufio.Scanner
	lineNb int
}

// line returns the next non-empty line, with surrounding blanks trimmed.
func (p *sasParser) line() (string, error) {
	for p.sc.Scan() {
		p.lineNb++
		line := strings.TrimSpace(p.sc.Text())
		if line != "" {
			return line, nil
		}
	}
	if err := p.sc.Err(); err != nil {
		return "", errors.Wrap(err, "could not read SAS stream")
	}
	return "", io.EOF
}

// expect consumes the next line and fails if it is not the given marker.
func (p *sasParser) expect(marker string) error {
	line, err := p.line()
	if err != nil {
		return errors.Wrapf(err, "expected %q", marker)
	}
	if line != marker {
		return errors.Errorf("line %d: expected %q, got %q", p.lineNb, marker, line)
	}
	return nil
}

// intLine consumes the next line, which must hold a single integer.
func (p *sasParser) intLine() (int, error) {
	line, err := p.line()
	if err != nil {
		return 0, err
	}
	val, err := strconv.Atoi(line)
	if err != nil {
		return 0, errors.Errorf("line %d: expected an integer, got %q", p.lineNb, line)
	}
	return val, nil
}

// intFields consumes the next line, which must hold exactly nb integers.
func (p *sasParser) intFields(nb int) ([]int, error) {
	line, err := p.line()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) != nb {
		return nil, errors.Errorf("line %d: expected %d fields, got %q", p.lineNb, nb, line)
	}
	res := make([]int, nb)
	for i, field := range fields {
		if res[i], err = strconv.Atoi(field); err != nil {
			return nil, errors.Errorf("line %d: %q is not an integer", p.lineNb, field)
		}
	}
	return res, nil
}

// effectLine consumes an operator effect line. The line starts with the
// number of effect conditions, followed by three ints per condition, then
// the affected variable, its old value and its new value.
func (p *sasParser) effectLine() ([]int, error) {
	line, err := p.line()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	res := make([]int, len(fields))
	for i, field := range fields {
		if res[i], err = strconv.Atoi(field); err != nil {
			return nil, errors.Errorf("line %d: %q is not an integer", p.lineNb, field)
		}
	}
	if len(res) < 4 || len(res) != 4+3*res[0] {
		return nil, errors.Errorf("line %d: malformed effect %q", p.lineNb, line)
	}
	return res, nil
}

// sasVariable is a multi-valued variable of the source encoding.
type sasVariable struct {
	name   string
	rng    int
	atoms  []string
	offset int // Id of the variable's first fact.
}

// ParseSAS parses a planning task in the Fast Downward SAS output format
// and returns the equivalent STRIPS-like task.
// Conditional effects and axiom rules are not supported and make the parse fail.
func ParseSAS(r io.Reader) (*Task, error) {
	p := &sasParser{sc: bufio.NewScanner(r)}
	p.sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if err := p.expect("begin_version"); err != nil {
		return nil, err
	}
	if _, err := p.intLine(); err != nil {
		return nil, errors.Wrap(err, "invalid version section")
	}
	if err := p.expect("end_version"); err != nil {
		return nil, err
	}
	if err := p.expect("begin_metric"); err != nil {
		return nil, err
	}
	metric, err := p.intLine()
	if err != nil {
		return nil, errors.Wrap(err, "invalid metric section")
	}
	if err := p.expect("end_metric"); err != nil {
		return nil, err
	}
	vars, err := p.parseVariables()
	if err != nil {
		return nil, err
	}
	pb := &Task{}
	for v, sasVar := range vars {
		for val := 0; val < sasVar.rng; val++ {
			pb.Names = append(pb.Names, sasVar.atoms[val])
			pb.Vars = append(pb.Vars, v)
		}
	}
	pb.NbFacts = len(pb.Names)
	if err := p.skipMutexes(); err != nil {
		return nil, err
	}
	if pb.Init, err = p.parseInit(vars); err != nil {
		return nil, err
	}
	if pb.Goal, err = p.parseGoal(vars); err != nil {
		return nil, err
	}
	if pb.Actions, err = p.parseOperators(vars, metric); err != nil {
		return nil, err
	}
	if err := p.checkNoAxioms(); err != nil {
		return nil, err
	}
	return pb, nil
}

func (p *sasParser) parseVariables() ([]sasVariable, error) {
	nbVars, err := p.intLine()
	if err != nil {
		return nil, errors.Wrap(err, "invalid number of variables")
	}
	vars := make([]sasVariable, nbVars)
	offset := 0
	for v := 0; v < nbVars; v++ {
		if err := p.expect("begin_variable"); err != nil {
			return nil, err
		}
		if vars[v].name, err = p.line(); err != nil {
			return nil, errors.Wrapf(err, "invalid variable %d", v)
		}
		layer, err := p.intLine()
		if err != nil {
			return nil, errors.Wrapf(err, "invalid axiom layer for variable %d", v)
		}
		if layer != -1 {
			return nil, errors.Errorf("variable %d is derived (axiom layer %d): axioms are not supported", v, layer)
		}
		if vars[v].rng, err = p.intLine(); err != nil {
			return nil, errors.Wrapf(err, "invalid range for variable %d", v)
		}
		if vars[v].rng < 1 {
			return nil, errors.Errorf("variable %d has invalid range %d", v, vars[v].rng)
		}
		vars[v].atoms = make([]string, vars[v].rng)
		for val := 0; val < vars[v].rng; val++ {
			if vars[v].atoms[val], err = p.line(); err != nil {
				return nil, errors.Wrapf(err, "invalid atom %d of variable %d", val, v)
			}
		}
		if err := p.expect("end_variable"); err != nil {
			return nil, err
		}
		vars[v].offset = offset
		offset += vars[v].rng
	}
	return vars, nil
}

func (p *sasParser) skipMutexes() error {
	nbMutexes, err := p.intLine()
	if err != nil {
		return errors.Wrap(err, "invalid number of mutex groups")
	}
	for i := 0; i < nbMutexes; i++ {
		if err := p.expect("begin_mutex_group"); err != nil {
			return err
		}
		nbFacts, err := p.intLine()
		if err != nil {
			return errors.Wrapf(err, "invalid mutex group %d", i)
		}
		for j := 0; j < nbFacts; j++ {
			if _, err := p.intFields(2); err != nil {
				return errors.Wrapf(err, "invalid mutex group %d", i)
			}
		}
		if err := p.expect("end_mutex_group"); err != nil {
			return err
		}
	}
	return nil
}

// fact maps a (variable, value) pair to its fact id.
func fact(vars []sasVariable, v, val int) (Fact, error) {
	if v < 0 || v >= len(vars) {
		return 0, errors.Errorf("variable index %d out of range", v)
	}
	if val < 0 || val >= vars[v].rng {
		return 0, errors.Errorf("value %d out of range for variable %d", val, v)
	}
	return Fact(vars[v].offset + val), nil
}

func (p *sasParser) parseInit(vars []sasVariable) (State, error) {
	if err := p.expect("begin_state"); err != nil {
		return nil, err
	}
	init := make(State, 0, len(vars))
	for v := range vars {
		val, err := p.intLine()
		if err != nil {
			return nil, errors.Wrap(err, "invalid initial state")
		}
		f, err := fact(vars, v, val)
		if err != nil {
			return nil, errors.Wrap(err, "invalid initial state")
		}
		init = append(init, f)
	}
	if err := p.expect("end_state"); err != nil {
		return nil, err
	}
	return init, nil
}

func (p *sasParser) parseGoal(vars []sasVariable) ([]Fact, error) {
	if err := p.expect("begin_goal"); err != nil {
		return nil, err
	}
	nbGoals, err := p.intLine()
	if err != nil {
		return nil, errors.Wrap(err, "invalid goal section")
	}
	goal := make([]Fact, 0, nbGoals)
	for i := 0; i < nbGoals; i++ {
		pair, err := p.intFields(2)
		if err != nil {
			return nil, errors.Wrap(err, "invalid goal section")
		}
		f, err := fact(vars, pair[0], pair[1])
		if err != nil {
			return nil, errors.Wrap(err, "invalid goal section")
		}
		goal = append(goal, f)
	}
	if err := p.expect("end_goal"); err != nil {
		return nil, err
	}
	sortFacts(goal)
	return dedupFacts(goal), nil
}

func (p *sasParser) parseOperators(vars []sasVariable, metric int) ([]Action, error) {
	nbOps, err := p.intLine()
	if err != nil {
		return nil, errors.Wrap(err, "invalid number of operators")
	}
	actions := make([]Action, 0, nbOps)
	for i := 0; i < nbOps; i++ {
		a, err := p.parseOperator(vars, metric)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid operator %d", i)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

func (p *sasParser) parseOperator(vars []sasVariable, metric int) (Action, error) {
	var a Action
	if err := p.expect("begin_operator"); err != nil {
		return a, err
	}
	name, err := p.line()
	if err != nil {
		return a, err
	}
	a.Name = name
	nbPrevail, err := p.intLine()
	if err != nil {
		return a, err
	}
	for i := 0; i < nbPrevail; i++ {
		pair, err := p.intFields(2)
		if err != nil {
			return a, err
		}
		f, err := fact(vars, pair[0], pair[1])
		if err != nil {
			return a, err
		}
		a.Pre = append(a.Pre, f)
	}
	nbEffects, err := p.intLine()
	if err != nil {
		return a, err
	}
	for i := 0; i < nbEffects; i++ {
		fields, err := p.effectLine()
		if err != nil {
			return a, err
		}
		if fields[0] != 0 {
			return a, errors.Errorf("effect %d of %q is conditional: conditional effects are not supported", i, a.Name)
		}
		v, preVal, postVal := fields[1], fields[2], fields[3]
		post, err := fact(vars, v, postVal)
		if err != nil {
			return a, err
		}
		a.Add = append(a.Add, post)
		if preVal != -1 {
			pre, err := fact(vars, v, preVal)
			if err != nil {
				return a, err
			}
			a.Pre = append(a.Pre, pre)
			if pre != post {
				a.Del = append(a.Del, pre)
			}
		} else {
			// The old value is unknown: any other fact of the variable may
			// have to be deleted.
			for val := 0; val < vars[v].rng; val++ {
				if f := Fact(vars[v].offset + val); f != post {
					a.Del = append(a.Del, f)
				}
			}
		}
	}
	cost, err := p.intLine()
	if err != nil {
		return a, err
	}
	if cost < 0 {
		return a, errors.Errorf("operator %q has negative cost %d", a.Name, cost)
	}
	if metric == 1 {
		a.Cost = cost
	} else {
		a.Cost = 1
	}
	if err := p.expect("end_operator"); err != nil {
		return a, err
	}
	sortFacts(a.Pre)
	a.Pre = dedupFacts(a.Pre)
	sortFacts(a.Add)
	a.Add = dedupFacts(a.Add)
	sortFacts(a.Del)
	a.Del = dedupFacts(a.Del)
	return a, nil
}

// checkNoAxioms reads the trailing axiom section, if any.
// A missing section is accepted, a non-empty one is an error.
func (p *sasParser) checkNoAxioms() error {
	nbAxioms, err := p.intLine()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "invalid axiom section")
	}
	if nbAxioms != 0 {
		return errors.Errorf("task has %d axiom rules: axioms are not supported", nbAxioms)
	}
	return nil
}

func sortFacts(fs []Fact) {
	sort.Slice(fs, func(i, j int) bool { return fs[i] < fs[j] })
}

func dedupFacts(fs []Fact) []Fact {
	if len(fs) < 2 {
		return fs
	}
	res := fs[:1]
	for _, f := range fs[1:] {
		if f != res[len(res)-1] {
			res = append(res, f)
		}
	}
	return res
}

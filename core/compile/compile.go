// Package compile turns a scheduling problem into a mixed-integer linear
// model: per-task start/end variables, slot-selection binaries, the shared
// makespan, precedence and duration links, and one symbolic non-overlap
// disjunction per same-machine task pair. Build emits the symbolic model;
// Compile additionally lowers the disjunctions with the horizon as big-M.
package compile

import (
	"fmt"
	"sort"

	"github.com/rj25031/FCH-pyomo/core/milp"
	"github.com/rj25031/FCH-pyomo/core/model"
)

// SlotVar pairs a feasible start offset with its selection binary.
type SlotVar struct {
	Offset int
	Var    milp.VarID
}

// Variables maps problem entities to their model variables so the solver's
// raw value vector can be read back by task.
type Variables struct {
	Start    map[model.TaskKey]milp.VarID
	End      map[model.TaskKey]milp.VarID
	Slots    map[model.TaskKey][]SlotVar
	Makespan milp.VarID
}

// Build compiles the problem into a model whose non-overlap constraints are
// still symbolic disjunctions. Variable and constraint order is a pure
// function of the problem, so rebuilding from the same input yields a
// structurally identical model.
func Build(p *model.Problem) (*milp.Model, *Variables, error) {
	m := milp.NewModel()
	vars := newVariables(p, m)

	durationConstraints(p, m, vars)
	precedenceConstraints(p, m, vars)
	if err := slotConstraints(p, m, vars); err != nil {
		return nil, nil, err
	}
	makespanConstraints(p, m, vars)
	overlapDisjunctions(p, m, vars)

	m.Minimize(milp.NewLinearExpr().Add(vars.Makespan))
	return m, vars, nil
}

// Compile builds the model and lowers its disjunctions with BigM(p).
func Compile(p *model.Problem) (*milp.Model, *Variables, error) {
	m, vars, err := Build(p)
	if err != nil {
		return nil, nil, err
	}
	if err := milp.ApplyBigM(m, BigM(p)); err != nil {
		return nil, nil, err
	}
	return m, vars, nil
}

// BigM returns the horizon length. Every start/end variable is clipped to
// [0, horizon], so no pairwise difference can exceed it.
func BigM(p *model.Problem) float64 { return float64(p.HorizonMinutes()) }

func newVariables(p *model.Problem, m *milp.Model) *Variables {
	horizon := float64(p.HorizonMinutes())
	vars := &Variables{
		Start: make(map[model.TaskKey]milp.VarID, len(p.Tasks)),
		End:   make(map[model.TaskKey]milp.VarID, len(p.Tasks)),
		Slots: make(map[model.TaskKey][]SlotVar, len(p.Tasks)),
	}
	for _, t := range p.Tasks {
		vars.Start[t.Key] = m.NewContinuousVar("start["+t.Key.String()+"]", 0, horizon)
		vars.End[t.Key] = m.NewContinuousVar("end["+t.Key.String()+"]", 0, horizon)
		slots := make([]SlotVar, 0, len(t.Slots))
		for _, offset := range t.Slots {
			v := m.NewBinaryVar(fmt.Sprintf("at[%s@%d]", t.Key, offset))
			slots = append(slots, SlotVar{Offset: offset, Var: v})
		}
		vars.Slots[t.Key] = slots
	}
	vars.Makespan = m.NewContinuousVar("makespan", 0, horizon)
	return vars
}

// durationConstraints links end = start + duration for every task.
func durationConstraints(p *model.Problem, m *milp.Model, vars *Variables) {
	for _, t := range p.Tasks {
		e := milp.NewLinearExpr().Add(vars.End[t.Key]).Sub(vars.Start[t.Key])
		m.AddEquality("duration["+t.Key.String()+"]", e, float64(t.Duration))
	}
}

// precedenceConstraints asserts start >= predecessor end for chained tasks.
// Chain heads get nothing here.
func precedenceConstraints(p *model.Problem, m *milp.Model, vars *Variables) {
	for _, t := range p.Tasks {
		if t.Predecessor == nil {
			continue
		}
		e := milp.NewLinearExpr().Add(vars.Start[t.Key]).Sub(vars.End[*t.Predecessor])
		m.AddGreaterOrEqual("precedence["+t.Key.String()+"]", e, 0)
	}
}

// slotConstraints forces each task onto exactly one feasible calendar tick:
// the indicators sum to one and start equals the chosen offset. Keeping
// start continuous lets every other constraint use it directly.
func slotConstraints(p *model.Problem, m *milp.Model, vars *Variables) error {
	for _, t := range p.Tasks {
		slots := vars.Slots[t.Key]
		if len(slots) == 0 {
			return fmt.Errorf("task %q has no slot variables: %w", t.Key, model.ErrInfeasibleInput)
		}
		one := milp.NewLinearExpr()
		link := milp.NewLinearExpr().Add(vars.Start[t.Key])
		for _, s := range slots {
			one.Add(s.Var)
			link.AddTerm(s.Var, -float64(s.Offset))
		}
		m.AddEquality("oneSlot["+t.Key.String()+"]", one, 1)
		m.AddEquality("startSlot["+t.Key.String()+"]", link, 0)
	}
	return nil
}

// makespanConstraints bounds the shared makespan below by every task's end.
func makespanConstraints(p *model.Problem, m *milp.Model, vars *Variables) {
	for _, t := range p.Tasks {
		e := milp.NewLinearExpr().Add(vars.Makespan).Sub(vars.End[t.Key])
		m.AddGreaterOrEqual("makespan["+t.Key.String()+"]", e, 0)
	}
}

// overlapDisjunctions emits one symbolic ordering disjunction per unordered
// pair of distinct tasks sharing a machine. Pairs are enumerated in
// lexicographic (job, task) order so each pair appears exactly once and the
// model is reproducible.
func overlapDisjunctions(p *model.Problem, m *milp.Model, vars *Variables) {
	keys := make([]model.TaskKey, len(p.Tasks))
	for i, t := range p.Tasks {
		keys[i] = t.Key
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			first, _ := p.TaskByKey(keys[i])
			second, _ := p.TaskByKey(keys[j])
			if first.Machine != second.Machine {
				continue
			}
			name := fmt.Sprintf("noOverlap[%s|%s]", first.Key, second.Key)
			m.AddDisjunction(milp.Disjunction{
				Name: name,
				A: []milp.Constraint{{
					Name:  name + "/firstBefore",
					Expr:  *milp.NewLinearExpr().Add(vars.Start[second.Key]).Sub(vars.End[first.Key]),
					Sense: milp.GreaterOrEqual,
					RHS:   0,
				}},
				B: []milp.Constraint{{
					Name:  name + "/secondBefore",
					Expr:  *milp.NewLinearExpr().Add(vars.Start[first.Key]).Sub(vars.End[second.Key]),
					Sense: milp.GreaterOrEqual,
					RHS:   0,
				}},
			})
		}
	}
}

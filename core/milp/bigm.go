package milp

import (
	"errors"
	"fmt"
	"math"
)

// ErrBigMTooSmall reports a big-M constant that cannot absorb the widest
// variable range in the model; lowering with it would silently cut off
// feasible solutions.
var ErrBigMTooSmall = errors.New("big-M constant smaller than a variable range")

// ErrEqualityInDisjunction reports an equality constraint inside a
// disjunction branch. Relaxing one would need two rows per constraint; the
// scheduling encoding never produces it.
var ErrEqualityInDisjunction = errors.New("equality constraint inside a disjunction branch")

// ApplyBigM lowers every symbolic disjunction into linear form. Each
// disjunction gets one fresh binary y: branch A's constraints are enforced
// when y=1 and relaxed by M when y=0, branch B the other way around, so
// exactly one branch always binds. Disjunctions are lowered in insertion
// order and removed from the model; running on a model without disjunctions
// is a no-op. Branches may only hold inequality constraints; an equality
// fails the whole pass before anything is lowered.
func ApplyBigM(m *Model, bigM float64) error {
	if math.IsInf(bigM, 0) || bigM <= 0 {
		return fmt.Errorf("big-M must be a positive finite constant, got %v: %w", bigM, ErrBigMTooSmall)
	}
	for _, v := range m.vars {
		if v.UB-v.LB > bigM {
			return fmt.Errorf("variable %s has range [%v,%v] wider than M=%v: %w",
				v.Name, v.LB, v.UB, bigM, ErrBigMTooSmall)
		}
	}

	for _, d := range m.disjunctions {
		for _, branch := range [2][]Constraint{d.A, d.B} {
			for _, c := range branch {
				if c.Sense == Equal {
					return fmt.Errorf("disjunction %s constraint %s: %w", d.Name, c.Name, ErrEqualityInDisjunction)
				}
			}
		}
	}

	disjunctions := m.disjunctions
	m.disjunctions = nil
	for _, d := range disjunctions {
		y := m.NewBinaryVar(d.Name + "/order")
		for i, c := range d.A {
			m.constraints = append(m.constraints, relax(c, fmt.Sprintf("%s/a%d", d.Name, i), y, bigM, true))
		}
		for i, c := range d.B {
			m.constraints = append(m.constraints, relax(c, fmt.Sprintf("%s/b%d", d.Name, i), y, bigM, false))
		}
	}
	return nil
}

// relax rewrites one branch constraint so it binds when the indicator takes
// the branch's value and is slack by M otherwise. activeHigh marks branches
// enforced at y=1.
func relax(c Constraint, name string, y VarID, bigM float64, activeHigh bool) Constraint {
	out := Constraint{Name: name, Sense: c.Sense, RHS: c.RHS}
	expr := c.Expr.Clone()
	switch {
	case c.Sense == GreaterOrEqual && activeHigh:
		// e >= rhs - M(1-y)
		expr.AddTerm(y, -bigM)
		out.RHS = c.RHS - bigM
	case c.Sense == GreaterOrEqual && !activeHigh:
		// e >= rhs - M*y
		expr.AddTerm(y, bigM)
	case c.Sense == LessOrEqual && activeHigh:
		// e <= rhs + M(1-y)
		expr.AddTerm(y, bigM)
		out.RHS = c.RHS + bigM
	default:
		// e <= rhs + M*y
		expr.AddTerm(y, -bigM)
	}
	out.Expr = *expr
	return out
}

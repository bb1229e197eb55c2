// Package solver defines the boundary to the numeric solving engine. The
// compiler hands a fully lowered model across this interface and reads back
// one value per variable; everything about how the numbers are found lives
// behind it.
package solver

import (
	"context"
	"errors"

	"github.com/rj25031/FCH-pyomo/core/milp"
)

// Status classifies a solve outcome.
type Status int

const (
	StatusOptimal Status = iota
	StatusFeasible
	StatusInfeasible
	StatusUnbounded
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Solved reports whether variable values may be read from a solution with
// this status. Anything else is terminal: no partial reporting, no retry.
func (s Status) Solved() bool { return s == StatusOptimal || s == StatusFeasible }

// ErrNoSolution is wrapped by adapters when the model admits no feasible
// assignment.
var ErrNoSolution = errors.New("no feasible solution")

// Solution carries the solve outcome. Values is indexed by milp.VarID and is
// only populated when Status.Solved().
type Solution struct {
	Status    Status
	Objective float64
	Values    []float64
}

// Value returns the solved value of one variable.
func (s Solution) Value(id milp.VarID) float64 { return s.Values[id] }

// Solver is implemented by concrete engines. Solve blocks until the model is
// solved, proven infeasible/unbounded, or ctx is done. The model must carry
// no symbolic disjunctions; lower them with milp.ApplyBigM first.
type Solver interface {
	Solve(ctx context.Context, m *milp.Model) (Solution, error)
}

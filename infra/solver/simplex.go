// Package solver provides the built-in solving engine: branch-and-bound over
// gonum's dense simplex. It implements the core solver interface and can be
// swapped for any other engine behind it.
package solver

import (
	"context"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/rj25031/FCH-pyomo/core/logger"
	"github.com/rj25031/FCH-pyomo/core/milp"
	coresolver "github.com/rj25031/FCH-pyomo/core/solver"
)

// simplexSolve points to the LP routine. Tests override it to simulate
// solver failures.
var simplexSolve = lp.Simplex

// ErrNodeLimit is returned when branch-and-bound exhausts its node budget
// before finding any integer-feasible solution.
var ErrNodeLimit = errors.New("node limit reached without a solution")

// SimplexSolver solves mixed binary/continuous models by branch-and-bound:
// each node relaxes the binaries to [0,1], solves the relaxation with
// lp.Simplex, and branches on the most fractional binary.
type SimplexSolver struct {
	// Tol is the simplex convergence tolerance.
	Tol float64
	// IntTol is the distance from an integer below which a binary counts
	// as integral.
	IntTol float64
	// MaxNodes caps the search; 0 means the default.
	MaxNodes int

	log logger.Logger
}

const defaultMaxNodes = 200000

// New returns a solver with the default tolerances.
func New(log logger.Logger) *SimplexSolver {
	return &SimplexSolver{Tol: 1e-7, IntTol: 1e-6, MaxNodes: defaultMaxNodes, log: log}
}

type node struct {
	lb, ub []float64
}

// Solve implements core/solver.Solver.
func (s *SimplexSolver) Solve(ctx context.Context, m *milp.Model) (coresolver.Solution, error) {
	if len(m.Disjunctions()) > 0 {
		return coresolver.Solution{Status: coresolver.StatusError},
			errors.New("model still carries symbolic disjunctions; lower them with milp.ApplyBigM first")
	}
	vars := m.Vars()
	if len(vars) == 0 {
		return coresolver.Solution{Status: coresolver.StatusError}, errors.New("model has no variables")
	}

	maxNodes := s.MaxNodes
	if maxNodes <= 0 {
		maxNodes = defaultMaxNodes
	}

	base := newLinearSystem(m)
	root := node{lb: make([]float64, len(vars)), ub: make([]float64, len(vars))}
	for i, v := range vars {
		root.lb[i] = v.LB
		root.ub[i] = v.UB
	}

	var (
		best     = math.Inf(1)
		bestX    []float64
		explored int
		stack    = []node{root}
	)
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return coresolver.Solution{Status: coresolver.StatusError}, err
		}
		if explored >= maxNodes {
			if bestX != nil {
				// Incumbent without proof of optimality.
				return coresolver.Solution{Status: coresolver.StatusFeasible, Objective: best, Values: bestX}, nil
			}
			return coresolver.Solution{Status: coresolver.StatusError}, ErrNodeLimit
		}
		explored++

		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, obj, err := base.solveRelaxation(n, s.Tol)
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			if explored == 1 && bestX == nil {
				// Root relaxation infeasible: the model itself is.
				return coresolver.Solution{Status: coresolver.StatusInfeasible},
					fmt.Errorf("root relaxation: %w", coresolver.ErrNoSolution)
			}
			continue
		case errors.Is(err, lp.ErrUnbounded):
			if explored == 1 {
				return coresolver.Solution{Status: coresolver.StatusUnbounded},
					errors.New("root relaxation unbounded")
			}
			continue
		case err != nil:
			return coresolver.Solution{Status: coresolver.StatusError}, fmt.Errorf("simplex: %w", err)
		}

		if obj >= best-1e-9 {
			continue
		}

		branch := s.pickFractional(m, x)
		if branch < 0 {
			// Integer feasible: keep as incumbent.
			rounded := make([]float64, len(x))
			copy(rounded, x)
			for _, v := range vars {
				if v.Kind == milp.Binary {
					rounded[v.ID] = math.Round(rounded[v.ID])
				}
			}
			best = m.Objective().Evaluate(rounded)
			bestX = rounded
			if s.log != nil {
				s.log.Debugf("incumbent %.1f after %d nodes", best, explored)
			}
			continue
		}

		up := node{lb: append([]float64(nil), n.lb...), ub: append([]float64(nil), n.ub...)}
		up.lb[branch] = 1
		down := node{lb: append([]float64(nil), n.lb...), ub: append([]float64(nil), n.ub...)}
		down.ub[branch] = 0
		// Down branch on top so it is explored first.
		stack = append(stack, up, down)
	}

	if bestX == nil {
		return coresolver.Solution{Status: coresolver.StatusInfeasible}, coresolver.ErrNoSolution
	}
	if s.log != nil {
		s.log.Infof("optimal %.1f after %d nodes", best, explored)
	}
	return coresolver.Solution{Status: coresolver.StatusOptimal, Objective: best, Values: bestX}, nil
}

// pickFractional returns the index of the binary farthest from an integer,
// or -1 when all binaries are integral within IntTol.
func (s *SimplexSolver) pickFractional(m *milp.Model, x []float64) int {
	bestIdx := -1
	bestDist := s.IntTol
	for _, v := range m.Vars() {
		if v.Kind != milp.Binary {
			continue
		}
		frac := x[v.ID] - math.Floor(x[v.ID])
		dist := math.Min(frac, 1-frac)
		if dist > bestDist {
			bestDist = dist
			bestIdx = int(v.ID)
		}
	}
	return bestIdx
}

// linearSystem holds the model rows that never change between nodes; bound
// rows are appended per node.
type linearSystem struct {
	n    int
	c    []float64
	off  float64
	ineq [][]float64 // rows of G, sense <=
	h    []float64
	eq   [][]float64 // rows of A
	b    []float64
}

func newLinearSystem(m *milp.Model) *linearSystem {
	n := len(m.Vars())
	sys := &linearSystem{n: n, c: make([]float64, n), off: m.Objective().Offset()}
	for _, t := range m.Objective().Terms() {
		sys.c[t.Var] += t.Coeff
	}
	for _, ct := range m.Constraints() {
		row := make([]float64, n)
		for _, t := range ct.Expr.Terms() {
			row[t.Var] += t.Coeff
		}
		rhs := ct.RHS - ct.Expr.Offset()
		switch ct.Sense {
		case milp.Equal:
			sys.eq = append(sys.eq, row)
			sys.b = append(sys.b, rhs)
		case milp.LessOrEqual:
			sys.ineq = append(sys.ineq, row)
			sys.h = append(sys.h, rhs)
		case milp.GreaterOrEqual:
			neg := make([]float64, n)
			for i, v := range row {
				neg[i] = -v
			}
			sys.ineq = append(sys.ineq, neg)
			sys.h = append(sys.h, -rhs)
		}
	}
	return sys
}

// solveRelaxation solves the LP relaxation under the node's bounds and maps
// the standard-form solution back onto the model's variables.
func (sys *linearSystem) solveRelaxation(nd node, tol float64) ([]float64, float64, error) {
	rows := append([][]float64(nil), sys.ineq...)
	h := append([]float64(nil), sys.h...)
	for i := 0; i < sys.n; i++ {
		if !math.IsInf(nd.ub[i], 1) {
			row := make([]float64, sys.n)
			row[i] = 1
			rows = append(rows, row)
			h = append(h, nd.ub[i])
		}
		if !math.IsInf(nd.lb[i], -1) {
			row := make([]float64, sys.n)
			row[i] = -1
			rows = append(rows, row)
			h = append(h, -nd.lb[i])
		}
	}
	var g mat.Matrix
	if len(rows) > 0 {
		dense := mat.NewDense(len(rows), sys.n, nil)
		for r, row := range rows {
			dense.SetRow(r, row)
		}
		g = dense
	} else {
		h = nil
	}

	var a mat.Matrix
	var b []float64
	if len(sys.eq) > 0 {
		dense := mat.NewDense(len(sys.eq), sys.n, nil)
		for r, row := range sys.eq {
			dense.SetRow(r, row)
		}
		a = dense
		b = sys.b
	}

	cStd, aStd, bStd := lp.Convert(sys.c, g, h, a, b)
	_, xStd, err := simplexSolve(cStd, aStd, bStd, tol, nil)
	if err != nil {
		return nil, 0, err
	}

	// Convert splits each free variable x into x = xp - xm with the xp
	// block first, so the original values are xStd[i] - xStd[n+i].
	x := make([]float64, sys.n)
	obj := sys.off
	for i := range x {
		x[i] = xStd[i] - xStd[sys.n+i]
		obj += sys.c[i] * x[i]
	}
	return x, obj, nil
}

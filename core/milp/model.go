package milp

import "fmt"

// VarKind distinguishes continuous from binary decision variables.
type VarKind int

const (
	Continuous VarKind = iota
	Binary
)

// Var is one decision variable with its bounds.
type Var struct {
	ID   VarID
	Name string
	Kind VarKind
	LB   float64
	UB   float64
}

// Model is an append-only collection of variables, linear constraints and
// symbolic disjunctions, with a single minimization objective.
type Model struct {
	vars         []Var
	constraints  []Constraint
	disjunctions []Disjunction
	objective    LinearExpr
}

// NewModel returns an empty model.
func NewModel() *Model { return &Model{} }

// NewContinuousVar adds a continuous variable bounded to [lb, ub].
func (m *Model) NewContinuousVar(name string, lb, ub float64) VarID {
	id := VarID(len(m.vars))
	m.vars = append(m.vars, Var{ID: id, Name: name, Kind: Continuous, LB: lb, UB: ub})
	return id
}

// NewBinaryVar adds a {0,1} variable.
func (m *Model) NewBinaryVar(name string) VarID {
	id := VarID(len(m.vars))
	m.vars = append(m.vars, Var{ID: id, Name: name, Kind: Binary, LB: 0, UB: 1})
	return id
}

func (m *Model) add(name string, e *LinearExpr, s Sense, rhs float64) {
	m.constraints = append(m.constraints, Constraint{
		Name:  name,
		Expr:  LinearExpr{terms: e.Clone().terms},
		Sense: s,
		RHS:   rhs - e.Offset(),
	})
}

// AddEquality asserts e = rhs.
func (m *Model) AddEquality(name string, e *LinearExpr, rhs float64) {
	m.add(name, e, Equal, rhs)
}

// AddLessOrEqual asserts e <= rhs.
func (m *Model) AddLessOrEqual(name string, e *LinearExpr, rhs float64) {
	m.add(name, e, LessOrEqual, rhs)
}

// AddGreaterOrEqual asserts e >= rhs.
func (m *Model) AddGreaterOrEqual(name string, e *LinearExpr, rhs float64) {
	m.add(name, e, GreaterOrEqual, rhs)
}

// AddDisjunction records a symbolic either/or constraint. It contributes
// nothing to the linear system until ApplyBigM runs.
func (m *Model) AddDisjunction(d Disjunction) {
	m.disjunctions = append(m.disjunctions, d)
}

// Minimize sets the objective.
func (m *Model) Minimize(e *LinearExpr) {
	m.objective = *e.Clone()
}

// Vars returns the model's variables in creation order.
func (m *Model) Vars() []Var { return m.vars }

// Constraints returns the linear constraints in creation order.
func (m *Model) Constraints() []Constraint { return m.constraints }

// Disjunctions returns the symbolic disjunctions not yet lowered.
func (m *Model) Disjunctions() []Disjunction { return m.disjunctions }

// Objective returns the minimization objective.
func (m *Model) Objective() LinearExpr { return m.objective }

// NumBinaries counts the binary variables.
func (m *Model) NumBinaries() int {
	n := 0
	for _, v := range m.vars {
		if v.Kind == Binary {
			n++
		}
	}
	return n
}

// Stats summarizes the model size for logs and metrics.
func (m *Model) Stats() string {
	return fmt.Sprintf("%d vars (%d binary), %d constraints, %d disjunctions",
		len(m.vars), m.NumBinaries(), len(m.constraints), len(m.disjunctions))
}

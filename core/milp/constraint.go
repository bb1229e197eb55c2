package milp

// Sense is the relation of a constraint's expression to its right-hand side.
type Sense int

const (
	LessOrEqual Sense = iota
	GreaterOrEqual
	Equal
)

func (s Sense) String() string {
	switch s {
	case LessOrEqual:
		return "<="
	case GreaterOrEqual:
		return ">="
	case Equal:
		return "="
	default:
		return "?"
	}
}

// Constraint asserts Expr Sense RHS. The expression's constant offset is
// folded into the right-hand side when the constraint is added to a model.
type Constraint struct {
	Name  string
	Expr  LinearExpr
	Sense Sense
	RHS   float64
}

// Satisfied reports whether the assignment honors the constraint within tol.
func (c Constraint) Satisfied(values []float64, tol float64) bool {
	v := c.Expr.Evaluate(values)
	switch c.Sense {
	case LessOrEqual:
		return v <= c.RHS+tol
	case GreaterOrEqual:
		return v >= c.RHS-tol
	default:
		return v >= c.RHS-tol && v <= c.RHS+tol
	}
}

// Disjunction is a symbolic either/or: at least one branch's constraints must
// all hold. It stays symbolic in the model until ApplyBigM lowers it; keeping
// the two stages apart lets the lowering be tested on its own.
type Disjunction struct {
	Name string
	A, B []Constraint
}

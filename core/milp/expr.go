// Package milp holds the linear-model building blocks: variables, linear
// expressions, {<=, >=, =} constraints and symbolic two-branch disjunctions,
// plus the big-M pass that lowers disjunctions to plain linear constraints.
// The builder is deterministic: identical call sequences produce identical
// models, index for index.
package milp

// VarID indexes a variable in its Model.
type VarID int

// Term is one coefficient*variable product of a linear expression.
type Term struct {
	Var   VarID
	Coeff float64
}

// LinearExpr is a sum of terms plus a constant offset.
type LinearExpr struct {
	terms  []Term
	offset float64
}

// NewLinearExpr returns an empty expression.
func NewLinearExpr() *LinearExpr { return &LinearExpr{} }

// Add appends the variable with coefficient 1 and returns the expression.
func (e *LinearExpr) Add(v VarID) *LinearExpr { return e.AddTerm(v, 1) }

// Sub appends the variable with coefficient -1 and returns the expression.
func (e *LinearExpr) Sub(v VarID) *LinearExpr { return e.AddTerm(v, -1) }

// AddTerm appends coeff*v and returns the expression.
func (e *LinearExpr) AddTerm(v VarID, coeff float64) *LinearExpr {
	e.terms = append(e.terms, Term{Var: v, Coeff: coeff})
	return e
}

// AddConstant adds c to the offset and returns the expression.
func (e *LinearExpr) AddConstant(c float64) *LinearExpr {
	e.offset += c
	return e
}

// Terms returns the expression's terms in insertion order. The read-only
// accessors take value receivers so they work on expressions returned by
// value, such as Model.Objective.
func (e LinearExpr) Terms() []Term { return e.terms }

// Offset returns the constant part.
func (e LinearExpr) Offset() float64 { return e.offset }

// Clone returns an independent copy.
func (e LinearExpr) Clone() *LinearExpr {
	cp := &LinearExpr{terms: make([]Term, len(e.terms)), offset: e.offset}
	copy(cp.terms, e.terms)
	return cp
}

// Evaluate computes the expression's value under the given assignment,
// indexed by VarID.
func (e LinearExpr) Evaluate(values []float64) float64 {
	v := e.offset
	for _, t := range e.terms {
		v += t.Coeff * values[t.Var]
	}
	return v
}

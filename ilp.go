package rectfit

import "context"

// ConstraintOp is the relational operator of one linear constraint.
type ConstraintOp uint8

const (
	// LessOrEqual encodes "<=".
	LessOrEqual ConstraintOp = iota
	// Equal encodes "=".
	Equal
	// GreaterOrEqual encodes ">=".
	GreaterOrEqual
)

// ILPVar is an opaque handle to a variable declared on an ILPBackend. Its
// only use is to be passed back into LinearTerm and Value; backends are
// free to implement it however suits their underlying solver.
type ILPVar interface{}

// LinearTerm is one coefficient*variable addend of a linear expression.
type LinearTerm struct {
	Var   ILPVar
	Coeff float64
}

// ILPBackend is the narrow interface the ILP engine consumes from an
// external mixed-integer solver (spec §6). The engine never imports a
// concrete solver package directly; it is built and unit tested entirely
// against this interface, and any backend implementing it is substitutable.
type ILPBackend interface {
	// NewIntVar declares an integer variable bounded by [lb, ub].
	NewIntVar(lb, ub int) ILPVar
	// NewBinaryVar declares a variable constrained to {0, 1}.
	NewBinaryVar() ILPVar
	// AddConstraint adds sum(terms) op rhs to the model.
	AddConstraint(terms []LinearTerm, op ConstraintOp, rhs float64)
	// Solve runs a feasibility/MIP optimize and reports whether a primal
	// solution exists. A non-nil error means the backend itself failed to
	// initialize or run, distinct from a feasible=false result.
	Solve(ctx context.Context) (feasible bool, err error)
	// Value reads back the solved value of v, already rounded to the
	// nearest integer. Solve must have returned feasible=true, nil first.
	Value(v ILPVar) int
}

// ilpModel builds the feasibility model described in spec §4.4 against an
// ILPBackend, without depending on any particular solver implementation.
type ilpModel struct {
	engineBase
	pieces  []Piece
	backend ILPBackend
}

func newILPEngine(h, w int, pieces []Piece, allowRotation bool, backend ILPBackend, progress Progress) *ilpModel {
	return &ilpModel{
		engineBase: engineBase{h: h, w: w, allowRotation: allowRotation, progress: progress},
		pieces:     pieces,
		backend:    backend,
	}
}

// varSet holds the decision variables for one piece.
type varSet struct {
	px, py ILPVar
	sx, sy ILPVar // only used with rotation
	o      ILPVar // only used with rotation; 0 otherwise
}

func (e *ilpModel) solve(ctx context.Context) (bool, []Placement, error) {
	if e.backend == nil {
		return false, nil, fatalf(ErrSolverUnavailable, "no ILP backend configured")
	}

	n := len(e.pieces)
	vars := make([]varSet, n)
	bigM := max(e.h, e.w)

	for i, p := range e.pieces {
		vars[i].px = e.backend.NewIntVar(0, e.w-1)
		vars[i].py = e.backend.NewIntVar(0, e.h-1)

		if e.allowRotation {
			vars[i].sx = e.backend.NewIntVar(p.MinSide(), p.MaxSide())
			vars[i].sy = e.backend.NewIntVar(p.MinSide(), p.MaxSide())
			vars[i].o = e.backend.NewBinaryVar()
			// sx = h + (w-h)*o
			e.backend.AddConstraint([]LinearTerm{
				{Var: vars[i].sx, Coeff: 1},
				{Var: vars[i].o, Coeff: -float64(p.Width - p.Height)},
			}, Equal, float64(p.Height))
			// sy = w + (h-w)*o
			e.backend.AddConstraint([]LinearTerm{
				{Var: vars[i].sy, Coeff: 1},
				{Var: vars[i].o, Coeff: -float64(p.Height - p.Width)},
			}, Equal, float64(p.Width))

			e.backend.AddConstraint([]LinearTerm{{Var: vars[i].px, Coeff: 1}, {Var: vars[i].sx, Coeff: 1}}, LessOrEqual, float64(e.w))
			e.backend.AddConstraint([]LinearTerm{{Var: vars[i].py, Coeff: 1}, {Var: vars[i].sy, Coeff: 1}}, LessOrEqual, float64(e.h))
		} else {
			e.backend.AddConstraint([]LinearTerm{{Var: vars[i].px, Coeff: 1}}, LessOrEqual, float64(e.w-p.Width))
			e.backend.AddConstraint([]LinearTerm{{Var: vars[i].py, Coeff: 1}}, LessOrEqual, float64(e.h-p.Height))
		}
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			e.addDisjunction(vars, i, j, bigM)
		}
	}

	e.tick(1)
	feasible, err := e.backend.Solve(ctx)
	e.tick(1)
	if err != nil {
		return false, nil, fatalf(ErrSolverUnavailable, "%v", err)
	}
	if !feasible {
		return false, nil, nil
	}

	placements := make([]Placement, n)
	for i, p := range e.pieces {
		sz := p.Size
		rotated := false
		if e.allowRotation {
			sz = Size{Width: e.backend.Value(vars[i].sx), Height: e.backend.Value(vars[i].sy)}
			rotated = sz != p.Size
		}
		placements[i] = Placement{
			PieceIndex: p.Index,
			Rect: Rect{
				Row:     e.backend.Value(vars[i].py) + 1,
				Col:     e.backend.Value(vars[i].px) + 1,
				Size:    sz,
				Rotated: rotated,
			},
		}
	}
	return true, placements, nil
}

// addDisjunction encodes the four-way non-overlap disjunction of spec §4.4
// between pieces i and j using big-M selectors.
func (e *ilpModel) addDisjunction(vars []varSet, i, j, bigM int) {
	wi, hi := e.extent(vars[i], e.pieces[i])
	wj, hj := e.extent(vars[j], e.pieces[j])

	left := e.backend.NewBinaryVar()
	right := e.backend.NewBinaryVar()
	below := e.backend.NewBinaryVar()
	above := e.backend.NewBinaryVar()

	// With M = bigM = max(H, W):
	// px[i] - px[j] + w_i <= M*(1 - left)  =>  px[i] - px[j] + M*left <= M - w_i
	e.addBigM(vars[i].px, vars[j].px, wi, left, bigM)
	e.addBigM(vars[j].px, vars[i].px, wj, right, bigM)
	e.addBigM(vars[i].py, vars[j].py, hi, below, bigM)
	e.addBigM(vars[j].py, vars[i].py, hj, above, bigM)

	e.backend.AddConstraint([]LinearTerm{
		{Var: left, Coeff: 1}, {Var: right, Coeff: 1}, {Var: below, Coeff: 1}, {Var: above, Coeff: 1},
	}, GreaterOrEqual, 1)
}

// extent returns the LinearTerm-able width/height a piece occupies: either
// its fixed size, or its rotation-dependent sx/sy variable.
func (e *ilpModel) extent(v varSet, p Piece) (width, height LinearTerm) {
	if e.allowRotation {
		return LinearTerm{Var: v.sx, Coeff: 1}, LinearTerm{Var: v.sy, Coeff: 1}
	}
	return LinearTerm{Coeff: float64(p.Width)}, LinearTerm{Coeff: float64(p.Height)}
}

// addBigM adds: posA - posB + extent <= bigM*(1-selector), as
// posA - posB + bigM*selector <= bigM - extentConstant, with extent
// contributed as either a constant (no rotation) or a variable term
// (rotation), folded appropriately into the left-hand side.
func (e *ilpModel) addBigM(posA, posB ILPVar, extent LinearTerm, selector ILPVar, bigM int) {
	terms := []LinearTerm{
		{Var: posA, Coeff: 1},
		{Var: posB, Coeff: -1},
		{Var: selector, Coeff: float64(bigM)},
	}
	rhs := float64(bigM)
	if extent.Var != nil {
		terms = append(terms, LinearTerm{Var: extent.Var, Coeff: 1})
	} else {
		rhs -= extent.Coeff
	}
	e.backend.AddConstraint(terms, LessOrEqual, rhs)
}

// vim: ts=4

// Package cpsatbackend adapts Google's CP-SAT solver to the rectfit
// package's ILPBackend interface, grounded on the modeling idioms in
// or-tools' own cpmodel examples (NewCpModelBuilder, NewIntVar/NewBoolVar,
// AddLessOrEqual/AddEquality/AddGreaterOrEqual, SolveCpModel).
package cpsatbackend

import (
	"context"
	"fmt"
	"math"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"

	"github.com/colinmarc/rectfit"
)

// cpVar holds either an IntVar or a BoolVar; CP-SAT reads solution values
// back through type-specific functions, so the two are kept distinguishable
// even though both satisfy cpmodel.LinearArgument for model building.
type cpVar struct {
	isBool bool
	iv     cpmodel.IntVar
	bv     cpmodel.BoolVar
}

func (v cpVar) arg() cpmodel.LinearArgument {
	if v.isBool {
		return v.bv
	}
	return v.iv
}

// Backend implements rectfit.ILPBackend against a single CP-SAT model. A
// Backend is single-use: build it, run one Pack call, discard it.
type Backend struct {
	model    *cpmodel.CpModelBuilder
	response *cmpb.CpSolverResponse
	vars     []cpVar
}

// New creates an empty CP-SAT model ready to receive variables and
// constraints.
func New() *Backend {
	return &Backend{model: cpmodel.NewCpModelBuilder()}
}

var _ rectfit.ILPBackend = (*Backend)(nil)

// NewIntVar declares a bounded integer variable.
func (b *Backend) NewIntVar(lb, ub int) rectfit.ILPVar {
	v := b.model.NewIntVar(int64(lb), int64(ub))
	b.vars = append(b.vars, cpVar{iv: v})
	return len(b.vars) - 1
}

// NewBinaryVar declares a {0,1} variable.
func (b *Backend) NewBinaryVar() rectfit.ILPVar {
	v := b.model.NewBoolVar()
	b.vars = append(b.vars, cpVar{isBool: true, bv: v})
	return len(b.vars) - 1
}

func (b *Backend) expr(terms []rectfit.LinearTerm) *cpmodel.LinearExpr {
	e := cpmodel.NewLinearExpr()
	for _, t := range terms {
		idx, ok := t.Var.(int)
		if !ok {
			continue
		}
		e.AddTerm(b.vars[idx].arg(), int64(math.Round(t.Coeff)))
	}
	return e
}

// AddConstraint adds sum(terms) op rhs to the CP-SAT model.
func (b *Backend) AddConstraint(terms []rectfit.LinearTerm, op rectfit.ConstraintOp, rhs float64) {
	lhs := b.expr(terms)
	rhsExpr := cpmodel.NewConstant(int64(math.Round(rhs)))
	switch op {
	case rectfit.LessOrEqual:
		b.model.AddLessOrEqual(lhs, rhsExpr)
	case rectfit.Equal:
		b.model.AddEquality(lhs, rhsExpr)
	case rectfit.GreaterOrEqual:
		b.model.AddGreaterOrEqual(lhs, rhsExpr)
	}
}

// Solve runs CP-SAT's feasibility search. Solver logging is left at its
// default (suppressed) setting per spec §4.4 ("Solver logging suppressed").
func (b *Backend) Solve(ctx context.Context) (bool, error) {
	m, err := b.model.Model()
	if err != nil {
		return false, fmt.Errorf("cpsatbackend: failed to instantiate model: %w", err)
	}

	response, err := cpmodel.SolveCpModel(m)
	if err != nil {
		return false, fmt.Errorf("cpsatbackend: solve failed: %w", err)
	}
	b.response = response

	switch response.GetStatus() {
	case cmpb.CpSolverStatus_OPTIMAL, cmpb.CpSolverStatus_FEASIBLE:
		return true, nil
	default:
		return false, nil
	}
}

// Value reads back the solved value of v, rounded to the nearest integer.
// CP-SAT always returns exact integers for integer variables, but the
// rounding is applied regardless so this adapter stays correct if it is
// ever pointed at a continuous-relaxation MIP backend instead (spec §9,
// "Solver-output rounding").
func (b *Backend) Value(v rectfit.ILPVar) int {
	idx, ok := v.(int)
	if !ok || b.response == nil {
		return 0
	}
	cv := b.vars[idx]
	if cv.isBool {
		if cpmodel.SolutionBooleanValue(b.response, cv.bv) {
			return 1
		}
		return 0
	}
	raw := cpmodel.SolutionIntegerValue(b.response, cv.iv)
	return int(math.Round(float64(raw)))
}

// vim: ts=4

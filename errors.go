package rectfit

import (
	"errors"
	"fmt"
)

// Diagnostic classifies why Pack returned a negative feasibility result.
// It is informational only; Diagnostic values are never returned as an
// error (spec §7).
type Diagnostic uint8

const (
	// NoDiagnostic means the pre-checks passed; a negative result, if any,
	// came from the engine's own exhaustive search finding no tiling.
	NoDiagnostic Diagnostic = iota
	// InvalidArea means the total piece area did not equal H*W.
	InvalidArea
	// DoesNotFit means some piece cannot fit the box even favorably oriented.
	DoesNotFit
)

// String returns the name of the diagnostic.
func (d Diagnostic) String() string {
	switch d {
	case InvalidArea:
		return "InvalidArea"
	case DoesNotFit:
		return "DoesNotFit"
	default:
		return "NoDiagnostic"
	}
}

// Sentinel errors for the two fault kinds the core contract distinguishes
// from ordinary infeasibility (spec §7). Wrap these with fmt.Errorf and
// "%w" so callers can test with errors.Is.
var (
	// ErrSolverUnavailable means the ILP backend is absent or failed to
	// initialize or solve. It is distinct from an infeasible instance.
	ErrSolverUnavailable = errors.New("rectfit: ILP solver backend unavailable")
	// ErrInvariantViolation means an engine's internal bookkeeping failed a
	// self-check, e.g. an undo did not restore prior state exactly. It
	// always indicates a bug rather than a property of the input.
	ErrInvariantViolation = errors.New("rectfit: internal invariant violation")
)

func fatalf(base error, format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{base}, args...)...)
}

// vim: ts=4

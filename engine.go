package rectfit

import "context"

// solveEngine is satisfied by each of the three exhaustive decision
// engines. The façade dispatches to one implementation and never calls
// another; engines never call each other (spec §2).
//
// ctx is only used by the ILP engine, which passes it to its backend's
// Solve call; the backtracking and DLX engines are pure CPU and
// run to completion regardless, per spec §5 ("no cancellation mechanism is
// defined" for the core contract).
type solveEngine interface {
	solve(ctx context.Context) (ok bool, placements []Placement, err error)
}

// engineBase holds the state every engine needs regardless of its search
// strategy: the box dimensions, whether rotation is permitted, and an
// optional progress sink. Concrete engines embed this rather than
// duplicating the bookkeeping, mirroring the teacher library's
// algorithmBase embedding.
type engineBase struct {
	h, w          int
	allowRotation bool
	progress      Progress
}

// tick advances the progress sink by n steps, tolerating a nil sink.
func (e *engineBase) tick(n int) {
	if e.progress != nil {
		e.progress.Step(n)
	}
}

// vim: ts=4

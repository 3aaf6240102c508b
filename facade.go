package rectfit

import (
	"context"

	"github.com/rs/zerolog"
)

// Result is the outcome of one Pack call. Grid is nil whenever Feasible is
// false. Diagnostic explains a negative result that came from a pre-check
// rather than an exhausted search (spec §7).
type Result struct {
	Feasible   bool
	Grid       [][]int
	Diagnostic Diagnostic
	Steps      int
}

type options struct {
	logger   zerolog.Logger
	progress Progress
	backend  ILPBackend
}

// Option configures a Pack call, following the teacher library's pattern
// of small setter-style configuration rather than a large config struct.
type Option func(*options)

// WithLogger overrides the default package logger for one Pack call.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithProgress attaches a Progress sink. It may be called with nil, which
// is equivalent to omitting the option.
func WithProgress(p Progress) Option {
	return func(o *options) { o.progress = p }
}

// WithILPBackend supplies the backend the IntegerProgramming algorithm runs
// against. It is required for that algorithm; the other two ignore it. The
// core package deliberately does not import a concrete backend (spec §1,
// "the ILP optimizer backend itself" is out of scope) — callers wire one in,
// such as cpsatbackend.New().
func WithILPBackend(backend ILPBackend) Option {
	return func(o *options) { o.backend = backend }
}

// stepCounter is an internal Progress that also records the total for
// Result.Steps, regardless of whether the caller supplied their own.
type stepCounter struct {
	inner Progress
	total int
}

func (s *stepCounter) Step(n int) {
	s.total += n
	if s.inner != nil {
		s.inner.Step(n)
	}
}

// Pack decides Perfect Rectangle Packing for the given box and pieces,
// dispatching to one of the three exhaustive engines (spec §4.1, §6).
//
// Pre-check rejections (InvalidArea, DoesNotFit) are returned as
// Result.Feasible == false with Result.Diagnostic set, never as an error.
// A non-nil error means ErrSolverUnavailable or ErrInvariantViolation: a
// fault distinct from ordinary infeasibility.
func Pack(ctx context.Context, h, w int, pieces []Piece, allowRotation bool, algorithm Algorithm, opts ...Option) (Result, error) {
	if err := algorithm.Validate(); err != nil {
		panic(err)
	}

	o := options{logger: defaultLogger}
	for _, opt := range opts {
		opt(&o)
	}

	if !checkArea(h, w, pieces) {
		o.logger.Warn().Int("h", h).Int("w", w).Msg("rectfit: rejected, total piece area does not equal box area")
		return Result{Feasible: false, Diagnostic: InvalidArea}, nil
	}
	if !checkFit(h, w, pieces, allowRotation) {
		o.logger.Warn().Int("h", h).Int("w", w).Bool("allowRotation", allowRotation).Msg("rectfit: rejected, a piece cannot fit the box")
		return Result{Feasible: false, Diagnostic: DoesNotFit}, nil
	}

	counter := &stepCounter{inner: o.progress}

	var engine solveEngine
	switch algorithm {
	case Backtracking:
		engine = newBacktrackEngine(h, w, pieces, allowRotation, counter)
	case DancingLinks:
		engine = newDLXEngine(h, w, pieces, allowRotation, counter)
	case IntegerProgramming:
		engine = newILPEngine(h, w, pieces, allowRotation, o.backend, counter)
	}

	o.logger.Debug().Stringer("algorithm", algorithm).Int("pieces", len(pieces)).Msg("rectfit: dispatching")

	feasible, placements, err := engine.solve(ctx)
	if err != nil {
		o.logger.Error().Err(err).Stringer("algorithm", algorithm).Msg("rectfit: engine returned a fault")
		return Result{}, err
	}
	if !feasible {
		return Result{Feasible: false, Diagnostic: NoDiagnostic, Steps: counter.total}, nil
	}

	grid, err := paintGrid(h, w, pieces, placements)
	if err != nil {
		o.logger.Error().Err(err).Msg("rectfit: reconstructed grid failed its own invariants")
		return Result{}, err
	}
	return Result{Feasible: true, Grid: grid, Steps: counter.total}, nil
}

// paintGrid builds the final H-by-W grid from an engine's placements, keyed
// to input-order piece indices (spec §4.1, "the returned grid ... uses
// input-order piece indices"), checking along the way that there is one
// placement per piece, that each lies inside the box, and that no two
// overlap. Placement dimensions are not compared against the pieces.
func paintGrid(h, w int, pieces []Piece, placements []Placement) ([][]int, error) {
	if len(placements) != len(pieces) {
		return nil, fatalf(ErrInvariantViolation, "expected %d placements, got %d", len(pieces), len(placements))
	}

	grid := newOccupancyGrid(h, w)
	for _, pl := range placements {
		if !pl.Rect.FitsWithin(h, w) {
			return nil, fatalf(ErrInvariantViolation, "piece %d placement %v escapes the box", pl.PieceIndex, pl.Rect)
		}
		for row := pl.Rect.Row; row <= pl.Rect.Bottom(); row++ {
			for col := pl.Rect.Col; col <= pl.Rect.Right(); col++ {
				if grid.at(row, col) != 0 {
					return nil, fatalf(ErrInvariantViolation, "cell (%d,%d) covered by both piece %d and %d", row, col, grid.at(row, col), pl.PieceIndex)
				}
				grid.set(row, col, pl.PieceIndex)
			}
		}
	}
	return grid.toMatrix(), nil
}

// vim: ts=4

package rectfit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPack_ConcreteScenario_BacktrackingNoRotation(t *testing.T) {
	pieces := piecesFromHW([][2]int{{1, 6}, {1, 3}, {5, 1}, {2, 2}, {3, 2}, {4, 2}, {4, 1}})
	result, err := Pack(context.Background(), 6, 6, pieces, false, Backtracking)
	require.NoError(t, err)
	assert.True(t, result.Feasible)
}

func TestPack_ConcreteScenario_BacktrackingRotation(t *testing.T) {
	pieces := piecesFromHW([][2]int{{5, 1}, {1, 3}, {5, 1}, {2, 2}, {3, 2}, {3, 3}, {4, 1}})
	result, err := Pack(context.Background(), 6, 6, pieces, true, Backtracking)
	require.NoError(t, err)
	assert.True(t, result.Feasible)
}

func TestPack_IntegerProgramming_SinglePieceFillsBox(t *testing.T) {
	// fakeFeasibleBackend reports every variable at its lower bound, which
	// only yields a geometrically valid solution when there is nothing to
	// disjoin against; a single box-filling piece exercises the dispatch
	// path without needing a real combinatorial solver.
	pieces := piecesFromHW([][2]int{{6, 7}})
	backend := &fakeFeasibleBackend{}
	result, err := Pack(context.Background(), 6, 7, pieces, false, IntegerProgramming, WithILPBackend(backend))
	require.NoError(t, err)
	assert.True(t, result.Feasible)
}

func TestPack_IntegerProgramming_NoBackendConfigured_ReturnsFatalError(t *testing.T) {
	pieces := piecesFromHW([][2]int{{1, 1}})
	_, err := Pack(context.Background(), 1, 1, pieces, false, IntegerProgramming)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSolverUnavailable)
}

func TestPack_ConcreteScenario_DancingLinksNoRotation(t *testing.T) {
	pieces := piecesFromHW([][2]int{{4, 3}, {1, 7}, {3, 7}, {6, 2}, {6, 5}, {6, 3}})
	result, err := Pack(context.Background(), 10, 10, pieces, false, DancingLinks)
	require.NoError(t, err)
	assert.True(t, result.Feasible)
}

func TestPack_ConcreteScenario_DancingLinksRotation(t *testing.T) {
	pieces := piecesFromHW([][2]int{{4, 3}, {7, 1}, {7, 3}, {6, 2}, {5, 6}, {6, 3}})
	result, err := Pack(context.Background(), 10, 10, pieces, true, DancingLinks)
	require.NoError(t, err)
	assert.True(t, result.Feasible)
}

func TestPack_Negative_AreaMismatch(t *testing.T) {
	pieces := piecesFromHW([][2]int{{1, 1}, {1, 1}, {1, 1}})
	result, err := Pack(context.Background(), 2, 2, pieces, false, Backtracking)
	require.NoError(t, err)
	assert.False(t, result.Feasible)
	assert.Equal(t, InvalidArea, result.Diagnostic)
	assert.Nil(t, result.Grid)
}

func TestPack_Negative_DoesNotFit(t *testing.T) {
	pieces := piecesFromHW([][2]int{{3, 1}, {3, 1}})
	result, err := Pack(context.Background(), 2, 3, pieces, false, Backtracking)
	require.NoError(t, err)
	assert.False(t, result.Feasible)
	assert.Equal(t, DoesNotFit, result.Diagnostic)
	assert.Nil(t, result.Grid)
}

func TestPack_CrossEngineAgreement(t *testing.T) {
	pieces := piecesFromHW([][2]int{{1, 6}, {1, 3}, {5, 1}, {2, 2}, {3, 2}, {4, 2}, {4, 1}})

	bt, err := Pack(context.Background(), 6, 6, pieces, false, Backtracking)
	require.NoError(t, err)

	dlx, err := Pack(context.Background(), 6, 6, pieces, false, DancingLinks)
	require.NoError(t, err)

	assert.Equal(t, bt.Feasible, dlx.Feasible)

	// Area/fit pre-checks run identically ahead of every engine, so the two
	// exhaustive search engines and the pre-check path used by the ILP
	// engine necessarily agree on every rejection, independent of which
	// backend (if any) is configured.
	rejectPieces := piecesFromHW([][2]int{{1, 1}, {1, 1}, {1, 1}})
	btReject, err := Pack(context.Background(), 2, 2, rejectPieces, false, Backtracking)
	require.NoError(t, err)
	ilpReject, err := Pack(context.Background(), 2, 2, rejectPieces, false, IntegerProgramming)
	require.NoError(t, err)
	assert.Equal(t, btReject.Feasible, ilpReject.Feasible)
}

func TestPack_InvalidAlgorithm_Panics(t *testing.T) {
	pieces := piecesFromHW([][2]int{{1, 1}})
	assert.Panics(t, func() {
		_, _ = Pack(context.Background(), 1, 1, pieces, false, Algorithm(99))
	})
}

func TestPack_ProgressIsMonotonicAndNilSafe(t *testing.T) {
	pieces := piecesFromHW([][2]int{{1, 6}, {1, 3}, {5, 1}, {2, 2}, {3, 2}, {4, 2}, {4, 1}})

	var steps []int
	total := 0
	tracker := ProgressFunc(func(n int) {
		total += n
		steps = append(steps, total)
	})

	result, err := Pack(context.Background(), 6, 6, pieces, false, Backtracking, WithProgress(tracker))
	require.NoError(t, err)
	require.True(t, result.Feasible)
	require.Equal(t, result.Steps, total)

	for i := 1; i < len(steps); i++ {
		assert.GreaterOrEqual(t, steps[i], steps[i-1])
	}

	// Omitting WithProgress entirely must not panic.
	result, err = Pack(context.Background(), 6, 6, pieces, false, Backtracking)
	require.NoError(t, err)
	assert.True(t, result.Feasible)
}

// fakeFeasibleBackend always reports a feasible zero solution, enough to
// exercise Pack's ILP dispatch path without a real solver.
type fakeFeasibleBackend struct {
	next int
	vals []int
}

func (f *fakeFeasibleBackend) NewIntVar(lb, ub int) ILPVar {
	f.vals = append(f.vals, lb)
	f.next++
	return f.next - 1
}

func (f *fakeFeasibleBackend) NewBinaryVar() ILPVar {
	f.vals = append(f.vals, 0)
	f.next++
	return f.next - 1
}

func (f *fakeFeasibleBackend) AddConstraint(terms []LinearTerm, op ConstraintOp, rhs float64) {}

func (f *fakeFeasibleBackend) Solve(ctx context.Context) (bool, error) { return true, nil }

func (f *fakeFeasibleBackend) Value(v ILPVar) int { return f.vals[v.(int)] }

// vim: ts=4

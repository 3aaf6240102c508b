package rectfit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExactCoverMatrix_CoverUncoverRoundTrip(t *testing.T) {
	pieces := piecesFromHW([][2]int{{2, 2}, {2, 2}})
	m := buildExactCoverMatrix(2, 4, pieces, false)

	before := snapshotColRows(m)

	undos := m.coverRow(0)
	// The matrix must actually have changed while covered.
	assert.NotEqual(t, before, snapshotColRows(m))

	m.uncoverRow(undos)
	after := snapshotColRows(m)

	assert.Equal(t, before, after)
}

func TestExactCoverMatrix_ChooseColumn_MRVSmallestIndexTiebreak(t *testing.T) {
	pieces := piecesFromHW([][2]int{{1, 1}})
	m := buildExactCoverMatrix(1, 1, pieces, false)

	col, ok := m.chooseColumn()
	require.True(t, ok)
	// A 1x1 box has exactly two columns (one cell, one piece), each with a
	// single covering row; smallest index wins the tie.
	assert.Equal(t, 0, col)
}

func TestDLXEngine_NoRotation_Feasible(t *testing.T) {
	pieces := piecesFromHW([][2]int{{4, 3}, {1, 7}, {3, 7}, {6, 2}, {6, 5}, {6, 3}})
	e := newDLXEngine(10, 10, pieces, false, nil)

	ok, placements, err := e.solve(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assertValidTiling(t, 10, 10, pieces, placements, false)
}

func TestDLXEngine_Rotation_Feasible(t *testing.T) {
	pieces := piecesFromHW([][2]int{{4, 3}, {7, 1}, {7, 3}, {6, 2}, {5, 6}, {6, 3}})
	e := newDLXEngine(10, 10, pieces, true, nil)

	ok, placements, err := e.solve(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assertValidTiling(t, 10, 10, pieces, placements, true)
}

// snapshotColRows copies the current column->row-set relation so before/after
// comparisons don't alias the matrix's own live maps.
func snapshotColRows(m *exactCoverMatrix) map[int]map[int]bool {
	snap := make(map[int]map[int]bool, len(m.colRows))
	for col, rows := range m.colRows {
		rowCopy := make(map[int]bool, len(rows))
		for r, v := range rows {
			rowCopy[r] = v
		}
		snap[col] = rowCopy
	}
	return snap
}

// vim: ts=4

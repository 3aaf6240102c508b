package rectfit

import (
	"context"
	"sort"
)

// ecRow describes one candidate placement: a piece, in one orientation, at
// one anchor. lookup reconstructs the placement once its row is chosen by
// the search (spec §3, "ExactCoverMatrix").
type ecRow struct {
	pieceIdx int // 1-based input-order index
	rect     Rect
}

// exactCoverMatrix is the bipartite row/column relation described in spec
// §3 and §4.3: one column per grid cell plus one per piece, one row per
// candidate placement. It is stored as column->row-set and row->column-list
// maps, per the source's own representation; a toroidal linked list is an
// equally conforming alternative (spec §9) but the map form makes the
// cover/uncover round-trip invariant (spec §8.5) directly testable.
type exactCoverMatrix struct {
	h, w int

	rows   []ecRow // rows[row] -> data describing the placement
	rowCol [][]int // rowCol[row] -> ordered list of columns it covers

	colRows map[int]map[int]bool // colRows[col] -> set of rows covering it
	active  map[int]bool         // active[col] -> true while uncovered
}

func cellColumn(w, row, col int) int {
	return (col - 1) + (row-1)*w
}

func pieceColumn(h, w, pieceIdx int) int {
	return h*w + (pieceIdx - 1)
}

// buildExactCoverMatrix enumerates every (piece, orientation, anchor) row
// per spec §4.3. When allowRotation is false only the piece's given
// orientation is emitted; when true, a square's rotated orientation is
// skipped because it duplicates the original (spec: "skipped if the
// rotated shape duplicates the first").
func buildExactCoverMatrix(h, w int, pieces []Piece, allowRotation bool) *exactCoverMatrix {
	m := &exactCoverMatrix{
		h: h, w: w,
		colRows: make(map[int]map[int]bool),
		active:  make(map[int]bool),
	}

	for col := 0; col < h*w+len(pieces); col++ {
		m.colRows[col] = make(map[int]bool)
		m.active[col] = true
	}

	for _, p := range pieces {
		orientations := []Size{p.Size}
		if allowRotation && p.Width != p.Height {
			orientations = append(orientations, p.Size.Rotated())
		}
		for _, sz := range orientations {
			for row := 1; row+sz.Height-1 <= h; row++ {
				for col := 1; col+sz.Width-1 <= w; col++ {
					m.addRow(p.Index, Rect{Row: row, Col: col, Size: sz, Rotated: sz != p.Size})
				}
			}
		}
	}
	return m
}

func (m *exactCoverMatrix) addRow(pieceIdx int, rect Rect) {
	rowIdx := len(m.rows)
	m.rows = append(m.rows, ecRow{pieceIdx: pieceIdx, rect: rect})

	cols := make([]int, 0, rect.Width*rect.Height+1)
	for r := rect.Row; r <= rect.Bottom(); r++ {
		for c := rect.Col; c <= rect.Right(); c++ {
			cols = append(cols, cellColumn(m.w, r, c))
		}
	}
	cols = append(cols, pieceColumn(m.h, m.w, pieceIdx))
	m.rowCol = append(m.rowCol, cols)

	for _, col := range cols {
		m.colRows[col][rowIdx] = true
	}
}

// cover removes column col and, for every row that covered it, removes
// that row from every other column it touches. It returns the undo
// information uncover needs to invert the operation exactly.
type coverUndo struct {
	col         int
	removed     map[int]bool // the row set col had before cover
	rowsTouched []rowColPair
}

type rowColPair struct {
	row, col int
}

func (m *exactCoverMatrix) cover(col int) coverUndo {
	undo := coverUndo{col: col, removed: m.colRows[col]}
	for row := range undo.removed {
		for _, other := range m.rowCol[row] {
			if other == col {
				continue
			}
			delete(m.colRows[other], row)
			undo.rowsTouched = append(undo.rowsTouched, rowColPair{row: row, col: other})
		}
	}
	m.active[col] = false
	m.colRows[col] = make(map[int]bool)
	return undo
}

// uncover reverses a prior cover in the exact opposite order of operations,
// restoring the structure bit-identically (spec §8.5).
func (m *exactCoverMatrix) uncover(undo coverUndo) {
	for i := len(undo.rowsTouched) - 1; i >= 0; i-- {
		pair := undo.rowsTouched[i]
		m.colRows[pair.col][pair.row] = true
	}
	m.colRows[undo.col] = undo.removed
	m.active[undo.col] = true
}

// coverRow covers every column the given row touches, in row order, and
// returns the per-column undo records in the same order so the caller can
// uncover them in reverse (spec §4.3, "Cover operation").
func (m *exactCoverMatrix) coverRow(row int) []coverUndo {
	cols := m.rowCol[row]
	undos := make([]coverUndo, len(cols))
	for i, col := range cols {
		undos[i] = m.cover(col)
	}
	return undos
}

func (m *exactCoverMatrix) uncoverRow(undos []coverUndo) {
	for i := len(undos) - 1; i >= 0; i-- {
		m.uncover(undos[i])
	}
}

// chooseColumn implements the MRV heuristic: the active column with the
// fewest remaining rows, ties broken by smallest column index.
func (m *exactCoverMatrix) chooseColumn() (col int, ok bool) {
	best := -1
	bestSize := -1
	cols := make([]int, 0, len(m.active))
	for c, isActive := range m.active {
		if isActive {
			cols = append(cols, c)
		}
	}
	sort.Ints(cols)
	for _, c := range cols {
		size := len(m.colRows[c])
		if best == -1 || size < bestSize {
			best = c
			bestSize = size
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

func (m *exactCoverMatrix) rowsOf(col int) []int {
	rows := make([]int, 0, len(m.colRows[col]))
	for r := range m.colRows[col] {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	return rows
}

// dlxEngine implements Algorithm X with MRV column selection (spec §4.3).
type dlxEngine struct {
	engineBase
	matrix   *exactCoverMatrix
	solution []int
}

func newDLXEngine(h, w int, pieces []Piece, allowRotation bool, progress Progress) *dlxEngine {
	return &dlxEngine{
		engineBase: engineBase{h: h, w: w, allowRotation: allowRotation, progress: progress},
		matrix:     buildExactCoverMatrix(h, w, pieces, allowRotation),
	}
}

func (e *dlxEngine) solve(_ context.Context) (bool, []Placement, error) {
	if e.search() {
		placements := make([]Placement, len(e.solution))
		for i, row := range e.solution {
			r := e.matrix.rows[row]
			placements[i] = Placement{PieceIndex: r.pieceIdx, Rect: r.rect}
		}
		return true, placements, nil
	}
	return false, nil, nil
}

func (e *dlxEngine) search() bool {
	col, ok := e.matrix.chooseColumn()
	if !ok {
		return true
	}
	rows := e.matrix.rowsOf(col)
	if len(rows) == 0 {
		return false
	}
	for _, row := range rows {
		e.tick(1)
		undos := e.matrix.coverRow(row)
		e.solution = append(e.solution, row)
		if e.search() {
			return true
		}
		e.solution = e.solution[:len(e.solution)-1]
		e.matrix.uncoverRow(undos)
	}
	return false
}

// vim: ts=4

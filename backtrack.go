package rectfit

import "context"

// Placement pairs an oriented rectangle with the input-order index of the
// piece occupying it. Engines build these from whatever engine-local
// numbering they use internally; the façade paints the final grid using
// PieceIndex, never the engine-local one.
type Placement struct {
	PieceIndex int
	Rect       Rect
}

// btCandidate is one entry in the backtracking engine's search order. In
// the no-rotation variant each input piece has exactly one candidate; in
// the rotation variant a true rectangle contributes two candidates (its two
// orientations) that are mutual partners, while a square contributes one
// with no partner (spec §4.2, "Rotation variant").
type btCandidate struct {
	Size
	origIndex int
	// partner is the 1-based index (into the candidate slice) of this
	// candidate's alternate orientation, or 0 if it has none.
	partner int
}

// backtrackEngine implements the top-left first-fit backtracking engine
// described in spec §4.2, including its rotation-aware symmetry breaking.
type backtrackEngine struct {
	engineBase
	candidates []btCandidate
	// rCount is the number of true rectangles (candidates with a partner),
	// counted once per pair, i.e. R in the spec's "Let R = |originals|".
	rCount int
	// target is the number of candidates that must end up placed for the
	// instance to be feasible: S with no rotation, R+squares with rotation.
	target int
}

func newBacktrackEngine(h, w int, pieces []Piece, allowRotation bool, progress Progress) *backtrackEngine {
	e := &backtrackEngine{
		engineBase: engineBase{h: h, w: w, allowRotation: allowRotation, progress: progress},
	}
	if !allowRotation {
		sorted := sortByDescendingWidth(pieces)
		e.candidates = make([]btCandidate, len(sorted))
		for i, p := range sorted {
			e.candidates[i] = btCandidate{Size: p.Size, origIndex: p.Index}
		}
		e.target = len(pieces)
		return e
	}

	var originals, squares []Piece
	for _, p := range pieces {
		if p.Width == p.Height {
			squares = append(squares, p)
		} else {
			originals = append(originals, p)
		}
	}
	sortedOriginals := sortByDescendingWidth(originals)
	r := len(sortedOriginals)
	sq := len(squares)
	n := 2*r + sq
	e.rCount = r
	e.target = r + sq

	e.candidates = make([]btCandidate, n)
	for i, p := range sortedOriginals {
		e.candidates[i] = btCandidate{Size: p.Size, origIndex: p.Index}
	}
	for i, p := range squares {
		e.candidates[r+i] = btCandidate{Size: p.Size, origIndex: p.Index}
	}
	for k := 1; k <= r; k++ {
		// Position r+sq+k holds the rotated twin of sortedOriginals[r-k+1],
		// so that partner(k) = n-k+1 on both sides (spec §4.2/§9).
		orig := sortedOriginals[r-k].Piece
		e.candidates[r+sq+k-1] = btCandidate{Size: orig.Size.Rotated(), origIndex: orig.Index}
	}
	for k := 1; k <= r; k++ {
		partnerPos := n - k + 1
		e.candidates[k-1].partner = partnerPos
		e.candidates[partnerPos-1].partner = k
	}
	return e
}

// admissibleMax returns the largest 1-based candidate index the scan may
// consider. With rotation enabled, the very first placement is restricted
// to non-rotated candidates to break the orientation symmetry (spec §4.2).
func (e *backtrackEngine) admissibleMax(count int) int {
	n := len(e.candidates)
	if e.allowRotation && count == 0 {
		return n - e.rCount
	}
	return n
}

func (e *backtrackEngine) perimeterEmpty(grid *occupancyGrid, rect Rect) bool {
	for col := rect.Col; col <= rect.Right(); col++ {
		if grid.at(rect.Row, col) != 0 || grid.at(rect.Bottom(), col) != 0 {
			return false
		}
	}
	for row := rect.Row; row <= rect.Bottom(); row++ {
		if grid.at(row, rect.Col) != 0 || grid.at(row, rect.Right()) != 0 {
			return false
		}
	}
	return true
}

type btStackEntry struct {
	candIdx int // 1-based
	rect    Rect
}

func (e *backtrackEngine) solve(_ context.Context) (bool, []Placement, error) {
	grid := newOccupancyGrid(e.h, e.w)
	used := make([]int, len(e.candidates)+1) // 1-based; 0=unused, >0=placement order, -1=forbidden
	stack := make([]btStackEntry, 0, e.target)
	count := 0
	kStart := 1

	for {
		row, col, empty := grid.firstEmpty()
		if !empty {
			if count != e.target {
				return false, nil, fatalf(ErrInvariantViolation, "backtracking: grid fully covered with count=%d target=%d", count, e.target)
			}
			return true, e.reconstruct(stack), nil
		}

		placed := false
		maxK := e.admissibleMax(count)
		for k := kStart; k <= maxK; k++ {
			if used[k] != 0 {
				continue
			}
			cand := e.candidates[k-1]
			rect := Rect{Row: row, Col: col, Size: cand.Size, Rotated: k > len(e.candidates)-e.rCount && e.allowRotation}
			if !rect.FitsWithin(e.h, e.w) {
				continue
			}
			if !e.perimeterEmpty(grid, rect) {
				continue
			}

			grid.paint(rect, k)
			stack = append(stack, btStackEntry{candIdx: k, rect: rect})
			count++
			used[k] = count
			if cand.partner != 0 {
				used[cand.partner] = -1
			}
			e.tick(1)
			kStart = 1
			placed = true
			break
		}

		if placed {
			continue
		}

		e.tick(1)
		if len(stack) == 0 {
			return false, nil, nil
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		grid.clear(top.rect)
		used[top.candIdx] = 0
		if partner := e.candidates[top.candIdx-1].partner; partner != 0 {
			used[partner] = 0
		}
		count--
		kStart = top.candIdx + 1
	}
}

func (e *backtrackEngine) reconstruct(stack []btStackEntry) []Placement {
	placements := make([]Placement, len(stack))
	for i, entry := range stack {
		placements[i] = Placement{
			PieceIndex: e.candidates[entry.candIdx-1].origIndex,
			Rect:       entry.rect,
		}
	}
	return placements
}

// vim: ts=4

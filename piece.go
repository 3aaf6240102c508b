package rectfit

import (
	"cmp"
	"slices"
)

// Piece is one rectangle to be packed, identified by its 1-based position
// in the caller's input list. Pieces are immutable once constructed.
type Piece struct {
	// Index is the 1-based position of the piece in the input sequence.
	// It is the identity carried through to the returned grid.
	Index int
	Size
}

// indexedPiece pairs a piece with the position it occupies after sorting,
// so that engine-local placements can be mapped back to input order.
type indexedPiece struct {
	Piece
	// sortedIndex is the 1-based position of this piece within the sorted
	// order the backtracking engine searches over.
	sortedIndex int
}

// sortByDescendingWidth stably sorts pieces by descending width, as required
// by the backtracking engine's heuristic (spec §3: "PieceSet"). Ties keep
// their original relative order.
func sortByDescendingWidth(pieces []Piece) []indexedPiece {
	sorted := make([]indexedPiece, len(pieces))
	for i, p := range pieces {
		sorted[i] = indexedPiece{Piece: p}
	}
	slices.SortStableFunc(sorted, func(a, b indexedPiece) int {
		return cmp.Compare(b.Width, a.Width)
	})
	for i := range sorted {
		sorted[i].sortedIndex = i + 1
	}
	return sorted
}

// totalArea returns the sum of h_i * w_i over all pieces.
func totalArea(pieces []Piece) int {
	sum := 0
	for _, p := range pieces {
		sum += p.Area()
	}
	return sum
}

// vim: ts=4

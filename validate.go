package rectfit

// checkArea implements spec §4.1 pre-check 1: the total piece area must
// equal the box area exactly.
func checkArea(h, w int, pieces []Piece) bool {
	return totalArea(pieces) == h*w
}

// checkFit implements spec §4.1 pre-check 2: every piece must be able to
// occupy the box in at least one permitted orientation.
func checkFit(h, w int, pieces []Piece, allowRotation bool) bool {
	for _, p := range pieces {
		if allowRotation {
			if !(p.MaxSide() <= max(h, w) && p.MinSide() <= min(h, w)) {
				return false
			}
		} else {
			if !(p.Height <= h && p.Width <= w) {
				return false
			}
		}
	}
	return true
}

// vim: ts=4

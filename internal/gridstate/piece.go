package gridstate

import "errors"

// ErrIllegalAction is returned when a caller-supplied action is not legal
// for the current (board, piece) state. Legal is the single source of
// truth; callers should consult it before Perform.
var ErrIllegalAction = errors.New("gridstate: illegal action")

// Piece is a fixed shape in the catalogue: its bitmask anchored at
// offset (0,0), its cell count, and the maximum legal (x, y) offset at
// which it can still be placed without running off the board.
type Piece struct {
	Mask  uint32
	Cells int
	MaxX  int
	MaxY  int
}

// Pieces is the fixed six-piece catalogue. These bit patterns and
// (cells, max offset) values are baked in and never change — reproduce
// them exactly to keep cache files interchangeable with other
// implementations of this solver.
var Pieces = [NumPieces]Piece{
	{ // 0: single cell
		Mask:  0b1000_0000_0000_0000_0000_0000,
		Cells: 1,
		MaxX:  5,
		MaxY:  3,
	},
	{ // 1: 1x3 bar
		Mask:  0b1110_0000_0000_0000_0000_0000,
		Cells: 3,
		MaxX:  5,
		MaxY:  1,
	},
	{ // 2: L shape
		Mask:  0b1100_0100_0000_0000_0000_0000,
		Cells: 3,
		MaxX:  4,
		MaxY:  2,
	},
	{ // 3: mirrored L shape
		Mask:  0b1000_1100_0000_0000_0000_0000,
		Cells: 3,
		MaxX:  4,
		MaxY:  2,
	},
	{ // 4: 2x2 square
		Mask:  0b1100_1100_0000_0000_0000_0000,
		Cells: 4,
		MaxX:  4,
		MaxY:  2,
	},
	{ // 5: S shape
		Mask:  0b1000_1100_0100_0000_0000_0000,
		Cells: 4,
		MaxX:  3,
		MaxY:  2,
	},
}

// PlacementMask returns the 24-bit footprint of piece p shifted to
// offset a, and whether that placement is even defined (a < TotalCells
// and within p's max offset). It does not check overlap with any board.
func PlacementMask(p int, a int) (mask uint32, ok bool) {
	if a < 0 || a >= TotalCells {
		return 0, false
	}
	x, y := ActionOffsets(a)
	piece := Pieces[p]
	if x > piece.MaxX || y > piece.MaxY {
		return 0, false
	}
	return piece.Mask >> uint(a), true
}

// Legal reports whether action a is legal for piece p on board b.
// a == SkipAction is always legal; a placement is legal iff it lies
// within the piece's max offset and its shifted mask is disjoint from b.
func Legal(b Board, p int, a int) bool {
	if a == SkipAction {
		return true
	}
	mask, ok := PlacementMask(p, a)
	if !ok {
		return false
	}
	return uint32(b)&mask == 0
}

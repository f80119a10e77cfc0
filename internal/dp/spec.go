// Package dp implements the generic pieces of the offline
// dynamic-programming engine: the dense (dst, act) table, the subset
// enumerator used by the skip-action recurrence, and the concurrency
// primitives (atomic lower, visited bitset) the traversal driver needs.
//
// The package is deliberately decoupled from the fixed gridstate
// catalogue: it operates over a PieceSpec/Spec pair passed in by the
// caller. Production code always builds its Spec from gridstate's
// baked-in six-piece, 4x6 catalogue (see gridstate.DPSpec); a Spec built
// from a smaller ad-hoc catalogue lets package tests exercise the exact
// same recurrence and traversal code on a state space small enough to
// fully compute inside a unit test.
package dp

// PieceSpec mirrors gridstate.Piece without importing it, so this
// package has no dependency on the production catalogue.
type PieceSpec struct {
	Mask  uint32
	Cells int
	MaxX  int
	MaxY  int
}

// Spec describes one instance of the placement-game recurrence: how
// many cells the board has and which pieces can be placed on it.
// Actions are always decoded as x = a>>2, y = a&3 (Rows is fixed at 4
// cells), so Spec only varies the column count and piece catalogue.
type Spec struct {
	TotalCells int
	Pieces     []PieceSpec
}

// NumPieces returns the number of pieces in the catalogue.
func (s Spec) NumPieces() int {
	return len(s.Pieces)
}

// Terminal returns the fully-filled board for this spec.
func (s Spec) Terminal() uint32 {
	return (uint32(1) << uint(s.TotalCells)) - 1
}

// NumStates returns the number of distinct boards (2^TotalCells).
func (s Spec) NumStates() int {
	return 1 << uint(s.TotalCells)
}

// SkipAction is the action code meaning "skip", which for this spec is
// numerically equal to TotalCells (placements occupy 0..TotalCells-1).
func (s Spec) SkipAction() int {
	return s.TotalCells
}

// PlacementMask returns the footprint of piece p shifted to action
// offset a, and whether that placement is defined at all (within
// bounds and within the piece's max offset).
func (s Spec) PlacementMask(p, a int) (mask uint32, ok bool) {
	if a < 0 || a >= s.TotalCells {
		return 0, false
	}
	x, y := a>>2, a&3
	piece := s.Pieces[p]
	if x > piece.MaxX || y > piece.MaxY {
		return 0, false
	}
	return piece.Mask >> uint(a), true
}

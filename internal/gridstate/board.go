// Package gridstate implements the 4x6 placement-game board: the 24-bit
// bitboard encoding, the fixed six-piece catalogue, and the tiny
// (board, figure, round) game-state value type consumed by the DP solver.
package gridstate

import (
	"fmt"
	"math/rand"
)

// Board dimensions. Cell i corresponds to column i/Rows, row i%Rows.
const (
	Cols = 6
	Rows = 4

	// TotalCells is the number of cells on the board (Cols * Rows).
	TotalCells = Cols * Rows // 24

	// NumPieces is the number of distinct pieces in the fixed catalogue.
	NumPieces = 6

	// SkipAction is the action code meaning "skip this round".
	SkipAction = TotalCells // 24
)

// Board is a 24-bit bitmask; bit (23-a) is set iff the cell at action
// offset a is filled, so cells are packed MSB-first starting at bit 23,
// matching the piece masks (placing a piece ORs its shifted mask
// directly into the board). The terminal (fully filled) board has all
// TotalCells low-order bits set.
type Board uint32

// Terminal is the fully-filled board: all TotalCells bits set.
const Terminal Board = (1 << TotalCells) - 1

// Empty is the initial, completely empty board.
const Empty Board = 0

// PopCount returns the number of filled cells (the board's population).
func (b Board) PopCount() int {
	return popcount32(uint32(b))
}

func popcount32(x uint32) int {
	n := 0
	for x != 0 {
		x &= x - 1
		n++
	}
	return n
}

// IsFilled reports whether the cell at action offset a is set on b.
func (b Board) IsFilled(a int) bool {
	return uint32(b)&cellMask(a) != 0
}

func cellMask(a int) uint32 {
	return (uint32(1) << (TotalCells - 1)) >> uint(a)
}

// ActionOffsets decodes an action (0..TotalCells-1) into its (x, y)
// placement offset. x is the column offset, y is the row offset.
func ActionOffsets(a int) (x, y int) {
	return a >> 2, a & 3
}

// OffsetAction encodes an (x, y) placement offset into an action.
func OffsetAction(x, y int) int {
	return x*Rows + y
}

// String renders the board as an ASCII grid: '#' filled, '.' empty.
// GameState.String renders the same grid with the current figure's
// footprint at offset (0,0) overlaid as 'o' on empty cells.
func (b Board) String() string {
	return b.render(-1)
}

func (b Board) render(fig int) string {
	s := ""
	for y := 0; y < Rows; y++ {
		for x := 0; x < Cols; x++ {
			a := OffsetAction(x, y)
			switch {
			case b.IsFilled(a):
				s += "#"
			case fig >= 0 && Pieces[fig].occupiesAtOrigin(x, y):
				s += "o"
			default:
				s += "."
			}
		}
		s += "\n"
	}
	return s
}

// occupiesAtOrigin reports whether placing p at offset (0,0) would
// cover cell (x, y) — used only for the debug rendering above.
func (p Piece) occupiesAtOrigin(x, y int) bool {
	a := OffsetAction(x, y)
	if a >= TotalCells {
		return false
	}
	return p.Mask&cellMask(a) != 0
}

// GameState is the tiny value type the DP core consumes: current board,
// the figure drawn for this round, and a round counter.
type GameState struct {
	Board  Board
	Figure int
	Round  uint32
}

// Legal reports whether action a is legal for the state's current figure.
func (g *GameState) Legal(a int) bool {
	return Legal(g.Board, g.Figure, a)
}

// Perform applies action a: placement actions OR the shifted piece mask
// into the board, skip leaves the board unchanged. Either way the round
// counter advances. Returns ErrIllegalAction if a is not legal.
func (g *GameState) Perform(a int) error {
	if a != SkipAction {
		mask, ok := PlacementMask(g.Figure, a)
		if !ok || uint32(g.Board)&mask != 0 {
			return ErrIllegalAction
		}
		g.Board |= Board(mask)
	}
	g.Round++
	return nil
}

// IsFinished reports whether the board is completely filled.
func (g *GameState) IsFinished() bool {
	return g.Board == Terminal
}

// SetRandomFigure draws a figure uniformly at random using rng.
func (g *GameState) SetRandomFigure(rng *rand.Rand) {
	g.Figure = rng.Intn(NumPieces)
}

// String renders the board with the current figure's footprint overlaid.
func (g GameState) String() string {
	return fmt.Sprintf("round %d, figure %d:\n%s", g.Round, g.Figure, g.Board.render(g.Figure))
}

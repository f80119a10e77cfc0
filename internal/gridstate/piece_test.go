package gridstate

import (
	"fmt"
	"testing"
)

func TestPieceCellCounts(t *testing.T) {
	want := [NumPieces]int{1, 3, 3, 3, 4, 4}
	for i, p := range Pieces {
		t.Run(fmt.Sprintf("piece%d", i), func(t *testing.T) {
			if p.Cells != want[i] {
				t.Errorf("Cells = %d, want %d", p.Cells, want[i])
			}
			gotPop := popcount32(p.Mask)
			if gotPop != p.Cells {
				t.Errorf("mask has %d set bits, want Cells=%d", gotPop, p.Cells)
			}
		})
	}
}

func TestPlacementMaskBounds(t *testing.T) {
	tests := []struct {
		name   string
		piece  int
		x, y   int
		wantOK bool
	}{
		{"single cell at max offset", 0, 5, 3, true},
		{"single cell x out of bounds", 0, 6, 0, false},
		{"1x3 bar y out of bounds", 1, 0, 2, false},
		{"2x2 square at max offset", 4, 4, 2, true},
		{"2x2 square x out of bounds", 4, 5, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := OffsetAction(tt.x, tt.y)
			_, ok := PlacementMask(tt.piece, a)
			if ok != tt.wantOK {
				t.Errorf("PlacementMask(piece=%d, x=%d, y=%d) ok = %v, want %v", tt.piece, tt.x, tt.y, ok, tt.wantOK)
			}
		})
	}
}

func TestLegalSkipAlwaysLegal(t *testing.T) {
	if !Legal(Terminal, 0, SkipAction) {
		t.Error("skip must always be legal, even on a full board")
	}
	if !Legal(Empty, 3, SkipAction) {
		t.Error("skip must always be legal on an empty board")
	}
}

func TestLegalRejectsOverlap(t *testing.T) {
	a := OffsetAction(0, 0)
	mask, ok := PlacementMask(0, a)
	if !ok {
		t.Fatal("expected placement to be defined")
	}
	occupied := Board(mask)
	if Legal(occupied, 0, a) {
		t.Error("placing piece 0 at (0,0) on a board that already has that cell filled should be illegal")
	}
	if !Legal(Empty, 0, a) {
		t.Error("placing piece 0 at (0,0) on an empty board should be legal")
	}
}

func TestGameStatePerformPlacementAndSkip(t *testing.T) {
	g := &GameState{Board: Empty, Figure: 0}

	if err := g.Perform(OffsetAction(0, 0)); err != nil {
		t.Fatalf("Perform: %v", err)
	}
	if g.Round != 1 {
		t.Errorf("Round = %d, want 1", g.Round)
	}
	if !g.Board.IsFilled(OffsetAction(0, 0)) {
		t.Error("cell (0,0) should be filled after placement")
	}

	if err := g.Perform(SkipAction); err != nil {
		t.Fatalf("Perform(skip): %v", err)
	}
	if g.Round != 2 {
		t.Errorf("Round = %d, want 2", g.Round)
	}
}

func TestGameStatePerformIllegal(t *testing.T) {
	g := &GameState{Board: Terminal, Figure: 0}
	if err := g.Perform(OffsetAction(0, 0)); err == nil {
		t.Error("expected ErrIllegalAction when placing on a full board")
	}
}

func TestGameStateIsFinished(t *testing.T) {
	g := &GameState{Board: Terminal}
	if !g.IsFinished() {
		t.Error("terminal board should report finished")
	}
	g.Board = Empty
	if g.IsFinished() {
		t.Error("empty board should not report finished")
	}
}

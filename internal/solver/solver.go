package solver

import (
	"math/rand"

	"github.com/z0vix/blockdp/internal/dp"
	"github.com/z0vix/blockdp/internal/gridstate"
)

// Result pairs a chosen action with its expected-rounds distance, as
// returned by Distances.
type Result struct {
	Action   int
	Distance float32
}

// Solver is the minimal capability every strategy for this game
// implements: given a state, choose an action. Reducing the abstract
// "solver" to this single operation lets alternative strategies (a
// fully-computed DP table, a placeholder, a random baseline) share one
// interface without any of the scaffolding an OOP base class would add.
type Solver interface {
	Solve(board gridstate.Board, piece int) int
}

// TableSolver answers Solve/Distances from a fully-computed dp.Table.
// Lookups are O(1) and safe for concurrent use once the table the
// driver built it from is no longer being mutated.
type TableSolver struct {
	table *dp.Table
	spec  dp.Spec
}

// NewTableSolver wraps a finalized table for lookups.
func NewTableSolver(table *dp.Table, spec dp.Spec) *TableSolver {
	return &TableSolver{table: table, spec: spec}
}

// Solve returns the optimal action for (board, piece).
func (s *TableSolver) Solve(board gridstate.Board, piece int) int {
	return int(s.table.Act(s.table.Index(uint32(board), piece)))
}

// Distances returns the (action, expected-rounds) pair for every piece,
// in piece-index order.
func (s *TableSolver) Distances(board gridstate.Board) [gridstate.NumPieces]Result {
	var out [gridstate.NumPieces]Result
	for p := 0; p < s.spec.NumPieces() && p < gridstate.NumPieces; p++ {
		idx := s.table.Index(uint32(board), p)
		out[p] = Result{Action: int(s.table.Act(idx)), Distance: s.table.Dst(idx)}
	}
	return out
}

// Unready is a placeholder Solver returned before a table has finished
// computing — the same role tablebase.NoopProber plays for chess
// tablebases that haven't been downloaded yet. It always skips, which
// is always legal.
type Unready struct{}

// Solve always returns the skip action.
func (Unready) Solve(board gridstate.Board, piece int) int {
	return gridstate.SkipAction
}

// Random is a baseline Solver that chooses uniformly among the legal
// actions for (board, piece), per spec.md §9's "alternative solvers...
// become distinct values implementing the same capability".
type Random struct {
	Rng *rand.Rand
}

// Solve picks a uniformly random legal action. Skip is always one of
// the candidates, so it is the only choice when no placement is legal.
func (r Random) Solve(board gridstate.Board, piece int) int {
	legal := make([]int, 0, gridstate.TotalCells+1)
	for a := 0; a < gridstate.TotalCells; a++ {
		if gridstate.Legal(board, piece, a) {
			legal = append(legal, a)
		}
	}
	legal = append(legal, gridstate.SkipAction)
	return legal[r.Rng.Intn(len(legal))]
}

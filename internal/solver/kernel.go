// Package solver implements the per-state update kernel and the
// height-stratified traversal driver described in spec.md §4.3-4.4,
// plus the read-only lookup interface callers use once the DP table is
// complete.
package solver

import (
	"math"

	"github.com/z0vix/blockdp/internal/dp"
)

// popcount32 returns the number of set bits in x.
func popcount32(x uint32) int {
	n := 0
	for x != 0 {
		x &= x - 1
		n++
	}
	return n
}

// kernel bundles the immutable inputs the per-board update needs: the
// spec, the precomputed subset table, and the table being finalized.
type kernel struct {
	spec    dp.Spec
	subsets []dp.Subset
	table   *dp.Table
}

// push enqueues a newly-discovered predecessor board onto the
// appropriate (lower) height stack. Supplied by the driver so the
// kernel itself has no knowledge of how stacks are stored.
type pushFunc func(height int, board uint32)

// process finalizes board's own row (the skip fix-up) and propagates
// its resulting value backward to every predecessor board, per
// spec.md §4.3. board must already have every placement-action entry
// in its own row finalized by successors processed at a strictly
// higher population.
func (k *kernel) process(board uint32, push pushFunc) {
	h := popcount32(board)
	n := k.spec.NumPieces()
	base := k.table.Index(board, 0)

	// Skip-action value: minimum over all non-empty subsets S of
	// (|S| + sum_{p in S} dst[B,p]) / |S|.
	skip := math.Inf(1)
	for _, s := range k.subsets {
		var sum float64
		for _, p := range s.Members {
			sum += float64(k.table.Dst(base + p))
		}
		expected := (float64(s.Size) + sum) / float64(s.Size)
		if expected < skip {
			skip = expected
		}
	}
	skipF := float32(skip)

	// No other goroutine can touch board's own row at this point (it
	// was enqueued, and thus processed, exactly once), so these are
	// plain writes rather than CAS.
	for p := 0; p < n; p++ {
		if k.table.Dst(base+p) > skipF {
			k.table.SetFinal(base+p, skipF, uint8(k.spec.SkipAction()))
		}
	}

	// avg(B): mean over pieces of the now skip-adjusted distances.
	var avgSum float64
	for p := 0; p < n; p++ {
		avgSum += float64(k.table.Dst(base + p))
	}
	stepValue := float32(1.0 + avgSum/float64(n))

	// Propagate to every predecessor: a board B' such that placing
	// piece p' at some legal offset a on B' yields B.
	for p := 0; p < n; p++ {
		piece := k.spec.Pieces[p]
		if h < piece.Cells {
			continue // B' would need negative population
		}
		for a := 0; a < k.spec.TotalCells; a++ {
			mask, ok := k.spec.PlacementMask(p, a)
			if !ok {
				continue
			}
			if board&mask != mask {
				continue // footprint not wholly filled in B
			}
			pred := board &^ mask
			predIdx := k.table.Index(pred, p)

			k.table.TryLower(predIdx, stepValue, uint8(a))

			if !k.table.TestAndSetVisited(pred) {
				push(h-piece.Cells, pred)
			}
		}
	}
}

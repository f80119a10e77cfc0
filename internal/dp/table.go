package dp

import (
	"fmt"
	"math"
	"runtime/debug"
	"sync/atomic"
)

// Table holds the two dense arrays the DP computes — expected rounds
// (Dst) and chosen action (Act) — plus the visited bitset the
// traversal driver uses to enqueue each board at most once.
//
// Dst is stored as raw IEEE-754 bits in a []uint32 so that concurrent
// "only lower" updates can be done with a lock-free compare-and-swap
// (spec: "lock-free CAS on the 32-bit dst entry, only lower it, retry
// on contention"). Dst/Act expose the decoded view.
type Table struct {
	Spec    Spec
	dstBits []uint32
	act     []uint8
	visited []uint64
}

// NewTable allocates a fresh table for spec, with every entry at +Inf
// distance and the skip action, and no board visited.
//
// Before allocating, it checks the three backing arrays' estimated size
// against the process's current soft memory limit (GOMEMLIMIT, read via
// debug.SetMemoryLimit(-1)) and returns an error instead of attempting
// an allocation the runtime would otherwise kill the process over. A
// process with no configured limit (the common case) skips the check
// entirely, matching the teacher's storage.NewStorage: return error
// from the constructor, don't let it panic.
func NewTable(spec Spec) (*Table, error) {
	n := spec.NumStates() * spec.NumPieces()
	estimated := int64(n)*4 + int64(n) + int64((spec.NumStates()+63)/64)*8

	if limit := debug.SetMemoryLimit(-1); limit != math.MaxInt64 && estimated > limit {
		return nil, fmt.Errorf("dp: table for %d states x %d pieces needs ~%d bytes, exceeding the %d byte soft memory limit (GOMEMLIMIT)",
			spec.NumStates(), spec.NumPieces(), estimated, limit)
	}

	t := &Table{
		Spec:    spec,
		dstBits: make([]uint32, n),
		act:     make([]uint8, n),
		visited: make([]uint64, (spec.NumStates()+63)/64),
	}
	infBits := math.Float32bits(float32(math.Inf(1)))
	for i := range t.dstBits {
		t.dstBits[i] = infBits
		t.act[i] = uint8(spec.SkipAction())
	}
	return t, nil
}

// Index returns the flat index of the (board, piece) entry.
func (t *Table) Index(board uint32, piece int) int {
	return int(board)*t.Spec.NumPieces() + piece
}

// Dst returns the expected-remaining-rounds value stored at idx.
func (t *Table) Dst(idx int) float32 {
	return math.Float32frombits(atomic.LoadUint32(&t.dstBits[idx]))
}

// Act returns the chosen action stored at idx.
func (t *Table) Act(idx int) uint8 {
	return t.act[idx]
}

// SetFinal directly writes dst/act at idx. Callers must only use this
// when no other goroutine can be touching idx concurrently — it is the
// discipline used to finalize a board's own row (see kernel.go), which
// by construction is only ever written by the single goroutine
// currently processing that board.
func (t *Table) SetFinal(idx int, dst float32, act uint8) {
	atomic.StoreUint32(&t.dstBits[idx], math.Float32bits(dst))
	t.act[idx] = act
}

// TryLower attempts to lower the distance stored at idx to val, retrying
// the compare-and-swap under contention. It returns true and records act
// iff it actually lowered the value — ties keep the existing action
// (first writer wins), matching the spec's tie-break rule.
func (t *Table) TryLower(idx int, val float32, act uint8) bool {
	for {
		old := atomic.LoadUint32(&t.dstBits[idx])
		if val >= math.Float32frombits(old) {
			return false
		}
		if atomic.CompareAndSwapUint32(&t.dstBits[idx], old, math.Float32bits(val)) {
			t.act[idx] = act
			return true
		}
	}
}

// TestAndSetVisited marks board as visited and reports whether it was
// already visited before this call (so the caller enqueues it only
// once). Safe for concurrent use.
func (t *Table) TestAndSetVisited(board uint32) (alreadyVisited bool) {
	word := board / 64
	bit := uint64(1) << (board % 64)
	for {
		old := atomic.LoadUint64(&t.visited[word])
		if old&bit != 0 {
			return true
		}
		if atomic.CompareAndSwapUint64(&t.visited[word], old, old|bit) {
			return false
		}
	}
}

// IsVisited reports whether board has been enqueued at some point.
func (t *Table) IsVisited(board uint32) bool {
	word := board / 64
	bit := uint64(1) << (board % 64)
	return atomic.LoadUint64(&t.visited[word])&bit != 0
}

// DstBits exposes the raw backing array for serialization (internal/cache).
func (t *Table) DstBits() []uint32 { return t.dstBits }

// ActBytes exposes the raw backing array for serialization (internal/cache).
func (t *Table) ActBytes() []uint8 { return t.act }

// LoadArrays replaces the table's dst/act arrays wholesale — used when
// reconstructing a table from a cache artifact whose shape already
// matches t.Spec. The visited set is left untouched (a loaded table is
// considered fully finalized; nothing re-enters the traversal driver).
func (t *Table) LoadArrays(dstBits []uint32, act []uint8) {
	t.dstBits = dstBits
	t.act = act
}

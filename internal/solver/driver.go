package solver

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/z0vix/blockdp/internal/config"
	"github.com/z0vix/blockdp/internal/dp"
	"github.com/z0vix/blockdp/internal/metrics"
)

// heightStacks holds, per population height, the boards first
// discovered at that height. Each height has its own mutex so pushes
// from boards being processed concurrently at a higher height don't
// contend across heights.
type heightStacks struct {
	mu   []sync.Mutex
	data [][]uint32
}

func newHeightStacks(totalCells int) *heightStacks {
	return &heightStacks{
		mu:   make([]sync.Mutex, totalCells+1),
		data: make([][]uint32, totalCells+1),
	}
}

func (hs *heightStacks) push(height int, board uint32) {
	hs.mu[height].Lock()
	hs.data[height] = append(hs.data[height], board)
	hs.mu[height].Unlock()
}

// drain removes and returns every board currently queued at height.
func (hs *heightStacks) drain(height int) []uint32 {
	hs.mu[height].Lock()
	boards := hs.data[height]
	hs.data[height] = nil
	hs.mu[height].Unlock()
	return boards
}

// Driver is the height-stratified traversal driver: it iterates board
// populations from TotalCells (terminal) down to 0, finalizing every
// board first discovered at each height before moving to the next.
type Driver struct {
	spec    dp.Spec
	table   *dp.Table
	subsets []dp.Subset
	cfg     config.Solver
}

// NewDriver builds a driver for spec, using cfg for the
// parallel/serial threshold and worker count (spec.md §5).
func NewDriver(spec dp.Spec, table *dp.Table, cfg config.Solver) *Driver {
	return &Driver{
		spec:    spec,
		table:   table,
		subsets: dp.ComputeSubsets(spec.NumPieces()),
		cfg:     cfg,
	}
}

// Run computes the complete DP table: every reachable (board, piece)
// entry is finalized when Run returns nil.
func (d *Driver) Run(ctx context.Context) error {
	stacks := newHeightStacks(d.spec.TotalCells)

	terminal := d.spec.Terminal()
	for p := 0; p < d.spec.NumPieces(); p++ {
		d.table.SetFinal(d.table.Index(terminal, p), 0, uint8(d.spec.SkipAction()))
	}
	d.table.TestAndSetVisited(terminal)
	stacks.push(d.spec.TotalCells, terminal)

	k := &kernel{spec: d.spec, subsets: d.subsets, table: d.table}

	for h := d.spec.TotalCells; h >= 0; h-- {
		boards := stacks.drain(h)
		if len(boards) == 0 {
			continue
		}

		start := time.Now()
		push := func(height int, board uint32) { stacks.push(height, board) }

		if len(boards) < d.cfg.ParallelThreshold {
			for _, b := range boards {
				k.process(b, push)
			}
		} else {
			if err := d.processParallel(ctx, k, boards, push); err != nil {
				return err
			}
		}

		metrics.RecordHeight(h, len(boards), time.Since(start))
	}

	return nil
}

// processParallel fans boards out across d.cfg.Workers goroutines using
// errgroup, barriering at the end of the height level (spec.md §5: "no
// cross-level parallelism"). Two boards at the same height may write to
// the same predecessor slot; dp.Table.TryLower and TestAndSetVisited are
// the CAS/atomic primitives that make that race safe.
func (d *Driver) processParallel(ctx context.Context, k *kernel, boards []uint32, push pushFunc) error {
	workers := d.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(boards) {
		workers = len(boards)
	}

	g, _ := errgroup.WithContext(ctx)
	chunk := (len(boards) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		lo := w * chunk
		if lo >= len(boards) {
			break
		}
		hi := lo + chunk
		if hi > len(boards) {
			hi = len(boards)
		}
		slice := boards[lo:hi]
		g.Go(func() error {
			for _, b := range slice {
				k.process(b, push)
			}
			return nil
		})
	}

	return g.Wait()
}

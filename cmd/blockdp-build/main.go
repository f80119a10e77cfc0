// Command blockdp-build computes (or loads from cache) the complete DP
// table for the placement game and prints a short summary, including
// the optimal action from the empty board.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/z0vix/blockdp/internal/cache"
	"github.com/z0vix/blockdp/internal/config"
	"github.com/z0vix/blockdp/internal/dp"
	"github.com/z0vix/blockdp/internal/gridstate"
	"github.com/z0vix/blockdp/internal/solver"
)

func main() {
	cachePath := flag.String("cache", "", "cache artifact path (default: platform cache dir)")
	rebuild := flag.Bool("rebuild", false, "ignore any existing cache and recompute")
	flag.Parse()

	path := *cachePath
	if path == "" {
		p, err := cache.DefaultPath()
		if err != nil {
			log.Fatalf("resolve default cache path: %v", err)
		}
		path = p
	}

	spec := gridstate.DPSpec()

	var table *dp.Table
	if !*rebuild {
		if t, err := cache.Load(path, spec); err == nil {
			log.Printf("loaded cache from %s", path)
			table = t
		} else {
			log.Printf("cache unavailable (%v), recomputing", err)
		}
	}

	if table == nil {
		table = build(spec, path)
	}

	s := solver.NewTableSolver(table, spec)

	dists := s.Distances(gridstate.Empty)
	log.Printf("empty board distances (action, expected rounds):")
	for p, d := range dists {
		log.Printf("  piece %d: action=%-2d distance=%.4f", p, d.Action, d.Distance)
	}
}

// build runs the DP traversal to completion and persists the result.
func build(spec dp.Spec, path string) *dp.Table {
	start := time.Now()

	table, err := dp.NewTable(spec)
	if err != nil {
		log.Fatalf("allocate table: %v", err)
	}
	drv := solver.NewDriver(spec, table, config.Default())
	if err := drv.Run(context.Background()); err != nil {
		log.Fatalf("dp run failed: %v", err)
	}

	log.Printf("computed %s states x %d pieces in %s",
		humanize.Comma(int64(spec.NumStates())), spec.NumPieces(), time.Since(start))

	if err := cache.Save(path, table, spec); err != nil {
		log.Printf("warning: failed to save cache to %s: %v", path, err)
		return table
	}
	if info, err := os.Stat(path); err == nil {
		log.Printf("saved cache to %s (%s)", path, humanize.Bytes(uint64(info.Size())))
	}
	return table
}

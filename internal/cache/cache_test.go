package cache

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/z0vix/blockdp/internal/dp"
)

func fixtureSpec() dp.Spec {
	return dp.Spec{
		TotalCells: 4,
		Pieces: []dp.PieceSpec{
			{Mask: 0b1000, Cells: 1, MaxX: 0, MaxY: 3},
			{Mask: 0b1100, Cells: 2, MaxX: 0, MaxY: 2},
		},
	}
}

func fixtureTable(t *testing.T, spec dp.Spec) *dp.Table {
	t.Helper()
	table, err := dp.NewTable(spec)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	for b := 0; b < spec.NumStates(); b++ {
		for p := 0; p < spec.NumPieces(); p++ {
			idx := table.Index(uint32(b), p)
			table.SetFinal(idx, float32(b)+float32(p)*0.5, uint8((b+p)%5))
		}
	}
	return table
}

func TestSaveLoadRoundTrip(t *testing.T) {
	spec := fixtureSpec()
	table := fixtureTable(t, spec)
	path := filepath.Join(t.TempDir(), "table.bdp")

	if err := Save(path, table, spec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path, spec)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	for b := 0; b < spec.NumStates(); b++ {
		for p := 0; p < spec.NumPieces(); p++ {
			idx := table.Index(uint32(b), p)
			if loaded.Dst(idx) != table.Dst(idx) {
				t.Errorf("board %d piece %d: Dst=%v, want %v", b, p, loaded.Dst(idx), table.Dst(idx))
			}
			if loaded.Act(idx) != table.Act(idx) {
				t.Errorf("board %d piece %d: Act=%d, want %d", b, p, loaded.Act(idx), table.Act(idx))
			}
		}
	}
}

func TestLoadMissingFileIsCacheMiss(t *testing.T) {
	spec := fixtureSpec()
	path := filepath.Join(t.TempDir(), "does-not-exist.bdp")

	_, err := Load(path, spec)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Load(missing) error = %v, want ErrCacheMiss", err)
	}
}

func TestLoadCorruptFileIsRemovedAndReported(t *testing.T) {
	spec := fixtureSpec()
	path := filepath.Join(t.TempDir(), "corrupt.bdp")

	if err := os.WriteFile(path, []byte("not a real cache file at all"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Load(path, spec)
	if !errors.Is(err, ErrCacheCorrupt) {
		t.Errorf("Load(corrupt) error = %v, want ErrCacheCorrupt", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, os.ErrNotExist) {
		t.Error("corrupt cache file should have been removed by Load")
	}
}

func TestLoadShapeMismatchIsCorrupt(t *testing.T) {
	spec := fixtureSpec()
	table := fixtureTable(t, spec)
	path := filepath.Join(t.TempDir(), "table.bdp")

	if err := Save(path, table, spec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	otherSpec := dp.Spec{TotalCells: 5, Pieces: spec.Pieces}
	_, err := Load(path, otherSpec)
	if !errors.Is(err, ErrCacheCorrupt) {
		t.Errorf("Load with mismatched spec error = %v, want ErrCacheCorrupt", err)
	}
}

func TestLoadTamperedChecksumIsCorrupt(t *testing.T) {
	spec := fixtureSpec()
	table := fixtureTable(t, spec)
	path := filepath.Join(t.TempDir(), "table.bdp")

	if err := Save(path, table, spec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	// Flip a byte well inside the compressed payload, past the fixed-size header.
	raw[len(raw)/2] ^= 0xff
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err = Load(path, spec)
	if !errors.Is(err, ErrCacheCorrupt) {
		t.Errorf("Load(tampered) error = %v, want ErrCacheCorrupt", err)
	}
}

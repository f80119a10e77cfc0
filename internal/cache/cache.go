// Package cache serializes a completed dp.Table to a single on-disk
// artifact and reloads it, skipping the DP computation entirely when a
// well-formed artifact is present (spec.md §4.5/§6).
//
// Layout (little-endian throughout), grounded on the teacher's
// encoding/binary fixed-record reader/writer (internal/book.go's
// Polyglot loader) but self-describing rather than fixed-record:
//
//	magic      [4]byte  "BDP1"
//	version    uint8
//	totalCells uint8
//	numPieces  uint8
//	numStates  uint64   // 1 << totalCells, redundant shape check
//	dstLen     uint64   // length of the zstd-compressed dst payload
//	dst        []byte   // zstd(raw little-endian float32 bits, one per entry)
//	actLen     uint64   // length of the zstd-compressed act payload
//	act        []byte   // zstd(raw uint8 actions, one per entry)
//	checksum   uint64   // xxhash64 of the *uncompressed* dst||act bytes
package cache

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"

	"github.com/z0vix/blockdp/internal/dp"
)

var magic = [4]byte{'B', 'D', 'P', '1'}

const formatVersion = 1

// ErrCacheMiss indicates the cache artifact is absent. It is not an
// error condition for callers — it simply means the DP must be run.
var ErrCacheMiss = errors.New("cache: artifact not found")

// ErrCacheCorrupt indicates the artifact exists but is unreadable,
// malformed, or fails its checksum. Load always removes the file
// before returning this error, so the next attempt sees ErrCacheMiss.
var ErrCacheCorrupt = errors.New("cache: artifact is corrupt")

// Save writes table's dst/act arrays to path as a single artifact.
func Save(path string, table *dp.Table, spec dp.Spec) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cache: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := bufio.NewWriter(f)

	dstRaw := encodeDst(table.DstBits())
	actRaw := table.ActBytes()

	h := xxhash.New()
	h.Write(dstRaw)
	h.Write(actRaw)
	checksum := h.Sum64()

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return fmt.Errorf("cache: new zstd encoder: %w", err)
	}
	defer enc.Close()

	dstCompressed := enc.EncodeAll(dstRaw, nil)
	actCompressed := enc.EncodeAll(actRaw, nil)

	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	header := []byte{formatVersion, uint8(spec.TotalCells), uint8(spec.NumPieces())}
	if _, err := w.Write(header); err != nil {
		return err
	}
	if err := writeUint64(w, uint64(spec.NumStates())); err != nil {
		return err
	}
	if err := writeUint64(w, uint64(len(dstCompressed))); err != nil {
		return err
	}
	if _, err := w.Write(dstCompressed); err != nil {
		return err
	}
	if err := writeUint64(w, uint64(len(actCompressed))); err != nil {
		return err
	}
	if _, err := w.Write(actCompressed); err != nil {
		return err
	}
	if err := writeUint64(w, checksum); err != nil {
		return err
	}

	return w.Flush()
}

// Load reads path and reconstructs a dp.Table for spec. A missing file
// returns ErrCacheMiss. A present-but-malformed file is deleted and
// ErrCacheCorrupt is returned, wrapping the underlying cause — callers
// should treat both the same way: fall back to running the DP.
func Load(path string, spec dp.Spec) (*dp.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("cache: open %s: %w", path, err)
	}
	defer f.Close()

	table, err := load(f, spec)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, fmt.Errorf("%w: %v", ErrCacheCorrupt, err)
	}
	return table, nil
}

func load(r io.Reader, spec dp.Spec) (*dp.Table, error) {
	br := bufio.NewReader(r)

	var gotMagic [4]byte
	if _, err := io.ReadFull(br, gotMagic[:]); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if gotMagic != magic {
		return nil, fmt.Errorf("bad magic %q", gotMagic)
	}

	header := make([]byte, 3)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	version, totalCells, numPieces := header[0], int(header[1]), int(header[2])
	if version != formatVersion {
		return nil, fmt.Errorf("unsupported version %d", version)
	}
	if totalCells != spec.TotalCells || numPieces != spec.NumPieces() {
		return nil, fmt.Errorf("shape mismatch: file has %d cells/%d pieces, want %d/%d",
			totalCells, numPieces, spec.TotalCells, spec.NumPieces())
	}

	numStates, err := readUint64(br)
	if err != nil {
		return nil, fmt.Errorf("read numStates: %w", err)
	}
	if numStates != uint64(spec.NumStates()) {
		return nil, fmt.Errorf("numStates mismatch: file has %d, want %d", numStates, spec.NumStates())
	}

	dstCompressed, err := readBlock(br)
	if err != nil {
		return nil, fmt.Errorf("read dst block: %w", err)
	}
	actCompressed, err := readBlock(br)
	if err != nil {
		return nil, fmt.Errorf("read act block: %w", err)
	}
	wantChecksum, err := readUint64(br)
	if err != nil {
		return nil, fmt.Errorf("read checksum: %w", err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("new zstd decoder: %w", err)
	}
	defer dec.Close()

	dstRaw, err := dec.DecodeAll(dstCompressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress dst: %w", err)
	}
	actRaw, err := dec.DecodeAll(actCompressed, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress act: %w", err)
	}

	h := xxhash.New()
	h.Write(dstRaw)
	h.Write(actRaw)
	if h.Sum64() != wantChecksum {
		return nil, errors.New("checksum mismatch")
	}

	n := spec.NumStates() * spec.NumPieces()
	if len(dstRaw) != n*4 || len(actRaw) != n {
		return nil, fmt.Errorf("payload size mismatch: dst=%d act=%d want n=%d", len(dstRaw), len(actRaw), n)
	}

	table, err := dp.NewTable(spec)
	if err != nil {
		return nil, fmt.Errorf("allocate table: %w", err)
	}
	table.LoadArrays(decodeDst(dstRaw), actRaw)
	return table, nil
}

func encodeDst(bits []uint32) []byte {
	out := make([]byte, len(bits)*4)
	for i, b := range bits {
		binary.LittleEndian.PutUint32(out[i*4:], b)
	}
	return out
}

func decodeDst(raw []byte) []uint32 {
	out := make([]uint32, len(raw)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return out
}

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func readBlock(r io.Reader) ([]byte, error) {
	length, err := readUint64(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// File: io.go
// Role: on-disk format (de)serialization for FixedDegreeGraph: the
//       "efanna" and "fbin" KNNG input formats, and the "KNNG"/"NSG" output
//       formats (spec.md S6). All integer fields are little-endian; the
//       EmptyID sentinel (-1) round-trips as 0xFFFFFFFF.
// Determinism:
//   - LoadKNNG followed immediately by SaveKNNG reproduces the source file
//     byte-for-byte (spec.md S8 property 8).

package graphstore

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
)

// LoadKNNG returns a new graph read from the "efanna" KNNG format: a sequence of
// per-node records, each a little-endian uint32 row width k (constant
// across records, but repeated and discarded on every record after the
// first) followed by k little-endian uint32 neighbor ids. The node count
// is inferred from the file size.
func LoadKNNG(path string) (*FixedDegreeGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IoError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &IoError{Path: path, Op: "stat", Err: err}
	}

	var kBuf [4]byte
	if _, err := io.ReadFull(f, kBuf[:]); err != nil {
		return nil, &FormatError{Path: path, Msg: "file shorter than one row-width header"}
	}
	k := binary.LittleEndian.Uint32(kBuf[:])
	if k == 0 {
		return nil, &FormatError{Path: path, Msg: "row width k is zero"}
	}

	recordSize := int64(k+1) * 4
	if info.Size()%recordSize != 0 {
		return nil, &FormatError{Path: path, Msg: "file size is not a multiple of the record size"}
	}
	n := info.Size() / recordSize

	g, err := New(int32(n), int32(k))
	if err != nil {
		return nil, err
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, &IoError{Path: path, Op: "seek", Err: err}
	}
	r := bufio.NewReader(f)
	row := make([]uint32, k)
	for i := int32(0); i < int32(n); i++ {
		if _, err := io.ReadFull(r, kBuf[:]); err != nil {
			return nil, &FormatError{Path: path, Msg: "truncated record header"}
		}
		if err := binary.Read(r, binary.LittleEndian, row); err != nil {
			return nil, &FormatError{Path: path, Msg: "truncated record body"}
		}
		dst := g.Row(i)
		for j, id := range row {
			dst[j] = int32(id)
		}
	}
	return g, nil
}

// LoadKNNGFbin returns a new graph read from the "fbin" format: a header of N (u32), K
// (u32), followed by N*K little-endian u32 neighbor ids, row-major.
func LoadKNNGFbin(path string) (*FixedDegreeGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IoError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	var header [8]byte
	if _, err := io.ReadFull(f, header[:]); err != nil {
		return nil, &FormatError{Path: path, Msg: "file shorter than the fbin header"}
	}
	n := binary.LittleEndian.Uint32(header[0:4])
	k := binary.LittleEndian.Uint32(header[4:8])
	if n == 0 || k == 0 {
		return nil, &FormatError{Path: path, Msg: "N and K must both be positive"}
	}

	g, err := New(int32(n), int32(k))
	if err != nil {
		return nil, err
	}

	r := bufio.NewReader(f)
	row := make([]uint32, k)
	for i := int32(0); i < int32(n); i++ {
		if err := binary.Read(r, binary.LittleEndian, row); err != nil {
			return nil, &FormatError{Path: path, Msg: "truncated neighbor payload"}
		}
		dst := g.Row(i)
		for j, id := range row {
			dst[j] = int32(id)
		}
	}
	return g, nil
}

// SaveKNNG writes g in the "KNNG" output format: per node, a little-endian
// uint32 K followed by K little-endian uint32 neighbor ids. There is no
// global header; EmptyID serializes as 0xFFFFFFFF.
func (g *FixedDegreeGraph) SaveKNNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &IoError{Path: path, Op: "create", Err: err}
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	var kBuf [4]byte
	binary.LittleEndian.PutUint32(kBuf[:], uint32(g.k))
	row := make([]uint32, g.k)
	for i := int32(0); i < g.n; i++ {
		if _, err := w.Write(kBuf[:]); err != nil {
			return &IoError{Path: path, Op: "write", Err: err}
		}
		src := g.Row(i)
		for j, id := range src {
			row[j] = uint32(id)
		}
		if err := binary.Write(w, binary.LittleEndian, row); err != nil {
			return &IoError{Path: path, Op: "write", Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		return &IoError{Path: path, Op: "flush", Err: err}
	}
	return f.Close()
}

// SaveNSG writes g in the "NSG" output format: a header of K (u32) and a
// single entry point ep (u32, the first of g.Eps(), or 0 when Eps is
// empty), followed per node by edge_num (u32, always g.K()) and edge_num
// neighbor ids.
func (g *FixedDegreeGraph) SaveNSG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &IoError{Path: path, Op: "create", Err: err}
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	var header [8]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(g.k))
	var ep uint32
	if len(g.eps) > 0 {
		ep = uint32(g.eps[0])
	}
	binary.LittleEndian.PutUint32(header[4:8], ep)
	if _, err := w.Write(header[:]); err != nil {
		return &IoError{Path: path, Op: "write", Err: err}
	}

	var numBuf [4]byte
	binary.LittleEndian.PutUint32(numBuf[:], uint32(g.k))
	row := make([]uint32, g.k)
	for i := int32(0); i < g.n; i++ {
		if _, err := w.Write(numBuf[:]); err != nil {
			return &IoError{Path: path, Op: "write", Err: err}
		}
		src := g.Row(i)
		for j, id := range src {
			row[j] = uint32(id)
		}
		if err := binary.Write(w, binary.LittleEndian, row); err != nil {
			return &IoError{Path: path, Op: "write", Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		return &IoError{Path: path, Op: "flush", Err: err}
	}
	return f.Close()
}

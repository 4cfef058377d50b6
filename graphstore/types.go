// File: types.go
// Role: FixedDegreeGraph, GraphInfo, ReverseEdgeCounts -- the shapes every
//       build stage passes between itself and the next.
// Determinism:
//   - Row order and slot order within New()'s output are always -1 until
//     written; no stage relies on map iteration order anywhere in this type.
// Concurrency:
//   - Safe for concurrent readers once populated. Concurrent writers are
//     safe only across disjoint rows (Row(u) for different u never alias).

package graphstore

// EmptyID is the sentinel stored in a slot that carries no edge. It is
// never a valid node id: valid ids occupy [0, N).
const EmptyID int32 = -1

// GraphInfo carries the shape parameters shared by every build stage.
//
// The invariant R <= R_INIT <= R_KNNG must hold: R_INIT bounds how much of
// each KNNG row ReorderStage considers, R bounds the final out-degree, and
// R_KNNG is simply the width of the input KNNG.
type GraphInfo struct {
	N      int32 // node count
	R      int32 // final output degree
	RInit  int32 // reorder candidate window
	RKNNG  int32 // input KNNG row width
}

// Validate checks the monotone precondition R <= R_INIT <= R_KNNG and that
// every field is positive. It is the one runtime check the core performs;
// everything downstream assumes it has already passed.
func (gi GraphInfo) Validate() error {
	if gi.N <= 0 {
		return &PreconditionError{Msg: "N must be positive"}
	}
	if gi.R <= 0 {
		return &PreconditionError{Msg: "R must be positive"}
	}
	if gi.RInit <= 0 {
		return &PreconditionError{Msg: "R_INIT must be positive"}
	}
	if gi.RKNNG <= 0 {
		return &PreconditionError{Msg: "R_KNNG must be positive"}
	}
	if !(gi.R <= gi.RInit && gi.RInit <= gi.RKNNG) {
		return &PreconditionError{Msg: "require R <= R_INIT <= R_KNNG"}
	}
	return nil
}

// ReverseEdgeCounts is a length-N vector of attempted-reverse-insertion
// counters. counts[x] is the number of candidate reverse edges ReverseStage
// tried to write into node x's row; the number actually stored is
// min(counts[x], K). MergeStage reads this to size its budget split.
type ReverseEdgeCounts []uint32

// Stored returns the number of reverse edges actually retained for node x,
// capped at the destination row width k.
func (c ReverseEdgeCounts) Stored(x int32, k int32) int32 {
	n := int32(c[x])
	if n > k {
		return k
	}
	return n
}

// FixedDegreeGraph is a flat, row-major store of N rows x K columns of node
// ids. Row u occupies slots [u*K, (u+1)*K) of the backing buffer; unused
// trailing slots hold EmptyID.
type FixedDegreeGraph struct {
	n    int32
	k    int32
	data []int32
	eps  []int32

	// region holds the huge-page-backed mapping when alloc succeeded that
	// way; nil when data was allocated with a plain make([]int32, ...).
	region *mmapRegion
}

// N returns the row count (node count).
func (g *FixedDegreeGraph) N() int32 { return g.n }

// K returns the row width (degree capacity).
func (g *FixedDegreeGraph) K() int32 { return g.k }

// Eps returns the entry-point ids carried alongside the graph for
// downstream search. The core never reads this itself; it is round-tripped
// through serialization only.
func (g *FixedDegreeGraph) Eps() []int32 { return g.eps }

// SetEps replaces the entry-point ids.
func (g *FixedDegreeGraph) SetEps(eps []int32) { g.eps = eps }

// New allocates an N x K FixedDegreeGraph with every slot initialized to
// EmptyID. N and K must both be positive.
func New(n, k int32) (*FixedDegreeGraph, error) {
	if n <= 0 || k <= 0 {
		return nil, &PreconditionError{Msg: "N and K must be positive"}
	}
	data, region, err := allocRows(int64(n) * int64(k))
	if err != nil {
		return nil, err
	}
	for i := range data {
		data[i] = EmptyID
	}
	return &FixedDegreeGraph{n: n, k: k, data: data, region: region}, nil
}

// Row returns the mutable K-slot view of node u's row. Callers may read or
// write any slot; writes to distinct rows never race with each other, but
// concurrent writes to the *same* row are the caller's responsibility.
func (g *FixedDegreeGraph) Row(u int32) []int32 {
	off := int64(u) * int64(g.k)
	return g.data[off : off+int64(g.k)]
}

// At reads slot j of row u.
func (g *FixedDegreeGraph) At(u, j int32) int32 {
	return g.data[int64(u)*int64(g.k)+int64(j)]
}

// SetAt writes slot j of row u.
func (g *FixedDegreeGraph) SetAt(u, j, id int32) {
	g.data[int64(u)*int64(g.k)+int64(j)] = id
}

// Close releases the huge-page mapping backing this graph, if any. It is a
// no-op for graphs allocated with the plain-slice fallback. Callers that
// explicitly release a KNNG between build stages (spec's "release the KNNG
// as soon as reorder finishes") call Close rather than waiting on the GC.
func (g *FixedDegreeGraph) Close() error {
	if g.region == nil {
		g.data = nil
		return nil
	}
	err := g.region.unmap()
	g.data = nil
	g.region = nil
	return err
}

// Package graphstore provides the fixed-degree adjacency store that the
// cagra build pipeline reads and writes.
//
// Unlike a general-purpose graph (arbitrary vertices and edges, mutated one
// at a time under locks), a FixedDegreeGraph is a flat, row-major buffer of
// N rows x K columns of node ids, allocated once and never resized. Every
// row holds exactly K slots; an empty slot carries the sentinel -1. This
// shape matches exactly what a KNNG, a reordered candidate list, a reverse
// graph, and a final merged proximity graph all are: N node ids, each with
// up to K neighbors.
//
// Because every row owns a disjoint slice of the backing buffer, concurrent
// writers that each own a distinct row need no locking at all -- the
// reorder, reverse, and merge stages all rely on this property. The only
// place true concurrent coordination is needed is ReverseStage's per-
// destination slot counter, which is a plain atomic, not a mutex.
//
// Components:
//
//	FixedDegreeGraph -- the N x K adjacency buffer, entry points, and
//	                     (de)serialization to the efanna/fbin/NSG/KNNG
//	                     on-disk formats.
//	GraphInfo        -- the shape parameters (N, R, R_INIT, R_KNNG) shared
//	                     by every stage.
//	ReverseEdgeCounts -- the per-node attempted-insertion counters produced
//	                     by ReverseStage and consumed by MergeStage.
//
// Errors:
//
//	PreconditionError -- shape parameters are invalid.
//	IoError            -- a backing file could not be opened/read/written.
//	FormatError        -- a backing file's contents are malformed.
//	AllocError         -- aligned/huge-page allocation failed.
package graphstore

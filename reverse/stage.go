// File: stage.go
// Role: ReverseStage -- deduplicated, bounded reverse-edge construction
//       over the reordered graph, node-parallel with a per-destination
//       atomic slot counter as the only cross-goroutine coordination.

package reverse

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/cagraph/cagra/graphstore"
)

const chunkSize = 100

// Result bundles the reverse graph with the per-destination attempted-
// insertion counts MergeStage needs to size its budget split.
type Result struct {
	Graph  *graphstore.FixedDegreeGraph
	Counts graphstore.ReverseEdgeCounts
}

// Run builds the reverse graph of reordered. reordered must already have
// shape (info.N, info.R); the returned graph has the same shape. chunk is
// the dynamic scheduling granularity; a non-positive value falls back to
// chunkSize.
func Run(ctx context.Context, reordered *graphstore.FixedDegreeGraph, info graphstore.GraphInfo, chunk int32) (*Result, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	if chunk <= 0 {
		chunk = chunkSize
	}

	out, err := graphstore.New(info.N, info.R)
	if err != nil {
		return nil, err
	}

	counters := make([]atomic.Uint32, info.N)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	for start := int32(0); start < info.N; start += chunk {
		start := start
		end := start + chunk
		if end > info.N {
			end = info.N
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			reverseChunk(reordered, out, counters, info.R, start, end)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	fillTrailingSentinels(out, counters, info)

	counts := make(graphstore.ReverseEdgeCounts, info.N)
	for i := range counts {
		counts[i] = counters[i].Load()
	}

	return &Result{Graph: out, Counts: counts}, nil
}

// reverseChunk processes source nodes [start, end): for every forward
// edge x -> y it owns, it attempts to claim a slot in y's reverse row
// unless y's forward row already lists x.
func reverseChunk(reordered, out *graphstore.FixedDegreeGraph, counters []atomic.Uint32, r int32, start, end int32) {
	for x := start; x < end; x++ {
		for _, y := range reordered.Row(x) {
			if y == graphstore.EmptyID {
				continue
			}
			if containsForward(reordered, y, x) {
				continue
			}
			pos := int32(counters[y].Add(1)) - 1
			if pos < r {
				out.SetAt(y, pos, x)
			}
		}
	}
}

// containsForward reports whether y's forward row already lists candidate
// as a neighbor -- the linear-scan dedup named in spec.md S4.3 as the
// minimum-memory variant.
func containsForward(reordered *graphstore.FixedDegreeGraph, y, candidate int32) bool {
	for _, z := range reordered.Row(y) {
		if z == candidate {
			return true
		}
	}
	return false
}

// fillTrailingSentinels writes EmptyID into every reverse row slot beyond
// the number of edges actually stored (min(counts[x], R)), per spec.md
// S4.3's post-pass.
func fillTrailingSentinels(out *graphstore.FixedDegreeGraph, counters []atomic.Uint32, info graphstore.GraphInfo) {
	for x := int32(0); x < info.N; x++ {
		stored := int32(counters[x].Load())
		if stored > info.R {
			stored = info.R
		}
		row := out.Row(x)
		for j := stored; j < info.R; j++ {
			row[j] = graphstore.EmptyID
		}
	}
}

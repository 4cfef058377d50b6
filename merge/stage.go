// File: stage.go
// Role: MergeStage -- degree-budget-balanced packing of forward and
//       reverse edges into the final adjacency row, node-parallel with no
//       shared state (rows are disjoint by construction).

package merge

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cagraph/cagra/graphstore"
	"github.com/cagraph/cagra/reverse"
)

const chunkSize = 100

// Run packs reordered and the reverse.Result into the final graph of
// shape (info.N, info.R). Every row is forward-edges-then-reverse-edges,
// split by Budget. chunk is the dynamic scheduling granularity; a
// non-positive value falls back to chunkSize.
func Run(ctx context.Context, reordered *graphstore.FixedDegreeGraph, rev *reverse.Result, info graphstore.GraphInfo, chunk int32) (*graphstore.FixedDegreeGraph, error) {
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
			mergeChunk(reordered, rev, out, info.R, start, end)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Budget computes the forward/reverse split for a node whose reverse
// store holds rSize edges, following spec.md S4.4's rule: reverse edges
// never take more than half the degree, and never more than actually
// exist.
func Budget(rSize, r int32) (sUse, rUse int32) {
	half := r / 2
	if rSize < half {
		rUse = rSize
	} else {
		rUse = half
	}
	sUse = r - rUse
	return sUse, rUse
}

func mergeChunk(reordered *graphstore.FixedDegreeGraph, rev *reverse.Result, out *graphstore.FixedDegreeGraph, r int32, start, end int32) {
	for x := start; x < end; x++ {
		rSize := rev.Counts.Stored(x, r)
		sUse, rUse := Budget(rSize, r)

		dst := out.Row(x)
		fwd := reordered.Row(x)
		rowRev := rev.Graph.Row(x)

		copy(dst[:sUse], fwd[:sUse])
		copy(dst[sUse:sUse+rUse], rowRev[:rUse])
	}
}

// File: stage.go
// Role: ReorderStage -- O(N*R_INIT^2) detour-redundancy ranking of each
//       node's KNNG candidates, node-parallel with dynamic chunking.

package reorder

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/cagraph/cagra/graphstore"
)

// chunkSize is the dynamic scheduling granularity named in spec.md S4.2:
// ~100 node ids per dispatched unit of work.
const chunkSize = 100

// candidate is one (count, id, rank) triple considered for node x's output
// row; rank is x's original KNN position for this candidate.
type candidate struct {
	count int32
	id    int32
	rank  int32
}

// Run ranks every node's first info.RInit KNNG candidates by detour count
// and writes the info.R least-detourable into a freshly allocated
// FixedDegreeGraph of width info.R, in ascending (count, rank) order.
//
// knng must have at least info.RInit columns; Run does not mutate it.
// chunk is the dynamic scheduling granularity (spec.md S4.2's "~100"); a
// non-positive value falls back to chunkSize.
func Run(ctx context.Context, knng *graphstore.FixedDegreeGraph, info graphstore.GraphInfo, chunk int32) (*graphstore.FixedDegreeGraph, error) {
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
			reorderChunk(knng, out, info, start, end)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// reorderChunk processes nodes [start, end), reusing a single rank-index
// map and pair buffer across every node in the chunk (per spec.md S4.2's
// thread-local scratch, here chunk-local since each chunk runs on one
// goroutine start to finish).
func reorderChunk(knng, out *graphstore.FixedDegreeGraph, info graphstore.GraphInfo, start, end int32) {
	rank := make(map[int32]int32, info.RInit)
	pairs := make([]candidate, info.RInit)

	for x := start; x < end; x++ {
		row := knng.Row(x)[:info.RInit]

		for k := range rank {
			delete(rank, k)
		}
		for i, y := range row {
			if y == graphstore.EmptyID {
				continue
			}
			rank[y] = int32(i)
		}

		for i, y := range row {
			var count int32
			if y != graphstore.EmptyID {
				yRow := knng.Row(y)
				limit := info.RInit
				if int32(len(yRow)) < limit {
					limit = int32(len(yRow))
				}
				for j := int32(0); j < limit; j++ {
					z := yRow[j]
					if z == graphstore.EmptyID {
						continue
					}
					posZ, ok := rank[z]
					if !ok {
						continue
					}
					if maxI32(int32(i), j) < posZ {
						count++
					}
				}
			}
			pairs[i] = candidate{count: count, id: y, rank: int32(i)}
		}

		sort.SliceStable(pairs, func(a, b int) bool {
			if pairs[a].count != pairs[b].count {
				return pairs[a].count < pairs[b].count
			}
			return pairs[a].rank < pairs[b].rank
		})

		dst := out.Row(x)
		for idx := int32(0); idx < info.R; idx++ {
			dst[idx] = pairs[idx].id
		}
	}
}

func maxI32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// File: diagnostics.go
// Role: optional post-build diagnostic scans. These never influence
//       Build's output (spec.md S7) -- restored from original_source's
//       commented-out/#ifdef DEBUG edge-dedup scan (SPEC_FULL.md S6.3).

package cagra

import "github.com/cagraph/cagra/graphstore"

// DedupStats scans g and reports how many of its edges are duplicates
// within their own row. For a correctly built final graph (spec.md S8
// property 3) dedup is always 0 and ratio is always 1; a nonzero dedup
// count indicates a build invariant was violated upstream.
func DedupStats(g *graphstore.FixedDegreeGraph) (edges, dedup int64, ratio float64) {
	seen := make(map[int32]struct{}, g.K())
	for x := int32(0); x < g.N(); x++ {
		for k := range seen {
			delete(seen, k)
		}
		for _, id := range g.Row(x) {
			if id == graphstore.EmptyID {
				continue
			}
			edges++
			if _, dup := seen[id]; dup {
				dedup++
				continue
			}
			seen[id] = struct{}{}
		}
	}
	if edges == 0 {
		return 0, 0, 1
	}
	distinct := edges - dedup
	return edges, dedup, float64(distinct) / float64(edges)
}

// File: prefetch.go
// Role: best-effort cache prefetch hints. Go exposes no software-prefetch
// intrinsic (unlike the original C++'s _mm_prefetch/__builtin_prefetch), so
// this is a documented no-op when unavailable -- it has no effect on
// correctness either way (spec.md S4.1).

package graphstore

// Prefetch is a best-effort hint that the `lines` cache lines starting at
// node u's row will be accessed soon. On platforms where the
// huge-page-backed allocator is active, this issues a MADV_WILLNEED advise
// call; otherwise it is a no-op. Callers must never rely on it for
// correctness.
func (g *FixedDegreeGraph) Prefetch(u int32, lines int) {
	if g.region == nil || lines <= 0 {
		return
	}
	g.region.willNeed(rowByteRange(g, u, lines))
}

func rowByteRange(g *FixedDegreeGraph, u int32, lines int) (off, length int64) {
	off = int64(u) * int64(g.k) * 4
	length = int64(lines) * 64
	if off+length > int64(len(g.data))*4 {
		length = int64(len(g.data))*4 - off
	}
	if length < 0 {
		length = 0
	}
	return off, length
}

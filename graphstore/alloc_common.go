// File: alloc_common.go
// Role: platform-independent pieces of row storage allocation: the plain
//       slice fallback and the unsafe byte<->int32 reinterpretation used by
//       the mmap-backed path.

package graphstore

import "unsafe"

// allocFallback returns a plain, GC-managed []int32 of length n. It is the
// correctness baseline every platform falls back to; the Go allocator does
// not guarantee 64-byte alignment, but nothing in this package's semantics
// depends on alignment -- only on each row being a contiguous, disjoint
// sub-slice (spec.md S3, S9).
func allocFallback(n int64) ([]int32, *mmapRegion, error) {
	return make([]int32, n), nil, nil
}

// bytesToInt32Slice reinterprets a byte buffer as an []int32 of b's full
// capacity. The caller is responsible for slicing down to the logical
// length and for keeping b alive for as long as the returned slice is used.
func bytesToInt32Slice(b []byte) []int32 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*int32)(unsafe.Pointer(&b[0])), len(b)/4)
}

//go:build linux

// File: alloc_linux.go
// Role: huge-page-backed row storage on Linux via golang.org/x/sys/unix.
// Falls back to a plain slice (allocFallback in alloc_common.go) whenever
// mmap fails; a failed huge-page advice is ignored -- huge pages are a performance optimization,
// never a correctness requirement (spec.md S3).

package graphstore

import (
	"golang.org/x/sys/unix"
)

const hugePageSize = 2 << 20 // 2 MiB

// mmapRegion owns an anonymous mmap'd range backing a FixedDegreeGraph's
// row data.
type mmapRegion struct {
	b []byte
}

func (r *mmapRegion) unmap() error {
	if r == nil || r.b == nil {
		return nil
	}
	err := unix.Munmap(r.b)
	r.b = nil
	return err
}

// willNeed issues a best-effort MADV_WILLNEED advise over [off, off+length)
// of the backing mapping, widened down to the page containing off. Errors
// are ignored: this is a performance hint.
func (r *mmapRegion) willNeed(off, length int64) {
	if r == nil || r.b == nil || length <= 0 {
		return
	}
	end := off + length
	if end > int64(len(r.b)) {
		end = int64(len(r.b))
	}
	// madvise requires a page-aligned start: advise from the containing page.
	off -= off % int64(unix.Getpagesize())
	if off >= end {
		return
	}
	_ = unix.Madvise(r.b[off:end], unix.MADV_WILLNEED)
}

// allocRows returns a zero-filled []int32 of the requested length, backed
// by an anonymous mapping whose length is rounded up to a multiple of
// 2 MiB and advised MADV_HUGEPAGE when the kernel supports it. The
// mapping's start address is whatever mmap returns (page-aligned); it is
// not aligned to 2 MiB. On mmap failure it falls back to a plain
// make([]int32, n), which is always correct, just not huge-page backed; a
// failed MADV_HUGEPAGE advise is ignored.
func allocRows(n int64) ([]int32, *mmapRegion, error) {
	if n <= 0 {
		return nil, nil, &PreconditionError{Msg: "row buffer length must be positive"}
	}
	nbytes := n * 4
	length := alignUp(nbytes, hugePageSize)

	b, err := unix.Mmap(-1, 0, int(length), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return allocFallback(n)
	}
	// Best-effort: huge pages are an optimization, not a requirement.
	_ = unix.Madvise(b, unix.MADV_HUGEPAGE)

	return bytesToInt32Slice(b)[:n], &mmapRegion{b: b}, nil
}

func alignUp(n, align int64) int64 {
	return (n + align - 1) / align * align
}

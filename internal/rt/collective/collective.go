// Package collective holds the work-partitioning and accumulation kernels
// behind the broadcast and reduction operations. The engine owns the task
// fan-out; this package owns the arithmetic.
package collective

import "encoding/binary"

// Range is a half-open sub-range [Lo, Hi) of a reduction's element index
// space, assigned to one Reduce task.
type Range struct {
	Lo, Hi int
}

// Ranges splits [0, nelems) into min(parts, nelems) contiguous sub-ranges of
// near-equal length. The first nelems%k ranges get one extra element, so the
// lengths differ by at most one and every element is covered exactly once.
func Ranges(nelems, parts int) []Range {
	if nelems <= 0 || parts <= 0 {
		return nil
	}
	if parts > nelems {
		parts = nelems
	}
	out := make([]Range, parts)
	base := nelems / parts
	extra := nelems % parts
	lo := 0
	for i := range out {
		n := base
		if i < extra {
			n++
		}
		out[i] = Range{Lo: lo, Hi: lo + n}
		lo += n
	}
	return out
}

// Accumulate adds the packed elements of src elementwise into dst. Both
// buffers hold the same number of elemSize-wide little-endian integers.
// Addition is modular two's-complement, so the same code serves the signed
// and unsigned widths.
func Accumulate(dst, src []byte, elemSize int) {
	switch elemSize {
	case 4:
		for off := 0; off+4 <= len(dst); off += 4 {
			sum := binary.LittleEndian.Uint32(dst[off:]) + binary.LittleEndian.Uint32(src[off:])
			binary.LittleEndian.PutUint32(dst[off:], sum)
		}
	default:
		for off := 0; off+8 <= len(dst); off += 8 {
			sum := binary.LittleEndian.Uint64(dst[off:]) + binary.LittleEndian.Uint64(src[off:])
			binary.LittleEndian.PutUint64(dst[off:], sum)
		}
	}
}

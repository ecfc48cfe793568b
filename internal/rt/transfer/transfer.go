// Package transfer implements the strided element-wise copy kernels behind
// the runtime's get/put operations.
//
// The kernels work on raw byte views of the emulated memory: Gather pulls a
// strided sequence out of a partition into a packed buffer, Scatter is the
// mirror write. Typed entry points differ only in element width, so the
// width is a parameter here and the type-specific code is confined to the
// Encode/Decode pair used at the public API boundary.
//
// Stride is always expressed in element units. Span converts a (nelems,
// stride) pair into the byte length the strided sequence occupies, which is
// what bounds checks compare against the target partition.
package transfer

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"github.com/kolkov/xbgas/internal/rt/rterr"
)

// Elem enumerates the element types with dedicated transfer entry points.
type Elem interface {
	~int32 | ~int64 | ~uint64
}

// Sequences of at least unrollThreshold elements are copied unrollFactor at
// a time.
const (
	unrollThreshold = 8
	unrollFactor    = 4
)

// ElemSize returns the width in bytes of T.
func ElemSize[T Elem]() int {
	var z T
	return int(unsafe.Sizeof(z))
}

// Span returns the number of bytes the strided sequence [0, nelems) with the
// given stride covers, from the first byte of element 0 through the last
// byte of element nelems-1. It validates the stride (strictly positive) and
// the element count.
func Span(nelems, stride, elemSize int) (uint64, error) {
	if stride < 1 {
		return 0, fmt.Errorf("transfer: stride %d: %w", stride, rterr.ErrInvalidStride)
	}
	if nelems < 0 {
		return 0, fmt.Errorf("transfer: negative element count %d: %w", nelems, rterr.ErrOutOfRange)
	}
	if nelems == 0 {
		return 0, nil
	}
	return (uint64(nelems-1)*uint64(stride) + 1) * uint64(elemSize), nil
}

// Gather copies nelems elements of elemSize bytes from the strided view src
// into the packed buffer dst. src must cover the full span and dst at least
// nelems*elemSize bytes; callers establish both via Span.
func Gather(dst, src []byte, nelems, stride, elemSize int) {
	step := stride * elemSize
	i := 0
	if nelems >= unrollThreshold {
		for ; i+unrollFactor <= nelems; i += unrollFactor {
			d := i * elemSize
			s := i * step
			copy(dst[d:d+elemSize], src[s:])
			copy(dst[d+elemSize:d+2*elemSize], src[s+step:])
			copy(dst[d+2*elemSize:d+3*elemSize], src[s+2*step:])
			copy(dst[d+3*elemSize:d+4*elemSize], src[s+3*step:])
		}
	}
	for ; i < nelems; i++ {
		copy(dst[i*elemSize:(i+1)*elemSize], src[i*step:])
	}
}

// Scatter copies nelems packed elements from src into the strided view dst.
func Scatter(dst, src []byte, nelems, stride, elemSize int) {
	step := stride * elemSize
	i := 0
	if nelems >= unrollThreshold {
		for ; i+unrollFactor <= nelems; i += unrollFactor {
			d := i * step
			s := i * elemSize
			copy(dst[d:d+elemSize], src[s:])
			copy(dst[d+step:d+step+elemSize], src[s+elemSize:])
			copy(dst[d+2*step:d+2*step+elemSize], src[s+2*elemSize:])
			copy(dst[d+3*step:d+3*step+elemSize], src[s+3*elemSize:])
		}
	}
	for ; i < nelems; i++ {
		copy(dst[i*step:i*step+elemSize], src[i*elemSize:])
	}
}

// Encode packs src into dst in the emulated memory's element encoding
// (little-endian). dst must hold len(src)*ElemSize[T] bytes.
func Encode[T Elem](dst []byte, src []T) {
	switch ElemSize[T]() {
	case 4:
		for i, v := range src {
			binary.LittleEndian.PutUint32(dst[i*4:], uint32(v))
		}
	default:
		for i, v := range src {
			binary.LittleEndian.PutUint64(dst[i*8:], uint64(v))
		}
	}
}

// Decode unpacks len(dst) elements from the packed buffer src.
func Decode[T Elem](dst []T, src []byte) {
	switch ElemSize[T]() {
	case 4:
		for i := range dst {
			dst[i] = T(int32(binary.LittleEndian.Uint32(src[i*4:])))
		}
	default:
		for i := range dst {
			dst[i] = T(int64(binary.LittleEndian.Uint64(src[i*8:])))
		}
	}
}

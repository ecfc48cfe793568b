package xbgas

import "github.com/kolkov/xbgas/internal/rt/rterr"

// The runtime error taxonomy. Operations wrap these sentinels with context,
// so classify with errors.Is.
var (
	// ErrClosed is returned by every Runtime method after Close.
	ErrClosed = rterr.ErrClosed

	// ErrInvalidPE marks a PE index outside [0, NumPEs()).
	ErrInvalidPE = rterr.ErrInvalidPE

	// ErrTooManyPEs is returned by Open when the configured PE count
	// exceeds MaxPEs.
	ErrTooManyPEs = rterr.ErrTooManyPEs

	// ErrOutOfRange marks a transfer whose resolved span leaves the target
	// PE's partition, or an address outside the emulated global region.
	ErrOutOfRange = rterr.ErrOutOfRange

	// ErrInvalidStride marks a stride that is not strictly positive.
	ErrInvalidStride = rterr.ErrInvalidStride

	// ErrAllocationFailure is returned when the shared allocator cannot
	// satisfy an Alloc.
	ErrAllocationFailure = rterr.ErrAllocationFailure

	// ErrDoubleFree marks a Free of a block that was already freed.
	ErrDoubleFree = rterr.ErrDoubleFree

	// ErrUntrackedFree marks a Free of an address the runtime never
	// allocated.
	ErrUntrackedFree = rterr.ErrUntrackedFree

	// ErrPoolClosed marks a task submitted after worker shutdown; visible
	// to applications only through misuse of Close.
	ErrPoolClosed = rterr.ErrPoolClosed

	// ErrBadConfig is returned by Open for unusable configurations.
	ErrBadConfig = rterr.ErrBadConfig
)

// Package rterr defines the runtime error taxonomy shared by the engine
// packages and re-exported by the public xbgas package.
//
// Every error condition the runtime detects maps to exactly one sentinel
// below. Detection sites wrap these with fmt.Errorf("...: %w", ...) so that
// callers can classify failures with errors.Is while still seeing the
// operation-specific context in the message.
//
// Addressing and identity errors (ErrInvalidPE, ErrOutOfRange,
// ErrInvalidStride) are programming errors: they are reported synchronously
// at the call site and are never retried. Capability-level faults on
// well-formed addresses are the responsibility of the allocator collaborator
// and have no sentinel here.
package rterr

import "errors"

var (
	// ErrClosed is returned by every runtime operation after Close.
	ErrClosed = errors.New("runtime is closed")

	// ErrInvalidPE is returned when a PE index falls outside [0, npes).
	ErrInvalidPE = errors.New("invalid PE index")

	// ErrTooManyPEs is returned when the configured PE count exceeds the
	// worker pool capacity.
	ErrTooManyPEs = errors.New("PE count exceeds pool capacity")

	// ErrOutOfRange is returned when a resolved address, or the full strided
	// span of a transfer, falls outside the target PE's partition.
	ErrOutOfRange = errors.New("address outside target PE partition")

	// ErrInvalidStride is returned when a transfer stride is not strictly
	// positive. Stride is expressed in element units, never bytes.
	ErrInvalidStride = errors.New("stride must be positive")

	// ErrAllocationFailure is returned when the shared allocator cannot
	// satisfy a request (exhausted heap or tracking slots).
	ErrAllocationFailure = errors.New("shared allocation failed")

	// ErrDoubleFree is returned when freeing a block that was already freed.
	ErrDoubleFree = errors.New("double free of shared block")

	// ErrUntrackedFree is returned when freeing an address the tracker has
	// never seen.
	ErrUntrackedFree = errors.New("free of untracked address")

	// ErrPoolClosed is returned when a task is submitted after the worker
	// pool received its shutdown signal.
	ErrPoolClosed = errors.New("task submitted after pool shutdown")

	// ErrBadConfig is returned by Open for configurations that cannot
	// describe a valid partitioned address space.
	ErrBadConfig = errors.New("invalid runtime configuration")
)

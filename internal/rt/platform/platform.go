// Package platform abstracts the hardware/ISA layer that supplies PE
// identity, topology, and the bounds of the emulated global address space.
//
// The real xBGAS runtime obtains these values from assembly accessors tied to
// the ISA. Here they are modeled as an injected capability so the engine core
// never depends on a specific hardware-query mechanism: tests and the
// single-node emulation supply an Emulated instance, and a port to real
// hardware would supply its own implementation.
package platform

import "runtime"

// Platform supplies the runtime's view of the machine it is executing on.
//
// All methods must be safe for concurrent use and must return stable values
// for the lifetime of the runtime: the engine reads them once at Open and
// assumes they never change.
type Platform interface {
	// ID returns the logical PE identifier of the calling process.
	ID() int

	// NumPEs returns the total number of processing elements configured.
	NumPEs() int

	// MemSize returns the total size in bytes of the emulated shared
	// memory region, partitioned contiguously across PEs.
	MemSize() uint64

	// StartAddr returns the base address of the emulated global address
	// space. Addresses below StartAddr or at or above
	// StartAddr+MemSize are never accessible.
	StartAddr() uint64

	// Fence orders all outstanding remote memory operations issued by the
	// calling PE before any subsequently issued operation.
	Fence()

	// QuietFence waits for completion of outstanding remote operations
	// without imposing ordering on later ones.
	QuietFence()
}

const (
	// DefaultMemSize is the emulated shared memory size used when the
	// application does not configure one: 16 MiB, split across PEs.
	DefaultMemSize = 16 << 20

	// DefaultStartAddr is the sentinel base of the emulated global address
	// space. The high byte deliberately places it far outside any address a
	// host pointer could take, so a stray host address can never resolve.
	DefaultStartAddr = 0xBB00000000000000
)

// Emulated is the single-node Platform used by the emulation: PE 0 is the
// host process, and the remaining PEs exist only as pooled workers.
type Emulated struct {
	NPEs  int
	Mem   uint64
	Start uint64
}

// NewEmulated builds an emulated platform for npes processing elements with
// mem bytes of shared memory. Zero values select the defaults: npes from the
// CPU count and DefaultMemSize for the memory region.
func NewEmulated(npes int, mem uint64) *Emulated {
	if npes <= 0 {
		npes = runtime.NumCPU()
	}
	if mem == 0 {
		mem = DefaultMemSize
	}
	return &Emulated{
		NPEs:  npes,
		Mem:   mem,
		Start: DefaultStartAddr,
	}
}

// ID returns 0: in the emulated model the host process is always PE 0.
func (e *Emulated) ID() int { return 0 }

// NumPEs returns the configured PE count.
func (e *Emulated) NumPEs() int { return e.NPEs }

// MemSize returns the configured shared memory size.
func (e *Emulated) MemSize() uint64 { return e.Mem }

// StartAddr returns the base of the emulated address space.
func (e *Emulated) StartAddr() uint64 { return e.Start }

// Fence is a no-op: all emulated transfers complete before their task
// handle is released, and the pool's mutexes provide the ordering the real
// ISA fence would.
func (e *Emulated) Fence() {}

// QuietFence is a no-op for the same reason as Fence.
func (e *Emulated) QuietFence() {}

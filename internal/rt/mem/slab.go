// Package mem provides the storage behind the emulated global address space:
// the backing slab, the symmetric-heap allocator collaborator, and the
// tracker recording live allocations.
package mem

import (
	"fmt"

	"github.com/kolkov/xbgas/internal/rt/rterr"
)

// Slab is the byte store backing the whole emulated shared memory region.
// Addresses in the global space map 1:1 onto slab offsets via the region's
// start address.
//
// The slab itself is not synchronized: serialization of access to a PE's
// partition is provided by the one-worker-per-PE discipline of the pool, not
// by locks here.
type Slab struct {
	start uint64
	buf   []byte
}

// NewSlab reserves size bytes of emulated memory starting at start.
func NewSlab(start, size uint64) *Slab {
	return &Slab{
		start: start,
		buf:   make([]byte, size),
	}
}

// View returns the writable byte window [addr, addr+size) of the emulated
// region. Callers must have already bounds-checked the span against the
// target partition; View only guards the global region itself.
func (s *Slab) View(addr, size uint64) ([]byte, error) {
	if addr < s.start || addr-s.start > uint64(len(s.buf)) ||
		size > uint64(len(s.buf))-(addr-s.start) {
		return nil, fmt.Errorf("mem: view [%#x,+%d) outside slab: %w", addr, size, rterr.ErrOutOfRange)
	}
	off := addr - s.start
	return s.buf[off : off+size : off+size], nil
}

// Release drops the backing store. Any view handed out earlier must not be
// used afterwards; the engine guarantees this by draining the pool first.
func (s *Slab) Release() {
	s.buf = nil
}

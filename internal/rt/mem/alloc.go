package mem

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kolkov/xbgas/internal/rt/rterr"
)

// Allocator is the capability-aware allocator collaborator. The runtime
// delegates block placement and accessibility checks to it and only layers
// ownership tracking on top.
//
// Offsets are relative to the symmetric heap: an allocation at offset o
// occupies [o, o+size) of every PE's partition.
type Allocator interface {
	// Alloc reserves size bytes and returns the heap offset of the block.
	Alloc(size uint64) (uint64, error)

	// Free releases the block starting at offset.
	Free(offset uint64) error

	// Accessible reports whether offset lies inside a live block. On a
	// capability architecture this is where the hardware check would sit;
	// the emulation answers from its own block table.
	Accessible(offset uint64) bool
}

// MaxSlots is the number of simultaneously live allocations the emulated
// allocator supports.
const MaxSlots = 2048

type block struct {
	off  uint64
	size uint64
}

// SlotAllocator is the emulated Allocator: first-fit over a fixed-size heap
// with a bounded slot table.
type SlotAllocator struct {
	mu   sync.Mutex
	size uint64
	live []block // sorted by offset
}

// NewSlotAllocator builds an allocator over a symmetric heap of size bytes.
// The heap size is the size of a single PE partition, since an offset must be
// valid in every partition.
func NewSlotAllocator(size uint64) *SlotAllocator {
	return &SlotAllocator{size: size}
}

// Alloc places the block in the first gap large enough to hold it.
func (a *SlotAllocator) Alloc(size uint64) (uint64, error) {
	if size == 0 {
		return 0, fmt.Errorf("mem: zero-sized allocation: %w", rterr.ErrAllocationFailure)
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.live) >= MaxSlots {
		return 0, fmt.Errorf("mem: all %d allocation slots in use: %w", MaxSlots, rterr.ErrAllocationFailure)
	}

	var off uint64
	idx := len(a.live)
	for i, b := range a.live {
		if b.off-off >= size {
			idx = i
			break
		}
		off = b.off + b.size
	}
	if a.size-off < size && idx == len(a.live) {
		return 0, fmt.Errorf("mem: no room for %d bytes in %d-byte heap: %w", size, a.size, rterr.ErrAllocationFailure)
	}

	a.live = append(a.live, block{})
	copy(a.live[idx+1:], a.live[idx:])
	a.live[idx] = block{off: off, size: size}
	return off, nil
}

// Free releases the block at offset. Unknown offsets fail with
// ErrUntrackedFree; the tracker in front of this allocator upgrades repeats
// of a previously valid free to ErrDoubleFree.
func (a *SlotAllocator) Free(offset uint64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	i := sort.Search(len(a.live), func(i int) bool { return a.live[i].off >= offset })
	if i == len(a.live) || a.live[i].off != offset {
		return fmt.Errorf("mem: no block at offset %#x: %w", offset, rterr.ErrUntrackedFree)
	}
	a.live = append(a.live[:i], a.live[i+1:]...)
	return nil
}

// Accessible reports whether offset falls inside a live block.
func (a *SlotAllocator) Accessible(offset uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	i := sort.Search(len(a.live), func(i int) bool { return a.live[i].off > offset })
	if i == 0 {
		return false
	}
	b := a.live[i-1]
	return offset-b.off < b.size
}

// Live returns the number of live blocks, for stats reporting.
func (a *SlotAllocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.live)
}

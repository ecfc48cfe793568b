package mem

import (
	"fmt"
	"sync"

	"github.com/kolkov/xbgas/internal/rt/rterr"
)

// Block records one live shared allocation.
type Block struct {
	Addr uint64 // global address of the block (owning PE's partition)
	Size uint64
	PE   int // PE whose partition the address resolves into
}

// Tracker records ownership metadata for every block handed out by the
// shared allocator. The capability layer is what actually faults on bad
// accesses; the tracker's contract is narrower: it must refuse to remove an
// entry it does not hold, and it distinguishes re-freeing a block it once
// held (double free) from freeing an address it never saw.
type Tracker struct {
	mu    sync.Mutex
	live  map[uint64]Block
	freed map[uint64]struct{}
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		live:  make(map[uint64]Block),
		freed: make(map[uint64]struct{}),
	}
}

// Add records a new allocation. Re-allocating an address that was freed
// earlier clears its double-free history.
func (t *Tracker) Add(b Block) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.live[b.Addr] = b
	delete(t.freed, b.Addr)
}

// Remove deletes the entry for addr and returns it.
func (t *Tracker) Remove(addr uint64) (Block, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	b, ok := t.live[addr]
	if ok {
		delete(t.live, addr)
		t.freed[addr] = struct{}{}
		return b, nil
	}
	if _, wasFreed := t.freed[addr]; wasFreed {
		return Block{}, fmt.Errorf("mem: block %#x already freed: %w", addr, rterr.ErrDoubleFree)
	}
	return Block{}, fmt.Errorf("mem: address %#x was never allocated: %w", addr, rterr.ErrUntrackedFree)
}

// Lookup returns the live block starting at addr.
func (t *Tracker) Lookup(addr uint64) (Block, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	b, ok := t.live[addr]
	return b, ok
}

// Live returns the number of tracked allocations.
func (t *Tracker) Live() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.live)
}

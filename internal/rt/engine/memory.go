package engine

import (
	"fmt"

	"github.com/kolkov/xbgas/internal/rt/mem"
)

// Alloc reserves size bytes on the symmetric heap and returns the block's
// global address in the calling PE's partition. The block occupies the same
// offset in every partition, which is what makes the address usable as a
// remote-transfer target for any PE.
func (e *Engine) Alloc(size uint64) (uint64, error) {
	if err := e.usable(); err != nil {
		return 0, err
	}
	off, err := e.alloc.Alloc(size)
	if err != nil {
		return 0, err
	}
	base, err := e.pemap.BaseOf(e.id)
	if err != nil {
		return 0, err
	}
	addr := base + off
	e.tracker.Add(mem.Block{Addr: addr, Size: size, PE: e.id})
	e.logger.Debug("shared alloc", "addr", fmt.Sprintf("%#x", addr), "size", size)
	return addr, nil
}

// Free releases a block previously returned by Alloc. The tracker is
// consulted first, so a double free or a free of an address that was never
// allocated is rejected before the allocator collaborator sees it.
func (e *Engine) Free(addr uint64) error {
	if err := e.usable(); err != nil {
		return err
	}
	if _, err := e.tracker.Remove(addr); err != nil {
		return err
	}
	base, err := e.pemap.BaseOf(e.id)
	if err != nil {
		return err
	}
	e.logger.Debug("shared free", "addr", fmt.Sprintf("%#x", addr))
	return e.alloc.Free(addr - base)
}

// AddrAccessible reports whether addr, rebased into pe's partition, is
// reachable. The runtime's contribution is the partition resolution; the
// actual accessibility verdict is delegated to the allocator collaborator,
// which stands in for the capability hardware. Addresses outside the
// emulated global range are never accessible.
func (e *Engine) AddrAccessible(addr uint64, pe int) bool {
	if e.closed.Load() {
		return false
	}
	resolved, err := e.pemap.Translate(addr, pe)
	if err != nil {
		return false
	}
	base, err := e.pemap.BaseOf(pe)
	if err != nil {
		return false
	}
	return e.alloc.Accessible(resolved - base)
}

// LiveAllocations returns the number of tracked shared blocks.
func (e *Engine) LiveAllocations() int {
	return e.tracker.Live()
}

// Package pemap implements the static table translating logical PE ids to
// physical ids and partition base addresses.
//
// The emulated shared memory region is split into one contiguous partition
// per PE at construction time. The map is immutable afterwards, so all
// lookups are lock-free.
package pemap

import (
	"fmt"

	"github.com/kolkov/xbgas/internal/rt/rterr"
)

// Entry describes one PE's slice of the global address space.
//
// Entries are owned exclusively by the Map and never change after
// construction. Base values are strictly increasing with the logical id and
// adjacent partitions never overlap.
type Entry struct {
	Logical  int    // logical PE id, 0..npes-1
	Physical int    // physical id; identity mapping in the emulated model
	Base     uint64 // first address of this PE's partition
	Size     uint64 // partition size in bytes
}

// Map is the PE translation table.
type Map struct {
	start   uint64
	memsize uint64
	entries []Entry
}

// New partitions memsize bytes starting at start into npes contiguous,
// disjoint regions of equal size; any remainder of the division is folded
// into the last partition so the sizes always sum to memsize exactly.
func New(npes int, memsize uint64, start uint64) (*Map, error) {
	if npes < 1 {
		return nil, fmt.Errorf("pemap: npes %d: %w", npes, rterr.ErrBadConfig)
	}
	if memsize == 0 || memsize < uint64(npes) {
		return nil, fmt.Errorf("pemap: memsize %d too small for %d PEs: %w",
			memsize, npes, rterr.ErrBadConfig)
	}

	part := memsize / uint64(npes)
	m := &Map{
		start:   start,
		memsize: memsize,
		entries: make([]Entry, npes),
	}
	base := start
	for pe := 0; pe < npes; pe++ {
		size := part
		if pe == npes-1 {
			size = memsize - part*uint64(npes-1)
		}
		m.entries[pe] = Entry{
			Logical:  pe,
			Physical: pe,
			Base:     base,
			Size:     size,
		}
		base += size
	}
	return m, nil
}

// NumPEs returns the number of partitions in the table.
func (m *Map) NumPEs() int { return len(m.entries) }

// Start returns the first address of the global region.
func (m *Map) Start() uint64 { return m.start }

// End returns the first address past the global region.
func (m *Map) End() uint64 { return m.start + m.memsize }

// MemSize returns the total size of the global region.
func (m *Map) MemSize() uint64 { return m.memsize }

// BaseOf returns the base address of pe's partition.
func (m *Map) BaseOf(pe int) (uint64, error) {
	if pe < 0 || pe >= len(m.entries) {
		return 0, fmt.Errorf("pemap: pe %d not in [0,%d): %w", pe, len(m.entries), rterr.ErrInvalidPE)
	}
	return m.entries[pe].Base, nil
}

// SizeOf returns the size in bytes of pe's partition.
func (m *Map) SizeOf(pe int) (uint64, error) {
	if pe < 0 || pe >= len(m.entries) {
		return 0, fmt.Errorf("pemap: pe %d not in [0,%d): %w", pe, len(m.entries), rterr.ErrInvalidPE)
	}
	return m.entries[pe].Size, nil
}

// Entry returns a copy of pe's table entry.
func (m *Map) Entry(pe int) (Entry, error) {
	if pe < 0 || pe >= len(m.entries) {
		return Entry{}, fmt.Errorf("pemap: pe %d not in [0,%d): %w", pe, len(m.entries), rterr.ErrInvalidPE)
	}
	return m.entries[pe], nil
}

// Contains reports whether the span [addr, addr+size) lies entirely inside
// pe's partition. A zero-size span is contained if addr itself is.
func (m *Map) Contains(addr, size uint64, pe int) bool {
	if pe < 0 || pe >= len(m.entries) {
		return false
	}
	e := m.entries[pe]
	if addr < e.Base || addr >= e.Base+e.Size {
		return false
	}
	return size <= e.Base+e.Size-addr
}

// OwnerOf returns the logical PE whose partition contains addr.
//
// Partitions are equal-sized except for the remainder in the last one, so the
// owner is computed by division with a single boundary fix-up rather than a
// scan.
func (m *Map) OwnerOf(addr uint64) (int, error) {
	if addr < m.start || addr >= m.End() {
		return 0, fmt.Errorf("pemap: addr %#x outside [%#x,%#x): %w",
			addr, m.start, m.End(), rterr.ErrOutOfRange)
	}
	part := m.entries[0].Size
	pe := int((addr - m.start) / part)
	if pe >= len(m.entries) {
		pe = len(m.entries) - 1
	}
	return pe, nil
}

// Translate rebases addr into pe's partition under the symmetric-heap rule:
// the offset of addr within its owning partition is applied to pe's base.
// It fails with ErrOutOfRange when addr is outside the global region or when
// the offset does not exist in pe's (possibly smaller) partition, and with
// ErrInvalidPE for a bad target.
func (m *Map) Translate(addr uint64, pe int) (uint64, error) {
	if pe < 0 || pe >= len(m.entries) {
		return 0, fmt.Errorf("pemap: pe %d not in [0,%d): %w", pe, len(m.entries), rterr.ErrInvalidPE)
	}
	owner, err := m.OwnerOf(addr)
	if err != nil {
		return 0, err
	}
	off := addr - m.entries[owner].Base
	target := m.entries[pe]
	if off >= target.Size {
		return 0, fmt.Errorf("pemap: offset %#x beyond pe %d partition size %#x: %w",
			off, pe, target.Size, rterr.ErrOutOfRange)
	}
	return target.Base + off, nil
}

// Package engine assembles the runtime: it owns the PE map, the backing
// slab, the allocation tracker, the worker pool, and the barrier, and it
// implements every public operation as one or more task submissions to the
// pool.
//
// There is no package-level state: one Engine is one runtime instance,
// constructed by New and torn down by Close, and every operation is a method
// on it.
package engine

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/kolkov/xbgas/internal/rt/barrier"
	"github.com/kolkov/xbgas/internal/rt/mem"
	"github.com/kolkov/xbgas/internal/rt/pemap"
	"github.com/kolkov/xbgas/internal/rt/platform"
	"github.com/kolkov/xbgas/internal/rt/pool"
	"github.com/kolkov/xbgas/internal/rt/rterr"
)

// Config carries the collaborators injected into a runtime instance. Zero
// fields select the emulated defaults.
type Config struct {
	// Platform supplies PE identity, topology, and the address-space
	// bounds. Defaults to the single-node emulation.
	Platform platform.Platform

	// Allocator is the capability-aware shared allocator. Defaults to the
	// emulated slot allocator sized to one partition.
	Allocator mem.Allocator

	// Logger receives lifecycle and operation traffic. Defaults to a
	// discard logger.
	Logger *slog.Logger
}

// Engine is one runtime instance.
type Engine struct {
	id      int
	npes    int
	memsize uint64

	plat    platform.Platform
	pemap   *pemap.Map
	slab    *mem.Slab
	alloc   mem.Allocator
	tracker *mem.Tracker
	pool    *pool.Pool
	barrier *barrier.Barrier
	logger  *slog.Logger

	closed atomic.Bool
}

// New validates the configuration and builds the runtime: PE map first, then
// the slab and allocator, then the worker pool and barrier. Validation
// happens before anything is constructed, so a failed New leaves no partial
// state behind. In particular an over-capacity PE count fails before any
// worker exists.
func New(cfg Config) (*Engine, error) {
	plat := cfg.Platform
	if plat == nil {
		plat = platform.NewEmulated(0, 0)
	}
	npes := plat.NumPEs()
	if npes < 1 {
		return nil, fmt.Errorf("engine: platform reports %d PEs: %w", npes, rterr.ErrBadConfig)
	}
	if npes > pool.Capacity {
		return nil, fmt.Errorf("engine: %d PEs exceed pool capacity %d: %w",
			npes, pool.Capacity, rterr.ErrTooManyPEs)
	}

	m, err := pemap.New(npes, plat.MemSize(), plat.StartAddr())
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	e := &Engine{
		id:      plat.ID(),
		npes:    npes,
		memsize: plat.MemSize(),
		plat:    plat,
		pemap:   m,
		slab:    mem.NewSlab(plat.StartAddr(), plat.MemSize()),
		alloc:   cfg.Allocator,
		tracker: mem.NewTracker(),
		logger:  logger,
	}
	if e.alloc == nil {
		heap, err := m.SizeOf(e.id)
		if err != nil {
			return nil, err
		}
		e.alloc = mem.NewSlotAllocator(heap)
	}

	p, err := pool.New(npes, executor{eng: e})
	if err != nil {
		return nil, err
	}
	e.pool = p
	e.barrier = barrier.New(npes)

	logger.Info("runtime initialized",
		"npes", npes,
		"memsize", e.memsize,
		"start_addr", fmt.Sprintf("%#x", plat.StartAddr()))
	return e, nil
}

// Close drains and joins the workers and releases the slab and map. The
// first call wins; later calls fail with ErrClosed. Close must not be called
// while a barrier or collective is in flight; that precondition is
// documented, not checked.
func (e *Engine) Close() error {
	if !e.closed.CompareAndSwap(false, true) {
		return fmt.Errorf("engine: close: %w", rterr.ErrClosed)
	}
	e.pool.Close()
	e.slab.Release()
	e.logger.Info("runtime closed", "live_allocations", e.tracker.Live())
	return nil
}

// MyPE returns the calling process's logical PE id, or -1 after Close.
func (e *Engine) MyPE() int {
	if e.closed.Load() {
		return -1
	}
	return e.id
}

// NumPEs returns the configured PE count, or -1 after Close.
func (e *Engine) NumPEs() int {
	if e.closed.Load() {
		return -1
	}
	return e.npes
}

// usable gates every operation on the open/closed state.
func (e *Engine) usable() error {
	if e.closed.Load() {
		return fmt.Errorf("engine: %w", rterr.ErrClosed)
	}
	return nil
}

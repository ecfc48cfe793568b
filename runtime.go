package xbgas

import (
	"log/slog"
	"runtime"

	"github.com/kolkov/xbgas/internal/rt/engine"
	"github.com/kolkov/xbgas/internal/rt/mem"
	"github.com/kolkov/xbgas/internal/rt/platform"
	"github.com/kolkov/xbgas/internal/rt/pool"
)

// Addr is an address in the emulated global address space.
type Addr uint64

const (
	// MaxPEs is the worker pool capacity and therefore the hard ceiling on
	// emulated processing elements.
	MaxPEs = pool.Capacity

	// DefaultMemSize is the emulated shared memory size when none is
	// configured.
	DefaultMemSize = platform.DefaultMemSize

	// DefaultStartAddr is the sentinel base address of the emulated global
	// address space; addresses below it are never accessible.
	DefaultStartAddr Addr = platform.DefaultStartAddr
)

// Runtime is one PGAS runtime instance. The caller holds the single
// instance; all operations are methods on it and it is safe for concurrent
// use by multiple goroutines.
type Runtime struct {
	eng *engine.Engine
}

// Option configures Open.
type Option func(*engine.Config, *emuOpts)

type emuOpts struct {
	npes int
	mem  uint64
}

// WithNPEs sets the number of emulated processing elements. Open fails with
// ErrTooManyPEs when n exceeds MaxPEs. The default is the CPU count, capped
// at MaxPEs.
func WithNPEs(n int) Option {
	return func(_ *engine.Config, o *emuOpts) { o.npes = n }
}

// WithMemSize sets the total emulated shared memory in bytes, partitioned
// contiguously across the PEs.
func WithMemSize(bytes uint64) Option {
	return func(_ *engine.Config, o *emuOpts) { o.mem = bytes }
}

// WithPlatform injects a Platform implementation in place of the single-node
// emulation. WithNPEs and WithMemSize are ignored when a platform is
// supplied; the platform is the authority on topology.
func WithPlatform(p platform.Platform) Option {
	return func(c *engine.Config, _ *emuOpts) { c.Platform = p }
}

// WithAllocator injects a shared-allocator collaborator in place of the
// emulated slot allocator.
func WithAllocator(a mem.Allocator) Option {
	return func(c *engine.Config, _ *emuOpts) { c.Allocator = a }
}

// WithLogger directs runtime lifecycle and operation logging to l. The
// default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(c *engine.Config, _ *emuOpts) { c.Logger = l }
}

// Open builds a runtime: the PE map partitions the emulated memory, the
// worker pool binds one worker to each PE, and the barrier is sized to the
// PE group. Open must succeed before any other call; a failed Open leaves no
// state behind.
func Open(opts ...Option) (*Runtime, error) {
	var cfg engine.Config
	var emu emuOpts
	for _, opt := range opts {
		opt(&cfg, &emu)
	}
	if cfg.Platform == nil {
		if emu.npes <= 0 {
			// The CPU-count default is clamped so Open() with no options
			// works on any host; an explicit over-capacity count still
			// fails with ErrTooManyPEs.
			emu.npes = runtime.NumCPU()
			if emu.npes > MaxPEs {
				emu.npes = MaxPEs
			}
		}
		cfg.Platform = platform.NewEmulated(emu.npes, emu.mem)
	}
	eng, err := engine.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Runtime{eng: eng}, nil
}

// Close tears down the runtime: the pool is drained and joined, then the
// memory map is released. The first Close wins; a second one returns
// ErrClosed. Close must not be called while another goroutine is blocked in
// Barrier or a collective; that precondition is documented, not checked.
func (r *Runtime) Close() error {
	return r.eng.Close()
}

// MyPE returns the logical PE id of the calling process, always 0 in the
// single-process emulation. After Close it returns -1.
func (r *Runtime) MyPE() int {
	return r.eng.MyPE()
}

// NumPEs returns the number of configured processing elements, or -1 after
// Close.
func (r *Runtime) NumPEs() int {
	return r.eng.NumPEs()
}

// Alloc reserves size bytes of symmetric shared memory and returns its
// global address. The block lives at the same offset of every PE's
// partition, so the one address is a valid transfer target for any PE.
func (r *Runtime) Alloc(size uint64) (Addr, error) {
	a, err := r.eng.Alloc(size)
	return Addr(a), err
}

// Free releases a block returned by Alloc. Freeing twice fails with
// ErrDoubleFree; freeing an address that was never allocated fails with
// ErrUntrackedFree.
func (r *Runtime) Free(addr Addr) error {
	return r.eng.Free(uint64(addr))
}

// AddrAccessible reports whether addr, resolved into pe's partition, can be
// reached. The partition resolution happens here; the accessibility verdict
// is delegated to the allocator collaborator standing in for the capability
// layer.
func (r *Runtime) AddrAccessible(addr Addr, pe int) bool {
	return r.eng.AddrAccessible(uint64(addr), pe)
}

// Barrier blocks until all NumPEs processing elements have reached the
// rendezvous. There is no timeout by design.
func (r *Runtime) Barrier() error {
	return r.eng.Barrier()
}

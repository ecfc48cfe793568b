package engine

import (
	"github.com/kolkov/xbgas/internal/rt/collective"
	"github.com/kolkov/xbgas/internal/rt/pool"
	"github.com/kolkov/xbgas/internal/rt/transfer"
)

// executor runs task bodies on the pool's workers. Bounds were validated at
// submission time; the worker-side slab views re-check the global region only
// as a backstop.
type executor struct {
	eng *Engine
}

func (x executor) view(addr uint64, nelems, stride, elemSize int) ([]byte, error) {
	span, err := transfer.Span(nelems, stride, elemSize)
	if err != nil {
		return nil, err
	}
	return x.eng.slab.View(addr, span)
}

// Get gathers the strided remote sequence into the task's packed buffer.
func (x executor) Get(t *pool.Task) error {
	v, err := x.view(t.Remote, t.Nelems, t.Stride, t.ElemSize)
	if err != nil {
		return err
	}
	transfer.Gather(t.Local, v, t.Nelems, t.Stride, t.ElemSize)
	return nil
}

// Put scatters the task's packed buffer into the remote strided sequence.
func (x executor) Put(t *pool.Task) error {
	v, err := x.view(t.Remote, t.Nelems, t.Stride, t.ElemSize)
	if err != nil {
		return err
	}
	transfer.Scatter(v, t.Local, t.Nelems, t.Stride, t.ElemSize)
	return nil
}

// Broadcast writes the root's snapshot into this worker's partition. The
// snapshot is shared read-only between the fan-out tasks.
func (x executor) Broadcast(t *pool.Task) error {
	v, err := x.view(t.Remote, t.Nelems, t.Stride, t.ElemSize)
	if err != nil {
		return err
	}
	transfer.Scatter(v, t.Data, t.Nelems, t.Stride, t.ElemSize)
	return nil
}

// Reduce sums elements [Lo, Hi) of the symmetric source across every PE's
// partition into the task's partial buffer. Reading foreign partitions here
// is safe: reduce tasks only read, and the collective's caller owns the
// ordering against concurrent writers.
func (x executor) Reduce(t *pool.Task) error {
	n := t.Hi - t.Lo
	tmp := make([]byte, n*t.ElemSize)
	for p := 0; p < x.eng.npes; p++ {
		base, err := x.eng.pemap.Translate(t.Src, p)
		if err != nil {
			return err
		}
		start := base + uint64(t.Lo*t.Stride*t.ElemSize)
		v, err := x.view(start, n, t.Stride, t.ElemSize)
		if err != nil {
			return err
		}
		transfer.Gather(tmp, v, n, t.Stride, t.ElemSize)
		collective.Accumulate(t.Partial, tmp, t.ElemSize)
	}
	return nil
}

// Barrier arrives at the global barrier on behalf of this worker's PE.
func (x executor) Barrier(*pool.Task) error {
	x.eng.barrier.ArriveAndWait()
	return nil
}

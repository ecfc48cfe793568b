package engine

import (
	"fmt"

	"github.com/kolkov/xbgas/internal/rt/collective"
	"github.com/kolkov/xbgas/internal/rt/pool"
	"github.com/kolkov/xbgas/internal/rt/rterr"
	"github.com/kolkov/xbgas/internal/rt/transfer"
)

// Barrier rendezvouses all PEs: one barrier task is fanned out to every
// worker and the caller blocks until the whole group has arrived and been
// released. If the runtime were misconfigured so that fewer workers than
// participants existed, this would block forever; there is no timeout.
func (e *Engine) Barrier() error {
	if err := e.usable(); err != nil {
		return err
	}
	tasks := make([]*pool.Task, e.npes)
	for pe := range tasks {
		tasks[pe] = &pool.Task{Kind: pool.KindBarrier, PE: pe}
	}
	if err := e.pool.SubmitWait(tasks...); err != nil {
		return err
	}
	e.plat.Fence()
	return nil
}

// GetBytes reads nelems strided elements from src, resolved against pe's
// partition, into the packed local buffer. The copy runs on pe's worker so
// it serializes with every other access to that partition.
func (e *Engine) GetBytes(local []byte, elemSize int, src uint64, nelems, stride, pe int) error {
	t, err := e.transferTask(pool.KindGet, local, elemSize, src, nelems, stride, pe)
	if err != nil || t == nil {
		return err
	}
	e.logger.Debug("get", "pe", pe, "nelems", nelems, "stride", stride)
	h, err := e.pool.Submit(t)
	if err != nil {
		return err
	}
	if err := h.Wait(); err != nil {
		return err
	}
	e.plat.QuietFence()
	return nil
}

// PutBytes is the mirror of GetBytes: the packed local buffer is scattered
// into pe's partition at the resolved strided addresses.
func (e *Engine) PutBytes(local []byte, elemSize int, dest uint64, nelems, stride, pe int) error {
	t, err := e.transferTask(pool.KindPut, local, elemSize, dest, nelems, stride, pe)
	if err != nil || t == nil {
		return err
	}
	e.logger.Debug("put", "pe", pe, "nelems", nelems, "stride", stride)
	h, err := e.pool.Submit(t)
	if err != nil {
		return err
	}
	if err := h.Wait(); err != nil {
		return err
	}
	e.plat.QuietFence()
	return nil
}

// transferTask validates a transfer and builds its task. A nil task with a
// nil error means the transfer is an empty no-op.
func (e *Engine) transferTask(kind pool.Kind, local []byte, elemSize int, addr uint64, nelems, stride, pe int) (*pool.Task, error) {
	if err := e.usable(); err != nil {
		return nil, err
	}
	span, err := transfer.Span(nelems, stride, elemSize)
	if err != nil {
		return nil, err
	}
	if nelems == 0 {
		return nil, nil
	}
	remote, err := e.pemap.Translate(addr, pe)
	if err != nil {
		return nil, err
	}
	if !e.pemap.Contains(remote, span, pe) {
		return nil, fmt.Errorf("engine: %s span [%#x,+%d) leaves pe %d partition: %w",
			kind, remote, span, pe, rterr.ErrOutOfRange)
	}
	if len(local) < nelems*elemSize {
		return nil, fmt.Errorf("engine: local buffer %d bytes, need %d: %w",
			len(local), nelems*elemSize, rterr.ErrOutOfRange)
	}
	return &pool.Task{
		Kind:     kind,
		PE:       pe,
		Local:    local,
		Remote:   remote,
		ElemSize: elemSize,
		Nelems:   nelems,
		Stride:   stride,
	}, nil
}

// Broadcast copies nelems strided elements from root's src into every PE's
// dest. The root's source is snapshotted once (a get task on the root's
// worker), then one broadcast task per receiving PE scatters the snapshot.
// The caller observes nothing until every task has completed, so the
// operation is all-or-nothing from its point of view.
//
// One task is submitted per non-root PE; the root itself receives a task
// only when dest and src are distinct addresses, since otherwise its data is
// already in place.
func (e *Engine) Broadcast(elemSize int, dest, src uint64, nelems, stride, root int) error {
	if err := e.usable(); err != nil {
		return err
	}
	span, err := transfer.Span(nelems, stride, elemSize)
	if err != nil {
		return err
	}
	if nelems == 0 {
		return nil
	}

	rootSrc, err := e.pemap.Translate(src, root)
	if err != nil {
		return err
	}
	if !e.pemap.Contains(rootSrc, span, root) {
		return fmt.Errorf("engine: broadcast src span leaves pe %d partition: %w", root, rterr.ErrOutOfRange)
	}

	snap := make([]byte, nelems*elemSize)
	h, err := e.pool.Submit(&pool.Task{
		Kind:     pool.KindGet,
		PE:       root,
		Local:    snap,
		Remote:   rootSrc,
		ElemSize: elemSize,
		Nelems:   nelems,
		Stride:   stride,
	})
	if err != nil {
		return err
	}
	if err := h.Wait(); err != nil {
		return err
	}

	tasks := make([]*pool.Task, 0, e.npes)
	for pe := 0; pe < e.npes; pe++ {
		if pe == root && dest == src {
			continue
		}
		rd, err := e.pemap.Translate(dest, pe)
		if err != nil {
			return err
		}
		if !e.pemap.Contains(rd, span, pe) {
			return fmt.Errorf("engine: broadcast dest span leaves pe %d partition: %w", pe, rterr.ErrOutOfRange)
		}
		tasks = append(tasks, &pool.Task{
			Kind:     pool.KindBroadcast,
			PE:       pe,
			Data:     snap,
			Remote:   rd,
			ElemSize: elemSize,
			Nelems:   nelems,
			Stride:   stride,
		})
	}
	e.logger.Debug("broadcast", "root", root, "nelems", nelems, "tasks", len(tasks))
	if err := e.pool.SubmitWait(tasks...); err != nil {
		return err
	}
	e.plat.Fence()
	return nil
}

// ReduceSum computes the elementwise sum of src across all PEs and writes
// the result to dest on PE pe. The element space is split into
// min(npes, nelems) contiguous sub-ranges, one reduce task each; the partial
// sums are then merged sequentially and scattered to the destination on the
// target PE's worker.
//
// Accumulation order across PEs is unspecified: the tasks run in parallel
// and integer addition is associative, which is all the operation relies on.
func (e *Engine) ReduceSum(elemSize int, dest, src uint64, nelems, stride, pe int) error {
	if err := e.usable(); err != nil {
		return err
	}
	span, err := transfer.Span(nelems, stride, elemSize)
	if err != nil {
		return err
	}
	if nelems == 0 {
		return nil
	}

	destRemote, err := e.pemap.Translate(dest, pe)
	if err != nil {
		return err
	}
	if !e.pemap.Contains(destRemote, span, pe) {
		return fmt.Errorf("engine: reduce dest span leaves pe %d partition: %w", pe, rterr.ErrOutOfRange)
	}
	// The reduce tasks read every partition, so the source span must be
	// valid in all of them before any task is queued.
	for p := 0; p < e.npes; p++ {
		r, err := e.pemap.Translate(src, p)
		if err != nil {
			return err
		}
		if !e.pemap.Contains(r, span, p) {
			return fmt.Errorf("engine: reduce src span leaves pe %d partition: %w", p, rterr.ErrOutOfRange)
		}
	}

	ranges := collective.Ranges(nelems, e.npes)
	tasks := make([]*pool.Task, len(ranges))
	for k, rg := range ranges {
		tasks[k] = &pool.Task{
			Kind:     pool.KindReduce,
			PE:       k % e.npes,
			Src:      src,
			Lo:       rg.Lo,
			Hi:       rg.Hi,
			ElemSize: elemSize,
			Stride:   stride,
			Partial:  make([]byte, (rg.Hi-rg.Lo)*elemSize),
		}
	}
	e.logger.Debug("reduce_sum", "pe", pe, "nelems", nelems, "ranges", len(ranges))
	if err := e.pool.SubmitWait(tasks...); err != nil {
		return err
	}

	merged := make([]byte, nelems*elemSize)
	for _, t := range tasks {
		copy(merged[t.Lo*elemSize:t.Hi*elemSize], t.Partial)
	}

	h, err := e.pool.Submit(&pool.Task{
		Kind:     pool.KindPut,
		PE:       pe,
		Local:    merged,
		Remote:   destRemote,
		ElemSize: elemSize,
		Nelems:   nelems,
		Stride:   stride,
	})
	if err != nil {
		return err
	}
	if err := h.Wait(); err != nil {
		return err
	}
	e.plat.Fence()
	return nil
}

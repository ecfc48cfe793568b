// Package pool implements the fixed-capacity worker set that emulates the
// processing elements.
//
// One long-lived worker is bound to one logical PE for the lifetime of the
// pool, and every cross-PE operation reaches a partition only as a task on
// that partition's worker queue. That one-worker-per-PE binding is the
// runtime's whole serialization story: two concurrent puts to the same PE
// are ordered by the target worker's FIFO queue, with no per-region locks.
package pool

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/kolkov/xbgas/internal/rt/rterr"
)

// Capacity is the hard ceiling on workers, and therefore on emulated PEs.
const Capacity = 16

// Executor runs the per-kind task bodies. The pool owns scheduling and
// completion; what a task means is the engine's business, injected here so
// the pool stays free of address-space knowledge.
type Executor interface {
	Get(*Task) error
	Put(*Task) error
	Broadcast(*Task) error
	Reduce(*Task) error
	Barrier(*Task) error
}

type item struct {
	task *Task
	h    *Handle
}

// worker is one PE-bound execution thread with its own mutex-protected FIFO.
type worker struct {
	pe      int
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []item
	closing bool
}

// Pool is the fixed worker set. Workers are created once at construction and
// joined at Close; the pool cannot be resized.
type Pool struct {
	exec    Executor
	workers []*worker
	wg      sync.WaitGroup
	closed  atomic.Bool
}

// New starts one worker per PE. npes must be in [1, Capacity]; the engine
// surfaces a violation as TooManyPEs before any worker is created.
func New(npes int, exec Executor) (*Pool, error) {
	if npes < 1 {
		return nil, fmt.Errorf("pool: %d workers requested: %w", npes, rterr.ErrBadConfig)
	}
	if npes > Capacity {
		return nil, fmt.Errorf("pool: %d workers requested, capacity %d: %w",
			npes, Capacity, rterr.ErrTooManyPEs)
	}
	p := &Pool{
		exec:    exec,
		workers: make([]*worker, npes),
	}
	for pe := 0; pe < npes; pe++ {
		w := &worker{pe: pe}
		w.cond = sync.NewCond(&w.mu)
		p.workers[pe] = w
		p.wg.Add(1)
		go p.run(w)
	}
	return p, nil
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Submit enqueues the task on its PE's worker and returns a completion
// handle. It fails with ErrPoolClosed once shutdown has been signalled and
// with ErrInvalidPE for a task bound to a nonexistent worker.
func (p *Pool) Submit(t *Task) (*Handle, error) {
	if t.PE < 0 || t.PE >= len(p.workers) {
		return nil, fmt.Errorf("pool: task for pe %d, have %d workers: %w",
			t.PE, len(p.workers), rterr.ErrInvalidPE)
	}
	w := p.workers[t.PE]
	w.mu.Lock()
	if w.closing {
		w.mu.Unlock()
		return nil, fmt.Errorf("pool: %s task for pe %d: %w", t.Kind, t.PE, rterr.ErrPoolClosed)
	}
	h := newHandle()
	w.queue = append(w.queue, item{task: t, h: h})
	w.cond.Signal()
	w.mu.Unlock()
	return h, nil
}

// SubmitWait fans the tasks out to their workers and blocks until every one
// of them has completed. It returns the first error encountered, submission
// failures included; already-submitted tasks are always waited for so no
// task outlives the call.
func (p *Pool) SubmitWait(tasks ...*Task) error {
	handles := make([]*Handle, 0, len(tasks))
	var firstErr error
	for _, t := range tasks {
		h, err := p.Submit(t)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		handles = append(handles, h)
	}
	for _, h := range handles {
		if err := h.Wait(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close signals shutdown, wakes all idle workers, and joins them. Tasks
// already queued are drained before the workers exit; tasks submitted after
// Close fail with ErrPoolClosed. Close is safe to call more than once.
func (p *Pool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}
	for _, w := range p.workers {
		w.mu.Lock()
		w.closing = true
		w.cond.Broadcast()
		w.mu.Unlock()
	}
	p.wg.Wait()
}

// run is the worker loop: pull the next queued task, execute it to
// completion, repeat until shutdown with an empty queue.
func (p *Pool) run(w *worker) {
	defer p.wg.Done()
	for {
		w.mu.Lock()
		for len(w.queue) == 0 && !w.closing {
			w.cond.Wait()
		}
		if len(w.queue) == 0 {
			w.mu.Unlock()
			return
		}
		it := w.queue[0]
		w.queue = w.queue[1:]
		w.mu.Unlock()

		it.h.finish(p.dispatch(it.task))
	}
}

// dispatch matches on the task tag.
func (p *Pool) dispatch(t *Task) error {
	switch t.Kind {
	case KindGet:
		return p.exec.Get(t)
	case KindPut:
		return p.exec.Put(t)
	case KindBroadcast:
		return p.exec.Broadcast(t)
	case KindReduce:
		return p.exec.Reduce(t)
	case KindBarrier:
		return p.exec.Barrier(t)
	default:
		return fmt.Errorf("pool: unknown task kind %d on pe %d", t.Kind, t.PE)
	}
}

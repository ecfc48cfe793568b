// Package barrier implements the cross-PE rendezvous primitive.
//
// The barrier is the sense-reversing centralized kind: a mutex-protected
// arrival counter plus a sense bit that flips each cycle. The flip is what
// makes the barrier reusable back-to-back: a waiter from cycle n can never
// mistake cycle n+1's release for its own, because it waits for the sense
// observed at arrival to change rather than for a counter value.
package barrier

import "sync"

// Barrier synchronizes a fixed group of n participants.
//
// There is deliberately no timeout and no cancellation: if fewer than n
// participants ever arrive, ArriveAndWait blocks forever. That matches the
// collective semantics being emulated and is a documented property, not an
// error condition.
type Barrier struct {
	mu    sync.Mutex
	cond  *sync.Cond
	n     int
	count int
	sense bool
}

// New creates a barrier for n participants. n must be at least 1.
func New(n int) *Barrier {
	b := &Barrier{n: n}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// ArriveAndWait blocks until all n participants of the current cycle have
// called it. The last arriver resets the counter, flips the sense, and wakes
// everyone, including itself.
func (b *Barrier) ArriveAndWait() {
	b.mu.Lock()
	arrivalSense := b.sense
	b.count++
	if b.count == b.n {
		b.count = 0
		b.sense = !b.sense
		b.cond.Broadcast()
		b.mu.Unlock()
		return
	}
	for b.sense == arrivalSense {
		b.cond.Wait()
	}
	b.mu.Unlock()
}

// Participants returns the group size the barrier was created for.
func (b *Barrier) Participants() int { return b.n }

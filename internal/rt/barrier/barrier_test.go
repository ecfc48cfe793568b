package barrier

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAllOrNothing checks the core guarantee: no participant returns from
// ArriveAndWait before all n have called it. Each goroutine increments a
// shared counter before arriving; on release the counter must already show
// every participant, in every cycle.
func TestAllOrNothing(t *testing.T) {
	const (
		n      = 8
		cycles = 50
	)
	b := New(n)

	var arrived atomic.Int64
	var wg sync.WaitGroup
	for g := 0; g < n; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := 0; c < cycles; c++ {
				arrived.Add(1)
				b.ArriveAndWait()
				got := arrived.Load()
				want := int64(n * (c + 1))
				if got < want {
					t.Errorf("cycle %d: released with %d arrivals, want >= %d", c, got, want)
					return
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(n*cycles), arrived.Load())
}

// TestSenseReuse drives many back-to-back cycles with two participants to
// exercise the sense flip; a stale-wakeup bug shows up here as a hang or a
// skipped rendezvous.
func TestSenseReuse(t *testing.T) {
	const cycles = 1000
	b := New(2)

	var sum atomic.Int64
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < cycles; i++ {
			sum.Add(1)
			b.ArriveAndWait()
		}
	}()
	for i := 0; i < cycles; i++ {
		sum.Add(1)
		b.ArriveAndWait()
	}
	<-done
	assert.Equal(t, int64(2*cycles), sum.Load())
}

func TestSingleParticipant(t *testing.T) {
	b := New(1)
	// A one-member group must never block.
	for i := 0; i < 10; i++ {
		b.ArriveAndWait()
	}
	require.Equal(t, 1, b.Participants())
}

// TestLastArriverAlsoReleased makes sure the releasing participant itself
// proceeds (the broadcast includes the last arriver by construction; this
// guards the early-unlock path).
func TestLastArriverAlsoReleased(t *testing.T) {
	b := New(3)
	var wg sync.WaitGroup
	released := make(chan int, 3)
	for g := 0; g < 3; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			b.ArriveAndWait()
			released <- id
		}(g)
	}
	wg.Wait()
	close(released)

	var count int
	for range released {
		count++
	}
	assert.Equal(t, 3, count)
}

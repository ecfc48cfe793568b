package pool

// Kind tags the closed set of task variants the pool executes. The worker
// loop dispatches by matching on the tag; payloads are strongly typed fields
// on Task, never opaque pointers.
type Kind uint8

const (
	// KindGet gathers a strided sequence from the target PE's partition
	// into the task's packed Local buffer.
	KindGet Kind = iota + 1

	// KindPut scatters the task's packed Local buffer into the target PE's
	// partition.
	KindPut

	// KindBroadcast writes a snapshot taken from the root PE into the
	// target PE's destination.
	KindBroadcast

	// KindReduce sums one sub-range of elements across every PE's source
	// array into the task's Partial buffer.
	KindReduce

	// KindBarrier makes the target worker arrive at the global barrier.
	KindBarrier
)

// String returns the task kind name for logs.
func (k Kind) String() string {
	switch k {
	case KindGet:
		return "get"
	case KindPut:
		return "put"
	case KindBroadcast:
		return "broadcast"
	case KindReduce:
		return "reduce"
	case KindBarrier:
		return "barrier"
	default:
		return "unknown"
	}
}

// Task is one unit of work bound to a single PE worker. A task is transient:
// it is created by the submitting call, executed exactly once, and owned by
// the submitter until its handle completes.
//
// Field use by variant:
//
//	Get:       Local, Remote, ElemSize, Nelems, Stride
//	Put:       Local, Remote, ElemSize, Nelems, Stride
//	Broadcast: Data, Remote, ElemSize, Nelems, Stride
//	Reduce:    Src, Lo, Hi, ElemSize, Stride, Partial
//	Barrier:   (none)
type Task struct {
	Kind Kind
	PE   int // worker that executes the task

	// Transfer payload.
	Local    []byte // packed local buffer: destination of Get, source of Put
	Remote   uint64 // resolved address inside the target PE's partition
	ElemSize int
	Nelems   int
	Stride   int

	// Broadcast payload: packed snapshot of the root's source.
	Data []byte

	// Reduce payload: elements [Lo, Hi) of the symmetric source address Src
	// are summed across all PEs into the packed Partial buffer.
	Src     uint64
	Lo, Hi  int
	Partial []byte
}

// Handle is the join token returned by Submit. Wait blocks until the task
// has run to completion on its worker and returns the task's error.
type Handle struct {
	done chan struct{}
	err  error
}

func newHandle() *Handle {
	return &Handle{done: make(chan struct{})}
}

// Wait blocks until the task completes.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

func (h *Handle) finish(err error) {
	h.err = err
	close(h.done)
}

// Package xbgas emulates an xBGAS/OpenSHMEM-style partitioned global address
// space (PGAS) runtime on a single multicore node.
//
// The emulated machine has npes processing elements (PEs), each owning one
// contiguous partition of a shared memory region. Every PE is bound to one
// long-lived pooled worker, and all remote operations (strided get/put,
// barrier, broadcast, reduction) execute as tasks on those workers. The
// public API is synchronous: a call returns once its internal task fan-out
// has completed.
//
// A program obtains its runtime with Open and releases it with Close:
//
//	rt, err := xbgas.Open(xbgas.WithNPEs(4))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer rt.Close()
//
//	addr, err := rt.Alloc(8 * unsafe.Sizeof(int64(0)))
//	...
//	data := []int64{1, 2, 3, 4, 5, 6, 7, 8}
//	if err := rt.PutInt64(data, addr, len(data), 1, 2); err != nil { // write to PE 2
//		log.Fatal(err)
//	}
//	if err := rt.Barrier(); err != nil {
//		log.Fatal(err)
//	}
//
// Addresses returned by Alloc are symmetric: the block occupies the same
// offset in every PE's partition, so one address names the corresponding
// block on any target PE.
//
// Within one PE's partition, operations are serialized by that PE's worker
// queue in FIFO order. Across PEs nothing is ordered unless separated by
// Barrier. Barrier has no timeout: if the program logic lets fewer than npes
// rendezvous points be reached, the call blocks forever, matching the HPC
// collective semantics being emulated.
package xbgas

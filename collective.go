package xbgas

// Collective operations involve every PE as a single logical step. Both
// operands are symmetric addresses: the same src and dest name the
// corresponding blocks in every partition. Only the signed element widths
// get collective entry points; there is no unsigned collective.

// BroadcastInt32 copies nelems strided int32 elements from rootPE's src into
// every PE's dest. When the call returns, each PE's dest is bitwise
// identical to rootPE's src at call time; no partial state is observable.
func (r *Runtime) BroadcastInt32(dest, src Addr, nelems, stride, rootPE int) error {
	return r.eng.Broadcast(4, uint64(dest), uint64(src), nelems, stride, rootPE)
}

// BroadcastInt64 is the 8-byte variant of BroadcastInt32.
func (r *Runtime) BroadcastInt64(dest, src Addr, nelems, stride, rootPE int) error {
	return r.eng.Broadcast(8, uint64(dest), uint64(src), nelems, stride, rootPE)
}

// ReduceSumInt32 computes the elementwise sum of src across all PEs and
// writes the nelems results to dest on PE pe. Partial sums are computed in
// parallel over contiguous element sub-ranges; accumulation order across PEs
// is unspecified and the operation relies only on associativity, which is
// exact for the integer element types.
func (r *Runtime) ReduceSumInt32(dest, src Addr, nelems, stride, pe int) error {
	return r.eng.ReduceSum(4, uint64(dest), uint64(src), nelems, stride, pe)
}

// ReduceSumInt64 is the 8-byte variant of ReduceSumInt32.
func (r *Runtime) ReduceSumInt64(dest, src Addr, nelems, stride, pe int) error {
	return r.eng.ReduceSum(8, uint64(dest), uint64(src), nelems, stride, pe)
}

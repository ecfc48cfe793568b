package collective

import "golang.org/x/exp/constraints"

// Total sums a slice with the same modular integer semantics the reduction
// uses. Callers (the bench harness, tests) use it to compute expected
// reduction results without caring about accumulation order.
func Total[T constraints.Integer](xs []T) T {
	var sum T
	for _, x := range xs {
		sum += x
	}
	return sum
}

// ExpectedSum returns the elementwise sum a reduction over npes PEs must
// produce when every PE p contributes the constant value p, i.e. the nth
// triangular number of npes-1 replicated nelems times.
func ExpectedSum[T constraints.Integer](npes, nelems int) []T {
	var per T
	for p := 0; p < npes; p++ {
		per += T(p)
	}
	out := make([]T, nelems)
	for i := range out {
		out[i] = per
	}
	return out
}

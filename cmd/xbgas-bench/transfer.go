// transfer.go implements the 'xbgas-bench transfer' command.
package main

import (
	"os"
	"time"
)

// transferCommand times strided put/get round trips against every PE in
// turn. Each iteration writes a distinct pattern and reads it back; a
// mismatch aborts the run before any timing is reported.
func transferCommand(args []string) {
	var bf benchFlags
	fs := newFlagSet("transfer", &bf)
	_ = fs.Parse(args)

	tStart := time.Now()
	rt := openRuntime(bf)
	defer func() { _ = rt.Close() }()

	span := uint64(bf.nelems*bf.stride) * 8
	addr, err := rt.Alloc(span)
	if err != nil {
		fatalf("alloc %d bytes: %v", span, err)
	}
	tInit := time.Since(tStart)

	src := make([]int64, bf.nelems)
	got := make([]int64, bf.nelems)
	var local, remote int

	tXfer := time.Now()
	for iter := 0; iter < bf.iters; iter++ {
		for pe := 0; pe < rt.NumPEs(); pe++ {
			for i := range src {
				src[i] = int64(iter*bf.nelems + i + pe)
			}
			if err := rt.PutInt64(src, addr, bf.nelems, bf.stride, pe); err != nil {
				fatalf("put to pe %d: %v", pe, err)
			}
			if err := rt.GetInt64(got, addr, bf.nelems, bf.stride, pe); err != nil {
				fatalf("get from pe %d: %v", pe, err)
			}
			for i := range got {
				if got[i] != src[i] {
					fatalf("round trip mismatch on pe %d element %d: got %d want %d",
						pe, i, got[i], src[i])
				}
			}
			if pe == rt.MyPE() {
				local += 2
			} else {
				remote += 2
			}
		}
	}

	report{
		Init:     tInit,
		Transfer: time.Since(tXfer),
		Local:    local,
		Remote:   remote,
	}.render(os.Stdout, true)
}

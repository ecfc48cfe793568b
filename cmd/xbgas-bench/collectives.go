// collectives.go implements the 'xbgas-bench broadcast' and
// 'xbgas-bench reduce' commands.
package main

import (
	"os"
	"time"

	"github.com/kolkov/xbgas/internal/rt/collective"
)

// broadcastCommand seeds the root PE with a known pattern, broadcasts it,
// and verifies every PE's copy.
func broadcastCommand(args []string) {
	var bf benchFlags
	fs := newFlagSet("broadcast", &bf)
	_ = fs.Parse(args)

	tStart := time.Now()
	rt := openRuntime(bf)
	defer func() { _ = rt.Close() }()

	span := uint64(bf.nelems*bf.stride) * 8
	src, err := rt.Alloc(span)
	if err != nil {
		fatalf("alloc src: %v", err)
	}
	dest, err := rt.Alloc(span)
	if err != nil {
		fatalf("alloc dest: %v", err)
	}

	pattern := make([]int64, bf.nelems)
	for i := range pattern {
		pattern[i] = int64(i + 1)
	}
	if err := rt.PutInt64(pattern, src, bf.nelems, bf.stride, bf.root); err != nil {
		fatalf("seed root pe %d: %v", bf.root, err)
	}
	tInit := time.Since(tStart)

	tXfer := time.Now()
	for iter := 0; iter < bf.iters; iter++ {
		if err := rt.BroadcastInt64(dest, src, bf.nelems, bf.stride, bf.root); err != nil {
			fatalf("broadcast: %v", err)
		}
	}
	tElapsed := time.Since(tXfer)

	got := make([]int64, bf.nelems)
	for pe := 0; pe < rt.NumPEs(); pe++ {
		if err := rt.GetInt64(got, dest, bf.nelems, bf.stride, pe); err != nil {
			fatalf("verify pe %d: %v", pe, err)
		}
		for i := range got {
			if got[i] != pattern[i] {
				fatalf("pe %d element %d: got %d want %d", pe, i, got[i], pattern[i])
			}
		}
	}

	report{
		Init:     tInit,
		Transfer: tElapsed,
		Local:    bf.iters,
		Remote:   bf.iters * (rt.NumPEs() - 1),
	}.render(os.Stdout, true)
}

// reduceCommand writes the constant p into PE p's source block, reduces, and
// checks the destination against the closed-form expected sum.
func reduceCommand(args []string) {
	var bf benchFlags
	fs := newFlagSet("reduce", &bf)
	_ = fs.Parse(args)

	tStart := time.Now()
	rt := openRuntime(bf)
	defer func() { _ = rt.Close() }()

	span := uint64(bf.nelems*bf.stride) * 8
	src, err := rt.Alloc(span)
	if err != nil {
		fatalf("alloc src: %v", err)
	}
	dest, err := rt.Alloc(span)
	if err != nil {
		fatalf("alloc dest: %v", err)
	}

	buf := make([]int64, bf.nelems)
	for pe := 0; pe < rt.NumPEs(); pe++ {
		for i := range buf {
			buf[i] = int64(pe)
		}
		if err := rt.PutInt64(buf, src, bf.nelems, bf.stride, pe); err != nil {
			fatalf("seed pe %d: %v", pe, err)
		}
	}
	tInit := time.Since(tStart)

	tXfer := time.Now()
	for iter := 0; iter < bf.iters; iter++ {
		if err := rt.ReduceSumInt64(dest, src, bf.nelems, bf.stride, bf.root); err != nil {
			fatalf("reduce: %v", err)
		}
	}
	tElapsed := time.Since(tXfer)

	want := collective.ExpectedSum[int64](rt.NumPEs(), bf.nelems)
	got := make([]int64, bf.nelems)
	if err := rt.GetInt64(got, dest, bf.nelems, bf.stride, bf.root); err != nil {
		fatalf("verify: %v", err)
	}
	for i := range got {
		if got[i] != want[i] {
			fatalf("element %d: got %d want %d", i, got[i], want[i])
		}
	}

	report{
		Init:     tInit,
		Transfer: tElapsed,
		Local:    bf.iters,
		Remote:   bf.iters * (rt.NumPEs() - 1),
	}.render(os.Stdout, true)
}

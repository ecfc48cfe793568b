// barrier.go implements the 'xbgas-bench barrier' command.
package main

import (
	"fmt"
	"os"
	"time"
)

// barrierCommand times repeated full-group rendezvous cycles and reports the
// mean latency per cycle.
func barrierCommand(args []string) {
	var bf benchFlags
	fs := newFlagSet("barrier", &bf)
	_ = fs.Parse(args)
	if bf.iters < 1 {
		fatalf("iters must be at least 1")
	}

	tStart := time.Now()
	rt := openRuntime(bf)
	defer func() { _ = rt.Close() }()
	tInit := time.Since(tStart)

	tXfer := time.Now()
	for i := 0; i < bf.iters; i++ {
		if err := rt.Barrier(); err != nil {
			fatalf("barrier cycle %d: %v", i, err)
		}
	}
	elapsed := time.Since(tXfer)

	report{Init: tInit, Transfer: elapsed}.render(os.Stdout, true)
	fmt.Printf("Cycles          = %d\n", bf.iters)
	fmt.Printf("Mean latency    = %s\n", elapsed/time.Duration(bf.iters))
}

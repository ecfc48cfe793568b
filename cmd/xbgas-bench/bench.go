// bench.go holds the flag plumbing and runtime setup shared by the
// subcommands.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/kolkov/xbgas"
	"github.com/kolkov/xbgas/internal/logs"
)

// benchFlags are the options every subcommand accepts.
type benchFlags struct {
	npes   int
	mem    uint64
	nelems int
	stride int
	iters  int
	root   int
	debug  bool
}

// newFlagSet builds a flag set with the shared options preregistered.
func newFlagSet(name string, bf *benchFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.IntVar(&bf.npes, "npes", 4, "number of processing elements")
	fs.Uint64Var(&bf.mem, "mem", 16<<20, "emulated shared memory in bytes")
	fs.IntVar(&bf.nelems, "nelems", 1024, "elements per operation")
	fs.IntVar(&bf.stride, "stride", 1, "element stride")
	fs.IntVar(&bf.iters, "iters", 100, "iterations")
	fs.IntVar(&bf.root, "root", 0, "root PE for collectives")
	fs.BoolVar(&bf.debug, "debug", false, "enable debug logging")
	return fs
}

// openRuntime opens the emulated runtime from the parsed flags. It exits the
// process on failure; subcommands treat a bad configuration as fatal.
func openRuntime(bf benchFlags) *xbgas.Runtime {
	opts := []xbgas.Option{
		xbgas.WithNPEs(bf.npes),
		xbgas.WithMemSize(bf.mem),
	}
	if bf.debug {
		logs.SetDebug()
		opts = append(opts, xbgas.WithLogger(logs.New(os.Stderr)))
	}
	rt, err := xbgas.Open(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open runtime: %v\n", err)
		os.Exit(1)
	}
	return rt
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

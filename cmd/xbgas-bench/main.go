// Package main implements the xbgas-bench CLI tool.
//
// xbgas-bench exercises the emulated PGAS runtime end to end and reports
// timing plus the local/remote request distribution for each operation
// family:
//
//	xbgas-bench transfer   # strided put/get round trips against every PE
//	xbgas-bench broadcast  # one-to-all broadcast from a root PE
//	xbgas-bench reduce     # all-to-one elementwise sum reduction
//	xbgas-bench barrier    # repeated full-group rendezvous
//
// Every subcommand takes -npes, -mem and -debug; the data-moving ones add
// -nelems and -stride. Results are verified before timings are printed, so a
// non-zero exit means the runtime produced wrong data, not just slow data.
package main

import (
	"fmt"
	"os"

	"golang.org/x/mod/semver"

	"github.com/kolkov/xbgas"
)

// minRuntime is the oldest runtime version whose wire behavior this bench
// understands.
const minRuntime = "v0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if err := checkRuntimeVersion(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "transfer":
		transferCommand(os.Args[2:])
	case "broadcast":
		broadcastCommand(os.Args[2:])
	case "reduce":
		reduceCommand(os.Args[2:])
	case "barrier":
		barrierCommand(os.Args[2:])
	case "version", "--version", "-v":
		fmt.Printf("xbgas-bench runtime %s\n", xbgas.Version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// checkRuntimeVersion refuses to run against a runtime older than
// minRuntime.
func checkRuntimeVersion() error {
	v := "v" + xbgas.Version
	if !semver.IsValid(v) {
		return fmt.Errorf("runtime reports invalid version %q", xbgas.Version)
	}
	if semver.Compare(v, minRuntime) < 0 {
		return fmt.Errorf("runtime %s is older than the supported minimum %s", v, minRuntime)
	}
	return nil
}

func printUsage() {
	fmt.Print(`xbgas-bench - PGAS Runtime Benchmark Tool

USAGE:
    xbgas-bench <command> [flags]

COMMANDS:
    transfer   Strided put/get round trips against every PE
    broadcast  One-to-all broadcast from a root PE
    reduce     All-to-one elementwise sum reduction
    barrier    Repeated full-group rendezvous
    version    Show version information
    help       Show this help message

EXAMPLES:
    # 8 PEs, default element count, stride 2
    xbgas-bench transfer -npes 8 -stride 2

    # Broadcast 1024 elements from PE 3
    xbgas-bench broadcast -npes 4 -nelems 1024 -root 3

    # Reduce with debug logging
    xbgas-bench reduce -npes 4 -debug

    # 10000 barrier cycles
    xbgas-bench barrier -npes 16 -iters 10000
`)
}

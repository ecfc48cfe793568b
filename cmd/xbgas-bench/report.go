// report.go renders benchmark results: init/transfer timings and a colored
// bar visualizing how requests split between the local PE and remote ones.
package main

import (
	"fmt"
	"io"
	"strings"
	"time"
)

const (
	colorRed   = "\x1B[1m\x1B[31m"
	colorGreen = "\x1B[1m\x1B[32m"
	colorReset = "\x1B[0m"
)

// report holds the measurements of one benchmark run.
type report struct {
	Init     time.Duration
	Transfer time.Duration
	Local    int
	Remote   int
}

// render writes the timing block and the request distribution bar. With
// color disabled the bar uses R/L characters instead of colored pipes.
func (r report) render(w io.Writer, color bool) {
	fmt.Fprintf(w, "Time.init       = %f sec\n", r.Init.Seconds())
	fmt.Fprintf(w, "Time.transfer   = %f sec\n", r.Transfer.Seconds())

	total := r.Local + r.Remote
	if total == 0 {
		return
	}
	remotePct := 100 * float64(r.Remote) / float64(total)
	localPct := 100 * float64(r.Local) / float64(total)
	bars := int(remotePct)

	if color {
		fmt.Fprintf(w, "Remote Access   = %s%.3f%%%s\n", colorRed, remotePct, colorReset)
		fmt.Fprintf(w, "Local  Access   = %s%.3f%%%s\n", colorGreen, localPct, colorReset)
	} else {
		fmt.Fprintf(w, "Remote Access   = %.3f%%\n", remotePct)
		fmt.Fprintf(w, "Local  Access   = %.3f%%\n", localPct)
	}

	rule := strings.Repeat("-", 42)
	fmt.Fprintln(w, rule)
	fmt.Fprint(w, "Request Distribution:  [")
	for i := 0; i < bars; i++ {
		if color {
			fmt.Fprint(w, colorRed+"|"+colorReset)
		} else {
			fmt.Fprint(w, "R")
		}
	}
	for i := 0; i < 100-bars; i++ {
		if color {
			fmt.Fprint(w, colorGreen+"|"+colorReset)
		} else {
			fmt.Fprint(w, "L")
		}
	}
	fmt.Fprintln(w, "]")
	fmt.Fprintln(w, rule)
}

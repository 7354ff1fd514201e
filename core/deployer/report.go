package deployer

import (
	"fmt"
	"io"
	"strings"
)

// WriteSummary prints a per-archive outcome table followed by the overall
// verdict. Rows follow the order the archives were processed in.
func WriteSummary(w io.Writer, title string, results []Result) {
	sep := strings.Repeat("=", 50)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, sep)
	for _, r := range results {
		if r.Ok {
			fmt.Fprintf(w, "  OK      %s\n", r.Archive)
			continue
		}
		fmt.Fprintf(w, "  FAILED  %s (%s)\n", r.Archive, r.Diagnostic)
	}
	fmt.Fprintln(w, sep)
	if Succeeded(results) {
		fmt.Fprintf(w, "All %d archive(s) deployed successfully\n", len(results))
	} else {
		fmt.Fprintf(w, "%d of %d archive(s) failed\n", countFailed(results), len(results))
	}
}

func countFailed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Ok {
			n++
		}
	}
	return n
}

package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/DjordjeVuckovic/qbench/internal/bench/result"
)

// WriteTable renders the run as one benchmark × revision row per line.
func WriteTable(r *Report, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== Query Benchmark ===\n")
	fmt.Fprintf(tw, "run %s at %s, %d iteration(s)\n\n",
		r.Meta.RunID, r.Meta.Timestamp.Format("2006-01-02 15:04:05 MST"), r.Meta.Iterations)

	header := []string{"Benchmark", "Revision", "Status", "Avg", "Min", "Median", "P95", "Max", "Pre", "Post", "Error"}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))

	for _, b := range r.Benchmarks {
		for _, rev := range b.Revisions {
			fmt.Fprintln(tw, strings.Join(revisionRow(b.Name, rev), "\t"))
		}
	}

	tw.Flush()
}

func revisionRow(benchmark string, rev RevisionReport) []string {
	if rev.Failed() {
		return []string{
			benchmark, rev.RevisionName, string(rev.Status),
			"-", "-", "-", "-", "-", "-", "-",
			rev.Error,
		}
	}

	return []string{
		benchmark,
		rev.RevisionName,
		string(result.StatusSuccess),
		FormatDuration(rev.AvgDuration),
		FormatDuration(rev.Latency.Min),
		FormatDuration(rev.Latency.Median),
		FormatDuration(rev.Latency.P95),
		FormatDuration(rev.Latency.Max),
		FormatDuration(rev.PreScriptDuration),
		FormatDuration(rev.PostScriptDuration),
		"",
	}
}

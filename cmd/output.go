package cmd

import (
	"fmt"
	"io"

	"github.com/ed-sim/ed-sim/sim/ed"
	"github.com/ed-sim/ed-sim/sim/records"
	"github.com/ed-sim/ed-sim/sim/trace"
)

// printResult writes the run summary, the optional records table and the
// trace summary when a trace was collected.
func printResult(w io.Writer, res *ed.Result, withRecords bool) error {
	fmt.Fprintf(w, "Run %s: %d patients arrived, %d still in the department at %.1f\n",
		res.RunID, res.Spawned, res.Abandoned, res.EndTime)
	records.Summarize(res.Records).Print(w)

	fmt.Fprintln(w, "=== Resource Pools ===")
	for _, p := range res.Pools {
		fmt.Fprintf(w, "%-10s : capacity=%d peak=%d grants=%d held=%d queued=%d\n",
			p.Name, p.Capacity, p.PeakHeld, p.Grants, p.Held, p.Queued)
	}

	if withRecords {
		fmt.Fprintln(w, "=== Patient Records ===")
		if err := records.WriteTable(w, res.Records.Records()); err != nil {
			return err
		}
	}

	if res.Trace != nil {
		summary := trace.Summarize(res.Trace)
		fmt.Fprintln(w, "=== Trace Summary ===")
		fmt.Fprintf(w, "Resource records: %d\n", summary.TotalRecords)
		for _, ps := range summary.Pools {
			fmt.Fprintf(w, "%-10s : requests=%d grants=%d releases=%d peak=%d mean_wait=%.3f max_wait=%.3f\n",
				ps.Pool, ps.Requests, ps.Grants, ps.Releases, ps.PeakHeld, ps.MeanWait, ps.MaxWait)
		}
	}
	return nil
}

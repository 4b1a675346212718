package records

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// OutcomeSummary aggregates the records of one outcome.
type OutcomeSummary struct {
	Outcome Outcome
	Count   int
	// Timed counts records carrying both Arrival Time and Follow Up End.
	Timed     int
	MeanTotal float64
	P50Total  float64
	P90Total  float64
}

// Report is the end-of-run summary over a record set.
type Report struct {
	Records  int
	Outcomes []OutcomeSummary
}

// Summarize computes a Report. Safe for a nil or empty set.
func Summarize(s *Set) *Report {
	report := &Report{}
	if s == nil {
		s = NewSet()
	}
	report.Records = s.Len()
	counts := s.CountByOutcome()
	for _, o := range AllOutcomes() {
		totals := s.TotalTimes(o)
		report.Outcomes = append(report.Outcomes, OutcomeSummary{
			Outcome:   o,
			Count:     counts[o],
			Timed:     len(totals),
			MeanTotal: CalculateMean(totals),
			P50Total:  CalculatePercentile(totals, 50),
			P90Total:  CalculatePercentile(totals, 90),
		})
	}
	return report
}

// Outcome returns the summary for o.
func (r *Report) Outcome(o Outcome) OutcomeSummary {
	for _, s := range r.Outcomes {
		if s.Outcome == o {
			return s
		}
	}
	return OutcomeSummary{Outcome: o}
}

// Print writes the summary in the layout of the department's daily sheet.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Emergency Department Summary ===")
	fmt.Fprintf(w, "Number of Patient Records : %d\n", r.Records)
	for _, s := range r.Outcomes {
		fmt.Fprintf(w, "Number of Patients %-17s: %d\n", string(s.Outcome), s.Count)
		if s.Timed > 0 {
			fmt.Fprintf(w, "  Average Time in Department : %.2f min\n", s.MeanTotal)
			fmt.Fprintf(w, "  Median / P90 Time          : %.2f / %.2f min\n", s.P50Total, s.P90Total)
		}
	}
}

// WriteTable writes recs as an aligned table with one column per record
// key. Missing timestamps are left blank.
func WriteTable(w io.Writer, recs []PatientRecord) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{PatientKey}
	for _, f := range AllFields() {
		header = append(header, f.String())
	}
	header = append(header, OutcomeKey)
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, r := range recs {
		row := []string{r.patient}
		for _, f := range AllFields() {
			if v, ok := r.Get(f); ok {
				row = append(row, strconv.FormatFloat(v, 'f', 3, 64))
			} else {
				row = append(row, "")
			}
		}
		row = append(row, string(r.outcome))
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

package records

// Sink receives each finalized patient record exactly once, in completion order.
type Sink interface {
	Emit(PatientRecord)
}

// SinkFunc adapts an ordinary function to the Sink interface.
type SinkFunc func(PatientRecord)

// Emit calls f(r).
func (f SinkFunc) Emit(r PatientRecord) {
	f(r)
}

// Set is the in-memory record collection of a run. It implements Sink.
type Set struct {
	records []PatientRecord
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{records: make([]PatientRecord, 0)}
}

// Emit appends r.
func (s *Set) Emit(r PatientRecord) {
	s.records = append(s.records, r)
}

// Len returns the number of records.
func (s *Set) Len() int {
	return len(s.records)
}

// Records returns a copy of the records in completion order.
func (s *Set) Records() []PatientRecord {
	out := make([]PatientRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Filter returns the records with the given outcome, in completion order.
func (s *Set) Filter(outcome Outcome) []PatientRecord {
	var out []PatientRecord
	for _, r := range s.records {
		if r.outcome == outcome {
			out = append(out, r)
		}
	}
	return out
}

// CountByOutcome returns the number of records per outcome.
func (s *Set) CountByOutcome() map[Outcome]int {
	counts := make(map[Outcome]int)
	for _, r := range s.records {
		counts[r.outcome]++
	}
	return counts
}

// TotalTimes returns Follow Up End − Arrival Time for every record with the
// given outcome that carries both fields.
func (s *Set) TotalTimes(outcome Outcome) []float64 {
	var out []float64
	for _, r := range s.records {
		if r.outcome != outcome {
			continue
		}
		if total, ok := r.TotalTime(); ok {
			out = append(out, total)
		}
	}
	return out
}

// MeanTotalTime returns the mean of TotalTimes(outcome). ok is false when
// no record of that outcome carries both fields.
func (s *Set) MeanTotalTime(outcome Outcome) (mean float64, ok bool) {
	totals := s.TotalTimes(outcome)
	if len(totals) == 0 {
		return 0, false
	}
	return CalculateMean(totals), true
}

// Package records holds the output of a department run: one immutable
// PatientRecord per patient that reached a terminal pathway state, and the
// aggregates computed over them.
// This package has no dependencies on sim/ or sim/ed/.
package records

import (
	"fmt"
	"strconv"
	"strings"
)

// Field names one timestamp of a patient record.
type Field int

const (
	ArrivalTime Field = iota
	TriageStart
	TriageEnd
	TreatmentStart
	TreatmentEnd
	LabTestStart
	LabTestEnd
	ResultsReady
	FollowUpStart
	FollowUpEnd

	numFields
)

var fieldNames = [numFields]string{
	ArrivalTime:    "Arrival Time",
	TriageStart:    "Triage Start",
	TriageEnd:      "Triage End",
	TreatmentStart: "Treatment Start",
	TreatmentEnd:   "Treatment End",
	LabTestStart:   "Lab Test Start",
	LabTestEnd:     "Lab Test End",
	ResultsReady:   "Results Ready",
	FollowUpStart:  "Follow Up Start",
	FollowUpEnd:    "Follow Up End",
}

func (f Field) String() string {
	if f < 0 || f >= numFields {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldNames[f]
}

// AllFields returns every timing field in pathway order.
func AllFields() []Field {
	fields := make([]Field, numFields)
	for i := range fields {
		fields[i] = Field(i)
	}
	return fields
}

// Column names of the two non-timing entries of a record.
const (
	PatientKey = "Patient"
	OutcomeKey = "Outcome"
)

// Outcome tags the terminal state a patient reached.
type Outcome string

const (
	OutcomeAdmittedByNurse Outcome = "Admitted by Nurse"
	OutcomeDischarged      Outcome = "Discharged"
	OutcomeAdmitted        Outcome = "Admitted"
)

// AllOutcomes returns every outcome in report order.
func AllOutcomes() []Outcome {
	return []Outcome{OutcomeDischarged, OutcomeAdmitted, OutcomeAdmittedByNurse}
}

// PatientRecord is the finalized timing record of one patient.
// It is a value type; once built it cannot change.
type PatientRecord struct {
	patient string
	outcome Outcome
	times   [numFields]float64
	present [numFields]bool
}

// Patient returns the patient's name.
func (r PatientRecord) Patient() string { return r.patient }

// Outcome returns the terminal outcome.
func (r PatientRecord) Outcome() Outcome { return r.outcome }

// Get returns the timestamp of f and whether the patient's path recorded it.
func (r PatientRecord) Get(f Field) (float64, bool) {
	if f < 0 || f >= numFields || !r.present[f] {
		return 0, false
	}
	return r.times[f], true
}

// Fields returns the recorded timing fields in pathway order.
func (r PatientRecord) Fields() []Field {
	fields := make([]Field, 0, numFields)
	for f := Field(0); f < numFields; f++ {
		if r.present[f] {
			fields = append(fields, f)
		}
	}
	return fields
}

// TotalTime returns Follow Up End minus Arrival Time when both are recorded.
func (r PatientRecord) TotalTime() (float64, bool) {
	end, okEnd := r.Get(FollowUpEnd)
	start, okStart := r.Get(ArrivalTime)
	if !okEnd || !okStart {
		return 0, false
	}
	return end - start, true
}

// Map returns the record as a column-name keyed mapping, including the
// Patient and Outcome entries.
func (r PatientRecord) Map() map[string]any {
	m := map[string]any{
		PatientKey: r.patient,
		OutcomeKey: string(r.outcome),
	}
	for _, f := range r.Fields() {
		m[f.String()] = r.times[f]
	}
	return m
}

func (r PatientRecord) String() string {
	var sb strings.Builder
	sb.WriteString(r.patient)
	sb.WriteString(" | ")
	sb.WriteString(string(r.outcome))
	sb.WriteString(" |")
	for _, f := range r.Fields() {
		sb.WriteString(" ")
		sb.WriteString(f.String())
		sb.WriteString("=")
		sb.WriteString(strconv.FormatFloat(r.times[f], 'f', -1, 64))
	}
	return sb.String()
}

// Builder accumulates a patient's timestamps while the patient is in the
// pathway. Build seals it and returns the immutable record.
type Builder struct {
	rec    PatientRecord
	sealed bool
}

// NewBuilder starts a record for patient.
func NewBuilder(patient string) *Builder {
	return &Builder{rec: PatientRecord{patient: patient}}
}

// Set records timestamp t for field f.
func (b *Builder) Set(f Field, t float64) *Builder {
	if b.sealed {
		panic(fmt.Sprintf("Builder.Set: record for %s already built", b.rec.patient))
	}
	if f < 0 || f >= numFields {
		panic(fmt.Sprintf("Builder.Set: unknown field %d", int(f)))
	}
	b.rec.times[f] = t
	b.rec.present[f] = true
	return b
}

// Get returns the timestamp recorded so far for f.
func (b *Builder) Get(f Field) (float64, bool) {
	return b.rec.Get(f)
}

// Build seals the builder and returns the record tagged with outcome.
func (b *Builder) Build(outcome Outcome) PatientRecord {
	if b.sealed {
		panic(fmt.Sprintf("Builder.Build: record for %s already built", b.rec.patient))
	}
	b.sealed = true
	b.rec.outcome = outcome
	return b.rec
}

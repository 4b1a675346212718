package ed

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/ed-sim/ed-sim/sim"
	"github.com/ed-sim/ed-sim/sim/records"
	"github.com/ed-sim/ed-sim/sim/workload"
)

// PathwayState is the position of a patient in the care pathway.
type PathwayState int

const (
	Arrived PathwayState = iota
	WaitingForNurse
	InTriage
	AwaitingExam
	WaitingForDoctor
	InTreatment
	WaitingForLab
	InLabTest
	AwaitingResults
	WaitingForFollowUp
	InFollowUp

	// Terminal states.
	NurseAdmitted
	Discharged
	Admitted
)

var stateNames = map[PathwayState]string{
	Arrived:            "Arrived",
	WaitingForNurse:    "WaitingForNurse",
	InTriage:           "InTriage",
	AwaitingExam:       "AwaitingExam",
	WaitingForDoctor:   "WaitingForDoctor",
	InTreatment:        "InTreatment",
	WaitingForLab:      "WaitingForLab",
	InLabTest:          "InLabTest",
	AwaitingResults:    "AwaitingResults",
	WaitingForFollowUp: "WaitingForFollowUp",
	InFollowUp:         "InFollowUp",
	NurseAdmitted:      "NurseAdmitted",
	Discharged:         "Discharged",
	Admitted:           "Admitted",
}

func (s PathwayState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("PathwayState(%d)", int(s))
}

// Terminal reports whether no transition leaves s.
func (s PathwayState) Terminal() bool {
	return s == NurseAdmitted || s == Discharged || s == Admitted
}

// Outcome maps a terminal state to its record tag.
func (s PathwayState) Outcome() (records.Outcome, bool) {
	switch s {
	case NurseAdmitted:
		return records.OutcomeAdmittedByNurse, true
	case Discharged:
		return records.OutcomeDischarged, true
	case Admitted:
		return records.OutcomeAdmitted, true
	}
	return "", false
}

// pathway is the configuration shared by every patient of a run.
type pathway struct {
	dept        *Department
	triage      workload.DurationSampler
	treatment   workload.DurationSampler
	labTest     workload.DurationSampler
	followUp    workload.DurationSampler
	resultsWait float64
	nurseAdmit  float64
	discharge   float64
	rng         *sim.PartitionedRNG
	sink        records.Sink
}

func newPathway(cfg Config, dept *Department, rng *sim.PartitionedRNG, sink records.Sink) *pathway {
	return &pathway{
		dept:        dept,
		triage:      workload.NewDurationSampler(cfg.Stages.Triage),
		treatment:   workload.NewDurationSampler(cfg.Stages.Treatment),
		labTest:     workload.NewDurationSampler(cfg.Stages.LabTest),
		followUp:    workload.NewDurationSampler(cfg.Stages.FollowUp),
		resultsWait: cfg.Stages.ResultsWait,
		nurseAdmit:  cfg.Probabilities.NurseAdmit,
		discharge:   cfg.Probabilities.Discharge,
		rng:         rng,
		sink:        sink,
	}
}

func (pw *pathway) stageRNG(stage string) *rand.Rand {
	return pw.rng.ForSubsystem(sim.SubsystemStage(stage))
}

func (pw *pathway) decisionRNG(point string) *rand.Rand {
	return pw.rng.ForSubsystem(sim.SubsystemDecision(point))
}

// Patient is one patient's walk through the pathway. It implements
// sim.Routine; each Resume performs the transition out of the current
// state and returns what the next state waits on.
type Patient struct {
	ID    int
	Name  string
	pw    *pathway
	state PathwayState
	rec   *records.Builder
}

func newPatient(id int, pw *pathway) *Patient {
	name := fmt.Sprintf("Patient %d", id)
	return &Patient{
		ID:    id,
		Name:  name,
		pw:    pw,
		state: Arrived,
		rec:   records.NewBuilder(name),
	}
}

// State returns the current pathway state.
func (pt *Patient) State() PathwayState {
	return pt.state
}

// Resume implements sim.Routine.
func (pt *Patient) Resume(p *sim.Process) sim.Await {
	now := p.Now()
	d := pt.pw.dept

	switch pt.state {
	case Arrived:
		pt.rec.Set(records.ArrivalTime, now)
		logrus.Infof("%s arrives at the emergency department at %.1f", pt.Name, now)
		pt.state = WaitingForNurse
		return sim.Acquire(d.Nurse)

	case WaitingForNurse:
		pt.rec.Set(records.TriageStart, now)
		pt.state = InTriage
		return sim.Timeout(pt.pw.triage.Sample(pt.pw.stageRNG("triage")))

	case InTriage:
		pt.rec.Set(records.TriageEnd, now)
		admit := pt.pw.decisionRNG("triage").Float64() < pt.pw.nurseAdmit
		d.Nurse.Release(p)
		if admit {
			logrus.Infof("%s is directly admitted to the hospital after triage at %.1f", pt.Name, now)
			return pt.finish(NurseAdmitted)
		}
		logrus.Infof("%s leaves triage at %.1f", pt.Name, now)
		pt.state = AwaitingExam
		return sim.Acquire(d.ExamRoom)

	case AwaitingExam:
		pt.state = WaitingForDoctor
		return sim.Acquire(d.Doctor)

	case WaitingForDoctor:
		pt.rec.Set(records.TreatmentStart, now)
		pt.state = InTreatment
		return sim.Timeout(pt.pw.treatment.Sample(pt.pw.stageRNG("treatment")))

	case InTreatment:
		pt.rec.Set(records.TreatmentEnd, now)
		d.Doctor.Release(p)
		d.ExamRoom.Release(p)
		logrus.Infof("%s needs lab tests at %.1f", pt.Name, now)
		pt.state = WaitingForLab
		return sim.Acquire(d.LabTech)

	case WaitingForLab:
		pt.rec.Set(records.LabTestStart, now)
		pt.state = InLabTest
		return sim.Timeout(pt.pw.labTest.Sample(pt.pw.stageRNG("lab_test")))

	case InLabTest:
		pt.rec.Set(records.LabTestEnd, now)
		d.LabTech.Release(p)
		logrus.Infof("%s lab test completed at %.1f", pt.Name, now)
		pt.rec.Set(records.ResultsReady, now+pt.pw.resultsWait)
		pt.state = AwaitingResults
		return sim.Timeout(pt.pw.resultsWait)

	case AwaitingResults:
		logrus.Infof("%s lab results are ready at %.1f", pt.Name, now)
		pt.state = WaitingForFollowUp
		return sim.Acquire(d.Doctor)

	case WaitingForFollowUp:
		pt.rec.Set(records.FollowUpStart, now)
		pt.state = InFollowUp
		return sim.Timeout(pt.pw.followUp.Sample(pt.pw.stageRNG("follow_up")))

	case InFollowUp:
		pt.rec.Set(records.FollowUpEnd, now)
		next := Admitted
		if pt.pw.decisionRNG("follow_up").Float64() < pt.pw.discharge {
			next = Discharged
		}
		d.Doctor.Release(p)
		outcome, _ := next.Outcome()
		logrus.Infof("%s %s at %.1f", pt.Name, outcome, now)
		return pt.finish(next)
	}

	panic(fmt.Sprintf("%s resumed in terminal state %s", pt.Name, pt.state))
}

// finish moves the patient to a terminal state and hands the sealed record
// to the sink. The patient holds no pool at this point.
func (pt *Patient) finish(terminal PathwayState) sim.Await {
	outcome, ok := terminal.Outcome()
	if !ok {
		panic(fmt.Sprintf("finish: %s is not terminal", terminal))
	}
	pt.state = terminal
	pt.pw.sink.Emit(pt.rec.Build(outcome))
	return sim.Done()
}

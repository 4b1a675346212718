package ed

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ed-sim/ed-sim/sim"
	"github.com/ed-sim/ed-sim/sim/workload"
)

// Config is the static input of one department run. Times are minutes.
type Config struct {
	Seed          int64             `yaml:"seed"`
	Horizon       float64           `yaml:"horizon"`
	Arrivals      ArrivalConfig     `yaml:"arrivals"`
	Stages        StageConfig       `yaml:"stages"`
	Probabilities ProbabilityConfig `yaml:"probabilities"`
	Capacities    CapacityConfig    `yaml:"capacities"`
}

// ArrivalConfig controls the arrival generator.
type ArrivalConfig struct {
	InitialPatients  int     `yaml:"initial_patients"`
	MeanInterArrival float64 `yaml:"mean_interarrival"`
	// DisableStream spawns only the initial batch.
	DisableStream bool                 `yaml:"disable_stream"`
	Spec          workload.ArrivalSpec `yaml:",inline"`
}

// StageConfig holds the service-time ranges of each care stage.
type StageConfig struct {
	Triage      workload.DurationRange `yaml:"triage"`
	Treatment   workload.DurationRange `yaml:"treatment"`
	LabTest     workload.DurationRange `yaml:"lab_test"`
	ResultsWait float64                `yaml:"results_wait"`
	FollowUp    workload.DurationRange `yaml:"follow_up"`
}

// ProbabilityConfig holds the branch probabilities of the pathway.
type ProbabilityConfig struct {
	NurseAdmit float64 `yaml:"nurse_admit"`
	Discharge  float64 `yaml:"discharge"`
}

// CapacityConfig holds the number of units in each resource pool.
type CapacityConfig struct {
	Nurses    int `yaml:"nurses"`
	ExamRooms int `yaml:"exam_rooms"`
	Doctors   int `yaml:"doctors"`
	LabTechs  int `yaml:"lab_techs"`
}

// DefaultConfig returns the reference department: one of each resource,
// five patients waiting at opening and a new arrival every ten minutes on
// average over a six-hour shift.
func DefaultConfig() Config {
	return Config{
		Seed:    42,
		Horizon: 360,
		Arrivals: ArrivalConfig{
			InitialPatients:  5,
			MeanInterArrival: 10,
			Spec:             workload.ArrivalSpec{Process: "poisson"},
		},
		Stages: StageConfig{
			Triage:      workload.DurationRange{Min: 1, Max: 3},
			Treatment:   workload.DurationRange{Min: 5, Max: 15},
			LabTest:     workload.DurationRange{Min: 5, Max: 10},
			ResultsWait: 20,
			FollowUp:    workload.DurationRange{Min: 5, Max: 5},
		},
		Probabilities: ProbabilityConfig{
			NurseAdmit: 0.05,
			Discharge:  0.7,
		},
		Capacities: CapacityConfig{
			Nurses:    1,
			ExamRooms: 1,
			Doctors:   1,
			LabTechs:  1,
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig. Keys absent from the
// file keep their default; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading department config: %w", err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing department config: %w", err)
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Validate checks every parameter range. Negative times wrap
// sim.ErrInvalidDelay and non-positive capacities wrap sim.ErrInvalidCapacity.
func (c Config) Validate() error {
	if c.Horizon < 0 || math.IsNaN(c.Horizon) {
		return fmt.Errorf("horizon must be non-negative, got %v", c.Horizon)
	}
	// An endless stream never empties the queue, so only a closed
	// department may run without a horizon.
	if math.IsInf(c.Horizon, 1) && !c.Arrivals.DisableStream {
		return fmt.Errorf("horizon must be finite while the arrival stream is on")
	}
	if c.Arrivals.InitialPatients < 0 {
		return fmt.Errorf("arrivals.initial_patients must be non-negative, got %d", c.Arrivals.InitialPatients)
	}
	if !c.Arrivals.DisableStream {
		if c.Arrivals.MeanInterArrival <= 0 || math.IsNaN(c.Arrivals.MeanInterArrival) || math.IsInf(c.Arrivals.MeanInterArrival, 0) {
			return fmt.Errorf("arrivals.mean_interarrival must be positive and finite, got %v", c.Arrivals.MeanInterArrival)
		}
		if err := c.Arrivals.Spec.Validate(); err != nil {
			return fmt.Errorf("arrivals: %w", err)
		}
	}

	stages := []struct {
		name string
		r    workload.DurationRange
	}{
		{"triage", c.Stages.Triage},
		{"treatment", c.Stages.Treatment},
		{"lab_test", c.Stages.LabTest},
		{"follow_up", c.Stages.FollowUp},
	}
	for _, s := range stages {
		if s.r.Min < 0 {
			return fmt.Errorf("stages.%s: min %d: %w", s.name, s.r.Min, sim.ErrInvalidDelay)
		}
		if err := s.r.Validate(); err != nil {
			return fmt.Errorf("stages.%s: %w", s.name, err)
		}
	}
	if c.Stages.ResultsWait < 0 || math.IsNaN(c.Stages.ResultsWait) || math.IsInf(c.Stages.ResultsWait, 0) {
		return fmt.Errorf("stages.results_wait %v: %w", c.Stages.ResultsWait, sim.ErrInvalidDelay)
	}

	probs := []struct {
		name string
		p    float64
	}{
		{"nurse_admit", c.Probabilities.NurseAdmit},
		{"discharge", c.Probabilities.Discharge},
	}
	for _, pr := range probs {
		if pr.p < 0 || pr.p > 1 || math.IsNaN(pr.p) {
			return fmt.Errorf("probabilities.%s must be in [0, 1], got %v", pr.name, pr.p)
		}
	}

	caps := []struct {
		name string
		n    int
	}{
		{"nurses", c.Capacities.Nurses},
		{"exam_rooms", c.Capacities.ExamRooms},
		{"doctors", c.Capacities.Doctors},
		{"lab_techs", c.Capacities.LabTechs},
	}
	for _, cp := range caps {
		if cp.n <= 0 {
			return fmt.Errorf("capacities.%s = %d: %w", cp.name, cp.n, sim.ErrInvalidCapacity)
		}
	}
	return nil
}

package workload

import (
	"fmt"
	"math/rand"
)

// DurationSampler generates service times for a care stage.
type DurationSampler interface {
	// Sample returns a non-negative duration in minutes.
	Sample(rng *rand.Rand) float64
}

// UniformIntSampler draws whole minutes uniformly from [min, max], both inclusive.
type UniformIntSampler struct {
	min, max int
}

func (s *UniformIntSampler) Sample(rng *rand.Rand) float64 {
	return float64(s.min + rng.Intn(s.max-s.min+1))
}

// FixedSampler always returns the same duration and never draws from the RNG.
type FixedSampler struct {
	minutes float64
}

func (s *FixedSampler) Sample(_ *rand.Rand) float64 {
	return s.minutes
}

// DurationRange is the inclusive whole-minute range of a stage's service time.
type DurationRange struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Validate checks 0 <= Min <= Max.
func (r DurationRange) Validate() error {
	if r.Min < 0 {
		return fmt.Errorf("min must be non-negative, got %d", r.Min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("max %d is below min %d", r.Max, r.Min)
	}
	return nil
}

// NewDurationSampler returns a FixedSampler when the range is a single
// value and a UniformIntSampler otherwise.
// Panics on an invalid range; validate configuration first.
func NewDurationSampler(r DurationRange) DurationSampler {
	if err := r.Validate(); err != nil {
		panic(fmt.Sprintf("NewDurationSampler: %v", err))
	}
	if r.Min == r.Max {
		return &FixedSampler{minutes: float64(r.Min)}
	}
	return &UniformIntSampler{min: r.Min, max: r.Max}
}

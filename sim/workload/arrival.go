// Package workload provides the stochastic inputs of the department model:
// inter-arrival gaps for the patient stream and service times for care stages.
// All values are logical minutes.
package workload

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// ArrivalSpec selects the inter-arrival process of the patient stream.
type ArrivalSpec struct {
	Process string   `yaml:"process"`      // "poisson" (default), "gamma", "weibull", "constant"
	CV      *float64 `yaml:"cv,omitempty"` // coefficient of variation for gamma/weibull
}

// ValidArrivalProcesses is the set of recognized arrival process names.
var ValidArrivalProcesses = map[string]bool{"": true, "poisson": true, "gamma": true, "weibull": true, "constant": true}

// Validate checks the process name and CV range.
func (s ArrivalSpec) Validate() error {
	if !ValidArrivalProcesses[s.Process] {
		return fmt.Errorf("unknown arrival process %q", s.Process)
	}
	if s.CV != nil && (*s.CV <= 0 || math.IsNaN(*s.CV) || math.IsInf(*s.CV, 0)) {
		return fmt.Errorf("arrival cv must be positive and finite, got %v", *s.CV)
	}
	return nil
}

// ArrivalSampler generates inter-arrival gaps for the patient stream.
type ArrivalSampler interface {
	// SampleGap returns the next inter-arrival gap in minutes (>= 0).
	SampleGap(rng *rand.Rand) float64
	// Mean returns the configured mean gap in minutes.
	Mean() float64
}

// PoissonSampler generates exponentially-distributed gaps (CV=1).
type PoissonSampler struct {
	mean float64
}

func (s *PoissonSampler) SampleGap(rng *rand.Rand) float64 {
	return rng.ExpFloat64() * s.mean
}

func (s *PoissonSampler) Mean() float64 { return s.mean }

// GammaSampler generates Gamma-distributed gaps.
// CV > 1 produces bursty arrivals, as when ambulances arrive in clusters.
// Implemented using Marsaglia-Tsang's method for shape >= 1,
// with transformation for shape < 1.
type GammaSampler struct {
	shape float64 // 1/CV² (alpha parameter)
	scale float64 // mean*CV² in minutes (beta parameter)
}

func (s *GammaSampler) SampleGap(rng *rand.Rand) float64 {
	return gammaRand(rng, s.shape, s.scale)
}

func (s *GammaSampler) Mean() float64 { return s.shape * s.scale }

// gammaRand samples from Gamma(shape, scale) using Marsaglia-Tsang's method.
// For shape >= 1: direct method.
// For shape < 1: Gamma(shape) = Gamma(shape+1) * U^(1/shape).
func gammaRand(rng *rand.Rand, shape, scale float64) float64 {
	if shape < 1.0 {
		u := rng.Float64()
		return gammaRand(rng, shape+1.0, scale) * math.Pow(u, 1.0/shape)
	}

	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9.0*d)

	for {
		var x, v float64
		for {
			x = rng.NormFloat64()
			v = 1.0 + c*x
			if v > 0 {
				break
			}
		}
		v = v * v * v
		u := rng.Float64()

		// Squeeze test
		if u < 1.0-0.0331*(x*x)*(x*x) {
			return d * v * scale
		}
		if math.Log(u) < 0.5*x*x+d*(1.0-v+math.Log(v)) {
			return d * v * scale
		}
	}
}

// WeibullSampler generates Weibull-distributed gaps.
type WeibullSampler struct {
	shape float64 // Weibull k parameter
	scale float64 // Weibull λ parameter (in minutes)
}

func (s *WeibullSampler) SampleGap(rng *rand.Rand) float64 {
	// Inverse CDF: scale * (-ln(U))^(1/shape)
	u := rng.Float64()
	if u == 0 {
		u = math.SmallestNonzeroFloat64 // prevent -ln(0) = +Inf
	}
	return s.scale * math.Pow(-math.Log(u), 1.0/s.shape)
}

func (s *WeibullSampler) Mean() float64 { return s.scale * math.Gamma(1.0+1.0/s.shape) }

// ConstantArrivalSampler produces evenly spaced arrivals. It never draws
// from the RNG.
type ConstantArrivalSampler struct {
	gap float64
}

func (s *ConstantArrivalSampler) SampleGap(_ *rand.Rand) float64 {
	return s.gap
}

func (s *ConstantArrivalSampler) Mean() float64 { return s.gap }

// NewArrivalSampler creates an ArrivalSampler from a spec and the mean
// inter-arrival gap in minutes.
func NewArrivalSampler(spec ArrivalSpec, meanGap float64) ArrivalSampler {
	switch spec.Process {
	case "gamma":
		cv := cvOrDefault(spec.CV)
		// shape = 1/CV², scale = mean * CV²
		shape := 1.0 / (cv * cv)
		scale := meanGap * cv * cv
		if shape < 0.01 {
			logrus.Warnf("Gamma shape %.4f (CV=%.1f) is very small; falling back to Poisson", shape, cv)
			return &PoissonSampler{mean: meanGap}
		}
		return &GammaSampler{shape: shape, scale: scale}

	case "weibull":
		k := weibullShapeFromCV(cvOrDefault(spec.CV))
		// scale = mean / Γ(1 + 1/k)
		return &WeibullSampler{shape: k, scale: meanGap / math.Gamma(1.0+1.0/k)}

	case "constant":
		return &ConstantArrivalSampler{gap: meanGap}

	default:
		return &PoissonSampler{mean: meanGap}
	}
}

func cvOrDefault(cv *float64) float64 {
	if cv == nil || *cv <= 0 {
		return 1.0
	}
	return *cv
}

// weibullShapeFromCV finds Weibull shape parameter k such that
// CV² = Γ(1+2/k)/Γ(1+1/k)² - 1, using bisection.
// Range: k ∈ [0.1, 100], tolerance: |CV_computed - CV_target| < 0.001.
func weibullShapeFromCV(targetCV float64) float64 {
	lo, hi := 0.1, 100.0
	for i := 0; i < 100; i++ {
		mid := (lo + hi) / 2.0
		cv := weibullCV(mid)
		if math.Abs(cv-targetCV) < 0.001 {
			return mid
		}
		// CV is monotonically decreasing in k
		if cv > targetCV {
			lo = mid
		} else {
			hi = mid
		}
	}
	logrus.Warnf("weibullShapeFromCV: bisection did not converge for CV=%.3f after 100 iterations; using k=%.3f", targetCV, (lo+hi)/2.0)
	return (lo + hi) / 2.0
}

// weibullCV computes the coefficient of variation for Weibull(k).
func weibullCV(k float64) float64 {
	g1 := math.Gamma(1.0 + 1.0/k)
	g2 := math.Gamma(1.0 + 2.0/k)
	return math.Sqrt(g2/(g1*g1) - 1.0)
}

package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// SimulationKey is the master seed of a department run. Two runs with the
// same key and configuration fire the same events at the same times.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// SubsystemArrivals is the stream of inter-arrival gaps. It is seeded
// with the master seed itself.
const SubsystemArrivals = "arrivals"

// SubsystemStage names the stream of service times for one care stage,
// e.g. "stage_triage".
func SubsystemStage(stage string) string {
	return fmt.Sprintf("stage_%s", stage)
}

// SubsystemDecision names the stream of a branch point of the pathway,
// e.g. "decision_follow_up".
func SubsystemDecision(point string) string {
	return fmt.Sprintf("decision_%s", point)
}

// PartitionedRNG hands out one *rand.Rand per stream so that draws for
// one stage or branch never shift another. Adding a triage minute does
// not move the next arrival.
//
// The arrivals stream uses the master seed; every stage_* and decision_*
// stream uses the master seed XOR the FNV-1a hash of its name.
// Not safe for concurrent use; the kernel is single-threaded.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:     key,
		streams: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the stream for name, creating it on first use.
// Later calls with the same name continue the same sequence.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	seed := int64(p.key)
	if name != SubsystemArrivals {
		seed ^= fnv1a64(name)
	}
	rng := rand.New(rand.NewSource(seed))
	p.streams[name] = rng
	return rng
}

// Key returns the master seed.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

package sim

import (
	"math"
	"math/rand"
	"testing"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// GIVEN two partitioned RNGs built from the same key
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))
	name := SubsystemDecision("triage")

	// WHEN three values are drawn from the same subsystem of each
	// THEN the sequences are identical
	for i := 0; i < 3; i++ {
		v1 := rng1.ForSubsystem(name).Float64()
		v2 := rng2.ForSubsystem(name).Float64()
		if v1 != v2 {
			t.Errorf("Value %d: got %v and %v, want identical", i, v1, v2)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// GIVEN two RNGs with the same key
	rngA := NewPartitionedRNG(NewSimulationKey(42))
	rngB := NewPartitionedRNG(NewSimulationKey(42))

	// WHEN A draws heavily from the arrival stream before touching the triage stage
	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(SubsystemArrivals).ExpFloat64()
	}
	aFirst := rngA.ForSubsystem(SubsystemStage("triage")).Intn(3)
	aSecond := rngA.ForSubsystem(SubsystemStage("triage")).Float64()

	// THEN A's triage stream is unaffected and matches B's fresh stream
	bFirst := rngB.ForSubsystem(SubsystemStage("triage")).Intn(3)
	bSecond := rngB.ForSubsystem(SubsystemStage("triage")).Float64()
	if aFirst != bFirst || aSecond != bSecond {
		t.Errorf("triage stream perturbed by arrivals: (%d, %v) vs (%d, %v)", aFirst, aSecond, bFirst, bSecond)
	}
}

func TestPartitionedRNG_ArrivalsUseMasterSeed(t *testing.T) {
	// GIVEN the arrivals subsystem and a plain RNG seeded identically
	seed := int64(42)
	arrivals := NewPartitionedRNG(NewSimulationKey(seed)).ForSubsystem(SubsystemArrivals)
	direct := newRandFromSeed(seed)

	// THEN they produce identical sequences
	for i := 0; i < 10; i++ {
		got := arrivals.Float64()
		want := direct.Float64()
		if got != want {
			t.Errorf("Value %d: arrivals RNG = %v, direct RNG = %v", i, got, want)
		}
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))

	rng1 := rng.ForSubsystem(SubsystemArrivals)
	rng2 := rng.ForSubsystem(SubsystemArrivals)

	if rng1 != rng2 {
		t.Error("ForSubsystem returned different instances for same name")
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	seed := int64(12345)
	rng := NewPartitionedRNG(NewSimulationKey(seed))

	if rng.Key() != SimulationKey(seed) {
		t.Errorf("Key() = %v, want %v", rng.Key(), seed)
	}
}

func TestPartitionedRNG_LazyInitialization(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))

	if len(rng.streams) != 0 {
		t.Errorf("New PartitionedRNG has %d streams, want 0", len(rng.streams))
	}

	rng.ForSubsystem(SubsystemArrivals)

	if len(rng.streams) != 1 {
		t.Errorf("After one ForSubsystem call, have %d streams, want 1", len(rng.streams))
	}
}

// === fnv1a64 Tests ===

func TestFnv1a64_Collision(t *testing.T) {
	// Different subsystem names should produce different hashes (spot check)
	names := []string{
		SubsystemArrivals,
		SubsystemStage("triage"),
		SubsystemStage("treatment"),
		SubsystemStage("lab_test"),
		SubsystemDecision("triage"),
		SubsystemDecision("follow_up"),
		"",
	}

	hashes := make(map[int64]string)
	for _, name := range names {
		h := fnv1a64(name)
		if existing, ok := hashes[h]; ok {
			t.Errorf("Hash collision: %q and %q both hash to %d", name, existing, h)
		}
		hashes[h] = name
	}
}

func TestSubsystemNames(t *testing.T) {
	tests := []struct {
		got  string
		want string
	}{
		{SubsystemStage("triage"), "stage_triage"},
		{SubsystemStage("lab_test"), "stage_lab_test"},
		{SubsystemDecision("follow_up"), "decision_follow_up"},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("subsystem name = %q, want %q", tt.got, tt.want)
		}
	}
}

// === Benchmark ===

func BenchmarkPartitionedRNG_ForSubsystem_CacheHit(b *testing.B) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	rng.ForSubsystem(SubsystemArrivals)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rng.ForSubsystem(SubsystemArrivals)
	}
}

// === Helper ===

// newRandFromSeed creates a *rand.Rand with the given seed
func newRandFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

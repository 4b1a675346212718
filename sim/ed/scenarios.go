package ed

import (
	"fmt"
	"sort"
)

// Built-in department presets for common operating conditions.
// Each returns a valid Config built on DefaultConfig.

// ScenarioBurstyArrivals models ambulance clusters: Gamma-distributed gaps
// with the default mean but a coefficient of variation of 3.5.
func ScenarioBurstyArrivals(seed int64) Config {
	cfg := DefaultConfig()
	cfg.Seed = seed
	cv := 3.5
	cfg.Arrivals.Spec.Process = "gamma"
	cfg.Arrivals.Spec.CV = &cv
	return cfg
}

// ScenarioSurge doubles the arrival rate against the reference staffing.
func ScenarioSurge(seed int64) Config {
	cfg := DefaultConfig()
	cfg.Seed = seed
	cfg.Arrivals.InitialPatients = 10
	cfg.Arrivals.MeanInterArrival = 5
	return cfg
}

// ScenarioStaffedSurge is ScenarioSurge with a second nurse, exam room and
// doctor.
func ScenarioStaffedSurge(seed int64) Config {
	cfg := ScenarioSurge(seed)
	cfg.Capacities = CapacityConfig{Nurses: 2, ExamRooms: 2, Doctors: 2, LabTechs: 1}
	return cfg
}

// ScenarioOpeningOnly runs the opening batch with no further arrivals.
func ScenarioOpeningOnly(seed int64) Config {
	cfg := DefaultConfig()
	cfg.Seed = seed
	cfg.Arrivals.DisableStream = true
	return cfg
}

var scenarios = map[string]func(seed int64) Config{
	"reference":     func(seed int64) Config { c := DefaultConfig(); c.Seed = seed; return c },
	"bursty":        ScenarioBurstyArrivals,
	"surge":         ScenarioSurge,
	"staffed-surge": ScenarioStaffedSurge,
	"opening-only":  ScenarioOpeningOnly,
}

// ScenarioNames lists the preset names accepted by Scenario, sorted.
func ScenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scenario returns the named preset.
func Scenario(name string, seed int64) (Config, error) {
	build, ok := scenarios[name]
	if !ok {
		return Config{}, fmt.Errorf("unknown scenario %q (valid: %v)", name, ScenarioNames())
	}
	return build(seed), nil
}

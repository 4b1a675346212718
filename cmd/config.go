package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ed-sim/ed-sim/sim/ed"
)

// resolveConfig builds the run configuration: defaults, a --scenario
// preset or a --config file, then every flag the user set explicitly.
// Flags left at their default never overwrite a value from the base.
func resolveConfig(cmd *cobra.Command) (ed.Config, error) {
	cfg := ed.DefaultConfig()
	switch {
	case scenario != "" && configPath != "":
		return cfg, fmt.Errorf("--scenario and --config are mutually exclusive")
	case scenario != "":
		preset, err := ed.Scenario(scenario, cfg.Seed)
		if err != nil {
			return cfg, err
		}
		cfg = preset
	case configPath != "":
		loaded, err := ed.LoadConfig(configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if flags.Changed("initial-patients") {
		cfg.Arrivals.InitialPatients = initialPatients
	}
	if flags.Changed("interarrival") {
		cfg.Arrivals.MeanInterArrival = meanInterArrival
	}
	if flags.Changed("arrival-process") {
		cfg.Arrivals.Spec.Process = arrivalProcess
	}
	if flags.Changed("arrival-cv") {
		cv := arrivalCV
		cfg.Arrivals.Spec.CV = &cv
	}
	if flags.Changed("no-stream") {
		cfg.Arrivals.DisableStream = noStream
	}
	if flags.Changed("nurses") {
		cfg.Capacities.Nurses = nurses
	}
	if flags.Changed("exam-rooms") {
		cfg.Capacities.ExamRooms = examRooms
	}
	if flags.Changed("doctors") {
		cfg.Capacities.Doctors = doctors
	}
	if flags.Changed("lab-techs") {
		cfg.Capacities.LabTechs = labTechs
	}
	return cfg, cfg.Validate()
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ed-sim/ed-sim/sim/ed"
	"github.com/ed-sim/ed-sim/sim/trace"
)

var (
	// CLI flags for the run
	seed       int64   // Seed for every random stream of the run
	horizon    float64 // Simulated minutes to run
	logLevel   string  // Log verbosity level
	configPath string  // Optional YAML department config
	scenario   string  // Optional built-in preset

	// CLI flags for the arrival stream
	initialPatients  int     // Patients waiting at opening
	meanInterArrival float64 // Mean minutes between arrivals
	arrivalProcess   string  // Inter-arrival process name
	arrivalCV        float64 // Coefficient of variation for gamma/weibull gaps
	noStream         bool    // Spawn only the opening batch

	// CLI flags for pool capacities
	nurses    int
	examRooms int
	doctors   int
	labTechs  int

	// CLI flags for output
	traceLevel  string // Resource trace level
	showRecords bool   // Print every patient record
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "ed-sim",
	Short: "Discrete-event simulator for emergency department patient flow",
}

// runCmd executes one department run using the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the emergency department simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s (valid: none, resources)", traceLevel)
		}

		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		startTime := time.Now()
		res, err := ed.Run(cfg, trace.TraceConfig{Level: trace.TraceLevel(traceLevel)})
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		if err := printResult(os.Stdout, res, showRecords); err != nil {
			logrus.Fatalf("Writing results: %v", err)
		}
		logrus.Infof("Simulation complete in %v.", time.Since(startTime))
	},
}

// defaultsCmd prints the reference configuration as YAML
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default department configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		data, err := ed.DefaultConfig().Marshal()
		if err != nil {
			logrus.Fatalf("Failed to render defaults: %v", err)
		}
		_, _ = cmd.OutOrStdout().Write(data)
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerRunFlags binds the run flags to c. Defaults mirror ed.DefaultConfig
// so the help text shows the reference department.
func registerRunFlags(c *cobra.Command) {
	def := ed.DefaultConfig()

	c.Flags().Int64Var(&seed, "seed", def.Seed, "Seed for arrivals, service times and branch decisions")
	c.Flags().Float64Var(&horizon, "horizon", def.Horizon, "Simulation horizon (in minutes)")
	c.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	c.Flags().StringVar(&configPath, "config", "", "Path to a YAML department config; flags override its values")
	c.Flags().StringVar(&scenario, "scenario", "", fmt.Sprintf("Built-in preset %v; flags override its values", ed.ScenarioNames()))

	// Arrival stream
	c.Flags().IntVar(&initialPatients, "initial-patients", def.Arrivals.InitialPatients, "Patients waiting when the department opens")
	c.Flags().Float64Var(&meanInterArrival, "interarrival", def.Arrivals.MeanInterArrival, "Mean minutes between arrivals")
	c.Flags().StringVar(&arrivalProcess, "arrival-process", def.Arrivals.Spec.Process, "Inter-arrival process (poisson, gamma, weibull, constant)")
	c.Flags().Float64Var(&arrivalCV, "arrival-cv", 1.0, "Coefficient of variation of inter-arrival gaps (gamma, weibull)")
	c.Flags().BoolVar(&noStream, "no-stream", false, "Spawn only the opening batch")

	// Pool capacities
	c.Flags().IntVar(&nurses, "nurses", def.Capacities.Nurses, "Number of triage nurses")
	c.Flags().IntVar(&examRooms, "exam-rooms", def.Capacities.ExamRooms, "Number of exam rooms")
	c.Flags().IntVar(&doctors, "doctors", def.Capacities.Doctors, "Number of doctors")
	c.Flags().IntVar(&labTechs, "lab-techs", def.Capacities.LabTechs, "Number of lab technicians")

	// Output
	c.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Resource trace level (none, resources)")
	c.Flags().BoolVar(&showRecords, "records", false, "Print every patient record in completion order")
}

// init sets up CLI flags and subcommands
func init() {
	registerRunFlags(runCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(defaultsCmd)
}

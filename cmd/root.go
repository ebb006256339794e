package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/testlane-sim/sim"
)

var (
	// CLI flags for the scenario
	seed             int64         // Seed for patient generation and sample durations
	openingTime      string        // Start of sampling, HH:MM[:SS]
	closingTime      string        // Latest arrival accepted, HH:MM[:SS]
	numNurses        int           // Nurses working in parallel
	numPatients      int           // Patients expected today
	priorityFraction float64       // Share of patients with priority
	arrivalProcess   string        // Arrival process: uniform, poisson, gamma
	arrivalCV        float64       // Coefficient of variation for gamma arrivals
	serviceDist      string        // Sample-duration distribution: uniform, fixed, exponential
	serviceMin       time.Duration // Uniform lower bound, exponential floor
	serviceMax       time.Duration // Uniform upper bound (exclusive)
	serviceFixed     time.Duration // Fixed sample duration
	serviceMean      time.Duration // Exponential mean
	traceLevel       string        // Dispatch trace verbosity
	resultsPath      string        // File to save the metrics as YAML
	printCensus      bool          // Print zip-area and symptom statistics

	// CLI flags for configuration sources
	logLevel     string // Log verbosity level
	scenarioPath string // Scenario YAML file
	envFilePath  string // .env file with TESTLANE_* overrides
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "testlane",
	Short: "Discrete-event simulator for a corona test lane",
}

// runCmd simulates one day using the resolved scenario
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate one day at the test lane",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		sc, err := resolveScenario(cmd)
		if err != nil {
			logrus.Fatalf("Invalid scenario: %v", err)
		}
		logrus.Infof("Starting simulation with %d nurses, %d patients, seed=%d, window=%s-%s",
			sc.Nurses, sc.Workload.NumPatients, sc.Seed, sc.Lane.OpeningTime, sc.Lane.ClosingTime)

		startTime := time.Now()
		fmt.Printf("\nCorona test lane simulation between %s and %s\n", sc.Lane.OpeningTime, sc.Lane.ClosingTime)
		s, metrics, err := simulateDay(sc)
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}

		metrics.Print(os.Stdout)
		if sc.Census {
			sim.PrintCensus(os.Stdout, s.Patients)
		}
		if s.Trace != nil {
			printTraceSummary(os.Stdout, s.Trace)
		}
		if sc.ResultsPath != "" {
			if err := metrics.SaveResults(sc.ResultsPath); err != nil {
				logrus.Fatalf("Could not save results: %v", err)
			}
			logrus.Infof("Results written to %s", sc.ResultsPath)
		}

		logrus.WithField("run", metrics.RunID).Infof("Simulation complete in %s.", time.Since(startTime))
	},
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveScenario layers the configuration sources:
// defaults < --config YAML < --env-file < explicitly set flags.
func resolveScenario(cmd *cobra.Command) (Scenario, error) {
	sc := DefaultScenario()
	var err error
	if scenarioPath != "" {
		if sc, err = loadScenario(scenarioPath, sc); err != nil {
			return sc, err
		}
	}
	if envFilePath != "" {
		if err := applyEnvFile(envFilePath, &sc); err != nil {
			return sc, err
		}
	}
	if err := applyFlags(cmd, &sc); err != nil {
		return sc, err
	}
	return sc, sc.Validate()
}

// applyFlags copies only the flags the user set, so flag defaults never
// overwrite values from a scenario or .env file.
func applyFlags(cmd *cobra.Command, sc *Scenario) error {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		sc.Seed = seed
	}
	if flags.Changed("opening") {
		t, err := sim.ParseTime(openingTime)
		if err != nil {
			return errors.Wrap(err, "invalid --opening")
		}
		sc.Lane.OpeningTime = t
	}
	if flags.Changed("closing") {
		t, err := sim.ParseTime(closingTime)
		if err != nil {
			return errors.Wrap(err, "invalid --closing")
		}
		sc.Lane.ClosingTime = t
	}
	if flags.Changed("nurses") {
		sc.Nurses = numNurses
	}
	if flags.Changed("patients") {
		sc.Workload.NumPatients = numPatients
	}
	if flags.Changed("priority-fraction") {
		sc.Workload.PriorityFraction = priorityFraction
	}
	if flags.Changed("arrival") {
		sc.Workload.Arrival = arrivalProcess
	}
	if flags.Changed("arrival-cv") {
		sc.Workload.ArrivalCV = arrivalCV
	}
	if flags.Changed("service-distribution") {
		sc.Service.Distribution = serviceDist
	}
	if flags.Changed("service-min") {
		sc.Service.Min = serviceMin
	}
	if flags.Changed("service-max") {
		sc.Service.Max = serviceMax
	}
	if flags.Changed("service-fixed") {
		sc.Service.Fixed = serviceFixed
	}
	if flags.Changed("service-mean") {
		sc.Service.Mean = serviceMean
	}
	if flags.Changed("trace-level") {
		sc.TraceLevel = traceLevel
	}
	if flags.Changed("results-path") {
		sc.ResultsPath = resultsPath
	}
	if flags.Changed("census") {
		sc.Census = printCensus
	}
	return nil
}

// registerScenarioFlags adds the scenario flags shared by run and sweep.
// Defaults mirror DefaultScenario for --help output.
func registerScenarioFlags(cmd *cobra.Command) {
	def := DefaultScenario()
	cmd.Flags().Int64Var(&seed, "seed", def.Seed, "Seed for patient generation and sample durations")
	cmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	cmd.Flags().StringVar(&scenarioPath, "config", "", "Scenario YAML file")
	cmd.Flags().StringVar(&envFilePath, "env-file", "", ".env file with TESTLANE_* overrides")

	// Lane
	cmd.Flags().StringVar(&openingTime, "opening", def.Lane.OpeningTime.String(), "Opening time (HH:MM[:SS])")
	cmd.Flags().StringVar(&closingTime, "closing", def.Lane.ClosingTime.String(), "Latest arrival time (HH:MM[:SS])")
	cmd.Flags().IntVar(&numNurses, "nurses", def.Nurses, "Number of nurses sampling in parallel")

	// Workload
	cmd.Flags().IntVar(&numPatients, "patients", def.Workload.NumPatients, "Number of patients expected today")
	cmd.Flags().Float64Var(&priorityFraction, "priority-fraction", def.Workload.PriorityFraction, "Fraction of patients with priority")
	cmd.Flags().StringVar(&arrivalProcess, "arrival", def.Workload.Arrival, "Arrival process (uniform, poisson, gamma)")
	cmd.Flags().Float64Var(&arrivalCV, "arrival-cv", def.Workload.ArrivalCV, "Coefficient of variation for gamma arrivals")

	// Service
	cmd.Flags().StringVar(&serviceDist, "service-distribution", def.Service.Distribution, "Sample duration distribution (uniform, fixed, exponential)")
	cmd.Flags().DurationVar(&serviceMin, "service-min", def.Service.Min, "Minimum sample duration")
	cmd.Flags().DurationVar(&serviceMax, "service-max", def.Service.Max, "Maximum sample duration (exclusive)")
	cmd.Flags().DurationVar(&serviceFixed, "service-fixed", def.Service.Fixed, "Fixed sample duration")
	cmd.Flags().DurationVar(&serviceMean, "service-mean", def.Service.Mean, "Mean sample duration for the exponential distribution")

	// Output
	cmd.Flags().StringVar(&traceLevel, "trace-level", def.TraceLevel, "Dispatch trace level (none, dispatches)")
	cmd.Flags().StringVar(&resultsPath, "results-path", "", "Save the metrics as YAML to this file")
	cmd.Flags().BoolVar(&printCensus, "census", false, "Print patients per zip area and symptom hot spots")
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	registerScenarioFlags(runCmd)
	registerScenarioFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepMinNurses, "min-nurses", 1, "Smallest nurse count to simulate")
	sweepCmd.Flags().IntVar(&sweepMaxNurses, "max-nurses", 12, "Largest nurse count to simulate")
	sweepCmd.Flags().IntVar(&sweepParallel, "parallel", 4, "Simulations running concurrently")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}

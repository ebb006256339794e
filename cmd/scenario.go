package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/testlane-sim/sim"
	"github.com/inference-sim/testlane-sim/sim/trace"
	"github.com/inference-sim/testlane-sim/sim/workload"
)

// envPrefix marks the keys read from a .env file.
const envPrefix = "TESTLANE_"

// Scenario describes one simulated day at the test lane.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Scenario struct {
	Seed        int64             `yaml:"seed"`
	Lane        sim.LaneConfig    `yaml:"lane"`
	Nurses      int               `yaml:"nurses"`
	Workload    workload.Config   `yaml:"workload"`
	Service     sim.ServiceConfig `yaml:"service"`
	TraceLevel  string            `yaml:"trace_level"`
	ResultsPath string            `yaml:"results_path"`
	Census      bool              `yaml:"census"`
}

// DefaultScenario is a busy day: 2000 patients over eight hours with ten nurses.
func DefaultScenario() Scenario {
	return Scenario{
		Seed:   42,
		Lane:   sim.NewLaneConfig(sim.NewTime(8, 0, 0), sim.NewTime(16, 0, 0)),
		Nurses: 10,
		Workload: workload.Config{
			NumPatients:      2000,
			PriorityFraction: 0.1,
			Arrival:          "uniform",
			ArrivalCV:        2.0,
		},
		Service:    sim.DefaultServiceConfig(),
		TraceLevel: string(trace.TraceLevelNone),
	}
}

// Validate checks every section of the scenario.
func (s Scenario) Validate() error {
	if s.Nurses < 0 {
		return fmt.Errorf("number of nurses must be non-negative, got %d", s.Nurses)
	}
	if err := s.Lane.Validate(); err != nil {
		return err
	}
	if err := s.Workload.Validate(); err != nil {
		return err
	}
	if !sim.IsValidServiceDistribution(s.Service.Distribution) {
		return errors.Wrapf(sim.ErrInvalidServiceTime, "unknown distribution %q", s.Service.Distribution)
	}
	if !trace.IsValidTraceLevel(s.TraceLevel) {
		return fmt.Errorf("unknown trace level %q", s.TraceLevel)
	}
	return nil
}

// loadScenario overlays the YAML file at path onto base.
// Uses strict field checking: typos must cause errors.
func loadScenario(path string, base Scenario) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, errors.Wrap(err, "read scenario file")
	}
	sc := base
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return base, errors.Wrapf(err, "parse scenario %s", path)
	}
	return sc, nil
}

// envSetters maps TESTLANE_* keys (without prefix) to scenario fields.
var envSetters = map[string]func(*Scenario, string) error{
	"SEED":                 func(s *Scenario, v string) error { return parseInt64(v, &s.Seed) },
	"OPENING":              func(s *Scenario, v string) error { return parseTime(v, &s.Lane.OpeningTime) },
	"CLOSING":              func(s *Scenario, v string) error { return parseTime(v, &s.Lane.ClosingTime) },
	"NURSES":               func(s *Scenario, v string) error { return parseInt(v, &s.Nurses) },
	"PATIENTS":             func(s *Scenario, v string) error { return parseInt(v, &s.Workload.NumPatients) },
	"PRIORITY_FRACTION":    func(s *Scenario, v string) error { return parseFloat(v, &s.Workload.PriorityFraction) },
	"ARRIVAL":              func(s *Scenario, v string) error { s.Workload.Arrival = v; return nil },
	"ARRIVAL_CV":           func(s *Scenario, v string) error { return parseFloat(v, &s.Workload.ArrivalCV) },
	"SERVICE_DISTRIBUTION": func(s *Scenario, v string) error { s.Service.Distribution = v; return nil },
	"SERVICE_MIN":          func(s *Scenario, v string) error { return parseDuration(v, &s.Service.Min) },
	"SERVICE_MAX":          func(s *Scenario, v string) error { return parseDuration(v, &s.Service.Max) },
	"SERVICE_FIXED":        func(s *Scenario, v string) error { return parseDuration(v, &s.Service.Fixed) },
	"SERVICE_MEAN":         func(s *Scenario, v string) error { return parseDuration(v, &s.Service.Mean) },
	"TRACE_LEVEL":          func(s *Scenario, v string) error { s.TraceLevel = v; return nil },
	"RESULTS_PATH":         func(s *Scenario, v string) error { s.ResultsPath = v; return nil },
	"CENSUS":               func(s *Scenario, v string) error { return parseBool(v, &s.Census) },
}

// applyEnvFile overlays TESTLANE_* keys from a .env file onto sc.
// The process environment is left untouched. Unknown TESTLANE_* keys are errors.
func applyEnvFile(path string, sc *Scenario) error {
	env, err := godotenv.Read(path)
	if err != nil {
		return errors.Wrap(err, "read env file")
	}
	return applyEnv(env, sc)
}

func applyEnv(env map[string]string, sc *Scenario) error {
	for key, value := range env {
		name, ok := strings.CutPrefix(key, envPrefix)
		if !ok {
			continue
		}
		set, known := envSetters[name]
		if !known {
			return fmt.Errorf("unknown setting %s", key)
		}
		if err := set(sc, value); err != nil {
			return errors.Wrapf(err, "invalid %s", key)
		}
	}
	return nil
}

func parseInt64(v string, dst *int64) error {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func parseInt(v string, dst *int) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func parseFloat(v string, dst *float64) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	*dst = f
	return nil
}

func parseBool(v string, dst *bool) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

func parseDuration(v string, dst *time.Duration) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func parseTime(v string, dst *sim.Time) error {
	t, err := sim.ParseTime(v)
	if err != nil {
		return err
	}
	*dst = t
	return nil
}

package workload

import (
	"fmt"
	"math/rand"

	"github.com/inference-sim/testlane-sim/sim"
)

// symptomProbability is the chance that a patient reports any single symptom.
const symptomProbability = 0.5

// Config describes the patients expected at the test lane on one day.
type Config struct {
	NumPatients      int     `yaml:"patients"`
	PriorityFraction float64 `yaml:"priority_fraction"` // share of patients with priority, in [0, 1]
	Arrival          string  `yaml:"arrival"`           // "uniform" (default), "poisson", "gamma"
	ArrivalCV        float64 `yaml:"arrival_cv"`        // coefficient of variation for "gamma"
}

// Validate checks that the workload can be generated.
func (c Config) Validate() error {
	if c.NumPatients < 0 {
		return fmt.Errorf("number of patients must be non-negative, got %d", c.NumPatients)
	}
	if c.PriorityFraction < 0 || c.PriorityFraction > 1 {
		return fmt.Errorf("priority fraction must be in [0, 1], got %v", c.PriorityFraction)
	}
	if _, err := NewArrivalProcess(c.Arrival, c.ArrivalCV); err != nil {
		return err
	}
	return nil
}

// GeneratePatients creates the patients arriving between opening and closing.
// Deterministic given the same config and rng state.
// Returns patients sorted by arrival with sequential IDs and Seq numbers.
func GeneratePatients(cfg Config, opening, closing sim.Time, rng *rand.Rand) ([]*sim.Patient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid workload config: %w", err)
	}
	process, err := NewArrivalProcess(cfg.Arrival, cfg.ArrivalCV)
	if err != nil {
		return nil, err
	}

	arrivals := process.Arrivals(rng, cfg.NumPatients, opening, closing)
	patients := make([]*sim.Patient, 0, len(arrivals))
	for i, t := range arrivals {
		p := sim.NewPatient(fmt.Sprintf("patient_%d", i), i, t, rng.Float64() < cfg.PriorityFraction)
		for _, s := range sim.Symptoms() {
			p.Symptoms[s] = rng.Float64() < symptomProbability
		}
		p.ZipCode = generateZipCode(rng)
		patients = append(patients, p)
	}
	return patients, nil
}

// generateZipCode draws a Dutch style postal code, 1000AA..1099ZZ.
func generateZipCode(rng *rand.Rand) string {
	area := 1000 + rng.Intn(100)
	return fmt.Sprintf("%d%c%c", area, 'A'+rune(rng.Intn(26)), 'A'+rune(rng.Intn(26)))
}

// Package testutil provides shared test infrastructure for the test-lane simulator.
// It holds the golden dataset types and assertion helpers used by sim/ tests.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one hand-checked day with a fixed sample duration.
// Times are HH:MM:SS strings.
type GoldenTestCase struct {
	Name           string          `json:"name"`
	Opening        string          `json:"opening"`
	Closing        string          `json:"closing"`
	Nurses         int             `json:"nurses"`
	ServiceSeconds int64           `json:"service_seconds"`
	Patients       []GoldenPatient `json:"patients"`
	Metrics        GoldenMetrics   `json:"metrics"`
}

// GoldenPatient is one arrival, listed in generation (Seq) order.
type GoldenPatient struct {
	Arrival  string `json:"arrival"`
	Priority bool   `json:"priority"`
}

// GoldenMetrics represents the expected outcome of a golden test case.
type GoldenMetrics struct {
	// Exact match metrics
	Admitted       int    `json:"admitted"`
	TurnedAway     int    `json:"turned_away"`
	MaxQueueLength int    `json:"max_queue_length"`
	WorkFinished   string `json:"work_finished"`

	// Per patient, in the order of Patients; "" for turned away
	SampledAt []string `json:"sampled_at"`
	SampledBy []string `json:"sampled_by"`

	// Wait statistics in seconds
	RegularAvgWaitS  float64 `json:"regular_avg_wait_s"`
	RegularMaxWaitS  float64 `json:"regular_max_wait_s"`
	PriorityAvgWaitS float64 `json:"priority_avg_wait_s"`

	// Per nurse, in nurse order
	NurseUtilization []float64 `json:"nurse_utilization"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

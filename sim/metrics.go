// Tracks the statistics of a simulated day: per nurse workload,
// queue length and wait times per priority tier.

package sim

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// TierStats summarises the wait times of one priority tier.
// A tier without patients reports all zeros.
type TierStats struct {
	Patients    int           `yaml:"patients"`
	TotalWait   time.Duration `yaml:"total_wait"`
	AverageWait time.Duration `yaml:"average_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	P50Wait     time.Duration `yaml:"p50_wait"`
	P90Wait     time.Duration `yaml:"p90_wait"`
}

// NurseStats is the end-of-day record of one nurse.
type NurseStats struct {
	Name              string        `yaml:"name"`
	PatientsSampled   int           `yaml:"patients_sampled"`
	TotalSamplingTime time.Duration `yaml:"total_sampling_time"`
	AverageSampleTime time.Duration `yaml:"average_sample_time"`
	Utilization       float64       `yaml:"utilization"` // busy / (closing - opening)
	Workload          int           `yaml:"workload"`    // Utilization as truncated percentage
	FinishedAt        Time          `yaml:"finished_at"`
}

// Metrics aggregates statistics about the simulation for final reporting.
type Metrics struct {
	RunID          string       `yaml:"run_id"`
	OpeningTime    Time         `yaml:"opening"`
	ClosingTime    Time         `yaml:"closing"`
	Admitted       int          `yaml:"admitted"`    // patients that joined the queue
	TurnedAway     int          `yaml:"turned_away"` // patients arriving after closing
	MaxQueueLength int          `yaml:"max_queue_length"`
	WorkFinished   Time         `yaml:"work_finished"` // latest nurse availability
	Regular        TierStats    `yaml:"regular"`
	Priority       TierStats    `yaml:"priority"`
	Nurses         []NurseStats `yaml:"nurses"`
}

// NewMetrics returns an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		Nurses: make([]NurseStats, 0),
	}
}

// collect derives the end-of-day statistics from the final simulation state.
func (m *Metrics) collect(cfg LaneConfig, nurses []*Nurse, patients []*Patient) {
	m.OpeningTime = cfg.OpeningTime
	m.ClosingTime = cfg.ClosingTime
	window := cfg.Window()

	m.WorkFinished = cfg.OpeningTime
	m.Nurses = make([]NurseStats, 0, len(nurses))
	for _, n := range nurses {
		m.Nurses = append(m.Nurses, NurseStats{
			Name:              n.Name,
			PatientsSampled:   n.PatientsSampled,
			TotalSamplingTime: n.TotalSamplingTime,
			AverageSampleTime: n.AverageSampleTime(),
			Utilization:       n.Utilization(window),
			Workload:          n.Workload(window),
			FinishedAt:        n.AvailableAt,
		})
		m.WorkFinished = MaxOf(m.WorkFinished, n.AvailableAt)
	}

	var regular, priority []time.Duration
	for _, p := range patients {
		if p.SampledBy == nil {
			continue
		}
		if p.Priority {
			priority = append(priority, p.Wait())
		} else {
			regular = append(regular, p.Wait())
		}
	}
	m.Regular = tierStats(regular)
	m.Priority = tierStats(priority)
}

// TotalSampled is the number of patients sampled across all nurses.
func (m *Metrics) TotalSampled() int {
	total := 0
	for _, n := range m.Nurses {
		total += n.PatientsSampled
	}
	return total
}

// Print displays the end-of-day statistics.
func (m *Metrics) Print(w io.Writer) {
	fmt.Fprintln(w, "Simulation results per nurse:")
	fmt.Fprintln(w, "    Name: #Patients:    Avg. sample time: Workload:")
	for _, n := range m.Nurses {
		fmt.Fprintf(w, "%10s %10d %20.2f %9d%%\n",
			n.Name, n.PatientsSampled, n.AverageSampleTime.Seconds(), n.Workload)
	}
	fmt.Fprintf(w, "Work finished at %s\n", m.WorkFinished)
	fmt.Fprintf(w, "Maximum patient queue length = %d\n", m.MaxQueueLength)
	if m.TurnedAway > 0 {
		fmt.Fprintf(w, "Patients turned away after closing = %d\n", m.TurnedAway)
	}
	fmt.Fprintln(w, "Wait times:          Average:  Maximum:   P90:")
	fmt.Fprintf(w, "Regular patients:  %9.2f %9.0f %6.0f\n",
		m.Regular.AverageWait.Seconds(), m.Regular.MaxWait.Seconds(), m.Regular.P90Wait.Seconds())
	if m.Priority.Patients > 0 {
		fmt.Fprintf(w, "Priority patients: %9.2f %9.0f %6.0f\n",
			m.Priority.AverageWait.Seconds(), m.Priority.MaxWait.Seconds(), m.Priority.P90Wait.Seconds())
	}
}

// SaveResults writes the metrics as YAML to path.
func (m *Metrics) SaveResults(path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return errors.Wrap(err, "marshal metrics")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write metrics to %s", path)
	}
	return nil
}

package sim

import (
	"fmt"
	"time"
)

// Nurse takes samples from one patient at a time.
// AvailableAt only ever moves forward: each service starts no earlier than the
// end of the previous one.
type Nurse struct {
	Name              string
	AvailableAt       Time          // Earliest time the nurse can start on the next patient
	PatientsSampled   int           // Patients sampled during the current run
	TotalSamplingTime time.Duration // Sum of all sample durations during the current run
}

// NewNurse creates a nurse who is available from startTime.
func NewNurse(name string, startTime Time) *Nurse {
	return &Nurse{Name: name, AvailableAt: startTime}
}

// NewNurses creates n nurses named Nurse-1..Nurse-n, all available from startTime.
func NewNurses(n int, startTime Time) []*Nurse {
	nurses := make([]*Nurse, 0, n)
	for i := 0; i < n; i++ {
		nurses = append(nurses, NewNurse(fmt.Sprintf("Nurse-%d", i+1), startTime))
	}
	return nurses
}

// Sample records sampling of p starting at start and lasting d.
// Panics if start precedes AvailableAt: a nurse never serves two patients at once.
func (n *Nurse) Sample(p *Patient, start Time, d time.Duration) {
	if start.Before(n.AvailableAt) {
		panic(fmt.Sprintf("Sample: %s busy until %s, cannot start %s at %s", n.Name, n.AvailableAt, p.ID, start))
	}
	if d < 0 {
		panic(fmt.Sprintf("Sample: negative duration %v for %s", d, p.ID))
	}
	p.SampledBy = n
	p.SampledAt = start
	p.SampleDuration = d
	p.State = StateInService

	n.AvailableAt = start.Add(d)
	n.PatientsSampled++
	n.TotalSamplingTime += d
}

// AverageSampleTime is TotalSamplingTime/PatientsSampled, or 0 for an idle nurse.
func (n *Nurse) AverageSampleTime() time.Duration {
	if n.PatientsSampled == 0 {
		return 0
	}
	return n.TotalSamplingTime / time.Duration(n.PatientsSampled)
}

// Utilization is the fraction of window the nurse spent sampling.
// Overtime after closing can push it above 1. Returns 0 for an empty window.
func (n *Nurse) Utilization(window time.Duration) float64 {
	if window <= 0 {
		return 0
	}
	return n.TotalSamplingTime.Seconds() / window.Seconds()
}

// Workload is Utilization as a truncated integer percentage.
func (n *Nurse) Workload(window time.Duration) int {
	return int(n.Utilization(window) * 100)
}

func (n *Nurse) reset(startTime Time) {
	n.AvailableAt = startTime
	n.PatientsSampled = 0
	n.TotalSamplingTime = 0
}

func (n Nurse) String() string {
	return fmt.Sprintf("Nurse: (Name: %s, AvailableAt: %s, Sampled: %d)", n.Name, n.AvailableAt, n.PatientsSampled)
}

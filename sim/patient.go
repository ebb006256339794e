// Defines the Patient struct that models a single visitor of the test lane.
// Tracks arrival, priority tier, symptoms and the outcome of sampling.

package sim

import (
	"fmt"
	"time"
)

// PatientState represents the lifecycle state of a patient.
//
//	arrived -> waiting -> in-service
//	arrived -> turned-away (arrival after closing time)
type PatientState string

const (
	StateArrived    PatientState = "arrived"
	StateWaiting    PatientState = "waiting"
	StateInService  PatientState = "in-service"
	StateTurnedAway PatientState = "turned-away"
)

// Symptom is one of the complaints a patient may report at registration.
type Symptom int

const (
	Cough Symptom = iota
	Fever
	Headache
	SoreThroat
	ShortnessOfBreath
	LossOfSmell

	// NumSymptoms is the size of Patient.Symptoms.
	NumSymptoms
)

var symptomNames = [NumSymptoms]string{
	Cough:             "cough",
	Fever:             "fever",
	Headache:          "headache",
	SoreThroat:        "sore-throat",
	ShortnessOfBreath: "shortness-of-breath",
	LossOfSmell:       "loss-of-smell",
}

func (s Symptom) String() string {
	if s < 0 || s >= NumSymptoms {
		return fmt.Sprintf("symptom(%d)", int(s))
	}
	return symptomNames[s]
}

// Symptoms returns all symptoms in declaration order.
func Symptoms() []Symptom {
	out := make([]Symptom, 0, NumSymptoms)
	for s := Symptom(0); s < NumSymptoms; s++ {
		out = append(out, s)
	}
	return out
}

// Patient is one visitor of the test lane, from arrival until sampling.
type Patient struct {
	ID        string // Unique identifier for reporting
	Seq       int    // Generation sequence number; breaks ties in arrival time
	ArrivedAt Time   // Time of arrival at the test lane
	Priority  bool   // Priority patients skip regular patients in the waiting queue

	Symptoms [NumSymptoms]bool
	ZipCode  string // e.g. "1011AB"

	// Set exactly once by the simulator.
	State          PatientState
	SampledBy      *Nurse
	SampledAt      Time
	SampleDuration time.Duration
}

// NewPatient creates a patient in the arrived state.
func NewPatient(id string, seq int, arrivedAt Time, priority bool) *Patient {
	return &Patient{
		ID:        id,
		Seq:       seq,
		ArrivedAt: arrivedAt,
		Priority:  priority,
		State:     StateArrived,
	}
}

// Wait is the time between arrival and the start of sampling.
// Zero for patients that were never sampled.
func (p *Patient) Wait() time.Duration {
	if p.SampledBy == nil {
		return 0
	}
	return p.SampledAt.Sub(p.ArrivedAt)
}

// HasSymptom reports whether the patient registered with s.
func (p *Patient) HasSymptom(s Symptom) bool {
	if s < 0 || s >= NumSymptoms {
		return false
	}
	return p.Symptoms[s]
}

// ZipArea is the numeric part of the zip code, i.e. without the two trailing letters.
func (p *Patient) ZipArea() string {
	if len(p.ZipCode) <= 2 {
		return p.ZipCode
	}
	return p.ZipCode[:len(p.ZipCode)-2]
}

// reset clears the outcome of a previous run.
func (p *Patient) reset() {
	p.State = StateArrived
	p.SampledBy = nil
	p.SampledAt = 0
	p.SampleDuration = 0
}

func (p Patient) String() string {
	tier := "regular"
	if p.Priority {
		tier = "priority"
	}
	return fmt.Sprintf("Patient: (ID: %s, %s, ArrivedAt: %s, Zip: %s, State: %s)", p.ID, tier, p.ArrivedAt, p.ZipCode, p.State)
}

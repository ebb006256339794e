// Package trace provides dispatch-decision recording for test lane analysis.
// This package has no dependencies on sim/: it stores pure data types.
// Clock values are seconds since midnight, matching sim.Time.
package trace

// DispatchRecord captures a single decision to start sampling a patient.
type DispatchRecord struct {
	PatientID       string
	Priority        bool
	Nurse           string
	ArrivedAt       int64 // seconds since midnight
	NurseFreeAt     int64 // nurse availability before this dispatch
	StartedAt       int64 // max(NurseFreeAt, ArrivedAt)
	DurationSeconds int64
	QueueLenAfter   int // waiting patients left behind
}

// WaitSeconds is the time the patient spent in the waiting queue.
func (r DispatchRecord) WaitSeconds() int64 {
	return r.StartedAt - r.ArrivedAt
}

// IdleSeconds is the time the nurse was free before this patient started.
func (r DispatchRecord) IdleSeconds() int64 {
	return r.StartedAt - r.NurseFreeAt
}

// TurnAwayRecord captures a patient who arrived after closing time.
type TurnAwayRecord struct {
	PatientID string
	ArrivedAt int64
}

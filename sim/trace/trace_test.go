package trace

import (
	"testing"
)

func TestSimulationTrace_RecordDispatch_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for dispatches
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDispatches})

	// WHEN a dispatch record is recorded
	st.RecordDispatch(DispatchRecord{
		PatientID:       "patient_1",
		Nurse:           "Nurse-2",
		ArrivedAt:       28800,
		NurseFreeAt:     28830,
		StartedAt:       28830,
		DurationSeconds: 90,
	})

	// THEN the trace contains one dispatch record with correct data
	if len(st.Dispatches) != 1 {
		t.Fatalf("expected 1 dispatch, got %d", len(st.Dispatches))
	}
	if st.Dispatches[0].Nurse != "Nurse-2" {
		t.Errorf("expected Nurse-2, got %s", st.Dispatches[0].Nurse)
	}
	if got := st.Dispatches[0].WaitSeconds(); got != 30 {
		t.Errorf("expected wait 30s, got %d", got)
	}
	if got := st.Dispatches[0].IdleSeconds(); got != 0 {
		t.Errorf("expected idle 0s, got %d", got)
	}
}

func TestSimulationTrace_RecordTurnAway_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for dispatches
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDispatches})

	// WHEN a turn-away record is recorded
	st.RecordTurnAway(TurnAwayRecord{PatientID: "patient_9", ArrivedAt: 57660})

	// THEN the trace contains it and no dispatches
	if len(st.TurnAways) != 1 || st.TurnAways[0].PatientID != "patient_9" {
		t.Errorf("unexpected turn-aways: %+v", st.TurnAways)
	}
	if len(st.Dispatches) != 0 {
		t.Errorf("expected no dispatches, got %d", len(st.Dispatches))
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"", true},
		{"none", true},
		{"dispatches", true},
		{"decisions", false},
		{"DISPATCHES", false},
	}
	for _, tc := range tests {
		if got := IsValidTraceLevel(tc.level); got != tc.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tc.level, got, tc.valid)
		}
	}
}

func TestTraceConfig_Enabled(t *testing.T) {
	if (TraceConfig{}).Enabled() {
		t.Error("zero config must not be enabled")
	}
	if (TraceConfig{Level: TraceLevelNone}).Enabled() {
		t.Error("none level must be disabled")
	}
	if !(TraceConfig{Level: TraceLevelDispatches}).Enabled() {
		t.Error("dispatches must be enabled")
	}
}

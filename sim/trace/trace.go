package trace

// TraceLevel controls the verbosity of dispatch tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDispatches captures every patient-to-nurse dispatch decision.
	TraceLevelDispatches TraceLevel = "dispatches"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:       true,
	TraceLevelDispatches: true,
	"":                   true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether records should be collected at all.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelDispatches
}

// SimulationTrace collects decision records during one simulated day.
type SimulationTrace struct {
	Config     TraceConfig
	Dispatches []DispatchRecord
	TurnAways  []TurnAwayRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:     config,
		Dispatches: make([]DispatchRecord, 0),
		TurnAways:  make([]TurnAwayRecord, 0),
	}
}

// RecordDispatch appends a dispatch decision record.
func (st *SimulationTrace) RecordDispatch(record DispatchRecord) {
	st.Dispatches = append(st.Dispatches, record)
}

// RecordTurnAway appends a record for a patient who arrived after closing.
func (st *SimulationTrace) RecordTurnAway(record TurnAwayRecord) {
	st.TurnAways = append(st.TurnAways, record)
}

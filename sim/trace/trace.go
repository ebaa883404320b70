package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelPacing captures every daily pacing decision.
	TraceLevelPacing TraceLevel = "pacing"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelPacing: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
	// Campaigns limits pacing records to these campaign ids; empty traces all.
	Campaigns []string
}

// Traces reports whether decisions of campaignID are recorded.
func (c TraceConfig) Traces(campaignID string) bool {
	if c.Level != TraceLevelPacing {
		return false
	}
	if len(c.Campaigns) == 0 {
		return true
	}
	for _, id := range c.Campaigns {
		if id == campaignID {
			return true
		}
	}
	return false
}

// SimulationTrace collects decision records during a run.
type SimulationTrace struct {
	Config TraceConfig
	Pacing []PacingRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Pacing: make([]PacingRecord, 0),
	}
}

// RecordPacing appends a pacing decision record.
func (st *SimulationTrace) RecordPacing(record PacingRecord) {
	st.Pacing = append(st.Pacing, record)
}

package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelResources captures every request, grant and release at every pool.
	TraceLevelResources TraceLevel = "resources"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelResources: true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether records should be collected.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelResources
}

// SimulationTrace collects resource records during a department run.
type SimulationTrace struct {
	Config    TraceConfig
	Resources []ResourceRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:    config,
		Resources: make([]ResourceRecord, 0),
	}
}

// RecordResource appends a resource record.
func (st *SimulationTrace) RecordResource(record ResourceRecord) {
	st.Resources = append(st.Resources, record)
}

// ForProcess returns the records of one process, in order.
func (st *SimulationTrace) ForProcess(process string) []ResourceRecord {
	var out []ResourceRecord
	for _, r := range st.Resources {
		if r.Process == process {
			out = append(out, r)
		}
	}
	return out
}

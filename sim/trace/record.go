// Package trace provides resource decision-trace recording for department runs.
// It has no dependencies on sim/ or sim/ed/ and stores plain data types.
package trace

// Kind tags a resource record.
type Kind string

const (
	KindRequest Kind = "request"
	KindGrant   Kind = "grant"
	KindRelease Kind = "release"
)

// ResourceRecord captures a single request, grant or release at a pool.
// Held and Queued are the pool counters after the change.
type ResourceRecord struct {
	Pool     string
	Process  string
	Clock    float64
	Kind     Kind
	Held     int
	Capacity int
	Queued   int
}

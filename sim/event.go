package sim

// Event defines the interface for all simulation events.
// The fire time belongs to the queue entry, not the event, so the same
// event value may be scheduled more than once.
type Event interface {
	Execute(*Simulator)
}

// EventFunc adapts an ordinary function to the Event interface.
type EventFunc func(*Simulator)

// Execute calls f(sim).
func (f EventFunc) Execute(sim *Simulator) {
	f(sim)
}

// resumeEvent hands control back to a suspended process.
type resumeEvent struct {
	process *Process
}

func (e *resumeEvent) Execute(sim *Simulator) {
	e.process.step()
}

// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// scheduledEvent is a queue entry: an event plus its fire time and the
// insertion sequence used as the tie-breaker.
type scheduledEvent struct {
	time  float64
	seq   uint64
	event Event
}

// Timestamp returns the fire time of the entry.
func (e *scheduledEvent) Timestamp() float64 {
	return e.time
}

// EventQueue implements heap.Interface and orders events by fire time,
// then by insertion order.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []*scheduledEvent

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	if eq[i].time != eq[j].time {
		return eq[i].time < eq[j].time
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(*scheduledEvent))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*eq = old[0 : n-1]
	return item
}

// Simulator is the core object that holds simulation time, the event
// queue and the processes it drives.
type Simulator struct {
	clock float64
	// queue has all pending events; see EventQueue.Less for ordering.
	queue   EventQueue
	nextSeq uint64
	// err is the first fatal error raised while executing an event.
	err       error
	processes []*Process
	executed  int
	observer  func(ResourceEvent)
}

// NewSimulator returns a simulator with its clock at zero and an empty queue.
func NewSimulator() *Simulator {
	return &Simulator{
		queue: make(EventQueue, 0),
	}
}

// Now returns the current logical time in minutes.
func (sim *Simulator) Now() float64 {
	return sim.clock
}

// Pending returns the number of events waiting in the queue.
func (sim *Simulator) Pending() int {
	return len(sim.queue)
}

// Executed returns the number of events fired so far.
func (sim *Simulator) Executed() int {
	return sim.executed
}

// Schedule inserts ev to fire at Now()+delay. Events sharing a fire time
// execute in the order they were scheduled.
func (sim *Simulator) Schedule(delay float64, ev Event) error {
	if delay < 0 || math.IsNaN(delay) {
		return fmt.Errorf("schedule at %.3f with delay %v: %w", sim.clock, delay, ErrInvalidDelay)
	}
	if ev == nil {
		panic("Schedule: ev must not be nil")
	}
	sim.nextSeq++
	heap.Push(&sim.queue, &scheduledEvent{
		time:  sim.clock + delay,
		seq:   sim.nextSeq,
		event: ev,
	})
	return nil
}

// RunUntil fires events in order until the queue is empty or the next
// event lies beyond horizon. Events exactly at horizon do fire.
// It returns the first fatal error raised by a process, if any.
func (sim *Simulator) RunUntil(horizon float64) error {
	for len(sim.queue) > 0 && sim.err == nil {
		next := sim.queue[0]
		if next.time > horizon {
			// nothing more fires before the horizon; park the clock there
			sim.clock = max(sim.clock, horizon)
			break
		}
		heap.Pop(&sim.queue)
		sim.clock = next.time
		sim.executed++
		logrus.Debugf("[t=%09.3f] Executing %T", sim.clock, next.event)
		next.event.Execute(sim)
	}
	if sim.err != nil {
		return sim.err
	}
	logrus.Infof("[t=%09.3f] Simulation stopped: %d events fired, %d pending, %d processes suspended",
		sim.clock, sim.executed, len(sim.queue), sim.suspended())
	return nil
}

// fail records the first fatal error; RunUntil stops before the next event.
func (sim *Simulator) fail(err error) {
	if sim.err == nil {
		sim.err = err
	}
}

// SetResourceObserver installs fn to be called on every request, grant
// and release of any pool owned by this simulator. A nil fn disables it.
func (sim *Simulator) SetResourceObserver(fn func(ResourceEvent)) {
	sim.observer = fn
}

func (sim *Simulator) observe(ev ResourceEvent) {
	if sim.observer != nil {
		sim.observer(ev)
	}
}

// Processes returns every process started on this simulator, in start order.
func (sim *Simulator) Processes() []*Process {
	return sim.processes
}

func (sim *Simulator) suspended() int {
	n := 0
	for _, p := range sim.processes {
		if !p.finished {
			n++
		}
	}
	return n
}

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// ResourceEventKind tags what happened at a pool.
type ResourceEventKind string

const (
	// ResourceRequested is reported when a process asks for a unit.
	ResourceRequested ResourceEventKind = "request"
	// ResourceGranted is reported when a unit is handed to a process.
	ResourceGranted ResourceEventKind = "grant"
	// ResourceReleased is reported when a process gives a unit back.
	ResourceReleased ResourceEventKind = "release"
)

// ResourceEvent describes one request, grant or release at a pool.
// Held and Queued are the pool's counters after the change.
type ResourceEvent struct {
	Kind     ResourceEventKind
	Pool     string
	Process  string
	Clock    float64
	Held     int
	Capacity int
	Queued   int
}

// ResourcePool is a counting semaphore of fixed capacity with a FIFO wait
// queue. Invariant: 0 <= Held() <= Capacity().
type ResourcePool struct {
	sim      *Simulator
	name     string
	capacity int
	users    []*Process
	waitQ    WaitQueue
	peak     int
	grants   int
}

// NewResourcePool creates a pool with the given capacity on sim.
func NewResourcePool(sim *Simulator, name string, capacity int) (*ResourcePool, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("resource pool %q with capacity %d: %w", name, capacity, ErrInvalidCapacity)
	}
	return &ResourcePool{
		sim:      sim,
		name:     name,
		capacity: capacity,
		users:    make([]*Process, 0, capacity),
	}, nil
}

// Name returns the pool label.
func (rp *ResourcePool) Name() string { return rp.name }

// Capacity returns the number of units the pool holds in total.
func (rp *ResourcePool) Capacity() int { return rp.capacity }

// Held returns the number of units currently granted.
func (rp *ResourcePool) Held() int { return len(rp.users) }

// QueueLen returns the number of processes waiting for a unit.
func (rp *ResourcePool) QueueLen() int { return rp.waitQ.Len() }

// PeakHeld returns the largest Held value observed so far.
func (rp *ResourcePool) PeakHeld() int { return rp.peak }

// Grants returns the number of units handed out so far.
func (rp *ResourcePool) Grants() int { return rp.grants }

// Users returns the processes currently holding a unit, in grant order.
// The slice is internal storage and MUST NOT be modified.
func (rp *ResourcePool) Users() []*Process { return rp.users }

// Acquire requests one unit for p. If a unit is free it is granted at
// once and p resumes at the current instant; otherwise p joins the back
// of the wait queue. Processes normally reach this through the Acquire
// await rather than calling it directly.
func (rp *ResourcePool) Acquire(p *Process) {
	rp.report(ResourceRequested, p)
	if len(rp.users) < rp.capacity {
		rp.grant(p)
		return
	}
	p.waiting = rp
	rp.waitQ.Enqueue(p)
	logrus.Debugf("[t=%09.3f] %s queued for %s (queue=%d)", rp.sim.clock, p.name, rp.name, rp.waitQ.Len())
}

// Release returns p's unit to the pool. If processes are waiting, the
// head of the queue is granted before Release returns.
// Releasing a unit p does not hold panics.
func (rp *ResourcePool) Release(p *Process) {
	idx := -1
	for i, u := range rp.users {
		if u == p {
			idx = i
			break
		}
	}
	if idx < 0 || !p.removeHeld(rp) {
		panic(fmt.Sprintf("Release: process %s does not hold %s", p.name, rp.name))
	}
	rp.users = append(rp.users[:idx], rp.users[idx+1:]...)
	rp.report(ResourceReleased, p)

	if next := rp.waitQ.Dequeue(); next != nil {
		next.waiting = nil
		rp.grant(next)
	}
}

func (rp *ResourcePool) grant(p *Process) {
	rp.users = append(rp.users, p)
	rp.grants++
	rp.peak = max(rp.peak, len(rp.users))
	p.addHeld(rp)
	rp.report(ResourceGranted, p)
	rp.sim.resume(p)
}

func (rp *ResourcePool) report(kind ResourceEventKind, p *Process) {
	rp.sim.observe(ResourceEvent{
		Kind:     kind,
		Pool:     rp.name,
		Process:  p.name,
		Clock:    rp.sim.clock,
		Held:     len(rp.users),
		Capacity: rp.capacity,
		Queued:   rp.waitQ.Len(),
	})
}

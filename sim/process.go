package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Routine is a suspendable unit of work. Resume runs from one suspension
// point to the next and returns what the process waits on next.
// Resume is called once when the process starts and once each time the
// awaited condition is met.
type Routine interface {
	Resume(p *Process) Await
}

// RoutineFunc adapts an ordinary function to the Routine interface.
type RoutineFunc func(p *Process) Await

// Resume calls f(p).
func (f RoutineFunc) Resume(p *Process) Await {
	return f(p)
}

type awaitKind int

const (
	awaitDone awaitKind = iota
	awaitTimeout
	awaitAcquire
)

// Await describes the condition a process suspends on.
// Build one with Timeout, Acquire or Done.
type Await struct {
	kind  awaitKind
	delay float64
	pool  *ResourcePool
}

// Timeout suspends the process for delay minutes of logical time.
func Timeout(delay float64) Await {
	return Await{kind: awaitTimeout, delay: delay}
}

// Acquire suspends the process until it holds one unit of pool.
func Acquire(pool *ResourcePool) Await {
	if pool == nil {
		panic("Acquire: pool must not be nil")
	}
	return Await{kind: awaitAcquire, pool: pool}
}

// Done ends the process. It must not hold any pool at this point.
func Done() Await {
	return Await{kind: awaitDone}
}

func (a Await) String() string {
	switch a.kind {
	case awaitTimeout:
		return fmt.Sprintf("timeout(%v)", a.delay)
	case awaitAcquire:
		return fmt.Sprintf("acquire(%s)", a.pool.name)
	default:
		return "done"
	}
}

// Process is one cooperative thread of control driven by the simulator.
// It is owned by the simulator from Start until its routine returns Done.
type Process struct {
	id       int
	name     string
	sim      *Simulator
	routine  Routine
	held     []*ResourcePool
	waiting  *ResourcePool
	finished bool
}

// Start registers routine as a new process and schedules its first
// Resume at the current instant.
func (sim *Simulator) Start(name string, routine Routine) *Process {
	if routine == nil {
		panic("Start: routine must not be nil")
	}
	p := &Process{
		id:      len(sim.processes),
		name:    name,
		sim:     sim,
		routine: routine,
	}
	sim.processes = append(sim.processes, p)
	sim.resume(p)
	return p
}

// resume schedules p to continue at the current instant.
func (sim *Simulator) resume(p *Process) {
	if err := sim.Schedule(0, &resumeEvent{process: p}); err != nil {
		// a zero delay is always valid
		panic(err)
	}
}

// ID returns the start-order index of the process.
func (p *Process) ID() int { return p.id }

// Name returns the label given at Start.
func (p *Process) Name() string { return p.name }

// Now returns the simulator's current logical time.
func (p *Process) Now() float64 { return p.sim.clock }

// Simulator returns the simulator driving this process.
func (p *Process) Simulator() *Simulator { return p.sim }

// Finished reports whether the routine has returned Done.
func (p *Process) Finished() bool { return p.finished }

// Holding returns the number of pool units the process currently holds.
func (p *Process) Holding() int { return len(p.held) }

// Holds reports whether the process holds at least one unit of pool.
func (p *Process) Holds(pool *ResourcePool) bool {
	for _, h := range p.held {
		if h == pool {
			return true
		}
	}
	return false
}

// Waiting returns the pool the process is queued on, or nil.
func (p *Process) Waiting() *ResourcePool { return p.waiting }

func (p *Process) String() string {
	return p.name
}

// step runs the routine up to its next suspension point and arranges the
// matching wake-up.
func (p *Process) step() {
	if p.finished {
		panic(fmt.Sprintf("process %s resumed after Done", p.name))
	}
	next := p.routine.Resume(p)
	switch next.kind {
	case awaitTimeout:
		if err := p.sim.Schedule(next.delay, &resumeEvent{process: p}); err != nil {
			p.sim.fail(fmt.Errorf("process %s: %w", p.name, err))
		}
	case awaitAcquire:
		next.pool.Acquire(p)
	case awaitDone:
		if len(p.held) > 0 {
			panic(fmt.Sprintf("process %s finished while holding %d resource unit(s), first %s",
				p.name, len(p.held), p.held[0].name))
		}
		p.finished = true
		logrus.Debugf("[t=%09.3f] process %s finished", p.sim.clock, p.name)
	}
}

func (p *Process) addHeld(pool *ResourcePool) {
	p.held = append(p.held, pool)
}

func (p *Process) removeHeld(pool *ResourcePool) bool {
	for i, h := range p.held {
		if h == pool {
			p.held = append(p.held[:i], p.held[i+1:]...)
			return true
		}
	}
	return false
}

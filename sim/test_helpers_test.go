package sim

import "testing"

// holdRoutine acquires pool, holds it for hold minutes, then releases it.
// It records the instants at which it started and stopped holding.
type holdRoutine struct {
	pool  *ResourcePool
	hold  float64
	step  int
	start float64
	end   float64
}

func (h *holdRoutine) Resume(p *Process) Await {
	switch h.step {
	case 0:
		h.step = 1
		return Acquire(h.pool)
	case 1:
		h.step = 2
		h.start = p.Now()
		return Timeout(h.hold)
	default:
		h.end = p.Now()
		h.pool.Release(p)
		return Done()
	}
}

// mustPool creates a pool or fails the test.
func mustPool(t *testing.T, sim *Simulator, name string, capacity int) *ResourcePool {
	t.Helper()
	pool, err := NewResourcePool(sim, name, capacity)
	if err != nil {
		t.Fatalf("NewResourcePool(%q, %d): %v", name, capacity, err)
	}
	return pool
}

// recordAt returns an event that appends label to log when it fires.
func recordAt(log *[]string, label string) Event {
	return EventFunc(func(*Simulator) {
		*log = append(*log, label)
	})
}

package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResourcePool_NonPositiveCapacity_ReturnsErrInvalidCapacity(t *testing.T) {
	s := NewSimulator()
	for _, capacity := range []int{0, -1} {
		pool, err := NewResourcePool(s, "lab", capacity)
		assert.Nil(t, pool)
		assert.True(t, errors.Is(err, ErrInvalidCapacity), "capacity %d: got %v", capacity, err)
	}
}

func TestResourcePool_CapacityOne_SerializesHolders(t *testing.T) {
	// GIVEN a single-unit pool and three processes requesting it at t=0
	s := NewSimulator()
	pool := mustPool(t, s, "doctor", 1)
	holders := []*holdRoutine{
		{pool: pool, hold: 5},
		{pool: pool, hold: 5},
		{pool: pool, hold: 5},
	}
	for i, h := range holders {
		s.Start([]string{"A", "B", "C"}[i], h)
	}

	// WHEN run to completion
	require.NoError(t, s.RunUntil(100))

	// THEN grants follow request order and holds never overlap
	assert.Equal(t, []float64{0, 5, 10}, []float64{holders[0].start, holders[1].start, holders[2].start})
	for i := 1; i < len(holders); i++ {
		assert.GreaterOrEqual(t, holders[i].start, holders[i-1].end)
	}
	assert.Equal(t, 0, pool.Held())
	assert.Equal(t, 1, pool.PeakHeld())
	assert.Equal(t, 3, pool.Grants())
}

func TestResourcePool_HeldNeverExceedsCapacity(t *testing.T) {
	// GIVEN a two-unit pool, an observer checking counters, and staggered holders
	s := NewSimulator()
	pool := mustPool(t, s, "exam_room", 2)
	var events []ResourceEvent
	s.SetResourceObserver(func(ev ResourceEvent) {
		events = append(events, ev)
		if ev.Held < 0 || ev.Held > ev.Capacity {
			t.Errorf("held=%d outside [0,%d] at t=%v", ev.Held, ev.Capacity, ev.Clock)
		}
	})
	for i, hold := range []float64{3, 8, 1, 4, 6} {
		s.Start(string(rune('a'+i)), &holdRoutine{pool: pool, hold: hold})
	}

	// WHEN run
	require.NoError(t, s.RunUntil(100))

	// THEN every request was granted and released exactly once
	counts := map[ResourceEventKind]int{}
	for _, ev := range events {
		counts[ev.Kind]++
	}
	assert.Equal(t, 5, counts[ResourceRequested])
	assert.Equal(t, 5, counts[ResourceGranted])
	assert.Equal(t, 5, counts[ResourceReleased])
	assert.Equal(t, 2, pool.PeakHeld())
}

func TestResourcePool_Release_GrantsHeadBeforeReturning(t *testing.T) {
	// GIVEN a single-unit pool held by "first" with "second" queued
	s := NewSimulator()
	pool := mustPool(t, s, "nurse", 1)
	var heldAfterRelease, queuedAfterRelease int
	var secondHolds bool
	var second *Process
	step := 0
	s.Start("first", RoutineFunc(func(p *Process) Await {
		switch step {
		case 0:
			step++
			return Acquire(pool)
		case 1:
			step++
			return Timeout(2)
		default:
			pool.Release(p)
			heldAfterRelease = pool.Held()
			queuedAfterRelease = pool.QueueLen()
			secondHolds = second.Holds(pool)
			return Done()
		}
	}))
	second = s.Start("second", &holdRoutine{pool: pool, hold: 1})

	// WHEN run
	require.NoError(t, s.RunUntil(10))

	// THEN the waiter held the unit as soon as Release returned
	assert.Equal(t, 1, heldAfterRelease)
	assert.Equal(t, 0, queuedAfterRelease)
	assert.True(t, secondHolds)
}

func TestResourcePool_ReleaseWithoutHolding_Panics(t *testing.T) {
	s := NewSimulator()
	pool := mustPool(t, s, "lab", 1)
	p := newTestProcess("stranger")

	assert.Panics(t, func() { pool.Release(p) })
}

func TestResourcePool_QueuedProcess_ReportsWaiting(t *testing.T) {
	// GIVEN a single-unit pool held for a long time and a second requester
	s := NewSimulator()
	pool := mustPool(t, s, "lab", 1)
	s.Start("holder", &holdRoutine{pool: pool, hold: 50})
	waiter := s.Start("waiter", &holdRoutine{pool: pool, hold: 1})

	// WHEN run a short while
	require.NoError(t, s.RunUntil(5))

	// THEN the second process is parked on the pool's queue
	assert.Equal(t, pool, waiter.Waiting())
	assert.Equal(t, 1, pool.QueueLen())
	assert.Equal(t, "holder", pool.Users()[0].Name())
}

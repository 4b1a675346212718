package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_NegativeDelay_ReturnsErrInvalidDelay(t *testing.T) {
	// GIVEN a fresh simulator
	s := NewSimulator()

	// WHEN an event is scheduled with a negative or NaN delay
	errNeg := s.Schedule(-1, EventFunc(func(*Simulator) {}))
	errNaN := s.Schedule(math.NaN(), EventFunc(func(*Simulator) {}))

	// THEN both fail with ErrInvalidDelay and nothing is queued
	assert.True(t, errors.Is(errNeg, ErrInvalidDelay), "got %v", errNeg)
	assert.True(t, errors.Is(errNaN, ErrInvalidDelay), "got %v", errNaN)
	assert.Equal(t, 0, s.Pending())
}

func TestRunUntil_OrdersByFireTime(t *testing.T) {
	// GIVEN events scheduled out of time order
	s := NewSimulator()
	var log []string
	require.NoError(t, s.Schedule(10, recordAt(&log, "t10")))
	require.NoError(t, s.Schedule(2.5, recordAt(&log, "t2.5")))
	require.NoError(t, s.Schedule(7, recordAt(&log, "t7")))

	// WHEN the simulation runs past all of them
	require.NoError(t, s.RunUntil(100))

	// THEN they fired in fire-time order
	assert.Equal(t, []string{"t2.5", "t7", "t10"}, log)
	assert.Equal(t, 10.0, s.Now())
}

func TestRunUntil_EqualFireTimes_FIFOByInsertion(t *testing.T) {
	// GIVEN many events at the same instant
	s := NewSimulator()
	var log []string
	labels := []string{"a", "b", "c", "d", "e", "f"}
	for _, l := range labels {
		require.NoError(t, s.Schedule(3, recordAt(&log, l)))
	}

	// WHEN run
	require.NoError(t, s.RunUntil(3))

	// THEN they fired in insertion order
	assert.Equal(t, labels, log)
}

func TestRunUntil_ZeroDelayFromEvent_RunsAfterQueuedPeers(t *testing.T) {
	// GIVEN two events at t=1, the first of which schedules a zero-delay follow-up
	s := NewSimulator()
	var log []string
	require.NoError(t, s.Schedule(1, EventFunc(func(sim *Simulator) {
		log = append(log, "first")
		require.NoError(t, sim.Schedule(0, recordAt(&log, "follow-up")))
	})))
	require.NoError(t, s.Schedule(1, recordAt(&log, "second")))

	// WHEN run
	require.NoError(t, s.RunUntil(10))

	// THEN the follow-up waits behind the already-queued peer
	assert.Equal(t, []string{"first", "second", "follow-up"}, log)
}

func TestRunUntil_HorizonInclusive(t *testing.T) {
	// GIVEN events before, at, and after the horizon
	s := NewSimulator()
	var log []string
	require.NoError(t, s.Schedule(5, recordAt(&log, "before")))
	require.NoError(t, s.Schedule(10, recordAt(&log, "at")))
	require.NoError(t, s.Schedule(10.0001, recordAt(&log, "after")))

	// WHEN run until 10
	require.NoError(t, s.RunUntil(10))

	// THEN the event exactly at the horizon fires and the later one stays queued
	assert.Equal(t, []string{"before", "at"}, log)
	assert.Equal(t, 1, s.Pending())
	assert.Equal(t, 10.0, s.Now())
}

func TestRunUntil_StopsBeforeHorizon_ParksClockAtHorizon(t *testing.T) {
	s := NewSimulator()
	var log []string
	require.NoError(t, s.Schedule(50, recordAt(&log, "late")))

	require.NoError(t, s.RunUntil(20))

	assert.Empty(t, log)
	assert.Equal(t, 20.0, s.Now())

	// Continuing the run picks up where it stopped.
	require.NoError(t, s.RunUntil(60))
	assert.Equal(t, []string{"late"}, log)
	assert.Equal(t, 50.0, s.Now())
}

func TestRunUntil_EmptyQueue_NoOp(t *testing.T) {
	s := NewSimulator()

	require.NoError(t, s.RunUntil(360))

	assert.Equal(t, 0.0, s.Now())
	assert.Equal(t, 0, s.Executed())
}

func TestRunUntil_ClockNeverDecreases(t *testing.T) {
	// GIVEN a cascade of events that schedule further events with varied delays
	s := NewSimulator()
	delays := []float64{3, 0, 1.5, 0, 7, 2}
	last := -1.0
	var chain func(i int) Event
	chain = func(i int) Event {
		return EventFunc(func(sim *Simulator) {
			if sim.Now() < last {
				t.Errorf("clock went backwards: %v after %v", sim.Now(), last)
			}
			last = sim.Now()
			if i < len(delays) {
				require.NoError(t, sim.Schedule(delays[i], chain(i+1)))
			}
		})
	}
	require.NoError(t, s.Schedule(0, chain(0)))
	require.NoError(t, s.Schedule(4, chain(len(delays))))

	// WHEN run to completion
	require.NoError(t, s.RunUntil(math.Inf(1)))

	// THEN every event fired and the clock ended at the sum of delays
	assert.Equal(t, len(delays)+2, s.Executed())
	assert.Equal(t, 13.5, s.Now())
}

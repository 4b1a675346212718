package ed

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/ed-sim/ed-sim/sim"
	"github.com/ed-sim/ed-sim/sim/workload"
)

// ArrivalGenerator is the process that admits patients into the
// department: an initial batch at opening, then one patient per sampled
// inter-arrival gap until the horizon.
type ArrivalGenerator struct {
	pw      *pathway
	sampler workload.ArrivalSampler
	rng     *rand.Rand
	initial int
	stream  bool
	started bool
	nextID  int
	// Patients holds every spawned patient in arrival order.
	Patients []*Patient
}

func newArrivalGenerator(cfg ArrivalConfig, pw *pathway) *ArrivalGenerator {
	return &ArrivalGenerator{
		pw:      pw,
		sampler: workload.NewArrivalSampler(cfg.Spec, cfg.MeanInterArrival),
		rng:     pw.rng.ForSubsystem(sim.SubsystemArrivals),
		initial: cfg.InitialPatients,
		stream:  !cfg.DisableStream,
	}
}

// Spawned returns the number of patients created so far.
func (g *ArrivalGenerator) Spawned() int {
	return g.nextID
}

// Resume implements sim.Routine.
func (g *ArrivalGenerator) Resume(p *sim.Process) sim.Await {
	s := p.Simulator()
	if !g.started {
		g.started = true
		for i := 0; i < g.initial; i++ {
			g.spawn(s)
		}
	} else {
		g.spawn(s)
	}
	if !g.stream {
		return sim.Done()
	}
	gap := g.sampler.SampleGap(g.rng)
	logrus.Debugf("[t=%09.3f] next arrival in %.3f min", s.Now(), gap)
	return sim.Timeout(gap)
}

func (g *ArrivalGenerator) spawn(s *sim.Simulator) *Patient {
	pt := newPatient(g.nextID, g.pw)
	g.nextID++
	g.Patients = append(g.Patients, pt)
	s.Start(pt.Name, pt)
	return pt
}

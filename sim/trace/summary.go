package trace

import "sort"

// PoolSummary aggregates the trace of one pool.
type PoolSummary struct {
	Pool     string
	Requests int
	Grants   int
	Releases int
	PeakHeld int
	// Waits are measured from request to grant; requests still queued at
	// the end of the trace are not counted.
	MeanWait float64
	MaxWait  float64
}

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalRecords int
	Pools        []PoolSummary // sorted by pool name
}

type waitKey struct {
	pool    string
	process string
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}
	summary.TotalRecords = len(st.Resources)

	pools := make(map[string]*PoolSummary)
	waitSums := make(map[string]float64)
	requestedAt := make(map[waitKey]float64)
	for _, r := range st.Resources {
		ps, ok := pools[r.Pool]
		if !ok {
			ps = &PoolSummary{Pool: r.Pool}
			pools[r.Pool] = ps
		}
		key := waitKey{pool: r.Pool, process: r.Process}
		switch r.Kind {
		case KindRequest:
			ps.Requests++
			requestedAt[key] = r.Clock
		case KindGrant:
			ps.Grants++
			ps.PeakHeld = max(ps.PeakHeld, r.Held)
			if at, ok := requestedAt[key]; ok {
				wait := r.Clock - at
				waitSums[r.Pool] += wait
				ps.MaxWait = max(ps.MaxWait, wait)
				delete(requestedAt, key)
			}
		case KindRelease:
			ps.Releases++
		}
	}

	for name, ps := range pools {
		if ps.Grants > 0 {
			ps.MeanWait = waitSums[name] / float64(ps.Grants)
		}
		summary.Pools = append(summary.Pools, *ps)
	}
	sort.Slice(summary.Pools, func(i, j int) bool {
		return summary.Pools[i].Pool < summary.Pools[j].Pool
	})
	return summary
}

// Pool returns the summary for the named pool and whether it appeared.
func (s *TraceSummary) Pool(name string) (PoolSummary, bool) {
	for _, p := range s.Pools {
		if p.Pool == name {
			return p, true
		}
	}
	return PoolSummary{Pool: name}, false
}

package engine

import "time"

// SearchStats accumulates counters for one top-level search.
type SearchStats struct {
	Nodes          int64
	QNodes         int64
	TTProbes       int64
	TTHits         int64
	TTStores       int64
	Cutoffs        int64
	CompletedDepth int
	DepthDurations []time.Duration
	Elapsed        time.Duration
}

func (s *SearchStats) ttHitRate() float64 {
	if s.TTProbes == 0 {
		return 0
	}
	return float64(s.TTHits) / float64(s.TTProbes)
}

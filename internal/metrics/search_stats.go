// Package metrics keeps lock-free counters for the search path.
package metrics

import (
	"sync/atomic"
	"time"
)

// SearchStats counts searches and their cost. The zero value is ready to use.
type SearchStats struct {
	searches   atomic.Int64
	failures   atomic.Int64
	matches    atomic.Int64
	totalNanos atomic.Int64
	maxNanos   atomic.Int64
}

// Snapshot is a point-in-time copy of SearchStats.
type Snapshot struct {
	Searches    int64   `json:"searches"`
	Failures    int64   `json:"failures"`
	Matches     int64   `json:"matches"`
	AvgSearchMs float64 `json:"avg_search_ms"`
	MaxSearchMs float64 `json:"max_search_ms"`
}

// Record adds one search that took elapsed and produced matches results.
// A non-nil err counts as a failure and its matches are ignored.
func (s *SearchStats) Record(elapsed time.Duration, matches int, err error) {
	s.searches.Add(1)
	if err != nil {
		s.failures.Add(1)
	} else {
		s.matches.Add(int64(matches))
	}

	n := elapsed.Nanoseconds()
	s.totalNanos.Add(n)
	for {
		cur := s.maxNanos.Load()
		if n <= cur || s.maxNanos.CompareAndSwap(cur, n) {
			break
		}
	}
}

// Snapshot returns the current counters.
func (s *SearchStats) Snapshot() Snapshot {
	snap := Snapshot{
		Searches:    s.searches.Load(),
		Failures:    s.failures.Load(),
		Matches:     s.matches.Load(),
		MaxSearchMs: float64(s.maxNanos.Load()) / float64(time.Millisecond),
	}
	if snap.Searches > 0 {
		snap.AvgSearchMs = float64(s.totalNanos.Load()) / float64(snap.Searches) / float64(time.Millisecond)
	}
	return snap
}

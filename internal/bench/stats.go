package bench

import (
	"math"

	"github.com/rewired-gh/dcabench/internal/models"
)

// MarginStats accumulates the per-scenario share margin (DCA shares minus
// all-in shares) with Welford's online algorithm.
type MarginStats struct {
	count int
	mean  float64
	m2    float64
}

// Add folds one margin into the accumulator.
func (s *MarginStats) Add(margin float64) {
	s.count++
	delta := margin - s.mean
	s.mean += delta / float64(s.count)
	delta2 := margin - s.mean
	s.m2 += delta * delta2
}

// Count returns the number of accumulated margins.
func (s *MarginStats) Count() int {
	return s.count
}

// Mean returns the mean margin. Positive means DCA ended ahead on average.
func (s *MarginStats) Mean() float64 {
	return s.mean
}

// Sigma returns the sample standard deviation, 0 with fewer than 2 samples.
func (s *MarginStats) Sigma() float64 {
	if s.count < 2 {
		return 0
	}
	return math.Sqrt(s.m2 / float64(s.count-1))
}

// SummarizeMargins folds every result's share margin into fresh stats.
func SummarizeMargins(results []models.ScenarioResult) MarginStats {
	var stats MarginStats
	for _, r := range results {
		stats.Add(r.DCAShares - r.AllInShares)
	}
	return stats
}

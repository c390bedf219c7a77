package bench

import (
	"math"
	"testing"

	"github.com/rewired-gh/dcabench/internal/models"
)

func TestMarginStats(t *testing.T) {
	var stats MarginStats
	for _, v := range []float64{2.0, 4.0, 6.0} {
		stats.Add(v)
	}

	if stats.Count() != 3 {
		t.Errorf("count: got %d, want 3", stats.Count())
	}
	if got := stats.Mean(); math.Abs(got-4.0) > 1e-12 {
		t.Errorf("mean: got %v, want 4", got)
	}
	// Sample variance of {2,4,6} is 4.
	if got := stats.Sigma(); math.Abs(got-2.0) > 1e-12 {
		t.Errorf("sigma: got %v, want 2", got)
	}
}

func TestMarginStatsFewSamples(t *testing.T) {
	var stats MarginStats
	if got := stats.Sigma(); got != 0 {
		t.Errorf("sigma of empty stats: got %v, want 0", got)
	}
	stats.Add(1.5)
	if got := stats.Sigma(); got != 0 {
		t.Errorf("sigma of one sample: got %v, want 0", got)
	}
	if got := stats.Mean(); got != 1.5 {
		t.Errorf("mean of one sample: got %v, want 1.5", got)
	}
}

func TestSummarizeMargins(t *testing.T) {
	results := []models.ScenarioResult{
		{AllInShares: 100, DCAShares: 103},
		{AllInShares: 110, DCAShares: 109},
	}
	stats := SummarizeMargins(results)
	if stats.Count() != 2 {
		t.Fatalf("count: got %d, want 2", stats.Count())
	}
	if got := stats.Mean(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("mean margin: got %v, want 1", got)
	}
}

package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Winner identifies which strategy ended a scenario with strictly more shares.
type Winner string

const (
	WinnerAllIn Winner = "all_in"
	WinnerDCA   Winner = "dca"
	WinnerTie   Winner = "tie"
)

// ClassifyShares compares terminal share counts. Both strategies are priced
// at the same final price, so share counts alone decide the winner.
func ClassifyShares(allInShares, dcaShares float64) Winner {
	switch {
	case allInShares > dcaShares:
		return WinnerAllIn
	case dcaShares > allInShares:
		return WinnerDCA
	default:
		return WinnerTie
	}
}

// ScenarioResult holds the outcome of evaluating one scenario.
type ScenarioResult struct {
	Scenario    Scenario
	AllInShares float64
	DCAShares   float64
	Winner      Winner
}

// Tally aggregates scenario outcomes over one run.
type Tally struct {
	AllIn int
	DCA   int
	Ties  int
	Total int
}

// Record counts one classified outcome.
func (t *Tally) Record(w Winner) {
	switch w {
	case WinnerAllIn:
		t.AllIn++
	case WinnerDCA:
		t.DCA++
	case WinnerTie:
		t.Ties++
	}
	t.Total++
}

// String renders the run summary line.
func (t Tally) String() string {
	return fmt.Sprintf("Total: %d, All-in: %d, DCA: %d, Tie: %d", t.Total, t.AllIn, t.DCA, t.Ties)
}

// RunRecord describes one completed benchmark run for the run archive.
type RunRecord struct {
	ID         string
	CreatedAt  time.Time
	Months     int
	TrendCount int
	CrashCount int
	Tally      Tally
	Duration   time.Duration
}

// NewRunRecord stamps a fresh run record with a unique ID.
func NewRunRecord(months, trendCount, crashCount int, tally Tally, duration time.Duration) RunRecord {
	return RunRecord{
		ID:         uuid.New().String(),
		CreatedAt:  time.Now(),
		Months:     months,
		TrendCount: trendCount,
		CrashCount: crashCount,
		Tally:      tally,
		Duration:   duration,
	}
}

// Package models defines the core domain entities: scenarios, evaluation
// results, and the win/loss tally.
package models

import (
	"errors"
	"fmt"
)

// PlateauMonth marks a scenario with no distinct crash month: every month
// holds the same return value.
const PlateauMonth = -1

// Scenario is one synthetic market model: an ordered sequence of monthly
// returns with exactly one crash month, a constant pre-crash trend filling
// the months before it, and a constant post-crash trend filling the months
// after. Plateau scenarios hold a single value for every month and carry
// CrashMonth = PlateauMonth.
type Scenario struct {
	Returns    []float64
	CrashMonth int
	Crash      float64
	PreTrend   float64
	PostTrend  float64
	Plateau    bool
}

// Validate checks scenario structural constraints.
func (s *Scenario) Validate() error {
	if len(s.Returns) == 0 {
		return errors.New("scenario must cover at least one month")
	}

	if s.Plateau {
		if s.CrashMonth != PlateauMonth {
			return fmt.Errorf("plateau scenario must have crash month %d, got %d", PlateauMonth, s.CrashMonth)
		}
		for i, r := range s.Returns {
			if r != s.Crash {
				return fmt.Errorf("plateau scenario must be constant, month %d holds %v instead of %v", i, r, s.Crash)
			}
		}
		return nil
	}

	if s.CrashMonth < 0 || s.CrashMonth >= len(s.Returns) {
		return fmt.Errorf("crash month %d out of range [0, %d)", s.CrashMonth, len(s.Returns))
	}
	if s.Returns[s.CrashMonth] != s.Crash {
		return fmt.Errorf("month %d holds %v instead of crash magnitude %v", s.CrashMonth, s.Returns[s.CrashMonth], s.Crash)
	}
	for i := 0; i < s.CrashMonth; i++ {
		if s.Returns[i] != s.PreTrend {
			return fmt.Errorf("month %d holds %v instead of pre-crash trend %v", i, s.Returns[i], s.PreTrend)
		}
	}
	for i := s.CrashMonth + 1; i < len(s.Returns); i++ {
		if s.Returns[i] != s.PostTrend {
			return fmt.Errorf("month %d holds %v instead of post-crash trend %v", i, s.Returns[i], s.PostTrend)
		}
	}
	return nil
}

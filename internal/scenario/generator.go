// Package scenario enumerates the synthetic crash models implied by a
// trend/crash configuration: every placement of every crash magnitude over
// the horizon, with constant trends on either side.
package scenario

import (
	"errors"
	"fmt"
	"sort"

	"github.com/rewired-gh/dcabench/internal/models"
)

// ErrAmbiguousOverlap is returned when more than one trend value numerically
// equals a crash magnitude. A single coincidence collapses into one plateau
// model; more than one makes the deduplication ambiguous and signals a
// malformed parameter set.
var ErrAmbiguousOverlap = errors.New("more than one trend value coincides with a crash magnitude")

// Config holds the generator inputs. Trends and Crashes are monthly
// fractional returns; each crash magnitude is applied exactly once at the
// crash month.
type Config struct {
	Months  int
	Trends  []float64
	Crashes []float64
}

// Validate checks generator input constraints.
func (c Config) Validate() error {
	if c.Months < 2 {
		return fmt.Errorf("horizon must be at least 2 months, got %d", c.Months)
	}
	if len(c.Trends) == 0 {
		return errors.New("at least one trend value is required")
	}
	if len(c.Crashes) == 0 {
		return errors.New("at least one crash magnitude is required")
	}
	if overlaps := Overlaps(c.Trends, c.Crashes); len(overlaps) > 1 {
		return fmt.Errorf("%w: %v", ErrAmbiguousOverlap, overlaps)
	}
	return nil
}

// Generate produces every scenario implied by the configuration, each exactly
// once. Trend-equals-crash coincidences are deferred during the main
// enumeration and emitted as a single plateau model per distinct value at the
// end; emitting them in place would duplicate the same constant sequence at
// every candidate crash month.
func Generate(cfg Config) ([]models.Scenario, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var scenarios []models.Scenario
	plateaus := make(map[float64]struct{})

	for month := 0; month < cfg.Months; month++ {
		for _, crash := range cfg.Crashes {
			switch month {
			case 0:
				// No pre-crash segment.
				for _, post := range cfg.Trends {
					if post == crash {
						plateaus[crash] = struct{}{}
						continue
					}
					scenarios = append(scenarios, build(cfg.Months, month, crash, 0, post))
				}
			case cfg.Months - 1:
				// No post-crash segment.
				for _, pre := range cfg.Trends {
					if pre == crash {
						plateaus[crash] = struct{}{}
						continue
					}
					scenarios = append(scenarios, build(cfg.Months, month, crash, pre, 0))
				}
			default:
				for _, pre := range cfg.Trends {
					for _, post := range cfg.Trends {
						if pre == crash && post == crash {
							plateaus[crash] = struct{}{}
							continue
						}
						scenarios = append(scenarios, build(cfg.Months, month, crash, pre, post))
					}
				}
			}
		}
	}

	// Emit deferred plateaus in ascending value order so the output does not
	// depend on map iteration order.
	values := make([]float64, 0, len(plateaus))
	for v := range plateaus {
		values = append(values, v)
	}
	sort.Float64s(values)
	for _, v := range values {
		scenarios = append(scenarios, buildPlateau(cfg.Months, v))
	}

	return scenarios, nil
}

func build(months, crashMonth int, crash, pre, post float64) models.Scenario {
	returns := make([]float64, months)
	for i := range returns {
		switch {
		case i < crashMonth:
			returns[i] = pre
		case i == crashMonth:
			returns[i] = crash
		default:
			returns[i] = post
		}
	}
	return models.Scenario{
		Returns:    returns,
		CrashMonth: crashMonth,
		Crash:      crash,
		PreTrend:   pre,
		PostTrend:  post,
	}
}

func buildPlateau(months int, value float64) models.Scenario {
	returns := make([]float64, months)
	for i := range returns {
		returns[i] = value
	}
	return models.Scenario{
		Returns:    returns,
		CrashMonth: models.PlateauMonth,
		Crash:      value,
		Plateau:    true,
	}
}

// Package bench drives the benchmark: every generated scenario through the
// evaluator, outcomes into a tally.
package bench

import (
	"fmt"

	"github.com/rewired-gh/dcabench/internal/models"
	"github.com/rewired-gh/dcabench/internal/simulate"
)

// Run evaluates every scenario sequentially and classifies each outcome.
// Evaluation is a pure function of the scenario and the shared parameters,
// so any evaluator error means the inputs were malformed and the run aborts.
func Run(scenarios []models.Scenario, params simulate.Params) (models.Tally, []models.ScenarioResult, error) {
	var tally models.Tally
	results := make([]models.ScenarioResult, 0, len(scenarios))

	for i, s := range scenarios {
		res, err := simulate.Evaluate(params, s.Returns)
		if err != nil {
			return models.Tally{}, nil, fmt.Errorf("scenario %d failed to evaluate: %w", i, err)
		}

		winner := models.ClassifyShares(res.AllInShares, res.DCAShares)
		tally.Record(winner)
		results = append(results, models.ScenarioResult{
			Scenario:    s,
			AllInShares: res.AllInShares,
			DCAShares:   res.DCAShares,
			Winner:      winner,
		})
	}

	return tally, results, nil
}

// Package sim runs randomized trials of the searcher puzzle and
// aggregates their outcomes.
package sim

import (
	"math/rand/v2"

	"github.com/kcatlin/permsim/internal/models"
	"github.com/kcatlin/permsim/internal/strategy"
)

// Params configures a single trial.
type Params struct {
	Searchers  int
	Slots      int
	Attempts   int
	Strategies []strategy.Resolved
}

// Trial owns one fresh random assignment and runs every searcher through
// every configured strategy against it.
type Trial struct {
	params     Params
	assignment models.Assignment
	rng        *rand.Rand
}

// NewTrial shuffles a fresh assignment from the given rand source. The
// trial owns the source for its lifetime; no other trial may share it.
func NewTrial(params Params, rng *rand.Rand) *Trial {
	return &Trial{
		params:     params,
		assignment: models.Assignment(rng.Perm(params.Slots)),
		rng:        rng,
	}
}

// Assignment returns the trial's permutation. Callers must treat it as
// read-only.
func (t *Trial) Assignment() models.Assignment { return t.assignment }

// Run executes every (searcher, strategy) pair against the shared
// assignment, instantiating a fresh strategy for each pair, and returns
// the per-strategy outcomes.
func (t *Trial) Run() models.TrialResult {
	result := make(models.TrialResult, len(t.params.Strategies))

	for _, s := range t.params.Strategies {
		outcomes := make([]models.Outcome, t.params.Searchers)
		for searcher := range outcomes {
			outcomes[searcher] = s.New(t.rng).Run(searcher, t.assignment, t.params.Attempts)
		}
		result[s.Name] = outcomes
	}

	return result
}

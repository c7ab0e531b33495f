package strategy

import "github.com/kcatlin/permsim/internal/models"

// NameLoop identifies the LoopSearch strategy in configs.
const NameLoop = "loop"

// MetricLoopSize is the auxiliary metric emitted by LoopSearch: the number
// of slots opened before the search terminated.
const MetricLoopSize = "loop_size"

// LoopSearch follows the permutation cycle containing the searcher's
// identity: it opens the slot indexed by its target, then repeatedly the
// slot indexed by the value just revealed. Within one cycle the target is
// always found eventually, so the searcher succeeds exactly when the
// distance to its target along the cycle is within the budget.
type LoopSearch struct{}

// Run follows the cycle for at most attempts openings. It stops the moment
// the budget is exhausted rather than following the cycle to closure, so
// loop_size is the count of openings actually performed: the successful
// opening's ordinal on success, attempts on budget exhaustion, and 0 when
// attempts <= 0 (no opening is attempted).
func (s *LoopSearch) Run(target int, assignment models.Assignment, attempts int) models.Outcome {
	opened := 0
	slot := target
	for opened < attempts {
		value := assignment.At(slot)
		opened++
		if value == target {
			return models.Outcome{
				Success: true,
				Metrics: map[string]float64{MetricLoopSize: float64(opened)},
			}
		}
		slot = value
	}
	return models.Outcome{
		Metrics: map[string]float64{MetricLoopSize: float64(opened)},
	}
}

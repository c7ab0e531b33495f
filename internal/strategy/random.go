package strategy

import (
	"math/rand/v2"

	"github.com/kcatlin/permsim/internal/models"
)

// NameRandom identifies the RandomSearch strategy in configs.
const NameRandom = "random"

// RandomSearch opens uniformly random slots, never reopening one, until it
// finds the target or exhausts the budget. Emits no metrics.
type RandomSearch struct {
	rng *rand.Rand
}

// Run opens up to attempts slots. With attempts <= 0 it opens nothing and
// fails immediately.
func (s *RandomSearch) Run(target int, assignment models.Assignment, attempts int) models.Outcome {
	unchecked := make([]int, assignment.Len())
	for i := range unchecked {
		unchecked[i] = i
	}

	for ; attempts > 0 && len(unchecked) > 0; attempts-- {
		i := s.rng.IntN(len(unchecked))
		slot := unchecked[i]
		unchecked[i] = unchecked[len(unchecked)-1]
		unchecked = unchecked[:len(unchecked)-1]

		if assignment.At(slot) == target {
			return models.Outcome{Success: true}
		}
	}
	return models.Outcome{}
}

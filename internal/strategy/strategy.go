// Package strategy implements the search strategies a searcher can use to
// find its own identity among the slots of a shuffled assignment.
package strategy

import (
	"fmt"
	"math/rand/v2"

	"github.com/kcatlin/permsim/internal/models"
)

// Strategy decides whether one searcher finds its target within the
// attempt budget. Implementations must not mutate the assignment. A
// strategy instance is single-use: one Run per searcher per trial.
type Strategy interface {
	Run(target int, assignment models.Assignment, attempts int) models.Outcome
}

// Factory builds a fresh strategy instance. The rand source is the owning
// trial's; strategies that need no randomness may ignore it.
type Factory func(rng *rand.Rand) Strategy

// Resolved pairs a strategy name with its factory, in configuration order.
type Resolved struct {
	Name string
	New  Factory
}

var registry = map[string]Factory{
	NameRandom: func(rng *rand.Rand) Strategy { return &RandomSearch{rng: rng} },
	NameLoop:   func(*rand.Rand) Strategy { return &LoopSearch{} },
}

// Register adds a strategy under the given name. Registering an existing
// name replaces it.
func Register(name string, f Factory) {
	registry[name] = f
}

// Known reports whether a strategy name is registered.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

// Resolve looks up the named strategies and performs the
// configuration-time capability check: an unknown name is an
// ErrInvalidConfig, a duplicate name is an ErrInvalidConfig, and a nil
// factory or a factory producing nil is an ErrStrategyContract.
func Resolve(names []string) ([]Resolved, error) {
	resolved := make([]Resolved, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		if seen[name] {
			return nil, fmt.Errorf("%w: strategy %q listed twice", models.ErrInvalidConfig, name)
		}
		seen[name] = true

		f, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown strategy %q", models.ErrInvalidConfig, name)
		}
		if f == nil {
			return nil, fmt.Errorf("%w: strategy %q registered without a factory", models.ErrStrategyContract, name)
		}
		if f(probe) == nil {
			return nil, fmt.Errorf("%w: strategy %q factory produced nil", models.ErrStrategyContract, name)
		}

		resolved = append(resolved, Resolved{Name: name, New: f})
	}

	return resolved, nil
}

// probe is a throwaway rand source used only by the capability check.
var probe = rand.New(rand.NewPCG(0, 0))

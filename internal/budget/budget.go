// Package budget derives the number of slot openings each searcher gets.
package budget

import (
	"fmt"

	"github.com/kcatlin/permsim/internal/models"
)

// Kind names an attempt-budget policy.
type Kind string

const (
	// Default gives each searcher half the slots: attempts = slots/2.
	Default Kind = "default"

	// Modified generalizes the divisor: attempts = slots/divisor.
	// Divisor 2 reproduces Default.
	Modified Kind = "modified"
)

// Policy is a budget policy plus its parameter. Divisor is ignored for
// Default.
type Policy struct {
	Kind    Kind
	Divisor int
}

// FromConfig translates a validated BudgetConfig into a Policy.
func FromConfig(cfg models.BudgetConfig) Policy {
	kind := Kind(cfg.Policy)
	if cfg.Policy == "" {
		kind = Default
	}
	return Policy{Kind: kind, Divisor: cfg.Divisor}
}

// Compute returns the attempt budget for the given slot count. Pure and
// deterministic. roundDown picks floor over ceil when the division is
// inexact. Modified with a missing or non-positive divisor is an
// ErrInvalidConfig.
func Compute(totalSlots int, p Policy, roundDown bool) (int, error) {
	var divisor int
	switch p.Kind {
	case Default:
		divisor = 2
	case Modified:
		if p.Divisor <= 0 {
			return 0, fmt.Errorf("%w: modified budget policy requires a positive divisor, got %d", models.ErrInvalidConfig, p.Divisor)
		}
		divisor = p.Divisor
	default:
		return 0, fmt.Errorf("%w: unknown budget policy %q", models.ErrInvalidConfig, p.Kind)
	}

	if roundDown {
		return totalSlots / divisor, nil
	}
	return (totalSlots + divisor - 1) / divisor, nil
}

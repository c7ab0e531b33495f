package sim

import (
	"context"
	"fmt"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/kcatlin/permsim/internal/budget"
	"github.com/kcatlin/permsim/internal/models"
	"github.com/kcatlin/permsim/internal/strategy"
)

// ProgressFunc is invoked at trial boundaries with the index of the trial
// about to run.
type ProgressFunc func(trial int)

// Runner orchestrates the configured number of independent trials and
// accumulates their outcomes into per-strategy tables.
type Runner struct {
	cfg        models.RunConfig
	strategies []strategy.Resolved
	attempts   int
	seed       uint64
	progress   ProgressFunc

	results map[string]*models.Aggregate
}

// Option customizes a Runner.
type Option func(*Runner)

// WithProgress installs the progress callback. It fires every
// cfg.ProgressEvery trials; without a positive cadence it never fires.
func WithProgress(fn ProgressFunc) Option {
	return func(r *Runner) { r.progress = fn }
}

// NewRunner validates the configuration, resolves the strategies, and
// computes the attempt budget once. Any configuration error aborts
// construction entirely.
func NewRunner(cfg models.RunConfig, opts ...Option) (*Runner, error) {
	if cfg.Searchers <= 0 {
		return nil, fmt.Errorf("%w: searchers must be positive, got %d", models.ErrInvalidConfig, cfg.Searchers)
	}
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("%w: trials must be positive, got %d", models.ErrInvalidConfig, cfg.Trials)
	}
	if cfg.Slots == 0 {
		cfg.Slots = cfg.Searchers
	}
	if cfg.Slots < cfg.Searchers {
		return nil, fmt.Errorf("%w: slots (%d) must be at least searchers (%d)", models.ErrInvalidConfig, cfg.Slots, cfg.Searchers)
	}
	if len(cfg.Strategies) == 0 {
		return nil, fmt.Errorf("%w: at least one strategy is required", models.ErrInvalidConfig)
	}
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("%w: workers must be positive, got %d", models.ErrInvalidConfig, cfg.Workers)
	}

	resolved, err := strategy.Resolve(cfg.Strategies)
	if err != nil {
		return nil, err
	}

	roundDown := cfg.Budget.RoundDown == nil || *cfg.Budget.RoundDown
	attempts, err := budget.Compute(cfg.Slots, budget.FromConfig(cfg.Budget), roundDown)
	if err != nil {
		return nil, err
	}

	seed := rand.Uint64()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	r := &Runner{
		cfg:        cfg,
		strategies: resolved,
		attempts:   attempts,
		seed:       seed,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Attempts returns the derived attempt budget.
func (r *Runner) Attempts() int { return r.attempts }

// Seed returns the seed the run's trials derive from.
func (r *Runner) Seed() uint64 { return r.seed }

// Simulate executes the configured number of independent trials, each with
// its own fresh assignment, and fills one aggregate column per trial.
// Trial t draws its rand source from (seed, t), so results are identical
// for any worker count.
func (r *Runner) Simulate(ctx context.Context) error {
	tables := make(map[string]*models.Aggregate, len(r.strategies))
	for _, s := range r.strategies {
		tables[s.Name] = models.NewAggregate(r.cfg.Searchers, r.cfg.Trials)
	}

	record := func(trial int) {
		rng := rand.New(rand.NewPCG(r.seed, uint64(trial)))
		result := NewTrial(Params{
			Searchers:  r.cfg.Searchers,
			Slots:      r.cfg.Slots,
			Attempts:   r.attempts,
			Strategies: r.strategies,
		}, rng).Run()

		for name, outcomes := range result {
			tables[name].SetTrial(trial, outcomes)
		}
	}

	if r.cfg.Workers <= 1 {
		for trial := 0; trial < r.cfg.Trials; trial++ {
			if err := ctx.Err(); err != nil {
				return fmt.Errorf("run aborted at trial %d: %w", trial, err)
			}
			r.report(trial)
			record(trial)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.cfg.Workers)
		for trial := 0; trial < r.cfg.Trials; trial++ {
			if err := gctx.Err(); err != nil {
				break
			}
			r.report(trial)
			g.Go(func() error {
				record(trial)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run aborted: %w", err)
		}
	}

	r.results = tables
	return nil
}

func (r *Runner) report(trial int) {
	if r.progress == nil || r.cfg.ProgressEvery <= 0 {
		return
	}
	if trial%r.cfg.ProgressEvery == 0 {
		r.progress(trial)
	}
}

// Results exposes the per-strategy aggregate tables for the storage
// collaborators. Nil before the first Simulate call.
func (r *Runner) Results() map[string]*models.Aggregate {
	return r.results
}

// Stats derives summary statistics from the current aggregates. Calling it
// repeatedly without an intervening Simulate returns identical values.
func (r *Runner) Stats() map[string]models.Summary {
	stats := make(map[string]models.Summary, len(r.results))
	for name, agg := range r.results {
		stats[name] = agg.Summary()
	}
	return stats
}

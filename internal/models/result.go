package models

import (
	"sort"
	"sync"
)

// Outcome is the result of one searcher running one strategy in one trial.
type Outcome struct {
	Success bool

	// Metrics holds auxiliary per-searcher values emitted by the
	// strategy (e.g. "loop_size"). Nil when the strategy emits none.
	Metrics map[string]float64
}

// TrialResult collects the outcomes of a single trial, keyed by strategy
// name, with one Outcome per searcher.
type TrialResult map[string][]Outcome

// Aggregate accumulates outcomes for one strategy across a fixed number of
// trials. Rows are searchers, columns are trials. Each trial fills its own
// column, so accumulation is independent of completion order.
type Aggregate struct {
	searchers int
	trials    int

	mu      sync.Mutex
	success [][]bool               // [trial][searcher]
	metrics map[string][][]float64 // metric -> [trial][searcher]
}

// NewAggregate allocates tables for the given dimensions.
func NewAggregate(searchers, trials int) *Aggregate {
	success := make([][]bool, trials)
	for t := range success {
		success[t] = make([]bool, searchers)
	}
	return &Aggregate{
		searchers: searchers,
		trials:    trials,
		success:   success,
		metrics:   make(map[string][][]float64),
	}
}

// Searchers returns the row count.
func (a *Aggregate) Searchers() int { return a.searchers }

// Trials returns the column count.
func (a *Aggregate) Trials() int { return a.trials }

// SetTrial records the per-searcher outcomes of one trial into its column.
// Safe for concurrent use as long as each trial index is written once.
func (a *Aggregate) SetTrial(trial int, outcomes []Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for searcher, out := range outcomes {
		a.success[trial][searcher] = out.Success
		for name, value := range out.Metrics {
			table, ok := a.metrics[name]
			if !ok {
				table = make([][]float64, a.trials)
				for t := range table {
					table[t] = make([]float64, a.searchers)
				}
				a.metrics[name] = table
			}
			table[trial][searcher] = value
		}
	}
}

// Success reports whether the given searcher succeeded in the given trial.
func (a *Aggregate) Success(searcher, trial int) bool {
	return a.success[trial][searcher]
}

// TrialTotal returns the number of successful searchers in one trial.
func (a *Aggregate) TrialTotal(trial int) int {
	total := 0
	for _, ok := range a.success[trial] {
		if ok {
			total++
		}
	}
	return total
}

// TotalCounts returns, for every possible success total 0..searchers, the
// number of trials that produced it.
func (a *Aggregate) TotalCounts() []int {
	counts := make([]int, a.searchers+1)
	for t := 0; t < a.trials; t++ {
		counts[a.TrialTotal(t)]++
	}
	return counts
}

// SuccessRows returns the success table with rows = searchers and
// columns = trials, the orientation consumed by the export sinks.
func (a *Aggregate) SuccessRows() [][]bool {
	rows := make([][]bool, a.searchers)
	for s := range rows {
		rows[s] = make([]bool, a.trials)
		for t := 0; t < a.trials; t++ {
			rows[s][t] = a.success[t][s]
		}
	}
	return rows
}

// MetricNames returns the recorded metric names in sorted order.
func (a *Aggregate) MetricNames() []string {
	names := make([]string, 0, len(a.metrics))
	for name := range a.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MetricRows returns one metric table with rows = searchers and
// columns = trials, or nil if the metric was never recorded.
func (a *Aggregate) MetricRows(name string) [][]float64 {
	table, ok := a.metrics[name]
	if !ok {
		return nil
	}
	rows := make([][]float64, a.searchers)
	for s := range rows {
		rows[s] = make([]float64, a.trials)
		for t := 0; t < a.trials; t++ {
			rows[s][t] = table[t][s]
		}
	}
	return rows
}

// Summary holds the derived statistics for one strategy.
type Summary struct {
	// Successes counts the trials where every searcher succeeded.
	Successes int

	// Peak is the most frequent per-trial success total. Ties break
	// toward the smaller total.
	Peak int
}

// Summary derives statistics from the current tables. Pure; calling it
// repeatedly without intervening SetTrial calls returns identical values.
func (a *Aggregate) Summary() Summary {
	counts := a.TotalCounts()
	peak := 0
	for total, c := range counts {
		if c > counts[peak] {
			peak = total
		}
	}
	return Summary{
		Successes: counts[a.searchers],
		Peak:      peak,
	}
}

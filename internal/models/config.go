package models

// RunConfig describes one simulation run: how many searchers look for
// their number among how many slots, which strategies they use, how the
// attempt budget is derived, and how many independent trials to run.
type RunConfig struct {
	Name       string       `yaml:"name" toml:"name"`
	Searchers  int          `yaml:"searchers" toml:"searchers"`
	Slots      int          `yaml:"slots" toml:"slots"`
	Trials     int          `yaml:"trials" toml:"trials"`
	Strategies []string     `yaml:"strategies" toml:"strategies"`
	Budget     BudgetConfig `yaml:"budget" toml:"budget"`

	// ProgressEvery is the reporting cadence in trials. 0 disables
	// progress reporting.
	ProgressEvery int `yaml:"progress_every" toml:"progress_every"`

	// Seed fixes the random source for reproducible runs. When nil, a
	// seed is drawn from process entropy.
	Seed *uint64 `yaml:"seed" toml:"seed"`

	// Workers bounds concurrent trial execution. 1 (the default) runs
	// trials strictly sequentially.
	Workers int `yaml:"workers" toml:"workers"`

	Export ExportConfig `yaml:"export" toml:"export"`
}

// BudgetConfig selects the attempt-budget policy.
type BudgetConfig struct {
	// Policy is "default" (attempts = slots/2) or "modified"
	// (attempts = slots/divisor).
	Policy  string `yaml:"policy" toml:"policy"`
	Divisor int    `yaml:"divisor" toml:"divisor"`

	// RoundDown picks floor over ceil for indivisible budgets. When nil
	// the config builder applies the floor fallback rule.
	RoundDown *bool `yaml:"round_down" toml:"round_down"`
}

// ExportConfig names the optional result sinks. Empty fields disable the
// corresponding sink.
type ExportConfig struct {
	CSVDir     string `yaml:"csv_dir" toml:"csv_dir"`
	SQLitePath string `yaml:"sqlite_path" toml:"sqlite_path"`
	PlotDir    string `yaml:"plot_dir" toml:"plot_dir"`
}

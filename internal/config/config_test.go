package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kcatlin/permsim/internal/config"
	"github.com/kcatlin/permsim/internal/models"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "run.yaml", `name: tight-budget
searchers: 50
slots: 60
trials: 500
strategies:
  - loop
budget:
  policy: modified
  divisor: 3
  round_down: false
progress_every: 100
seed: 12345
workers: 4
export:
  csv_dir: out/csv
  sqlite_path: out/results.db
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Name != "tight-budget" {
		t.Errorf("name = %q, want tight-budget", cfg.Name)
	}
	if cfg.Searchers != 50 || cfg.Slots != 60 || cfg.Trials != 500 {
		t.Errorf("dimensions = %d/%d/%d, want 50/60/500", cfg.Searchers, cfg.Slots, cfg.Trials)
	}
	if len(cfg.Strategies) != 1 || cfg.Strategies[0] != "loop" {
		t.Errorf("strategies = %v, want [loop]", cfg.Strategies)
	}
	if cfg.Budget.Policy != "modified" || cfg.Budget.Divisor != 3 {
		t.Errorf("budget = %+v, want modified/3", cfg.Budget)
	}
	if cfg.Budget.RoundDown == nil || *cfg.Budget.RoundDown {
		t.Errorf("round_down should be explicit false")
	}
	if cfg.Seed == nil || *cfg.Seed != 12345 {
		t.Errorf("seed = %v, want 12345", cfg.Seed)
	}
	if cfg.Workers != 4 || cfg.ProgressEvery != 100 {
		t.Errorf("workers/progress = %d/%d, want 4/100", cfg.Workers, cfg.ProgressEvery)
	}
	if cfg.Export.CSVDir != "out/csv" || cfg.Export.SQLitePath != "out/results.db" {
		t.Errorf("export = %+v", cfg.Export)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeConfig(t, "run.toml", `name = "toml-run"
searchers = 10
trials = 25
strategies = ["random", "loop"]

[budget]
policy = "default"
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Name != "toml-run" || cfg.Searchers != 10 || cfg.Trials != 25 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Slots != 10 {
		t.Errorf("slots = %d, want defaulted to searchers", cfg.Slots)
	}
	if len(cfg.Strategies) != 2 {
		t.Errorf("strategies = %v", cfg.Strategies)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "run.json", `{}`)
	if _, err := config.Load(path); !errors.Is(err, models.ErrInvalidConfig) {
		t.Errorf("Load error = %v, want ErrInvalidConfig", err)
	}
}

func TestFinalizeDefaults(t *testing.T) {
	cfg, err := config.Finalize(models.RunConfig{
		Searchers:  7,
		Trials:     3,
		Strategies: []string{"loop"},
	})
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	if cfg.Slots != 7 {
		t.Errorf("slots = %d, want 7", cfg.Slots)
	}
	if cfg.Workers != 1 {
		t.Errorf("workers = %d, want 1", cfg.Workers)
	}
	if cfg.Budget.Policy != "default" {
		t.Errorf("policy = %q, want default", cfg.Budget.Policy)
	}
	// Odd slot count with no explicit direction: the floor fallback.
	if cfg.Budget.RoundDown == nil || !*cfg.Budget.RoundDown {
		t.Errorf("round_down fallback not applied: %v", cfg.Budget.RoundDown)
	}
}

func TestFinalizeNegativeCadenceFallback(t *testing.T) {
	cfg, err := config.Finalize(models.RunConfig{
		Searchers:     4,
		Trials:        2,
		Strategies:    []string{"random"},
		ProgressEvery: -5,
	})
	if err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if cfg.ProgressEvery != 0 {
		t.Errorf("progress_every = %d, want 0", cfg.ProgressEvery)
	}
}

func TestFinalizeRejects(t *testing.T) {
	tests := []struct {
		name string
		cfg  models.RunConfig
	}{
		{"zero searchers", models.RunConfig{Trials: 1, Strategies: []string{"loop"}}},
		{"zero trials", models.RunConfig{Searchers: 1, Strategies: []string{"loop"}}},
		{"slots below searchers", models.RunConfig{Searchers: 5, Slots: 4, Trials: 1, Strategies: []string{"loop"}}},
		{"no strategies", models.RunConfig{Searchers: 1, Trials: 1}},
		{"unknown strategy", models.RunConfig{Searchers: 1, Trials: 1, Strategies: []string{"psychic"}}},
		{"unknown policy", models.RunConfig{Searchers: 1, Trials: 1, Strategies: []string{"loop"}, Budget: models.BudgetConfig{Policy: "halved"}}},
		{"modified without divisor", models.RunConfig{Searchers: 1, Trials: 1, Strategies: []string{"loop"}, Budget: models.BudgetConfig{Policy: "modified"}}},
		{"negative workers", models.RunConfig{Searchers: 1, Trials: 1, Strategies: []string{"loop"}, Workers: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := config.Finalize(tt.cfg); !errors.Is(err, models.ErrInvalidConfig) {
				t.Errorf("Finalize error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestDefaultFinalizes(t *testing.T) {
	cfg, err := config.Finalize(config.Default())
	if err != nil {
		t.Fatalf("default config does not finalize: %v", err)
	}
	if cfg.Searchers != 100 || cfg.Slots != 100 || cfg.Trials != 100 {
		t.Errorf("unexpected default dimensions: %+v", cfg)
	}
}

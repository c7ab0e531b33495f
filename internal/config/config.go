// Package config loads and validates run configurations from YAML or TOML
// files and applies the documented fallback rules.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/kcatlin/permsim/internal/models"
	"github.com/kcatlin/permsim/internal/strategy"
)

// Default returns the classic experiment: 100 searchers, 100 slots, 100
// trials, both reference strategies, half the slots as budget.
func Default() models.RunConfig {
	return models.RunConfig{
		Name:       "prisoner-problem",
		Searchers:  100,
		Trials:     100,
		Strategies: []string{strategy.NameRandom, strategy.NameLoop},
		Budget:     models.BudgetConfig{Policy: "default"},
		Workers:    1,
	}
}

// Load reads a run configuration from path, dispatching on the file
// extension (.yaml/.yml or .toml), then finalizes it.
func Load(path string) (models.RunConfig, error) {
	cfg := models.RunConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading run config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing run config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parsing run config %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("%w: unsupported config format %q (want .yaml, .yml or .toml)", models.ErrInvalidConfig, filepath.Ext(path))
	}

	return Finalize(cfg)
}

// Finalize applies defaults and fallback rules, then validates. Every
// fallback is explicit and logged; every violation aborts with
// ErrInvalidConfig so no partial configuration escapes.
func Finalize(cfg models.RunConfig) (models.RunConfig, error) {
	if cfg.Searchers <= 0 {
		return cfg, fmt.Errorf("%w: searchers must be positive, got %d", models.ErrInvalidConfig, cfg.Searchers)
	}
	if cfg.Trials <= 0 {
		return cfg, fmt.Errorf("%w: trials must be positive, got %d", models.ErrInvalidConfig, cfg.Trials)
	}

	if cfg.Slots == 0 {
		cfg.Slots = cfg.Searchers
	}
	if cfg.Slots < cfg.Searchers {
		return cfg, fmt.Errorf("%w: slots (%d) must be at least searchers (%d)", models.ErrInvalidConfig, cfg.Slots, cfg.Searchers)
	}

	if len(cfg.Strategies) == 0 {
		return cfg, fmt.Errorf("%w: at least one strategy is required", models.ErrInvalidConfig)
	}
	for _, name := range cfg.Strategies {
		if !strategy.Known(name) {
			return cfg, fmt.Errorf("%w: unknown strategy %q", models.ErrInvalidConfig, name)
		}
	}

	if cfg.Budget.Policy == "" {
		cfg.Budget.Policy = "default"
	}
	switch cfg.Budget.Policy {
	case "default":
	case "modified":
		if cfg.Budget.Divisor <= 0 {
			return cfg, fmt.Errorf("%w: modified budget policy requires a positive divisor, got %d", models.ErrInvalidConfig, cfg.Budget.Divisor)
		}
	default:
		return cfg, fmt.Errorf("%w: unknown budget policy %q", models.ErrInvalidConfig, cfg.Budget.Policy)
	}

	// Fallback rule: an unspecified rounding direction floors the
	// budget. Flag it only when the division is inexact, where the
	// direction actually changes the budget.
	if cfg.Budget.RoundDown == nil {
		divisor := 2
		if cfg.Budget.Policy == "modified" {
			divisor = cfg.Budget.Divisor
		}
		if cfg.Slots%divisor != 0 {
			slog.Warn("budget does not divide evenly and round_down is unset, rounding down",
				"slots", cfg.Slots, "divisor", divisor)
		}
		down := true
		cfg.Budget.RoundDown = &down
	}

	// Fallback rule: a negative cadence disables progress reporting.
	if cfg.ProgressEvery < 0 {
		slog.Warn("negative progress_every, disabling progress reporting",
			"progress_every", cfg.ProgressEvery)
		cfg.ProgressEvery = 0
	}

	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	if cfg.Workers < 0 {
		return cfg, fmt.Errorf("%w: workers must be positive, got %d", models.ErrInvalidConfig, cfg.Workers)
	}

	return cfg, nil
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kcatlin/permsim/internal/config"
	"github.com/kcatlin/permsim/internal/export"
	"github.com/kcatlin/permsim/internal/models"
	"github.com/kcatlin/permsim/internal/sim"
)

func newRunCmd() *cobra.Command {
	var (
		seed    uint64
		workers int
	)

	cmd := &cobra.Command{
		Use:   "run [config-file]",
		Short: "Run a simulation",
		Long: `Run a simulation from a YAML or TOML config file. Without a config
file the classic experiment is used: 100 searchers, 100 trials, both
reference strategies, a budget of half the slots.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg = config.Default()
			var err error

			if len(args) == 1 {
				cfg, err = config.Load(args[0])
			} else {
				slog.Warn("no config file given, running the default experiment",
					"searchers", cfg.Searchers, "trials", cfg.Trials)
				cfg, err = config.Finalize(cfg)
			}
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("seed") {
				cfg.Seed = &seed
			}
			if cmd.Flags().Changed("workers") {
				cfg.Workers = workers
			}

			runner, err := sim.NewRunner(cfg, sim.WithProgress(func(trial int) {
				slog.Info("progress", "trial", trial, "total", cfg.Trials)
			}))
			if err != nil {
				return err
			}

			if err := runner.Simulate(cmd.Context()); err != nil {
				return err
			}

			stats := runner.Stats()

			fmt.Printf("\nRun: %s\n", cfg.Name)
			fmt.Printf("Searchers: %d  Slots: %d  Trials: %d\n", cfg.Searchers, cfg.Slots, cfg.Trials)
			fmt.Printf("Attempt budget: %d  Seed: %d\n", runner.Attempts(), runner.Seed())
			for _, name := range cfg.Strategies {
				s := stats[name]
				fmt.Printf("\n%s:\n", name)
				fmt.Printf("  All-succeed trials: %d/%d (%.2f%%)\n",
					s.Successes, cfg.Trials, 100*float64(s.Successes)/float64(cfg.Trials))
				fmt.Printf("  Most frequent success total: %d\n", s.Peak)
			}

			return runExports(cmd, cfg, runner)
		},
	}

	cmd.Flags().Uint64Var(&seed, "seed", 0, "Seed for reproducible runs (overrides config)")
	cmd.Flags().IntVar(&workers, "workers", 1, "Concurrent trial workers (overrides config)")

	return cmd
}

func runExports(cmd *cobra.Command, cfg models.RunConfig, runner *sim.Runner) error {
	results := runner.Results()

	if cfg.Export.CSVDir != "" {
		if err := export.WriteCSV(cfg.Export.CSVDir, results); err != nil {
			return fmt.Errorf("exporting csv: %w", err)
		}
		slog.Info("wrote csv tables", "dir", cfg.Export.CSVDir)
	}

	if cfg.Export.SQLitePath != "" {
		store, err := export.OpenSQLite(cfg.Export.SQLitePath)
		if err != nil {
			return fmt.Errorf("opening result store: %w", err)
		}
		defer store.Close()

		runID, err := store.SaveRun(cmd.Context(), cfg, runner.Attempts(), runner.Seed(), results, runner.Stats())
		if err != nil {
			return fmt.Errorf("saving run: %w", err)
		}
		slog.Info("saved run", "path", cfg.Export.SQLitePath, "run_id", runID)
	}

	if cfg.Export.PlotDir != "" {
		if err := export.WritePlots(cfg.Export.PlotDir, results); err != nil {
			return fmt.Errorf("exporting plots: %w", err)
		}
		slog.Info("wrote distribution plots", "dir", cfg.Export.PlotDir)
	}

	return nil
}

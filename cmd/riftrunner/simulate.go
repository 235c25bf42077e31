package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/talgya/rift-runner/internal/autopilot"
	"github.com/talgya/rift-runner/internal/engine"
	"github.com/talgya/rift-runner/internal/entropy"
)

// RunSummary is one autopilot run in a batch report.
type RunSummary struct {
	ID         string `yaml:"id,omitempty"`
	Seed       int64  `yaml:"seed"`
	Outcome    string `yaml:"outcome"`
	Cycle      int    `yaml:"cycle"`
	Planets    int    `yaml:"planets"`
	Dissolved  int    `yaml:"dissolved"`
	RiftEnergy int    `yaml:"rift_energy"`
	Ticks      uint64 `yaml:"ticks"`
}

// BatchReport aggregates a simulate batch.
type BatchReport struct {
	Runs      []RunSummary  `yaml:"runs"`
	Victories int           `yaml:"victories"`
	Losses    int           `yaml:"losses"`
	Abandoned int           `yaml:"abandoned"`
	BestCycle int           `yaml:"best_cycle"`
	Elapsed   time.Duration `yaml:"elapsed"`
}

func (r *BatchReport) add(s RunSummary) {
	r.Runs = append(r.Runs, s)
	switch s.Outcome {
	case engine.OutcomeVictory.String():
		r.Victories++
	case engine.OutcomeLoss.String():
		r.Losses++
	default:
		r.Abandoned++
	}
	if s.Cycle > r.BestCycle {
		r.BestCycle = s.Cycle
	}
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Play a batch of runs with the autopilot",
	Long: `Plays runs headless. The autopilot triages each snapshot, deploys at most
one field per tick and spends idle turns on the entropy core. Finished runs
are written to the run journal unless journaling is off.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != "text" && format != "yaml" {
			return fmt.Errorf("unknown format %q (want text or yaml)", format)
		}
		noCore, _ := cmd.Flags().GetBool("no-core")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		db, err := openJournal()
		if err != nil {
			return err
		}
		if db != nil {
			defer db.Close()
		}

		report := &BatchReport{}
		start := time.Now()
		bar := progressbar.Default(int64(cfg.Runs), "Simulating")

		for i := 0; i < cfg.Runs; i++ {
			seed := runSeed(i)
			started := time.Now()

			src := entropy.New(seed)
			sim := engine.NewSimulation(src)
			pilot := autopilot.NewPilot(src)
			pilot.EntropyCore = !noCore

			eng := engine.NewEngine(sim)
			eng.MaxTicks = cfg.MaxTicks
			eng.Interval = cfg.Interval

			outcome, err := eng.Run(ctx, pilot)
			if errors.Is(err, context.Canceled) {
				slog.Warn("batch interrupted", "completed", i)
				break
			}
			if err != nil {
				return fmt.Errorf("run %d (seed %d): %w", i, seed, err)
			}

			id, err := journalRun(db, sim, seed, started)
			if err != nil {
				return fmt.Errorf("journal run %d: %w", i, err)
			}

			report.add(RunSummary{
				ID:         id,
				Seed:       seed,
				Outcome:    outcome.String(),
				Cycle:      sim.Cycle,
				Planets:    len(sim.Planets),
				Dissolved:  sim.Dissolved,
				RiftEnergy: sim.RiftEnergy,
				Ticks:      eng.Tick,
			})
			slog.Debug("run finished", "seed", seed, "outcome", outcome, "cycle", sim.Cycle, "ticks", eng.Tick)
			bar.Add(1)
		}
		bar.Finish()
		report.Elapsed = time.Since(start).Round(time.Millisecond)

		out := cmd.OutOrStdout()
		if format == "yaml" {
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			defer enc.Close()
			return enc.Encode(report)
		}
		writeTextReport(out, report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(simulateCmd)
	simulateCmd.Flags().Int("runs", 0, "runs to play (default from config)")
	simulateCmd.Flags().Uint64("max-ticks", 0, "abandon a run after this many ticks (default from config)")
	simulateCmd.Flags().Duration("interval", 0, "pause between ticks")
	simulateCmd.Flags().Bool("journal", true, "write finished runs to the journal")
	simulateCmd.Flags().Bool("no-core", false, "never play the entropy core")
	simulateCmd.Flags().String("format", "text", "report format: text or yaml")

	vp.BindPFlag("runs", simulateCmd.Flags().Lookup("runs"))
	vp.BindPFlag("max_ticks", simulateCmd.Flags().Lookup("max-ticks"))
	vp.BindPFlag("interval", simulateCmd.Flags().Lookup("interval"))
	vp.BindPFlag("journal", simulateCmd.Flags().Lookup("journal"))
}

func writeTextReport(w io.Writer, r *BatchReport) {
	fmt.Fprintf(w, "\n%-8s %-20s %-8s %5s %7s %9s %8s\n", "RUN", "SEED", "OUTCOME", "CYCLE", "PLANETS", "DISSOLVED", "TICKS")
	for i, s := range r.Runs {
		fmt.Fprintf(w, "%-8s %-20d %-8s %5d %7d %9s %8s\n",
			humanize.Ordinal(i+1), s.Seed, s.Outcome, s.Cycle, s.Planets,
			humanize.Comma(int64(s.Dissolved)), humanize.Comma(int64(s.Ticks)))
	}
	total := len(r.Runs)
	rate := 0.0
	if total > 0 {
		rate = float64(r.Victories) / float64(total) * 100
	}
	fmt.Fprintf(w, "\n%s runs in %s: %d victories (%s%%), %d losses, %d abandoned, best cycle %d\n",
		humanize.Comma(int64(total)), r.Elapsed, r.Victories, humanize.FtoaWithDigits(rate, 1),
		r.Losses, r.Abandoned, r.BestCycle)
}

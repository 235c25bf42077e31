package main

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/rift-runner/internal/persistence"
)

var historyCmd = &cobra.Command{
	Use:   "history [run_id]",
	Short: "List journaled runs, or the event log of one run",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		if cfg.DBPath == "" {
			return errors.New("history needs db_path")
		}

		db, err := persistence.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		out := cmd.OutOrStdout()
		if len(args) == 1 {
			run, err := db.GetRun(args[0])
			if err != nil {
				return err
			}
			events, err := db.RunEvents(run.ID, limit)
			if err != nil {
				return fmt.Errorf("events of run %s: %w", run.ID, err)
			}
			fmt.Fprintf(out, "Run %s (seed %d): %s at cycle %d after %s ticks, finished %s\n",
				run.ID, run.Seed, run.Outcome, run.Cycle, humanize.Comma(int64(run.Ticks)), humanize.Time(run.Finished()))
			if visits, err := run.Planets(); err == nil {
				for _, v := range visits {
					fmt.Fprintf(out, "  cycle %2d  %-12s (%d, %d)  %s\n", v.Cycle, v.Name, v.Q, v.R, v.Hostile)
				}
			}
			for _, e := range events {
				fmt.Fprintf(out, "%6d [%s] %s\n", e.Tick, e.Category, e.Description)
			}
			return nil
		}

		stats, err := db.Stats()
		if err != nil {
			return fmt.Errorf("journal stats: %w", err)
		}
		runs, err := db.RecentRuns(limit)
		if err != nil {
			return fmt.Errorf("recent runs: %w", err)
		}

		fmt.Fprintf(out, "%s runs journaled, %s victories, best cycle %d\n\n",
			humanize.Comma(int64(stats.Runs)), humanize.Comma(int64(stats.Victories)), stats.BestCycle)
		for _, r := range runs {
			fmt.Fprintf(out, "%s  %-8s cycle %2d  dissolved %4d  energy %5s  %s\n",
				r.ID, r.Outcome, r.Cycle, r.Dissolved, humanize.Comma(int64(r.RiftEnergy)), humanize.Time(r.Finished()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().Int("limit", 20, "maximum rows to show")
}

package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/talgya/rift-runner/internal/config"
	"github.com/talgya/rift-runner/internal/engine"
	"github.com/talgya/rift-runner/internal/entropy"
	"github.com/talgya/rift-runner/internal/persistence"
)

var (
	cfgFile string
	vp      = viper.New()
	cfg     = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "riftrunner",
	Short: "Hex-grid rift defense simulation",
	Long: `Rift Runner: deploy Pulse, Weave and Temporal fields on seven-hex planets
to dissolve hostile ethereals before they reach the core shard.

Settings come from riftrunner.yaml (working directory or $HOME), RIFTRUNNER_*
environment variables and flags, in increasing precedence.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Init(vp, cfgFile)
		loaded, err := config.Load(vp)
		if err != nil {
			return err
		}
		cfg = loaded

		level, _ := config.ParseLevel(cfg.LogLevel)
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default riftrunner.yaml in . or $HOME)")
	rootCmd.PersistentFlags().Int64("seed", 0, "random seed; 0 draws a fresh one per run")
	rootCmd.PersistentFlags().String("db", "", "run journal path")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error")

	vp.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))
	vp.BindPFlag("db_path", rootCmd.PersistentFlags().Lookup("db"))
	vp.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// runSeed picks the seed for the i-th run of a command. A configured seed
// is offset per run so a batch stays reproducible.
func runSeed(i int) int64 {
	if cfg.Seed == 0 {
		return entropy.RandomSeed()
	}
	return cfg.Seed + int64(i)
}

// openJournal opens the run journal, or returns nil when journaling is off.
func openJournal() (*persistence.DB, error) {
	if !cfg.Journal {
		return nil, nil
	}
	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	slog.Debug("journal opened", "path", cfg.DBPath)
	return db, nil
}

// journalRun writes a finished run. A nil db is a no-op.
func journalRun(db *persistence.DB, sim *engine.Simulation, seed int64, started time.Time) (string, error) {
	if db == nil {
		return "", nil
	}
	rec := persistence.NewRunRecord(sim, seed, started, time.Now())
	if err := db.SaveRun(rec, sim.Events); err != nil {
		return "", err
	}
	if err := db.SaveMeta("last_run", rec.ID); err != nil {
		slog.Warn("journal meta not saved", "error", err)
	}
	return rec.ID, nil
}

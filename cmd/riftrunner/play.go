package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/talgya/rift-runner/internal/console"
	"github.com/talgya/rift-runner/internal/engine"
	"github.com/talgya/rift-runner/internal/entropy"
	"github.com/talgya/rift-runner/internal/minigame"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a run from the console",
	Long: `Starts an interactive run. Each command is one turn: the intent is applied,
then the world ticks.

` + console.Help,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")

		db, err := openJournal()
		if err != nil {
			return err
		}
		if db != nil {
			defer db.Close()
		}

		seed := runSeed(0)
		started := time.Now()
		sim := engine.NewSimulation(entropy.New(seed))
		slog.Info("run started", "seed", seed)

		p := &player{
			eng:    engine.NewEngine(sim),
			in:     bufio.NewScanner(cmd.InOrStdin()),
			out:    cmd.OutOrStdout(),
			render: console.Renderer{Styled: !plain},
		}
		p.loop()

		id, err := journalRun(db, sim, seed, started)
		if err != nil {
			return fmt.Errorf("journal run: %w", err)
		}
		if id != "" {
			fmt.Fprintf(p.out, "Run journaled as %s\n", id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Bool("plain", false, "render without colors")
}

// player runs the console read-apply-tick loop.
type player struct {
	eng    *engine.Engine
	in     *bufio.Scanner
	out    io.Writer
	render console.Renderer
}

func (p *player) loop() {
	sim := p.eng.Sim
	fmt.Fprintln(p.out, "Welcome to Rift Runner: Cosmic Conduits")
	fmt.Fprintln(p.out, console.Help)
	fmt.Fprintln(p.out, "Overmind: 'Runner, those three-eyed freaks are spitting mad!'")
	p.show()

	for !sim.Outcome.Terminal() {
		line, ok := p.prompt()
		if !ok {
			break
		}
		cmd, err := console.Parse(line)
		if errors.Is(err, console.ErrEmpty) {
			continue
		}
		if err != nil {
			fmt.Fprintf(p.out, "Invalid command: %v\n", err)
			continue
		}

		var intent engine.Intent
		switch cmd.Verb {
		case console.VerbQuit:
			fmt.Fprintln(p.out, p.render.Outcome(sim.Snapshot()))
			return
		case console.VerbHelp:
			fmt.Fprintln(p.out, console.Help)
			continue
		case console.VerbState:
			p.show()
			continue
		case console.VerbPick:
			fmt.Fprintln(p.out, "Type 'core' first to deal an entropy core board")
			continue
		case console.VerbDeploy:
			intent = engine.Deploy{At: cmd.At, Kind: cmd.Kind}
		case console.VerbCore:
			entangle, ok := p.entropyCore()
			if !ok {
				return
			}
			intent = entangle
		case console.VerbSkip:
		}

		p.step(intent)
	}

	fmt.Fprintln(p.out, p.render.Outcome(sim.Snapshot()))
}

// step applies one intent, ticks, and prints what happened.
func (p *player) step(intent engine.Intent) {
	sim := p.eng.Sim
	seen := sim.Recorded

	_, err := p.eng.Step(intent)
	var rej *engine.RejectionError
	switch {
	case errors.As(err, &rej):
		fmt.Fprintf(p.out, "Invalid deployment! Energy: %d Needed: %d (%v)\n", rej.Energy, rej.Cost, rej.Reason)
	case err != nil && engine.Rejected(err):
		fmt.Fprintf(p.out, "Entanglement failed: %v\n", err)
	case err != nil:
		fmt.Fprintf(p.out, "Turn failed: %v\n", err)
	}
	if e, ok := intent.(*engine.Entangle); ok && err == nil && !e.Skip {
		fmt.Fprintf(p.out, "Gained %d rift energy!\n", e.Result.Reward())
	}

	fmt.Fprint(p.out, p.render.Events(sim.EventsAfter(seen)))
	if !sim.Outcome.Terminal() {
		p.show()
	}
}

// entropyCore deals a board and reads the pair selection. It returns false
// when input ends.
func (p *player) entropyCore() (*engine.Entangle, bool) {
	board := minigame.NewBoard(p.eng.Sim.Source())
	fmt.Fprintln(p.out, p.render.EntropyCore(board))

	for {
		line, ok := p.prompt()
		if !ok {
			return nil, false
		}
		cmd, err := console.Parse(line)
		switch {
		case err == nil && cmd.Verb == console.VerbPick:
			return &engine.Entangle{Board: board, First: cmd.First, Second: cmd.Second}, true
		case err == nil && cmd.Verb == console.VerbSkip:
			return &engine.Entangle{Board: board, Skip: true}, true
		}
		fmt.Fprintln(p.out, "Invalid input: enter two indices (0-4) or 'skip'")
	}
}

func (p *player) prompt() (string, bool) {
	fmt.Fprint(p.out, "Enter command: ")
	if !p.in.Scan() {
		fmt.Fprintln(p.out)
		return "", false
	}
	return p.in.Text(), true
}

func (p *player) show() {
	snap := p.eng.Sim.Snapshot()
	fmt.Fprintln(p.out, p.render.Status(snap))
	fmt.Fprintln(p.out, p.render.Board(snap))
}

// Package engine provides the rift simulation and the turn loop that drives it.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Driver chooses the intent for the next tick from a snapshot.
// A nil intent means the player passes.
type Driver interface {
	Next(snap Snapshot) Intent
}

// DriverFunc adapts a function to Driver.
type DriverFunc func(snap Snapshot) Intent

func (f DriverFunc) Next(snap Snapshot) Intent {
	return f(snap)
}

// Engine drives a Simulation forward one turn at a time.
type Engine struct {
	Sim      *Simulation
	Tick     uint64        // Turns taken (monotonic)
	Interval time.Duration // Pause between turns in Run; 0 = as fast as possible
	MaxTicks uint64        // Run stops after this many turns; 0 = no limit

	// OnTick fires after every completed turn.
	OnTick func(tick uint64, sim *Simulation)
}

// NewEngine creates an engine for sim with default settings.
func NewEngine(sim *Simulation) *Engine {
	return &Engine{Sim: sim}
}

// Step applies intent (if any) and then runs one tick. A rejected intent is
// returned alongside the outcome but does not stop the tick, matching the
// console loop where a bad command still lets the world move.
func (e *Engine) Step(intent Intent) (Outcome, error) {
	if e.Sim.Outcome.Terminal() {
		return e.Sim.Outcome, ErrRunOver
	}

	var intentErr error
	if intent != nil {
		intentErr = intent.Apply(e.Sim)
		if intentErr != nil && !Rejected(intentErr) {
			return e.Sim.Outcome, intentErr
		}
	}

	if err := e.Sim.Update(); err != nil {
		return e.Sim.Outcome, err
	}
	e.Tick++

	if e.OnTick != nil {
		e.OnTick(e.Tick, e.Sim)
	}
	return e.Sim.Outcome, intentErr
}

// Run plays turns chosen by driver until the run ends, MaxTicks is reached,
// or ctx is cancelled. Cancellation is only observed between ticks.
func (e *Engine) Run(ctx context.Context, driver Driver) (Outcome, error) {
	slog.Debug("engine started", "tick", e.Tick, "interval", e.Interval)

	for !e.Sim.Outcome.Terminal() {
		if e.MaxTicks > 0 && e.Tick >= e.MaxTicks {
			break
		}
		if err := ctx.Err(); err != nil {
			return e.Sim.Outcome, err
		}

		start := time.Now()
		intent := driver.Next(e.Sim.Snapshot())
		if _, err := e.Step(intent); err != nil && !Rejected(err) {
			if errors.Is(err, ErrRunOver) {
				break
			}
			return e.Sim.Outcome, err
		}

		// Sleep for the remainder of the tick interval.
		if e.Interval > 0 {
			if elapsed := time.Since(start); elapsed < e.Interval {
				select {
				case <-ctx.Done():
					return e.Sim.Outcome, ctx.Err()
				case <-time.After(e.Interval - elapsed):
				}
			}
		}
	}

	slog.Debug("engine stopped", "tick", e.Tick, "outcome", e.Sim.Outcome)
	return e.Sim.Outcome, nil
}

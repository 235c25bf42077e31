package engine

import (
	"github.com/talgya/rift-runner/internal/entropy"
	"github.com/talgya/rift-runner/internal/world"
)

// quiet makes every Chance below 0.99 fail and every IntN return 0.
var quiet = entropy.Fixed{F: 0.99}

// newTestSim builds a cycle-1 run (base strength 1) and then switches it to
// src, so each test scripts only the draws it cares about.
func newTestSim(src entropy.Source) *Simulation {
	s := NewSimulation(quiet)
	s.rng = src
	return s
}

func hex(q, r int) world.HexCoord {
	return world.HexCoord{Q: q, R: r}
}

package engine

import (
	"github.com/talgya/rift-runner/internal/entropy"
	"github.com/talgya/rift-runner/internal/world"
)

// moveCore drifts the core shard to a random free neighbor 30% of the time.
// A slowed core stays put and shakes the acid off with a 50% chance.
func (s *Simulation) moveCore() {
	if s.CoreSlowed {
		if entropy.Chance(s.rng, 0.5) {
			s.CoreSlowed = false
			s.record("core", "acid wears off the core shard")
		}
		return
	}
	if !entropy.Chance(s.rng, 0.3) {
		return
	}

	var moves []world.HexCoord
	for _, n := range s.Core.Neighbors() {
		if s.vacant(n) {
			moves = append(moves, n)
		}
	}
	if len(moves) == 0 {
		return
	}
	s.Core = moves[s.rng.IntN(len(moves))]
	s.record("core", "core shard zips to %s", s.Core)
}

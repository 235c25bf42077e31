package engine

import (
	"log/slog"

	"github.com/talgya/rift-runner/internal/entropy"
	"github.com/talgya/rift-runner/internal/world"
)

// CycleThreshold is the cumulative dissolve count that completes a cycle.
func CycleThreshold(cycle int) int {
	return cycle * DissolvesPerCycle
}

// checkProgression advances at most one cycle per call. Passing MaxCycle
// ends the run in victory with no further change.
func (s *Simulation) checkProgression() {
	if s.Dissolved < CycleThreshold(s.Cycle) {
		return
	}
	s.Cycle++
	if s.Cycle > MaxCycle {
		s.Outcome = OutcomeVictory
		s.record("cycle", "cosmic victory: the three-eyed menace is dissolved")
		slog.Info("run won",
			"tick", s.LastTick,
			"dissolved", s.Dissolved,
			"rift_energy", s.RiftEnergy,
		)
		return
	}

	s.jumpToNextPlanet()

	bonus := entropy.Between(s.rng, 50, 100)
	s.RiftEnergy += bonus
	s.record("cycle", "cycle %d begins, +%d energy", s.Cycle, bonus)
	slog.Info("cycle advanced",
		"tick", s.LastTick,
		"cycle", s.Cycle,
		"planet", s.Planet().Name,
		"dissolved", s.Dissolved,
		"rift_energy", s.RiftEnergy,
	)
}

// jumpToNextPlanet moves to the next planet, creating it when the run has
// not been there yet, and resets all per-planet state. Dissolved is kept.
func (s *Simulation) jumpToNextPlanet() {
	s.CurrentPlanet++
	if s.CurrentPlanet >= len(s.Planets) {
		last := s.Planets[len(s.Planets)-1].Center
		center := last.Add(world.HexCoord{
			Q: entropy.Between(s.rng, 2, 4),
			R: entropy.Between(s.rng, -2, 2),
		})
		s.Planets = append(s.Planets, world.NewPlanet(s.Cycle, center, s.rng))
	}

	p := s.Planet()
	s.Core = p.Center
	clear(s.Fields)
	clear(s.Hostiles)
	clear(s.Stasis)
	s.CoreSlowed = false
	s.record("planet", "core shard bounces to %s at %s", p.Name, p.Center)
}

package engine

import (
	"github.com/talgya/rift-runner/internal/entropy"
	"github.com/talgya/rift-runner/internal/world"
)

// applyPlanetEffect runs the current planet's passive effect.
func (s *Simulation) applyPlanetEffect() {
	p := s.Planet()
	switch p.Archetype {
	case world.ArchetypeGloopers:
		if entropy.Chance(s.rng, 0.2) {
			boost := entropy.Between(s.rng, 10, 20)
			s.RiftEnergy += boost
			s.record("economy", "%s acid pools gift +%d energy", p.Name, boost)
		}
	case world.ArchetypeStaregazers:
		if entropy.Chance(s.rng, 0.15) && !s.shiftField() {
			s.SpawnWave()
		}
	case world.ArchetypeEyekings:
		if entropy.Chance(s.rng, 0.25) {
			s.SpawnWave()
		}
	}
}

// shiftField moves the first field (coordinate order) whose randomly chosen
// neighbor is free. Reports whether a field moved.
func (s *Simulation) shiftField() bool {
	for _, at := range world.SortedKeys(s.Fields) {
		neighbors := at.Neighbors()
		dest := neighbors[s.rng.IntN(len(neighbors))]
		if !s.vacant(dest) || dest == s.Core {
			continue
		}
		kind := s.Fields[at]
		delete(s.Fields, at)
		s.Fields[dest] = kind
		s.record("field", "%s shadows shift %s field to %s", s.Planet().Name, kind, dest)
		return true
	}
	return false
}

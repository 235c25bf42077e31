package engine

import (
	"github.com/talgya/rift-runner/internal/entropy"
	"github.com/talgya/rift-runner/internal/world"
)

// AmbushChance is the per-spawn chance of an extra hostile on non-Glooper planets.
const AmbushChance = 0.2

// SpawnChance is the probability of the regular spawn for a cycle.
// Values above 1 always fire.
func SpawnChance(cycle int) float64 {
	return 0.6 + float64(cycle)/15.0
}

// spawnable reports whether a hostile may appear at coord.
func (s *Simulation) spawnable(coord world.HexCoord) bool {
	return s.vacant(coord) && coord != s.Core
}

// SpawnWave runs one spawn event: the regular spawn on the first free planet
// hex (planet order) and, off Glooper worlds, a possible ambush on a random
// hex. Either is skipped silently when its hex is not free.
func (s *Simulation) SpawnWave() {
	p := s.Planet()

	if entropy.Chance(s.rng, SpawnChance(s.Cycle)) {
		for _, h := range p.Hexes {
			if !s.spawnable(h) {
				continue
			}
			essence := p.BaseStrength + s.rng.IntN(s.Cycle)
			s.Hostiles[h] = essence
			s.record("spawn", "%s emerges at %s with %d essence", p.Archetype, h, essence)
			break
		}
	}

	if p.Archetype == world.ArchetypeGloopers || !entropy.Chance(s.rng, AmbushChance) {
		return
	}
	h := p.Hexes[s.rng.IntN(len(p.Hexes))]
	if !s.spawnable(h) {
		return
	}
	essence := p.BaseStrength + entropy.Between(s.rng, 1, 3)
	s.Hostiles[h] = essence
	s.record("spawn", "jumpscare! %s ambushes at %s with %d essence", p.Archetype, h, essence)
}

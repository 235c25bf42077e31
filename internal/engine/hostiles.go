package engine

import (
	"github.com/talgya/rift-runner/internal/entropy"
	"github.com/talgya/rift-runner/internal/world"
)

type hostileMove struct {
	from, to world.HexCoord
}

// resolveHostiles lets every hostile spit acid and step toward the core.
// Moves and corrosions are queued and applied after the full scan, so the
// scan always sees start-of-phase positions.
func (s *Simulation) resolveHostiles() {
	archetype := s.Planet().Archetype

	var moves []hostileMove
	claimed := make(map[world.HexCoord]bool)
	corrode := make(map[world.HexCoord]bool)

	for _, h := range world.SortedKeys(s.Hostiles) {
		s.spitAcid(h, archetype, corrode)

		next := s.nextStep(h)
		if next == h {
			continue
		}
		if s.Stasis[next] {
			delete(s.Stasis, next)
			s.record("hostile", "%s pops stasis at %s", archetype, next)
			continue
		}
		if _, taken := s.Hostiles[next]; taken || claimed[next] {
			continue
		}
		claimed[next] = true
		moves = append(moves, hostileMove{from: h, to: next})
	}

	// Pull every mover out first so chains of moves resolve cleanly.
	essence := make([]int, len(moves))
	for i, m := range moves {
		essence[i] = s.Hostiles[m.from]
		delete(s.Hostiles, m.from)
	}
	for i, m := range moves {
		s.Hostiles[m.to] = essence[i]
	}

	for _, f := range world.SortedKeys(corrode) {
		if _, ok := s.Fields[f]; ok {
			delete(s.Fields, f)
			s.record("field", "acid corrodes field at %s", f)
		}
	}
}

// spitAcid is the ranged attack. Staregazers are distracted half the time.
// The first neighbor in scan order that is the core slows it; otherwise the
// first field whose corrosion roll succeeds is queued.
func (s *Simulation) spitAcid(h world.HexCoord, archetype world.Archetype, corrode map[world.HexCoord]bool) {
	if archetype == world.ArchetypeStaregazers && !entropy.Chance(s.rng, 0.5) {
		return
	}
	if !entropy.Chance(s.rng, 0.25) {
		return
	}
	for _, target := range h.Neighbors() {
		if target == s.Core {
			s.CoreSlowed = true
			s.record("hostile", "%s spits acid, core slowed at %s", archetype, target)
			return
		}
		if _, ok := s.Fields[target]; ok && entropy.Chance(s.rng, 0.3) {
			corrode[target] = true
			s.record("hostile", "%s spits acid on field at %s", archetype, target)
			return
		}
	}
}

// nextStep returns the on-planet, field-free neighbor closest to the core,
// or h itself when no neighbor is strictly closer. Ties keep the first
// neighbor in scan order.
func (s *Simulation) nextStep(h world.HexCoord) world.HexCoord {
	best := h
	bestDist := world.Distance(h, s.Core)
	for _, n := range h.Neighbors() {
		if !s.OnPlanet(n) {
			continue
		}
		if _, ok := s.Fields[n]; ok {
			continue
		}
		if d := world.Distance(n, s.Core); d < bestDist {
			best, bestDist = n, d
		}
	}
	return best
}

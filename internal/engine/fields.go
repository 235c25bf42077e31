package engine

import (
	"github.com/talgya/rift-runner/internal/entropy"
	"github.com/talgya/rift-runner/internal/world"
)

// TemporalRange is how far a Temporal field reaches for hostiles.
const TemporalRange = 2

// resolveFields runs every field's effect in coordinate order, then removes
// hostiles whose essence dropped to zero. A hostile hit by several fields is
// dissolved once.
func (s *Simulation) resolveFields() {
	doomed := make(map[world.HexCoord]bool)

	for _, at := range world.SortedKeys(s.Fields) {
		switch s.Fields[at] {
		case FieldPulse:
			s.pulse(at, doomed)
		case FieldWeave:
			s.weave(at, doomed)
		case FieldTemporal:
			s.temporal(at)
		}
	}

	for _, c := range world.SortedKeys(doomed) {
		if _, ok := s.Hostiles[c]; !ok {
			continue
		}
		delete(s.Hostiles, c)
		s.Dissolved++
		s.record("hostile", "%s melted at %s", s.Planet().Archetype, c)
	}
}

// pulse damages every hostile within a rolled radius of 1 or 2.
func (s *Simulation) pulse(at world.HexCoord, doomed map[world.HexCoord]bool) {
	radius := entropy.Between(s.rng, 1, 2)
	for _, h := range world.SortedKeys(s.Hostiles) {
		if world.Distance(at, h) > radius {
			continue
		}
		damage := entropy.Between(s.rng, 1, 4)
		s.Hostiles[h] -= damage
		s.record("field", "pulse field at %s zaps %d essence at %s", at, damage, h)
		if s.Hostiles[h] <= 0 {
			doomed[h] = true
		}
	}
}

// weave generates energy and sometimes disrupts the first hostile on the
// planet (planet hex order).
func (s *Simulation) weave(at world.HexCoord, doomed map[world.HexCoord]bool) {
	if !entropy.Chance(s.rng, 0.4) {
		return
	}
	energy := entropy.Between(s.rng, 10, 25)
	s.RiftEnergy += energy
	s.record("economy", "weave field at %s wove %d rift energy", at, energy)

	if !entropy.Chance(s.rng, 0.45) {
		return
	}
	for _, h := range s.Planet().Hexes {
		if _, ok := s.Hostiles[h]; !ok {
			continue
		}
		if entropy.Chance(s.rng, 0.3) {
			s.Hostiles[h]--
			s.record("field", "weave field disrupts hostile at %s", h)
			if s.Hostiles[h] <= 0 {
				doomed[h] = true
			}
		}
		return
	}
}

// temporal shifts the first nearby hostile that can be shifted, or failing
// that may drop a stasis marker next to the field.
func (s *Simulation) temporal(at world.HexCoord) {
	if !entropy.Chance(s.rng, 0.3) {
		return
	}

	moved := false
	for _, h := range world.SortedKeys(s.Hostiles) {
		essence := s.Hostiles[h]
		if essence <= 0 || world.Distance(at, h) > TemporalRange {
			continue
		}
		neighbors := h.Neighbors()
		dest := neighbors[s.rng.IntN(len(neighbors))]
		if !s.vacant(dest) {
			continue
		}
		delete(s.Hostiles, h)
		s.Hostiles[dest] = essence
		s.record("field", "temporal field shifts hostile from %s to %s", h, dest)
		moved = true
		break
	}

	if moved || !entropy.Chance(s.rng, 0.2) {
		return
	}
	for _, n := range at.Neighbors() {
		if s.OnPlanet(n) && !s.Stasis[n] {
			s.Stasis[n] = true
			s.record("field", "temporal field leaves stasis at %s", n)
			return
		}
	}
}

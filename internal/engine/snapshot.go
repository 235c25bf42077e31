package engine

import (
	"github.com/talgya/rift-runner/internal/world"
)

// PlanetView describes the current planet for display.
type PlanetView struct {
	Name         string         `json:"name" yaml:"name"`
	Cycle        int            `json:"cycle" yaml:"cycle"`
	Center       world.HexCoord `json:"center" yaml:"center"`
	Archetype    string         `json:"archetype" yaml:"archetype"`
	Effect       string         `json:"effect" yaml:"effect"`
	BaseStrength int            `json:"base_strength" yaml:"base_strength"`
	Hexes        []HexView      `json:"hexes" yaml:"hexes"`
}

// HexView is one planet hex with its surface terrain.
type HexView struct {
	Coord   world.HexCoord `json:"coord" yaml:"coord"`
	Terrain string         `json:"terrain" yaml:"terrain"`
}

// FieldView is a placed field.
type FieldView struct {
	Coord world.HexCoord `json:"coord" yaml:"coord"`
	Kind  FieldKind      `json:"kind" yaml:"kind"`
}

// HostileView is a hostile and its remaining essence.
type HostileView struct {
	Coord   world.HexCoord `json:"coord" yaml:"coord"`
	Essence int            `json:"essence" yaml:"essence"`
}

// Snapshot is a read-only copy of the run state for the presentation layer.
type Snapshot struct {
	Tick       uint64           `json:"tick" yaml:"tick"`
	Outcome    string           `json:"outcome" yaml:"outcome"`
	Planet     PlanetView       `json:"planet" yaml:"planet"`
	Planets    int              `json:"planets" yaml:"planets"`
	Fields     []FieldView      `json:"fields" yaml:"fields"`
	Hostiles   []HostileView    `json:"hostiles" yaml:"hostiles"`
	Stasis     []world.HexCoord `json:"stasis" yaml:"stasis"`
	Core       world.HexCoord   `json:"core" yaml:"core"`
	CoreSlowed bool             `json:"core_slowed" yaml:"core_slowed"`
	RiftEnergy int              `json:"rift_energy" yaml:"rift_energy"`
	Cycle      int              `json:"cycle" yaml:"cycle"`
	Dissolved  int              `json:"dissolved" yaml:"dissolved"`
	Costs      map[string]int   `json:"costs" yaml:"costs"` // Live quotes, re-rolled per snapshot
}

// Snapshot copies the current state. Costs are quoted fresh, which draws
// from the random source.
func (s *Simulation) Snapshot() Snapshot {
	p := s.Planet()
	snap := Snapshot{
		Tick:       s.LastTick,
		Outcome:    s.Outcome.String(),
		Planets:    len(s.Planets),
		Core:       s.Core,
		CoreSlowed: s.CoreSlowed,
		RiftEnergy: s.RiftEnergy,
		Cycle:      s.Cycle,
		Dissolved:  s.Dissolved,
		Costs:      make(map[string]int, len(FieldKinds)),
		Planet: PlanetView{
			Name:         p.Name,
			Cycle:        p.Cycle,
			Center:       p.Center,
			Archetype:    p.Archetype.String(),
			Effect:       p.Effect.Description(),
			BaseStrength: p.BaseStrength,
		},
	}

	for _, h := range p.Hexes {
		snap.Planet.Hexes = append(snap.Planet.Hexes, HexView{
			Coord:   h,
			Terrain: world.TerrainName(p.Surface.TerrainAt(h)),
		})
	}
	for _, c := range world.SortedKeys(s.Fields) {
		snap.Fields = append(snap.Fields, FieldView{Coord: c, Kind: s.Fields[c]})
	}
	for _, c := range world.SortedKeys(s.Hostiles) {
		snap.Hostiles = append(snap.Hostiles, HostileView{Coord: c, Essence: s.Hostiles[c]})
	}
	snap.Stasis = world.SortedKeys(s.Stasis)

	if !s.Outcome.Terminal() {
		for k, cost := range s.QuoteCosts() {
			snap.Costs[k.String()] = cost
		}
	}
	return snap
}

// HostileAt returns the essence of the hostile at c, if any.
func (snap Snapshot) HostileAt(c world.HexCoord) (int, bool) {
	for _, h := range snap.Hostiles {
		if h.Coord == c {
			return h.Essence, true
		}
	}
	return 0, false
}

// FieldAt returns the field at c, if any.
func (snap Snapshot) FieldAt(c world.HexCoord) (FieldKind, bool) {
	for _, f := range snap.Fields {
		if f.Coord == c {
			return f.Kind, true
		}
	}
	return 0, false
}

// HasStasis reports whether c carries a stasis marker.
func (snap Snapshot) HasStasis(c world.HexCoord) bool {
	for _, m := range snap.Stasis {
		if m == c {
			return true
		}
	}
	return false
}

// OnPlanet reports whether c is one of the current planet's hexes.
func (snap Snapshot) OnPlanet(c world.HexCoord) bool {
	for _, h := range snap.Planet.Hexes {
		if h.Coord == c {
			return true
		}
	}
	return false
}

// TerrainAt returns the terrain name of a planet hex, or "" off-planet.
func (snap Snapshot) TerrainAt(c world.HexCoord) string {
	for _, h := range snap.Planet.Hexes {
		if h.Coord == c {
			return h.Terrain
		}
	}
	return ""
}

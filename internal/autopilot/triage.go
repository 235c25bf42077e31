// Package autopilot plays runs without a human: it triages each snapshot,
// decides zero or one intent, and records what it did.
package autopilot

import (
	"golang.org/x/exp/slices"

	"github.com/talgya/rift-runner/internal/engine"
	"github.com/talgya/rift-runner/internal/world"
)

// Threat levels, most urgent first.
const (
	ThreatCritical = "CRITICAL" // A hostile is next to the core
	ThreatWarning  = "WARNING"  // A hostile is two hexes away
	ThreatWatch    = "WATCH"    // Hostiles on the planet, none close
	ThreatCalm     = "CALM"     // No hostiles
)

// Assessment holds derived signals computed from a snapshot.
// Deterministic and free of random draws.
type Assessment struct {
	Threat         string
	NearestHostile int // Hex distance from the core; -1 with no hostiles
	TotalEssence   int
	Hostiles       int
	Fields         map[engine.FieldKind]int
	FreeHexes      []world.HexCoord // Deployable hexes, closest to the core first
}

// Triage computes an Assessment from the snapshot's data.
func Triage(snap engine.Snapshot) *Assessment {
	a := &Assessment{
		NearestHostile: -1,
		Hostiles:       len(snap.Hostiles),
		Fields:         make(map[engine.FieldKind]int),
	}

	for _, h := range snap.Hostiles {
		a.TotalEssence += h.Essence
		d := world.Distance(h.Coord, snap.Core)
		if a.NearestHostile < 0 || d < a.NearestHostile {
			a.NearestHostile = d
		}
	}
	for _, f := range snap.Fields {
		a.Fields[f.Kind]++
	}

	for _, h := range snap.Planet.Hexes {
		c := h.Coord
		if c == snap.Core {
			continue
		}
		if _, ok := snap.FieldAt(c); ok {
			continue
		}
		if _, ok := snap.HostileAt(c); ok {
			continue
		}
		a.FreeHexes = append(a.FreeHexes, c)
	}
	// Closest to the core first; ties in coordinate order.
	sortByDistance(a.FreeHexes, snap.Core)

	switch {
	case a.NearestHostile < 0:
		a.Threat = ThreatCalm
	case a.NearestHostile <= 1:
		a.Threat = ThreatCritical
	case a.NearestHostile == 2:
		a.Threat = ThreatWarning
	default:
		a.Threat = ThreatWatch
	}

	return a
}

func sortByDistance(coords []world.HexCoord, from world.HexCoord) {
	slices.SortFunc(coords, func(a, b world.HexCoord) int {
		if d := world.Distance(a, from) - world.Distance(b, from); d != 0 {
			return d
		}
		return world.Compare(a, b)
	})
}

package autopilot

import (
	"fmt"

	"github.com/talgya/rift-runner/internal/engine"
	"github.com/talgya/rift-runner/internal/world"
)

// Actions a Decision can take.
const (
	ActionNone     = "none"
	ActionDeploy   = "deploy"
	ActionEntangle = "entangle"
)

// Decision is the pilot's choice for one turn.
type Decision struct {
	Action    string        `json:"action"`
	Rationale string        `json:"rationale"`
	Intent    engine.Intent `json:"-"`
}

// maxWeaves caps how many economy fields the pilot keeps on a planet.
const maxWeaves = 2

// Decide picks zero or one deploy for the snapshot. It only deploys what the
// worst-case quote can pay for, so the intent is never rejected for energy.
func Decide(snap engine.Snapshot, a *Assessment) Decision {
	none := func(why string) Decision {
		return Decision{Action: ActionNone, Rationale: why}
	}
	if len(a.FreeHexes) == 0 {
		return none("no free hex on the planet")
	}

	affordable := func(kind engine.FieldKind) bool {
		return snap.RiftEnergy >= engine.MaxCost(kind, snap.Cycle)
	}
	deploy := func(kind engine.FieldKind, at world.HexCoord, why string) Decision {
		return Decision{
			Action:    ActionDeploy,
			Rationale: fmt.Sprintf("%s: %s", a.Threat, why),
			Intent:    engine.Deploy{At: at, Kind: kind},
		}
	}

	switch a.Threat {
	case ThreatCritical, ThreatWarning:
		if affordable(engine.FieldPulse) {
			return deploy(engine.FieldPulse, bestPulseHex(snap, a), "pulse where it reaches the most essence")
		}
		return none("pulse needed but not affordable")

	case ThreatWatch:
		if a.Fields[engine.FieldTemporal] == 0 && affordable(engine.FieldTemporal) {
			return deploy(engine.FieldTemporal, bestPulseHex(snap, a), "temporal to scatter the approach")
		}
		if affordable(engine.FieldPulse) {
			return deploy(engine.FieldPulse, bestPulseHex(snap, a), "pulse ahead of the approach")
		}
		return none("saving energy")

	default:
		if a.Fields[engine.FieldWeave] < maxWeaves && affordable(engine.FieldWeave) {
			// Economy goes on the edge, away from the fighting.
			return deploy(engine.FieldWeave, a.FreeHexes[len(a.FreeHexes)-1], "weave while the planet is quiet")
		}
		return none("calm, nothing to build")
	}
}

// bestPulseHex returns the free hex with the most hostile essence within
// distance 2; ties go to the hex closest to the core.
func bestPulseHex(snap engine.Snapshot, a *Assessment) world.HexCoord {
	best := a.FreeHexes[0]
	bestScore := -1
	for _, c := range a.FreeHexes {
		score := 0
		for _, h := range snap.Hostiles {
			if world.Distance(c, h.Coord) <= 2 {
				score += h.Essence
			}
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

package autopilot

import (
	"log/slog"

	"github.com/talgya/rift-runner/internal/engine"
	"github.com/talgya/rift-runner/internal/entropy"
	"github.com/talgya/rift-runner/internal/minigame"
)

const maxRecords = 10

// Record captures what the pilot did on one turn.
type Record struct {
	Tick      uint64 `json:"tick"`
	Action    string `json:"action"`
	Threat    string `json:"threat"`
	Energy    int    `json:"rift_energy"`
	Rationale string `json:"rationale,omitempty"`
}

// Pilot is an engine.Driver that plays by the Decide policy. When it has
// nothing to deploy it can spend the turn on the entropy core instead.
type Pilot struct {
	EntropyCore bool // Play the bonus board on idle turns

	src     entropy.Source
	records []Record
}

// NewPilot creates a pilot that deals entropy core boards from src.
func NewPilot(src entropy.Source) *Pilot {
	return &Pilot{EntropyCore: true, src: src}
}

// Next implements engine.Driver.
func (p *Pilot) Next(snap engine.Snapshot) engine.Intent {
	a := Triage(snap)
	d := Decide(snap, a)

	if d.Action == ActionNone && p.EntropyCore {
		if intent, ok := p.entangle(); ok {
			d = Decision{Action: ActionEntangle, Rationale: d.Rationale + "; entropy core instead", Intent: intent}
		}
	}

	p.remember(Record{
		Tick:      snap.Tick,
		Action:    d.Action,
		Threat:    a.Threat,
		Energy:    snap.RiftEnergy,
		Rationale: d.Rationale,
	})
	slog.Debug("pilot decision", "tick", snap.Tick, "action", d.Action, "threat", a.Threat, "rationale", d.Rationale)
	return d.Intent
}

// entangle deals a board and selects its first matching pair, if any.
func (p *Pilot) entangle() (engine.Intent, bool) {
	board := minigame.NewBoard(p.src)
	for i := 0; i < minigame.SlotCount; i++ {
		for j := i + 1; j < minigame.SlotCount; j++ {
			if board.Slots[i] == board.Slots[j] {
				return &engine.Entangle{Board: board, First: i, Second: j}, true
			}
		}
	}
	return nil, false
}

func (p *Pilot) remember(r Record) {
	p.records = append(p.records, r)
	if len(p.records) > maxRecords {
		p.records = p.records[len(p.records)-maxRecords:]
	}
}

// Recent returns the most recent records, oldest first.
func (p *Pilot) Recent() []Record {
	out := make([]Record, len(p.records))
	copy(out, p.records)
	return out
}

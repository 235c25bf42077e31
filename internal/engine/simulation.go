// Simulation holds the complete run state and resolves it tick by tick.
package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/talgya/rift-runner/internal/entropy"
	"github.com/talgya/rift-runner/internal/world"
)

const (
	StartingEnergy    = 50
	MaxCycle          = 15 // Cycle 16 is victory
	DissolvesPerCycle = 3  // Cumulative dissolves needed per cycle level
	maxEvents         = 1000
)

// ErrRunOver is returned when acting on a run that already ended.
var ErrRunOver = errors.New("run is over")

// Outcome is the terminal state of a run.
type Outcome uint8

const (
	OutcomeRunning Outcome = iota
	OutcomeVictory         // Cycle passed MaxCycle
	OutcomeLoss            // A hostile reached the core shard
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeVictory:
		return "victory"
	case OutcomeLoss:
		return "loss"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run has ended.
func (o Outcome) Terminal() bool {
	return o != OutcomeRunning
}

// Event is a notable occurrence during a run.
type Event struct {
	Tick        uint64 `json:"tick" db:"tick"`
	Description string `json:"description" db:"description"`
	Category    string `json:"category" db:"category"` // "core", "field", "hostile", "spawn", "planet", "cycle", "economy", "deploy"
}

// Simulation holds the complete mutable world of one run.
// Only the Update phases and intent application mutate it.
type Simulation struct {
	Fields   map[world.HexCoord]FieldKind // One field per hex
	Hostiles map[world.HexCoord]int       // Hostile essence per hex
	Stasis   map[world.HexCoord]bool      // Stasis markers

	Planets       []*world.Planet // Append-only, visited in creation order
	CurrentPlanet int

	Core       world.HexCoord
	CoreSlowed bool

	RiftEnergy int
	Cycle      int
	Dissolved  int // Cumulative, never reset

	LastTick uint64
	Outcome  Outcome
	Events   []Event // Most recent events, trimmed to maxEvents
	Recorded int     // Events ever recorded, including trimmed ones

	rng entropy.Source
}

// NewSimulation creates a fresh run: one cycle-1 planet at the origin with the
// core shard on its center.
func NewSimulation(src entropy.Source) *Simulation {
	origin := world.HexCoord{}
	s := &Simulation{
		Fields:     make(map[world.HexCoord]FieldKind),
		Hostiles:   make(map[world.HexCoord]int),
		Stasis:     make(map[world.HexCoord]bool),
		Planets:    []*world.Planet{world.NewPlanet(1, origin, src)},
		Core:       origin,
		RiftEnergy: StartingEnergy,
		Cycle:      1,
		rng:        src,
	}
	return s
}

// Source returns the random source the simulation draws from.
func (s *Simulation) Source() entropy.Source {
	return s.rng
}

// Planet returns the current planet. An invalid index is an internal fault.
func (s *Simulation) Planet() *world.Planet {
	if s.CurrentPlanet < 0 || s.CurrentPlanet >= len(s.Planets) {
		panic(fmt.Sprintf("engine: planet index %d out of range (%d planets)", s.CurrentPlanet, len(s.Planets)))
	}
	return s.Planets[s.CurrentPlanet]
}

// OnPlanet reports whether coord belongs to the current planet.
func (s *Simulation) OnPlanet(coord world.HexCoord) bool {
	return s.Planet().Contains(coord)
}

// vacant reports whether coord is on-planet with no field and no hostile.
func (s *Simulation) vacant(coord world.HexCoord) bool {
	if !s.OnPlanet(coord) {
		return false
	}
	if _, ok := s.Fields[coord]; ok {
		return false
	}
	_, ok := s.Hostiles[coord]
	return !ok
}

// AddRiftEnergy credits the player unconditionally.
func (s *Simulation) AddRiftEnergy(amount int) {
	s.RiftEnergy += amount
	if amount > 0 {
		s.record("economy", "core shard absorbs +%d rift energy", amount)
	}
}

// Update resolves one full tick. Phases run in a fixed order because later
// phases observe earlier results.
func (s *Simulation) Update() error {
	if s.Outcome.Terminal() {
		return ErrRunOver
	}
	s.LastTick++

	s.SpawnWave()
	s.moveCore()
	s.resolveFields()
	s.resolveHostiles()
	s.applyPlanetEffect()
	s.checkProgression()
	if s.Outcome.Terminal() {
		return nil
	}
	s.checkLoss()
	return nil
}

// checkLoss ends the run when a hostile stands on the core shard.
func (s *Simulation) checkLoss() {
	if _, ok := s.Hostiles[s.Core]; ok {
		s.Outcome = OutcomeLoss
		s.record("core", "core shard consumed at %s", s.Core)
		slog.Info("run lost",
			"tick", s.LastTick,
			"cycle", s.Cycle,
			"dissolved", s.Dissolved,
			"rift_energy", s.RiftEnergy,
		)
	}
}

func (s *Simulation) record(category, format string, args ...any) {
	e := Event{
		Tick:        s.LastTick,
		Description: fmt.Sprintf(format, args...),
		Category:    category,
	}
	s.Events = append(s.Events, e)
	s.Recorded++
	if len(s.Events) > maxEvents {
		s.Events = s.Events[len(s.Events)-maxEvents:]
	}
	slog.Debug("event", "tick", e.Tick, "category", e.Category, "description", e.Description)
}

// EventsAfter returns the events recorded after the first n, as far as the
// trimmed log still holds them. Pair it with Recorded.
func (s *Simulation) EventsAfter(n int) []Event {
	fresh := s.Recorded - n
	if fresh <= 0 {
		return nil
	}
	if fresh > len(s.Events) {
		fresh = len(s.Events)
	}
	return s.Events[len(s.Events)-fresh:]
}

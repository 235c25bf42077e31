package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/rift-runner/internal/entropy"
	"github.com/talgya/rift-runner/internal/minigame"
	"github.com/talgya/rift-runner/internal/world"
)

func TestNewSimulation(t *testing.T) {
	s := NewSimulation(entropy.NewSeeded(9))

	assert.Equal(t, 1, s.Cycle)
	assert.Equal(t, StartingEnergy, s.RiftEnergy)
	assert.Equal(t, hex(0, 0), s.Core)
	require.Len(t, s.Planets, 1)
	assert.Equal(t, hex(0, 0), s.Planet().Center)
	assert.Empty(t, s.Fields)
	assert.Empty(t, s.Hostiles)
	assert.Empty(t, s.Stasis)
	assert.Equal(t, OutcomeRunning, s.Outcome)
}

func TestPlanetIndexPanics(t *testing.T) {
	s := newTestSim(quiet)
	s.CurrentPlanet = 4
	assert.Panics(t, func() { s.Planet() })
}

func TestLossWhenHostileReachesCore(t *testing.T) {
	s := newTestSim(quiet)
	s.Hostiles[hex(1, -1)] = 5

	require.NoError(t, s.Update())

	assert.Equal(t, OutcomeLoss, s.Outcome)
	assert.Equal(t, uint64(1), s.LastTick)
	assert.ErrorIs(t, s.Update(), ErrRunOver)
	assert.Equal(t, uint64(1), s.LastTick)
}

func TestQuietTickChangesNothing(t *testing.T) {
	s := newTestSim(quiet)
	require.NoError(t, s.Update())

	assert.Equal(t, OutcomeRunning, s.Outcome)
	assert.Empty(t, s.Hostiles)
	assert.Equal(t, StartingEnergy, s.RiftEnergy)
	assert.Equal(t, hex(0, 0), s.Core)
}

func TestCoreMovement(t *testing.T) {
	s := newTestSim(&entropy.Sequence{Floats: []float64{0.1}, Ints: []int{1}, Fallback: quiet})
	s.Fields[hex(1, 0)] = FieldPulse

	s.moveCore()

	// Free neighbors in order: (-1, 0), (0, 1), ...; index 1 is (0, 1).
	assert.Equal(t, hex(0, 1), s.Core)
}

func TestSlowedCoreStays(t *testing.T) {
	s := newTestSim(&entropy.Sequence{Floats: []float64{0.4}, Fallback: quiet})
	s.CoreSlowed = true

	s.moveCore()

	assert.Equal(t, hex(0, 0), s.Core)
	assert.False(t, s.CoreSlowed)
}

func TestEntangleIntent(t *testing.T) {
	s := newTestSim(entropy.Fixed{F: 0.0})
	board := minigame.NewBoardWith([minigame.SlotCount]minigame.Quantum{
		minigame.Alpha, minigame.Beta, minigame.Alpha, minigame.Gamma, minigame.Delta,
	})
	e := &Entangle{Board: board, First: 0, Second: 2}

	require.NoError(t, e.Apply(s))
	// Base 3 plus a bonus of 1.
	assert.Equal(t, 4, e.Result.Reward())
	assert.Equal(t, StartingEnergy+4, s.RiftEnergy)

	err := (&Entangle{Board: board, First: 0, Second: 2}).Apply(s)
	assert.ErrorIs(t, err, minigame.ErrInvalidSelection)
	assert.True(t, Rejected(err))
	assert.Equal(t, StartingEnergy+4, s.RiftEnergy)

	require.NoError(t, (&Entangle{Board: board, Skip: true}).Apply(s))
	assert.Equal(t, StartingEnergy+4, s.RiftEnergy)
}

func TestEventsAfter(t *testing.T) {
	s := newTestSim(quiet)
	s.AddRiftEnergy(5)
	seen := s.Recorded
	s.AddRiftEnergy(6)
	s.AddRiftEnergy(7)

	fresh := s.EventsAfter(seen)
	require.Len(t, fresh, 2)
	assert.Contains(t, fresh[1].Description, "+7")
	assert.Empty(t, s.EventsAfter(s.Recorded))
}

func TestEventLogTrimmed(t *testing.T) {
	s := newTestSim(quiet)
	for i := 0; i < maxEvents+25; i++ {
		s.AddRiftEnergy(1)
	}
	assert.Len(t, s.Events, maxEvents)
	assert.Equal(t, maxEvents+25, s.Recorded)
	assert.Len(t, s.EventsAfter(0), maxEvents)
}

// playRandomly deploys a random field on a random planet hex every tick and
// checks the per-tick progression invariants.
func playRandomly(t *testing.T, seed int64, maxTicks int) *Simulation {
	t.Helper()
	src := entropy.NewSeeded(seed)
	s := NewSimulation(src)

	for i := 0; i < maxTicks && !s.Outcome.Terminal(); i++ {
		p := s.Planet()
		at := p.Hexes[src.IntN(world.PlanetHexCount)]
		kind := FieldKinds[src.IntN(len(FieldKinds))]
		_, _ = s.DeployField(at, kind)

		cycle, dissolved, planets := s.Cycle, s.Dissolved, len(s.Planets)
		require.NoError(t, s.Update())

		require.GreaterOrEqual(t, s.Dissolved, dissolved, "dissolve count went down at tick %d", s.LastTick)

		advanced := s.Cycle != cycle
		if advanced {
			require.Equal(t, cycle+1, s.Cycle, "cycle skipped at tick %d", s.LastTick)
		}
		require.Equal(t, s.Dissolved >= CycleThreshold(cycle), advanced,
			"cycle gate at tick %d (dissolved %d, cycle %d)", s.LastTick, s.Dissolved, cycle)

		if advanced && s.Outcome != OutcomeVictory {
			require.Equal(t, planets+1, len(s.Planets))
			require.Equal(t, s.Planet().Center, s.Core)
			require.Empty(t, s.Stasis)
			require.False(t, s.CoreSlowed)
		}
		if s.Outcome == OutcomeLoss {
			require.Contains(t, s.Hostiles, s.Core)
		}
		require.Len(t, s.Planet().Hexes, world.PlanetHexCount)
	}
	return s
}

func TestRandomPlayInvariants(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		playRandomly(t, seed, 3000)
	}
}

func TestSeededRunsReplay(t *testing.T) {
	a := playRandomly(t, 77, 500)
	b := playRandomly(t, 77, 500)
	assert.Equal(t, a.Outcome, b.Outcome)
	assert.Equal(t, a.Events, b.Events)
	assert.Equal(t, a.RiftEnergy, b.RiftEnergy)
}

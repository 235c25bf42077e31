package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/rift-runner/internal/entropy"
)

func TestPulseDissolvesHostile(t *testing.T) {
	s := newTestSim(quiet)
	s.Fields[hex(1, 0)] = FieldPulse
	s.Hostiles[hex(2, -1)] = 1
	before := s.Dissolved

	s.resolveFields()

	assert.NotContains(t, s.Hostiles, hex(2, -1))
	assert.Equal(t, before+1, s.Dissolved)
}

func TestPulseRadiusAndDamage(t *testing.T) {
	// Radius 2 and 4 damage per hit.
	s := newTestSim(entropy.Fixed{F: 0.99, I: 3})
	s.Fields[hex(1, 0)] = FieldPulse
	s.Hostiles[hex(-1, 0)] = 9 // distance 2
	s.Hostiles[hex(0, 1)] = 3  // distance 1

	s.resolveFields()

	assert.Equal(t, 5, s.Hostiles[hex(-1, 0)])
	assert.NotContains(t, s.Hostiles, hex(0, 1))
	assert.Equal(t, 1, s.Dissolved)
}

func TestPulseOutOfRange(t *testing.T) {
	s := newTestSim(quiet) // radius 1
	s.Fields[hex(1, 0)] = FieldPulse
	s.Hostiles[hex(-1, 0)] = 1

	s.resolveFields()

	assert.Equal(t, 1, s.Hostiles[hex(-1, 0)])
	assert.Zero(t, s.Dissolved)
}

func TestHostileHitTwiceDissolvesOnce(t *testing.T) {
	// Radius 2, damage 2.
	s := newTestSim(entropy.Fixed{F: 0.99, I: 1})
	s.Fields[hex(-1, 0)] = FieldPulse
	s.Fields[hex(1, 0)] = FieldPulse
	s.Hostiles[hex(0, 1)] = 2

	s.resolveFields()

	assert.Empty(t, s.Hostiles)
	assert.Equal(t, 1, s.Dissolved)
}

func TestWeaveEnergyAndDisruption(t *testing.T) {
	s := newTestSim(&entropy.Sequence{
		Floats:   []float64{0.1, 0.1, 0.1},
		Ints:     []int{5},
		Fallback: quiet,
	})
	s.Fields[hex(1, -1)] = FieldWeave
	s.Hostiles[hex(0, 1)] = 1
	s.Hostiles[hex(-1, 0)] = 3
	energy := s.RiftEnergy

	s.resolveFields()

	assert.Equal(t, energy+15, s.RiftEnergy)
	// (-1, 0) comes before (0, 1) in planet hex order.
	assert.Equal(t, 2, s.Hostiles[hex(-1, 0)])
	assert.Equal(t, 1, s.Hostiles[hex(0, 1)])
}

func TestWeaveDisruptionMissStops(t *testing.T) {
	s := newTestSim(&entropy.Sequence{
		Floats:   []float64{0.1, 0.1, 0.5},
		Fallback: entropy.Fixed{F: 0.0},
	})
	s.Fields[hex(1, -1)] = FieldWeave
	s.Hostiles[hex(-1, 0)] = 1
	s.Hostiles[hex(0, 1)] = 1

	s.resolveFields()

	// The failed roll on the first hostile ends the disruption.
	assert.Len(t, s.Hostiles, 2)
	assert.Zero(t, s.Dissolved)
}

func TestWeaveIdle(t *testing.T) {
	s := newTestSim(quiet)
	s.Fields[hex(1, -1)] = FieldWeave
	energy := s.RiftEnergy

	s.resolveFields()

	assert.Equal(t, energy, s.RiftEnergy)
}

func TestTemporalShiftsHostile(t *testing.T) {
	s := newTestSim(&entropy.Sequence{
		Floats:   []float64{0.1},
		Ints:     []int{1}, // (0, 1) + (-1, 0)
		Fallback: quiet,
	})
	s.Fields[hex(1, 0)] = FieldTemporal
	s.Hostiles[hex(0, 1)] = 4

	s.resolveFields()

	assert.NotContains(t, s.Hostiles, hex(0, 1))
	assert.Equal(t, 4, s.Hostiles[hex(-1, 1)])
	assert.Empty(t, s.Stasis)
}

func TestTemporalBlockedDestination(t *testing.T) {
	s := newTestSim(&entropy.Sequence{
		Floats:   []float64{0.1, 0.9},
		Ints:     []int{0}, // (0, 1) + (1, 0) is off-planet
		Fallback: quiet,
	})
	s.Fields[hex(1, 0)] = FieldTemporal
	s.Hostiles[hex(0, 1)] = 4

	s.resolveFields()

	assert.Equal(t, 4, s.Hostiles[hex(0, 1)])
	assert.Empty(t, s.Stasis)
}

func TestTemporalDropsStasis(t *testing.T) {
	s := newTestSim(&entropy.Sequence{
		Floats:   []float64{0.1, 0.1},
		Fallback: quiet,
	})
	s.Fields[hex(1, 0)] = FieldTemporal

	s.resolveFields()

	// (2, 0) is off-planet, so the first on-planet neighbor is the center.
	require.Len(t, s.Stasis, 1)
	assert.True(t, s.Stasis[hex(0, 0)])
}

func TestFieldsResolveInCoordinateOrder(t *testing.T) {
	// Both weaves fire; the one at (-1, 0) resolves first and records first.
	s := newTestSim(&entropy.Sequence{
		Floats:   []float64{0.1, 0.9, 0.1, 0.9},
		Ints:     []int{0, 15},
		Fallback: quiet,
	})
	s.Fields[hex(1, -1)] = FieldWeave
	s.Fields[hex(-1, 0)] = FieldWeave

	s.resolveFields()

	require.Len(t, s.Events, 2)
	assert.Contains(t, s.Events[0].Description, "(-1, 0) wove 10")
	assert.Contains(t, s.Events[1].Description, "(1, -1) wove 25")
}

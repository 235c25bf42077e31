package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSnapshotCopiesState(t *testing.T) {
	s := newTestSim(quiet)
	s.Fields[hex(1, 0)] = FieldPulse
	s.Fields[hex(-1, 0)] = FieldWeave
	s.Hostiles[hex(0, 1)] = 4
	s.Stasis[hex(0, -1)] = true
	s.CoreSlowed = true

	snap := s.Snapshot()

	require.Len(t, snap.Fields, 2)
	assert.Equal(t, FieldView{Coord: hex(-1, 0), Kind: FieldWeave}, snap.Fields[0])
	assert.Equal(t, []HostileView{{Coord: hex(0, 1), Essence: 4}}, snap.Hostiles)
	assert.True(t, snap.HasStasis(hex(0, -1)))
	assert.True(t, snap.CoreSlowed)
	assert.Equal(t, "Slime Pits", snap.Planet.Name)
	assert.Len(t, snap.Planet.Hexes, 7)
	assert.Equal(t, "running", snap.Outcome)

	// Quotes with IntN = 0 sit at the bottom of each range.
	assert.Equal(t, map[string]int{"Pulse": 14, "Weave": 41, "Temporal": 58}, snap.Costs)

	kind, ok := snap.FieldAt(hex(1, 0))
	assert.True(t, ok)
	assert.Equal(t, FieldPulse, kind)
	_, ok = snap.HostileAt(hex(1, 0))
	assert.False(t, ok)
	assert.True(t, snap.OnPlanet(hex(1, -1)))
	assert.False(t, snap.OnPlanet(hex(2, 2)))
	assert.NotEmpty(t, snap.TerrainAt(hex(0, 0)))
	assert.Empty(t, snap.TerrainAt(hex(2, 2)))

	// Mutating the snapshot never reaches the simulation.
	snap.Hostiles[0].Essence = 99
	assert.Equal(t, 4, s.Hostiles[hex(0, 1)])
}

func TestSnapshotTerminalHasNoCosts(t *testing.T) {
	s := newTestSim(quiet)
	s.Outcome = OutcomeLoss
	snap := s.Snapshot()
	assert.Empty(t, snap.Costs)
	assert.Equal(t, "loss", snap.Outcome)
}

func TestSnapshotEncodes(t *testing.T) {
	s := newTestSim(quiet)
	s.Fields[hex(1, 0)] = FieldTemporal
	snap := s.Snapshot()

	js, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(js), `"kind":"Temporal"`)
	assert.Contains(t, string(js), `"rift_energy":50`)

	ym, err := yaml.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(ym), "kind: Temporal")
	assert.Contains(t, string(ym), "name: Slime Pits")
}

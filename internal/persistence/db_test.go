package persistence

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/rift-runner/internal/engine"
	"github.com/talgya/rift-runner/internal/entropy"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func finishedRun(t *testing.T, seed int64) *engine.Simulation {
	t.Helper()
	eng := engine.NewEngine(engine.NewSimulation(entropy.NewSeeded(seed)))
	eng.MaxTicks = 50
	for i := uint64(0); i < eng.MaxTicks && !eng.Sim.Outcome.Terminal(); i++ {
		_, err := eng.Step(nil)
		require.NoError(t, err)
	}
	return eng.Sim
}

func TestSaveAndReadRun(t *testing.T) {
	db := openTestDB(t)
	sim := finishedRun(t, 11)
	started := time.Unix(1700000000, 0)
	finished := started.Add(3 * time.Second)

	rec := NewRunRecord(sim, 11, started, finished)
	require.NotEmpty(t, rec.ID)
	require.NoError(t, db.SaveRun(rec, sim.Events))

	got, err := db.GetRun(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)
	assert.Equal(t, finished, got.Finished())
	assert.Equal(t, sim.Outcome.String(), got.Outcome)

	visits, err := got.Planets()
	require.NoError(t, err)
	require.Len(t, visits, len(sim.Planets))
	assert.Equal(t, "Slime Pits", visits[0].Name)
	assert.Equal(t, "Gloopers", visits[0].Hostile)

	events, err := db.RunEvents(rec.ID, 10000)
	require.NoError(t, err)
	require.Len(t, events, len(sim.Events))
	for i := range events {
		assert.Equal(t, sim.Events[i], events[i])
	}
}

func TestRunEventsLimit(t *testing.T) {
	db := openTestDB(t)
	events := []engine.Event{
		{Tick: 1, Description: "a", Category: "spawn"},
		{Tick: 2, Description: "b", Category: "field"},
		{Tick: 3, Description: "c", Category: "core"},
	}
	rec := RunRecord{ID: "run-1", Outcome: "loss", PlanetsJSON: "[]"}
	require.NoError(t, db.SaveRun(rec, events))

	got, err := db.RunEvents("run-1", 2)
	require.NoError(t, err)
	assert.Equal(t, events[:2], got)
}

func TestRecentRunsAndStats(t *testing.T) {
	db := openTestDB(t)
	base := time.Unix(1700000000, 0)

	runs := []RunRecord{
		{ID: "a", Outcome: "loss", Cycle: 3, FinishedAt: base.Unix(), PlanetsJSON: "[]"},
		{ID: "b", Outcome: "victory", Cycle: 16, FinishedAt: base.Add(time.Minute).Unix(), PlanetsJSON: "[]"},
		{ID: "c", Outcome: "running", Cycle: 7, FinishedAt: base.Add(2 * time.Minute).Unix(), PlanetsJSON: "[]"},
	}
	for _, r := range runs {
		require.NoError(t, db.SaveRun(r, nil))
	}

	recent, err := db.RecentRuns(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "c", recent[0].ID)
	assert.Equal(t, "b", recent[1].ID)

	st, err := db.Stats()
	require.NoError(t, err)
	assert.Equal(t, RunStats{Runs: 3, Victories: 1, BestCycle: 16}, st)
}

func TestStatsEmptyJournal(t *testing.T) {
	st, err := openTestDB(t).Stats()
	require.NoError(t, err)
	assert.Equal(t, RunStats{}, st)
}

func TestDuplicateRunRejected(t *testing.T) {
	db := openTestDB(t)
	rec := RunRecord{ID: "dup", Outcome: "loss", PlanetsJSON: "[]"}
	require.NoError(t, db.SaveRun(rec, nil))
	assert.Error(t, db.SaveRun(rec, []engine.Event{{Tick: 1, Description: "x", Category: "core"}}))

	events, err := db.RunEvents("dup", 10)
	require.NoError(t, err)
	assert.Empty(t, events, "failed save rolls back")
}

func TestGetMissingRun(t *testing.T) {
	_, err := openTestDB(t).GetRun("nope")
	assert.Error(t, err)
}

func TestMeta(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.SaveMeta("last_run", "a"))
	require.NoError(t, db.SaveMeta("last_run", "b"))

	v, err := db.GetMeta("last_run")
	require.NoError(t, err)
	assert.Equal(t, "b", v)

	_, err = db.GetMeta("missing")
	assert.Error(t, err)
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.SaveRun(RunRecord{ID: "keep", Outcome: "loss", PlanetsJSON: "[]"}, nil))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	runs, err := db.RecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "keep", runs[0].ID)
}

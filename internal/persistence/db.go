// Package persistence provides the SQLite run journal: one row per finished
// run plus its event log. The journal is written for reporting only; a run
// is never restored from it.
package persistence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/rift-runner/internal/engine"
)

// DB wraps a SQLite connection for the run journal.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		cycle INTEGER NOT NULL,
		dissolved INTEGER NOT NULL,
		rift_energy INTEGER NOT NULL,
		ticks INTEGER NOT NULL,
		planets_json TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS journal_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_run ON events(run_id, tick);
	CREATE INDEX IF NOT EXISTS idx_runs_finished ON runs(finished_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// PlanetVisit is one planet a run reached.
type PlanetVisit struct {
	Name    string `json:"name"`
	Cycle   int    `json:"cycle"`
	Q       int    `json:"q"`
	R       int    `json:"r"`
	Hostile string `json:"hostile"`
}

// RunRecord is a finished (or abandoned) run.
type RunRecord struct {
	ID          string `db:"id"`
	Seed        int64  `db:"seed"`
	Outcome     string `db:"outcome"`
	Cycle       int    `db:"cycle"`
	Dissolved   int    `db:"dissolved"`
	RiftEnergy  int    `db:"rift_energy"`
	Ticks       uint64 `db:"ticks"`
	PlanetsJSON string `db:"planets_json"`
	StartedAt   int64  `db:"started_at"`
	FinishedAt  int64  `db:"finished_at"`
}

// Started returns the start time.
func (r RunRecord) Started() time.Time {
	return time.Unix(r.StartedAt, 0)
}

// Finished returns the finish time.
func (r RunRecord) Finished() time.Time {
	return time.Unix(r.FinishedAt, 0)
}

// Planets decodes the visited planet list.
func (r RunRecord) Planets() ([]PlanetVisit, error) {
	var visits []PlanetVisit
	if err := json.Unmarshal([]byte(r.PlanetsJSON), &visits); err != nil {
		return nil, fmt.Errorf("decode planets of run %s: %w", r.ID, err)
	}
	return visits, nil
}

// NewRunRecord summarizes a simulation into a record with a fresh ID.
func NewRunRecord(sim *engine.Simulation, seed int64, started, finished time.Time) RunRecord {
	visits := make([]PlanetVisit, 0, len(sim.Planets))
	for _, p := range sim.Planets {
		visits = append(visits, PlanetVisit{
			Name:    p.Name,
			Cycle:   p.Cycle,
			Q:       p.Center.Q,
			R:       p.Center.R,
			Hostile: p.Archetype.String(),
		})
	}
	planetsJSON, _ := json.Marshal(visits)

	return RunRecord{
		ID:          uuid.NewString(),
		Seed:        seed,
		Outcome:     sim.Outcome.String(),
		Cycle:       sim.Cycle,
		Dissolved:   sim.Dissolved,
		RiftEnergy:  sim.RiftEnergy,
		Ticks:       sim.LastTick,
		PlanetsJSON: string(planetsJSON),
		StartedAt:   started.Unix(),
		FinishedAt:  finished.Unix(),
	}
}

// SaveRun writes a run and its events in one transaction.
func (db *DB) SaveRun(rec RunRecord, events []engine.Event) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExec(`INSERT INTO runs
		(id, seed, outcome, cycle, dissolved, rift_energy, ticks, planets_json, started_at, finished_at)
		VALUES (:id, :seed, :outcome, :cycle, :dissolved, :rift_energy, :ticks, :planets_json, :started_at, :finished_at)`,
		rec,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", rec.ID, err)
	}

	if len(events) > 0 {
		stmt, err := tx.Preparex("INSERT INTO events (run_id, tick, description, category) VALUES (?, ?, ?, ?)")
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, e := range events {
			if _, err := stmt.Exec(rec.ID, e.Tick, e.Description, e.Category); err != nil {
				return fmt.Errorf("insert event for run %s: %w", rec.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Debug("run journaled", "id", rec.ID, "outcome", rec.Outcome, "events", len(events))
	return nil
}

// RecentRuns returns the most recently finished runs, newest first.
func (db *DB) RecentRuns(limit int) ([]RunRecord, error) {
	var runs []RunRecord
	err := db.conn.Select(&runs,
		"SELECT * FROM runs ORDER BY finished_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	return runs, err
}

// GetRun returns one run by ID.
func (db *DB) GetRun(id string) (RunRecord, error) {
	var run RunRecord
	err := db.conn.Get(&run, "SELECT * FROM runs WHERE id = ?", id)
	if err != nil {
		return run, fmt.Errorf("get run %s: %w", id, err)
	}
	return run, nil
}

// RunEvents returns a run's events in tick order.
func (db *DB) RunEvents(runID string, limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT tick, description, category FROM events WHERE run_id = ? ORDER BY id ASC LIMIT ?",
		runID, limit,
	)
	return events, err
}

// RunStats aggregates the journal.
type RunStats struct {
	Runs      int `db:"runs"`
	Victories int `db:"victories"`
	BestCycle int `db:"best_cycle"`
}

// Stats returns aggregate numbers over every journaled run.
func (db *DB) Stats() (RunStats, error) {
	var st RunStats
	err := db.conn.Get(&st, `SELECT
		COUNT(*) AS runs,
		COALESCE(SUM(CASE WHEN outcome = 'victory' THEN 1 ELSE 0 END), 0) AS victories,
		COALESCE(MAX(cycle), 0) AS best_cycle
		FROM runs`)
	return st, err
}

// SaveMeta stores a key-value pair in journal metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO journal_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM journal_meta WHERE key = ?", key)
	return value, err
}

// Package persistence stores run results: a SQLite run store for querying
// across a sweep, and one series file per grid cell.
package persistence

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/signal-norms/internal/engine"
)

// RunRecord describes one completed grid cell.
type RunRecord struct {
	ID          string  `db:"id" json:"id"`
	WeightIndex int     `db:"weight_index" json:"weight_index"`
	InitIndex   int     `db:"init_index" json:"init_index"`
	Weight      int     `db:"weight" json:"weight"`
	InitialA1   float64 `db:"initial_a1" json:"initial_a1"`
	PopSize     int     `db:"pop_size" json:"pop_size"`
	Rounds      int     `db:"rounds" json:"rounds"`
	PropType1   float64 `db:"prop_type1" json:"prop_type1"`
	Seed        int64   `db:"seed" json:"seed"`
	FullScan    bool    `db:"full_scan" json:"full_scan"`
	CreatedAt   string  `db:"created_at" json:"created_at"`
}

// DB wraps a SQLite connection holding runs and their series.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Sweep workers share the handle; SQLite takes one writer at a time.
	conn.SetMaxOpenConns(1)

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
		weight_index INTEGER NOT NULL,
		init_index INTEGER NOT NULL,
		weight INTEGER NOT NULL,
		initial_a1 REAL NOT NULL,
		pop_size INTEGER NOT NULL,
		rounds INTEGER NOT NULL,
		prop_type1 REAL NOT NULL,
		seed INTEGER NOT NULL,
		full_scan INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS series (
		run_id TEXT NOT NULL REFERENCES runs(id),
		round INTEGER NOT NULL,
		stat TEXT NOT NULL,
		value REAL NOT NULL,
		PRIMARY KEY (run_id, stat, round)
	);

	CREATE TABLE IF NOT EXISTS sweep_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_cell ON runs(weight_index, init_index);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun writes a run and its full series in one transaction.
func (db *DB) SaveRun(rec RunRecord, series *engine.Series) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExec(`INSERT INTO runs
		(id, weight_index, init_index, weight, initial_a1, pop_size, rounds,
		 prop_type1, seed, full_scan, created_at)
		VALUES (:id, :weight_index, :init_index, :weight, :initial_a1, :pop_size, :rounds,
		 :prop_type1, :seed, :full_scan, :created_at)`, rec)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", rec.ID, err)
	}

	stmt, err := tx.Preparex("INSERT INTO series (run_id, round, stat, value) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for round, snap := range series.Snapshots {
		for _, st := range snap.Stats() {
			if _, err := stmt.Exec(rec.ID, round, st.Name, st.Value); err != nil {
				return fmt.Errorf("insert series %s round %d: %w", rec.ID, round, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Debug("run stored", "id", rec.ID, "rounds", series.Len())
	return nil
}

// Runs returns every stored run ordered by grid cell.
func (db *DB) Runs() ([]RunRecord, error) {
	var runs []RunRecord
	err := db.conn.Select(&runs, `SELECT id, weight_index, init_index, weight, initial_a1,
		pop_size, rounds, prop_type1, seed, full_scan, created_at
		FROM runs ORDER BY weight_index, init_index, created_at`)
	return runs, err
}

// LoadSeries returns the stored series of a run keyed by statistic name.
func (db *DB) LoadSeries(runID string) (map[string][]float64, error) {
	var rows []struct {
		Round int     `db:"round"`
		Stat  string  `db:"stat"`
		Value float64 `db:"value"`
	}
	err := db.conn.Select(&rows,
		"SELECT round, stat, value FROM series WHERE run_id = ? ORDER BY stat, round",
		runID,
	)
	if err != nil {
		return nil, err
	}

	cols := make(map[string][]float64)
	for _, r := range rows {
		cols[r.Stat] = append(cols[r.Stat], r.Value)
	}
	return cols, nil
}

// SaveMeta stores a key-value pair describing the sweep.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO sweep_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM sweep_meta WHERE key = ?", key)
	return value, err
}

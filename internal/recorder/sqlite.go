package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS evaluations (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp       INTEGER NOT NULL,
			variant         TEXT,
			name            TEXT,
			character_level INTEGER,
			proficiency     TEXT,
			boon            INTEGER,
			band            TEXT,
			difficulty      INTEGER,
			initial_level   INTEGER,
			modified_level  INTEGER,
			unresolved      INTEGER,
			days            INTEGER,
			per_day         TEXT,
			total           TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_ts ON evaluations(timestamp)`,

		`CREATE TABLE IF NOT EXISTS table_loads (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			source     TEXT,
			provenance TEXT,
			row_count  INTEGER,
			skipped    INTEGER,
			ok         INTEGER,
			err_text   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_table_loads_ts ON table_loads(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordEvaluation stores a resolved evaluation. Amounts are stored as
// decimal text so they read back exactly.
func (r *SQLiteRecorder) RecordEvaluation(evt *EvaluationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	in, res := evt.Input, evt.Result
	_, err := r.db.Exec(`INSERT INTO evaluations
		(timestamp, variant, name, character_level, proficiency, boon, band,
		 difficulty, initial_level, modified_level, unresolved, days, per_day, total)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Variant, res.Name, in.CharacterLevel,
		res.Proficiency.Key(), boolInt(res.Boon), res.Band.Key(),
		res.Difficulty, res.InitialLevel, res.ModifiedLevel, boolInt(res.Unresolved),
		res.Days, res.PerDay.String(), res.Total.String(),
	)
	return err
}

func (r *SQLiteRecorder) RecordTableLoad(evt *TableLoadEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ok, msg := 1, ""
	if evt.Err != nil {
		ok, msg = 0, evt.Err.Error()
	}
	_, err := r.db.Exec(`INSERT INTO table_loads
		(timestamp, source, provenance, row_count, skipped, ok, err_text)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Source, evt.Provenance, evt.Rows, evt.Skipped, ok, msg,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

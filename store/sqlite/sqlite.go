/*
Package sqlite persists simulation runs in SQLite.

PURPOSE:
  Every API simulation stores its request document and resulting ledger so
  runs can be listed and replayed later. The table is append-only: runs
  are immutable records of what the engine computed at a point in time.

KEY TABLE:
  simulation_runs: one row per Simulate call, holding the request and
  ledger as JSON plus denormalized totals for listing without decoding.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers don't
  block and crash recovery is better.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety across the single connection.

USAGE:
  store, err := sqlite.New("./data/training.db")
  if err != nil { log.Fatal(err) }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). Use ":memory:" for tests.
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// RunRecord is one persisted simulation run. RequestJSON and LedgerJSON
// are stored verbatim; infinite durations are already encoded as null by
// the API's DTO layer, so the stored JSON is always valid.
type RunRecord struct {
	ID          string
	CreatedAt   time.Time
	PlanName    string
	CloneState  string
	SkillCount  int
	RequestJSON string
	LedgerJSON  string

	TotalBaseHours   float64
	TotalActualHours float64
	TotalSavedHours  float64
}

// Store persists simulation runs in SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Simulation runs (append-only)
	CREATE TABLE IF NOT EXISTS simulation_runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		plan_name TEXT,
		clone_state TEXT NOT NULL,
		skill_count INTEGER NOT NULL,
		request_json TEXT NOT NULL,
		ledger_json TEXT NOT NULL,
		total_base_hours REAL,
		total_actual_hours REAL,
		total_saved_hours REAL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created_at
		ON simulation_runs(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun inserts a run record.
func (s *Store) SaveRun(ctx context.Context, run RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO simulation_runs
			(id, created_at, plan_name, clone_state, skill_count,
			 request_json, ledger_json,
			 total_base_hours, total_actual_hours, total_saved_hours)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.UTC().Format(time.RFC3339Nano), run.PlanName,
		run.CloneState, run.SkillCount, run.RequestJSON, run.LedgerJSON,
		run.TotalBaseHours, run.TotalActualHours, run.TotalSavedHours,
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

// GetRun returns one run by id, or nil when it doesn't exist.
func (s *Store) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, plan_name, clone_state, skill_count,
		       request_json, ledger_json,
		       total_base_hours, total_actual_hours, total_saved_hours
		FROM simulation_runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, plan_name, clone_state, skill_count,
		       request_json, ledger_json,
		       total_base_hours, total_actual_hours, total_saved_hours
		FROM simulation_runs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*RunRecord, error) {
	var run RunRecord
	var createdAt string
	var planName sql.NullString
	err := row.Scan(&run.ID, &createdAt, &planName, &run.CloneState,
		&run.SkillCount, &run.RequestJSON, &run.LedgerJSON,
		&run.TotalBaseHours, &run.TotalActualHours, &run.TotalSavedHours)
	if err != nil {
		return nil, err
	}
	run.PlanName = planName.String
	run.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &run, nil
}

// Package storage provides SQLite-backed persistence for the optional run
// archive: completed runs and their per-scenario outcomes.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rewired-gh/dcabench/internal/models"
	_ "modernc.org/sqlite"
)

// Storage wraps a SQLite database for all persistence operations.
type Storage struct {
	db      *sql.DB
	maxRuns int
}

// New opens or creates the SQLite database at dbPath.
// An empty dbPath defaults to $TMPDIR/dcabench/data.db.
func New(maxRuns int, dbPath string) (*Storage, error) {
	if dbPath == "" {
		dbPath = filepath.Join(os.TempDir(), "dcabench", "data.db")
	}
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // single writer; WAL allows concurrent readers
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys=ON`); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	s := &Storage{db: db, maxRuns: maxRuns}
	if err := s.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) createTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id           TEXT PRIMARY KEY,
			created_at   INTEGER NOT NULL,
			months       INTEGER NOT NULL,
			trend_count  INTEGER NOT NULL,
			crash_count  INTEGER NOT NULL,
			total        INTEGER NOT NULL,
			all_in_wins  INTEGER NOT NULL,
			dca_wins     INTEGER NOT NULL,
			ties         INTEGER NOT NULL,
			duration_ms  INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS scenario_results (
			run_id        TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq           INTEGER NOT NULL,
			crash_month   INTEGER NOT NULL,
			crash         REAL NOT NULL,
			pre_trend     REAL NOT NULL,
			post_trend    REAL NOT NULL,
			plateau       INTEGER NOT NULL DEFAULT 0,
			all_in_shares REAL NOT NULL,
			dca_shares    REAL NOT NULL,
			winner        TEXT NOT NULL,
			PRIMARY KEY (run_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// SaveRun inserts a run and its per-scenario results in one transaction and
// enforces the run cap. The return sequences themselves are reproducible
// from the run parameters and are not stored.
func (s *Storage) SaveRun(rec models.RunRecord, results []models.ScenarioResult) error {
	if rec.ID == "" {
		return fmt.Errorf("run record must carry an ID")
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.Exec(`
		INSERT INTO runs
			(id, created_at, months, trend_count, crash_count,
			 total, all_in_wins, dca_wins, ties, duration_ms)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		rec.ID, rec.CreatedAt.UnixNano(), rec.Months, rec.TrendCount, rec.CrashCount,
		rec.Tally.Total, rec.Tally.AllIn, rec.Tally.DCA, rec.Tally.Ties,
		rec.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO scenario_results
			(run_id, seq, crash_month, crash, pre_trend, post_trend,
			 plateau, all_in_shares, dca_shares, winner)
		VALUES (?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare result insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range results {
		_, err := stmt.Exec(
			rec.ID, i, r.Scenario.CrashMonth, r.Scenario.Crash,
			r.Scenario.PreTrend, r.Scenario.PostTrend, boolToInt(r.Scenario.Plateau),
			r.AllInShares, r.DCAShares, string(r.Winner),
		)
		if err != nil {
			return fmt.Errorf("failed to insert result %d: %w", i, err)
		}
	}

	if _, err = tx.Exec(`
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY created_at DESC LIMIT ?
		)`, s.maxRuns); err != nil {
		return fmt.Errorf("failed to enforce run cap: %w", err)
	}

	return tx.Commit()
}

// GetRun loads one run record by ID.
func (s *Storage) GetRun(id string) (*models.RunRecord, error) {
	row := s.db.QueryRow(`SELECT `+runCols+` FROM runs WHERE id = ?`, id)
	rec, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return rec, nil
}

// ListRuns returns up to limit runs, newest first.
func (s *Storage) ListRuns(limit int) ([]models.RunRecord, error) {
	rows, err := s.db.Query(`SELECT `+runCols+` FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()
	runs := []models.RunRecord{}
	for rows.Next() {
		rec, err := scanRun(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *rec)
	}
	return runs, rows.Err()
}

// ResultsForRun loads the per-scenario outcomes of one run in insertion
// order. The returned scenarios carry their generating parameters but no
// materialized return sequence.
func (s *Storage) ResultsForRun(runID string) ([]models.ScenarioResult, error) {
	rows, err := s.db.Query(`
		SELECT crash_month, crash, pre_trend, post_trend, plateau,
		       all_in_shares, dca_shares, winner
		FROM scenario_results WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results []models.ScenarioResult
	for rows.Next() {
		var r models.ScenarioResult
		var plateau int
		var winner string
		err := rows.Scan(
			&r.Scenario.CrashMonth, &r.Scenario.Crash,
			&r.Scenario.PreTrend, &r.Scenario.PostTrend, &plateau,
			&r.AllInShares, &r.DCAShares, &winner,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		r.Scenario.Plateau = plateau != 0
		r.Winner = models.Winner(winner)
		results = append(results, r)
	}
	return results, rows.Err()
}

// RotateRuns keeps at most maxRuns newest runs by created_at. Cascading
// deletes remove their scenario results.
func (s *Storage) RotateRuns() error {
	_, err := s.db.Exec(`
		DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY created_at DESC LIMIT ?
		)`, s.maxRuns)
	if err != nil {
		return fmt.Errorf("failed to rotate runs: %w", err)
	}
	return nil
}

const runCols = `id, created_at, months, trend_count, crash_count,
	total, all_in_wins, dca_wins, ties, duration_ms`

func scanRun(scan func(...any) error) (*models.RunRecord, error) {
	var rec models.RunRecord
	var createdAtNano, durationMs int64
	err := scan(
		&rec.ID, &createdAtNano, &rec.Months, &rec.TrendCount, &rec.CrashCount,
		&rec.Tally.Total, &rec.Tally.AllIn, &rec.Tally.DCA, &rec.Tally.Ties,
		&durationMs,
	)
	if err != nil {
		return nil, err
	}
	rec.CreatedAt = time.Unix(0, createdAtNano)
	rec.Duration = time.Duration(durationMs) * time.Millisecond
	return &rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Package sqlite persists harness run history to a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	stdSync "sync"
	"time"

	kiterrors "github.com/c0deZ3R0/go-conflict-kit/errors"
	"github.com/c0deZ3R0/go-conflict-kit/logging"

	// Go SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

// ErrStoreClosed is returned by operations on a closed store.
var ErrStoreClosed = errors.New("run store is closed")

// Run is one persisted RunAll invocation with its per-suite breakdown.
type Run struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Total     int
	Passed    int
	Failed    int
	Suites    []SuiteResult
}

// SuiteResult is the per-suite slice of a persisted run.
type SuiteResult struct {
	Suite    string
	Total    int
	Passed   int
	Failed   int
	Duration time.Duration
}

// Config holds configuration options for the RunStore.
type Config struct {
	// DataSourceName is the connection string for the SQLite database.
	DataSourceName string

	// EnableWAL enables Write-Ahead Logging mode for better concurrency.
	// When true, automatically appends "?_journal_mode=WAL" to DataSourceName.
	EnableWAL bool

	// Connection pool settings.
	// Defaults: MaxOpen=5, MaxIdle=2, Lifetime=1h, IdleTime=5m
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func (c *Config) setDefaults() {
	if c.MaxOpenConns == 0 {
		c.MaxOpenConns = 5
	}
	if c.MaxIdleConns == 0 {
		c.MaxIdleConns = 2
	}
	if c.ConnMaxLifetime == 0 {
		c.ConnMaxLifetime = time.Hour
	}
	if c.ConnMaxIdleTime == 0 {
		c.ConnMaxIdleTime = 5 * time.Minute
	}
	if c.EnableWAL {
		if !strings.Contains(c.DataSourceName, "?_journal_mode=") {
			c.DataSourceName += "?_journal_mode=WAL"
		}
	}
}

// DefaultConfig returns a Config with WAL enabled and pool defaults applied.
func DefaultConfig(dataSourceName string) *Config {
	config := &Config{
		DataSourceName: dataSourceName,
		EnableWAL:      true,
	}
	config.setDefaults()
	return config
}

// RunStore stores harness run history in SQLite.
type RunStore struct {
	db     *sql.DB
	mu     stdSync.RWMutex
	closed bool
	logger *logging.Logger
}

// New creates a RunStore from a Config.
func New(config *Config) (*RunStore, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	config.setDefaults()
	if config.DataSourceName == "" {
		return nil, fmt.Errorf("DataSourceName is required")
	}

	logger := logging.WithComponent("run-store")
	logger.Info("opening run history database",
		slog.String("data_source", config.DataSourceName),
		slog.Bool("wal_enabled", config.EnableWAL),
	)

	db, err := sql.Open("sqlite3", config.DataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(config.MaxOpenConns)
	db.SetMaxIdleConns(config.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime)
	db.SetConnMaxIdleTime(config.ConnMaxIdleTime)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}

	store := &RunStore{db: db, logger: logger}
	if err := store.setupSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database schema: %w", err)
	}
	return store, nil
}

// NewWithDataSource is a convenience constructor using DefaultConfig.
func NewWithDataSource(dataSourceName string) (*RunStore, error) {
	return New(DefaultConfig(dataSourceName))
}

func (s *RunStore) setupSchema() error {
	query := `
    CREATE TABLE IF NOT EXISTS runs (
        id          TEXT PRIMARY KEY,
        started_at  INTEGER NOT NULL,
        duration_ms INTEGER NOT NULL,
        total       INTEGER NOT NULL,
        passed      INTEGER NOT NULL,
        failed      INTEGER NOT NULL
    );
    CREATE TABLE IF NOT EXISTS run_suites (
        run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
        suite       TEXT NOT NULL,
        total       INTEGER NOT NULL,
        passed      INTEGER NOT NULL,
        failed      INTEGER NOT NULL,
        duration_ms INTEGER NOT NULL,
        PRIMARY KEY (run_id, suite)
    );
    CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs (started_at);
    `
	_, err := s.db.Exec(query)
	return err
}

// SaveRun persists a run and its suite breakdown atomically.
func (s *RunStore) SaveRun(ctx context.Context, run Run) error {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ErrStoreClosed
	}
	s.mu.RUnlock()

	if run.ID == "" {
		return kiterrors.NewValidationError(kiterrors.OpSaveRun, fmt.Errorf("run ID is required"))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return kiterrors.NewStorageError(kiterrors.OpSaveRun, err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, duration_ms, total, passed, failed) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UnixMilli(), run.Duration.Milliseconds(), run.Total, run.Passed, run.Failed,
	)
	if err != nil {
		return kiterrors.NewStorageError(kiterrors.OpSaveRun, err)
	}

	for _, suite := range run.Suites {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_suites (run_id, suite, total, passed, failed, duration_ms) VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, suite.Suite, suite.Total, suite.Passed, suite.Failed, suite.Duration.Milliseconds(),
		)
		if err != nil {
			return kiterrors.NewStorageError(kiterrors.OpSaveRun, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return kiterrors.NewStorageError(kiterrors.OpSaveRun, err)
	}

	s.logger.InfoContext(ctx, "run saved",
		slog.String("run_id", run.ID),
		slog.Int("total", run.Total),
		slog.Int("failed", run.Failed),
	)
	return nil
}

// ListRuns returns up to limit runs, newest first, with suite breakdowns.
// A non-positive limit returns all runs.
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return nil, ErrStoreClosed
	}
	s.mu.RUnlock()

	query := `SELECT id, started_at, duration_ms, total, passed, failed FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, kiterrors.NewStorageError(kiterrors.OpListRuns, err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedMs, durationMs int64
		if err := rows.Scan(&r.ID, &startedMs, &durationMs, &r.Total, &r.Passed, &r.Failed); err != nil {
			return nil, kiterrors.NewStorageError(kiterrors.OpListRuns, err)
		}
		r.StartedAt = time.UnixMilli(startedMs)
		r.Duration = time.Duration(durationMs) * time.Millisecond
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, kiterrors.NewStorageError(kiterrors.OpListRuns, err)
	}

	for i := range runs {
		suites, err := s.loadSuites(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Suites = suites
	}
	return runs, nil
}

func (s *RunStore) loadSuites(ctx context.Context, runID string) ([]SuiteResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT suite, total, passed, failed, duration_ms FROM run_suites WHERE run_id = ? ORDER BY suite`,
		runID,
	)
	if err != nil {
		return nil, kiterrors.NewStorageError(kiterrors.OpListRuns, err)
	}
	defer rows.Close()

	var suites []SuiteResult
	for rows.Next() {
		var sr SuiteResult
		var durationMs int64
		if err := rows.Scan(&sr.Suite, &sr.Total, &sr.Passed, &sr.Failed, &durationMs); err != nil {
			return nil, kiterrors.NewStorageError(kiterrors.OpListRuns, err)
		}
		sr.Duration = time.Duration(durationMs) * time.Millisecond
		suites = append(suites, sr)
	}
	return suites, rows.Err()
}

// Close closes the store and releases resources. Safe to call twice.
func (s *RunStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}

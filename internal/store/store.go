// Package store persists flattened extraction results to SQLite. It is
// the persistence collaborator of the pipeline: the pipeline itself
// performs no I/O, callers hand completed record slices here.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/keenanwest/triage/internal/extract"
)

// Store wraps the SQLite database connection.
type Store struct {
	*sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	commit_sha   TEXT NOT NULL DEFAULT '',
	environment  TEXT NOT NULL DEFAULT '',
	content_hash TEXT NOT NULL,
	error_count  INTEGER NOT NULL,
	created_at   TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS errors (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id          TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	message         TEXT NOT NULL,
	file            TEXT NOT NULL DEFAULT '',
	line            INTEGER NOT NULL DEFAULT 0,
	col             INTEGER NOT NULL DEFAULT 0,
	severity        TEXT NOT NULL,
	category        TEXT NOT NULL,
	source          TEXT NOT NULL,
	rule_id         TEXT NOT NULL DEFAULT '',
	job             TEXT NOT NULL DEFAULT '',
	step            TEXT NOT NULL DEFAULT '',
	unknown_pattern INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_errors_run ON errors(run_id);
CREATE INDEX IF NOT EXISTS idx_errors_file ON errors(file);
`

// OpenPath opens (creating if needed) the database at the given path.
func OpenPath(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{DB: db}, nil
}

// Run identifies one recorded extraction.
type Run struct {
	ID          string
	CommitSHA   string
	Environment string
	ContentHash string
	ErrorCount  int
	CreatedAt   time.Time
}

// ContentHash returns the stable hash of the raw log text, used to
// detect re-submissions of the same run output.
func ContentHash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// RecordRun persists one extraction call: a run row keyed by a fresh
// UUID plus one flattened row per record. Returns the run id.
func (s *Store) RecordRun(ctx context.Context, commitSHA, environment, raw string, errs []*extract.ExtractedError) (string, error) {
	runID := uuid.NewString()

	tx, err := s.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, commit_sha, environment, content_hash, error_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, commitSHA, environment, ContentHash(raw), len(errs), time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for _, e := range errs {
		job, step := "", ""
		if e.Workflow != nil {
			job, step = e.Workflow.Job, e.Workflow.Step
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO errors (run_id, message, file, line, col, severity, category, source, rule_id, job, step, unknown_pattern)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, e.Message, e.File, e.Line, e.Column,
			string(e.Severity), string(e.Category), e.Source, e.RuleID,
			job, step, e.UnknownPattern,
		)
		if err != nil {
			return "", fmt.Errorf("failed to insert error: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return runID, nil
}

// GetRun loads one run row.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	var r Run
	err := s.QueryRowContext(ctx,
		`SELECT id, commit_sha, environment, content_hash, error_count, created_at
		 FROM runs WHERE id = ?`, runID,
	).Scan(&r.ID, &r.CommitSHA, &r.Environment, &r.ContentHash, &r.ErrorCount, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	return &r, nil
}

// ErrorsForRun loads the flattened records for a run, in insertion
// order.
func (s *Store) ErrorsForRun(ctx context.Context, runID string) ([]*extract.ExtractedError, error) {
	rows, err := s.QueryContext(ctx,
		`SELECT message, file, line, col, severity, category, source, rule_id, job, step, unknown_pattern
		 FROM errors WHERE run_id = ? ORDER BY id`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query errors: %w", err)
	}
	defer rows.Close()

	var out []*extract.ExtractedError
	for rows.Next() {
		var e extract.ExtractedError
		var sev, cat, job, step string
		if err := rows.Scan(&e.Message, &e.File, &e.Line, &e.Column, &sev, &cat,
			&e.Source, &e.RuleID, &job, &step, &e.UnknownPattern); err != nil {
			return nil, fmt.Errorf("failed to scan error: %w", err)
		}
		e.Severity = extract.Severity(sev)
		e.Category = extract.Category(cat)
		if job != "" || step != "" {
			e.Workflow = &extract.WorkflowContext{Job: job, Step: step}
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

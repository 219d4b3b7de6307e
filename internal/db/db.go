// Package db provides PostgreSQL persistence for hunt runs, per-stage
// statuses and listing artifacts, scoped by session ID. The pipeline
// core never touches this layer directly; persistence is best-effort
// and a run proceeds without it when the database is unreachable.
package db

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Migrate applies the schema. All statements are idempotent, so calling
// this on every startup is safe. Statements run one at a time; pgx does
// not accept multi-statement strings over the extended protocol.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(schemaSQL, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Run represents one hunt run record.
type Run struct {
	ID          uuid.UUID  `json:"id"`
	SessionID   string     `json:"session_id"`
	Kind        string     `json:"kind"`
	Query       string     `json:"query,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Run status values.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
	RunStatusCancelled = "cancelled"
)

// CreateRun creates a new hunt run record and returns its ID. Writes
// for the same session ID are last-writer-wins; concurrent writers to
// one session are not arbitrated.
func (db *DB) CreateRun(ctx context.Context, sessionID, kind, query string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO hunt_runs (session_id, kind, query, status)
		 VALUES ($1, $2, $3, 'running')
		 RETURNING id`,
		sessionID, kind, query,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a hunt run as finished with the given status.
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE hunt_runs SET status = $1, completed_at = NOW() WHERE id = $2`,
		status, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// SaveStageStatus upserts the terminal status for one stage of a run.
func (db *DB) SaveStageStatus(ctx context.Context, runID uuid.UUID, stage, status, errMsg string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO run_stages (run_id, stage, status, error)
		 VALUES ($1, $2, $3, NULLIF($4, ''))
		 ON CONFLICT (run_id, stage) DO UPDATE SET status = $3, error = NULLIF($4, ''), updated_at = NOW()`,
		runID, stage, status, errMsg,
	)
	if err != nil {
		return fmt.Errorf("failed to save stage status %s: %w", stage, err)
	}
	return nil
}

// SaveArtifact stores a JSON artifact (listing sets, confirmations) for
// a run, one per stage, overwriting earlier writes for the same stage.
func (db *DB) SaveArtifact(ctx context.Context, runID uuid.UUID, stage string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO artifacts (run_id, stage, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (run_id, stage) DO UPDATE SET content = $3, created_at = NOW()`,
		runID, stage, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", stage, err)
	}
	return nil
}

// GetArtifact retrieves a JSON artifact by run ID and stage. Returns
// nil when no artifact exists.
func (db *DB) GetArtifact(ctx context.Context, runID uuid.UUID, stage string) ([]byte, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM artifacts WHERE run_id = $1 AND stage = $2`,
		runID, stage,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artifact %s: %w", stage, err)
	}
	return content, nil
}

// GetRun retrieves a hunt run by ID. Returns nil when not found.
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, session_id, kind, COALESCE(query, ''), status, created_at, completed_at
		 FROM hunt_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.SessionID, &run.Kind, &run.Query, &run.Status, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// GetRunBySession retrieves the most recent run for a session ID.
func (db *DB) GetRunBySession(ctx context.Context, sessionID string) (*Run, error) {
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, session_id, kind, COALESCE(query, ''), status, created_at, completed_at
		 FROM hunt_runs WHERE session_id = $1 ORDER BY created_at DESC LIMIT 1`,
		sessionID,
	).Scan(&run.ID, &run.SessionID, &run.Kind, &run.Query, &run.Status, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run by session: %w", err)
	}
	return &run, nil
}

// ListRuns retrieves recent hunt runs, newest first.
func (db *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, session_id, kind, COALESCE(query, ''), status, created_at, completed_at
		 FROM hunt_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.SessionID, &run.Kind, &run.Query, &run.Status, &run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// StageRecord is a persisted per-stage status row.
type StageRecord struct {
	RunID  uuid.UUID `json:"run_id"`
	Stage  string    `json:"stage"`
	Status string    `json:"status"`
	Error  string    `json:"error,omitempty"`
}

// ListStageStatuses returns the persisted stage statuses for a run in
// insertion order.
func (db *DB) ListStageStatuses(ctx context.Context, runID uuid.UUID) ([]StageRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT run_id, stage, status, COALESCE(error, '')
		 FROM run_stages WHERE run_id = $1 ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stage statuses: %w", err)
	}
	defer rows.Close()

	var records []StageRecord
	for rows.Next() {
		var rec StageRecord
		if err := rows.Scan(&rec.RunID, &rec.Stage, &rec.Status, &rec.Error); err != nil {
			return nil, fmt.Errorf("failed to scan stage status: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Package export snapshots the task collection into a SQLite database so
// other tools can read it. The task file stays the source of truth.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/todo/internal/model"
)

// timeLayout is fixed-width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Snapshot is one export run.
type Snapshot struct {
	ID         string    `db:"id"`
	SourcePath string    `db:"source_path"`
	TaskCount  int       `db:"task_count"`
	ExportedAt time.Time `db:"exported_at"`
}

// SnapshotTask is a task row stored with its 1-based list position.
type SnapshotTask struct {
	Position  int       `db:"position"`
	Title     string    `db:"title"`
	Completed bool      `db:"completed"`
	CreatedAt time.Time `db:"created_at"`
}

// SQLiteExporter writes snapshots into a SQLite database.
type SQLiteExporter struct {
	db *sqlx.DB
}

// Open opens (or creates) the database at dbPath and runs any pending
// schema migrations.
func Open(dbPath string) (*SQLiteExporter, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating export directory %s: %w", dir, err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// One connection keeps every statement on the same database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	e := &SQLiteExporter{db: db}
	if err := e.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return e, nil
}

// Close closes the underlying database connection.
func (e *SQLiteExporter) Close() error {
	return e.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (e *SQLiteExporter) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := e.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = e.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := e.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Export writes tasks as a new snapshot in one transaction and returns it.
func (e *SQLiteExporter) Export(
	ctx context.Context,
	sourcePath string,
	tasks []model.Task,
) (*Snapshot, error) {
	snap := &Snapshot{
		ID:         uuid.New().String(),
		SourcePath: sourcePath,
		TaskCount:  len(tasks),
		ExportedAt: time.Now().UTC(),
	}

	tx, err := e.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, source_path, task_count, exported_at)
		VALUES (?, ?, ?, ?)`,
		snap.ID, snap.SourcePath, snap.TaskCount, snap.ExportedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("creating snapshot %s: %w", snap.ID, err)
	}

	stmt, err := tx.PreparexContext(ctx, `
		INSERT INTO snapshot_tasks (snapshot_id, position, title, completed, created_at)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("preparing task insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range tasks {
		_, err := stmt.ExecContext(ctx,
			snap.ID, i+1, t.Title, boolToInt(t.Completed),
			t.CreatedAt.UTC().Format(timeLayout),
		)
		if err != nil {
			return nil, fmt.Errorf("inserting task %d of snapshot %s: %w", i+1, snap.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing snapshot %s: %w", snap.ID, err)
	}
	return snap, nil
}

// Snapshots lists every snapshot, newest first.
func (e *SQLiteExporter) Snapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := e.db.QueryxContext(ctx,
		"SELECT id, source_path, task_count, exported_at FROM snapshots ORDER BY exported_at DESC",
	)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var (
			s          Snapshot
			exportedAt string
		)
		if err := rows.Scan(&s.ID, &s.SourcePath, &s.TaskCount, &exportedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		if s.ExportedAt, err = parseTime(exportedAt); err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}

	return snaps, rows.Err()
}

// SnapshotTasks returns the tasks stored for a snapshot in position order.
func (e *SQLiteExporter) SnapshotTasks(ctx context.Context, snapshotID string) ([]SnapshotTask, error) {
	rows, err := e.db.QueryxContext(ctx, `
		SELECT position, title, completed, created_at
		FROM snapshot_tasks
		WHERE snapshot_id = ?
		ORDER BY position`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("querying tasks of snapshot %s: %w", snapshotID, err)
	}
	defer rows.Close()

	var tasks []SnapshotTask
	for rows.Next() {
		var (
			t         SnapshotTask
			completed int
			createdAt string
		)
		if err := rows.Scan(&t.Position, &t.Title, &completed, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot task row: %w", err)
		}
		t.Completed = completed != 0
		if t.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// parseTime reads a timestamp written by Export.
func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

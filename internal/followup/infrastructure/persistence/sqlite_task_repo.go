package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/aftercare/internal/followup/domain/task"
	"github.com/google/uuid"
)

// Timestamps are stored as RFC3339 strings: explicit offset, second
// precision, so the window arithmetic round-trips exactly.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS followup_tasks (
	id TEXT PRIMARY KEY,
	subject_id TEXT NOT NULL,
	task_type TEXT NOT NULL,
	status TEXT NOT NULL,
	window_start TEXT NOT NULL,
	window_end TEXT NOT NULL,
	completed_at TEXT,
	completed_by TEXT,
	notes TEXT,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_followup_tasks_subject ON followup_tasks(subject_id);
CREATE INDEX IF NOT EXISTS idx_followup_tasks_status ON followup_tasks(status);
`

// SQLiteTaskRepository implements task.Repository using SQLite.
type SQLiteTaskRepository struct {
	db *sql.DB
}

// NewSQLiteTaskRepository creates a new SQLite task repository.
func NewSQLiteTaskRepository(db *sql.DB) *SQLiteTaskRepository {
	return &SQLiteTaskRepository{db: db}
}

// InitSchema creates the task table if it does not exist.
func (r *SQLiteTaskRepository) InitSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, sqliteSchema)
	return err
}

// Save persists a task, updating in place when the id already exists.
func (r *SQLiteTaskRepository) Save(ctx context.Context, t task.Task) error {
	var completedAt sql.NullString
	if ts := t.CompletedAt(); ts != nil {
		completedAt = sql.NullString{String: ts.Format(time.RFC3339), Valid: true}
	}

	var completedBy sql.NullString
	if t.CompletedBy() != "" {
		completedBy = sql.NullString{String: t.CompletedBy(), Valid: true}
	}

	var notes sql.NullString
	if t.Notes() != "" {
		notes = sql.NullString{String: t.Notes(), Valid: true}
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE followup_tasks
		SET status = ?, completed_at = ?, completed_by = ?, notes = ?
		WHERE id = ?`,
		t.Status().String(),
		completedAt,
		completedBy,
		notes,
		t.ID().String(),
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO followup_tasks (
			id, subject_id, task_type, status, window_start, window_end,
			completed_at, completed_by, notes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID().String(),
		t.SubjectID(),
		t.Type().String(),
		t.Status().String(),
		t.WindowStart().Format(time.RFC3339),
		t.WindowEnd().Format(time.RFC3339),
		completedAt,
		completedBy,
		notes,
		t.CreatedAt().Format(time.RFC3339),
	)
	return err
}

// SaveAll persists a batch of tasks in one transaction.
func (r *SQLiteTaskRepository) SaveAll(ctx context.Context, tasks []task.Task) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, t := range tasks {
		var completedAt, completedBy, notes sql.NullString
		if ts := t.CompletedAt(); ts != nil {
			completedAt = sql.NullString{String: ts.Format(time.RFC3339), Valid: true}
		}
		if t.CompletedBy() != "" {
			completedBy = sql.NullString{String: t.CompletedBy(), Valid: true}
		}
		if t.Notes() != "" {
			notes = sql.NullString{String: t.Notes(), Valid: true}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO followup_tasks (
				id, subject_id, task_type, status, window_start, window_end,
				completed_at, completed_by, notes, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				status = excluded.status,
				completed_at = excluded.completed_at,
				completed_by = excluded.completed_by,
				notes = excluded.notes`,
			t.ID().String(),
			t.SubjectID(),
			t.Type().String(),
			t.Status().String(),
			t.WindowStart().Format(time.RFC3339),
			t.WindowEnd().Format(time.RFC3339),
			completedAt,
			completedBy,
			notes,
			t.CreatedAt().Format(time.RFC3339),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindByID retrieves a task by its id.
func (r *SQLiteTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (task.Task, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, subject_id, task_type, status, window_start, window_end,
		       completed_at, completed_by, notes, created_at
		FROM followup_tasks
		WHERE id = ?`,
		id.String(),
	)

	t, err := scanSQLiteTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, err
	}
	return t, nil
}

// FindBySubject retrieves a subject's tasks in generation order.
func (r *SQLiteTaskRepository) FindBySubject(ctx context.Context, subjectID string) ([]task.Task, error) {
	return r.query(ctx, `
		SELECT id, subject_id, task_type, status, window_start, window_end,
		       completed_at, completed_by, notes, created_at
		FROM followup_tasks
		WHERE subject_id = ?
		ORDER BY created_at, id`,
		subjectID,
	)
}

// FindAll retrieves every task in generation order.
func (r *SQLiteTaskRepository) FindAll(ctx context.Context) ([]task.Task, error) {
	return r.query(ctx, `
		SELECT id, subject_id, task_type, status, window_start, window_end,
		       completed_at, completed_by, notes, created_at
		FROM followup_tasks
		ORDER BY created_at, id`,
	)
}

func (r *SQLiteTaskRepository) query(ctx context.Context, query string, args ...any) ([]task.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanSQLiteTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return tasks, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteTask(row rowScanner) (task.Task, error) {
	var (
		idStr, subjectID, typeStr, statusStr string
		windowStartStr, windowEndStr         string
		completedAtStr                       sql.NullString
		completedBy, notes                   sql.NullString
		createdAtStr                         string
	)

	if err := row.Scan(
		&idStr, &subjectID, &typeStr, &statusStr,
		&windowStartStr, &windowEndStr,
		&completedAtStr, &completedBy, &notes, &createdAtStr,
	); err != nil {
		return task.Task{}, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return task.Task{}, fmt.Errorf("invalid task id: %w", err)
	}

	taskType, err := task.ParseType(typeStr)
	if err != nil {
		return task.Task{}, fmt.Errorf("invalid task_type in database: %w", err)
	}

	status, err := task.ParseStatus(statusStr)
	if err != nil {
		return task.Task{}, fmt.Errorf("invalid status in database: %w", err)
	}

	windowStart, err := time.Parse(time.RFC3339, windowStartStr)
	if err != nil {
		return task.Task{}, fmt.Errorf("invalid window_start: %w", err)
	}

	windowEnd, err := time.Parse(time.RFC3339, windowEndStr)
	if err != nil {
		return task.Task{}, fmt.Errorf("invalid window_end: %w", err)
	}

	var completedAt *time.Time
	if completedAtStr.Valid {
		ts, err := time.Parse(time.RFC3339, completedAtStr.String)
		if err != nil {
			return task.Task{}, fmt.Errorf("invalid completed_at: %w", err)
		}
		completedAt = &ts
	}

	createdAt, err := time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return task.Task{}, fmt.Errorf("invalid created_at: %w", err)
	}

	return task.Rehydrate(
		id, subjectID, taskType, status,
		windowStart, windowEnd,
		completedAt, completedBy.String, notes.String, createdAt,
	), nil
}

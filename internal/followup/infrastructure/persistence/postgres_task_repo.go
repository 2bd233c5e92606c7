package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/aftercare/internal/followup/domain/task"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS followup_tasks (
	id UUID PRIMARY KEY,
	subject_id TEXT NOT NULL,
	task_type TEXT NOT NULL,
	status TEXT NOT NULL,
	window_start TIMESTAMPTZ NOT NULL,
	window_end TIMESTAMPTZ NOT NULL,
	completed_at TIMESTAMPTZ,
	completed_by TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_followup_tasks_subject ON followup_tasks(subject_id);
CREATE INDEX IF NOT EXISTS idx_followup_tasks_status ON followup_tasks(status);
`

// PostgresTaskRepository implements task.Repository using PostgreSQL.
type PostgresTaskRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTaskRepository creates a new PostgreSQL task repository.
func NewPostgresTaskRepository(pool *pgxpool.Pool) *PostgresTaskRepository {
	return &PostgresTaskRepository{pool: pool}
}

// InitSchema creates the task table if it does not exist.
func (r *PostgresTaskRepository) InitSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, postgresSchema)
	return err
}

// Save persists a task, updating in place when the id already exists.
func (r *PostgresTaskRepository) Save(ctx context.Context, t task.Task) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO followup_tasks (
			id, subject_id, task_type, status, window_start, window_end,
			completed_at, completed_by, notes, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			completed_at = EXCLUDED.completed_at,
			completed_by = EXCLUDED.completed_by,
			notes = EXCLUDED.notes`,
		t.ID(),
		t.SubjectID(),
		t.Type().String(),
		t.Status().String(),
		t.WindowStart(),
		t.WindowEnd(),
		t.CompletedAt(),
		t.CompletedBy(),
		t.Notes(),
		t.CreatedAt(),
	)
	return err
}

// SaveAll persists a batch of tasks in one transaction.
func (r *PostgresTaskRepository) SaveAll(ctx context.Context, tasks []task.Task) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, t := range tasks {
		if _, err := tx.Exec(ctx, `
			INSERT INTO followup_tasks (
				id, subject_id, task_type, status, window_start, window_end,
				completed_at, completed_by, notes, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			ON CONFLICT (id) DO UPDATE SET
				status = EXCLUDED.status,
				completed_at = EXCLUDED.completed_at,
				completed_by = EXCLUDED.completed_by,
				notes = EXCLUDED.notes`,
			t.ID(),
			t.SubjectID(),
			t.Type().String(),
			t.Status().String(),
			t.WindowStart(),
			t.WindowEnd(),
			t.CompletedAt(),
			t.CompletedBy(),
			t.Notes(),
			t.CreatedAt(),
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// FindByID retrieves a task by its id.
func (r *PostgresTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (task.Task, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, subject_id, task_type, status, window_start, window_end,
		       completed_at, completed_by, notes, created_at
		FROM followup_tasks
		WHERE id = $1`,
		id,
	)

	t, err := scanPostgresTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, err
	}
	return t, nil
}

// FindBySubject retrieves a subject's tasks in generation order.
func (r *PostgresTaskRepository) FindBySubject(ctx context.Context, subjectID string) ([]task.Task, error) {
	return r.query(ctx, `
		SELECT id, subject_id, task_type, status, window_start, window_end,
		       completed_at, completed_by, notes, created_at
		FROM followup_tasks
		WHERE subject_id = $1
		ORDER BY created_at, id`,
		subjectID,
	)
}

// FindAll retrieves every task in generation order.
func (r *PostgresTaskRepository) FindAll(ctx context.Context) ([]task.Task, error) {
	return r.query(ctx, `
		SELECT id, subject_id, task_type, status, window_start, window_end,
		       completed_at, completed_by, notes, created_at
		FROM followup_tasks
		ORDER BY created_at, id`,
	)
}

func (r *PostgresTaskRepository) query(ctx context.Context, query string, args ...any) ([]task.Task, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanPostgresTask(rows)
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

func scanPostgresTask(row pgx.Row) (task.Task, error) {
	var (
		id                       uuid.UUID
		subjectID                string
		typeStr, statusStr       string
		windowStart, windowEnd   time.Time
		completedAt              *time.Time
		completedBy, notes       string
		createdAt                time.Time
	)

	if err := row.Scan(
		&id, &subjectID, &typeStr, &statusStr,
		&windowStart, &windowEnd,
		&completedAt, &completedBy, &notes, &createdAt,
	); err != nil {
		return task.Task{}, err
	}

	taskType, err := task.ParseType(typeStr)
	if err != nil {
		return task.Task{}, fmt.Errorf("invalid task_type in database: %w", err)
	}

	status, err := task.ParseStatus(statusStr)
	if err != nil {
		return task.Task{}, fmt.Errorf("invalid status in database: %w", err)
	}

	return task.Rehydrate(
		id, subjectID, taskType, status,
		windowStart, windowEnd,
		completedAt, completedBy, notes, createdAt,
	), nil
}

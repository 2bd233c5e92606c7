package persistence

import (
	"context"
	"sync"
	"time"

	"github.com/felixgeelhaar/aftercare/internal/followup/domain/task"
	"github.com/google/uuid"
)

// MemoryTaskRepository is a thin in-memory task store. Reads return snapshots
// with derived statuses recomputed lazily against the injected clock; the
// domain never consults the wall clock itself. Writes are whole-value
// replacement keyed by id, serialized with a mutex so concurrent callers are
// last-writer-wins.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	now   func() time.Time
	order []uuid.UUID
	tasks map[uuid.UUID]task.Task
}

// NewMemoryTaskRepository creates a new in-memory task repository. A nil now
// defaults to time.Now.
func NewMemoryTaskRepository(now func() time.Time) *MemoryTaskRepository {
	if now == nil {
		now = time.Now
	}
	return &MemoryTaskRepository{
		now:   now,
		tasks: make(map[uuid.UUID]task.Task),
	}
}

// Save inserts or replaces a task. Insertion order is preserved for reads.
func (r *MemoryTaskRepository) Save(ctx context.Context, t task.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(t)
	return nil
}

// SaveAll inserts or replaces a batch of tasks in input order.
func (r *MemoryTaskRepository) SaveAll(ctx context.Context, tasks []task.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range tasks {
		r.put(t)
	}
	return nil
}

func (r *MemoryTaskRepository) put(t task.Task) {
	if _, ok := r.tasks[t.ID()]; !ok {
		r.order = append(r.order, t.ID())
	}
	r.tasks[t.ID()] = t
}

// FindByID returns the task with the given id, status refreshed.
func (r *MemoryTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return task.Task{}, task.ErrTaskNotFound
	}
	return task.RefreshAll([]task.Task{t}, r.now())[0], nil
}

// FindBySubject returns the subject's tasks in insertion order, statuses
// refreshed.
func (r *MemoryTaskRepository) FindBySubject(ctx context.Context, subjectID string) ([]task.Task, error) {
	all, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return task.BySubject(all, subjectID), nil
}

// FindAll returns every task in insertion order, statuses refreshed.
func (r *MemoryTaskRepository) FindAll(ctx context.Context) ([]task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]task.Task, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tasks[id])
	}
	return task.RefreshAll(out, r.now()), nil
}

package task

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for task persistence. Implementations
// must round-trip every field losslessly; the window arithmetic assumes the
// timestamps come back exactly as stored.
type Repository interface {
	Save(ctx context.Context, t Task) error
	SaveAll(ctx context.Context, tasks []Task) error
	FindByID(ctx context.Context, id uuid.UUID) (Task, error)
	FindBySubject(ctx context.Context, subjectID string) ([]Task, error)
	FindAll(ctx context.Context) ([]Task, error)
}

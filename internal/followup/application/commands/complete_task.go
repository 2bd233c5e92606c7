package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/aftercare/internal/followup/domain/task"
	"github.com/google/uuid"
)

// CompleteTaskCommand contains the data needed to complete a task. Now is
// supplied by the caller so the handler stays deterministic.
type CompleteTaskCommand struct {
	TaskID      uuid.UUID
	CompletedBy string
	Now         time.Time
}

// CompleteTaskHandler handles the CompleteTaskCommand.
type CompleteTaskHandler struct {
	taskRepo task.Repository
}

// NewCompleteTaskHandler creates a new CompleteTaskHandler.
func NewCompleteTaskHandler(taskRepo task.Repository) *CompleteTaskHandler {
	return &CompleteTaskHandler{taskRepo: taskRepo}
}

// Handle executes the CompleteTaskCommand. Domain sentinels
// (task.ErrAlreadyCompleted, task.ErrWindowNotOpen, task.ErrTaskNotFound)
// propagate unwrapped so callers can branch on them.
func (h *CompleteTaskHandler) Handle(ctx context.Context, cmd CompleteTaskCommand) (task.Task, error) {
	t, err := h.taskRepo.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return task.Task{}, err
	}

	done, err := t.Complete(cmd.CompletedBy, cmd.Now)
	if err != nil {
		return task.Task{}, err
	}

	if err := h.taskRepo.Save(ctx, done); err != nil {
		return task.Task{}, err
	}

	return done, nil
}

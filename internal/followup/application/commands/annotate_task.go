package commands

import (
	"context"

	"github.com/felixgeelhaar/aftercare/internal/followup/domain/task"
	"github.com/google/uuid"
)

// AnnotateTaskCommand replaces a task's free-text notes.
type AnnotateTaskCommand struct {
	TaskID uuid.UUID
	Notes  string
}

// AnnotateTaskHandler handles the AnnotateTaskCommand.
type AnnotateTaskHandler struct {
	taskRepo task.Repository
}

// NewAnnotateTaskHandler creates a new AnnotateTaskHandler.
func NewAnnotateTaskHandler(taskRepo task.Repository) *AnnotateTaskHandler {
	return &AnnotateTaskHandler{taskRepo: taskRepo}
}

// Handle executes the AnnotateTaskCommand. Annotation is permitted in any
// state and is last-write-wins.
func (h *AnnotateTaskHandler) Handle(ctx context.Context, cmd AnnotateTaskCommand) (task.Task, error) {
	t, err := h.taskRepo.FindByID(ctx, cmd.TaskID)
	if err != nil {
		return task.Task{}, err
	}

	annotated := t.WithNotes(cmd.Notes)

	if err := h.taskRepo.Save(ctx, annotated); err != nil {
		return task.Task{}, err
	}

	return annotated, nil
}

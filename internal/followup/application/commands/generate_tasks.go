package commands

import (
	"context"

	"github.com/felixgeelhaar/aftercare/internal/followup/domain/rule"
	"github.com/felixgeelhaar/aftercare/internal/followup/domain/subject"
	"github.com/felixgeelhaar/aftercare/internal/followup/domain/task"
)

// GenerateTasksCommand contains the discharge records to generate follow-up
// tasks for.
type GenerateTasksCommand struct {
	Subjects []subject.Subject
}

// GenerateTasksHandler handles the GenerateTasksCommand.
type GenerateTasksHandler struct {
	generator rule.Generator
	taskRepo  task.Repository
}

// NewGenerateTasksHandler creates a new GenerateTasksHandler.
func NewGenerateTasksHandler(generator rule.Generator, taskRepo task.Repository) *GenerateTasksHandler {
	return &GenerateTasksHandler{
		generator: generator,
		taskRepo:  taskRepo,
	}
}

// Handle generates tasks for the whole batch and persists them. A malformed
// subject fails the batch before anything is written; the error identifies
// the offending subject.
func (h *GenerateTasksHandler) Handle(ctx context.Context, cmd GenerateTasksCommand) ([]task.Task, error) {
	tasks, err := h.generator.GenerateAll(cmd.Subjects)
	if err != nil {
		return nil, err
	}

	if err := h.taskRepo.SaveAll(ctx, tasks); err != nil {
		return nil, err
	}

	return tasks, nil
}

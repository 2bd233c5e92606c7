package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/aftercare/internal/followup/domain/task"
	"github.com/google/uuid"
)

// GetTaskQuery fetches a single task by id.
type GetTaskQuery struct {
	TaskID uuid.UUID
	Now    time.Time
}

// GetTaskHandler handles the GetTaskQuery.
type GetTaskHandler struct {
	taskRepo task.Repository
}

// NewGetTaskHandler creates a new GetTaskHandler.
func NewGetTaskHandler(taskRepo task.Repository) *GetTaskHandler {
	return &GetTaskHandler{taskRepo: taskRepo}
}

// Handle executes the GetTaskQuery. A missing task propagates
// task.ErrTaskNotFound.
func (h *GetTaskHandler) Handle(ctx context.Context, query GetTaskQuery) (TaskDTO, error) {
	t, err := h.taskRepo.FindByID(ctx, query.TaskID)
	if err != nil {
		return TaskDTO{}, err
	}
	return toTaskDTO(t, query.Now), nil
}

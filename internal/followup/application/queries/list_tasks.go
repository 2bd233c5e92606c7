package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/aftercare/internal/followup/domain/task"
	"github.com/google/uuid"
)

// TaskDTO is a data transfer object for tasks. Status is the derived status
// at the query's Now, not the raw persisted value.
type TaskDTO struct {
	ID           uuid.UUID
	SubjectID    string
	Type         string
	Status       string
	WindowStart  time.Time
	WindowEnd    time.Time
	CompletedAt  *time.Time
	CompletedBy  string
	Notes        string
	CreatedAt    time.Time
	HoursLeft    int
	MinutesLeft  int
	TotalMinutes int
	Overdue      bool
}

// ListTasksQuery contains the parameters for listing tasks. Now is supplied
// by the caller; the CLI boundary defaults it to the wall clock.
type ListTasksQuery struct {
	SubjectID string
	Status    string // "", "all", "upcoming", "pending", "overdue", "completed"
	Now       time.Time
}

// ListTasksHandler handles the ListTasksQuery.
type ListTasksHandler struct {
	taskRepo task.Repository
}

// NewListTasksHandler creates a new ListTasksHandler.
func NewListTasksHandler(taskRepo task.Repository) *ListTasksHandler {
	return &ListTasksHandler{taskRepo: taskRepo}
}

// Handle executes the ListTasksQuery.
func (h *ListTasksHandler) Handle(ctx context.Context, query ListTasksQuery) ([]TaskDTO, error) {
	var tasks []task.Task
	var err error

	if query.SubjectID != "" {
		tasks, err = h.taskRepo.FindBySubject(ctx, query.SubjectID)
	} else {
		tasks, err = h.taskRepo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	if query.Status != "" && query.Status != "all" {
		status, err := task.ParseStatus(query.Status)
		if err != nil {
			return nil, err
		}
		if status == task.StatusCompleted {
			tasks = task.CompletedOnly(tasks)
		} else {
			tasks = task.ByStatus(tasks, status, query.Now)
		}
	}

	return toTaskDTOs(tasks, query.Now), nil
}

func toTaskDTOs(tasks []task.Task, now time.Time) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = toTaskDTO(t, now)
	}
	return dtos
}

func toTaskDTO(t task.Task, now time.Time) TaskDTO {
	countdown := t.Countdown(now)
	return TaskDTO{
		ID:           t.ID(),
		SubjectID:    t.SubjectID(),
		Type:         t.Type().String(),
		Status:       t.StatusAt(now).String(),
		WindowStart:  t.WindowStart(),
		WindowEnd:    t.WindowEnd(),
		CompletedAt:  t.CompletedAt(),
		CompletedBy:  t.CompletedBy(),
		Notes:        t.Notes(),
		CreatedAt:    t.CreatedAt(),
		HoursLeft:    countdown.Hours,
		MinutesLeft:  countdown.Minutes,
		TotalMinutes: countdown.TotalMinutes,
		Overdue:      countdown.Overdue,
	}
}

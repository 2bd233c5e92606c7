package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/aftercare/internal/followup/domain/task"
)

// DashboardQuery computes the status breakdown at a point in time.
type DashboardQuery struct {
	Now time.Time
}

// DashboardDTO is the per-status summary shown on the dashboard.
type DashboardDTO struct {
	Upcoming       int
	Pending        int
	Overdue        int
	Completed      int
	CompletedToday int
	Total          int
}

// DashboardHandler handles the DashboardQuery.
type DashboardHandler struct {
	taskRepo task.Repository
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(taskRepo task.Repository) *DashboardHandler {
	return &DashboardHandler{taskRepo: taskRepo}
}

// Handle executes the DashboardQuery.
func (h *DashboardHandler) Handle(ctx context.Context, query DashboardQuery) (DashboardDTO, error) {
	tasks, err := h.taskRepo.FindAll(ctx)
	if err != nil {
		return DashboardDTO{}, err
	}

	dto := DashboardDTO{Total: len(tasks)}
	for _, t := range tasks {
		switch t.StatusAt(query.Now) {
		case task.StatusUpcoming:
			dto.Upcoming++
		case task.StatusPending:
			dto.Pending++
		case task.StatusOverdue:
			dto.Overdue++
		case task.StatusCompleted:
			dto.Completed++
		}
	}
	dto.CompletedToday = len(task.CompletedToday(tasks, query.Now))

	return dto, nil
}

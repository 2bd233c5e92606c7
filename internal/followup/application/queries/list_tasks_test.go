package queries

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/aftercare/internal/followup/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryFixture(t *testing.T) ([]task.Task, time.Time) {
	t.Helper()

	noon := time.Date(2026, 1, 14, 12, 0, 0, 0, time.Local)

	upcoming := task.New("MRN-1", task.TypeCheckinCall,
		noon.Add(48*time.Hour), noon.Add(72*time.Hour))
	pending := task.New("MRN-1", task.TypeContactPatient,
		noon.Add(-2*time.Hour), noon.Add(22*time.Hour))
	overdue := task.New("MRN-2", task.TypeFacilityHandoff,
		noon.Add(-30*time.Hour), noon.Add(-6*time.Hour))

	completed := task.New("MRN-2", task.TypeMedicationReconciliation,
		noon.Add(-2*time.Hour), noon.Add(46*time.Hour))
	completed, err := completed.Complete("Nurse A", noon.Add(-time.Hour))
	require.NoError(t, err)

	return []task.Task{upcoming, pending, overdue, completed}, noon
}

func TestListTasksHandler_Handle(t *testing.T) {
	tasks, noon := queryFixture(t)

	t.Run("lists all tasks with derived statuses", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		handler := NewListTasksHandler(taskRepo)

		ctx := context.Background()
		taskRepo.On("FindAll", ctx).Return(tasks, nil)

		dtos, err := handler.Handle(ctx, ListTasksQuery{Now: noon})

		require.NoError(t, err)
		require.Len(t, dtos, 4)
		assert.Equal(t, "upcoming", dtos[0].Status)
		assert.Equal(t, "pending", dtos[1].Status)
		assert.Equal(t, "overdue", dtos[2].Status)
		assert.Equal(t, "completed", dtos[3].Status)
	})

	t.Run("filters by derived status", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		handler := NewListTasksHandler(taskRepo)

		ctx := context.Background()
		taskRepo.On("FindAll", ctx).Return(tasks, nil)

		dtos, err := handler.Handle(ctx, ListTasksQuery{Status: "overdue", Now: noon})

		require.NoError(t, err)
		require.Len(t, dtos, 1)
		assert.Equal(t, "facility_handoff", dtos[0].Type)
		assert.True(t, dtos[0].Overdue)
		assert.Equal(t, 6*60, dtos[0].TotalMinutes)
	})

	t.Run("filters completed by persisted status", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		handler := NewListTasksHandler(taskRepo)

		ctx := context.Background()
		taskRepo.On("FindAll", ctx).Return(tasks, nil)

		dtos, err := handler.Handle(ctx, ListTasksQuery{Status: "completed", Now: noon})

		require.NoError(t, err)
		require.Len(t, dtos, 1)
		assert.Equal(t, "Nurse A", dtos[0].CompletedBy)
		require.NotNil(t, dtos[0].CompletedAt)
	})

	t.Run("filters by subject", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		handler := NewListTasksHandler(taskRepo)

		ctx := context.Background()
		taskRepo.On("FindBySubject", ctx, "MRN-1").Return(tasks[:2], nil)

		dtos, err := handler.Handle(ctx, ListTasksQuery{SubjectID: "MRN-1", Now: noon})

		require.NoError(t, err)
		require.Len(t, dtos, 2)
		taskRepo.AssertNotCalled(t, "FindAll", ctx)
	})

	t.Run("rejects an unknown status filter", func(t *testing.T) {
		taskRepo := new(mockTaskRepo)
		handler := NewListTasksHandler(taskRepo)

		ctx := context.Background()
		taskRepo.On("FindAll", ctx).Return(tasks, nil)

		_, err := handler.Handle(ctx, ListTasksQuery{Status: "archived", Now: noon})

		assert.Error(t, err)
	})
}

func TestGetTaskHandler_Handle(t *testing.T) {
	tasks, noon := queryFixture(t)

	taskRepo := new(mockTaskRepo)
	handler := NewGetTaskHandler(taskRepo)

	ctx := context.Background()
	taskRepo.On("FindByID", ctx, tasks[1].ID()).Return(tasks[1], nil)

	dto, err := handler.Handle(ctx, GetTaskQuery{TaskID: tasks[1].ID(), Now: noon})

	require.NoError(t, err)
	assert.Equal(t, tasks[1].ID(), dto.ID)
	assert.Equal(t, "pending", dto.Status)
	assert.Equal(t, 22, dto.HoursLeft)
	assert.Equal(t, 0, dto.MinutesLeft)
	assert.False(t, dto.Overdue)
}

func TestGetTaskHandler_Handle_NotFound(t *testing.T) {
	taskRepo := new(mockTaskRepo)
	handler := NewGetTaskHandler(taskRepo)

	ctx := context.Background()
	missing := uuid.New()
	taskRepo.On("FindByID", ctx, missing).Return(task.Task{}, task.ErrTaskNotFound)

	_, err := handler.Handle(ctx, GetTaskQuery{TaskID: missing, Now: time.Now()})

	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestDashboardHandler_Handle(t *testing.T) {
	tasks, noon := queryFixture(t)

	taskRepo := new(mockTaskRepo)
	handler := NewDashboardHandler(taskRepo)

	ctx := context.Background()
	taskRepo.On("FindAll", ctx).Return(tasks, nil)

	dto, err := handler.Handle(ctx, DashboardQuery{Now: noon})

	require.NoError(t, err)
	assert.Equal(t, 4, dto.Total)
	assert.Equal(t, 1, dto.Upcoming)
	assert.Equal(t, 1, dto.Pending)
	assert.Equal(t, 1, dto.Overdue)
	assert.Equal(t, 1, dto.Completed)
	assert.Equal(t, 1, dto.CompletedToday)
}

package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/aftercare/internal/followup/domain/task"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTaskRepository(t *testing.T) {
	noon := time.Date(2026, 1, 14, 12, 0, 0, 0, time.Local)
	clock := func() time.Time { return noon }

	t.Run("save and find by id refreshes the status", func(t *testing.T) {
		repo := NewMemoryTaskRepository(clock)
		ctx := context.Background()

		// Window opens two days out, so the stored pending status is stale
		// relative to the clock.
		upcoming := task.New("MRN-1", task.TypeCheckinCall,
			noon.Add(48*time.Hour), noon.Add(72*time.Hour))
		require.NoError(t, repo.Save(ctx, upcoming))

		found, err := repo.FindByID(ctx, upcoming.ID())
		require.NoError(t, err)
		assert.Equal(t, upcoming.ID(), found.ID())
		assert.Equal(t, task.StatusUpcoming, found.Status())
	})

	t.Run("find by id fails for an unknown id", func(t *testing.T) {
		repo := NewMemoryTaskRepository(clock)

		_, err := repo.FindByID(context.Background(), uuid.New())

		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})

	t.Run("find all preserves insertion order", func(t *testing.T) {
		repo := NewMemoryTaskRepository(clock)
		ctx := context.Background()

		first := task.New("MRN-1", task.TypeContactPatient,
			noon.Add(-time.Hour), noon.Add(23*time.Hour))
		second := task.New("MRN-2", task.TypeFollowupScheduling,
			noon.Add(-time.Hour), noon.Add(47*time.Hour))
		third := task.New("MRN-1", task.TypeMedicationReconciliation,
			noon.Add(-time.Hour), noon.Add(47*time.Hour))

		require.NoError(t, repo.SaveAll(ctx, []task.Task{first, second}))
		require.NoError(t, repo.Save(ctx, third))

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, first.ID(), all[0].ID())
		assert.Equal(t, second.ID(), all[1].ID())
		assert.Equal(t, third.ID(), all[2].ID())
	})

	t.Run("find by subject filters in order", func(t *testing.T) {
		repo := NewMemoryTaskRepository(clock)
		ctx := context.Background()

		mine := task.New("MRN-1", task.TypeContactPatient,
			noon.Add(-time.Hour), noon.Add(23*time.Hour))
		other := task.New("MRN-2", task.TypeContactPatient,
			noon.Add(-time.Hour), noon.Add(23*time.Hour))
		require.NoError(t, repo.SaveAll(ctx, []task.Task{other, mine}))

		found, err := repo.FindBySubject(ctx, "MRN-1")
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, mine.ID(), found[0].ID())
	})

	t.Run("save replaces an existing task without duplicating it", func(t *testing.T) {
		repo := NewMemoryTaskRepository(clock)
		ctx := context.Background()

		pending := task.New("MRN-1", task.TypeContactPatient,
			noon.Add(-time.Hour), noon.Add(23*time.Hour))
		require.NoError(t, repo.Save(ctx, pending))

		done, err := pending.Complete("Nurse A", noon)
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, done))

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, task.StatusCompleted, all[0].Status())
		assert.Equal(t, "Nurse A", all[0].CompletedBy())
	})

	t.Run("completed status survives the refresh", func(t *testing.T) {
		repo := NewMemoryTaskRepository(clock)
		ctx := context.Background()

		pending := task.New("MRN-1", task.TypeContactPatient,
			noon.Add(-30*time.Hour), noon.Add(-6*time.Hour))
		done, err := pending.Complete("Nurse A", noon.Add(-10*time.Hour))
		require.NoError(t, err)
		require.NoError(t, repo.Save(ctx, done))

		// The window is long past, but completion is terminal.
		found, err := repo.FindByID(ctx, done.ID())
		require.NoError(t, err)
		assert.Equal(t, task.StatusCompleted, found.Status())
	})
}

package task

import (
	"time"

	"github.com/google/uuid"
)

// Collection operations are pure functions over an ordered task slice. None
// of them mutate their input; operations that change a task splice the new
// value into a copy of the slice at the same index.

// FindByID returns the task with the given id. Absence is a normal outcome,
// reported via the boolean rather than an error.
func FindByID(tasks []Task, id uuid.UUID) (Task, bool) {
	for _, t := range tasks {
		if t.id == id {
			return t, true
		}
	}
	return Task{}, false
}

// BySubject returns the tasks spawned by the given subject, in order.
func BySubject(tasks []Task, subjectID string) []Task {
	var filtered []Task
	for _, t := range tasks {
		if t.subjectID == subjectID {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// ByStatus returns the tasks whose derived status at now equals status.
func ByStatus(tasks []Task, status Status, now time.Time) []Task {
	var filtered []Task
	for _, t := range tasks {
		if t.StatusAt(now) == status {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// UpcomingOnly returns the tasks whose window has not opened at now.
func UpcomingOnly(tasks []Task, now time.Time) []Task {
	return ByStatus(tasks, StatusUpcoming, now)
}

// PendingOnly returns the tasks inside their window at now.
func PendingOnly(tasks []Task, now time.Time) []Task {
	return ByStatus(tasks, StatusPending, now)
}

// OverdueOnly returns the tasks past their window at now.
func OverdueOnly(tasks []Task, now time.Time) []Task {
	return ByStatus(tasks, StatusOverdue, now)
}

// CompletedOnly returns the completed tasks. Completion is persisted and
// terminal, so no re-derivation is needed.
func CompletedOnly(tasks []Task) []Task {
	var filtered []Task
	for _, t := range tasks {
		if t.status == StatusCompleted {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// CompletedInRange returns the completed tasks whose completedAt falls in
// [start, end], both bounds inclusive.
func CompletedInRange(tasks []Task, start, end time.Time) []Task {
	var filtered []Task
	for _, t := range tasks {
		if t.status != StatusCompleted || t.completedAt == nil {
			continue
		}
		if t.completedAt.Before(start) || t.completedAt.After(end) {
			continue
		}
		filtered = append(filtered, t)
	}
	return filtered
}

// CompletedToday returns the tasks completed within the local calendar day
// containing now.
func CompletedToday(tasks []Task, now time.Time) []Task {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Nanosecond)
	return CompletedInRange(tasks, start, end)
}

// RefreshAll returns a snapshot of the collection with each non-completed
// task's persisted status set to its derived value at now.
func RefreshAll(tasks []Task, now time.Time) []Task {
	refreshed := make([]Task, len(tasks))
	for i, t := range tasks {
		t.status = t.StatusAt(now)
		refreshed[i] = t
	}
	return refreshed
}

// ApplyCompleteByID completes the task with the given id and splices the
// result into a copy of the collection at the same index. An absent id
// returns the original collection unchanged with ErrTaskNotFound; an illegal
// transition returns the original collection with the transition error.
func ApplyCompleteByID(tasks []Task, id uuid.UUID, completedBy string, now time.Time) ([]Task, Task, error) {
	for i, t := range tasks {
		if t.id != id {
			continue
		}
		done, err := t.Complete(completedBy, now)
		if err != nil {
			return tasks, Task{}, err
		}
		updated := make([]Task, len(tasks))
		copy(updated, tasks)
		updated[i] = done
		return updated, done, nil
	}
	return tasks, Task{}, ErrTaskNotFound
}

// ApplyNotesByID replaces the notes of the task with the given id and
// splices the result into a copy of the collection at the same index. An
// absent id returns the original collection unchanged with ErrTaskNotFound.
func ApplyNotesByID(tasks []Task, id uuid.UUID, text string) ([]Task, Task, error) {
	for i, t := range tasks {
		if t.id != id {
			continue
		}
		annotated := t.WithNotes(text)
		updated := make([]Task, len(tasks))
		copy(updated, tasks)
		updated[i] = annotated
		return updated, annotated, nil
	}
	return tasks, Task{}, ErrTaskNotFound
}

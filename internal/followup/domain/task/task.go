package task

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyCompleted = errors.New("task is already completed")
	ErrWindowNotOpen    = errors.New("task window is not open yet")
	ErrTaskNotFound     = errors.New("task not found")
)

// Status represents the task lifecycle state. Only StatusCompleted is
// authoritative when persisted; the other three are derived from wall-clock
// time on every read (see StatusAt).
type Status int

const (
	StatusUpcoming Status = iota
	StatusPending
	StatusOverdue
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusUpcoming:
		return "upcoming"
	case StatusPending:
		return "pending"
	case StatusOverdue:
		return "overdue"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// ParseStatus parses a status from its string form.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "upcoming":
		return StatusUpcoming, nil
	case "pending":
		return StatusPending, nil
	case "overdue":
		return StatusOverdue, nil
	case "completed":
		return StatusCompleted, nil
	default:
		return 0, errors.New("invalid status: " + s)
	}
}

// Type identifies the kind of follow-up task. The set is closed; new kinds
// require a new rule in the table.
type Type int

const (
	TypeContactPatient Type = iota
	TypeMedicationReconciliation
	TypeFollowupScheduling
	TypeFacilityHandoff
	TypeCheckinCall
)

func (t Type) String() string {
	switch t {
	case TypeContactPatient:
		return "contact_patient"
	case TypeMedicationReconciliation:
		return "medication_reconciliation"
	case TypeFollowupScheduling:
		return "followup_scheduling"
	case TypeFacilityHandoff:
		return "facility_handoff"
	case TypeCheckinCall:
		return "checkin_call"
	default:
		return "unknown"
	}
}

// ParseType parses a task type from its string form.
func ParseType(s string) (Type, error) {
	switch s {
	case "contact_patient":
		return TypeContactPatient, nil
	case "medication_reconciliation":
		return TypeMedicationReconciliation, nil
	case "followup_scheduling":
		return TypeFollowupScheduling, nil
	case "facility_handoff":
		return TypeFacilityHandoff, nil
	case "checkin_call":
		return TypeCheckinCall, nil
	default:
		return 0, errors.New("invalid task type: " + s)
	}
}

// Task is a time-boxed follow-up obligation spawned from a discharge event.
// Task is a value type: every mutating-looking operation returns a new Task
// and leaves the receiver untouched, so callers replace entries by id rather
// than mutate in place.
type Task struct {
	id          uuid.UUID
	subjectID   string
	taskType    Type
	status      Status
	windowStart time.Time
	windowEnd   time.Time
	completedAt *time.Time
	completedBy string
	notes       string
	createdAt   time.Time
}

// New creates a follow-up task with a fresh id. The initial persisted status
// is always pending; StatusAt corrects upcoming/overdue lazily on read, so
// generation never needs to know "now".
func New(subjectID string, taskType Type, windowStart, windowEnd time.Time) Task {
	return Task{
		id:          uuid.New(),
		subjectID:   subjectID,
		taskType:    taskType,
		status:      StatusPending,
		windowStart: windowStart,
		windowEnd:   windowEnd,
		createdAt:   time.Now().UTC(),
	}
}

// Rehydrate recreates a task from persisted state.
func Rehydrate(
	id uuid.UUID,
	subjectID string,
	taskType Type,
	status Status,
	windowStart, windowEnd time.Time,
	completedAt *time.Time,
	completedBy string,
	notes string,
	createdAt time.Time,
) Task {
	return Task{
		id:          id,
		subjectID:   subjectID,
		taskType:    taskType,
		status:      status,
		windowStart: windowStart,
		windowEnd:   windowEnd,
		completedAt: completedAt,
		completedBy: completedBy,
		notes:       notes,
		createdAt:   createdAt,
	}
}

// Getters

func (t Task) ID() uuid.UUID          { return t.id }
func (t Task) SubjectID() string      { return t.subjectID }
func (t Task) Type() Type             { return t.taskType }
func (t Task) Status() Status         { return t.status }
func (t Task) WindowStart() time.Time { return t.windowStart }
func (t Task) WindowEnd() time.Time   { return t.windowEnd }
func (t Task) CompletedBy() string    { return t.completedBy }
func (t Task) Notes() string          { return t.notes }
func (t Task) CreatedAt() time.Time   { return t.createdAt }
func (t Task) IsCompleted() bool      { return t.status == StatusCompleted }

// CompletedAt returns the completion timestamp, or nil when the task has
// not been completed. The returned pointer is a copy.
func (t Task) CompletedAt() *time.Time {
	if t.completedAt == nil {
		return nil
	}
	ts := *t.completedAt
	return &ts
}

// StatusAt derives the current status from wall-clock time. Completed is
// sticky. Both window bounds are inclusive: a task is pending at exactly
// windowStart and at exactly windowEnd, and overdue only strictly after
// windowEnd.
func (t Task) StatusAt(now time.Time) Status {
	if t.status == StatusCompleted {
		return StatusCompleted
	}
	if now.Before(t.windowStart) {
		return StatusUpcoming
	}
	if now.After(t.windowEnd) {
		return StatusOverdue
	}
	return StatusPending
}

// IsOverdueAt reports whether the task is past its window at now.
func (t Task) IsOverdueAt(now time.Time) bool {
	return t.StatusAt(now) == StatusOverdue
}

// TimeRemaining returns the signed duration until windowEnd: negative when
// overdue, zero at the exact boundary.
func (t Task) TimeRemaining(now time.Time) time.Duration {
	return t.windowEnd.Sub(now)
}

// Countdown decomposes the absolute remaining time into whole hours plus
// remainder minutes, floored to the minute.
type Countdown struct {
	Hours        int
	Minutes      int
	TotalMinutes int
	Overdue      bool
}

// Countdown returns the display projection of TimeRemaining at now.
func (t Task) Countdown(now time.Time) Countdown {
	remaining := t.TimeRemaining(now)
	overdue := remaining < 0
	if overdue {
		remaining = -remaining
	}
	total := int(remaining / time.Minute)
	return Countdown{
		Hours:        total / 60,
		Minutes:      total % 60,
		TotalMinutes: total,
		Overdue:      overdue,
	}
}

// Complete marks the task completed at now, attributed to completedBy.
// Completion is only legal from a derived pending or overdue state: a task
// whose window has not opened fails with ErrWindowNotOpen, and a completed
// task fails with ErrAlreadyCompleted. The receiver is never mutated; the
// completed task is returned as a new value.
func (t Task) Complete(completedBy string, now time.Time) (Task, error) {
	switch t.StatusAt(now) {
	case StatusCompleted:
		return Task{}, ErrAlreadyCompleted
	case StatusUpcoming:
		return Task{}, ErrWindowNotOpen
	}

	done := t
	done.status = StatusCompleted
	ts := now
	done.completedAt = &ts
	done.completedBy = completedBy
	return done, nil
}

// WithNotes returns a copy of the task with notes replaced. Notes are
// last-write-wins, permitted in any state, and keep no history.
func (t Task) WithNotes(text string) Task {
	t.notes = text
	return t
}

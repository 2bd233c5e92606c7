package rule

import (
	"errors"
	"time"

	"github.com/felixgeelhaar/aftercare/internal/followup/domain/subject"
	"github.com/felixgeelhaar/aftercare/internal/followup/domain/task"
)

var ErrInvalidWindow = errors.New("window start offset must not exceed end offset")

// Predicate decides whether a rule applies to a subject. Predicates must be
// pure: no side effects, no captured mutable state.
type Predicate func(subject.Subject) bool

// Rule declares one kind of follow-up task: its time window measured as
// offsets from the subject's reference event, and the condition under which
// it applies.
type Rule struct {
	taskType    task.Type
	windowStart time.Duration
	windowEnd   time.Duration
	applies     Predicate
}

// New creates a rule. Offsets must be non-negative with start not after end.
// A nil predicate means the rule applies to every subject.
func New(taskType task.Type, windowStart, windowEnd time.Duration, applies Predicate) (Rule, error) {
	if windowStart < 0 || windowEnd < 0 || windowStart > windowEnd {
		return Rule{}, ErrInvalidWindow
	}
	if applies == nil {
		applies = func(subject.Subject) bool { return true }
	}
	return Rule{
		taskType:    taskType,
		windowStart: windowStart,
		windowEnd:   windowEnd,
		applies:     applies,
	}, nil
}

// MustNew creates a rule and panics on an invalid window. Reserved for
// statically known offsets such as the default table.
func MustNew(taskType task.Type, windowStart, windowEnd time.Duration, applies Predicate) Rule {
	r, err := New(taskType, windowStart, windowEnd, applies)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Rule) Type() task.Type             { return r.taskType }
func (r Rule) WindowStart() time.Duration  { return r.windowStart }
func (r Rule) WindowEnd() time.Duration    { return r.windowEnd }
func (r Rule) Applies(s subject.Subject) bool { return r.applies(s) }

// Table is an immutable ordered rule set, built once at startup and passed
// explicitly to the Generator. Order is preserved because generated tasks
// follow table order, but rules are otherwise independent.
type Table struct {
	rules []Rule
}

// NewTable creates a table from the given rules.
func NewTable(rules ...Rule) Table {
	owned := make([]Rule, len(rules))
	copy(owned, rules)
	return Table{rules: owned}
}

// Rules returns a copy of the rule list in table order.
func (t Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Len returns the number of rules in the table.
func (t Table) Len() int { return len(t.rules) }

// DefaultTable returns the standard discharge follow-up protocol:
//
//	contact_patient            0-24h   every discharge
//	medication_reconciliation  0-48h   every discharge
//	followup_scheduling        0-48h   every discharge
//	facility_handoff           0-24h   skilled nursing facility only
//	checkin_call               48-72h  high-risk patients only
func DefaultTable() Table {
	return NewTable(
		MustNew(task.TypeContactPatient, 0, 24*time.Hour, nil),
		MustNew(task.TypeMedicationReconciliation, 0, 48*time.Hour, nil),
		MustNew(task.TypeFollowupScheduling, 0, 48*time.Hour, nil),
		MustNew(task.TypeFacilityHandoff, 0, 24*time.Hour, func(s subject.Subject) bool {
			return s.Disposition == subject.DispositionSkilledNursing
		}),
		MustNew(task.TypeCheckinCall, 48*time.Hour, 72*time.Hour, func(s subject.Subject) bool {
			return s.RiskTier == subject.RiskHigh
		}),
	)
}

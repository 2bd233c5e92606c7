package rule

import (
	"github.com/felixgeelhaar/aftercare/internal/followup/domain/subject"
	"github.com/felixgeelhaar/aftercare/internal/followup/domain/task"
)

// Generator produces follow-up tasks for discharged subjects from a rule
// table. It is stateless apart from the table and never consults the clock:
// windows are absolute timestamps computed from the subject's reference
// event, and status derivation is left to reads.
type Generator struct {
	table Table
}

// NewGenerator creates a generator over the given table.
func NewGenerator(table Table) Generator {
	return Generator{table: table}
}

// Generate evaluates every rule against the subject and returns one task per
// satisfied rule, in table order. A malformed reference date/time is a fatal
// input error identifying the subject.
func (g Generator) Generate(subj subject.Subject) ([]task.Task, error) {
	ref, err := subj.ReferenceEventTime()
	if err != nil {
		return nil, err
	}

	tasks := make([]task.Task, 0, g.table.Len())
	for _, r := range g.table.rules {
		if !r.Applies(subj) {
			continue
		}
		tasks = append(tasks, task.New(
			subj.ID,
			r.Type(),
			ref.Add(r.WindowStart()),
			ref.Add(r.WindowEnd()),
		))
	}
	return tasks, nil
}

// GenerateAll concatenates Generate per subject in input order. The first
// invalid subject fails the whole batch; nothing is partially returned.
func (g Generator) GenerateAll(subjects []subject.Subject) ([]task.Task, error) {
	var tasks []task.Task
	for _, subj := range subjects {
		generated, err := g.Generate(subj)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, generated...)
	}
	return tasks, nil
}

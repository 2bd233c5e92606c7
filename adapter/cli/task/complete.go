package task

import (
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/aftercare/adapter/cli"
	"github.com/felixgeelhaar/aftercare/internal/followup/application/commands"
	domain "github.com/felixgeelhaar/aftercare/internal/followup/domain/task"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var completedBy string

var completeCmd = &cobra.Command{
	Use:   "complete [task-id]",
	Short: "Mark a follow-up task as complete",
	Long: `Mark a follow-up task as complete by its ID. Completion is only
permitted once the task's window has opened.

Examples:
  aftercare task complete 550e8400-e29b-41d4-a716-446655440000 --by "Nurse A"`,
	Aliases: []string{"done"},
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.CompleteTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		by := completedBy
		if by == "" {
			by = app.Clinician
		}

		ctx := cmd.Context()
		done, err := app.CompleteTaskHandler.Handle(ctx, commands.CompleteTaskCommand{
			TaskID:      taskID,
			CompletedBy: by,
			Now:         time.Now(),
		})
		switch {
		case errors.Is(err, domain.ErrAlreadyCompleted):
			return fmt.Errorf("task %s is already completed", taskID)
		case errors.Is(err, domain.ErrWindowNotOpen):
			return fmt.Errorf("task %s cannot be completed before its window opens", taskID)
		case errors.Is(err, domain.ErrTaskNotFound):
			return fmt.Errorf("no task with id %s", taskID)
		case err != nil:
			return fmt.Errorf("failed to complete task: %w", err)
		}

		fmt.Printf("Task completed: %s (%s)\n", done.ID(), done.Type())
		return nil
	},
}

func init() {
	completeCmd.Flags().StringVar(&completedBy, "by", "", "who completed the task")
}

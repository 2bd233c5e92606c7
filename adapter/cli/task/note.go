package task

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/aftercare/adapter/cli"
	"github.com/felixgeelhaar/aftercare/internal/followup/application/commands"
	domain "github.com/felixgeelhaar/aftercare/internal/followup/domain/task"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note [task-id] [text]",
	Short: "Set the notes on a follow-up task",
	Long: `Replace the free-text notes on a follow-up task. Notes are
last-write-wins and permitted in any state.

Examples:
  aftercare task note 550e8400-e29b-41d4-a716-446655440000 "left voicemail"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.AnnotateTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		ctx := cmd.Context()
		_, err = app.AnnotateTaskHandler.Handle(ctx, commands.AnnotateTaskCommand{
			TaskID: taskID,
			Notes:  args[1],
		})
		if errors.Is(err, domain.ErrTaskNotFound) {
			return fmt.Errorf("no task with id %s", taskID)
		}
		if err != nil {
			return fmt.Errorf("failed to update notes: %w", err)
		}

		fmt.Printf("Notes updated: %s\n", taskID)
		return nil
	},
}

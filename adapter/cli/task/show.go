package task

import (
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/aftercare/adapter/cli"
	"github.com/felixgeelhaar/aftercare/internal/followup/application/queries"
	domain "github.com/felixgeelhaar/aftercare/internal/followup/domain/task"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show a follow-up task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GetTaskHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		taskID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid task ID: %w", err)
		}

		ctx := cmd.Context()
		dto, err := app.GetTaskHandler.Handle(ctx, queries.GetTaskQuery{
			TaskID: taskID,
			Now:    time.Now(),
		})
		if errors.Is(err, domain.ErrTaskNotFound) {
			return fmt.Errorf("no task with id %s", taskID)
		}
		if err != nil {
			return fmt.Errorf("failed to load task: %w", err)
		}

		fmt.Printf("Task:     %s\n", dto.ID)
		fmt.Printf("Subject:  %s\n", dto.SubjectID)
		fmt.Printf("Type:     %s\n", dto.Type)
		fmt.Printf("Status:   %s\n", dto.Status)
		fmt.Printf("Window:   %s - %s\n",
			dto.WindowStart.Format("2006-01-02 15:04"),
			dto.WindowEnd.Format("2006-01-02 15:04"))
		if dto.Status == "completed" {
			if dto.CompletedAt != nil {
				fmt.Printf("Done at:  %s\n", dto.CompletedAt.Format("2006-01-02 15:04"))
			}
			if dto.CompletedBy != "" {
				fmt.Printf("Done by:  %s\n", dto.CompletedBy)
			}
		} else if dto.Overdue {
			fmt.Printf("Overdue:  %dh%02dm\n", dto.HoursLeft, dto.MinutesLeft)
		} else {
			fmt.Printf("Left:     %dh%02dm\n", dto.HoursLeft, dto.MinutesLeft)
		}
		if dto.Notes != "" {
			fmt.Printf("Notes:    %s\n", dto.Notes)
		}
		return nil
	},
}

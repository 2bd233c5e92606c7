package task

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/aftercare/adapter/cli"
	"github.com/felixgeelhaar/aftercare/internal/followup/application/queries"
	"github.com/spf13/cobra"
)

var (
	listStatus  string
	listSubject string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List follow-up tasks",
	Long: `List follow-up tasks, optionally filtered by lifecycle state or
subject.

Examples:
  aftercare task list
  aftercare task list --status overdue
  aftercare task list --subject MRN-1042`,
	Aliases: []string{"ls"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ListTasksHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		dtos, err := app.ListTasksHandler.Handle(ctx, queries.ListTasksQuery{
			SubjectID: listSubject,
			Status:    listStatus,
			Now:       time.Now(),
		})
		if err != nil {
			return fmt.Errorf("failed to list tasks: %w", err)
		}

		if len(dtos) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		for _, dto := range dtos {
			remaining := fmt.Sprintf("%dh%02dm left", dto.HoursLeft, dto.MinutesLeft)
			if dto.Overdue {
				remaining = fmt.Sprintf("%dh%02dm overdue", dto.HoursLeft, dto.MinutesLeft)
			}
			if dto.Status == "completed" {
				remaining = "done"
				if dto.CompletedBy != "" {
					remaining = "done by " + dto.CompletedBy
				}
			}
			fmt.Printf("%s  %-10s %-26s %-12s %s\n",
				dto.ID, dto.Status, dto.Type, dto.SubjectID, remaining)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "filter by status (upcoming|pending|overdue|completed|all)")
	listCmd.Flags().StringVar(&listSubject, "subject", "", "filter by subject id")
}

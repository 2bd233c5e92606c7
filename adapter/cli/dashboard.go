package cli

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/aftercare/internal/followup/application/queries"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the follow-up status breakdown",
	Long: `Display the number of follow-up tasks per lifecycle state and how
many were completed today.

Examples:
  aftercare dashboard`,
	Aliases: []string{"dash"},
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.DashboardHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		ctx := cmd.Context()
		dto, err := app.DashboardHandler.Handle(ctx, queries.DashboardQuery{Now: time.Now()})
		if err != nil {
			return fmt.Errorf("failed to load dashboard: %w", err)
		}

		fmt.Printf("Follow-up tasks (%d total)\n", dto.Total)
		fmt.Printf("  upcoming:  %d\n", dto.Upcoming)
		fmt.Printf("  pending:   %d\n", dto.Pending)
		fmt.Printf("  overdue:   %d\n", dto.Overdue)
		fmt.Printf("  completed: %d (%d today)\n", dto.Completed, dto.CompletedToday)
		return nil
	},
}

func init() {
	AddCommand(dashboardCmd)
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/felixgeelhaar/aftercare/internal/followup/application/commands"
	"github.com/felixgeelhaar/aftercare/internal/followup/domain/subject"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [subjects.json]",
	Short: "Generate follow-up tasks from discharge records",
	Long: `Read a JSON array of discharge records and generate the applicable
follow-up tasks for each one.

Each record needs an id, a reference_date (YYYY-MM-DD), an optional
reference_time (HH:MM, defaults to midnight), a disposition, and a risk_tier.

Examples:
  aftercare ingest discharges.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := GetApp()
		if app == nil || app.GenerateTasksHandler == nil {
			return fmt.Errorf("application not initialized - database connection required")
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		var subjects []subject.Subject
		if err := json.Unmarshal(data, &subjects); err != nil {
			return fmt.Errorf("failed to parse %s: %w", args[0], err)
		}

		ctx := cmd.Context()
		tasks, err := app.GenerateTasksHandler.Handle(ctx, commands.GenerateTasksCommand{
			Subjects: subjects,
		})
		if err != nil {
			if errors.Is(err, subject.ErrInvalidReference) {
				return fmt.Errorf("batch rejected: %w", err)
			}
			return fmt.Errorf("failed to generate tasks: %w", err)
		}

		fmt.Printf("Generated %d tasks for %d subjects\n", len(tasks), len(subjects))
		for _, t := range tasks {
			fmt.Printf("  %s  %-26s %s\n", t.ID(), t.Type(), t.SubjectID())
		}
		return nil
	},
}

func init() {
	AddCommand(ingestCmd)
}

package task

import (
	"github.com/spf13/cobra"
)

// Cmd is the task command group
var Cmd = &cobra.Command{
	Use:   "task",
	Short: "Manage follow-up tasks",
	Long:  `List, complete, annotate, and inspect follow-up tasks.`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(completeCmd)
	Cmd.AddCommand(noteCmd)
	Cmd.AddCommand(showCmd)
}

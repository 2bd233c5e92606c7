package cli

import (
	"github.com/felixgeelhaar/aftercare/internal/followup/application/commands"
	"github.com/felixgeelhaar/aftercare/internal/followup/application/queries"
)

// App holds the CLI application dependencies.
type App struct {
	// Command Handlers
	GenerateTasksHandler *commands.GenerateTasksHandler
	CompleteTaskHandler  *commands.CompleteTaskHandler
	AnnotateTaskHandler  *commands.AnnotateTaskHandler

	// Query Handlers
	ListTasksHandler *queries.ListTasksHandler
	GetTaskHandler   *queries.GetTaskHandler
	DashboardHandler *queries.DashboardHandler

	// Clinician is the default completedBy identity.
	Clinician string
}

var app *App

// NewApp creates a new CLI application with the given handlers.
func NewApp(
	generateTasksHandler *commands.GenerateTasksHandler,
	completeTaskHandler *commands.CompleteTaskHandler,
	annotateTaskHandler *commands.AnnotateTaskHandler,
	listTasksHandler *queries.ListTasksHandler,
	getTaskHandler *queries.GetTaskHandler,
	dashboardHandler *queries.DashboardHandler,
) *App {
	return &App{
		GenerateTasksHandler: generateTasksHandler,
		CompleteTaskHandler:  completeTaskHandler,
		AnnotateTaskHandler:  annotateTaskHandler,
		ListTasksHandler:     listTasksHandler,
		GetTaskHandler:       getTaskHandler,
		DashboardHandler:     dashboardHandler,
	}
}

// SetApp sets the global CLI application.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application.
func GetApp() *App {
	return app
}

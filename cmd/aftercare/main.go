package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/aftercare/adapter/cli"
	clitask "github.com/felixgeelhaar/aftercare/adapter/cli/task"
	"github.com/felixgeelhaar/aftercare/internal/followup/application/commands"
	"github.com/felixgeelhaar/aftercare/internal/followup/application/queries"
	"github.com/felixgeelhaar/aftercare/internal/followup/domain/rule"
	"github.com/felixgeelhaar/aftercare/internal/followup/domain/task"
	"github.com/felixgeelhaar/aftercare/internal/followup/infrastructure/persistence"
	"github.com/felixgeelhaar/aftercare/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/aftercare/pkg/config"
	"github.com/felixgeelhaar/aftercare/pkg/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{AppEnv: "development"}
	}

	level := cfg.LogLevel
	if cfg.IsDevelopment() {
		level = "debug"
	}
	logger := observability.NewLogger(observability.LogConfig{
		Level:  level,
		Format: observability.LogFormat(cfg.LogFormat),
	})
	cli.SetLogger(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	var taskRepo task.Repository
	switch database.DriverFor(cfg.DatabaseURL) {
	case database.DriverPostgres:
		pool, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		repo := persistence.NewPostgresTaskRepository(pool)
		if err := repo.InitSchema(ctx); err != nil {
			logger.Error("failed to initialize schema", "error", err)
			os.Exit(1)
		}
		taskRepo = repo

	default:
		db, err := database.OpenSQLite(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		repo := persistence.NewSQLiteTaskRepository(db)
		if err := repo.InitSchema(ctx); err != nil {
			logger.Error("failed to initialize schema", "error", err)
			os.Exit(1)
		}
		taskRepo = repo
	}

	generator := rule.NewGenerator(rule.DefaultTable())

	app := cli.NewApp(
		commands.NewGenerateTasksHandler(generator, taskRepo),
		commands.NewCompleteTaskHandler(taskRepo),
		commands.NewAnnotateTaskHandler(taskRepo),
		queries.NewListTasksHandler(taskRepo),
		queries.NewGetTaskHandler(taskRepo),
		queries.NewDashboardHandler(taskRepo),
	)
	app.Clinician = cfg.Clinician
	cli.SetApp(app)

	cli.AddCommand(clitask.Cmd)

	cli.Execute(ctx)
}

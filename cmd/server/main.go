// Package main implements the entry point for the taskboard API server,
// a task-management backend with per-user private tasks, globally visible
// shared tasks, and anonymous contributions.
package main

import (
	"context"
	"log"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	rootLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		log.Fatalf("failed to set up logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, rootLogger)
	if err != nil {
		rootLogger.Error("failed to initialize application", slog.String("error", err.Error()))
		stop()
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer app.cleanup()

	if err := app.serve(ctx); err != nil {
		rootLogger.Error("server exited with error", slog.String("error", err.Error()))
		stop()
		log.Fatalf("server exited with error: %v", err)
	}
}

// Package main implements the entry point for the Taskr API server,
// a small task-management REST API with token authentication and a
// Redis read cache in front of the task store.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/phrazzld/taskr-api/internal/config"
	"github.com/phrazzld/taskr-api/internal/platform/logger"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalf("taskr-api: %v", err)
	}
}

// run loads configuration, connects the backends, and serves HTTP until a
// shutdown signal arrives.
func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	lg, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	lg.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver))

	deps, err := connectBackends(ctx, cfg, lg)
	if err != nil {
		return err
	}

	app, err := newApplication(cfg, lg, deps)
	if err != nil {
		deps.close(context.Background(), lg)
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx, app.setupRouter())
}

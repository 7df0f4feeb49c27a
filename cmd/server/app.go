package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskr-api/internal/config"
	"github.com/phrazzld/taskr-api/internal/service"
	"github.com/phrazzld/taskr-api/internal/service/auth"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	backends *backends

	authService *auth.Service
	taskService service.TaskService
}

// newApplication wires services on top of already connected backends.
func newApplication(cfg *config.Config, logger *slog.Logger, deps *backends) (*application, error) {
	app := &application{
		config:   cfg,
		logger:   logger,
		backends: deps,
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	app.authService, err = auth.NewService(deps.users, jwtService, hasher, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	app.taskService, err = service.NewTaskService(deps.tasks, deps.cache, logger,
		service.WithCacheTTL(time.Duration(cfg.Cache.TTLSeconds)*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	return app, nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup(ctx context.Context) {
	if app.backends != nil {
		app.backends.close(ctx, app.logger)
	}
	app.logger.Info("Application shutdown completed")
}

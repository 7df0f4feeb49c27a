package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskr-api/internal/cache"
	"github.com/phrazzld/taskr-api/internal/config"
	"github.com/phrazzld/taskr-api/internal/platform/mongo"
	"github.com/phrazzld/taskr-api/internal/platform/postgres"
	"github.com/phrazzld/taskr-api/internal/platform/redis"
	"github.com/phrazzld/taskr-api/internal/redact"
	"github.com/phrazzld/taskr-api/internal/store"
)

// Supported values of database.driver.
const (
	driverPostgres = "postgres"
	driverMongo    = "mongo"
)

// closer releases one backend connection.
type closer struct {
	name string
	fn   func(ctx context.Context) error
}

// backends bundles the store and cache implementations the application runs on.
type backends struct {
	users   store.UserStore
	tasks   store.TaskStore
	cache   cache.Cache
	closers []closer
}

// close releases every connection in reverse order of opening.
func (b *backends) close(ctx context.Context, logger *slog.Logger) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		c := b.closers[i]
		if err := c.fn(ctx); err != nil {
			logger.Error("Error closing connection",
				"backend", c.name,
				"error", redact.Error(err))
		}
	}
	b.closers = nil
}

// connectBackends opens the configured store and the Redis cache.
// On failure any connection already opened is closed again.
func connectBackends(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backends, error) {
	b := &backends{}

	var err error
	switch cfg.Database.Driver {
	case driverPostgres:
		err = b.connectPostgres(ctx, cfg.Database, logger)
	case driverMongo:
		err = b.connectMongo(ctx, cfg.Database, logger)
	default:
		err = fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		b.close(context.Background(), logger)
		return nil, err
	}

	client, err := redis.NewClient(ctx, cfg.Cache.URL)
	if err != nil {
		b.close(context.Background(), logger)
		return nil, fmt.Errorf("failed to connect to cache: %w", err)
	}
	b.closers = append(b.closers, closer{name: "redis", fn: func(context.Context) error {
		return client.Close()
	}})
	b.cache = redis.NewCache(client)
	logger.Info("Cache connection established")

	return b, nil
}

func (b *backends) connectPostgres(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) error {
	db, err := postgres.Open(ctx, cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	b.closers = append(b.closers, closer{name: "postgres", fn: func(context.Context) error {
		return db.Close()
	}})

	if err := postgres.Migrate(ctx, db, logger); err != nil {
		return err
	}

	b.users = postgres.NewPostgresUserStore(db)
	b.tasks = postgres.NewPostgresTaskStore(db)
	logger.Info("Database connection established", "driver", driverPostgres)
	return nil
}

func (b *backends) connectMongo(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) error {
	client, err := mongo.Connect(ctx, cfg.URL)
	if err != nil {
		return err
	}
	b.closers = append(b.closers, closer{name: "mongo", fn: client.Disconnect})

	db := client.Database(cfg.MongoDatabase)
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	b.users = mongo.NewMongoUserStore(db)
	b.tasks = mongo.NewMongoTaskStore(db)
	logger.Info("Database connection established",
		"driver", driverMongo,
		"database", cfg.MongoDatabase)
	return nil
}

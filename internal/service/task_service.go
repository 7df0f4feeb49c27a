package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskr-api/internal/cache"
	"github.com/phrazzld/taskr-api/internal/domain"
	"github.com/phrazzld/taskr-api/internal/platform/logger"
	"github.com/phrazzld/taskr-api/internal/redact"
	"github.com/phrazzld/taskr-api/internal/store"
	"github.com/sethvargo/go-retry"
)

// Invalidation retry defaults.
const (
	DefaultInvalidateAttempts = 3
	DefaultInvalidateBackoff  = 50 * time.Millisecond
)

// TaskService defines the task use cases.
type TaskService interface {
	// ListTasks returns every task, served from the cache when possible.
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// CreateTask stores a new pending task with the given title.
	CreateTask(ctx context.Context, title string) (*domain.Task, error)

	// UpdateTaskStatus sets the status of a task. A nil status leaves the
	// task unchanged but still rewrites it.
	UpdateTaskStatus(ctx context.Context, id uuid.UUID, status *domain.TaskStatus) (*domain.Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

// TaskServiceOption customizes a task service.
type TaskServiceOption func(*taskServiceImpl)

// WithCacheTTL sets how long a cached listing lives.
func WithCacheTTL(ttl time.Duration) TaskServiceOption {
	return func(s *taskServiceImpl) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithInvalidateRetry sets how many times and how often cache invalidation is attempted.
func WithInvalidateRetry(attempts int, backoff time.Duration) TaskServiceOption {
	return func(s *taskServiceImpl) {
		if attempts > 0 {
			s.invalidateAttempts = attempts
		}
		if backoff > 0 {
			s.invalidateBackoff = backoff
		}
	}
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	cache  cache.Cache
	logger *slog.Logger

	ttl                time.Duration
	invalidateAttempts int
	invalidateBackoff  time.Duration
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	tasks store.TaskStore,
	c cache.Cache,
	logger *slog.Logger,
	opts ...TaskServiceOption,
) (TaskService, error) {
	if tasks == nil {
		return nil, fmt.Errorf("task store cannot be nil")
	}
	if c == nil {
		return nil, fmt.Errorf("cache cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &taskServiceImpl{
		tasks:              tasks,
		cache:              c,
		logger:             logger.With(slog.String("component", "task_service")),
		ttl:                cache.DefaultTTL,
		invalidateAttempts: DefaultInvalidateAttempts,
		invalidateBackoff:  DefaultInvalidateBackoff,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ListTasks implements TaskService.
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if tasks, ok := s.cachedTasks(ctx, log); ok {
		return tasks, nil
	}

	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		return nil, NewServiceError("task", "list", err)
	}

	encoded, err := json.Marshal(tasks)
	if err != nil {
		log.Error("failed to encode task listing for cache", "error", err)
		return tasks, nil
	}
	if err := s.cache.Set(ctx, cache.TasksKey, encoded, s.ttl); err != nil {
		log.Warn("failed to populate task cache",
			"error", redact.Error(err),
			"key", cache.TasksKey)
	}

	return tasks, nil
}

// cachedTasks returns the cached listing. Any failure is reported as a miss.
func (s *taskServiceImpl) cachedTasks(ctx context.Context, log *slog.Logger) ([]domain.Task, bool) {
	raw, err := s.cache.Get(ctx, cache.TasksKey)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			log.Warn("task cache read failed, falling back to store",
				"error", redact.Error(err),
				"key", cache.TasksKey)
		}
		return nil, false
	}

	var tasks []domain.Task
	if err := json.Unmarshal(raw, &tasks); err != nil || tasks == nil {
		log.Warn("discarding undecodable task cache entry",
			"error", fmt.Errorf("%w: %v", ErrCacheDecode, err),
			"key", cache.TasksKey)
		return nil, false
	}

	log.Debug("task listing served from cache", "count", len(tasks))
	return tasks, true
}

// CreateTask implements TaskService.
func (s *taskServiceImpl) CreateTask(ctx context.Context, title string) (*domain.Task, error) {
	task, err := domain.NewTask(title)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Insert(ctx, task); err != nil {
		return nil, NewServiceError("task", "create", err)
	}

	s.invalidate(ctx)

	logger.FromContextOrDefault(ctx, s.logger).Info("task created", "task_id", task.ID)
	return task, nil
}

// UpdateTaskStatus implements TaskService.
func (s *taskServiceImpl) UpdateTaskStatus(
	ctx context.Context,
	id uuid.UUID,
	status *domain.TaskStatus,
) (*domain.Task, error) {
	if status != nil && !status.Valid() {
		return nil, domain.NewValidationError("status", `must be either "pending" or "complete"`, domain.ErrInvalidTaskStatus)
	}

	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("task", "update", err)
	}

	if status != nil {
		task.Status = *status
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, NewServiceError("task", "update", err)
	}

	s.invalidate(ctx)

	logger.FromContextOrDefault(ctx, s.logger).Info("task updated",
		"task_id", task.ID,
		"status", task.Status)
	return task, nil
}

// DeleteTask implements TaskService.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		return NewServiceError("task", "delete", err)
	}

	s.invalidate(ctx)

	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", "task_id", id)
	return nil
}

// invalidate drops the cached listing after a successful write. A failure
// after all attempts is logged; the entry then lives until its TTL.
// The write has already happened, so a cancelled request does not stop it.
func (s *taskServiceImpl) invalidate(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	log := logger.FromContextOrDefault(ctx, s.logger)

	backoff := retry.WithMaxRetries(uint64(s.invalidateAttempts-1), retry.NewConstant(s.invalidateBackoff))
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := s.cache.Delete(ctx, cache.TasksKey); err != nil {
			log.Debug("task cache invalidation attempt failed",
				"attempt", attempt,
				"error", redact.Error(err))
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to invalidate task cache",
			"error", redact.Error(err),
			"key", cache.TasksKey,
			"attempts", attempt)
	}
}

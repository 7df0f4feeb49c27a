package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskr-api/internal/domain"
)

// TaskStore defines the interface for task persistence. It is the
// authoritative source for tasks; caches only ever hold derived copies.
type TaskStore interface {
	// FindAll returns every task, oldest first.
	FindAll(ctx context.Context) ([]domain.Task, error)

	// FindByID retrieves a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Insert persists a new task. The store assigns the ID and timestamps,
	// defaults an empty status to pending, and writes them back into task.
	Insert(ctx context.Context, task *domain.Task) error

	// Update persists the task's title and status and refreshes UpdatedAt.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task by ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskr-api/internal/domain"
	"github.com/phrazzld/taskr-api/internal/store"
)

// MockTaskStore is an in-memory store.TaskStore that counts calls.
type MockTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]domain.Task
	clock time.Time

	// Errors returned instead of the default behavior when set
	FindAllErr  error
	FindByIDErr error
	InsertErr   error
	UpdateErr   error
	DeleteErr   error

	// Call tracking for verification
	FindAllCalls  int
	FindByIDCalls int
	InsertCalls   int
	UpdateCalls   int
	DeleteCalls   int
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates an empty in-memory task store.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		tasks: make(map[uuid.UUID]domain.Task),
		clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so FindAll ordering is stable.
func (m *MockTaskStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

// FindAll implements store.TaskStore
func (m *MockTaskStore) FindAll(ctx context.Context) ([]domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindAllCalls++

	if m.FindAllErr != nil {
		return nil, m.FindAllErr
	}

	tasks := make([]domain.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

// FindByID implements store.TaskStore
func (m *MockTaskStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindByIDCalls++

	if m.FindByIDErr != nil {
		return nil, m.FindByIDErr
	}

	t, ok := m.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return &t, nil
}

// Insert implements store.TaskStore
func (m *MockTaskStore) Insert(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertCalls++

	if m.InsertErr != nil {
		return m.InsertErr
	}

	if task.Status == "" {
		task.Status = domain.TaskStatusPending
	}
	task.ID = uuid.New()
	task.CreatedAt = m.tick()
	task.UpdatedAt = task.CreatedAt
	m.tasks[task.ID] = *task
	return nil
}

// Update implements store.TaskStore
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalls++

	if m.UpdateErr != nil {
		return m.UpdateErr
	}

	existing, ok := m.tasks[task.ID]
	if !ok {
		return store.ErrTaskNotFound
	}
	task.CreatedAt = existing.CreatedAt
	task.UpdatedAt = m.tick()
	m.tasks[task.ID] = *task
	return nil
}

// Delete implements store.TaskStore
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls++

	if m.DeleteErr != nil {
		return m.DeleteErr
	}

	if _, ok := m.tasks[id]; !ok {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, id)
	return nil
}

// Len returns the number of stored tasks.
func (m *MockTaskStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tasks)
}

// Writes returns the total number of Insert, Update and Delete calls.
func (m *MockTaskStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.InsertCalls + m.UpdateCalls + m.DeleteCalls
}

// Reads returns the number of FindAll calls.
func (m *MockTaskStore) Reads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.FindAllCalls
}

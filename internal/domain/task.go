package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the completion state of a task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending  TaskStatus = "pending"
	TaskStatusComplete TaskStatus = "complete"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	return s == TaskStatusPending || s == TaskStatusComplete
}

// ParseTaskStatus converts raw input into a TaskStatus.
func ParseTaskStatus(raw string) (TaskStatus, error) {
	s := TaskStatus(raw)
	if !s.Valid() {
		return "", NewValidationError("status", `must be either "pending" or "complete"`, ErrInvalidTaskStatus)
	}
	return s, nil
}

// Task is a single to-do item. Its ID is assigned by the task store on insert.
type Task struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Status    TaskStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewTask creates an unsaved pending task with the given title.
// The title is trimmed; an empty result fails validation.
func NewTask(title string) (*Task, error) {
	task := &Task{
		Title:  strings.TrimSpace(title),
		Status: TaskStatusPending,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the task's user-supplied fields. The ID is not checked
// because unsaved tasks have none yet.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrValidation)
	}
	if !t.Status.Valid() {
		return NewValidationError("status", `must be either "pending" or "complete"`, ErrInvalidTaskStatus)
	}
	return nil
}

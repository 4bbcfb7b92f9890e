package task

import (
	"context"
	"time"
)

// Repository is the durable store behind the board.
type Repository interface {
	// FetchWeekTasks returns all tasks dated within [start, end] (inclusive).
	// Rows that cannot be decoded are skipped, not returned as errors.
	FetchWeekTasks(ctx context.Context, start, end time.Time) ([]*Task, error)

	// GetTask retrieves a task by ID. Returns ErrTaskNotFound if it does not exist.
	GetTask(ctx context.Context, id string) (*Task, error)

	// CreateTask adds a new task. Returns ErrDuplicateTask if the ID is taken.
	CreateTask(ctx context.Context, t *Task) error

	// UpdateTaskPlacement moves a task to a new date, period and time.
	// Returns ErrPeriodMismatch if the period does not match the time.
	UpdateTaskPlacement(ctx context.Context, id string, p Placement) error

	// UpdateTaskFields applies a partial update.
	UpdateTaskFields(ctx context.Context, id string, f Fields) error

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id string) error

	// ListAllTasks returns every task, ordered by date and time.
	ListAllTasks(ctx context.Context) ([]*Task, error)

	// Close releases any resources held by the repository.
	Close() error
}

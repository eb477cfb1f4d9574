package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dstanton/taskminder/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns ErrInvalidEntity if the owning user does not exist.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID, regardless of owner.
	// Ownership checks are the caller's responsibility.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByUser retrieves all tasks owned by the given user in insertion
	// order (created_at, then id).
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// Update saves the full state of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindDueForReminder retrieves tasks that are candidates for a reminder
	// on the calendar day containing now: uncompleted, with a notification
	// email, due that day, and not yet reminded that day.
	FindDueForReminder(ctx context.Context, now time.Time) ([]*domain.Task, error)

	// MarkReminded records a reminder dispatch at the given time. The write
	// is guarded so a task is marked at most once per calendar day; it
	// returns false without error when another writer already marked the
	// task that day.
	MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

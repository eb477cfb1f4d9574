package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dstanton/taskminder/internal/domain"
	"github.com/dstanton/taskminder/internal/platform/logger"
	"github.com/dstanton/taskminder/internal/store"
)

// TaskPatch describes a partial task update. Nil pointer fields are left
// unchanged; provided fields replace the stored value (shallow merge).
// RemoveDueDate clears the due date regardless of the DueDate field.
type TaskPatch struct {
	Text              *string
	Completed         *bool
	DueDate           *time.Time
	RemoveDueDate     bool
	NotificationEmail *string
}

// TaskService implements owner-scoped CRUD over tasks. Every mutating
// operation loads the record, evaluates the ownership predicate, and only
// then touches the store; handlers never duplicate the check.
type TaskService struct {
	taskStore store.TaskStore
	userStore store.UserStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService with the given dependencies.
func NewTaskService(taskStore store.TaskStore, userStore store.UserStore, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{
		taskStore: taskStore,
		userStore: userStore,
		logger:    logger.With(slog.String("component", "task_service")),
	}
}

// List returns all tasks owned by the given user in insertion order.
func (s *TaskService) List(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	tasks, err := s.taskStore.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Create validates and stores a new task for the given owner. When no
// notification email is supplied, the owner's account email is used so
// reminders have a recipient by default.
func (s *TaskService) Create(
	ctx context.Context,
	ownerID uuid.UUID,
	text string,
	dueDate *time.Time,
	notificationEmail string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if notificationEmail == "" {
		owner, err := s.userStore.GetByID(ctx, ownerID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve task owner: %w", err)
		}
		notificationEmail = owner.Email
	}

	task, err := domain.NewTask(ownerID, text, dueDate, notificationEmail)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Debug("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", ownerID.String()))
	return task, nil
}

// Update applies a partial update to a task after verifying ownership.
// Returns store.ErrTaskNotFound for unknown ids and ErrTaskNotOwned when the
// caller is not the owner.
func (s *TaskService) Update(
	ctx context.Context,
	ownerID uuid.UUID,
	taskID uuid.UUID,
	patch TaskPatch,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.authorize(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	if patch.Text != nil {
		trimmed := strings.TrimSpace(*patch.Text)
		if trimmed == "" {
			return nil, domain.ErrEmptyTaskText
		}
		task.Text = trimmed
	}
	if patch.Completed != nil {
		task.Completed = *patch.Completed
	}
	if patch.RemoveDueDate {
		task.DueDate = nil
	} else if patch.DueDate != nil {
		due := *patch.DueDate
		task.DueDate = &due
	}
	if patch.NotificationEmail != nil {
		task.NotificationEmail = strings.TrimSpace(*patch.NotificationEmail)
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	log.Debug("task updated",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", ownerID.String()))
	return task, nil
}

// Delete removes a task after verifying ownership.
// Returns store.ErrTaskNotFound for unknown ids and ErrTaskNotOwned when the
// caller is not the owner.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.authorize(ctx, ownerID, taskID); err != nil {
		return err
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	log.Debug("task deleted",
		slog.String("task_id", taskID.String()),
		slog.String("user_id", ownerID.String()))
	return nil
}

// authorize loads the task and evaluates the ownership predicate.
// The not-found check runs first so a non-owner probing random ids cannot
// distinguish "exists but not yours" from "does not exist" by error shape
// alone; the task contents are never returned on failure.
func (s *TaskService) authorize(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !task.OwnedBy(ownerID) {
		return nil, ErrTaskNotOwned
	}

	return task, nil
}

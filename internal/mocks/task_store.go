package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dstanton/taskminder/internal/domain"
	"github.com/dstanton/taskminder/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn             func(ctx context.Context, task *domain.Task) error
	GetByIDFn            func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListByUserFn         func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	UpdateFn             func(ctx context.Context, task *domain.Task) error
	DeleteFn             func(ctx context.Context, id uuid.UUID) error
	FindDueForReminderFn func(ctx context.Context, now time.Time) ([]*domain.Task, error)
	MarkRemindedFn       func(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)

	// Data for default implementation
	mu    sync.Mutex
	Tasks map[uuid.UUID]*domain.Task

	// MarkedIDs records every id MarkReminded was called with, in order.
	MarkedIDs []uuid.UUID
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Tasks[task.ID] = task
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	task, exists := m.Tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// ListByUser implements the TaskStore interface
func (m *MockTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	tasks := make([]*domain.Task, 0)
	for _, task := range m.Tasks {
		if task.UserID == userID {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
		}
		return tasks[i].ID.String() < tasks[j].ID.String()
	})
	return tasks, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.Tasks[task.ID]; !exists {
		return store.ErrTaskNotFound
	}
	m.Tasks[task.ID] = task
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.Tasks[id]; !exists {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}

// FindDueForReminder implements the TaskStore interface
func (m *MockTaskStore) FindDueForReminder(ctx context.Context, now time.Time) ([]*domain.Task, error) {
	if m.FindDueForReminderFn != nil {
		return m.FindDueForReminderFn(ctx, now)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	tasks := make([]*domain.Task, 0)
	for _, task := range m.Tasks {
		if task.NeedsReminder(now) {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].ID.String() < tasks[j].ID.String()
	})
	return tasks, nil
}

// MarkReminded implements the TaskStore interface
func (m *MockTaskStore) MarkReminded(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	if m.MarkRemindedFn != nil {
		return m.MarkRemindedFn(ctx, id, at)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	task, exists := m.Tasks[id]
	if !exists {
		return false, store.ErrTaskNotFound
	}
	if task.LastRemindedAt != nil && domain.SameDay(*task.LastRemindedAt, at) {
		return false, nil
	}
	marked := at
	task.LastRemindedAt = &marked
	m.MarkedIDs = append(m.MarkedIDs, id)
	return true, nil
}

// Verify interface compliance at compile time
var _ store.TaskStore = (*MockTaskStore)(nil)

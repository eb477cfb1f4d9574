package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/dstanton/taskminder/internal/domain"
	"github.com/dstanton/taskminder/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	// Function fields for customizable behavior
	CreateFn               func(ctx context.Context, user *domain.User) error
	GetByIDFn              func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsernameOrEmailFn func(ctx context.Context, login string) (*domain.User, error)

	// Data for default implementation
	Users       map[uuid.UUID]*domain.User
	CreateError error
}

// NewMockUserStore creates a new mock store with initialized defaults
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		Users: make(map[uuid.UUID]*domain.User),
	}
}

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	for _, existing := range m.Users {
		if existing.Username == user.Username {
			return store.ErrUsernameExists
		}
		if existing.Email == user.Email {
			return store.ErrEmailExists
		}
	}

	m.Users[user.ID] = user
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	user, exists := m.Users[id]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// GetByUsernameOrEmail implements the UserStore interface
func (m *MockUserStore) GetByUsernameOrEmail(ctx context.Context, login string) (*domain.User, error) {
	if m.GetByUsernameOrEmailFn != nil {
		return m.GetByUsernameOrEmailFn(ctx, login)
	}

	for _, user := range m.Users {
		if user.Username == login || user.Email == login {
			return user, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Verify interface compliance at compile time
var _ store.UserStore = (*MockUserStore)(nil)

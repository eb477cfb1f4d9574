package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/dstanton/taskminder/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// The user must already carry a hashed password.
	// Returns ErrUsernameExists or ErrEmailExists if the corresponding
	// unique field is already taken.
	// Returns validation errors from the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsernameOrEmail retrieves a user whose username or email equals
	// the given login identifier. Login accepts either, matching the single
	// login field of the client.
	// Returns ErrUserNotFound if no user matches.
	GetByUsernameOrEmail(ctx context.Context, login string) (*domain.User, error)
}

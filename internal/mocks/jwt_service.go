package mocks

import (
	"context"

	"github.com/dstanton/taskminder/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing
type MockJWTService struct {
	// Function fields for customizable behavior
	GenerateTokenFn func(ctx context.Context, user auth.Identity) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Identity, error)

	// Data for default implementation
	Token    string
	Identity *auth.Identity
	Err      error
}

// NewMockJWTService creates a mock that returns a fixed token and identity.
func NewMockJWTService() *MockJWTService {
	return &MockJWTService{Token: "mock-token"}
}

// GenerateToken implements the JWTService interface
func (m *MockJWTService) GenerateToken(ctx context.Context, user auth.Identity) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, user)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Token, nil
}

// ValidateToken implements the JWTService interface
func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Identity, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Identity == nil {
		return nil, auth.ErrInvalidToken
	}
	return m.Identity, nil
}

// Verify interface compliance at compile time
var _ auth.JWTService = (*MockJWTService)(nil)

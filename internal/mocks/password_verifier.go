package mocks

import (
	"errors"

	"github.com/dstanton/taskminder/internal/service/auth"
)

// ErrMockPasswordMismatch is returned by MockPasswordVerifier when
// ShouldSucceed is false.
var ErrMockPasswordMismatch = errors.New("password does not match")

// MockPasswordVerifier implements auth.PasswordHasher and
// auth.PasswordVerifier for testing. Hash returns the plaintext with a fixed
// prefix so tests can assert the stored value without real bcrypt cost.
type MockPasswordVerifier struct {
	ShouldSucceed bool
	HashErr       error
}

// Hash implements the PasswordHasher interface
func (m *MockPasswordVerifier) Hash(password string) (string, error) {
	if m.HashErr != nil {
		return "", m.HashErr
	}
	return "hashed:" + password, nil
}

// Compare implements the PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.ShouldSucceed {
		return nil
	}
	return ErrMockPasswordMismatch
}

// Verify interface compliance at compile time
var (
	_ auth.PasswordHasher   = (*MockPasswordVerifier)(nil)
	_ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)
)

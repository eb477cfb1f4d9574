package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	usernameErr := &pgconn.PgError{
		Code:           pgUniqueViolationCode,
		ConstraintName: "users_username_key",
	}
	emailErr := &pgconn.PgError{
		Code:           pgUniqueViolationCode,
		ConstraintName: "users_email_key",
	}
	fkErr := &pgconn.PgError{Code: pgForeignKeyViolationCode}

	assert.True(t, isUniqueViolation(usernameErr, "username"))
	assert.False(t, isUniqueViolation(usernameErr, "email"))
	assert.True(t, isUniqueViolation(emailErr, "email"))

	// Empty fragment matches any unique violation
	assert.True(t, isUniqueViolation(usernameErr, ""))

	// Other error codes and non-pg errors never match
	assert.False(t, isUniqueViolation(fkErr, "username"))
	assert.False(t, isUniqueViolation(errors.New("boom"), "username"))
	assert.False(t, isUniqueViolation(nil, "username"))

	// Wrapped pg errors still match
	wrapped := fmt.Errorf("insert failed: %w", usernameErr)
	assert.True(t, isUniqueViolation(wrapped, "username"))
}

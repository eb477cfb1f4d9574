// Package auth provides session token issuance/verification and password
// hashing for the credential service.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for managing JWT session tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT session token bound to the user's
	// identity (id, username, email).
	// Returns the token string or an error if token generation fails.
	GenerateToken(ctx context.Context, user Identity) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// identity it asserts. Validation is stateless; no store access occurs.
	// Returns an error if validation fails (expired, invalid signature, etc.).
	ValidateToken(ctx context.Context, tokenString string) (*Identity, error)
}

// Identity is the authenticated caller asserted by a session token.
// Task-scoped operations are bounded by UserID; Username and Email ride
// along so /auth/me can answer without a store round trip.
type Identity struct {
	UserID   uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`

	// IssuedAt and ExpiresAt are populated on validation, zero on generation.
	IssuedAt  time.Time `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

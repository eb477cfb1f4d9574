package api

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dstanton/taskminder/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
// Username accepts either the username or the email address.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse is the public view of a user. The password hash never
// appears here.
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
}

// CreateTaskRequest defines the payload for creating a task.
// DueDate accepts a calendar date in "2006-01-02" form (RFC 3339 timestamps
// are tolerated; only the date part is kept).
type CreateTaskRequest struct {
	Text              string `json:"text"                         validate:"required"`
	DueDate           string `json:"due_date,omitempty"           validate:"omitempty"`
	NotificationEmail string `json:"notification_email,omitempty" validate:"omitempty,email"`
}

// UpdateTaskRequest defines the payload for a partial task update.
// Nil fields are left unchanged; an empty due_date string clears the due date.
type UpdateTaskRequest struct {
	Text              *string `json:"text,omitempty"`
	Completed         *bool   `json:"completed,omitempty"`
	DueDate           *string `json:"due_date,omitempty"`
	NotificationEmail *string `json:"notification_email,omitempty" validate:"omitempty,email"`
}

// MessageResponse is a simple confirmation body.
type MessageResponse struct {
	Message string `json:"message"`
}

// TipResponse carries a single productivity tip.
type TipResponse struct {
	Tip string `json:"tip"`
}

// TestEmailRequest defines the payload for the test notification endpoint.
type TestEmailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HealthResponse is the liveness body.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// parseDueDate parses a request due date into a normalized calendar date
// (midnight UTC). Accepts "2006-01-02" or an RFC 3339 timestamp.
func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			day := domain.StartOfDay(t)
			return &day, nil
		}
	}

	return nil, domain.NewValidationError("due_date",
		fmt.Sprintf("has invalid format %q, expected YYYY-MM-DD", raw),
		domain.ErrValidation)
}

package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task validation errors
var (
	ErrEmptyTaskID    = errors.New("task ID cannot be empty")
	ErrEmptyTaskOwner = errors.New("task owner ID cannot be empty")
	ErrEmptyTaskText  = errors.New("task text cannot be empty")
)

// Task represents a single to-do item owned by exactly one user.
// DueDate, when set, is a calendar date; its time-of-day is not meaningful.
// LastRemindedAt records the most recent reminder dispatch and gates the
// once-per-day reminder guarantee.
type Task struct {
	ID                uuid.UUID  `json:"id"`
	UserID            uuid.UUID  `json:"user_id"`
	Text              string     `json:"text"`
	Completed         bool       `json:"completed"`
	CreatedAt         time.Time  `json:"created_at"`
	DueDate           *time.Time `json:"due_date,omitempty"`
	NotificationEmail string     `json:"notification_email,omitempty"`
	LastRemindedAt    *time.Time `json:"last_reminded_at,omitempty"`
}

// NewTask creates a new Task owned by the given user.
// Text is trimmed; an empty result fails validation.
func NewTask(userID uuid.UUID, text string, dueDate *time.Time, notificationEmail string) (*Task, error) {
	task := &Task{
		ID:                uuid.New(),
		UserID:            userID,
		Text:              strings.TrimSpace(text),
		Completed:         false,
		CreatedAt:         time.Now().UTC(),
		DueDate:           dueDate,
		NotificationEmail: strings.TrimSpace(notificationEmail),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskOwner
	}

	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyTaskText
	}

	return nil
}

// OwnedBy reports whether the task belongs to the given user.
// All mutating repository operations are gated on this predicate.
func (t *Task) OwnedBy(userID uuid.UUID) bool {
	return t.UserID == userID
}

// DueOn reports whether the task's due date falls on the same calendar day
// as the given time. Tasks without a due date are never due.
func (t *Task) DueOn(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	return SameDay(*t.DueDate, now)
}

// RemindedOn reports whether a reminder was already sent on the calendar day
// of the given time.
func (t *Task) RemindedOn(now time.Time) bool {
	if t.LastRemindedAt == nil {
		return false
	}
	return SameDay(*t.LastRemindedAt, now)
}

// NeedsReminder reports whether the task qualifies for a reminder at the
// given time: due today, not completed, has a recipient, and no reminder was
// sent today. Overdue tasks do not qualify; only an exact day match triggers.
func (t *Task) NeedsReminder(now time.Time) bool {
	return !t.Completed &&
		t.NotificationEmail != "" &&
		t.DueOn(now) &&
		!t.RemindedOn(now)
}

// SameDay reports whether two instants fall on the same UTC calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns midnight UTC of the given time's calendar date.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

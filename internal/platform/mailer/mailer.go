// Package mailer implements the reminder notification dispatcher on top of
// an SMTP transport. A dispatcher with no credentials configured reports
// sends as skipped instead of failing, so the rest of the system behaves
// identically with and without a working mail account.
package mailer

import (
	"context"

	"github.com/dstanton/taskminder/internal/domain"
)

// Result is the outcome of a single dispatch attempt.
type Result int

const (
	// Delivered means the transport accepted the message.
	Delivered Result = iota

	// Skipped means no send was attempted: the recipient was empty or the
	// transport is not configured. Skipped is not an error.
	Skipped

	// Failed means the transport reported a delivery error.
	Failed
)

// String returns the lowercase name of the result.
func (r Result) String() string {
	switch r {
	case Delivered:
		return "delivered"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Mailer dispatches a reminder message for a task to a recipient address.
type Mailer interface {
	// Send composes and delivers a reminder for the task. The returned
	// error is non-nil only when Result is Failed, and carries transport
	// detail for logging; callers treat it as non-fatal.
	Send(ctx context.Context, task *domain.Task, recipient string) (Result, error)
}

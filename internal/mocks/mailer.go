package mocks

import (
	"context"
	"sync"

	"github.com/dstanton/taskminder/internal/domain"
	"github.com/dstanton/taskminder/internal/platform/mailer"
)

// MockMailer implements mailer.Mailer for testing
type MockMailer struct {
	// SendFn overrides the default behavior when set
	SendFn func(ctx context.Context, task *domain.Task, recipient string) (mailer.Result, error)

	// Result and Err are returned by the default implementation
	Result mailer.Result
	Err    error

	mu sync.Mutex

	// Sent records the recipient of every Send call, in order.
	Sent []string
}

// NewMockMailer creates a mock mailer whose default behavior reports delivery.
func NewMockMailer() *MockMailer {
	return &MockMailer{Result: mailer.Delivered}
}

// Send implements the Mailer interface
func (m *MockMailer) Send(ctx context.Context, task *domain.Task, recipient string) (mailer.Result, error) {
	m.mu.Lock()
	m.Sent = append(m.Sent, recipient)
	m.mu.Unlock()

	if m.SendFn != nil {
		return m.SendFn(ctx, task, recipient)
	}
	return m.Result, m.Err
}

// SendCount returns the number of Send calls observed.
func (m *MockMailer) SendCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}

// Verify interface compliance at compile time
var _ mailer.Mailer = (*MockMailer)(nil)

package notify

import (
	"context"
	"sync"

	corenotify "github.com/taskforge/allocd/core/notify"
)

// MockPublisher records run events for tests.
type MockPublisher struct {
	mu     sync.Mutex
	Events []corenotify.RunEvent
	// Err, when set, is returned by PublishRunCompleted.
	Err error
}

var _ corenotify.Publisher = (*MockPublisher)(nil)

// NewMockPublisher creates an empty MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishRunCompleted stores the event or returns the configured error.
func (m *MockPublisher) PublishRunCompleted(_ context.Context, ev corenotify.RunEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Events = append(m.Events, ev)
	return nil
}

// Close is a no-op.
func (m *MockPublisher) Close() error { return nil }

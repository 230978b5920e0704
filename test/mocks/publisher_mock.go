package mocks

import (
	"context"
	"sync"

	"github.com/walkline/queue-service/internal/core/ports"
)

// MockQueueEventPublisher implements ports.QueueEventPublisher for testing.
// This mock allows us to test the outbox relay without a real RabbitMQ
// connection.
type MockQueueEventPublisher struct {
	mu sync.RWMutex

	// Track published events for verification
	PublishedEvents []ports.QueueEvent

	// Error injection for testing error scenarios
	PublishError error

	// Track number of calls
	PublishCallCount int
}

// Ensure MockQueueEventPublisher implements ports.QueueEventPublisher at compile time.
var _ ports.QueueEventPublisher = (*MockQueueEventPublisher)(nil)

// NewMockQueueEventPublisher creates a new mock publisher.
func NewMockQueueEventPublisher() *MockQueueEventPublisher {
	return &MockQueueEventPublisher{
		PublishedEvents: make([]ports.QueueEvent, 0),
	}
}

// PublishQueueEvent captures published events for verification.
func (m *MockQueueEventPublisher) PublishQueueEvent(ctx context.Context, evt ports.QueueEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCallCount++

	if m.PublishError != nil {
		return m.PublishError
	}

	m.PublishedEvents = append(m.PublishedEvents, evt)
	return nil
}

// GetPublishedEvents returns all events that were published.
func (m *MockQueueEventPublisher) GetPublishedEvents() []ports.QueueEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to prevent race conditions
	events := make([]ports.QueueEvent, len(m.PublishedEvents))
	copy(events, m.PublishedEvents)
	return events
}

// GetPublishCount returns the number of times PublishQueueEvent was called.
func (m *MockQueueEventPublisher) GetPublishCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.PublishCallCount
}

// Reset clears all tracking data.
func (m *MockQueueEventPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishedEvents = make([]ports.QueueEvent, 0)
	m.PublishError = nil
	m.PublishCallCount = 0
}

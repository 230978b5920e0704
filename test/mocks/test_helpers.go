package mocks

import (
	"time"

	"github.com/walkline/queue-service/internal/core/ports"
)

// CreateTestEvent creates a sample queue event for testing.
func CreateTestEvent() ports.QueueEvent {
	return ports.QueueEvent{
		Type:       ports.EventCustomerJoined,
		QueueID:    "test-queue-id",
		ServiceID:  "test-service-id",
		CustomerID: "test-customer-id",
		Position:   1,
		OccurredAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
}

// CreateTestEventWithData creates a customized test event.
func CreateTestEventWithData(eventType, queueID, serviceID, customerID string) ports.QueueEvent {
	return ports.QueueEvent{
		Type:       eventType,
		QueueID:    queueID,
		ServiceID:  serviceID,
		CustomerID: customerID,
		OccurredAt: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	}
}

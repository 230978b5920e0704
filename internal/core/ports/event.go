package ports

import (
	"context"
	"time"
)

// Queue event types published on every queue mutation.
const (
	EventQueueStarted    = "queue.started"
	EventQueuePaused     = "queue.paused"
	EventQueueResumed    = "queue.resumed"
	EventQueueStopped    = "queue.stopped"
	EventCustomerJoined  = "customer.joined"
	EventCustomerLeft    = "customer.left"
	EventServingAdvanced = "serving.advanced"
)

// QueueEvent is the payload written to the outbox by the queue manager and
// shipped to the broker by the relay.
type QueueEvent struct {
	Type          string    `json:"type"`
	QueueID       string    `json:"queue_id"`
	ServiceID     string    `json:"service_id"`
	CustomerID    string    `json:"customer_id,omitempty"`
	Position      int       `json:"position,omitempty"`
	ServingNumber int       `json:"serving_number,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type QueueEventPublisher interface {
	PublishQueueEvent(ctx context.Context, evt QueueEvent) error
}

package ports

import (
	"context"

	"github.com/walkline/queue-service/internal/core/domain"
)

// ServiceRepository stores service locations keyed by serviceID.
type ServiceRepository interface {
	CreateService(ctx context.Context, svc domain.ServiceLocation) error
	GetService(ctx context.Context, serviceID string) (*domain.ServiceLocation, error)
	UpdateService(ctx context.Context, svc domain.ServiceLocation) error
	DeleteService(ctx context.Context, serviceID string) error
	ListServices(ctx context.Context) ([]domain.ServiceLocation, error)
	ListServicesByOwner(ctx context.Context, owner string) ([]domain.ServiceLocation, error)
}

// QueueRepository stores queue aggregates. Writes that carry a non-nil
// outboxPayload must persist the aggregate and the outbox event atomically.
// Writes that touch the owning service (queue start/stop mirroring the
// service status) must apply both records in the same transaction.
type QueueRepository interface {
	CreateQueue(ctx context.Context, q domain.Queue, svc domain.ServiceLocation, outboxPayload []byte) error
	GetQueue(ctx context.Context, queueID string) (*domain.Queue, error)
	UpdateQueue(ctx context.Context, q domain.Queue, outboxPayload []byte) error
	UpdateQueueAndService(ctx context.Context, q domain.Queue, svc domain.ServiceLocation, outboxPayload []byte) error
	// RunningQueueForService returns the service's non-stopped queue, or
	// nil when every queue for the service has stopped.
	RunningQueueForService(ctx context.Context, serviceID string) (*domain.Queue, error)
	// ListRunningQueues returns every non-stopped queue.
	ListRunningQueues(ctx context.Context) ([]domain.Queue, error)
}

// UserRepository stores user profiles and admin-axis roles keyed by
// principal.
type UserRepository interface {
	// GetProfile returns nil without error when no profile was saved yet.
	GetProfile(ctx context.Context, principal string) (*domain.UserProfile, error)
	SaveProfile(ctx context.Context, profile domain.UserProfile) error
	// GetAdminRole returns AdminRoleGuest for unknown principals.
	GetAdminRole(ctx context.Context, principal string) (domain.AdminRole, error)
	SetAdminRole(ctx context.Context, principal string, role domain.AdminRole) error
}

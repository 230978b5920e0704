package ports

import (
	"context"

	"github.com/walkline/queue-service/internal/core/domain"
)

// RegistryService owns service location records and their owner-only
// configuration. It never flips the open/closed status; the queue manager
// does that when queues start and stop.
type RegistryService interface {
	CreateService(ctx context.Context, caller, name, address string, capacity int) (string, error)
	SetEstimatedServiceTime(ctx context.Context, caller, serviceID string, minutes int) error
	SetWeekdayHours(ctx context.Context, caller, serviceID string, startHour, endHour int) error
	SetWeekendHours(ctx context.Context, caller, serviceID string, startHour, endHour int) error
	DeleteService(ctx context.Context, caller, serviceID string) error
	GetService(ctx context.Context, serviceID string) (*domain.ServiceLocation, error)
	GetServiceOwner(ctx context.Context, serviceID string) (string, error)
	GetServiceHours(ctx context.Context, serviceID string) (weekday, weekend *domain.ServiceHours, err error)
	GetEstimatedServiceTime(ctx context.Context, serviceID string) (int, error)
	ListServices(ctx context.Context) ([]domain.ServiceLocation, error)
	ListServicesByOwner(ctx context.Context, owner string) ([]domain.ServiceLocation, error)
}

// QueueService is the queue lifecycle and membership manager. Every
// mutation is serialized per queue and applies fully or not at all.
type QueueService interface {
	StartQueue(ctx context.Context, caller, serviceID string) (string, error)
	PauseQueue(ctx context.Context, caller, queueID string) error
	ResumeQueue(ctx context.Context, caller, queueID string) error
	StopQueue(ctx context.Context, caller, queueID string) error
	JoinQueue(ctx context.Context, caller, queueID string) (int, error)
	LeaveQueue(ctx context.Context, caller, queueID string) error
	UpdateCurrentServingNumber(ctx context.Context, caller, queueID string, newNumber int) error
	ClearCustomerQueues(ctx context.Context, caller, customerID string) error
}

// ProfileService manages user profiles and the admin role axis.
type ProfileService interface {
	SaveProfile(ctx context.Context, caller, name string, role domain.UserRole) error
	GetProfile(ctx context.Context, principal string) (*domain.UserProfile, error)
	UpdateRole(ctx context.Context, caller string, role domain.UserRole) error
	AssignAdminRole(ctx context.Context, caller, principal string, role domain.AdminRole) error
	GetAdminRole(ctx context.Context, principal string) (domain.AdminRole, error)
}

// QueueInfo is the composite read of a queue for consumers.
type QueueInfo struct {
	QueueID              string              `json:"queue_id"`
	ServiceID            string              `json:"service_id"`
	Status               domain.QueueStatus  `json:"status"`
	CurrentServingNumber int                 `json:"current_serving_number"`
	Entries              []domain.QueueEntry `json:"entries"`
}

// ServiceQueueRef links a customer's enrollment to its service and queue.
type ServiceQueueRef struct {
	ServiceID string `json:"service_id"`
	QueueID   string `json:"queue_id"`
}

// WaitEstimate is the composite wait-time read for a would-be joiner of a
// service's queue. TimeBasedOnQueue is queue length times per-customer time;
// EstimatedTotalWait accounts for the serving pointer.
type WaitEstimate struct {
	ServiceID                       string `json:"service_id"`
	QueueID                         string `json:"queue_id,omitempty"`
	Open                            bool   `json:"open"`
	Status                          string `json:"status"`
	CurrentQueueLength              int    `json:"current_queue_length"`
	CurrentServingNumber            int    `json:"current_serving_number"`
	EstimatedServiceTimePerCustomer int    `json:"estimated_service_time_per_customer"`
	TimeBasedOnQueue                int    `json:"time_based_on_queue"`
	EstimatedTotalWait              int    `json:"estimated_total_wait"`
}

// QueryService is the read-only facade over services and queues. Reads
// never mutate and only fail on unknown ids.
type QueryService interface {
	GetCompleteQueueInfo(ctx context.Context, queueID string) (*QueueInfo, error)
	GetQueueEntries(ctx context.Context, queueID string) ([]domain.QueueEntry, error)
	GetQueueStatus(ctx context.Context, queueID string) (domain.QueueStatus, error)
	GetCurrentServingNumber(ctx context.Context, queueID string) (int, error)
	GetCustomerPosition(ctx context.Context, queueID, customerID string) (int, error)
	GetQueueService(ctx context.Context, queueID string) (string, error)
	GetAllActiveQueues(ctx context.Context) ([]domain.Queue, error)
	GetServiceQueueStatus(ctx context.Context, serviceID string) (*domain.QueueStatus, error)
	GetCustomerServiceQueues(ctx context.Context, customerID string) ([]ServiceQueueRef, error)
	GetEstimatedWaitTimeForCustomer(ctx context.Context, serviceID string) (*WaitEstimate, error)
}

// WaitEstimateCache is a short-lived read cache for wait estimates serving
// polling traffic. A miss is (nil, nil); cache failures must degrade to a
// direct read, never to a request failure.
type WaitEstimateCache interface {
	GetWaitEstimate(ctx context.Context, serviceID string) (*WaitEstimate, error)
	SetWaitEstimate(ctx context.Context, est WaitEstimate) error
}

package repository

import (
	"context"
	"sync"

	"github.com/walkline/queue-service/internal/core/domain"
	"github.com/walkline/queue-service/internal/core/ports"
)

// MemoryRepository implements every repository port in memory. It backs
// tests and local runs. Reads hand out deep copies so callers always see a
// consistent snapshot; outbox payloads are retained for inspection.
type MemoryRepository struct {
	mu       sync.RWMutex
	services map[string]*domain.ServiceLocation
	queues   map[string]*domain.Queue
	profiles map[string]*domain.UserProfile
	admins   map[string]domain.AdminRole
	outbox   [][]byte
}

var _ ports.ServiceRepository = (*MemoryRepository)(nil)
var _ ports.QueueRepository = (*MemoryRepository)(nil)
var _ ports.UserRepository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		services: make(map[string]*domain.ServiceLocation),
		queues:   make(map[string]*domain.Queue),
		profiles: make(map[string]*domain.UserProfile),
		admins:   make(map[string]domain.AdminRole),
	}
}

func (r *MemoryRepository) CreateService(ctx context.Context, svc domain.ServiceLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.services[svc.ServiceID] = svc.Clone()
	return nil
}

func (r *MemoryRepository) GetService(ctx context.Context, serviceID string) (*domain.ServiceLocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	svc, ok := r.services[serviceID]
	if !ok {
		return nil, domain.ErrServiceNotFound
	}
	return svc.Clone(), nil
}

func (r *MemoryRepository) UpdateService(ctx context.Context, svc domain.ServiceLocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[svc.ServiceID]; !ok {
		return domain.ErrServiceNotFound
	}
	r.services[svc.ServiceID] = svc.Clone()
	return nil
}

// DeleteService removes the record. Stopped queues of the service are kept
// queryable.
func (r *MemoryRepository) DeleteService(ctx context.Context, serviceID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.services[serviceID]; !ok {
		return domain.ErrServiceNotFound
	}
	delete(r.services, serviceID)
	return nil
}

func (r *MemoryRepository) ListServices(ctx context.Context) ([]domain.ServiceLocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ServiceLocation, 0, len(r.services))
	for _, svc := range r.services {
		out = append(out, *svc.Clone())
	}
	return out, nil
}

func (r *MemoryRepository) ListServicesByOwner(ctx context.Context, owner string) ([]domain.ServiceLocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.ServiceLocation, 0)
	for _, svc := range r.services {
		if svc.Owner == owner {
			out = append(out, *svc.Clone())
		}
	}
	return out, nil
}

func (r *MemoryRepository) CreateQueue(ctx context.Context, q domain.Queue, svc domain.ServiceLocation, outboxPayload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queues[q.QueueID] = q.Clone()
	r.services[svc.ServiceID] = svc.Clone()
	r.appendOutbox(outboxPayload)
	return nil
}

func (r *MemoryRepository) GetQueue(ctx context.Context, queueID string) (*domain.Queue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	q, ok := r.queues[queueID]
	if !ok {
		return nil, domain.ErrQueueNotFound
	}
	return q.Clone(), nil
}

func (r *MemoryRepository) UpdateQueue(ctx context.Context, q domain.Queue, outboxPayload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.queues[q.QueueID]; !ok {
		return domain.ErrQueueNotFound
	}
	r.queues[q.QueueID] = q.Clone()
	r.appendOutbox(outboxPayload)
	return nil
}

func (r *MemoryRepository) UpdateQueueAndService(ctx context.Context, q domain.Queue, svc domain.ServiceLocation, outboxPayload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.queues[q.QueueID]; !ok {
		return domain.ErrQueueNotFound
	}
	if _, ok := r.services[svc.ServiceID]; !ok {
		return domain.ErrServiceNotFound
	}
	r.queues[q.QueueID] = q.Clone()
	r.services[svc.ServiceID] = svc.Clone()
	r.appendOutbox(outboxPayload)
	return nil
}

func (r *MemoryRepository) RunningQueueForService(ctx context.Context, serviceID string) (*domain.Queue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, q := range r.queues {
		if q.ServiceID == serviceID && q.Status != domain.QueueStopped {
			return q.Clone(), nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) ListRunningQueues(ctx context.Context) ([]domain.Queue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Queue, 0)
	for _, q := range r.queues {
		if q.Status != domain.QueueStopped {
			out = append(out, *q.Clone())
		}
	}
	return out, nil
}

func (r *MemoryRepository) GetProfile(ctx context.Context, principal string) (*domain.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[principal]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *MemoryRepository) SaveProfile(ctx context.Context, profile domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.Principal] = &profile
	return nil
}

func (r *MemoryRepository) GetAdminRole(ctx context.Context, principal string) (domain.AdminRole, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.admins[principal]
	if !ok {
		return domain.AdminRoleGuest, nil
	}
	return role, nil
}

func (r *MemoryRepository) SetAdminRole(ctx context.Context, principal string, role domain.AdminRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.admins[principal] = role
	return nil
}

// OutboxPayloads returns the recorded outbox writes, oldest first.
func (r *MemoryRepository) OutboxPayloads() [][]byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([][]byte, len(r.outbox))
	copy(out, r.outbox)
	return out
}

func (r *MemoryRepository) appendOutbox(payload []byte) {
	if payload != nil {
		r.outbox = append(r.outbox, payload)
	}
}

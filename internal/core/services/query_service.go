package services

import (
	"context"
	"log"

	"github.com/walkline/queue-service/internal/core/domain"
	"github.com/walkline/queue-service/internal/core/ports"
)

// QueryService is the read-only facade. It never mutates queue state; the
// repositories hand out snapshots, so a renumbering in flight is never
// visible. The wait-estimate cache is optional and only ever a shortcut:
// any cache failure degrades to a direct read.
type QueryService struct {
	services ports.ServiceRepository
	queues   ports.QueueRepository
	cache    ports.WaitEstimateCache
}

var _ ports.QueryService = (*QueryService)(nil)

func NewQueryService(services ports.ServiceRepository, queues ports.QueueRepository, cache ports.WaitEstimateCache) *QueryService {
	return &QueryService{
		services: services,
		queues:   queues,
		cache:    cache,
	}
}

func (s *QueryService) GetCompleteQueueInfo(ctx context.Context, queueID string) (*ports.QueueInfo, error) {
	q, err := s.queues.GetQueue(ctx, queueID)
	if err != nil {
		return nil, err
	}
	return &ports.QueueInfo{
		QueueID:              q.QueueID,
		ServiceID:            q.ServiceID,
		Status:               q.Status,
		CurrentServingNumber: q.CurrentServingNumber,
		Entries:              q.Entries,
	}, nil
}

func (s *QueryService) GetQueueEntries(ctx context.Context, queueID string) ([]domain.QueueEntry, error) {
	q, err := s.queues.GetQueue(ctx, queueID)
	if err != nil {
		return nil, err
	}
	return q.Entries, nil
}

func (s *QueryService) GetQueueStatus(ctx context.Context, queueID string) (domain.QueueStatus, error) {
	q, err := s.queues.GetQueue(ctx, queueID)
	if err != nil {
		return "", err
	}
	return q.Status, nil
}

func (s *QueryService) GetCurrentServingNumber(ctx context.Context, queueID string) (int, error) {
	q, err := s.queues.GetQueue(ctx, queueID)
	if err != nil {
		return 0, err
	}
	return q.CurrentServingNumber, nil
}

// GetCustomerPosition returns zero when the customer has no entry in the
// queue; reads only fail on unknown ids.
func (s *QueryService) GetCustomerPosition(ctx context.Context, queueID, customerID string) (int, error) {
	q, err := s.queues.GetQueue(ctx, queueID)
	if err != nil {
		return 0, err
	}
	entry, ok := q.Entry(customerID)
	if !ok {
		return 0, nil
	}
	return entry.Position, nil
}

func (s *QueryService) GetQueueService(ctx context.Context, queueID string) (string, error) {
	q, err := s.queues.GetQueue(ctx, queueID)
	if err != nil {
		return "", err
	}
	return q.ServiceID, nil
}

func (s *QueryService) GetAllActiveQueues(ctx context.Context) ([]domain.Queue, error) {
	return s.queues.ListRunningQueues(ctx)
}

// GetServiceQueueStatus returns nil when the service has no running queue.
func (s *QueryService) GetServiceQueueStatus(ctx context.Context, serviceID string) (*domain.QueueStatus, error) {
	if _, err := s.services.GetService(ctx, serviceID); err != nil {
		return nil, err
	}
	q, err := s.queues.RunningQueueForService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, nil
	}
	status := q.Status
	return &status, nil
}

func (s *QueryService) GetCustomerServiceQueues(ctx context.Context, customerID string) ([]ports.ServiceQueueRef, error) {
	queues, err := s.queues.ListRunningQueues(ctx)
	if err != nil {
		return nil, err
	}
	refs := make([]ports.ServiceQueueRef, 0)
	for i := range queues {
		if _, ok := queues[i].Entry(customerID); ok {
			refs = append(refs, ports.ServiceQueueRef{
				ServiceID: queues[i].ServiceID,
				QueueID:   queues[i].QueueID,
			})
		}
	}
	return refs, nil
}

// GetEstimatedWaitTimeForCustomer composes the wait picture a prospective
// joiner sees. Served from the short-TTL cache when possible; consumers
// poll this every few seconds.
func (s *QueryService) GetEstimatedWaitTimeForCustomer(ctx context.Context, serviceID string) (*ports.WaitEstimate, error) {
	if s.cache != nil {
		if est, err := s.cache.GetWaitEstimate(ctx, serviceID); err == nil && est != nil {
			return est, nil
		}
	}

	svc, err := s.services.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	est := &ports.WaitEstimate{
		ServiceID:                       serviceID,
		Status:                          string(domain.ServiceClosed),
		EstimatedServiceTimePerCustomer: svc.EstimatedServiceTime,
	}

	q, err := s.queues.RunningQueueForService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if q != nil {
		est.QueueID = q.QueueID
		est.Status = string(q.Status)
		est.Open = q.Status == domain.QueueActive
		est.CurrentServingNumber = q.CurrentServingNumber
		est.CurrentQueueLength = len(q.Entries)
		est.TimeBasedOnQueue = len(q.Entries) * svc.EstimatedServiceTime
		est.EstimatedTotalWait = domain.EstimatedWait(len(q.Entries)+1, q.CurrentServingNumber, svc.EstimatedServiceTime)
	}

	if s.cache != nil {
		if err := s.cache.SetWaitEstimate(ctx, *est); err != nil {
			log.Printf("query: caching wait estimate for %s failed: %v", serviceID, err)
		}
	}
	return est, nil
}

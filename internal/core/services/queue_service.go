package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/walkline/queue-service/internal/common"
	"github.com/walkline/queue-service/internal/core/domain"
	"github.com/walkline/queue-service/internal/core/ports"
)

// QueueService is the queue lifecycle and membership manager. It is the
// only component that mutates queue membership or the serving pointer, and
// the only one that flips a service between open and closed.
//
// Every mutation runs inside a per-queue critical section held across
// load-mutate-save, so concurrent joins can never hand out the same
// position and readers never observe a half-renumbered queue. Queue starts
// serialize per service instead, which guards the one-running-queue
// invariant.
type QueueService struct {
	queues   ports.QueueRepository
	services ports.ServiceRepository
	access   *AccessControl
	locks    *common.KeyedMutex
	now      func() time.Time
}

var _ ports.QueueService = (*QueueService)(nil)

func NewQueueService(queues ports.QueueRepository, services ports.ServiceRepository, access *AccessControl) *QueueService {
	return &QueueService{
		queues:   queues,
		services: services,
		access:   access,
		locks:    common.NewKeyedMutex(),
		now:      time.Now,
	}
}

func (s *QueueService) StartQueue(ctx context.Context, caller, serviceID string) (string, error) {
	unlock := s.locks.Lock("service:" + serviceID)
	defer unlock()

	svc, err := s.services.GetService(ctx, serviceID)
	if err != nil {
		return "", err
	}
	if err := s.access.RequireOwner(svc, caller); err != nil {
		return "", err
	}

	running, err := s.queues.RunningQueueForService(ctx, serviceID)
	if err != nil {
		return "", err
	}
	if running != nil {
		return "", domain.ErrQueueRunning
	}

	q := domain.NewQueue(uuid.NewString(), serviceID, s.now())
	svc.Status = domain.ServiceOpen

	payload, err := s.eventPayload(ports.QueueEvent{
		Type:      ports.EventQueueStarted,
		QueueID:   q.QueueID,
		ServiceID: serviceID,
	})
	if err != nil {
		return "", err
	}
	if err := s.queues.CreateQueue(ctx, *q, *svc, payload); err != nil {
		return "", err
	}
	return q.QueueID, nil
}

func (s *QueueService) PauseQueue(ctx context.Context, caller, queueID string) error {
	unlock := s.locks.Lock(queueID)
	defer unlock()

	q, _, err := s.ownedQueue(ctx, caller, queueID)
	if err != nil {
		return err
	}
	if err := q.Pause(); err != nil {
		return err
	}
	payload, err := s.eventPayload(ports.QueueEvent{
		Type:      ports.EventQueuePaused,
		QueueID:   queueID,
		ServiceID: q.ServiceID,
	})
	if err != nil {
		return err
	}
	return s.queues.UpdateQueue(ctx, *q, payload)
}

func (s *QueueService) ResumeQueue(ctx context.Context, caller, queueID string) error {
	unlock := s.locks.Lock(queueID)
	defer unlock()

	q, _, err := s.ownedQueue(ctx, caller, queueID)
	if err != nil {
		return err
	}
	if err := q.Resume(); err != nil {
		return err
	}
	payload, err := s.eventPayload(ports.QueueEvent{
		Type:      ports.EventQueueResumed,
		QueueID:   queueID,
		ServiceID: q.ServiceID,
	})
	if err != nil {
		return err
	}
	return s.queues.UpdateQueue(ctx, *q, payload)
}

// StopQueue terminates the queue and closes its service in one atomic
// write. Entries are retained for reads.
func (s *QueueService) StopQueue(ctx context.Context, caller, queueID string) error {
	unlock := s.locks.Lock(queueID)
	defer unlock()

	q, svc, err := s.ownedQueue(ctx, caller, queueID)
	if err != nil {
		return err
	}
	if err := q.Stop(); err != nil {
		return err
	}
	svc.Status = domain.ServiceClosed

	payload, err := s.eventPayload(ports.QueueEvent{
		Type:      ports.EventQueueStopped,
		QueueID:   queueID,
		ServiceID: q.ServiceID,
	})
	if err != nil {
		return err
	}
	return s.queues.UpdateQueueAndService(ctx, *q, *svc, payload)
}

// JoinQueue admits the caller into an active queue. Admission is refused
// outside the configured operating window, and when the prospective wait
// could not be served before closing time.
func (s *QueueService) JoinQueue(ctx context.Context, caller, queueID string) (int, error) {
	if err := s.access.RequireCustomer(ctx, caller); err != nil {
		return 0, err
	}

	unlock := s.locks.Lock(queueID)
	defer unlock()

	q, err := s.queues.GetQueue(ctx, queueID)
	if err != nil {
		return 0, err
	}
	svc, err := s.services.GetService(ctx, q.ServiceID)
	if err != nil {
		return 0, err
	}

	now := s.now()
	if q.Status == domain.QueueActive && svc.HoursFor(now) != nil {
		if !domain.WithinOperatingHours(svc, now) {
			return 0, domain.ErrOutsideHours
		}
		prospective := domain.EstimatedWait(len(q.Entries)+1, q.CurrentServingNumber, svc.EstimatedServiceTime)
		if domain.WouldExceedClosingTime(svc, prospective, now) {
			return 0, domain.ErrPastClosingTime
		}
	}

	position, err := q.Join(caller, now, svc.EstimatedServiceTime)
	if err != nil {
		return 0, err
	}

	payload, err := s.eventPayload(ports.QueueEvent{
		Type:       ports.EventCustomerJoined,
		QueueID:    queueID,
		ServiceID:  q.ServiceID,
		CustomerID: caller,
		Position:   position,
	})
	if err != nil {
		return 0, err
	}
	if err := s.queues.UpdateQueue(ctx, *q, payload); err != nil {
		return 0, err
	}
	return position, nil
}

// LeaveQueue removes the caller's own entry and renumbers the remainder.
func (s *QueueService) LeaveQueue(ctx context.Context, caller, queueID string) error {
	unlock := s.locks.Lock(queueID)
	defer unlock()

	return s.removeCustomer(ctx, caller, queueID, false)
}

// UpdateCurrentServingNumber advances the serving pointer and recomputes
// every remaining wait estimate in the same critical section.
func (s *QueueService) UpdateCurrentServingNumber(ctx context.Context, caller, queueID string, newNumber int) error {
	unlock := s.locks.Lock(queueID)
	defer unlock()

	q, svc, err := s.ownedQueue(ctx, caller, queueID)
	if err != nil {
		return err
	}
	if err := q.AdvanceServing(newNumber, svc.EstimatedServiceTime); err != nil {
		return err
	}
	payload, err := s.eventPayload(ports.QueueEvent{
		Type:          ports.EventServingAdvanced,
		QueueID:       queueID,
		ServiceID:     q.ServiceID,
		ServingNumber: newNumber,
	})
	if err != nil {
		return err
	}
	return s.queues.UpdateQueue(ctx, *q, payload)
}

// ClearCustomerQueues removes the customer from every non-stopped queue it
// is enrolled in. Customers may clear their own enrollments; clearing
// another principal's requires the admin role.
func (s *QueueService) ClearCustomerQueues(ctx context.Context, caller, customerID string) error {
	if err := s.access.RequireSelf(caller, customerID); err != nil {
		if err := s.access.RequireAdmin(ctx, caller); err != nil {
			return err
		}
	}
	queues, err := s.queues.ListRunningQueues(ctx)
	if err != nil {
		return err
	}
	for i := range queues {
		if _, ok := queues[i].Entry(customerID); !ok {
			continue
		}
		queueID := queues[i].QueueID
		if err := func() error {
			unlock := s.locks.Lock(queueID)
			defer unlock()
			return s.removeCustomer(ctx, customerID, queueID, true)
		}(); err != nil {
			return err
		}
	}
	return nil
}

// removeCustomer runs inside the caller-held queue lock. When tolerant is
// set, races with a concurrent leave or stop are not errors.
func (s *QueueService) removeCustomer(ctx context.Context, customerID, queueID string, tolerant bool) error {
	q, err := s.queues.GetQueue(ctx, queueID)
	if err != nil {
		return err
	}
	svc, err := s.services.GetService(ctx, q.ServiceID)
	if err != nil {
		return err
	}
	if err := q.Leave(customerID, svc.EstimatedServiceTime); err != nil {
		if tolerant && (errors.Is(err, domain.ErrNotInQueue) || errors.Is(err, domain.ErrQueueStopped)) {
			return nil
		}
		return err
	}
	payload, err := s.eventPayload(ports.QueueEvent{
		Type:       ports.EventCustomerLeft,
		QueueID:    queueID,
		ServiceID:  q.ServiceID,
		CustomerID: customerID,
	})
	if err != nil {
		return err
	}
	return s.queues.UpdateQueue(ctx, *q, payload)
}

func (s *QueueService) ownedQueue(ctx context.Context, caller, queueID string) (*domain.Queue, *domain.ServiceLocation, error) {
	q, err := s.queues.GetQueue(ctx, queueID)
	if err != nil {
		return nil, nil, err
	}
	svc, err := s.services.GetService(ctx, q.ServiceID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.access.RequireOwner(svc, caller); err != nil {
		return nil, nil, err
	}
	return q, svc, nil
}

func (s *QueueService) eventPayload(evt ports.QueueEvent) ([]byte, error) {
	evt.OccurredAt = s.now()
	return json.Marshal(evt)
}

package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/walkline/queue-service/internal/core/domain"
	"github.com/walkline/queue-service/internal/core/ports"
)

// RegistryService owns service location records. Configuration calls never
// touch the open/closed status; that mirrors queue lifecycle and is flipped
// by the queue manager only.
type RegistryService struct {
	services ports.ServiceRepository
	access   *AccessControl
	now      func() time.Time
}

var _ ports.RegistryService = (*RegistryService)(nil)

func NewRegistryService(services ports.ServiceRepository, access *AccessControl) *RegistryService {
	return &RegistryService{
		services: services,
		access:   access,
		now:      time.Now,
	}
}

func (s *RegistryService) CreateService(ctx context.Context, caller, name, address string, capacity int) (string, error) {
	if err := s.access.RequireBusinessOwner(ctx, caller); err != nil {
		return "", err
	}
	svc, err := domain.NewServiceLocation(uuid.NewString(), caller, name, address, capacity, s.now())
	if err != nil {
		return "", err
	}
	if err := s.services.CreateService(ctx, *svc); err != nil {
		return "", err
	}
	return svc.ServiceID, nil
}

func (s *RegistryService) SetEstimatedServiceTime(ctx context.Context, caller, serviceID string, minutes int) error {
	if minutes < 1 {
		return domain.ErrInvalidMinutes
	}
	svc, err := s.ownedService(ctx, caller, serviceID)
	if err != nil {
		return err
	}
	svc.EstimatedServiceTime = minutes
	return s.services.UpdateService(ctx, *svc)
}

func (s *RegistryService) SetWeekdayHours(ctx context.Context, caller, serviceID string, startHour, endHour int) error {
	hours := domain.ServiceHours{StartHour: startHour, EndHour: endHour}
	if !hours.Valid() {
		return domain.ErrInvalidHours
	}
	svc, err := s.ownedService(ctx, caller, serviceID)
	if err != nil {
		return err
	}
	svc.WeekdayHours = &hours
	return s.services.UpdateService(ctx, *svc)
}

func (s *RegistryService) SetWeekendHours(ctx context.Context, caller, serviceID string, startHour, endHour int) error {
	hours := domain.ServiceHours{StartHour: startHour, EndHour: endHour}
	if !hours.Valid() {
		return domain.ErrInvalidHours
	}
	svc, err := s.ownedService(ctx, caller, serviceID)
	if err != nil {
		return err
	}
	svc.WeekendHours = &hours
	return s.services.UpdateService(ctx, *svc)
}

// DeleteService permanently removes a closed service. Its queues, already
// stopped, remain queryable.
func (s *RegistryService) DeleteService(ctx context.Context, caller, serviceID string) error {
	svc, err := s.ownedService(ctx, caller, serviceID)
	if err != nil {
		return err
	}
	if svc.Status != domain.ServiceClosed {
		return domain.ErrServiceNotClosed
	}
	return s.services.DeleteService(ctx, serviceID)
}

func (s *RegistryService) GetService(ctx context.Context, serviceID string) (*domain.ServiceLocation, error) {
	return s.services.GetService(ctx, serviceID)
}

func (s *RegistryService) GetServiceOwner(ctx context.Context, serviceID string) (string, error) {
	svc, err := s.services.GetService(ctx, serviceID)
	if err != nil {
		return "", err
	}
	return svc.Owner, nil
}

func (s *RegistryService) GetServiceHours(ctx context.Context, serviceID string) (*domain.ServiceHours, *domain.ServiceHours, error) {
	svc, err := s.services.GetService(ctx, serviceID)
	if err != nil {
		return nil, nil, err
	}
	return svc.WeekdayHours, svc.WeekendHours, nil
}

func (s *RegistryService) GetEstimatedServiceTime(ctx context.Context, serviceID string) (int, error) {
	svc, err := s.services.GetService(ctx, serviceID)
	if err != nil {
		return 0, err
	}
	return svc.EstimatedServiceTime, nil
}

func (s *RegistryService) ListServices(ctx context.Context) ([]domain.ServiceLocation, error) {
	return s.services.ListServices(ctx)
}

func (s *RegistryService) ListServicesByOwner(ctx context.Context, owner string) ([]domain.ServiceLocation, error) {
	return s.services.ListServicesByOwner(ctx, owner)
}

func (s *RegistryService) ownedService(ctx context.Context, caller, serviceID string) (*domain.ServiceLocation, error) {
	svc, err := s.services.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if err := s.access.RequireOwner(svc, caller); err != nil {
		return nil, err
	}
	return svc, nil
}

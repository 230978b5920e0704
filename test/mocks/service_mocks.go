// Package mocks provides mock implementations of port interfaces for testing.
// In hexagonal architecture, ports define the contracts between the core domain
// and external adapters. Mocks implement these interfaces to enable isolated testing.
package mocks

import (
	"context"

	"github.com/walkline/queue-service/internal/core/domain"
	"github.com/walkline/queue-service/internal/core/ports"
)

// MockQueueService implements ports.QueueService with settable behavior per
// method. Handlers are tested against this instead of the real engine.
type MockQueueService struct {
	StartQueueFn                 func(ctx context.Context, caller, serviceID string) (string, error)
	PauseQueueFn                 func(ctx context.Context, caller, queueID string) error
	ResumeQueueFn                func(ctx context.Context, caller, queueID string) error
	StopQueueFn                  func(ctx context.Context, caller, queueID string) error
	JoinQueueFn                  func(ctx context.Context, caller, queueID string) (int, error)
	LeaveQueueFn                 func(ctx context.Context, caller, queueID string) error
	UpdateCurrentServingNumberFn func(ctx context.Context, caller, queueID string, newNumber int) error
	ClearCustomerQueuesFn        func(ctx context.Context, caller, customerID string) error
}

var _ ports.QueueService = (*MockQueueService)(nil)

func (m *MockQueueService) StartQueue(ctx context.Context, caller, serviceID string) (string, error) {
	return m.StartQueueFn(ctx, caller, serviceID)
}

func (m *MockQueueService) PauseQueue(ctx context.Context, caller, queueID string) error {
	return m.PauseQueueFn(ctx, caller, queueID)
}

func (m *MockQueueService) ResumeQueue(ctx context.Context, caller, queueID string) error {
	return m.ResumeQueueFn(ctx, caller, queueID)
}

func (m *MockQueueService) StopQueue(ctx context.Context, caller, queueID string) error {
	return m.StopQueueFn(ctx, caller, queueID)
}

func (m *MockQueueService) JoinQueue(ctx context.Context, caller, queueID string) (int, error) {
	return m.JoinQueueFn(ctx, caller, queueID)
}

func (m *MockQueueService) LeaveQueue(ctx context.Context, caller, queueID string) error {
	return m.LeaveQueueFn(ctx, caller, queueID)
}

func (m *MockQueueService) UpdateCurrentServingNumber(ctx context.Context, caller, queueID string, newNumber int) error {
	return m.UpdateCurrentServingNumberFn(ctx, caller, queueID, newNumber)
}

func (m *MockQueueService) ClearCustomerQueues(ctx context.Context, caller, customerID string) error {
	return m.ClearCustomerQueuesFn(ctx, caller, customerID)
}

// MockQueryService implements ports.QueryService the same way.
type MockQueryService struct {
	GetCompleteQueueInfoFn            func(ctx context.Context, queueID string) (*ports.QueueInfo, error)
	GetQueueEntriesFn                 func(ctx context.Context, queueID string) ([]domain.QueueEntry, error)
	GetQueueStatusFn                  func(ctx context.Context, queueID string) (domain.QueueStatus, error)
	GetCurrentServingNumberFn         func(ctx context.Context, queueID string) (int, error)
	GetCustomerPositionFn             func(ctx context.Context, queueID, customerID string) (int, error)
	GetQueueServiceFn                 func(ctx context.Context, queueID string) (string, error)
	GetAllActiveQueuesFn              func(ctx context.Context) ([]domain.Queue, error)
	GetServiceQueueStatusFn           func(ctx context.Context, serviceID string) (*domain.QueueStatus, error)
	GetCustomerServiceQueuesFn        func(ctx context.Context, customerID string) ([]ports.ServiceQueueRef, error)
	GetEstimatedWaitTimeForCustomerFn func(ctx context.Context, serviceID string) (*ports.WaitEstimate, error)
}

var _ ports.QueryService = (*MockQueryService)(nil)

func (m *MockQueryService) GetCompleteQueueInfo(ctx context.Context, queueID string) (*ports.QueueInfo, error) {
	return m.GetCompleteQueueInfoFn(ctx, queueID)
}

func (m *MockQueryService) GetQueueEntries(ctx context.Context, queueID string) ([]domain.QueueEntry, error) {
	return m.GetQueueEntriesFn(ctx, queueID)
}

func (m *MockQueryService) GetQueueStatus(ctx context.Context, queueID string) (domain.QueueStatus, error) {
	return m.GetQueueStatusFn(ctx, queueID)
}

func (m *MockQueryService) GetCurrentServingNumber(ctx context.Context, queueID string) (int, error) {
	return m.GetCurrentServingNumberFn(ctx, queueID)
}

func (m *MockQueryService) GetCustomerPosition(ctx context.Context, queueID, customerID string) (int, error) {
	return m.GetCustomerPositionFn(ctx, queueID, customerID)
}

func (m *MockQueryService) GetQueueService(ctx context.Context, queueID string) (string, error) {
	return m.GetQueueServiceFn(ctx, queueID)
}

func (m *MockQueryService) GetAllActiveQueues(ctx context.Context) ([]domain.Queue, error) {
	return m.GetAllActiveQueuesFn(ctx)
}

func (m *MockQueryService) GetServiceQueueStatus(ctx context.Context, serviceID string) (*domain.QueueStatus, error) {
	return m.GetServiceQueueStatusFn(ctx, serviceID)
}

func (m *MockQueryService) GetCustomerServiceQueues(ctx context.Context, customerID string) ([]ports.ServiceQueueRef, error) {
	return m.GetCustomerServiceQueuesFn(ctx, customerID)
}

func (m *MockQueryService) GetEstimatedWaitTimeForCustomer(ctx context.Context, serviceID string) (*ports.WaitEstimate, error) {
	return m.GetEstimatedWaitTimeForCustomerFn(ctx, serviceID)
}

// MockWaitEstimateCache implements ports.WaitEstimateCache in memory with
// error injection.
type MockWaitEstimateCache struct {
	Estimates map[string]*ports.WaitEstimate
	GetError  error
	SetError  error

	GetCalls int
	SetCalls int
}

var _ ports.WaitEstimateCache = (*MockWaitEstimateCache)(nil)

func NewMockWaitEstimateCache() *MockWaitEstimateCache {
	return &MockWaitEstimateCache{Estimates: make(map[string]*ports.WaitEstimate)}
}

func (m *MockWaitEstimateCache) GetWaitEstimate(ctx context.Context, serviceID string) (*ports.WaitEstimate, error) {
	m.GetCalls++
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Estimates[serviceID], nil
}

func (m *MockWaitEstimateCache) SetWaitEstimate(ctx context.Context, est ports.WaitEstimate) error {
	m.SetCalls++
	if m.SetError != nil {
		return m.SetError
	}
	m.Estimates[est.ServiceID] = &est
	return nil
}

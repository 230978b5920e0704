package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/walkline/queue-service/internal/core/domain"
	"github.com/walkline/queue-service/internal/core/ports"
	"github.com/walkline/queue-service/test/mocks"
)

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return bytes.NewReader(data)
}

func TestGetCustomerPosition(t *testing.T) {
	mock := &mocks.MockQueryService{
		GetCustomerPositionFn: func(ctx context.Context, queueID, customerID string) (int, error) {
			if queueID != "q1" || customerID != "c1" {
				t.Errorf("got (%s, %s)", queueID, customerID)
			}
			return 2, nil
		},
	}
	h := NewQueryHandler(mock)

	req := httptest.NewRequest("GET", "/queues/q1/customers/c1/position", nil)
	req.SetPathValue("queueID", "q1")
	req.SetPathValue("customerID", "c1")
	rec := httptest.NewRecorder()

	h.GetCustomerPosition(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]int
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["position"] != 2 {
		t.Errorf("got %d, want 2", resp["position"])
	}
}

func TestGetServiceQueueStatus_NoRunningQueue(t *testing.T) {
	mock := &mocks.MockQueryService{
		GetServiceQueueStatusFn: func(ctx context.Context, serviceID string) (*domain.QueueStatus, error) {
			return nil, nil
		},
	}
	h := NewQueryHandler(mock)

	req := httptest.NewRequest("GET", "/services/svc1/queue-status", nil)
	req.SetPathValue("serviceID", "svc1")
	rec := httptest.NewRecorder()

	h.GetServiceQueueStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]*string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["status"] != nil {
		t.Errorf("got %v, want null", *resp["status"])
	}
}

func TestGetEstimatedWaitTime(t *testing.T) {
	mock := &mocks.MockQueryService{
		GetEstimatedWaitTimeForCustomerFn: func(ctx context.Context, serviceID string) (*ports.WaitEstimate, error) {
			return &ports.WaitEstimate{
				ServiceID:          serviceID,
				Open:               true,
				Status:             "active",
				CurrentQueueLength: 4,
				EstimatedTotalWait: 40,
			}, nil
		},
	}
	h := NewQueryHandler(mock)

	req := httptest.NewRequest("GET", "/services/svc1/wait-estimate", nil)
	req.SetPathValue("serviceID", "svc1")
	rec := httptest.NewRecorder()

	h.GetEstimatedWaitTime(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp ports.WaitEstimate
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.EstimatedTotalWait != 40 || !resp.Open {
		t.Errorf("got %+v", resp)
	}
}

func TestGetCompleteQueueInfo_NotFound(t *testing.T) {
	mock := &mocks.MockQueryService{
		GetCompleteQueueInfoFn: func(ctx context.Context, queueID string) (*ports.QueueInfo, error) {
			return nil, domain.ErrQueueNotFound
		},
	}
	h := NewQueryHandler(mock)

	req := httptest.NewRequest("GET", "/queues/missing", nil)
	req.SetPathValue("queueID", "missing")
	rec := httptest.NewRecorder()

	h.GetCompleteQueueInfo(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

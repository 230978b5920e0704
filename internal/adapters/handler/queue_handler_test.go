package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/walkline/queue-service/internal/core/domain"
	"github.com/walkline/queue-service/test/mocks"
)

func TestJoinQueue_ReturnsPosition(t *testing.T) {
	mock := &mocks.MockQueueService{
		JoinQueueFn: func(ctx context.Context, caller, queueID string) (int, error) {
			if queueID != "q1" {
				t.Errorf("got queue id %s, want q1", queueID)
			}
			return 3, nil
		},
	}
	h := NewQueueHandler(mock)

	req := httptest.NewRequest("POST", "/queues/q1/join", nil)
	req.SetPathValue("queueID", "q1")
	rec := httptest.NewRecorder()

	h.JoinQueue(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp JoinQueueResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Position != 3 {
		t.Errorf("got position %d, want 3", resp.Position)
	}
}

func TestJoinQueue_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"already in queue", domain.ErrAlreadyInQueue, http.StatusConflict},
		{"not active", domain.ErrQueueNotActive, http.StatusConflict},
		{"outside hours", domain.ErrOutsideHours, http.StatusConflict},
		{"past closing", domain.ErrPastClosingTime, http.StatusConflict},
		{"not a customer", domain.ErrNotCustomer, http.StatusForbidden},
		{"unknown queue", domain.ErrQueueNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &mocks.MockQueueService{
				JoinQueueFn: func(ctx context.Context, caller, queueID string) (int, error) {
					return 0, tt.err
				},
			}
			h := NewQueueHandler(mock)

			req := httptest.NewRequest("POST", "/queues/q1/join", nil)
			req.SetPathValue("queueID", "q1")
			rec := httptest.NewRecorder()

			h.JoinQueue(rec, req)

			if rec.Code != tt.want {
				t.Errorf("got %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestStartQueue(t *testing.T) {
	mock := &mocks.MockQueueService{
		StartQueueFn: func(ctx context.Context, caller, serviceID string) (string, error) {
			return "q-new", nil
		},
	}
	h := NewQueueHandler(mock)

	req := httptest.NewRequest("POST", "/services/svc1/queue", nil)
	req.SetPathValue("serviceID", "svc1")
	rec := httptest.NewRecorder()

	h.StartQueue(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp StartQueueResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.QueueID != "q-new" {
		t.Errorf("got queue id %s, want q-new", resp.QueueID)
	}
}

func TestStartQueue_Conflict(t *testing.T) {
	mock := &mocks.MockQueueService{
		StartQueueFn: func(ctx context.Context, caller, serviceID string) (string, error) {
			return "", domain.ErrQueueRunning
		},
	}
	h := NewQueueHandler(mock)

	req := httptest.NewRequest("POST", "/services/svc1/queue", nil)
	req.SetPathValue("serviceID", "svc1")
	rec := httptest.NewRecorder()

	h.StartQueue(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

func TestUpdateServingNumber(t *testing.T) {
	var gotNumber int
	mock := &mocks.MockQueueService{
		UpdateCurrentServingNumberFn: func(ctx context.Context, caller, queueID string, newNumber int) error {
			gotNumber = newNumber
			return nil
		},
	}
	h := NewQueueHandler(mock)

	req := httptest.NewRequest("PUT", "/queues/q1/serving", jsonBody(t, ServingNumberRequest{ServingNumber: 5}))
	req.SetPathValue("queueID", "q1")
	rec := httptest.NewRecorder()

	h.UpdateServingNumber(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if gotNumber != 5 {
		t.Errorf("got serving number %d, want 5", gotNumber)
	}
}

func TestUpdateServingNumber_BadPayload(t *testing.T) {
	h := NewQueueHandler(&mocks.MockQueueService{})

	req := httptest.NewRequest("PUT", "/queues/q1/serving", nil)
	req.SetPathValue("queueID", "q1")
	rec := httptest.NewRecorder()

	h.UpdateServingNumber(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestLeaveQueue(t *testing.T) {
	mock := &mocks.MockQueueService{
		LeaveQueueFn: func(ctx context.Context, caller, queueID string) error {
			return domain.ErrNotInQueue
		},
	}
	h := NewQueueHandler(mock)

	req := httptest.NewRequest("POST", "/queues/q1/leave", nil)
	req.SetPathValue("queueID", "q1")
	rec := httptest.NewRecorder()

	h.LeaveQueue(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rec.Code)
	}
}

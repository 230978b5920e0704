package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/walkline/queue-service/internal/adapters/middleware"
	"github.com/walkline/queue-service/internal/core/ports"
	"github.com/walkline/queue-service/internal/monitoring"
)

type QueueHandler struct {
	queues ports.QueueService
}

func NewQueueHandler(queues ports.QueueService) *QueueHandler {
	return &QueueHandler{queues: queues}
}

type StartQueueResponse struct {
	QueueID string `json:"queue_id"`
}

type JoinQueueResponse struct {
	Position int `json:"position"`
}

type ServingNumberRequest struct {
	ServingNumber int `json:"serving_number"`
}

func (h *QueueHandler) StartQueue(w http.ResponseWriter, r *http.Request) {
	queueID, err := h.queues.StartQueue(r.Context(), middleware.Principal(r), r.PathValue("serviceID"))
	if err != nil {
		monitoring.TrackQueueOperation("start", "error")
		writeError(w, err)
		return
	}

	monitoring.TrackQueueOperation("start", "success")
	writeJSON(w, http.StatusCreated, StartQueueResponse{QueueID: queueID})
}

func (h *QueueHandler) PauseQueue(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "pause", h.queues.PauseQueue)
}

func (h *QueueHandler) ResumeQueue(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "resume", h.queues.ResumeQueue)
}

func (h *QueueHandler) StopQueue(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "stop", h.queues.StopQueue)
}

func (h *QueueHandler) LeaveQueue(w http.ResponseWriter, r *http.Request) {
	h.lifecycle(w, r, "leave", h.queues.LeaveQueue)
}

func (h *QueueHandler) lifecycle(w http.ResponseWriter, r *http.Request, operation string, op func(ctx context.Context, caller, queueID string) error) {
	if err := op(r.Context(), middleware.Principal(r), r.PathValue("queueID")); err != nil {
		monitoring.TrackQueueOperation(operation, "error")
		writeError(w, err)
		return
	}

	monitoring.TrackQueueOperation(operation, "success")
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *QueueHandler) JoinQueue(w http.ResponseWriter, r *http.Request) {
	position, err := h.queues.JoinQueue(r.Context(), middleware.Principal(r), r.PathValue("queueID"))
	if err != nil {
		monitoring.TrackQueueOperation("join", "error")
		writeError(w, err)
		return
	}

	monitoring.TrackQueueOperation("join", "success")
	writeJSON(w, http.StatusOK, JoinQueueResponse{Position: position})
}

func (h *QueueHandler) UpdateServingNumber(w http.ResponseWriter, r *http.Request) {
	var req ServingNumberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.queues.UpdateCurrentServingNumber(r.Context(), middleware.Principal(r), r.PathValue("queueID"), req.ServingNumber); err != nil {
		monitoring.TrackQueueOperation("advance", "error")
		writeError(w, err)
		return
	}

	monitoring.TrackQueueOperation("advance", "success")
	writeJSON(w, http.StatusNoContent, nil)
}

// ClearCustomerQueues removes a customer from every non-stopped queue.
// The service allows callers to clear their own enrollments and checks the
// stored admin grant for anyone else's.
func (h *QueueHandler) ClearCustomerQueues(w http.ResponseWriter, r *http.Request) {
	if err := h.queues.ClearCustomerQueues(r.Context(), middleware.Principal(r), r.PathValue("customerID")); err != nil {
		monitoring.TrackQueueOperation("clear", "error")
		writeError(w, err)
		return
	}

	monitoring.TrackQueueOperation("clear", "success")
	writeJSON(w, http.StatusNoContent, nil)
}

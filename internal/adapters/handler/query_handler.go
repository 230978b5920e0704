package handler

import (
	"net/http"

	"github.com/walkline/queue-service/internal/core/ports"
)

type QueryHandler struct {
	query ports.QueryService
}

func NewQueryHandler(query ports.QueryService) *QueryHandler {
	return &QueryHandler{query: query}
}

func (h *QueryHandler) GetCompleteQueueInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.query.GetCompleteQueueInfo(r.Context(), r.PathValue("queueID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (h *QueryHandler) GetQueueEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.query.GetQueueEntries(r.Context(), r.PathValue("queueID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *QueryHandler) GetQueueStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.query.GetQueueStatus(r.Context(), r.PathValue("queueID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": status})
}

func (h *QueryHandler) GetCurrentServingNumber(w http.ResponseWriter, r *http.Request) {
	serving, err := h.query.GetCurrentServingNumber(r.Context(), r.PathValue("queueID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"serving_number": serving})
}

// GetCustomerPosition reports 0 for a customer who is not in the queue.
func (h *QueryHandler) GetCustomerPosition(w http.ResponseWriter, r *http.Request) {
	position, err := h.query.GetCustomerPosition(r.Context(), r.PathValue("queueID"), r.PathValue("customerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"position": position})
}

func (h *QueryHandler) GetQueueService(w http.ResponseWriter, r *http.Request) {
	serviceID, err := h.query.GetQueueService(r.Context(), r.PathValue("queueID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"service_id": serviceID})
}

func (h *QueryHandler) GetAllActiveQueues(w http.ResponseWriter, r *http.Request) {
	queues, err := h.query.GetAllActiveQueues(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, queues)
}

// GetServiceQueueStatus returns {"status": null} when the service has no
// running queue.
func (h *QueryHandler) GetServiceQueueStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.query.GetServiceQueueStatus(r.Context(), r.PathValue("serviceID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": status})
}

func (h *QueryHandler) GetCustomerServiceQueues(w http.ResponseWriter, r *http.Request) {
	refs, err := h.query.GetCustomerServiceQueues(r.Context(), r.PathValue("customerID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, refs)
}

func (h *QueryHandler) GetEstimatedWaitTime(w http.ResponseWriter, r *http.Request) {
	est, err := h.query.GetEstimatedWaitTimeForCustomer(r.Context(), r.PathValue("serviceID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

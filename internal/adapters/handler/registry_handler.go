package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/walkline/queue-service/internal/adapters/middleware"
	"github.com/walkline/queue-service/internal/core/ports"
)

type RegistryHandler struct {
	registry ports.RegistryService
}

func NewRegistryHandler(registry ports.RegistryService) *RegistryHandler {
	return &RegistryHandler{registry: registry}
}

type CreateServiceRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Capacity int    `json:"capacity"`
}

type CreateServiceResponse struct {
	ServiceID string `json:"service_id"`
}

type ServiceTimeRequest struct {
	Minutes int `json:"minutes"`
}

type ServiceHoursRequest struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

func (h *RegistryHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	serviceID, err := h.registry.CreateService(r.Context(), middleware.Principal(r), req.Name, req.Address, req.Capacity)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CreateServiceResponse{ServiceID: serviceID})
}

func (h *RegistryHandler) SetEstimatedServiceTime(w http.ResponseWriter, r *http.Request) {
	var req ServiceTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.registry.SetEstimatedServiceTime(r.Context(), middleware.Principal(r), r.PathValue("serviceID"), req.Minutes); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *RegistryHandler) SetWeekdayHours(w http.ResponseWriter, r *http.Request) {
	h.setHours(w, r, h.registry.SetWeekdayHours)
}

func (h *RegistryHandler) SetWeekendHours(w http.ResponseWriter, r *http.Request) {
	h.setHours(w, r, h.registry.SetWeekendHours)
}

func (h *RegistryHandler) setHours(w http.ResponseWriter, r *http.Request, set func(ctx context.Context, caller, serviceID string, startHour, endHour int) error) {
	var req ServiceHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := set(r.Context(), middleware.Principal(r), r.PathValue("serviceID"), req.StartHour, req.EndHour); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *RegistryHandler) DeleteService(w http.ResponseWriter, r *http.Request) {
	if err := h.registry.DeleteService(r.Context(), middleware.Principal(r), r.PathValue("serviceID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *RegistryHandler) GetService(w http.ResponseWriter, r *http.Request) {
	svc, err := h.registry.GetService(r.Context(), r.PathValue("serviceID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, svc)
}

func (h *RegistryHandler) GetServiceOwner(w http.ResponseWriter, r *http.Request) {
	owner, err := h.registry.GetServiceOwner(r.Context(), r.PathValue("serviceID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"owner": owner})
}

func (h *RegistryHandler) GetServiceHours(w http.ResponseWriter, r *http.Request) {
	weekday, weekend, err := h.registry.GetServiceHours(r.Context(), r.PathValue("serviceID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"weekday_hours": weekday,
		"weekend_hours": weekend,
	})
}

func (h *RegistryHandler) GetEstimatedServiceTime(w http.ResponseWriter, r *http.Request) {
	minutes, err := h.registry.GetEstimatedServiceTime(r.Context(), r.PathValue("serviceID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"minutes": minutes})
}

func (h *RegistryHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.registry.ListServices(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, services)
}

func (h *RegistryHandler) ListOwnServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.registry.ListServicesByOwner(r.Context(), middleware.Principal(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, services)
}

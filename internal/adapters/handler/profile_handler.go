package handler

import (
	"encoding/json"
	"net/http"

	"github.com/walkline/queue-service/internal/adapters/middleware"
	"github.com/walkline/queue-service/internal/core/domain"
	"github.com/walkline/queue-service/internal/core/ports"
)

type ProfileHandler struct {
	profiles ports.ProfileService
}

func NewProfileHandler(profiles ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type SaveProfileRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type AssignAdminRoleRequest struct {
	Role string `json:"role"`
}

func (h *ProfileHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req SaveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.profiles.SaveProfile(r.Context(), middleware.Principal(r), req.Name, domain.UserRole(req.Role)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// GetProfile returns the caller's own profile, null when none is stored.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.GetProfile(r.Context(), middleware.Principal(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.profiles.UpdateRole(r.Context(), middleware.Principal(r), domain.UserRole(req.Role)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func (h *ProfileHandler) AssignAdminRole(w http.ResponseWriter, r *http.Request) {
	var req AssignAdminRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.profiles.AssignAdminRole(r.Context(), middleware.Principal(r), r.PathValue("principal"), domain.AdminRole(req.Role)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

// GetAdminRole reports the caller's effective admin role, guest when no
// grant exists.
func (h *ProfileHandler) GetAdminRole(w http.ResponseWriter, r *http.Request) {
	role, err := h.profiles.GetAdminRole(r.Context(), middleware.Principal(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"admin_role": role,
		"is_admin":   role == domain.AdminRoleAdmin,
	})
}

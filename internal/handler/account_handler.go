package handler

import (
	"encoding/json"
	"net/http"

	"scorehub/internal/container"
	"scorehub/internal/middleware"
	"scorehub/pkg/errors"
)

// AccountHandler handles profile and presence endpoints
type AccountHandler struct {
	container *container.Container
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(container *container.Container) *AccountHandler {
	return &AccountHandler{
		container: container,
	}
}

// UpdateDisplayNameRequest is the rename payload
type UpdateDisplayNameRequest struct {
	DisplayName string `json:"display_name"`
}

// Profile handles GET /api/user/profile
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	claims := middleware.SessionFromContext(r.Context())
	if claims == nil {
		writeError(w, log, errors.NewAuthenticationError("Not authenticated"))
		return
	}

	profile, err := h.container.GetAccountService().Profile(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeSuccess(w, log, http.StatusOK, profile)
}

// UpdateDisplayName handles PUT /api/user/profile/display-name
func (h *AccountHandler) UpdateDisplayName(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	claims := middleware.SessionFromContext(r.Context())
	if claims == nil {
		writeError(w, log, errors.NewAuthenticationError("Not authenticated"))
		return
	}

	var req UpdateDisplayNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, log, errors.NewValidationError("Invalid request body", nil))
		return
	}

	profile, err := h.container.GetAccountService().UpdateDisplayName(r.Context(), claims.UserID, req.DisplayName)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeSuccess(w, log, http.StatusOK, profile)
}

// CompleteOnboarding handles POST /api/user/onboarding/complete
func (h *AccountHandler) CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	claims := middleware.SessionFromContext(r.Context())
	if claims == nil {
		writeError(w, log, errors.NewAuthenticationError("Not authenticated"))
		return
	}

	profile, err := h.container.GetAccountService().CompleteOnboarding(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeSuccess(w, log, http.StatusOK, profile)
}

// Presence handles GET /api/user/presence
func (h *AccountHandler) Presence(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	claims := middleware.SessionFromContext(r.Context())
	if claims == nil {
		writeError(w, log, errors.NewAuthenticationError("Not authenticated"))
		return
	}

	record, err := h.container.GetAccountService().Presence(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeSuccess(w, log, http.StatusOK, record)
}

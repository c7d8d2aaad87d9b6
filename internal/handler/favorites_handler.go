package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"scorehub/internal/container"
	"scorehub/internal/domain"
	"scorehub/internal/middleware"
	"scorehub/pkg/errors"
)

// DeviceIDHeader carries the client-generated device id for stash endpoints.
const DeviceIDHeader = "X-Device-ID"

// FavoritesHandler handles the favorites record and the pre-sign-in stash
type FavoritesHandler struct {
	container *container.Container
}

// NewFavoritesHandler creates a new favorites handler
func NewFavoritesHandler(container *container.Container) *FavoritesHandler {
	return &FavoritesHandler{
		container: container,
	}
}

// FollowRequest is the body for follow/unfollow updates
type FollowRequest struct {
	Following bool `json:"following"`
}

// Favorites handles GET /api/user/favorites
func (h *FavoritesHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	claims := middleware.SessionFromContext(r.Context())
	if claims == nil {
		writeError(w, log, errors.NewAuthenticationError("Not authenticated"))
		return
	}

	record, err := h.container.GetFavoritesService().Favorites(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeSuccess(w, log, http.StatusOK, record)
}

// SetTeam handles PUT /api/user/favorites/teams/{teamID}
func (h *FavoritesHandler) SetTeam(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	claims := middleware.SessionFromContext(r.Context())
	if claims == nil {
		writeError(w, log, errors.NewAuthenticationError("Not authenticated"))
		return
	}

	var req FollowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, log, errors.NewValidationError("Invalid request body", nil))
		return
	}

	teamID := chi.URLParam(r, "teamID")
	record, err := h.container.GetFavoritesService().SetTeam(r.Context(), claims.UserID, teamID, req.Following)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeSuccess(w, log, http.StatusOK, record)
}

// SetLeague handles PUT /api/user/favorites/leagues/{leagueID}
func (h *FavoritesHandler) SetLeague(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	claims := middleware.SessionFromContext(r.Context())
	if claims == nil {
		writeError(w, log, errors.NewAuthenticationError("Not authenticated"))
		return
	}

	var req FollowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, log, errors.NewValidationError("Invalid request body", nil))
		return
	}

	leagueID := chi.URLParam(r, "leagueID")
	record, err := h.container.GetFavoritesService().SetLeague(r.Context(), claims.UserID, leagueID, req.Following)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeSuccess(w, log, http.StatusOK, record)
}

// StashedSelection handles GET /api/stash/favorites
func (h *FavoritesHandler) StashedSelection(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	deviceID := r.Header.Get(DeviceIDHeader)
	sel, err := h.container.GetFavoritesService().StashedSelection(r.Context(), deviceID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeSuccess(w, log, http.StatusOK, sel)
}

// StashSelection handles PUT /api/stash/favorites
func (h *FavoritesHandler) StashSelection(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	var sel domain.FavoriteSelection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		writeError(w, log, errors.NewValidationError("Invalid request body", nil))
		return
	}

	deviceID := r.Header.Get(DeviceIDHeader)
	if err := h.container.GetFavoritesService().StashSelection(r.Context(), deviceID, sel); err != nil {
		writeError(w, log, err)
		return
	}

	writeSuccess(w, log, http.StatusOK, sel)
}

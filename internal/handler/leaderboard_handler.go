package handler

import (
	"net/http"
	"strconv"

	"scorehub/internal/container"
	"scorehub/internal/middleware"
	"scorehub/pkg/errors"
)

// LeaderboardHandler handles leaderboard reads
type LeaderboardHandler struct {
	container *container.Container
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(container *container.Container) *LeaderboardHandler {
	return &LeaderboardHandler{
		container: container,
	}
}

// Top handles GET /api/leaderboard
func (h *LeaderboardHandler) Top(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, log, errors.NewValidationError("limit must be an integer", nil))
			return
		}
		limit = parsed
	}

	entries, err := h.container.GetLeaderboardService().Top(r.Context(), limit)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeSuccess(w, log, http.StatusOK, entries)
}

// Me handles GET /api/leaderboard/me
func (h *LeaderboardHandler) Me(w http.ResponseWriter, r *http.Request) {
	log := h.container.GetLogger()

	claims := middleware.SessionFromContext(r.Context())
	if claims == nil {
		writeError(w, log, errors.NewAuthenticationError("Not authenticated"))
		return
	}

	entry, err := h.container.GetLeaderboardService().EntryForUser(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, log, err)
		return
	}

	writeSuccess(w, log, http.StatusOK, entry)
}

package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scorehub/internal/domain"
	"scorehub/internal/service"
)

func TestLeaderboardHandler_Top(t *testing.T) {
	services := &service.Services{
		Leaderboard: &fakeLeaderboardService{
			topFn: func(_ context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
				require.Equal(t, 5, limit)
				return []*domain.LeaderboardEntry{
					{UserID: "user-1", DisplayName: "Alex", TotalPoints: 120},
					{UserID: "user-2", DisplayName: "Sam", TotalPoints: 80},
				}, nil
			},
		},
	}
	h := NewLeaderboardHandler(newTestContainer(t, services))

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard?limit=5", nil)
	rec := httptest.NewRecorder()
	h.Top(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                      `json:"success"`
		Data    []domain.LeaderboardEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 2)
	assert.Equal(t, int64(120), body.Data[0].TotalPoints)
}

func TestLeaderboardHandler_TopDefaultLimit(t *testing.T) {
	services := &service.Services{
		Leaderboard: &fakeLeaderboardService{
			topFn: func(_ context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
				// Absent query param reaches the service as zero; the service
				// applies its own default.
				require.Equal(t, 0, limit)
				return nil, nil
			},
		},
	}
	h := NewLeaderboardHandler(newTestContainer(t, services))

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)
	rec := httptest.NewRecorder()
	h.Top(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLeaderboardHandler_TopBadLimit(t *testing.T) {
	h := NewLeaderboardHandler(newTestContainer(t, &service.Services{}))

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard?limit=ten", nil)
	rec := httptest.NewRecorder()
	h.Top(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLeaderboardHandler_Me(t *testing.T) {
	services := &service.Services{
		Leaderboard: &fakeLeaderboardService{
			entryFn: func(_ context.Context, userID string) (*domain.LeaderboardEntry, error) {
				require.Equal(t, "user-1", userID)
				return &domain.LeaderboardEntry{UserID: userID, TotalPoints: 42}, nil
			},
		},
	}
	h := NewLeaderboardHandler(newTestContainer(t, services))

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/leaderboard/me", nil), sessionClaims())
	rec := httptest.NewRecorder()
	h.Me(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data domain.LeaderboardEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(42), body.Data.TotalPoints)
}

func TestLeaderboardHandler_MeUnauthenticated(t *testing.T) {
	h := NewLeaderboardHandler(newTestContainer(t, &service.Services{}))

	rec := httptest.NewRecorder()
	h.Me(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard/me", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

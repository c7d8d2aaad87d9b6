package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"scorehub/internal/domain"
	apperrors "scorehub/pkg/errors"
	"scorehub/pkg/logger"
	"scorehub/pkg/redis"
)

type leaderboardFixture struct {
	svc    LeaderboardService
	repo   *fakeLeaderboardRepo
	client *redis.Client
	mr     *miniredis.Miniredis
}

func newLeaderboardFixture(t *testing.T) *leaderboardFixture {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)

	log, err := logger.New("error", "test")
	require.NoError(t, err)

	repo := newFakeLeaderboardRepo()
	return &leaderboardFixture{
		svc:    NewLeaderboardService(repo, client, log),
		repo:   repo,
		client: client,
		mr:     mr,
	}
}

func seedEntries(f *leaderboardFixture, n int) {
	for i := 0; i < n; i++ {
		f.repo.top = append(f.repo.top, &domain.LeaderboardEntry{
			UserID:      fmt.Sprintf("user-%d", i),
			DisplayName: fmt.Sprintf("Fan %d", i),
			TotalPoints: int64(1000 - i),
		})
	}
}

func TestLeaderboardService_Top(t *testing.T) {
	f := newLeaderboardFixture(t)
	seedEntries(f, 5)

	entries, err := f.svc.Top(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "user-0", entries[0].UserID)
	assert.Equal(t, int64(1000), entries[0].TotalPoints)
	assert.Equal(t, 3, f.repo.lastTopLimit)
}

func TestLeaderboardService_TopUsesCache(t *testing.T) {
	f := newLeaderboardFixture(t)
	seedEntries(f, 5)
	ctx := context.Background()

	_, err := f.svc.Top(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, 1, f.repo.topCalls)

	// The cache write is fire-and-forget; wait for the key to land.
	key := f.client.KeyBuilder.KeyLeaderboardTop(3)
	require.Eventually(t, func() bool {
		return f.mr.Exists(key)
	}, time.Second, 10*time.Millisecond)

	entries, err := f.svc.Top(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, 1, f.repo.topCalls)
}

func TestLeaderboardService_TopClampsLimit(t *testing.T) {
	f := newLeaderboardFixture(t)
	seedEntries(f, 5)
	ctx := context.Background()

	_, err := f.svc.Top(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, defaultLeaderboardLimit, f.repo.lastTopLimit)

	_, err = f.svc.Top(ctx, 5000)
	require.NoError(t, err)
	assert.Equal(t, maxLeaderboardLimit, f.repo.lastTopLimit)
}

func TestLeaderboardService_TopEmpty(t *testing.T) {
	f := newLeaderboardFixture(t)

	entries, err := f.svc.Top(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLeaderboardService_TopRepositoryFailure(t *testing.T) {
	f := newLeaderboardFixture(t)
	f.repo.topErr = fmt.Errorf("query failed")

	_, err := f.svc.Top(context.Background(), 10)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeInternal))
}

func TestLeaderboardService_EntryForUser(t *testing.T) {
	f := newLeaderboardFixture(t)
	ctx := context.Background()

	f.repo.entries["user-1"] = &domain.LeaderboardEntry{
		UserID:      "user-1",
		DisplayName: "Fan 1",
		TotalPoints: 42,
	}

	entry, err := f.svc.EntryForUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(42), entry.TotalPoints)

	_, err = f.svc.EntryForUser(ctx, "user-unknown")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

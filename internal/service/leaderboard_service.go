package service

import (
	"context"
	"encoding/json"

	"scorehub/internal/domain"
	"scorehub/internal/repository"
	"scorehub/pkg/errors"
	"scorehub/pkg/logger"
	"scorehub/pkg/redis"
)

const (
	defaultLeaderboardLimit = 20
	maxLeaderboardLimit     = 100
)

// leaderboardService reads the leaderboard. Top goes through a short-lived
// Redis cache keyed by limit so the table query isn't repeated for every
// page load.
type leaderboardService struct {
	repo  repository.LeaderboardRepository
	redis *redis.Client
	log   *logger.Logger
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(repo repository.LeaderboardRepository, redisClient *redis.Client, log *logger.Logger) LeaderboardService {
	return &leaderboardService{
		repo:  repo,
		redis: redisClient,
		log:   log.WithComponent("leaderboard"),
	}
}

// Top retrieves the highest-scoring entries. The limit is clamped to
// [1, maxLeaderboardLimit] with a default of defaultLeaderboardLimit.
func (s *leaderboardService) Top(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	key := s.redis.KeyBuilder.KeyLeaderboardTop(limit)
	payload, err := s.redis.GetWithFallback(ctx, key, redis.TTLLeaderboardTop, func() (string, error) {
		entries, err := s.repo.Top(ctx, limit)
		if err != nil {
			return "", err
		}
		data, err := json.Marshal(entries)
		if err != nil {
			return "", err
		}
		return string(data), nil
	})
	if err != nil {
		return nil, errors.NewInternalError("failed to load leaderboard", err)
	}

	var entries []*domain.LeaderboardEntry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		return nil, errors.NewInternalError("failed to decode cached leaderboard", err)
	}
	return entries, nil
}

// EntryForUser retrieves one user's entry
func (s *leaderboardService) EntryForUser(ctx context.Context, userID string) (*domain.LeaderboardEntry, error) {
	entry, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError("failed to load leaderboard entry", err)
	}
	if entry == nil {
		return nil, errors.NewNotFoundError("leaderboard entry not found")
	}
	return entry, nil
}

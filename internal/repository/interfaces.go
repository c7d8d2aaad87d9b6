package repository

import (
	"context"

	"scorehub/internal/domain"
	"scorehub/pkg/database"
	"scorehub/pkg/redis"
)

// ProfileRepository defines the interface for user profile operations
type ProfileRepository interface {
	// GetByUserID retrieves a profile by user ID, (nil, nil) when absent
	GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error)

	// CreateInitialRecords inserts the profile, leaderboard entry, and
	// favorites record in a single transaction
	CreateInitialRecords(ctx context.Context, profile *domain.UserProfile, entry *domain.LeaderboardEntry, favorites *domain.FavoritesRecord) error

	// UpdateDisplayName sets a new display name on the profile
	UpdateDisplayName(ctx context.Context, userID, displayName string) (*domain.UserProfile, error)

	// SetOnboardingComplete marks the profile's onboarding as done
	SetOnboardingComplete(ctx context.Context, userID string) (*domain.UserProfile, error)
}

// FavoritesRepository defines the interface for favorites record operations
type FavoritesRepository interface {
	// GetByUserID retrieves a favorites record by user ID, (nil, nil) when absent
	GetByUserID(ctx context.Context, userID string) (*domain.FavoritesRecord, error)

	// SetTeam follows or unfollows one team
	SetTeam(ctx context.Context, userID, teamID string, following bool) (*domain.FavoritesRecord, error)

	// SetLeague follows or unfollows one league
	SetLeague(ctx context.Context, userID, leagueID string, following bool) (*domain.FavoritesRecord, error)
}

// LeaderboardRepository defines the interface for leaderboard operations
type LeaderboardRepository interface {
	// GetByUserID retrieves a user's leaderboard entry, (nil, nil) when absent
	GetByUserID(ctx context.Context, userID string) (*domain.LeaderboardEntry, error)

	// Top retrieves the highest-scoring entries
	Top(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error)

	// UpdateDisplayName mirrors a profile display-name change onto the entry
	UpdateDisplayName(ctx context.Context, userID, displayName string) error
}

// PresenceRepository defines the interface for realtime presence records
type PresenceRepository interface {
	// Set writes the full presence record for a user
	Set(ctx context.Context, userID string, record domain.PresenceRecord) error

	// Get retrieves a user's presence record, (nil, nil) when absent
	Get(ctx context.Context, userID string) (*domain.PresenceRecord, error)

	// SetDisplayName mirrors a display-name change onto the presence record
	SetDisplayName(ctx context.Context, userID, displayName string) error
}

// Repositories aggregates all repository interfaces
type Repositories struct {
	Profile     ProfileRepository
	Favorites   FavoritesRepository
	Leaderboard LeaderboardRepository
	Presence    PresenceRepository
}

// NewRepositories wires the document-store repositories onto Postgres and the
// presence repository onto Redis
func NewRepositories(db *database.PostgresDB, redisClient *redis.Client) *Repositories {
	return &Repositories{
		Profile:     NewProfileRepository(db),
		Favorites:   NewFavoritesRepository(db),
		Leaderboard: NewLeaderboardRepository(db),
		Presence:    NewPresenceRepository(redisClient),
	}
}

package service

import (
	"context"

	"scorehub/internal/domain"
)

// AccountService defines the interface for account lifecycle operations
type AccountService interface {
	// Provision makes sure a signed-in identity has its account records.
	// Runs once per sign-in; reports whether this call created the account.
	Provision(ctx context.Context, identity *domain.Identity, deviceID string) (*domain.UserProfile, bool, error)

	// Profile retrieves the user's profile
	Profile(ctx context.Context, userID string) (*domain.UserProfile, error)

	// UpdateDisplayName renames the user everywhere the name is stored
	UpdateDisplayName(ctx context.Context, userID, displayName string) (*domain.UserProfile, error)

	// CompleteOnboarding marks the profile's onboarding as done
	CompleteOnboarding(ctx context.Context, userID string) (*domain.UserProfile, error)

	// Presence retrieves the user's realtime presence record
	Presence(ctx context.Context, userID string) (*domain.PresenceRecord, error)
}

// FavoritesService defines the interface for favorites operations, both the
// account-bound record and the pre-sign-in device stash
type FavoritesService interface {
	// Favorites retrieves the user's favorites record
	Favorites(ctx context.Context, userID string) (*domain.FavoritesRecord, error)

	// SetTeam follows or unfollows one team
	SetTeam(ctx context.Context, userID, teamID string, following bool) (*domain.FavoritesRecord, error)

	// SetLeague follows or unfollows one league
	SetLeague(ctx context.Context, userID, leagueID string, following bool) (*domain.FavoritesRecord, error)

	// StashedSelection retrieves a device's pre-sign-in selection
	StashedSelection(ctx context.Context, deviceID string) (domain.FavoriteSelection, error)

	// StashSelection overwrites a device's pre-sign-in selection
	StashSelection(ctx context.Context, deviceID string, sel domain.FavoriteSelection) error
}

// LeaderboardService defines the interface for leaderboard reads
type LeaderboardService interface {
	// Top retrieves the highest-scoring entries
	Top(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error)

	// EntryForUser retrieves one user's entry
	EntryForUser(ctx context.Context, userID string) (*domain.LeaderboardEntry, error)
}

// SessionService defines the interface for session tokens
type SessionService interface {
	// Issue mints a session token for a provisioned profile
	Issue(ctx context.Context, profile *domain.UserProfile) (string, error)

	// Validate checks a token and returns its claims
	Validate(ctx context.Context, token string) (*domain.SessionClaims, error)

	// Revoke invalidates the session with the given token id
	Revoke(ctx context.Context, jti string) error
}

// IdentityProvider defines the interface to the federated sign-in provider
type IdentityProvider interface {
	// AuthCodeURL builds the consent-page redirect target for a sign-in attempt
	AuthCodeURL(state string) string

	// Exchange trades a callback code for the signed-in identity
	Exchange(ctx context.Context, code string) (*domain.Identity, error)

	// IsConfigured reports whether provider credentials are present
	IsConfigured() bool
}

// Services aggregates all service interfaces
type Services struct {
	Account     AccountService
	Favorites   FavoritesService
	Leaderboard LeaderboardService
	Session     SessionService
	Identity    IdentityProvider
}

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"scorehub/internal/domain"
	"scorehub/pkg/database"
)

// profileRepository handles user profile operations with PostgreSQL
type profileRepository struct {
	db *database.PostgresDB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.PostgresDB) ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

const profileColumns = `user_id, email, display_name, photo_url, is_pro_user, onboarding_complete, is_anonymous, created_at, updated_at`

// GetByUserID retrieves a profile by user ID
func (r *profileRepository) GetByUserID(ctx context.Context, userID string) (*domain.UserProfile, error) {
	query := `
		SELECT ` + profileColumns + `
		FROM user_profiles
		WHERE user_id = $1
	`

	profile := &domain.UserProfile{}
	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(
		&profile.UserID,
		&profile.Email,
		&profile.DisplayName,
		&profile.PhotoURL,
		&profile.IsProUser,
		&profile.OnboardingComplete,
		&profile.IsAnonymous,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			// Absence is meaningful here: it marks an account as not yet provisioned
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	return profile, nil
}

// CreateInitialRecords inserts the three account records in one transaction,
// so a user either has all of them or none.
func (r *profileRepository) CreateInitialRecords(ctx context.Context, profile *domain.UserProfile, entry *domain.LeaderboardEntry, favorites *domain.FavoritesRecord) error {
	now := time.Now().UTC()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	entry.CreatedAt = now
	entry.UpdatedAt = now
	favorites.UpdatedAt = now

	if favorites.Teams == nil {
		favorites.Teams = map[string]bool{}
	}
	if favorites.Leagues == nil {
		favorites.Leagues = map[string]bool{}
	}

	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO user_profiles (user_id, email, display_name, photo_url, is_pro_user, onboarding_complete, is_anonymous, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			profile.UserID,
			profile.Email,
			profile.DisplayName,
			profile.PhotoURL,
			profile.IsProUser,
			profile.OnboardingComplete,
			profile.IsAnonymous,
			profile.CreatedAt,
			profile.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert user profile: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO leaderboard_entries (user_id, display_name, photo_url, total_points, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			entry.UserID,
			entry.DisplayName,
			entry.PhotoURL,
			entry.TotalPoints,
			entry.CreatedAt,
			entry.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert leaderboard entry: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO favorites (user_id, teams, leagues, updated_at)
			VALUES ($1, $2, $3, $4)
		`,
			favorites.UserID,
			favorites.Teams,
			favorites.Leagues,
			favorites.UpdatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert favorites record: %w", err)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create initial account records: %w", err)
	}

	return nil
}

// UpdateDisplayName sets a new display name on the profile
func (r *profileRepository) UpdateDisplayName(ctx context.Context, userID, displayName string) (*domain.UserProfile, error) {
	query := `
		UPDATE user_profiles
		SET display_name = $2, updated_at = $3
		WHERE user_id = $1
		RETURNING ` + profileColumns + `
	`

	profile := &domain.UserProfile{}
	err := r.db.Pool.QueryRow(ctx, query, userID, displayName, time.Now().UTC()).Scan(
		&profile.UserID,
		&profile.Email,
		&profile.DisplayName,
		&profile.PhotoURL,
		&profile.IsProUser,
		&profile.OnboardingComplete,
		&profile.IsAnonymous,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update display name: %w", err)
	}

	return profile, nil
}

// SetOnboardingComplete marks the profile's onboarding as done
func (r *profileRepository) SetOnboardingComplete(ctx context.Context, userID string) (*domain.UserProfile, error) {
	query := `
		UPDATE user_profiles
		SET onboarding_complete = TRUE, updated_at = $2
		WHERE user_id = $1
		RETURNING ` + profileColumns + `
	`

	profile := &domain.UserProfile{}
	err := r.db.Pool.QueryRow(ctx, query, userID, time.Now().UTC()).Scan(
		&profile.UserID,
		&profile.Email,
		&profile.DisplayName,
		&profile.PhotoURL,
		&profile.IsProUser,
		&profile.OnboardingComplete,
		&profile.IsAnonymous,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to set onboarding complete: %w", err)
	}

	return profile, nil
}

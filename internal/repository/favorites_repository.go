package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"scorehub/internal/domain"
	"scorehub/pkg/database"
)

// favoritesRepository handles favorites records with PostgreSQL. Teams and
// leagues live in jsonb columns keyed by team/league id.
type favoritesRepository struct {
	db *database.PostgresDB
}

// NewFavoritesRepository creates a new favorites repository
func NewFavoritesRepository(db *database.PostgresDB) FavoritesRepository {
	return &favoritesRepository{
		db: db,
	}
}

// GetByUserID retrieves a favorites record by user ID
func (r *favoritesRepository) GetByUserID(ctx context.Context, userID string) (*domain.FavoritesRecord, error) {
	query := `
		SELECT user_id, teams, leagues, updated_at
		FROM favorites
		WHERE user_id = $1
	`

	record := &domain.FavoritesRecord{}
	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(
		&record.UserID,
		&record.Teams,
		&record.Leagues,
		&record.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get favorites record: %w", err)
	}

	return record, nil
}

// SetTeam follows or unfollows one team. Following merges the key in,
// unfollowing removes it.
func (r *favoritesRepository) SetTeam(ctx context.Context, userID, teamID string, following bool) (*domain.FavoritesRecord, error) {
	query := `
		UPDATE favorites
		SET teams = CASE
				WHEN $3 THEN teams || jsonb_build_object($2::text, TRUE)
				ELSE teams - $2::text
			END,
			updated_at = $4
		WHERE user_id = $1
		RETURNING user_id, teams, leagues, updated_at
	`

	return r.applyUpdate(ctx, query, userID, teamID, following)
}

// SetLeague follows or unfollows one league
func (r *favoritesRepository) SetLeague(ctx context.Context, userID, leagueID string, following bool) (*domain.FavoritesRecord, error) {
	query := `
		UPDATE favorites
		SET leagues = CASE
				WHEN $3 THEN leagues || jsonb_build_object($2::text, TRUE)
				ELSE leagues - $2::text
			END,
			updated_at = $4
		WHERE user_id = $1
		RETURNING user_id, teams, leagues, updated_at
	`

	return r.applyUpdate(ctx, query, userID, leagueID, following)
}

func (r *favoritesRepository) applyUpdate(ctx context.Context, query, userID, subjectID string, following bool) (*domain.FavoritesRecord, error) {
	record := &domain.FavoritesRecord{}
	err := r.db.Pool.QueryRow(ctx, query, userID, subjectID, following, time.Now().UTC()).Scan(
		&record.UserID,
		&record.Teams,
		&record.Leagues,
		&record.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update favorites record: %w", err)
	}

	return record, nil
}

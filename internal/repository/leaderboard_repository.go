package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"scorehub/internal/domain"
	"scorehub/pkg/database"
)

// leaderboardRepository handles leaderboard entries with PostgreSQL
type leaderboardRepository struct {
	db *database.PostgresDB
}

// NewLeaderboardRepository creates a new leaderboard repository
func NewLeaderboardRepository(db *database.PostgresDB) LeaderboardRepository {
	return &leaderboardRepository{
		db: db,
	}
}

// GetByUserID retrieves a user's leaderboard entry
func (r *leaderboardRepository) GetByUserID(ctx context.Context, userID string) (*domain.LeaderboardEntry, error) {
	query := `
		SELECT user_id, display_name, photo_url, total_points, created_at, updated_at
		FROM leaderboard_entries
		WHERE user_id = $1
	`

	entry := &domain.LeaderboardEntry{}
	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(
		&entry.UserID,
		&entry.DisplayName,
		&entry.PhotoURL,
		&entry.TotalPoints,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get leaderboard entry: %w", err)
	}

	return entry, nil
}

// Top retrieves the highest-scoring entries. Ties go to the older account.
func (r *leaderboardRepository) Top(ctx context.Context, limit int) ([]*domain.LeaderboardEntry, error) {
	query := `
		SELECT user_id, display_name, photo_url, total_points, created_at, updated_at
		FROM leaderboard_entries
		ORDER BY total_points DESC, created_at ASC
		LIMIT $1
	`

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []*domain.LeaderboardEntry
	for rows.Next() {
		entry := &domain.LeaderboardEntry{}
		err := rows.Scan(
			&entry.UserID,
			&entry.DisplayName,
			&entry.PhotoURL,
			&entry.TotalPoints,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading leaderboard rows: %w", err)
	}

	return entries, nil
}

// UpdateDisplayName mirrors a profile display-name change onto the entry
func (r *leaderboardRepository) UpdateDisplayName(ctx context.Context, userID, displayName string) error {
	query := `
		UPDATE leaderboard_entries
		SET display_name = $2, updated_at = $3
		WHERE user_id = $1
	`

	tag, err := r.db.Pool.Exec(ctx, query, userID, displayName, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to update leaderboard display name: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no leaderboard entry for user %s", userID)
	}

	return nil
}

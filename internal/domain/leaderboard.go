package domain

import "time"

// LeaderboardEntry is a user's row on the global leaderboard. Created with
// zero points at provisioning; the display name mirrors the profile's.
type LeaderboardEntry struct {
	UserID      string    `json:"user_id"`
	DisplayName string    `json:"display_name"`
	PhotoURL    string    `json:"photo_url"`
	TotalPoints int64     `json:"total_points"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

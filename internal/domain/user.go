package domain

import "time"

// Identity is what the identity provider hands us after a completed sign-in.
type Identity struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
	Locale      string `json:"locale"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// UserProfile represents a user's account record.
//
// Profile existence doubles as the provisioned-account predicate: the row is
// only ever created inside the provisioning transaction, together with the
// leaderboard entry and favorites record.
type UserProfile struct {
	UserID             string    `json:"user_id"`
	Email              string    `json:"email"`
	DisplayName        string    `json:"display_name"`
	PhotoURL           string    `json:"photo_url"`
	IsProUser          bool      `json:"is_pro_user"`
	OnboardingComplete bool      `json:"onboarding_complete"`
	IsAnonymous        bool      `json:"is_anonymous"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// SessionClaims carries the verified contents of a session token.
type SessionClaims struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	Picture     string    `json:"picture"`
	IsAnonymous bool      `json:"is_anonymous"`
	JTI         string    `json:"jti"`
	ExpiresAt   time.Time `json:"expires_at"`
}

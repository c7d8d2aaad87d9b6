package domain

import "time"

// FavoritesRecord holds a user's followed teams and leagues. The maps are
// keyed by team/league id; a true value means followed. Unfollowing deletes
// the key rather than flipping it to false.
type FavoritesRecord struct {
	UserID    string          `json:"user_id"`
	Teams     map[string]bool `json:"teams"`
	Leagues   map[string]bool `json:"leagues"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewFavoritesRecord returns an empty favorites record for a user.
func NewFavoritesRecord(userID string) *FavoritesRecord {
	return &FavoritesRecord{
		UserID:  userID,
		Teams:   map[string]bool{},
		Leagues: map[string]bool{},
	}
}

// Merge copies the selection's entries into the record, overwriting on key
// collision.
func (r *FavoritesRecord) Merge(sel FavoriteSelection) {
	if r.Teams == nil {
		r.Teams = map[string]bool{}
	}
	if r.Leagues == nil {
		r.Leagues = map[string]bool{}
	}
	for id, followed := range sel.Teams {
		r.Teams[id] = followed
	}
	for id, followed := range sel.Leagues {
		r.Leagues[id] = followed
	}
}

// FavoriteSelection is the pre-sign-in shape of favorites: what a device has
// picked before the user authenticated. Same maps as FavoritesRecord, no
// owner yet.
type FavoriteSelection struct {
	Teams   map[string]bool `json:"teams"`
	Leagues map[string]bool `json:"leagues"`
}

// IsEmpty reports whether the selection holds no entries at all.
func (s FavoriteSelection) IsEmpty() bool {
	return len(s.Teams) == 0 && len(s.Leagues) == 0
}

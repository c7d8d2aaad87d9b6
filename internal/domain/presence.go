package domain

// PresenceRecord is the realtime-store view of a user: exactly the fields the
// web client renders next to live activity.
type PresenceRecord struct {
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}

package repository

import (
	"context"
	"fmt"

	"scorehub/internal/domain"
	"scorehub/pkg/redis"
)

// Presence hash fields.
const (
	presenceFieldDisplayName = "display_name"
	presenceFieldPhotoURL    = "photo_url"
)

// presenceRepository keeps presence records in Redis, one hash per user.
type presenceRepository struct {
	client *redis.Client
}

// NewPresenceRepository creates a new presence repository
func NewPresenceRepository(client *redis.Client) PresenceRepository {
	return &presenceRepository{
		client: client,
	}
}

// Set writes the full presence record for a user
func (r *presenceRepository) Set(ctx context.Context, userID string, record domain.PresenceRecord) error {
	key := r.client.KeyBuilder.KeyPresence(userID)
	err := r.client.HSet(ctx, key,
		presenceFieldDisplayName, record.DisplayName,
		presenceFieldPhotoURL, record.PhotoURL,
	)
	if err != nil {
		return fmt.Errorf("failed to write presence record: %w", err)
	}
	return nil
}

// Get retrieves a user's presence record
func (r *presenceRepository) Get(ctx context.Context, userID string) (*domain.PresenceRecord, error) {
	key := r.client.KeyBuilder.KeyPresence(userID)
	fields, err := r.client.HGetAll(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read presence record: %w", err)
	}
	if len(fields) == 0 {
		return nil, nil
	}

	return &domain.PresenceRecord{
		DisplayName: fields[presenceFieldDisplayName],
		PhotoURL:    fields[presenceFieldPhotoURL],
	}, nil
}

// SetDisplayName mirrors a display-name change onto the presence record
func (r *presenceRepository) SetDisplayName(ctx context.Context, userID, displayName string) error {
	key := r.client.KeyBuilder.KeyPresence(userID)
	if err := r.client.HSet(ctx, key, presenceFieldDisplayName, displayName); err != nil {
		return fmt.Errorf("failed to update presence display name: %w", err)
	}
	return nil
}

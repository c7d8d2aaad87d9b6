package stash

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"scorehub/internal/domain"
	"scorehub/pkg/logger"
	"scorehub/pkg/redis"
)

// redisStore keeps one JSON-encoded selection per device key.
type redisStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func newRedisStore(client *redis.Client, ttl time.Duration, log *logger.Logger) *redisStore {
	return &redisStore{
		client: client,
		ttl:    ttl,
		log:    log.WithComponent("stash"),
	}
}

func (s *redisStore) Read(ctx context.Context, deviceID string) (domain.FavoriteSelection, error) {
	var sel domain.FavoriteSelection

	raw, err := s.client.Get(ctx, s.client.KeyBuilder.KeyStash(deviceID))
	if err == redis.Nil {
		return sel, nil
	}
	if err != nil {
		return sel, fmt.Errorf("stash: read %s: %w", deviceID, err)
	}

	if err := json.Unmarshal([]byte(raw), &sel); err != nil {
		// A corrupt slot is unrecoverable; treat it as empty rather than
		// blocking provisioning on it forever.
		s.log.WithError(err).WithField("device_id", deviceID).Warn("discarding corrupt stash entry")
		return domain.FavoriteSelection{}, nil
	}
	return sel, nil
}

func (s *redisStore) Write(ctx context.Context, deviceID string, sel domain.FavoriteSelection) error {
	b, err := json.Marshal(sel)
	if err != nil {
		return fmt.Errorf("stash: encode %s: %w", deviceID, err)
	}
	if err := s.client.Set(ctx, s.client.KeyBuilder.KeyStash(deviceID), b, s.ttl); err != nil {
		return fmt.Errorf("stash: write %s: %w", deviceID, err)
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context, deviceID string) error {
	if err := s.client.Delete(ctx, s.client.KeyBuilder.KeyStash(deviceID)); err != nil {
		return fmt.Errorf("stash: clear %s: %w", deviceID, err)
	}
	return nil
}

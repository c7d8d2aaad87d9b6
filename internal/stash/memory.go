package stash

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"scorehub/internal/domain"
)

// memoryStore is the in-process driver. Selections die with the process,
// which is fine for its use cases: local development and tests.
type memoryStore struct {
	c *gocache.Cache
}

func newMemoryStore(ttl time.Duration) *memoryStore {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &memoryStore{
		c: gocache.New(ttl, 10*time.Minute),
	}
}

func (s *memoryStore) Read(_ context.Context, deviceID string) (domain.FavoriteSelection, error) {
	v, ok := s.c.Get(deviceID)
	if !ok {
		return domain.FavoriteSelection{}, nil
	}
	sel, ok := v.(domain.FavoriteSelection)
	if !ok {
		return domain.FavoriteSelection{}, nil
	}
	return sel, nil
}

func (s *memoryStore) Write(_ context.Context, deviceID string, sel domain.FavoriteSelection) error {
	s.c.Set(deviceID, sel, gocache.DefaultExpiration)
	return nil
}

func (s *memoryStore) Clear(_ context.Context, deviceID string) error {
	s.c.Delete(deviceID)
	return nil
}

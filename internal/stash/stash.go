// Package stash parks favorite selections made before sign-in. Entries are
// keyed by the device id the web client generates for itself; the
// provisioning workflow claims a device's selection exactly once and clears
// the slot.
package stash

import (
	"context"
	"fmt"
	"time"

	"scorehub/internal/domain"
	"scorehub/pkg/logger"
	"scorehub/pkg/redis"
)

// Supported drivers.
const (
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Store is the stash contract: read a device's whole selection, overwrite it,
// clear it. Read returns the zero selection, not an error, when the slot is
// empty or expired.
type Store interface {
	Read(ctx context.Context, deviceID string) (domain.FavoriteSelection, error)
	Write(ctx context.Context, deviceID string, sel domain.FavoriteSelection) error
	Clear(ctx context.Context, deviceID string) error
}

// Config selects the driver and entry lifetime.
type Config struct {
	Driver string
	TTL    time.Duration
}

// New builds a Store for the configured driver. The redis driver needs a
// connected client; memory keeps selections in-process (single instance
// deployments and tests).
func New(cfg Config, redisClient *redis.Client, log *logger.Logger) (Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverRedis
	}

	switch driver {
	case DriverRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("stash: redis driver requires a redis client")
		}
		return newRedisStore(redisClient, cfg.TTL, log), nil
	case DriverMemory:
		return newMemoryStore(cfg.TTL), nil
	default:
		return nil, fmt.Errorf("stash: unknown driver %q", driver)
	}
}

package container

import (
	"scorehub/internal/config"
	"scorehub/internal/service"
	"scorehub/pkg/logger"
	"scorehub/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	RedisClient *redis.Client
	Services    *service.Services
}

// New creates a new dependency injection container. The caller constructs the
// stores and services in dependency order; the container just carries them to
// the handlers.
func New(cfg *config.Config, log *logger.Logger, redisClient *redis.Client, services *service.Services) *Container {
	return &Container{
		Config:      cfg,
		Logger:      log,
		RedisClient: redisClient,
		Services:    services,
	}
}

// GetAccountService returns the account service
func (c *Container) GetAccountService() service.AccountService {
	return c.Services.Account
}

// GetFavoritesService returns the favorites service
func (c *Container) GetFavoritesService() service.FavoritesService {
	return c.Services.Favorites
}

// GetLeaderboardService returns the leaderboard service
func (c *Container) GetLeaderboardService() service.LeaderboardService {
	return c.Services.Leaderboard
}

// GetSessionService returns the session service
func (c *Container) GetSessionService() service.SessionService {
	return c.Services.Session
}

// GetIdentityProvider returns the federated sign-in provider
func (c *Container) GetIdentityProvider() service.IdentityProvider {
	return c.Services.Identity
}

// GetLogger returns the logger
func (c *Container) GetLogger() *logger.Logger {
	return c.Logger
}

// GetConfig returns the configuration
func (c *Container) GetConfig() *config.Config {
	return c.Config
}

// GetRedisClient returns the Redis client
func (c *Container) GetRedisClient() *redis.Client {
	return c.RedisClient
}

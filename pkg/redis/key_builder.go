package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	// Set key prefix based on environment
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// Presence key builders
func (kb *KeyBuilder) KeyPresence(userID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyPresence, userID))
}

// Session key builders
func (kb *KeyBuilder) KeySession(jti string) string {
	return kb.BuildKey(fmt.Sprintf(KeySession, jti))
}

// Stash key builders
func (kb *KeyBuilder) KeyStash(deviceID string) string {
	return kb.BuildKey(fmt.Sprintf(KeyStash, deviceID))
}

// Leaderboard key builders
func (kb *KeyBuilder) KeyLeaderboardTop(limit int) string {
	return kb.BuildKey(fmt.Sprintf(KeyLeaderboardTop, limit))
}

// Generic key builders for custom patterns
func (kb *KeyBuilder) KeyCustom(pattern string, args ...interface{}) string {
	key := fmt.Sprintf(pattern, args...)
	return kb.BuildKey(key)
}

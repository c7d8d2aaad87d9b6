package redis

import "testing"

func TestNewKeyBuilder(t *testing.T) {
	tests := []struct {
		name           string
		environment    string
		expectedPrefix string
	}{
		{name: "Production", environment: "production", expectedPrefix: "prod"},
		{name: "Staging", environment: "staging", expectedPrefix: "staging"},
		{name: "Development", environment: "development", expectedPrefix: "staging"},
		{name: "Test", environment: "test", expectedPrefix: "staging"},
		{name: "Unknown defaults to prod", environment: "qa", expectedPrefix: "prod"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb := NewKeyBuilder(tt.environment)
			if kb.GetPrefix() != tt.expectedPrefix {
				t.Errorf("GetPrefix() = %q, want %q", kb.GetPrefix(), tt.expectedPrefix)
			}
		})
	}
}

func TestKeyBuilder_Keys(t *testing.T) {
	kb := NewKeyBuilder("production")

	tests := []struct {
		name     string
		build    func() string
		expected string
	}{
		{
			name:     "Presence key",
			build:    func() string { return kb.KeyPresence("user-123") },
			expected: "prod:presence:user-123",
		},
		{
			name:     "Session key",
			build:    func() string { return kb.KeySession("8f14e45f") },
			expected: "prod:session:8f14e45f",
		},
		{
			name:     "Stash key",
			build:    func() string { return kb.KeyStash("device-9") },
			expected: "prod:stash:device-9",
		},
		{
			name:     "Leaderboard top key",
			build:    func() string { return kb.KeyLeaderboardTop(20) },
			expected: "prod:leaderboard:top:20",
		},
		{
			name:     "Custom key",
			build:    func() string { return kb.KeyCustom("jobs:%s:%d", "sync", 7) },
			expected: "prod:jobs:sync:7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.build(); got != tt.expected {
				t.Errorf("key = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestKeyBuilder_StagingPrefix(t *testing.T) {
	kb := NewKeyBuilder("staging")

	if got := kb.KeyPresence("user-123"); got != "staging:presence:user-123" {
		t.Errorf("KeyPresence = %q, want staging-prefixed key", got)
	}
}

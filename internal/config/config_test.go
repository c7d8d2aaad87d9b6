package config

import (
	"testing"
	"time"
)

func TestParseOrigins(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Multiple origins",
			input:    "http://localhost:5173,https://scorehub.app",
			expected: []string{"http://localhost:5173", "https://scorehub.app"},
		},
		{
			name:     "Origins with whitespace",
			input:    " http://localhost:5173 , https://scorehub.app ",
			expected: []string{"http://localhost:5173", "https://scorehub.app"},
		},
		{
			name:     "Empty string",
			input:    "",
			expected: []string{},
		},
		{
			name:     "Trailing comma",
			input:    "http://localhost:5173,",
			expected: []string{"http://localhost:5173"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseOrigins(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("parseOrigins(%q) returned %d origins, want %d", tt.input, len(result), len(tt.expected))
			}
			for i, origin := range result {
				if origin != tt.expected[i] {
					t.Errorf("parseOrigins(%q)[%d] = %q, want %q", tt.input, i, origin, tt.expected[i])
				}
			}
		})
	}
}

func TestGetDurationEnv(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback time.Duration
		expected time.Duration
	}{
		{name: "Valid duration", value: "30m", fallback: time.Hour, expected: 30 * time.Minute},
		{name: "Invalid duration falls back", value: "soon", fallback: time.Hour, expected: time.Hour},
		{name: "Unset falls back", value: "", fallback: 720 * time.Hour, expected: 720 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_DURATION", tt.value)
			}
			if got := getDurationEnv("TEST_DURATION", tt.fallback); got != tt.expected {
				t.Errorf("getDurationEnv = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	valid := Config{
		DatabaseURL:   "postgres://localhost:5432/scorehub",
		RedisURL:      "redis://localhost:6379/0",
		SessionSecret: "secret",
		StashDriver:   "redis",
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on complete config returned %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "Missing database URL", mutate: func(c *Config) { c.DatabaseURL = "" }},
		{name: "Missing redis URL", mutate: func(c *Config) { c.RedisURL = "" }},
		{name: "Missing session secret", mutate: func(c *Config) { c.SessionSecret = "" }},
		{name: "Unknown stash driver", mutate: func(c *Config) { c.StashDriver = "disk" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() = nil, want error")
			}
		})
	}
}

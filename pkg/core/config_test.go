package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	config := DefaultConfig()
	require.NoError(t, config.Validate())
	assert.Equal(t, ProductionURL, config.BaseURL)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"missing base url", func(c *Config) { c.BaseURL = "" }, true},
		{"not a url", func(c *Config) { c.BaseURL = "nope" }, true},
		{"missing graph url", func(c *Config) { c.GraphBaseURL = "" }, true},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, true},
		{"negative retries", func(c *Config) { c.MaxRetries = -1 }, true},
		{"zero rate limit", func(c *Config) { c.RateLimitRequests = 0 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, true},
		{"empty log level allowed", func(c *Config) { c.LogLevel = "" }, false},
		{"breaker enabled without thresholds", func(c *Config) {
			c.CircuitBreakerEnabled = true
			c.CircuitBreakerFailThreshold = 0
		}, true},
		{"breaker enabled without timeout", func(c *Config) {
			c.CircuitBreakerEnabled = true
			c.CircuitBreakerTimeout = 0
		}, true},
		{"breaker disabled ignores thresholds", func(c *Config) {
			c.CircuitBreakerEnabled = false
			c.CircuitBreakerFailThreshold = 0
			c.CircuitBreakerTimeout = 0
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)
			err := config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Chaining(t *testing.T) {
	config := DefaultConfig().
		WithSandbox().
		WithClientID("bot-7").
		WithTimeout(3 * time.Second).
		WithRateLimit(100, time.Minute)

	require.NoError(t, config.Validate())
	assert.Equal(t, SandboxURL, config.BaseURL)
	assert.Equal(t, "bot-7", config.ClientID)
	assert.Equal(t, 3*time.Second, config.Timeout)
	assert.Equal(t, 100, config.RateLimitRequests)

	config.WithBaseURL("https://proxy.internal:8443")
	assert.Equal(t, "https://proxy.internal:8443", config.BaseURL)
}

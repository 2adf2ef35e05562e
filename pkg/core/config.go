package core

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
)

// API base URLs.
const (
	// ProductionURL is the live exchange API.
	ProductionURL = "https://api.btcturk.com"
	// SandboxURL is the exchange's test environment.
	SandboxURL = "https://api-dev.btcturk.com"
	// GraphURL is the charting API host serving OHLC data.
	GraphURL = "https://graph-api.btcturk.com"
)

// Config contains all configuration options for a client session:
// networking, rate limiting and circuit breaker settings. Credentials are
// supplied separately through the auth package.
type Config struct {
	BaseURL string `json:"base_url" validate:"required,url"`

	// GraphBaseURL is the charting API host. OHLC data lives on a
	// separate host from the trading API.
	GraphBaseURL string `json:"graph_base_url" validate:"required,url"`

	// ClientID, when set, is attached to submitted orders as the
	// newOrderClientId parameter.
	ClientID string `json:"client_id,omitempty"`

	// Timeout is the maximum duration for HTTP requests.
	Timeout      time.Duration `json:"timeout" validate:"min=1ms"`
	MaxRetries   int           `json:"max_retries" validate:"min=0"`
	RetryWaitMin time.Duration `json:"retry_wait_min" validate:"min=0"`
	RetryWaitMax time.Duration `json:"retry_wait_max" validate:"min=0"`

	RateLimitRequests int           `json:"rate_limit_requests" validate:"min=1"`
	RateLimitPeriod   time.Duration `json:"rate_limit_period" validate:"min=1ms"`

	CircuitBreakerEnabled          bool          `json:"circuit_breaker_enabled"`
	CircuitBreakerFailThreshold    int           `json:"circuit_breaker_fail_threshold" validate:"min=0"`
	CircuitBreakerSuccessThreshold int           `json:"circuit_breaker_success_threshold" validate:"min=0"`
	CircuitBreakerTimeout          time.Duration `json:"circuit_breaker_timeout" validate:"min=0"`

	LogLevel string `json:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns a Config with sensible defaults: production base
// URL, 10s timeout, 3 retries, 600 requests/min rate limit and a circuit
// breaker tripping after 5 consecutive failures.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:      ProductionURL,
		GraphBaseURL: GraphURL,
		Timeout:      10 * time.Second,
		MaxRetries:   3,
		RetryWaitMin: 100 * time.Millisecond,
		RetryWaitMax: 1 * time.Second,

		RateLimitRequests: 600,
		RateLimitPeriod:   time.Minute,

		CircuitBreakerEnabled:          true,
		CircuitBreakerFailThreshold:    5,
		CircuitBreakerSuccessThreshold: 2,
		CircuitBreakerTimeout:          30 * time.Second,

		LogLevel: "info",
	}
}

var validate = validator.New()

// Validate checks the configuration for missing or inconsistent values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.CircuitBreakerEnabled {
		if c.CircuitBreakerFailThreshold <= 0 {
			return errors.New("CircuitBreakerFailThreshold must be positive when enabled")
		}
		if c.CircuitBreakerSuccessThreshold <= 0 {
			return errors.New("CircuitBreakerSuccessThreshold must be positive when enabled")
		}
		if c.CircuitBreakerTimeout <= 0 {
			return errors.New("CircuitBreakerTimeout must be positive when enabled")
		}
	}
	return nil
}

// WithBaseURL sets the API base URL and returns the config for chaining.
func (c *Config) WithBaseURL(url string) *Config {
	c.BaseURL = url
	return c
}

// WithSandbox switches the config to the test environment.
func (c *Config) WithSandbox() *Config {
	c.BaseURL = SandboxURL
	return c
}

// WithClientID sets the client order identifier and returns the config
// for chaining.
func (c *Config) WithClientID(id string) *Config {
	c.ClientID = id
	return c
}

// WithTimeout sets the request timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithRateLimit sets the rate limiting parameters and returns the config
// for chaining.
func (c *Config) WithRateLimit(requests int, period time.Duration) *Config {
	c.RateLimitRequests = requests
	c.RateLimitPeriod = period
	return c
}

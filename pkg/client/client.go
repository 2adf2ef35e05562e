// Package client is the high-level exchange client. It composes the
// transport, the metadata store, the filter engine and the request
// signer; every trade-affecting call passes through the validation
// pipeline before anything reaches the wire.
package client

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"resty.dev/v3"

	"btcturk/internal/circuitbreaker"
	"btcturk/internal/ratelimit"
	"btcturk/internal/transport"
	"btcturk/pkg/auth"
	"btcturk/pkg/core"
	"btcturk/pkg/metadata"
	"btcturk/pkg/order"
)

// Rate limit bucket names, one per endpoint class.
const (
	bucketPublic  = "public"
	bucketPrivate = "private"
	bucketOrder   = "order"
)

// Client talks to the exchange REST API.
type Client struct {
	config  *core.Config
	http    *transport.Client
	graph   *transport.Client
	limiter *ratelimit.Limiter
	breaker *circuitbreaker.Breaker
	store   *metadata.Store
	keys    *auth.Keys
	nonce   auth.NonceSource
	builder *order.Builder
	logger  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithKeys supplies API keys for the private endpoints.
func WithKeys(keys *auth.Keys) Option {
	return func(c *Client) {
		c.keys = keys
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// WithNonceSource overrides the default timestamp nonce source.
func WithNonceSource(src auth.NonceSource) Option {
	return func(c *Client) {
		c.nonce = src
	}
}

// New creates a Client from the given configuration. A nil config uses
// DefaultConfig.
func New(config *core.Config, opts ...Option) (*Client, error) {
	if config == nil {
		config = core.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	c := &Client{
		config: config,
		nonce:  auth.NewTimestampNonce(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if config.LogLevel != "" {
		if lvl, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			c.logger = c.logger.Level(lvl)
		}
	}

	httpClient, err := transport.NewClient(&transport.Config{
		BaseURL:      config.BaseURL,
		Timeout:      config.Timeout,
		MaxRetries:   config.MaxRetries,
		RetryWaitMin: config.RetryWaitMin,
		RetryWaitMax: config.RetryWaitMax,
	}, c.logger)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}
	c.http = httpClient

	graphClient, err := transport.NewClient(&transport.Config{
		BaseURL:      config.GraphBaseURL,
		Timeout:      config.Timeout,
		MaxRetries:   config.MaxRetries,
		RetryWaitMin: config.RetryWaitMin,
		RetryWaitMax: config.RetryWaitMax,
	}, c.logger)
	if err != nil {
		return nil, fmt.Errorf("create graph client: %w", err)
	}
	c.graph = graphClient

	c.limiter = ratelimit.New(config.RateLimitRequests, config.RateLimitPeriod)
	if config.CircuitBreakerEnabled {
		c.breaker = circuitbreaker.New(circuitbreaker.Config{
			FailThreshold:    config.CircuitBreakerFailThreshold,
			SuccessThreshold: config.CircuitBreakerSuccessThreshold,
			Timeout:          config.CircuitBreakerTimeout,
		})
	}

	c.store = metadata.NewStore(metadata.WithLogger(c.logger))
	if c.keys != nil {
		c.builder = order.NewBuilder(c.store, c.keys, c.nonce, order.WithClientID(config.ClientID))
	}

	return c, nil
}

// Metadata returns the exchange metadata store. It is empty until the
// first RefreshExchangeInfo call.
func (c *Client) Metadata() *metadata.Store {
	return c.store
}

// Close releases the underlying connections.
func (c *Client) Close() error {
	if err := c.graph.Close(); err != nil {
		return err
	}
	return c.http.Close()
}

func (c *Client) authHeaders() (map[string]string, error) {
	if c.keys == nil {
		return nil, &core.SigningError{Code: core.ErrCodeAuthRequired, Message: "endpoint requires API keys"}
	}
	return c.keys.Headers(c.nonce.Next()), nil
}

func (c *Client) admit(ctx context.Context, bucket string) error {
	if err := c.limiter.WaitBucket(ctx, bucket); err != nil {
		return err
	}
	if c.breaker != nil && !c.breaker.Allow() {
		return &core.APIError{Code: core.ErrCodeCircuitOpen, Message: "too many consecutive failures"}
	}
	return nil
}

func (c *Client) record(success bool) {
	if c.breaker != nil {
		c.breaker.Record(success)
	}
}

// getJSON performs a rate-limited GET and unwraps the response envelope.
func getJSON[T any](ctx context.Context, c *Client, bucket, path string, params core.Params, private bool) (*T, error) {
	if err := c.admit(ctx, bucket); err != nil {
		return nil, err
	}

	opts := make([]transport.RequestOption, 0, 2)
	if len(params) > 0 {
		opts = append(opts, transport.WithQueryParams(params.Query()))
	}
	if private {
		headers, err := c.authHeaders()
		if err != nil {
			return nil, err
		}
		opts = append(opts, transport.WithHeaders(headers))
	}

	resp, err := c.http.Get(ctx, path, opts...)
	if err != nil {
		c.record(false)
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	return decode[T](c, resp)
}

// decode unwraps an exchange response envelope and feeds the outcome to
// the circuit breaker.
func decode[T any](c *Client, resp *resty.Response) (*T, error) {
	var envelope core.Envelope[T]
	body := resp.Bytes()

	if resp.StatusCode() != 200 {
		return nil, statusError[T](c, resp)
	}

	if err := unmarshalEnvelope(body, &envelope); err != nil {
		c.record(false)
		return nil, fmt.Errorf("decode response: %w", err)
	}
	data, err := envelope.Result()
	c.record(err == nil || core.IsErrorCode(err, core.ErrCodeNullData))
	return data, err
}

// decodeBare parses an unenveloped response body, as served by the
// charting API.
func decodeBare[T any](c *Client, resp *resty.Response) (*T, error) {
	if resp.StatusCode() != 200 {
		return nil, statusError[T](c, resp)
	}

	var out T
	if err := sonic.Unmarshal(resp.Bytes(), &out); err != nil {
		c.record(false)
		return nil, fmt.Errorf("decode response: %w", err)
	}
	c.record(true)
	return &out, nil
}

// statusError builds the APIError for a non-200 response, salvaging the
// exchange's code and message when the body still carries an envelope.
func statusError[T any](c *Client, resp *resty.Response) *core.APIError {
	c.record(resp.StatusCode() < 500)
	apiErr := &core.APIError{
		Code:       core.ErrCodeBadStatus,
		StatusCode: resp.StatusCode(),
		Message:    resp.Status(),
	}
	var envelope core.Envelope[T]
	if err := unmarshalEnvelope(resp.Bytes(), &envelope); err == nil {
		apiErr.ResponseCode = envelope.Code
		if envelope.Message != nil {
			apiErr.Message = *envelope.Message
		}
	}
	return apiErr
}

func unmarshalEnvelope[T any](body []byte, e *core.Envelope[T]) error {
	return sonic.Unmarshal(body, e)
}
